package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cadoz/internal/assist"
	"cadoz/internal/catalog"
	"cadoz/internal/httpapi"
	"cadoz/internal/platform"
)

const shutdownTimeout = 10 * time.Second

var httpPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the storefront API and the gRPC health check",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&httpPort, "port", "", "HTTP port (overrides http.port and PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if httpPort != "" {
		cfg.HTTP.Port = httpPort
	}

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	var gen assist.Generator
	if cfg.Assist.APIKey != "" {
		g, err := assist.NewGemini(ctx, cfg.Assist.APIKey, cfg.Assist.Model)
		if err != nil {
			return err
		}
		gen = g
		logger.Info("assistant enabled", zap.String("model", g.Model()))
	} else {
		logger.Warn("GEMINI_API_KEY is not set; the assistant will answer with errors")
	}

	server := httpapi.NewServer(httpapi.Deps{
		Catalog:  a.catalog,
		Sessions: a.sessions,
		Orders:   a.orders,
		Assist:   assist.NewHandler(gen, cfg.Assist.Timeout, logger.Named("assist")),
		Logger:   logger.Named("http"),
	})
	server.Actions().LogTypes(logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	health := platform.NewHealthServer(platform.HealthConfig{Service: "cadoz", Port: cfg.Health.Port}, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("storefront listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down storefront")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return health.Serve(gctx)
	})
	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		g.Go(func() error {
			return catalog.Watch(gctx, cfg.Catalog.Path, a.catalog, logger.Named("catalog"))
		})
	}
	return g.Wait()
}
