// Command cadoz runs the Cadoz storefront and its operator tools.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cadoz/internal/catalog"
	"cadoz/internal/config"
	"cadoz/internal/gift"
	"cadoz/internal/kv"
	"cadoz/internal/order"
	"cadoz/internal/storefront"
)

var (
	configPath  string
	development bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "cadoz",
	Short:         "Cadoz storefront: gift builder, cart and checkout",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if development {
			cfg.Log.Development = true
		}
		logger, err = cfg.Log.NewLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "cadoz.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&development, "dev", false, "Use development logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(askCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the wiring shared by the commands that touch sessions.
type app struct {
	catalog  *catalog.Holder
	backend  kv.Backend
	sessions *storefront.Manager
	orders   order.Aggregator
}

func openApp() (*app, error) {
	c, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	holder := catalog.NewHolder(c)

	backend, err := kv.Open(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	sessions, err := storefront.NewManager(backend, holder, gift.NewReducer(), storefront.DefaultCacheSize, logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	logger.Info("storefront ready",
		zap.Int("catalog_items", c.Len()),
		zap.String("storage", cfg.Storage.Driver))
	return &app{
		catalog:  holder,
		backend:  backend,
		sessions: sessions,
		orders:   order.NewAggregator(cfg.Order),
	}, nil
}

func (a *app) Close() error { return a.backend.Close() }

func (a *app) session(ctx context.Context, id string) (*storefront.Session, error) {
	return a.sessions.Session(ctx, id)
}
