package platform

import (
	"context"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// HealthConfig configures the gRPC health endpoint.
type HealthConfig struct {
	Service string
	Port    string
}

// HealthServer exposes the standard gRPC health service so orchestrators can
// probe the storefront the same way they probe the other services.
type HealthServer struct {
	cfg    HealthConfig
	logger *zap.Logger
	server *grpc.Server
	health *health.Server
}

// NewHealthServer builds a health server. Nothing listens until Serve.
func NewHealthServer(cfg HealthConfig, logger *zap.Logger) *HealthServer {
	s := grpc.NewServer()
	h := health.NewServer()
	grpc_health_v1.RegisterHealthServer(s, h)
	return &HealthServer{cfg: cfg, logger: logger, server: s, health: h}
}

// SetServing flips the reported status for both the overall server and the
// named service.
func (h *HealthServer) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(h.cfg.Service, status)
}

// Serve listens on the configured port and blocks until ctx is done.
func (h *HealthServer) Serve(ctx context.Context) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%s", h.cfg.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", h.cfg.Port, err)
	}
	return h.ServeListener(ctx, lis)
}

// ServeListener serves on an existing listener and blocks until ctx is done.
func (h *HealthServer) ServeListener(ctx context.Context, lis net.Listener) error {
	h.SetServing(true)

	go func() {
		<-ctx.Done()
		h.health.Shutdown()
		h.server.GracefulStop()
	}()

	h.logger.Info("health server started",
		zap.String("service", h.cfg.Service),
		zap.String("addr", lis.Addr().String()),
	)

	if err := h.server.Serve(lis); err != nil {
		return fmt.Errorf("failed to serve: %w", err)
	}
	return nil
}
