// Package grpc serves the standard gRPC health service so orchestrators can
// probe the process.
package grpc

import (
	"context"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
)

// ServiceName is the health check key reported next to the overall "" key.
const ServiceName = "userkeeper.UserService"

type HealthServer struct {
	address string
	health  *health.Server
	logger  logging.Logger
}

func NewHealthServer(a string, l logging.Logger) *HealthServer {
	return &HealthServer{
		address: a,
		health:  health.NewServer(),
		logger:  l.With("module", "grpc_server"),
	}
}

// Run listens on the configured address and serves until ctx is done.
func (s *HealthServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve reports SERVING while accepting on l. When ctx is done it flips to
// NOT_SERVING and stops gracefully.
func (s *HealthServer) Serve(ctx context.Context, l net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	grpc_health_v1.RegisterHealthServer(srv, s.health)

	s.setStatus(grpc_health_v1.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC health server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC health server", "address", l.Addr().String())

	if err := srv.Serve(l); err != nil {
		return err
	}

	return nil
}

func (s *HealthServer) setStatus(status grpc_health_v1.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
