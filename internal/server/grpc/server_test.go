package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/userkeeper/internal/logging"
)

func startHealthServer(t *testing.T) (*HealthServer, string, context.CancelFunc, <-chan error) {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewHealthServer(l.Addr().String(), logging.Nop{})
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, l) }()

	return srv, l.Addr().String(), cancel, done
}

func TestHealthServer_ReportsServing(t *testing.T) {
	_, addr, _, _ := startHealthServer(t)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := grpc_health_v1.NewHealthClient(conn)

	for _, service := range []string{"", ServiceName} {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
		cancel()
		require.NoError(t, err)
		assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())
	}
}

func TestHealthServer_NotServingAfterCancel(t *testing.T) {
	srv, _, cancel, done := startHealthServer(t)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}

	resp, err := srv.health.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	srv := NewHealthServer("127.0.0.1:99999", logging.Nop{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, srv.Run(ctx))
}
