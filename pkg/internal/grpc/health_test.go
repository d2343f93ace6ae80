package grpc

import (
	"context"
	"net"
	"testing"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	health "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

func TestHealthCheck(t *testing.T) {
	source, err := database.NewMemoryGorm("grpc_health")
	require.NoError(t, err)
	t.Cleanup(func() {
		if conn, err := source.DB(); err == nil {
			_ = conn.Close()
		}
	})

	listener := bufconn.Listen(1 << 20)
	server := NewGrpc()
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient(
		"passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := health.NewHealthClient(conn)
	ctx := context.Background()

	resp, err := client.Check(ctx, &health.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, health.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &health.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, health.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = client.Check(ctx, &health.HealthCheckRequest{Service: "something.else"})
	require.NoError(t, err)
	assert.Equal(t, health.HealthCheckResponse_SERVICE_UNKNOWN, resp.GetStatus())

	// A closed pool can no longer be pinged.
	raw, err := source.DB()
	require.NoError(t, err)
	require.NoError(t, raw.Close())

	resp, err = client.Check(ctx, &health.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, health.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}
