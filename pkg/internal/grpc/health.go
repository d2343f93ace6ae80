package grpc

import (
	"context"
	"time"

	"git.solsynth.dev/hypernet/journal/pkg/internal/database"
	"github.com/rs/zerolog/log"
	health "google.golang.org/grpc/health/grpc_health_v1"
)

const ServiceName = "journal"

// Check reports serving while the database answers a ping. Only the empty
// name and ServiceName are known.
func (v *App) Check(ctx context.Context, in *health.HealthCheckRequest) (*health.HealthCheckResponse, error) {
	if name := in.GetService(); len(name) > 0 && name != ServiceName {
		return &health.HealthCheckResponse{Status: health.HealthCheckResponse_SERVICE_UNKNOWN}, nil
	}

	if database.C == nil {
		return &health.HealthCheckResponse{Status: health.HealthCheckResponse_NOT_SERVING}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	conn, err := database.C.DB()
	if err == nil {
		err = conn.PingContext(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Health check failed to reach the database...")
		return &health.HealthCheckResponse{Status: health.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &health.HealthCheckResponse{Status: health.HealthCheckResponse_SERVING}, nil
}
