package repository

import (
	"context"

	"flightlookup-service/internal/domain/entity"
)

// BatchCache stores raw upstream flight batches by request key.
// Get reports found=false on a miss without an error.
type BatchCache interface {
	Get(ctx context.Context, key string) (batch []entity.UpstreamFlight, found bool, err error)
	Set(ctx context.Context, key string, batch []entity.UpstreamFlight) error
}
