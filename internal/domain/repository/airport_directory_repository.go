package repository

import (
	"context"

	"flightlookup-service/internal/domain/entity"
)

// AirportDirectoryRepository defines the interface for persisted airport coordinates
type AirportDirectoryRepository interface {
	GetByIATA(ctx context.Context, code string) (*entity.AirportInfo, error)
	Save(ctx context.Context, airport *entity.AirportInfo) error
	Count(ctx context.Context) (int64, error)
}
