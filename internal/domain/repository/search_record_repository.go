package repository

import (
	"context"

	"flightlookup-service/internal/domain/entity"
)

// SearchRecordRepository defines the interface for search history operations
type SearchRecordRepository interface {
	Save(ctx context.Context, record *entity.SearchRecord) error
	FindRecent(ctx context.Context, limit int) ([]*entity.SearchRecord, error)
}
