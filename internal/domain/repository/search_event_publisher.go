package repository

import (
	"context"

	"flightlookup-service/internal/domain/entity"
)

// SearchEventPublisher announces completed searches to other services
type SearchEventPublisher interface {
	PublishSearchCompleted(ctx context.Context, record *entity.SearchRecord) error
}
