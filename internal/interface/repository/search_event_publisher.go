package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
)

const SubjectSearchCompleted = "flights.search.completed"

// MessagePublisher is the subset of *nats.Conn used to publish events
type MessagePublisher interface {
	Publish(subject string, data []byte) error
}

// NatsSearchEventPublisher publishes completed searches as JSON
type NatsSearchEventPublisher struct {
	conn    MessagePublisher
	subject string
}

// NewNatsSearchEventPublisher creates a publisher on SubjectSearchCompleted
func NewNatsSearchEventPublisher(conn MessagePublisher) repository.SearchEventPublisher {
	return &NatsSearchEventPublisher{
		conn:    conn,
		subject: SubjectSearchCompleted,
	}
}

// PublishSearchCompleted publishes record as a JSON message
func (p *NatsSearchEventPublisher) PublishSearchCompleted(ctx context.Context, record *entity.SearchRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal search event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish search event: %w", err)
	}
	return nil
}
