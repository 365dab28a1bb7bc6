package persistence

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NewNatsConn connects to a NATS server
func NewNatsConn(url, name string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return nc, nil
}
