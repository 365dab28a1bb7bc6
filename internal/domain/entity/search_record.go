// internal/domain/entity/search_record.go
package entity

import (
	"time"
)

// Search kinds
const (
	SearchKindFlight      = "flight"
	SearchKindAirport     = "airport"
	SearchKindDepartures  = "departures"
	SearchKindAirportInfo = "airport_info"
)

// SearchRecord is the audit entry written for every completed search
type SearchRecord struct {
	ID             string    `json:"id" bson:"_id,omitempty"`
	Kind           string    `json:"kind" bson:"kind"`
	Query          string    `json:"query" bson:"query"`
	Date           string    `json:"date,omitempty" bson:"date,omitempty"`
	Mode           string    `json:"mode" bson:"mode"`
	ResultCount    int       `json:"resultCount" bson:"resultCount"`
	EnrichedCount  int       `json:"enrichedCount" bson:"enrichedCount"`
	OriginResolved bool      `json:"originResolved" bson:"originResolved"`
	Error          string    `json:"error,omitempty" bson:"error,omitempty"`
	DurationMs     int64     `json:"durationMs" bson:"durationMs"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}
