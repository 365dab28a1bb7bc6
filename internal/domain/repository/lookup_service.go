package repository

import (
	"context"

	"flightlookup-service/internal/domain/entity"
)

// LookupService is the upstream aviation data source. Live and fixture
// implementations return the same provider-shaped records.
type LookupService interface {
	LookupFlight(ctx context.Context, flightIATA, date string) ([]entity.UpstreamFlight, error)
	LookupDeparturesByAirport(ctx context.Context, depIATA, date string) ([]entity.UpstreamFlight, error)
	LookupAirport(ctx context.Context, iata string) (*entity.AirportInfo, error)
}
