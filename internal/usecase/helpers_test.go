package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func strPtr(s string) *string { return &s }

func testMetrics() *metrics.Metrics {
	return metrics.NewMetricsWithRegistry("test", prometheus.NewRegistry())
}

func testLogger() logger.Logger {
	return logger.NewNopLogger()
}

// stubLookup is a scripted LookupService that counts calls
type stubLookup struct {
	mu           sync.Mutex
	flights      []entity.UpstreamFlight
	departures   []entity.UpstreamFlight
	airports     map[string]entity.AirportInfo
	airportErrs  map[string]error
	flightErr    error
	departureErr error
	airportCalls map[string]int

	// when set, airport lookups signal entered and block until gate closes
	gate    chan struct{}
	entered chan struct{}
}

func newStubLookup() *stubLookup {
	return &stubLookup{
		airports:     map[string]entity.AirportInfo{},
		airportErrs:  map[string]error{},
		airportCalls: map[string]int{},
	}
}

func (s *stubLookup) LookupFlight(ctx context.Context, flightIATA, date string) ([]entity.UpstreamFlight, error) {
	if s.flightErr != nil {
		return nil, s.flightErr
	}
	return s.flights, nil
}

func (s *stubLookup) LookupDeparturesByAirport(ctx context.Context, depIATA, date string) ([]entity.UpstreamFlight, error) {
	if s.departureErr != nil {
		return nil, s.departureErr
	}
	return s.departures, nil
}

func (s *stubLookup) LookupAirport(ctx context.Context, iata string) (*entity.AirportInfo, error) {
	s.mu.Lock()
	s.airportCalls[iata]++
	s.mu.Unlock()

	if s.gate != nil {
		select {
		case s.entered <- struct{}{}:
		default:
		}
		select {
		case <-s.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := s.airportErrs[iata]; ok {
		return nil, err
	}
	info, ok := s.airports[iata]
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrAirportNotFound, iata)
	}
	return &info, nil
}

func (s *stubLookup) calls(iata string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.airportCalls[iata]
}

func (s *stubLookup) totalAirportCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.airportCalls {
		total += n
	}
	return total
}

// departure builds a provider record from origin to destination
func departure(number, from, fromName, to, toName string) entity.UpstreamFlight {
	return entity.UpstreamFlight{
		FlightStatus: "scheduled",
		Flight:       &entity.UpstreamFlightIdent{IATA: number},
		Airline:      &entity.UpstreamAirline{Name: "Test Air"},
		Departure:    &entity.UpstreamEndpoint{Airport: fromName, IATA: from, Scheduled: "2026-01-30T10:00:00+00:00"},
		Arrival:      &entity.UpstreamEndpoint{Airport: toName, IATA: to, Scheduled: "2026-01-30T16:00:00+00:00"},
	}
}

var errBoom = errors.New("boom")
