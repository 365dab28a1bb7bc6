package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"
	"flightlookup-service/pkg/utils"

	"github.com/google/uuid"
)

// MaxEnrichedDestinations bounds how many distinct destinations are resolved per departures search
const MaxEnrichedDestinations = 5

// FlightSearchService runs flight and airport searches against one lookup service
type FlightSearchService struct {
	lookup    repository.LookupService
	resolver  *AirportResolver
	history   repository.SearchRecordRepository
	publisher repository.SearchEventPublisher
	logger    logger.Logger
	metrics   *metrics.Metrics
	mode      string
}

// NewFlightSearchService creates a new search service. history and publisher may be nil.
func NewFlightSearchService(
	lookup repository.LookupService,
	resolver *AirportResolver,
	history repository.SearchRecordRepository,
	publisher repository.SearchEventPublisher,
	logger logger.Logger,
	m *metrics.Metrics,
	mode string,
) *FlightSearchService {
	return &FlightSearchService{
		lookup:    lookup,
		resolver:  resolver,
		history:   history,
		publisher: publisher,
		logger:    logger,
		metrics:   m,
		mode:      mode,
	}
}

// SearchFlight looks up a flight by IATA number. No match is an empty slice.
func (s *FlightSearchService) SearchFlight(ctx context.Context, flightNumber, date string) ([]entity.Flight, error) {
	started := time.Now()
	flightNumber, date, err := normalizeQuery(flightNumber, date)
	if err != nil {
		return nil, err
	}

	raws, err := s.lookup.LookupFlight(ctx, flightNumber, date)
	if err != nil {
		s.finish(ctx, started, &entity.SearchRecord{Kind: entity.SearchKindFlight, Query: flightNumber, Date: date}, err)
		return nil, err
	}

	flights := NormalizeBatch(raws, flightNumber)
	s.finish(ctx, started, &entity.SearchRecord{
		Kind:        entity.SearchKindFlight,
		Query:       flightNumber,
		Date:        date,
		ResultCount: len(flights),
	}, nil)
	return flights, nil
}

// SearchFlightsByAirport returns normalized departures for an airport without enrichment
func (s *FlightSearchService) SearchFlightsByAirport(ctx context.Context, airportCode, date string) ([]entity.Flight, error) {
	started := time.Now()
	airportCode, date, err := normalizeQuery(airportCode, date)
	if err != nil {
		return nil, err
	}

	raws, err := s.lookup.LookupDeparturesByAirport(ctx, airportCode, date)
	if err != nil {
		s.finish(ctx, started, &entity.SearchRecord{Kind: entity.SearchKindAirport, Query: airportCode, Date: date}, err)
		return nil, err
	}

	flights := NormalizeBatch(raws, "")
	s.finish(ctx, started, &entity.SearchRecord{
		Kind:        entity.SearchKindAirport,
		Query:       airportCode,
		Date:        date,
		ResultCount: len(flights),
	}, nil)
	return flights, nil
}

// GetAirportInfo resolves an airport through the shared cache
func (s *FlightSearchService) GetAirportInfo(ctx context.Context, airportCode string) (*entity.AirportInfo, error) {
	started := time.Now()
	airportCode, _, err := normalizeQuery(airportCode, "")
	if err != nil {
		return nil, err
	}

	info, err := s.resolver.Resolve(ctx, airportCode)
	record := &entity.SearchRecord{Kind: entity.SearchKindAirportInfo, Query: airportCode}
	if err == nil {
		record.ResultCount = 1
		record.OriginResolved = true
	}
	s.finish(ctx, started, record, err)
	return info, err
}

// SearchAirportDepartures finds departures from an airport and attaches destination
// coordinates for the first MaxEnrichedDestinations distinct destinations.
// Only the departures lookup can fail the search; origin and destination
// resolution failures are logged and leave coordinates empty.
func (s *FlightSearchService) SearchAirportDepartures(ctx context.Context, airportCode, date string) (*entity.DepartureSearchResult, error) {
	started := time.Now()
	airportCode, date, err := normalizeQuery(airportCode, date)
	if err != nil {
		return nil, err
	}
	log := s.logger.With("airport", airportCode, "date", date)

	origin, err := s.resolver.Resolve(ctx, airportCode)
	if err != nil {
		log.Warn("Origin airport not resolved, map origin skipped", "error", err)
		origin = nil
	}

	raws, err := s.lookup.LookupDeparturesByAirport(ctx, airportCode, date)
	if err != nil {
		s.finish(ctx, started, &entity.SearchRecord{
			Kind:           entity.SearchKindDepartures,
			Query:          airportCode,
			Date:           date,
			OriginResolved: origin != nil,
		}, err)
		return nil, err
	}

	flights := NormalizeBatch(raws, "")
	enriched, coordinated := s.enrich(ctx, log, flights)

	result := &entity.DepartureSearchResult{
		Airport: airportCode,
		Origin:  origin,
		Flights: enriched,
		Routes:  buildRoutes(origin, enriched),
	}

	log.Info("Departures search completed",
		"flights", len(enriched),
		"coordinatedDestinations", coordinated,
		"originResolved", origin != nil)

	s.finish(ctx, started, &entity.SearchRecord{
		Kind:           entity.SearchKindDepartures,
		Query:          airportCode,
		Date:           date,
		ResultCount:    len(enriched),
		EnrichedCount:  coordinated,
		OriginResolved: origin != nil,
	}, nil)
	return result, nil
}

// RecentSearches returns the latest search records, newest first
func (s *FlightSearchService) RecentSearches(ctx context.Context, limit int) ([]*entity.SearchRecord, error) {
	if s.history == nil {
		return []*entity.SearchRecord{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.history.FindRecent(ctx, limit)
}

// enrich returns a new batch with destination data, plus the number of distinct
// destinations that received coordinates.
func (s *FlightSearchService) enrich(ctx context.Context, log logger.Logger, flights []entity.Flight) ([]entity.EnrichedFlight, int) {
	codes := DestinationCodes(flights, MaxEnrichedDestinations)
	allowed := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		allowed[code] = struct{}{}
	}

	if _, err := s.resolver.ResolveMany(ctx, codes); err != nil {
		failures := 1
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			failures = len(joined.Unwrap())
		}
		s.metrics.EnrichmentFailures.Add(float64(failures))
		log.Warn("Some destinations were not resolved", "failed", failures, "error", err)
	}

	coordinated := make(map[string]struct{}, len(codes))
	enriched := make([]entity.EnrichedFlight, len(flights))
	for i, flight := range flights {
		name, code, ok := ParseDestination(flight.Destination)
		item := entity.EnrichedFlight{
			Flight:          flight,
			DestinationName: name,
		}
		if ok {
			item.DestinationIATA = code
			if _, inSet := allowed[code]; inSet {
				if info, hit := s.resolver.Cache().Get(code); hit {
					item.DestinationCoords = info
					coordinated[code] = struct{}{}
				}
			}
		}
		enriched[i] = item
	}

	return enriched, len(coordinated)
}

// DestinationCodes returns the distinct destination codes of flights in batch
// order, stopping after limit codes. Unparseable destinations are skipped.
func DestinationCodes(flights []entity.Flight, limit int) []string {
	codes := make([]string, 0, limit)
	seen := make(map[string]struct{}, limit)
	for _, flight := range flights {
		if len(codes) >= limit {
			break
		}
		_, code, ok := ParseDestination(flight.Destination)
		if !ok {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func buildRoutes(origin *entity.AirportInfo, flights []entity.EnrichedFlight) []entity.RouteLine {
	routes := make([]entity.RouteLine, 0)
	if origin == nil {
		return routes
	}

	seen := make(map[string]struct{})
	for _, flight := range flights {
		if flight.DestinationCoords == nil {
			continue
		}
		if _, dup := seen[flight.DestinationIATA]; dup {
			continue
		}
		seen[flight.DestinationIATA] = struct{}{}
		routes = append(routes, entity.RouteLine{From: *origin, To: *flight.DestinationCoords})
	}
	return routes
}

func normalizeQuery(code, date string) (string, string, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return "", "", fmt.Errorf("%w: code is required", entity.ErrInvalidInput)
	}
	date, err := utils.ParseDate(date)
	if err != nil {
		return "", "", fmt.Errorf("%w: date must be YYYY-MM-DD", entity.ErrInvalidInput)
	}
	return code, date, nil
}

// finish records metrics, history and the completion event. History and events
// are best-effort and never change the search result.
func (s *FlightSearchService) finish(ctx context.Context, started time.Time, record *entity.SearchRecord, searchErr error) {
	elapsed := time.Since(started)
	outcome := searchOutcome(record.ResultCount, searchErr)

	s.metrics.Searches.WithLabelValues(record.Kind, outcome).Inc()
	s.metrics.SearchDuration.WithLabelValues(record.Kind).Observe(elapsed.Seconds())

	record.ID = uuid.NewString()
	record.Mode = s.mode
	record.DurationMs = elapsed.Milliseconds()
	record.CreatedAt = time.Now().UTC()
	if searchErr != nil {
		record.Error = searchErr.Error()
		s.logger.Error("Search failed", "kind", record.Kind, "query", record.Query, "error", searchErr)
	}

	if s.history != nil {
		if err := s.history.Save(ctx, record); err != nil {
			s.logger.Warn("Failed to save search record", "id", record.ID, "error", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishSearchCompleted(ctx, record); err != nil {
			s.logger.Warn("Failed to publish search event", "id", record.ID, "error", err)
		}
	}
}

func searchOutcome(count int, err error) string {
	switch {
	case errors.Is(err, entity.ErrRateLimited):
		return metrics.OutcomeRateLimited
	case err != nil:
		return metrics.OutcomeError
	case count == 0:
		return metrics.OutcomeEmpty
	default:
		return metrics.OutcomeSuccess
	}
}
