package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/interface/api"
	"flightlookup-service/internal/interface/repository"
	"flightlookup-service/internal/usecase"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFixtureRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewNopLogger()
	m := metrics.NewMetricsWithRegistry("test", prometheus.NewRegistry())
	lookup := repository.NewFixtureRepository(log)
	resolver := usecase.NewAirportResolver(lookup, nil, log, m)
	service := usecase.NewFlightSearchService(lookup, resolver, nil, nil, log, m, "mock")
	return api.NewRouter(api.NewHandler(service, log, "mock"), nil, 5*time.Second)
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]interface{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHandler_Health(t *testing.T) {
	rec, body := get(t, newFixtureRouter(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "mock", body["mode"])
}

func TestHandler_GetFlight(t *testing.T) {
	rec, body := get(t, newFixtureRouter(t), "/api/flights/ba123")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])

	flights := body["flights"].([]interface{})
	flight := flights[0].(map[string]interface{})
	assert.Equal(t, "BA123", flight["flightNumber"])
	assert.Equal(t, "London Heathrow (LHR)", flight["origin"])
	assert.Equal(t, "In Air", flight["status"])
	assert.Equal(t, "3h 0m", flight["duration"])
	assert.Contains(t, flight["calendarUrl"], "https://calendar.google.com/calendar/render")
}

func TestHandler_GetFlightNoMatch(t *testing.T) {
	rec, body := get(t, newFixtureRouter(t), "/api/flights/ZZ000")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), body["count"])
	assert.Empty(t, body["flights"])
}

func TestHandler_GetAirportDepartures(t *testing.T) {
	rec, body := get(t, newFixtureRouter(t), "/api/airports/JFK/departures?date=2026-01-30")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "JFK", body["airport"])
	origin := body["origin"].(map[string]interface{})
	assert.Equal(t, "John F. Kennedy International", origin["name"])

	flights := body["flights"].([]interface{})
	require.Len(t, flights, 3)
	wantDestinations := []string{"LAX", "SFO", "LHR"}
	for i, raw := range flights {
		flight := raw.(map[string]interface{})
		assert.Equal(t, wantDestinations[i], flight["destinationIata"])
		assert.NotNil(t, flight["destinationCoords"])
	}
	assert.Len(t, body["routes"], 3)
}

func TestHandler_GetAirportDeparturesUnknownOrigin(t *testing.T) {
	rec, body := get(t, newFixtureRouter(t), "/api/airports/QQQ/departures")
	require.Equal(t, http.StatusOK, rec.Code)

	origin := body["origin"].(map[string]interface{})
	assert.Equal(t, "QQQ Airport", origin["name"])
	assert.Equal(t, true, origin["synthetic"])
}

func TestHandler_GetAirportAndFlights(t *testing.T) {
	router := newFixtureRouter(t)

	rec, body := get(t, router, "/api/airports/cdg")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CDG", body["iata"])

	rec, body = get(t, router, "/api/airports/LAX/flights")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(3), body["count"])
}

func TestHandler_SearchesWithoutHistory(t *testing.T) {
	router := newFixtureRouter(t)

	rec, body := get(t, router, "/api/searches?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["searches"])

	rec, _ = get(t, router, "/api/searches?limit=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// failingSearcher returns the same error from every operation
type failingSearcher struct {
	err error
}

func (s failingSearcher) SearchFlight(ctx context.Context, flightNumber, date string) ([]entity.Flight, error) {
	return nil, s.err
}

func (s failingSearcher) SearchFlightsByAirport(ctx context.Context, airportCode, date string) ([]entity.Flight, error) {
	return nil, s.err
}

func (s failingSearcher) GetAirportInfo(ctx context.Context, airportCode string) (*entity.AirportInfo, error) {
	return nil, s.err
}

func (s failingSearcher) SearchAirportDepartures(ctx context.Context, airportCode, date string) (*entity.DepartureSearchResult, error) {
	return nil, s.err
}

func (s failingSearcher) RecentSearches(ctx context.Context, limit int) ([]*entity.SearchRecord, error) {
	return nil, s.err
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: date must be YYYY-MM-DD", entity.ErrInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid input: date must be YYYY-MM-DD",
		},
		{
			name:       "airport not found",
			err:        &entity.ResolutionError{IATA: "ZZZ", Err: fmt.Errorf("%w: ZZZ", entity.ErrAirportNotFound)},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "rate limited",
			err:        &entity.UpstreamError{Message: "quota exceeded", RateLimited: true},
			wantStatus: http.StatusTooManyRequests,
			wantError:  "rate limited, wait and retry",
		},
		{
			name:       "missing credentials",
			err:        entity.ErrMissingCredentials,
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "upstream failure",
			err:        &entity.UpstreamError{StatusCode: 500, Message: "API Error: Internal Server Error"},
			wantStatus: http.StatusBadGateway,
			wantError:  "API Error: Internal Server Error",
		},
		{
			name:       "timeout",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantError:  "request timed out",
		},
		{
			name:       "unknown",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := api.NewHandler(failingSearcher{err: tt.err}, logger.NewNopLogger(), "live")
			router := api.NewRouter(handler, nil, 5*time.Second)

			rec, body := get(t, router, "/api/flights/AA123")
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestHandler_RateLimitCarriesDetail(t *testing.T) {
	handler := api.NewHandler(failingSearcher{err: &entity.UpstreamError{Message: "quota exceeded", RateLimited: true}}, logger.NewNopLogger(), "live")
	router := api.NewRouter(handler, nil, 5*time.Second)

	rec, body := get(t, router, "/api/airports/JFK/departures")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	assert.Equal(t, "quota exceeded", body["detail"])
}

func TestHandler_MetricsEndpoint(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# metrics"))
	})
	handler := api.NewHandler(failingSearcher{}, logger.NewNopLogger(), "live")
	router := api.NewRouter(handler, metricsHandler, 5*time.Second)

	rec, _ := get(t, router, "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "# metrics", rec.Body.String())
}
