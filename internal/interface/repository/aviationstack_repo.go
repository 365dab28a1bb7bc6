package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"
)

const (
	DefaultAviationstackURL = "http://api.aviationstack.com/v1"
	defaultUpstreamTimeout  = 30 * time.Second
	maxResponseBytes        = 4 << 20
)

// AviationstackRepository calls the aviationstack REST API
type AviationstackRepository struct {
	logger  logger.Logger
	metrics *metrics.Metrics
	baseURL string
	apiKey  string
	client  *http.Client
	timeout time.Duration
}

// AviationstackOption configures an AviationstackRepository
type AviationstackOption func(*AviationstackRepository)

// WithHTTPClient replaces the default HTTP client. A nil client keeps the default.
func WithHTTPClient(client *http.Client) AviationstackOption {
	return func(r *AviationstackRepository) {
		r.client = client
	}
}

// WithBaseURL points the repository at another API root
func WithBaseURL(baseURL string) AviationstackOption {
	return func(r *AviationstackRepository) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout of the default client. A client passed
// with WithHTTPClient keeps its own timeout.
func WithTimeout(timeout time.Duration) AviationstackOption {
	return func(r *AviationstackRepository) {
		r.timeout = timeout
	}
}

// NewAviationstackRepository creates the live lookup service
func NewAviationstackRepository(apiKey string, logger logger.Logger, m *metrics.Metrics, opts ...AviationstackOption) repository.LookupService {
	r := &AviationstackRepository{
		logger:  logger,
		metrics: m,
		baseURL: DefaultAviationstackURL,
		apiKey:  apiKey,
		timeout: defaultUpstreamTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = &http.Client{Timeout: r.timeout}
	}
	return r
}

// LookupFlight fetches flights by IATA flight number
func (r *AviationstackRepository) LookupFlight(ctx context.Context, flightIATA, date string) ([]entity.UpstreamFlight, error) {
	params := url.Values{}
	params.Set("flight_iata", flightIATA)
	if date != "" {
		params.Set("flight_date", date)
	}
	return r.fetchFlights(ctx, "lookup_flight", params)
}

// LookupDeparturesByAirport fetches flights departing from an airport
func (r *AviationstackRepository) LookupDeparturesByAirport(ctx context.Context, depIATA, date string) ([]entity.UpstreamFlight, error) {
	params := url.Values{}
	params.Set("dep_iata", depIATA)
	if date != "" {
		params.Set("flight_date", date)
	}
	return r.fetchFlights(ctx, "lookup_departures", params)
}

// LookupAirport fetches one airport's coordinates. An empty result is entity.ErrAirportNotFound.
func (r *AviationstackRepository) LookupAirport(ctx context.Context, iata string) (*entity.AirportInfo, error) {
	params := url.Values{}
	params.Set("iata_code", iata)

	var response entity.AirportsResponse
	if err := r.get(ctx, "lookup_airport", "/airports", params, &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, r.fail("lookup_airport", providerError(http.StatusOK, response.Error))
	}
	if len(response.Data) == 0 {
		r.metrics.UpstreamRequests.WithLabelValues("lookup_airport", metrics.OutcomeEmpty).Inc()
		return nil, fmt.Errorf("%w: %s", entity.ErrAirportNotFound, iata)
	}

	record := response.Data[0]
	for _, candidate := range response.Data {
		if strings.EqualFold(candidate.IATACode, iata) {
			record = candidate
			break
		}
	}

	if !record.Latitude.Valid || !record.Longitude.Valid {
		return nil, r.fail("lookup_airport", &entity.UpstreamError{
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("airport %s has no coordinates", iata),
		})
	}

	code := record.IATACode
	if code == "" {
		code = iata
	}
	name := record.AirportName
	if name == "" {
		name = code
	}

	r.metrics.UpstreamRequests.WithLabelValues("lookup_airport", metrics.OutcomeSuccess).Inc()
	return &entity.AirportInfo{
		IATA: code,
		Name: name,
		Lat:  record.Latitude.Value,
		Lng:  record.Longitude.Value,
	}, nil
}

func (r *AviationstackRepository) fetchFlights(ctx context.Context, operation string, params url.Values) ([]entity.UpstreamFlight, error) {
	var response entity.FlightsResponse
	if err := r.get(ctx, operation, "/flights", params, &response); err != nil {
		return nil, err
	}
	if response.Error != nil {
		return nil, r.fail(operation, providerError(http.StatusOK, response.Error))
	}
	if len(response.Data) == 0 {
		r.metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeEmpty).Inc()
		return []entity.UpstreamFlight{}, nil
	}

	r.metrics.UpstreamRequests.WithLabelValues(operation, metrics.OutcomeSuccess).Inc()
	return response.Data, nil
}

// get issues one GET request and decodes a 2xx body into out. Nothing is retried.
func (r *AviationstackRepository) get(ctx context.Context, operation, path string, params url.Values, out interface{}) error {
	if r.apiKey == "" {
		return entity.ErrMissingCredentials
	}

	r.logger.Debug("Calling aviation data provider", "operation", operation, "path", path, "query", params.Encode())

	params.Set("access_key", r.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", r.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// url.Error carries the full URL, which includes the key
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return r.fail(operation, &entity.UpstreamError{Message: fmt.Sprintf("API Error: %v", err)})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return r.fail(operation, &entity.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API Error: failed to read response: %v", err),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error *entity.ProviderError `json:"error"`
		}
		_ = json.Unmarshal(body, &envelope)
		if envelope.Error != nil {
			return r.fail(operation, providerError(resp.StatusCode, envelope.Error))
		}
		return r.fail(operation, &entity.UpstreamError{
			StatusCode:  resp.StatusCode,
			Message:     fmt.Sprintf("API Error: %s", http.StatusText(resp.StatusCode)),
			RateLimited: resp.StatusCode == http.StatusTooManyRequests,
		})
	}

	if err := json.Unmarshal(body, out); err != nil {
		return r.fail(operation, &entity.UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("API Error: malformed response: %v", err),
		})
	}
	return nil
}

func (r *AviationstackRepository) fail(operation string, err *entity.UpstreamError) error {
	outcome := metrics.OutcomeError
	if err.RateLimited {
		outcome = metrics.OutcomeRateLimited
	}
	r.metrics.UpstreamRequests.WithLabelValues(operation, outcome).Inc()
	r.logger.Warn("Aviation data provider call failed",
		"operation", operation,
		"status", err.StatusCode,
		"code", err.Code,
		"rateLimited", err.RateLimited,
		"error", err.Message)
	return err
}

var rateLimitCodes = map[string]bool{
	"usage_limit_reached": true,
	"rate_limit_reached":  true,
	"too_many_requests":   true,
}

// providerError converts the provider's error envelope, keeping its message verbatim
func providerError(status int, pe *entity.ProviderError) *entity.UpstreamError {
	message := pe.Info
	if message == "" {
		message = pe.Message
	}
	if message == "" {
		message = "API returned an error"
	}

	lower := strings.ToLower(message)
	rateLimited := status == http.StatusTooManyRequests ||
		rateLimitCodes[strings.ToLower(pe.Code)] ||
		strings.Contains(lower, "quota") ||
		strings.Contains(lower, "rate limit") ||
		strings.Contains(lower, "usage limit")

	return &entity.UpstreamError{
		StatusCode:  status,
		Code:        pe.Code,
		Message:     message,
		RateLimited: rateLimited,
	}
}
