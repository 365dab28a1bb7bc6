package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisClientInterface defines the Redis operations used by the batch cache
type RedisClientInterface interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisBatchCache stores upstream flight batches as JSON with a TTL
type RedisBatchCache struct {
	client RedisClientInterface
	ttl    time.Duration
}

// NewRedisBatchCache creates a new Redis batch cache
func NewRedisBatchCache(client RedisClientInterface, ttl time.Duration) repository.BatchCache {
	return &RedisBatchCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached batch for key. A missing key is found=false with no error.
func (c *RedisBatchCache) Get(ctx context.Context, key string) ([]entity.UpstreamFlight, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached batch: %w", err)
	}

	var batch []entity.UpstreamFlight
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached batch: %w", err)
	}
	return batch, true, nil
}

// Set stores batch under key for the cache TTL
func (c *RedisBatchCache) Set(ctx context.Context, key string, batch []entity.UpstreamFlight) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}

// CachedLookupService serves repeated flight lookups from a BatchCache.
// Airport lookups pass straight through; errors are never cached. Keys carry the
// lookup mode so live and mock deployments sharing one Redis never mix batches.
type CachedLookupService struct {
	repository.LookupService
	mode    string
	cache   repository.BatchCache
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewCachedLookupService wraps next with cache, keying entries under mode
func NewCachedLookupService(next repository.LookupService, mode string, cache repository.BatchCache, logger logger.Logger, m *metrics.Metrics) repository.LookupService {
	return &CachedLookupService{
		LookupService: next,
		mode:          mode,
		cache:         cache,
		logger:        logger,
		metrics:       m,
	}
}

// LookupFlight implements repository.LookupService
func (s *CachedLookupService) LookupFlight(ctx context.Context, flightIATA, date string) ([]entity.UpstreamFlight, error) {
	return s.cached(ctx, batchKey(s.mode, "flight", flightIATA, date), func() ([]entity.UpstreamFlight, error) {
		return s.LookupService.LookupFlight(ctx, flightIATA, date)
	})
}

// LookupDeparturesByAirport implements repository.LookupService
func (s *CachedLookupService) LookupDeparturesByAirport(ctx context.Context, depIATA, date string) ([]entity.UpstreamFlight, error) {
	return s.cached(ctx, batchKey(s.mode, "departures", depIATA, date), func() ([]entity.UpstreamFlight, error) {
		return s.LookupService.LookupDeparturesByAirport(ctx, depIATA, date)
	})
}

func (s *CachedLookupService) cached(ctx context.Context, key string, fetch func() ([]entity.UpstreamFlight, error)) ([]entity.UpstreamFlight, error) {
	batch, found, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.BatchCacheRequests.WithLabelValues("error").Inc()
		s.logger.Warn("Batch cache read failed", "key", key, "error", err)
	case found:
		s.metrics.BatchCacheRequests.WithLabelValues("hit").Inc()
		return batch, nil
	default:
		s.metrics.BatchCacheRequests.WithLabelValues("miss").Inc()
	}

	batch, err = fetch()
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, batch); err != nil {
		s.logger.Warn("Batch cache write failed", "key", key, "error", err)
	}
	return batch, nil
}

func batchKey(mode, kind, code, date string) string {
	if date == "" {
		date = "any"
	}
	return fmt.Sprintf("flights:%s:%s:%s:%s", mode, kind, code, date)
}
