package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"flightlookup-service/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-memory RedisClientInterface
type fakeRedis struct {
	data   map[string]string
	ttls   map[string]time.Duration
	getErr error
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisBatchCache_RoundTrip(t *testing.T) {
	client := newFakeRedis()
	cache := NewRedisBatchCache(client, 2*time.Minute)
	ctx := context.Background()

	_, found, err := cache.Get(ctx, "flights:flight:BA123:any")
	require.NoError(t, err)
	assert.False(t, found)

	batch := fixtureFlights()[:1]
	require.NoError(t, cache.Set(ctx, "flights:flight:BA123:any", batch))
	assert.Equal(t, 2*time.Minute, client.ttls["flights:flight:BA123:any"])

	got, found, err := cache.Get(ctx, "flights:flight:BA123:any")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, batch, got)
}

func TestRedisBatchCache_CorruptValue(t *testing.T) {
	client := newFakeRedis()
	client.data["k"] = "not json"
	cache := NewRedisBatchCache(client, time.Minute)

	_, found, err := cache.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, found)
}

// scriptedLookup returns a fixed batch and counts flight lookups
type scriptedLookup struct {
	*FixtureRepository
	batch []entity.UpstreamFlight
	err   error
	calls int
}

func (s *scriptedLookup) LookupFlight(ctx context.Context, flightIATA, date string) ([]entity.UpstreamFlight, error) {
	s.calls++
	return s.batch, s.err
}

func (s *scriptedLookup) LookupDeparturesByAirport(ctx context.Context, depIATA, date string) ([]entity.UpstreamFlight, error) {
	s.calls++
	return s.batch, s.err
}

func TestCachedLookup_SecondCallIsServedFromCache(t *testing.T) {
	client := newFakeRedis()
	m := testMetrics()
	next := &scriptedLookup{batch: fixtureFlights()[:2]}
	svc := NewCachedLookupService(next, "live", NewRedisBatchCache(client, time.Minute), testLogger(), m)
	ctx := context.Background()

	first, err := svc.LookupDeparturesByAirport(ctx, "JFK", "2026-01-30")
	require.NoError(t, err)
	second, err := svc.LookupDeparturesByAirport(ctx, "JFK", "2026-01-30")
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	assert.Contains(t, client.data, "flights:live:departures:JFK:2026-01-30")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchCacheRequests.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchCacheRequests.WithLabelValues("hit")))
}

func TestCachedLookup_ErrorsAreNotCached(t *testing.T) {
	client := newFakeRedis()
	next := &scriptedLookup{err: &entity.UpstreamError{Message: "quota exceeded", RateLimited: true}}
	svc := NewCachedLookupService(next, "live", NewRedisBatchCache(client, time.Minute), testLogger(), testMetrics())

	_, err := svc.LookupFlight(context.Background(), "BA123", "")
	assert.True(t, errors.Is(err, entity.ErrRateLimited))
	assert.Empty(t, client.data)
}

func TestCachedLookup_CacheFailureFallsThrough(t *testing.T) {
	client := newFakeRedis()
	client.getErr = errors.New("connection refused")
	client.setErr = errors.New("connection refused")
	m := testMetrics()
	next := &scriptedLookup{batch: fixtureFlights()[:1]}
	svc := NewCachedLookupService(next, "live", NewRedisBatchCache(client, time.Minute), testLogger(), m)

	got, err := svc.LookupFlight(context.Background(), "BA123", "")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BatchCacheRequests.WithLabelValues("error")))
}

func TestCachedLookup_EmptyBatchIsCached(t *testing.T) {
	client := newFakeRedis()
	next := &scriptedLookup{batch: []entity.UpstreamFlight{}}
	svc := NewCachedLookupService(next, "live", NewRedisBatchCache(client, time.Minute), testLogger(), testMetrics())

	_, err := svc.LookupFlight(context.Background(), "ZZ000", "")
	require.NoError(t, err)

	var stored []entity.UpstreamFlight
	require.NoError(t, json.Unmarshal([]byte(client.data["flights:live:flight:ZZ000:any"]), &stored))
	assert.Empty(t, stored)
}

func TestBatchKey(t *testing.T) {
	assert.Equal(t, "flights:live:flight:BA123:any", batchKey("live", "flight", "BA123", ""))
	assert.Equal(t, "flights:mock:departures:JFK:2026-01-30", batchKey("mock", "departures", "JFK", "2026-01-30"))
}

func TestCachedLookup_ModesDoNotShareEntries(t *testing.T) {
	client := newFakeRedis()
	cache := NewRedisBatchCache(client, time.Minute)
	live := &scriptedLookup{batch: fixtureFlights()[:1]}
	mock := &scriptedLookup{batch: fixtureFlights()[1:]}
	liveSvc := NewCachedLookupService(live, "live", cache, testLogger(), testMetrics())
	mockSvc := NewCachedLookupService(mock, "mock", cache, testLogger(), testMetrics())
	ctx := context.Background()

	liveBatch, err := liveSvc.LookupDeparturesByAirport(ctx, "JFK", "")
	require.NoError(t, err)
	mockBatch, err := mockSvc.LookupDeparturesByAirport(ctx, "JFK", "")
	require.NoError(t, err)

	assert.Equal(t, 1, live.calls)
	assert.Equal(t, 1, mock.calls)
	assert.Len(t, liveBatch, 1)
	assert.Len(t, mockBatch, 2)
	assert.Len(t, client.data, 2)
}
