package usecase

import (
	"context"
	"errors"
	"time"

	"flightlookup-service/internal/domain/entity"
	"flightlookup-service/internal/domain/repository"
	"flightlookup-service/pkg/logger"
	"flightlookup-service/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

// sharedLookupTimeout bounds a coalesced lookup once it is detached from its callers
const sharedLookupTimeout = 30 * time.Second

// AirportResolver resolves airport coordinates, consulting its cache before the lookup service
type AirportResolver struct {
	lookup  repository.LookupService
	cache   *AirportCache
	group   singleflight.Group
	logger  logger.Logger
	metrics *metrics.Metrics
}

// NewAirportResolver creates a resolver that owns cache
func NewAirportResolver(lookup repository.LookupService, cache *AirportCache, logger logger.Logger, m *metrics.Metrics) *AirportResolver {
	if cache == nil {
		cache = NewAirportCache()
	}
	return &AirportResolver{
		lookup:  lookup,
		cache:   cache,
		logger:  logger,
		metrics: m,
	}
}

// Cache exposes the resolver's cache for read access
func (r *AirportResolver) Cache() *AirportCache {
	return r.cache
}

// Resolve returns the coordinates for iata. A cached code never reaches the
// lookup service; a failed lookup returns *entity.ResolutionError and caches nothing.
// Concurrent misses for the same code share one lookup. The shared lookup is not
// tied to any single caller's cancellation; a caller whose ctx ends stops waiting
// without affecting the others.
func (r *AirportResolver) Resolve(ctx context.Context, iata string) (*entity.AirportInfo, error) {
	if info, ok := r.cache.Get(iata); ok {
		r.metrics.AirportCacheHits.Inc()
		return info, nil
	}
	r.metrics.AirportCacheMisses.Inc()

	ch := r.group.DoChan(iata, func() (interface{}, error) {
		// another caller may have stored it while we waited
		if info, ok := r.cache.Get(iata); ok {
			return *info, nil
		}

		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLookupTimeout)
		defer cancel()

		info, err := r.lookup.LookupAirport(lookupCtx, iata)
		if err != nil {
			return nil, err
		}
		if info == nil {
			return nil, entity.ErrAirportNotFound
		}
		return r.cache.Store(iata, *info), nil
	})

	select {
	case <-ctx.Done():
		return nil, &entity.ResolutionError{IATA: iata, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, &entity.ResolutionError{IATA: iata, Err: res.Err}
		}
		info := res.Val.(entity.AirportInfo)
		return &info, nil
	}
}

// ResolveMany resolves each distinct code in order, one at a time. A failure on one
// code does not stop the others; failures are joined into the returned error
// alongside the successful results.
func (r *AirportResolver) ResolveMany(ctx context.Context, codes []string) (map[string]*entity.AirportInfo, error) {
	resolved := make(map[string]*entity.AirportInfo, len(codes))
	seen := make(map[string]struct{}, len(codes))
	var errs []error

	for _, code := range codes {
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}

		if err := ctx.Err(); err != nil {
			errs = append(errs, &entity.ResolutionError{IATA: code, Err: err})
			continue
		}

		info, err := r.Resolve(ctx, code)
		if err != nil {
			r.logger.Warn("Airport resolution failed", "iata", code, "error", err)
			errs = append(errs, err)
			continue
		}
		resolved[code] = info
	}

	return resolved, errors.Join(errs...)
}
