package usecase

import (
	"sync"

	"flightlookup-service/internal/domain/entity"
)

// AirportCache is an append-only IATA to AirportInfo map. The first stored
// value for a code wins and is never replaced or evicted.
type AirportCache struct {
	mu      sync.RWMutex
	entries map[string]entity.AirportInfo
}

// NewAirportCache creates an empty cache
func NewAirportCache() *AirportCache {
	return &AirportCache{
		entries: make(map[string]entity.AirportInfo),
	}
}

// Get returns a copy of the cached value for code
func (c *AirportCache) Get(code string) (*entity.AirportInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, ok := c.entries[code]
	if !ok {
		return nil, false
	}
	return &info, true
}

// Store keeps info under code unless the code is already present, and returns
// whichever value the cache now holds.
func (c *AirportCache) Store(code string, info entity.AirportInfo) entity.AirportInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[code]; ok {
		return existing
	}
	c.entries[code] = info
	return info
}

// Len returns the number of cached airports
func (c *AirportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
