package ports

import (
	"context"
	"resilient-route-service/internal/domain"
	"time"
)

// CacheEntry holds everything a rescore needs to avoid repeating geocoding
// and candidate fetch: the enriched candidates and endpoint data from the
// most recent full analysis of a key.
type CacheEntry struct {
	Origin       string                  `json:"origin"`
	Destination  string                  `json:"destination"`
	OriginCoords domain.Coordinates      `json:"originCoords"`
	DestCoords   domain.Coordinates      `json:"destCoords"`
	Candidates   []domain.RouteCandidate `json:"candidates"`
	AnalyzedAt   time.Time               `json:"analyzedAt"`
}

// Port: the injectable key-value store backing rescores.
//
// Keys are normalized origin|destination pairs (services.CacheKey). Entries
// have no expiry: validity means "the most recent full analysis", and each
// full analysis overwrites its key. The store is constructed per service
// instance and closed with it; there is no package-level cache.
type RouteCache interface {
	// Put stores entry under key, unconditionally overwriting any prior entry.
	Put(ctx context.Context, key string, entry CacheEntry) error
	// Get returns the entry for key; found is false on a miss.
	Get(ctx context.Context, key string) (entry CacheEntry, found bool, err error)
	// Clear removes all entries.
	Clear(ctx context.Context) error
	// Close releases the underlying store.
	Close() error
}
