package storage

import (
	"context"

	"github.com/cinevec/cinevec/core"
)

// CacheStore persists the embedding cache between pipeline runs.
// A store is exclusively owned by one run for its duration; none of the
// implementations lock against concurrent runs over the same cache.
type CacheStore interface {
	// Load reads the persisted cache. A store that has never been written
	// returns an empty scope and an empty entry map, not an error.
	// Legacy caches written before scopes existed load with empty cache
	// keys, so every legacy entry fails reuse checks and is regenerated.
	Load(ctx context.Context) (scope string, entries map[core.MovieID]core.CacheEntry, err error)

	// Save replaces the persisted cache with the given scope and entries.
	// A crash mid-save must never corrupt the store: implementations either
	// replace the whole cache atomically or apply it in transactional
	// batches whose partial application is still a readable cache.
	Save(ctx context.Context, scope string, entries map[core.MovieID]core.CacheEntry) error

	// Prune removes persisted entries whose identifiers are absent from
	// keep. Returns the number of entries removed.
	Prune(ctx context.Context, keep map[core.MovieID]bool) (removed int, err error)

	// Close releases resources held by the store.
	Close() error
}
