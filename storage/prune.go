package storage

import "github.com/cinevec/cinevec/core"

// PruneEntries removes entries whose identifiers are absent from keep and
// returns the number removed. The mapping is mutated in place; persisting
// the pruned mapping is the caller's responsibility.
func PruneEntries(entries map[core.MovieID]core.CacheEntry, keep map[core.MovieID]bool) int {
	removed := 0
	for id := range entries {
		if !keep[id] {
			delete(entries, id)
			removed++
		}
	}
	return removed
}
