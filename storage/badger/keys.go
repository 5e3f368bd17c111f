package badger

import (
	"fmt"

	"github.com/cinevec/cinevec/core"
)

// Key prefixes for different data types
const (
	vectorEntryPrefix = "movvec"
	metaScopeKey      = "movmeta:scope"
)

// makeVectorEntryKey generates a key for a cached embedding by movie ID.
func makeVectorEntryKey(id core.MovieID) []byte {
	return []byte(fmt.Sprintf("%s:%d", vectorEntryPrefix, id))
}

// vectorEntryKeyPrefix is the iteration prefix covering all cached embeddings.
func vectorEntryKeyPrefix() []byte {
	return []byte(vectorEntryPrefix + ":")
}

// parseVectorEntryKey extracts the movie ID from an entry key.
func parseVectorEntryKey(key []byte) (core.MovieID, error) {
	var id uint32
	if _, err := fmt.Sscanf(string(key), vectorEntryPrefix+":%d", &id); err != nil {
		return 0, fmt.Errorf("malformed entry key %q: %w", key, err)
	}
	return core.MovieID(id), nil
}
