package core

//go:generate go run ../cmd/musgen

import (
	"encoding/hex"
	"math"
	"slices"

	"github.com/go-crypt/x/blake2b"
)

// MovieID is the stable numeric identifier of a movie in the source dataset.
// It fits the 4-byte identifier field of the binary output formats; zero is
// not a valid identifier.
type MovieID uint32

// Movie is a single dataset record after quality filtering.
// All text fields are UTF-8; Title and PosterPath are bounded to 255 bytes
// so they fit the single-byte length prefixes of the output encoders.
type Movie struct {
	ID         MovieID
	Title      string
	PosterPath string
	Text       string // embedding input derived from title/tagline/overview
	IMDBNumber uint32 // numeric part of the "tt"-prefixed cross-reference, 0 if absent
	Score      uint8  // vote average scaled to 0-100
}

// CacheEntry is a cached embedding for one movie: the vector together with
// the cache key it was computed under. An entry may be reused only while its
// key equals the key freshly derived from the movie's current text and scope.
type CacheEntry struct {
	Key    string
	Vector []float32
}

// CacheKey derives the reuse key for an embedding: a BLAKE2b-256 hex digest
// over scope and text. Changing the scope (embedding backend or model) or the
// text yields a different key, which forces regeneration.
func CacheKey(scope, text string) string {
	h, _ := blake2b.New(32, nil) // 32 bytes = 256 bits
	h.Write([]byte(scope))
	h.Write([]byte{'\n'})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// ScoreFromVoteAverage scales a 0-10 rating to the 0-100 integer range used
// by the metadata output format. Values are rounded half-up and clamped.
func ScoreFromVoteAverage(voteAverage float64) uint8 {
	scaled := math.Round(voteAverage * 10)
	if scaled < 0 {
		return 0
	}
	if scaled > 100 {
		return 100
	}
	return uint8(scaled)
}

// CacheSnapshot is the persisted shape of the embedding cache: the scope tag
// plus parallel arrays of identifiers, cache keys and vectors.
type CacheSnapshot struct {
	Scope   string
	IDs     []MovieID
	Keys    []string
	Vectors [][]float32
}

// NewCacheSnapshot builds a snapshot from an in-memory cache mapping.
// Entries are ordered by ascending identifier so that repeated saves of the
// same cache produce identical bytes.
func NewCacheSnapshot(scope string, entries map[MovieID]CacheEntry) *CacheSnapshot {
	ids := make([]MovieID, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	s := &CacheSnapshot{
		Scope:   scope,
		IDs:     ids,
		Keys:    make([]string, len(ids)),
		Vectors: make([][]float32, len(ids)),
	}
	for i, id := range ids {
		entry := entries[id]
		s.Keys[i] = entry.Key
		s.Vectors[i] = entry.Vector
	}
	return s
}

// Entries converts the snapshot's parallel arrays back into the in-memory
// cache mapping.
func (s *CacheSnapshot) Entries() map[MovieID]CacheEntry {
	entries := make(map[MovieID]CacheEntry, len(s.IDs))
	for i, id := range s.IDs {
		entries[id] = CacheEntry{Key: s.Keys[i], Vector: s.Vectors[i]}
	}
	return entries
}

// LegacyCacheSnapshot is the pre-scope cache container payload (format
// version 1): identifiers and vectors only, no scope tag and no cache keys.
type LegacyCacheSnapshot struct {
	IDs     []MovieID
	Vectors [][]float32
}

// Entries normalizes a legacy snapshot into the current in-memory shape.
// Legacy entries carry empty cache keys: without a key there is no proof the
// source text is unchanged, so they never satisfy a reuse check and are
// regenerated on the next run.
func (s *LegacyCacheSnapshot) Entries() map[MovieID]CacheEntry {
	entries := make(map[MovieID]CacheEntry, len(s.IDs))
	for i, id := range s.IDs {
		entries[id] = CacheEntry{Vector: s.Vectors[i]}
	}
	return entries
}
