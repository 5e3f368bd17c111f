package storage

import (
	"testing"

	"github.com/cinevec/cinevec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalMovieID(t *testing.T) {
	tests := []struct {
		name string
		id   core.MovieID
	}{
		{"small ID", core.MovieID(42)},
		{"typical ID", core.MovieID(603)},
		{"max ID", core.MovieID(4294967295)}, // max uint32
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalMovieID(tt.id)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalMovieID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalMovieID_Invalid(t *testing.T) {
	_, err := UnmarshalMovieID([]byte{})
	assert.Error(t, err)
}

func TestMarshalUnmarshalCacheEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry *core.CacheEntry
	}{
		{
			name: "typical entry",
			entry: &core.CacheEntry{
				Key:    core.CacheKey("openai:nomic-embed-text", "The Matrix. A hacker discovers the truth."),
				Vector: []float32{0.1, -0.2, 0.3, 0.4},
			},
		},
		{
			name: "legacy entry without key",
			entry: &core.CacheEntry{
				Vector: []float32{1.5, 2.5},
			},
		},
		{
			name: "full-width vector",
			entry: &core.CacheEntry{
				Key:    "abc123",
				Vector: make([]float32, 768), // typical embedding model width
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Marshal
			data := MarshalCacheEntry(tt.entry)
			require.NotNil(t, data)
			require.NotEmpty(t, data)

			// Unmarshal
			decoded, err := UnmarshalCacheEntry(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.entry.Key, decoded.Key)
			// Handle nil vs empty slice
			if len(tt.entry.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.entry.Vector, decoded.Vector)
			}
		})
	}
}

func TestUnmarshalCacheEntry_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"invalid data", []byte{0xFF, 0xFF, 0xFF}},
		{"partial data", []byte{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalCacheEntry(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestMarshalUnmarshalCacheSnapshot(t *testing.T) {
	snapshot := &core.CacheSnapshot{
		Scope: "openai:nomic-embed-text",
		IDs:   []core.MovieID{11, 278, 603},
		Keys:  []string{"key-a", "key-b", "key-c"},
		Vectors: [][]float32{
			{0.1, 0.2},
			{0.3, 0.4},
			{-0.5, -0.6},
		},
	}

	data := MarshalCacheSnapshot(snapshot)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalCacheSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, snapshot.Scope, decoded.Scope)
	assert.Equal(t, snapshot.IDs, decoded.IDs)
	assert.Equal(t, snapshot.Keys, decoded.Keys)
	assert.Equal(t, snapshot.Vectors, decoded.Vectors)
}

func TestMarshalUnmarshalLegacyCacheSnapshot(t *testing.T) {
	legacy := &core.LegacyCacheSnapshot{
		IDs:     []core.MovieID{7, 9},
		Vectors: [][]float32{{1, 2, 3}, {4, 5, 6}},
	}

	data := MarshalLegacyCacheSnapshot(legacy)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalLegacyCacheSnapshot(data)
	require.NoError(t, err)

	assert.Equal(t, legacy.IDs, decoded.IDs)
	assert.Equal(t, legacy.Vectors, decoded.Vectors)
}

func TestSnapshotRoundTripConsistency(t *testing.T) {
	// byte-identical output across repeated encode cycles is what makes
	// unchanged runs produce unchanged cache files
	entries := map[core.MovieID]core.CacheEntry{
		603: {Key: "k1", Vector: []float32{0.25, 0.5}},
		11:  {Key: "k2", Vector: []float32{0.75, 1.0}},
	}

	first := MarshalCacheSnapshot(core.NewCacheSnapshot("scope", entries))
	second := MarshalCacheSnapshot(core.NewCacheSnapshot("scope", entries))

	assert.Equal(t, first, second)
}
