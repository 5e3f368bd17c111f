package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cinevec/cinevec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntries() map[core.MovieID]core.CacheEntry {
	return map[core.MovieID]core.CacheEntry{
		11:  {Key: "key-11", Vector: []float32{0.1, 0.2, 0.3}},
		278: {Key: "key-278", Vector: []float32{0.4, 0.5, 0.6}},
		603: {Key: "key-603", Vector: []float32{0.7, 0.8, 0.9}},
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing.cvec"))
	defer store.Close()

	scope, entries, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Empty(t, scope)
	assert.Empty(t, entries)
	assert.NotNil(t, entries, "cold cache must still be a usable map")
}

func TestFileStore_SaveLoad(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	defer store.Close()
	ctx := context.Background()

	want := testEntries()
	require.NoError(t, store.Save(ctx, "openai:nomic-embed-text", want))

	scope, got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "openai:nomic-embed-text", scope)
	require.Len(t, got, len(want))
	for id, entry := range want {
		assert.Equal(t, entry.Key, got[id].Key)
		assert.Equal(t, entry.Vector, got[id].Vector)
	}
}

func TestFileStore_SaveReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "cache.cvec"))
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "scope-a", testEntries()))
	require.NoError(t, store.Save(ctx, "scope-b", map[core.MovieID]core.CacheEntry{
		1: {Key: "only", Vector: []float32{1}},
	}))

	scope, entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scope-b", scope)
	assert.Len(t, entries, 1)

	// no stray temp files left behind
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileStore_Prune(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "scope", testEntries()))

	removed, err := store.Prune(ctx, map[core.MovieID]bool{11: true, 603: true})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	scope, entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scope", scope, "prune must not change the scope")
	assert.Len(t, entries, 2)
	assert.NotContains(t, entries, core.MovieID(278))
}

func TestFileStore_PruneNothing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "scope", testEntries()))

	removed, err := store.Prune(ctx, map[core.MovieID]bool{11: true, 278: true, 603: true})
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.cvec")
	require.NoError(t, os.WriteFile(path, []byte("not a cache container at all"), 0644))

	store := NewFileStore(path)
	defer store.Close()

	_, _, err := store.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadMagic)
}

func TestDecodeContainer_Truncated(t *testing.T) {
	_, err := DecodeContainer([]byte("CV"))
	assert.ErrorIs(t, err, ErrTruncatedData)
}

func TestDecodeContainer_UnsupportedVersion(t *testing.T) {
	data := EncodeContainer(core.NewCacheSnapshot("scope", nil))
	data[4] = 99 // clobber the version byte

	_, err := DecodeContainer(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeContainer_Legacy(t *testing.T) {
	legacy := &core.LegacyCacheSnapshot{
		IDs:     []core.MovieID{5, 42},
		Vectors: [][]float32{{0.5}, {4.2}},
	}
	payload := MarshalLegacyCacheSnapshot(legacy)

	data := []byte("CVEC")
	data = append(data, ContainerVersionLegacy)
	data = zstdEncoder.EncodeAll(payload, data)

	snapshot, err := DecodeContainer(data)
	require.NoError(t, err)

	assert.Empty(t, snapshot.Scope)
	assert.Equal(t, legacy.IDs, snapshot.IDs)
	for _, key := range snapshot.Keys {
		assert.Empty(t, key, "legacy entries must load without keys")
	}
	assert.Equal(t, legacy.Vectors, snapshot.Vectors)
}

func TestEncodeDecodeContainer_RoundTrip(t *testing.T) {
	entries := testEntries()
	snapshot := core.NewCacheSnapshot("openai:nomic-embed-text", entries)

	decoded, err := DecodeContainer(EncodeContainer(snapshot))
	require.NoError(t, err)

	assert.Equal(t, snapshot.Scope, decoded.Scope)
	assert.Equal(t, snapshot.IDs, decoded.IDs)
	assert.Equal(t, snapshot.Keys, decoded.Keys)
	assert.Equal(t, snapshot.Vectors, decoded.Vectors)
}
