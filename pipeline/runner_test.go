package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinevec/cinevec/ai"
	"github.com/cinevec/cinevec/ai/mock"
	"github.com/cinevec/cinevec/core"
	"github.com/cinevec/cinevec/dataset"
	"github.com/cinevec/cinevec/encode"
	"github.com/cinevec/cinevec/reduce"
	"github.com/cinevec/cinevec/storage"
)

const sampleJSONL = `{"id":603,"title":"The Matrix","tagline":"Welcome to the Real World","overview":"A hacker learns the truth.","poster_path":"/mat.jpg","imdb_id":"tt0133093","vote_count":25000,"vote_average":8.2}
{"id":11,"title":"Star Wars","overview":"A farm boy joins the rebellion.","poster_path":"/sw.jpg","imdb_id":"tt0076759","vote_count":21000,"vote_average":8.2}
{"id":278,"title":"The Shawshank Redemption","overview":"Two imprisoned men bond over years.","poster_path":"/shaw.jpg","imdb_id":"tt0111161","vote_count":28000,"vote_average":8.7}`

func sampleSource() dataset.Source {
	return dataset.NewJSONLSource(strings.NewReader(sampleJSONL))
}

func testProvider() (ai.EmbeddingProvider, *mock.MockEmbedder) {
	embedder := mock.NewMockEmbedder()
	embedder.Dimensions = 6
	return mock.NewMockProviderWithEmbedder(embedder), embedder
}

func testConfig(t *testing.T) *Config {
	t.Helper()

	dir := t.TempDir()
	config := DefaultConfig()
	config.MetadataPath = filepath.Join(dir, "movies.bin")
	config.EmbeddingsPath = filepath.Join(dir, "embeddings.bin")
	return config
}

func newTestRunner(t *testing.T, source dataset.Source, provider ai.EmbeddingProvider, store storage.CacheStore, config *Config) *Runner {
	t.Helper()

	runner, err := NewRunner(source, provider, store, reduce.Identity{}, config, nil)
	require.NoError(t, err)
	return runner
}

// brokenProvider fails its startup check; everything else delegates to the
// embedded provider.
type brokenProvider struct {
	ai.EmbeddingProvider
}

func (brokenProvider) Ping(context.Context) error {
	return errors.New("model not found: nomic-embed-text")
}

// failingReducer simulates a reduction service outage.
type failingReducer struct{}

func (failingReducer) Reduce(context.Context, [][]float32) ([][]float32, error) {
	return nil, errors.New("reduction service down")
}

// shortReducer answers with too few rows.
type shortReducer struct{}

func (shortReducer) Reduce(_ context.Context, vectors [][]float32) ([][]float32, error) {
	return vectors[:1], nil
}

// countingStore counts Save calls on top of a real store.
type countingStore struct {
	storage.CacheStore
	saves int
}

func (s *countingStore) Save(ctx context.Context, scope string, entries map[core.MovieID]core.CacheEntry) error {
	s.saves++
	return s.CacheStore.Save(ctx, scope, entries)
}

func TestNewRunner_RequiredDependencies(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	source := sampleSource()

	_, err := NewRunner(nil, provider, store, reduce.Identity{}, nil, nil)
	assert.ErrorIs(t, err, ErrSourceRequired)

	_, err = NewRunner(source, nil, store, reduce.Identity{}, nil, nil)
	assert.ErrorIs(t, err, ErrProviderRequired)

	_, err = NewRunner(source, provider, nil, reduce.Identity{}, nil, nil)
	assert.ErrorIs(t, err, ErrStoreRequired)

	_, err = NewRunner(source, provider, store, nil, nil, nil)
	assert.ErrorIs(t, err, ErrReducerRequired)
}

func TestConfig_Validate(t *testing.T) {
	config := DefaultConfig()
	assert.NoError(t, config.Validate())

	config.MetadataPath = ""
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.EmbeddingsPath = config.MetadataPath
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Vectorize.BatchSize = 0
	assert.Error(t, config.Validate())
}

func TestRunner_FullRun(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	runner := newTestRunner(t, sampleSource(), provider, store, config)
	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Movies)
	assert.Equal(t, 3, summary.Filter.Kept)
	assert.Equal(t, 3, summary.Embedding.Regenerated)
	assert.Equal(t, 0, summary.Embedding.Reused)
	assert.Equal(t, 6, summary.EmbeddingDims)
	assert.Equal(t, 6, summary.OutputDims, "identity reduction keeps the width")
	assert.Positive(t, summary.MetadataBytes)
	assert.Positive(t, summary.EmbeddingsBytes)

	// Both outputs decode and agree on the record sequence.
	metadata, err := encode.LoadMetadataFile(config.MetadataPath)
	require.NoError(t, err)
	embeddings, err := encode.LoadEmbeddingsFile(config.EmbeddingsPath, 6)
	require.NoError(t, err)

	require.Len(t, metadata, 3)
	require.Len(t, embeddings, 3)
	for i := range metadata {
		assert.Equal(t, metadata[i].ID, embeddings[i].ID, "record %d", i)
	}
	assert.Equal(t, "The Matrix", metadata[0].Title)
	assert.Equal(t, uint32(133093), metadata[0].CrossRef)
	assert.Equal(t, uint8(82), metadata[0].Score)
	assert.Equal(t, "/mat.jpg", embeddings[0].PosterPath)

	// The cache was persisted under the provider's scope.
	scope, entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mock.Scope, scope)
	assert.Len(t, entries, 3)
}

func TestRunner_OutputOrderMatchesSource(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	runner := newTestRunner(t, sampleSource(), provider, store, config)
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	// Dataset order, not identifier order.
	metadata, err := encode.LoadMetadataFile(config.MetadataPath)
	require.NoError(t, err)

	var ids []core.MovieID
	for _, rec := range metadata {
		ids = append(ids, rec.ID)
	}
	assert.Equal(t, []core.MovieID{603, 11, 278}, ids)
}

func TestRunner_SecondRunReusesEverything(t *testing.T) {
	provider, embedder := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	first := newTestRunner(t, sampleSource(), provider, store, config)
	_, err := first.Run(context.Background())
	require.NoError(t, err)

	firstMetadata, err := os.ReadFile(config.MetadataPath)
	require.NoError(t, err)
	firstEmbeddings, err := os.ReadFile(config.EmbeddingsPath)
	require.NoError(t, err)
	callsAfterFirst := embedder.CallCount()

	second := newTestRunner(t, sampleSource(), provider, store, config)
	summary, err := second.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Embedding.Reused)
	assert.Equal(t, 0, summary.Embedding.Regenerated)
	assert.Equal(t, callsAfterFirst, embedder.CallCount(), "no backend calls on full reuse")

	secondMetadata, err := os.ReadFile(config.MetadataPath)
	require.NoError(t, err)
	secondEmbeddings, err := os.ReadFile(config.EmbeddingsPath)
	require.NoError(t, err)

	assert.Equal(t, firstMetadata, secondMetadata, "metadata output must be byte-identical")
	assert.Equal(t, firstEmbeddings, secondEmbeddings, "embedding output must be byte-identical")
}

func TestRunner_ScopeMismatchDiscardsCache(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)
	ctx := context.Background()

	// A cache generated under another model must not be reused.
	require.NoError(t, store.Save(ctx, "openai:other-model", map[core.MovieID]core.CacheEntry{
		603: {Key: core.CacheKey("openai:other-model", "anything"), Vector: []float32{1, 2, 3, 4, 5, 6}},
	}))

	runner := newTestRunner(t, sampleSource(), provider, store, config)
	summary, err := runner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Embedding.Regenerated)
	assert.Equal(t, 0, summary.Embedding.Reused)

	scope, entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, mock.Scope, scope)
	assert.Len(t, entries, 3, "discarded foreign entries must not be resaved")

	entry := entries[603]
	assert.Equal(t, core.CacheKey(mock.Scope, "The Matrix. Welcome to the Real World. A hacker learns the truth."), entry.Key)
}

func TestRunner_PruneRemovesStaleEntries(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)
	config.Prune = true
	ctx := context.Background()

	// Entry 99999 is not in the dataset anymore.
	require.NoError(t, store.Save(ctx, mock.Scope, map[core.MovieID]core.CacheEntry{
		99999: {Key: "stale", Vector: []float32{9, 9, 9, 9, 9, 9}},
	}))

	runner := newTestRunner(t, sampleSource(), provider, store, config)
	summary, err := runner.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Pruned)

	_, entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.NotContains(t, entries, core.MovieID(99999))
}

func TestRunner_NoSurvivorsIsFatal(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	// Every row fails a quality rule.
	rows := `{"id":1,"title":"No Poster","vote_count":500,"vote_average":7.0}
{"id":2,"title":"Few Votes","poster_path":"/few.jpg","vote_count":50,"vote_average":7.0}`
	source := dataset.NewJSONLSource(strings.NewReader(rows))

	runner := newTestRunner(t, source, provider, store, config)
	_, err := runner.Run(context.Background())

	assert.ErrorIs(t, err, ErrNoMovies)
	assert.NoFileExists(t, config.MetadataPath)
	assert.NoFileExists(t, config.EmbeddingsPath)
}

func TestRunner_PingFailureAbortsBeforeWork(t *testing.T) {
	provider, embedder := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	runner := newTestRunner(t, sampleSource(), brokenProvider{provider}, store, config)
	_, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
	assert.Zero(t, embedder.CallCount(), "no embedding work after a failed startup check")
	assert.NoFileExists(t, config.MetadataPath)
	assert.NoFileExists(t, config.EmbeddingsPath)
}

func TestRunner_ReductionFailureKeepsSavedCache(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	runner, err := NewRunner(sampleSource(), provider, store, failingReducer{}, config, nil)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reduction")

	// No partial outputs, but the embedding work is banked.
	assert.NoFileExists(t, config.MetadataPath)
	assert.NoFileExists(t, config.EmbeddingsPath)

	scope, entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, mock.Scope, scope)
	assert.Len(t, entries, 3)
}

func TestRunner_ReductionShapeMismatch(t *testing.T) {
	provider, _ := testProvider()
	store := storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))
	config := testConfig(t)

	runner, err := NewRunner(sampleSource(), provider, store, shortReducer{}, config, nil)
	require.NoError(t, err)

	_, err = runner.Run(context.Background())
	assert.ErrorIs(t, err, ErrReductionShape)
}

func TestRunner_CheckpointsFlowToStore(t *testing.T) {
	provider, _ := testProvider()
	store := &countingStore{CacheStore: storage.NewFileStore(filepath.Join(t.TempDir(), "cache.cvec"))}
	config := testConfig(t)
	config.Vectorize.BatchSize = 1
	config.Vectorize.CheckpointEvery = 1

	runner := newTestRunner(t, sampleSource(), provider, store, config)
	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	// One checkpoint per batch plus the final save.
	assert.Equal(t, 4, store.saves)
}
