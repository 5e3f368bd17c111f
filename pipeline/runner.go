// Copyright 2025 The Cinevec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/cinevec/cinevec/ai"
	"github.com/cinevec/cinevec/core"
	"github.com/cinevec/cinevec/dataset"
	"github.com/cinevec/cinevec/encode"
	"github.com/cinevec/cinevec/quantize"
	"github.com/cinevec/cinevec/reduce"
	"github.com/cinevec/cinevec/storage"
	"github.com/cinevec/cinevec/vectorize"
)

// Config holds configuration for a full pipeline run.
type Config struct {
	// Rules are the quality thresholds applied to raw dataset rows.
	Rules dataset.Rules

	// Vectorize configures the embedding phase. Nil means defaults.
	Vectorize *vectorize.Config

	// MetadataPath is where the metadata output file is written.
	MetadataPath string

	// EmbeddingsPath is where the embedding output file is written.
	EmbeddingsPath string

	// Prune removes cache entries for movies absent from the current
	// dataset before the cache is saved.
	Prune bool
}

// DefaultConfig returns a Config with the defaults used for the published
// output files.
func DefaultConfig() *Config {
	return &Config{
		Rules:          dataset.DefaultRules(),
		Vectorize:      vectorize.DefaultConfig(),
		MetadataPath:   encode.DefaultMetadataFilename,
		EmbeddingsPath: encode.DefaultEmbeddingsFilename,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.MetadataPath == "" {
		return errors.New("pipeline config: MetadataPath is required")
	}
	if c.EmbeddingsPath == "" {
		return errors.New("pipeline config: EmbeddingsPath is required")
	}
	if c.MetadataPath == c.EmbeddingsPath {
		return fmt.Errorf("pipeline config: MetadataPath and EmbeddingsPath are both %q", c.MetadataPath)
	}
	if c.Vectorize != nil {
		if err := c.Vectorize.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Summary reports what one pipeline run produced.
type Summary struct {
	// Filter counts how dataset rows fared against the quality rules.
	Filter dataset.FilterStats

	// Embedding reports cache reuse and backend batches.
	Embedding vectorize.Stats

	// Movies is the number of records written to both output files.
	Movies int

	// Pruned is the number of stale cache entries removed.
	Pruned int

	// EmbeddingDims is the vector width produced by the embedding backend.
	EmbeddingDims int

	// OutputDims is the vector width written to the embedding file.
	OutputDims int

	// MetadataBytes and EmbeddingsBytes are the output file sizes.
	MetadataBytes   int64
	EmbeddingsBytes int64

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Runner executes one full pipeline run: filter, embed, reduce, quantize,
// encode. A Runner is single-use; its dataset source is consumed by Run.
type Runner struct {
	source   dataset.Source
	provider ai.EmbeddingProvider
	store    storage.CacheStore
	reducer  reduce.Reducer
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// NewRunner creates a runner over the given collaborators.
// progress receives human-readable stage output, typically os.Stderr;
// pass nil to discard it.
func NewRunner(
	source dataset.Source,
	provider ai.EmbeddingProvider,
	store storage.CacheStore,
	reducer reduce.Reducer,
	config *Config,
	progress io.Writer,
) (*Runner, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}
	if store == nil {
		return nil, ErrStoreRequired
	}
	if reducer == nil {
		return nil, ErrReducerRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}

	return &Runner{
		source:   source,
		provider: provider,
		store:    store,
		reducer:  reducer,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "pipeline"),
	}, nil
}

// Run executes the pipeline. On success both output files are in place and
// the cache is saved. On failure no output file is touched; the cache is on
// disk only if the run got past the embedding phase (or hit a configured
// mid-run checkpoint).
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()
	scope := r.provider.Scope()

	// The backend must be able to serve embeddings before any work starts.
	// A reachable host with a missing model fails here, not mid-run.
	if err := r.provider.Ping(ctx); err != nil {
		return nil, fmt.Errorf("startup check failed: %w", err)
	}

	movies, fstats, err := dataset.Collect(r.source, r.config.Rules)
	if err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return nil, fmt.Errorf("%w: %d rows scanned", ErrNoMovies, fstats.Scanned)
	}
	fmt.Fprintf(r.progress, "Kept %d of %d rows after filtering\n", fstats.Kept, fstats.Scanned)

	cache, err := r.loadCache(ctx, scope)
	if err != nil {
		return nil, err
	}

	matrix, estats, err := r.embed(ctx, scope, movies, cache)
	if err != nil {
		return nil, err
	}

	pruned := 0
	if r.config.Prune {
		keep := make(map[core.MovieID]bool, len(movies))
		for _, m := range movies {
			keep[m.ID] = true
		}
		if pruned = storage.PruneEntries(cache, keep); pruned > 0 {
			r.logger.Info("cache pruned", "removed", pruned, "remaining", len(cache))
		}
	}

	// Single persistence point: every vector in the cache is valid here,
	// so a failure in any later stage still leaves a usable cache behind.
	if err := r.store.Save(ctx, scope, cache); err != nil {
		return nil, fmt.Errorf("saving cache: %w", err)
	}

	embeddingDims := len(matrix[0])
	fmt.Fprintf(r.progress, "Reducing %d vectors of %d dimensions\n", len(matrix), embeddingDims)

	reduced, err := r.reducer.Reduce(ctx, matrix)
	if err != nil {
		return nil, fmt.Errorf("reduction: %w", err)
	}
	if len(reduced) != len(movies) {
		return nil, fmt.Errorf("%w: got %d rows, want %d", ErrReductionShape, len(reduced), len(movies))
	}

	quantizer := quantize.NewMinMax()
	if err := quantizer.Train(reduced); err != nil {
		return nil, fmt.Errorf("training quantizer: %w", err)
	}
	rows, err := quantizer.EncodeMatrix(reduced)
	if err != nil {
		return nil, fmt.Errorf("quantizing: %w", err)
	}

	embeddingsSize, metadataSize, err := r.writeOutputs(movies, rows)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Filter:          fstats,
		Embedding:       estats,
		Movies:          len(movies),
		Pruned:          pruned,
		EmbeddingDims:   embeddingDims,
		OutputDims:      quantizer.Dims(),
		MetadataBytes:   metadataSize,
		EmbeddingsBytes: embeddingsSize,
		Elapsed:         time.Since(start),
	}

	r.logger.Info("pipeline complete",
		"movies", summary.Movies,
		"reused", summary.Embedding.Reused,
		"regenerated", summary.Embedding.Regenerated,
		"pruned", summary.Pruned,
		"dims", summary.OutputDims,
		"elapsed", summary.Elapsed.Round(time.Millisecond))

	return summary, nil
}

// loadCache reads the persisted cache and discards it on a scope change.
// Vectors computed under another backend or model live in a different
// vector space; mixing them into one output would corrupt every distance.
func (r *Runner) loadCache(ctx context.Context, scope string) (map[core.MovieID]core.CacheEntry, error) {
	storedScope, cache, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cache: %w", err)
	}

	if storedScope != "" && storedScope != scope {
		r.logger.Warn("cache scope mismatch, discarding cached vectors",
			"stored", storedScope,
			"active", scope,
			"discarded", len(cache))
		cache = make(map[core.MovieID]core.CacheEntry, len(cache))
	}
	return cache, nil
}

// embed produces one vector per movie through the orchestrator, wiring
// mid-run checkpoints to the cache store when configured.
func (r *Runner) embed(ctx context.Context, scope string, movies []core.Movie, cache map[core.MovieID]core.CacheEntry) ([][]float32, vectorize.Stats, error) {
	var opts []vectorize.Option
	if r.config.Vectorize != nil && r.config.Vectorize.CheckpointEvery > 0 {
		opts = append(opts, vectorize.WithCheckpointing(r.store))
	}

	orchestrator, err := vectorize.NewOrchestrator(r.provider.Embedder(), scope, r.config.Vectorize, r.progress, opts...)
	if err != nil {
		return nil, vectorize.Stats{}, err
	}

	matrix, stats, err := orchestrator.Run(ctx, movies, cache)
	if err != nil {
		return nil, stats, fmt.Errorf("embedding: %w", err)
	}
	return matrix, stats, nil
}

// writeOutputs writes both output files, embedding file first, and returns
// their sizes.
func (r *Runner) writeOutputs(movies []core.Movie, rows [][]byte) (embeddingsSize, metadataSize int64, err error) {
	embeddings, err := encode.EmbeddingsFromMovies(movies, rows)
	if err != nil {
		return 0, 0, err
	}

	if err := encode.SaveEmbeddingsFile(r.config.EmbeddingsPath, embeddings); err != nil {
		return 0, 0, fmt.Errorf("writing embeddings file: %w", err)
	}
	embeddingsSize = fileSize(r.config.EmbeddingsPath)
	fmt.Fprintf(r.progress, "Wrote %s (%d records, %d bytes)\n", r.config.EmbeddingsPath, len(movies), embeddingsSize)

	if err := encode.SaveMetadataFile(r.config.MetadataPath, encode.MetadataFromMovies(movies)); err != nil {
		return 0, 0, fmt.Errorf("writing metadata file: %w", err)
	}
	metadataSize = fileSize(r.config.MetadataPath)
	fmt.Fprintf(r.progress, "Wrote %s (%d records, %d bytes)\n", r.config.MetadataPath, len(movies), metadataSize)

	return embeddingsSize, metadataSize, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
