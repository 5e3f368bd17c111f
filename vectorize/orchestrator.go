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


package vectorize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/cinevec/cinevec/ai"
	"github.com/cinevec/cinevec/core"
	"github.com/cinevec/cinevec/storage"
)

// Stats reports what one embedding run did.
type Stats struct {
	// Reused counts movies whose cached vector was still valid.
	Reused int

	// Regenerated counts movies embedded fresh this run.
	Regenerated int

	// Batches counts embedding requests sent to the backend.
	Batches int
}

// Orchestrator drives the embedding phase: cache reuse decisions, batched
// regeneration, and optional mid-run cache checkpoints.
type Orchestrator struct {
	embedder   ai.Embedder
	scope      string
	config     *Config
	progress   io.Writer
	checkpoint storage.CacheStore
	logger     *slog.Logger
}

// Option configures an Orchestrator beyond its required dependencies.
type Option func(*Orchestrator)

// WithCheckpointing persists the cache through store after every
// Config.CheckpointEvery batches, so a crash late in a long first run does
// not forfeit every embedding generated before it.
func WithCheckpointing(store storage.CacheStore) Option {
	return func(o *Orchestrator) {
		o.checkpoint = store
	}
}

// NewOrchestrator creates an orchestrator for the given embedder and cache
// scope. progress receives human-readable progress output, typically
// os.Stderr; pass nil to discard it.
func NewOrchestrator(embedder ai.Embedder, scope string, config *Config, progress io.Writer, opts ...Option) (*Orchestrator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = io.Discard
	}

	o := &Orchestrator{
		embedder: embedder,
		scope:    scope,
		config:   config,
		progress: progress,
		logger:   slog.Default().With("component", "vectorize"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run produces one embedding vector per movie, in movie order. Cached
// vectors are reused when their stored key matches the fresh key for the
// current scope and text; everything else is regenerated in batches. The
// cache map is updated in place with every regenerated vector.
func (o *Orchestrator) Run(ctx context.Context, movies []core.Movie, cache map[core.MovieID]core.CacheEntry) ([][]float32, Stats, error) {
	var stats Stats
	if cache == nil {
		return nil, stats, ErrNilCache
	}

	matrix := make([][]float32, len(movies))
	keys := make([]string, len(movies))
	var pending []int

	for i := range movies {
		keys[i] = core.CacheKey(o.scope, movies[i].Text)
		if !o.config.ForceRecompute {
			if entry, ok := cache[movies[i].ID]; ok && entry.Key == keys[i] && len(entry.Vector) > 0 {
				matrix[i] = entry.Vector
				stats.Reused++
				continue
			}
		}
		pending = append(pending, i)
	}
	stats.Regenerated = len(pending)

	o.logger.Debug("embedding run planned",
		"scope", o.scope,
		"movies", len(movies),
		"reused", stats.Reused,
		"pending", len(pending))

	if len(pending) > 0 {
		fmt.Fprintf(o.progress, "Embedding %d movies: %d cached, %d to generate (batch size: %d)\n",
			len(movies), stats.Reused, len(pending), o.config.BatchSize)

		tracker := NewProgressTracker(o.progress, len(pending), o.config.ReportInterval)
		tracker.Start()

		processed := 0
		for batch := range slices.Chunk(pending, o.config.BatchSize) {
			texts := make([]string, len(batch))
			for j, idx := range batch {
				texts[j] = movies[idx].Text
			}

			vectors, err := o.embedder.EmbedTexts(ctx, texts)
			if err != nil {
				return nil, stats, fmt.Errorf("embedding batch %d: %w", stats.Batches+1, err)
			}
			if len(vectors) != len(texts) {
				return nil, stats, fmt.Errorf("%w: got %d vectors for %d texts in batch %d",
					ErrVectorCountMismatch, len(vectors), len(texts), stats.Batches+1)
			}

			for j, idx := range batch {
				if len(vectors[j]) == 0 {
					return nil, stats, fmt.Errorf("%w: movie %d", ErrEmptyVector, movies[idx].ID)
				}
				matrix[idx] = vectors[j]
				cache[movies[idx].ID] = core.CacheEntry{Key: keys[idx], Vector: vectors[j]}
			}

			stats.Batches++
			processed += len(batch)
			tracker.Update(processed)

			if o.checkpoint != nil && o.config.CheckpointEvery > 0 && stats.Batches%o.config.CheckpointEvery == 0 {
				if err := o.checkpoint.Save(ctx, o.scope, cache); err != nil {
					return nil, stats, fmt.Errorf("checkpointing cache after batch %d: %w", stats.Batches, err)
				}
				o.logger.Debug("cache checkpoint saved", "batches", stats.Batches, "entries", len(cache))
			}
		}

		tracker.Finish()

		elapsed := tracker.Elapsed()
		fmt.Fprintf(o.progress, "Embedding complete: %d generated in %v (%.1f movies/s)\n",
			len(pending), elapsed.Round(time.Second), float64(len(pending))/elapsed.Seconds())
	}

	// Every movie must hold a vector now, and all vectors must agree on
	// dimensionality before reduction.
	dims := 0
	for i, vec := range matrix {
		if len(vec) == 0 {
			return nil, stats, fmt.Errorf("%w: movie %d", ErrEmptyVector, movies[i].ID)
		}
		if dims == 0 {
			dims = len(vec)
		} else if len(vec) != dims {
			return nil, stats, fmt.Errorf("%w: movie %d has %d dimensions, want %d",
				ErrDimensionMismatch, movies[i].ID, len(vec), dims)
		}
	}

	return matrix, stats, nil
}
