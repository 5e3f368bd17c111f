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


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/cinevec/cinevec"
	"github.com/cinevec/cinevec/ai"
	"github.com/cinevec/cinevec/core"
	"github.com/cinevec/cinevec/dataset"
	"github.com/cinevec/cinevec/encode"
	"github.com/cinevec/cinevec/pipeline"
	"github.com/cinevec/cinevec/reduce"
	"github.com/cinevec/cinevec/reduce/umapsvc"
	"github.com/cinevec/cinevec/similar"
	"github.com/cinevec/cinevec/storage"
	"github.com/cinevec/cinevec/storage/badger"
)

const defaultCachePath = "embedding-cache.cvec"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "cinevec",
		Usage: "Build quantized movie embedding files from a tabular export",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run the full pipeline: filter, embed, reduce, quantize, encode",
				Action: runCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dataset",
						Aliases:  []string{"i"},
						Usage:    "Path to the movie export (.jsonl, .ndjson, or .csv)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Dataset format (jsonl, csv); empty picks by file extension",
					},
					&cli.StringFlag{
						Name:  "metadata-out",
						Usage: "Path for the metadata output file",
						Value: encode.DefaultMetadataFilename,
					},
					&cli.StringFlag{
						Name:  "embeddings-out",
						Usage: "Path for the embedding output file",
						Value: encode.DefaultEmbeddingsFilename,
					},
					&cli.StringFlag{
						Name:  "cache",
						Usage: "Path to the embedding cache",
						Value: defaultCachePath,
					},
					&cli.StringFlag{
						Name:  "cache-backend",
						Usage: "Cache backend (file, badger)",
						Value: "file",
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of texts per embedding request",
						Value: ai.MaxBatchSize,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N movies",
						Value: 500,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Regenerate every embedding, ignoring the cache",
					},
					&cli.BoolFlag{
						Name:  "prune",
						Usage: "Drop cache entries for movies absent from the dataset",
					},
					&cli.IntFlag{
						Name:  "checkpoint-every",
						Usage: "Save the cache every N batches during embedding (0 disables)",
					},
					&cli.Int64Flag{
						Name:  "min-votes",
						Usage: "Minimum vote count a movie must carry",
						Value: dataset.DefaultMinVotes,
					},
					&cli.Float64Flag{
						Name:  "min-rating",
						Usage: "Minimum vote average a movie must carry",
						Value: dataset.DefaultMinRating,
					},
					&cli.StringFlag{
						Name:  "reduce-url",
						Usage: "Reduction service endpoint URL",
					},
					&cli.BoolFlag{
						Name:  "no-reduce",
						Usage: "Skip dimensionality reduction and quantize raw embeddings",
					},
					&cli.IntFlag{
						Name:  "output-dim",
						Usage: "Dimensionality of the reduced vectors",
						Value: reduce.DefaultOutputDim,
					},
					&cli.StringFlag{
						Name:  "metric",
						Usage: "Distance metric for the reduction",
						Value: reduce.DefaultMetric,
					},
					&cli.IntFlag{
						Name:  "umap-neighbors",
						Usage: "Neighborhood size for the reduction",
						Value: reduce.DefaultNeighbors,
					},
					&cli.Float64Flag{
						Name:  "min-dist",
						Usage: "Minimum spacing between projected points",
						Value: reduce.DefaultMinDist,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed for the reduction",
						Value: reduce.DefaultSeed,
					},
				},
			},
			{
				Name:  "cache",
				Usage: "Inspect and maintain the embedding cache",
				Subcommands: []*cli.Command{
					{
						Name:   "info",
						Usage:  "Show the cache scope and entry count",
						Action: cacheInfoCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "cache",
								Usage: "Path to the embedding cache",
								Value: defaultCachePath,
							},
							&cli.StringFlag{
								Name:  "cache-backend",
								Usage: "Cache backend (file, badger)",
								Value: "file",
							},
						},
					},
					{
						Name:   "prune",
						Usage:  "Drop cache entries for movies absent from the dataset",
						Action: cachePruneCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "cache",
								Usage: "Path to the embedding cache",
								Value: defaultCachePath,
							},
							&cli.StringFlag{
								Name:  "cache-backend",
								Usage: "Cache backend (file, badger)",
								Value: "file",
							},
							&cli.StringFlag{
								Name:     "dataset",
								Aliases:  []string{"i"},
								Usage:    "Path to the movie export (.jsonl, .ndjson, or .csv)",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "format",
								Usage: "Dataset format (jsonl, csv); empty picks by file extension",
							},
							&cli.Int64Flag{
								Name:  "min-votes",
								Usage: "Minimum vote count a movie must carry",
								Value: dataset.DefaultMinVotes,
							},
							&cli.Float64Flag{
								Name:  "min-rating",
								Usage: "Minimum vote average a movie must carry",
								Value: dataset.DefaultMinRating,
							},
						},
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Validate a pair of output files and print samples",
				Action: inspectCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "metadata",
						Usage: "Path to the metadata file",
						Value: encode.DefaultMetadataFilename,
					},
					&cli.StringFlag{
						Name:  "embeddings",
						Usage: "Path to the embedding file",
						Value: encode.DefaultEmbeddingsFilename,
					},
					&cli.IntFlag{
						Name:  "dims",
						Usage: "Vector width of the embedding file",
						Value: reduce.DefaultOutputDim,
					},
					&cli.IntFlag{
						Name:  "samples",
						Usage: "Number of sample records to print",
						Value: 3,
					},
				},
			},
			{
				Name:   "neighbors",
				Usage:  "List the nearest neighbors of a movie in the embedding file",
				Action: neighborsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "metadata",
						Usage: "Path to the metadata file",
						Value: encode.DefaultMetadataFilename,
					},
					&cli.StringFlag{
						Name:  "embeddings",
						Usage: "Path to the embedding file",
						Value: encode.DefaultEmbeddingsFilename,
					},
					&cli.IntFlag{
						Name:  "dims",
						Usage: "Vector width of the embedding file",
						Value: reduce.DefaultOutputDim,
					},
					&cli.Uint64Flag{
						Name:     "id",
						Usage:    "Movie identifier to query",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of neighbors to list",
						Value: 10,
					},
				},
			},
		},
	}
}

func runCommand(c *cli.Context) error {
	ctx := context.Background()

	source, err := dataset.Open(c.String("dataset"), dataset.Format(c.String("format")))
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer source.Close()

	// Create AI config
	aiConfig := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithBatchSize(c.Int("batch-size")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid embedding configuration: %w", err)
	}

	reducer, err := buildReducer(c)
	if err != nil {
		return err
	}

	opts := []cinevec.Option{
		cinevec.WithAIConfig(aiConfig),
		cinevec.WithReducer(reducer),
	}
	switch c.String("cache-backend") {
	case "file":
	case "badger":
		opts = append(opts, cinevec.WithBadgerCache())
	default:
		return fmt.Errorf("invalid cache-backend %q: must be file or badger", c.String("cache-backend"))
	}

	cv, err := cinevec.New(c.String("cache"), opts...)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cv.Close()

	config := pipeline.DefaultConfig()
	config.Rules = dataset.Rules{
		MinVotes:  c.Int64("min-votes"),
		MinRating: c.Float64("min-rating"),
	}
	config.Vectorize.BatchSize = c.Int("batch-size")
	config.Vectorize.ReportInterval = c.Int("report-interval")
	config.Vectorize.ForceRecompute = c.Bool("force")
	config.Vectorize.CheckpointEvery = c.Int("checkpoint-every")
	config.MetadataPath = c.String("metadata-out")
	config.EmbeddingsPath = c.String("embeddings-out")
	config.Prune = c.Bool("prune")

	runner, err := cv.NewRunner(source, config, os.Stderr)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Dataset: %s\n", c.String("dataset"))
	fmt.Fprintf(os.Stderr, "Cache: %s (%s)\n", c.String("cache"), c.String("cache-backend"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	summary, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "\nFinished in %v: %d movies (%d reused, %d regenerated), %d -> %d dimensions\n",
		summary.Elapsed.Round(time.Second),
		summary.Movies,
		summary.Embedding.Reused,
		summary.Embedding.Regenerated,
		summary.EmbeddingDims,
		summary.OutputDims)

	return nil
}

func cacheInfoCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := openCacheStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	scope, entries, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}

	if scope == "" {
		scope = "(none)"
	}
	fmt.Printf("Cache:   %s\n", c.String("cache"))
	fmt.Printf("Scope:   %s\n", scope)
	fmt.Printf("Entries: %d\n", len(entries))

	for _, entry := range entries {
		fmt.Printf("Width:   %d dimensions\n", len(entry.Vector))
		break
	}
	return nil
}

func cachePruneCommand(c *cli.Context) error {
	ctx := context.Background()

	source, err := dataset.Open(c.String("dataset"), dataset.Format(c.String("format")))
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer source.Close()

	rules := dataset.Rules{
		MinVotes:  c.Int64("min-votes"),
		MinRating: c.Float64("min-rating"),
	}
	movies, stats, err := dataset.Collect(source, rules)
	if err != nil {
		return err
	}

	keep := make(map[core.MovieID]bool, len(movies))
	for _, m := range movies {
		keep[m.ID] = true
	}

	store, err := openCacheStore(c)
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(ctx, keep)
	if err != nil {
		return fmt.Errorf("failed to prune cache: %w", err)
	}

	fmt.Printf("Kept %d of %d rows after filtering\n", stats.Kept, stats.Scanned)
	fmt.Printf("Removed %d stale cache entries\n", removed)
	return nil
}

func inspectCommand(c *cli.Context) error {
	metadata, err := encode.LoadMetadataFile(c.String("metadata"))
	if err != nil {
		return fmt.Errorf("failed to read metadata file: %w", err)
	}
	embeddings, err := encode.LoadEmbeddingsFile(c.String("embeddings"), c.Int("dims"))
	if err != nil {
		return fmt.Errorf("failed to read embedding file: %w", err)
	}

	if len(metadata) != len(embeddings) {
		return fmt.Errorf("file mismatch: %d metadata records, %d embedding records",
			len(metadata), len(embeddings))
	}
	for i := range metadata {
		if metadata[i].ID != embeddings[i].ID {
			return fmt.Errorf("file mismatch at record %d: metadata id %d, embedding id %d",
				i, metadata[i].ID, embeddings[i].ID)
		}
	}

	fmt.Printf("Records: %d\n", len(metadata))
	fmt.Printf("Width:   %d dimensions\n", c.Int("dims"))
	for _, path := range []string{c.String("metadata"), c.String("embeddings")} {
		if info, err := os.Stat(path); err == nil {
			fmt.Printf("%s: %d bytes\n", filepath.Base(path), info.Size())
		}
	}

	samples := c.Int("samples")
	if samples > len(metadata) {
		samples = len(metadata)
	}
	for i := 0; i < samples; i++ {
		fmt.Printf("%d: '%s' (%d) score=%d poster=%s\n",
			i, metadata[i].Title, metadata[i].ID, metadata[i].Score, embeddings[i].PosterPath)
	}
	return nil
}

func neighborsCommand(c *cli.Context) error {
	id := c.Uint64("id")
	if id < 1 || id > math.MaxUint32 {
		return fmt.Errorf("invalid movie id %d", id)
	}

	embeddings, err := encode.LoadEmbeddingsFile(c.String("embeddings"), c.Int("dims"))
	if err != nil {
		return fmt.Errorf("failed to read embedding file: %w", err)
	}
	metadata, err := encode.LoadMetadataFile(c.String("metadata"))
	if err != nil {
		return fmt.Errorf("failed to read metadata file: %w", err)
	}

	titles := make(map[core.MovieID]string, len(metadata))
	for _, rec := range metadata {
		titles[rec.ID] = rec.Title
	}

	matches, err := similar.Neighbors(embeddings, core.MovieID(id), c.Int("limit"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d neighbors of '%s' (%d)\n", len(matches), titles[core.MovieID(id)], id)
	for i, m := range matches {
		fmt.Printf("%d: '%s' (%d)[%d]\n", i, titles[m.Record.ID], m.Record.ID, m.Distance)
	}
	return nil
}

// buildReducer picks the reducer for a run: the UMAP service client, or
// the identity pass-through with --no-reduce.
func buildReducer(c *cli.Context) (reduce.Reducer, error) {
	if c.Bool("no-reduce") {
		return reduce.Identity{}, nil
	}

	serviceURL := c.String("reduce-url")
	if serviceURL == "" {
		return nil, fmt.Errorf("reduce-url is required unless --no-reduce is set")
	}

	return umapsvc.NewClient(umapsvc.Config{
		ServiceURL: serviceURL,
		Params: reduce.Params{
			OutputDim: c.Int("output-dim"),
			Metric:    c.String("metric"),
			Neighbors: c.Int("umap-neighbors"),
			MinDist:   c.Float64("min-dist"),
			Seed:      c.Int64("seed"),
		},
	})
}

func openCacheStore(c *cli.Context) (storage.CacheStore, error) {
	path := c.String("cache")
	switch c.String("cache-backend") {
	case "file":
		return storage.NewFileStore(path), nil
	case "badger":
		backend, err := badger.OpenBackend(path, false)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache database: %w", err)
		}
		return badger.NewCacheStore(backend), nil
	default:
		return nil, fmt.Errorf("invalid cache-backend %q: must be file or badger", c.String("cache-backend"))
	}
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
