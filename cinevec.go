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


package cinevec

import (
	"io"
	"log/slog"

	"github.com/cinevec/cinevec/ai"
	"github.com/cinevec/cinevec/ai/openai"
	"github.com/cinevec/cinevec/dataset"
	"github.com/cinevec/cinevec/pipeline"
	"github.com/cinevec/cinevec/reduce"
	"github.com/cinevec/cinevec/storage"
	"github.com/cinevec/cinevec/storage/badger"
)

// Cinevec bundles the embedding cache, the embedding backend, and the
// reducer behind one handle. It is the entry point for library users;
// the CLI is a thin wrapper around it.
type Cinevec struct {
	store    storage.CacheStore
	provider ai.EmbeddingProvider
	reducer  reduce.Reducer
	logger   *slog.Logger
}

// Option configures a Cinevec.
type Option func(*options)

type options struct {
	aiConfig *ai.Config
	provider ai.EmbeddingProvider
	reducer  reduce.Reducer
	badger   bool
}

// WithAIConfig sets the embedding backend configuration.
func WithAIConfig(config *ai.Config) Option {
	return func(o *options) {
		o.aiConfig = config
	}
}

// WithProvider injects an embedding provider directly instead of building
// the OpenAI-compatible one. Close still closes the injected provider.
func WithProvider(provider ai.EmbeddingProvider) Option {
	return func(o *options) {
		o.provider = provider
	}
}

// WithReducer sets the dimensionality reducer handed to runners.
func WithReducer(reducer reduce.Reducer) Option {
	return func(o *options) {
		o.reducer = reducer
	}
}

// WithBadgerCache keeps the embedding cache in a Badger database at the
// cache path instead of a single container file.
func WithBadgerCache() Option {
	return func(o *options) {
		o.badger = true
	}
}

func New(cachePath string, opts ...Option) (*Cinevec, error) {
	// Apply options
	options := &options{
		aiConfig: ai.DefaultConfig(), // Default if not provided
		reducer:  reduce.Identity{},  // Raw vectors unless a reducer is set
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open cache store
	var store storage.CacheStore
	if options.badger {
		backend, err := badger.OpenBackend(cachePath, false)
		if err != nil {
			return nil, err
		}
		store = badger.NewCacheStore(backend)
	} else {
		store = storage.NewFileStore(cachePath)
	}

	// Create embedding provider with configured settings
	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	return &Cinevec{
		store:    store,
		provider: provider,
		reducer:  options.reducer,
		logger:   slog.Default(),
	}, nil
}

func (c *Cinevec) Close() error {
	// Close embedding provider first
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing embedding provider", "err", err)
	}

	// Close cache store
	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing cache store", "err", err)
		return err
	}
	return nil
}

func (c *Cinevec) CacheStore() storage.CacheStore {
	return c.store
}

func (c *Cinevec) Provider() ai.EmbeddingProvider {
	return c.provider
}

// NewRunner builds a pipeline runner over this instance's provider, cache
// store, and reducer. The runner consumes source; build a fresh one per run.
func (c *Cinevec) NewRunner(source dataset.Source, config *pipeline.Config, progress io.Writer) (*pipeline.Runner, error) {
	return pipeline.NewRunner(source, c.provider, c.store, c.reducer, config, progress)
}
