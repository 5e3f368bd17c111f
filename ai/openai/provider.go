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


package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cinevec/cinevec/ai"
)

// Provider implements ai.EmbeddingProvider using OpenAI-compatible services.
type Provider struct {
	config   *ai.Config
	embedder *Embedder
	logger   *slog.Logger
}

// NewProvider creates a new embedding provider backed by an OpenAI-compatible
// service. The config is validated and normalized before use.
//
// Returns ai.EmbeddingProvider interface (not *Provider) to enforce
// abstraction and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.EmbeddingProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create embedder (using internal constructor for concrete type)
	embedder, err := newEmbedder(config)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:   config,
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Scope returns the cache scope string for this provider and its model.
func (p *Provider) Scope() string {
	return "openai:" + p.config.EmbeddingModel
}

// Ping verifies the backend can serve embeddings by requesting a single
// probe vector. A reachable host with a missing model still fails here,
// which is the failure mode worth catching before a long run.
func (p *Provider) Ping(ctx context.Context) error {
	vector, err := p.embedder.EmbedText(ctx, "ping")
	if err != nil {
		return fmt.Errorf("embedding backend unavailable at %s: %w", p.config.EmbeddingHost, err)
	}
	if len(vector) == 0 {
		return fmt.Errorf("embedding backend at %s returned an empty vector for model %s",
			p.config.EmbeddingHost, p.config.EmbeddingModel)
	}
	p.logger.Debug("embedding backend reachable", "host", p.config.EmbeddingHost, "dimensions", len(vector))
	return nil
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
