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


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// MaxBatchSize is the largest number of texts sent to the embedding backend
// in a single request. Local OpenAI-compatible servers degrade or reject
// requests beyond this point.
const MaxBatchSize = 64

// Config holds configuration for the embedding backend.
type Config struct {
	// EmbeddingHost is the base URL for the embedding service API.
	// Example: "http://localhost:11434/v1" for local OpenAI-compatible server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "nomic-embed-text", "text-embedding-3-small"
	EmbeddingModel string

	// BatchSize is the number of texts per embedding request.
	// Must be between 1 and MaxBatchSize. Default: MaxBatchSize
	BatchSize int
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the embedding service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithBatchSize sets the number of texts per embedding request.
func WithBatchSize(size int) ConfigOption {
	return func(c *Config) {
		c.BatchSize = size
	}
}

// DefaultConfig returns a Config with sensible defaults for local
// OpenAI-compatible services.
func DefaultConfig() *Config {
	return &Config{
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "nomic-embed-text",
		BatchSize:      MaxBatchSize,
	}
}

// NewConfig creates a Config with the default values and applies the provided
// options. This is the recommended way to create a Config with custom settings.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("http://localhost:11434/v1"),
//	    WithEmbeddingModel("text-embedding-3-small"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// It automatically adds the /v1 suffix to the host if missing, which is
// required by most OpenAI-compatible APIs (Ollama, LocalAI, vLLM, etc).
func (c *Config) Normalize() {
	if c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		// Remove trailing slash if present before adding /v1
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	// Normalize first to ensure the host is in correct format
	c.Normalize()

	if c.EmbeddingHost == "" {
		return errors.New("ai config: EmbeddingHost is required")
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	if c.BatchSize < 1 || c.BatchSize > MaxBatchSize {
		return fmt.Errorf("ai config: BatchSize must be between 1 and %d", MaxBatchSize)
	}
	return nil
}
