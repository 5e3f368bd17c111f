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


// Package ai provides abstractions for the embedding backend used by Cinevec.
//
// This package defines interfaces for generating text embeddings. It follows
// the dependency inversion principle, allowing the pipeline and business
// logic to depend on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around two key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - EmbeddingProvider: Aggregates the backend for initialization, scope
//     identification and lifecycle management
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.EmbeddingProvider
//
// Test utility constructors (mock.NewMockEmbedder) return CONCRETE types to
// enable test assertions and behavior injection via the mock's public methods
// (CallCount, function fields, Reset).
//
//	mockEmbed := mock.NewMockEmbedder()  // returns *mock.MockEmbedder
//	mockEmbed.EmbedTextsFunc = ...       // needs concrete type
//	count := mockEmbed.CallCount()       // test assertion
//
// # Scope
//
// Every provider reports a scope string (for example "openai:nomic-embed-text")
// that names the backend and model. The embedding cache binds each vector to
// the scope it was generated under, so switching backend or model invalidates
// all cached vectors instead of silently reusing incompatible ones.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithEmbeddingModel("nomic-embed-text"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	vectors, err := provider.Embedder().EmbedTexts(ctx, texts)
package ai
