package ai

import "context"

// Embedder generates vector embeddings from text.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingProvider aggregates an embedding backend for convenient
// initialization and lifecycle management. A provider creates and manages an
// Embedder instance and identifies the configuration it runs under.
type EmbeddingProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Scope returns the cache scope string identifying this provider and its
	// model. Vectors cached under a different scope are never reused.
	Scope() string

	// Ping verifies the backend is reachable and can serve embeddings.
	// Implementations should issue a minimal request rather than only
	// checking connectivity.
	Ping(ctx context.Context) error

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
