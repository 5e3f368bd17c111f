// Package mock provides test double implementations of the embedding interfaces.
//
// This package contains mock implementations of ai.Embedder and
// ai.EmbeddingProvider for use in unit tests. The mocks allow tests to run
// without an external embedding service and enable controlled, deterministic
// behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	vectors, err := mockProvider.Embedder().EmbedTexts(ctx, texts)
//
//	// Custom behavior injection
//	mockEmbedder := mock.NewMockEmbedder()
//	mockEmbedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
//	    return nil, errors.New("backend down")
//	}
//
//	// Check call counts
//	count := mockEmbedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns deterministic vectors derived from a hash of the input
// text, so identical texts always embed identically across runs. This is the
// property the embedding cache tests depend on.
package mock
