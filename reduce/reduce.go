package reduce

import "context"

// Reducer projects embedding vectors down to a smaller dimensionality.
// Implementations must return exactly one output row per input row, in
// input order.
type Reducer interface {
	Reduce(ctx context.Context, vectors [][]float32) ([][]float32, error)
}

// Identity is a Reducer that returns its input unchanged. It is used in
// tests and in runs where the embedding dimensionality is already the
// target dimensionality.
type Identity struct{}

// Reduce returns vectors as-is.
func (Identity) Reduce(_ context.Context, vectors [][]float32) ([][]float32, error) {
	return vectors, nil
}
