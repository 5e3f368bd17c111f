package reduce

import (
	"errors"
	"fmt"
)

// Defaults for the UMAP projection. These produced the published output
// files; changing them invalidates comparisons against earlier runs.
const (
	DefaultOutputDim = 16
	DefaultMetric    = "cosine"
	DefaultNeighbors = 30
	DefaultMinDist   = 0.1
	DefaultSeed      = 42
)

// Params holds the projection parameters passed to the reduction backend.
type Params struct {
	// OutputDim is the dimensionality of the projected vectors.
	OutputDim int

	// Metric is the distance metric used in the high-dimensional space.
	Metric string

	// Neighbors is the local neighborhood size balancing local versus
	// global structure.
	Neighbors int

	// MinDist is the minimum spacing between projected points.
	MinDist float64

	// Seed fixes the projection's random state for reproducible output.
	Seed int64
}

// DefaultParams returns the parameters used for the published output files.
func DefaultParams() Params {
	return Params{
		OutputDim: DefaultOutputDim,
		Metric:    DefaultMetric,
		Neighbors: DefaultNeighbors,
		MinDist:   DefaultMinDist,
		Seed:      DefaultSeed,
	}
}

// Validate checks that the parameters are complete and usable.
func (p Params) Validate() error {
	if p.OutputDim < 1 {
		return fmt.Errorf("reduce params: OutputDim must be positive, got %d", p.OutputDim)
	}
	if p.Metric == "" {
		return errors.New("reduce params: Metric is required")
	}
	if p.Neighbors < 2 {
		return fmt.Errorf("reduce params: Neighbors must be at least 2, got %d", p.Neighbors)
	}
	if p.MinDist < 0 {
		return fmt.Errorf("reduce params: MinDist must not be negative, got %g", p.MinDist)
	}
	return nil
}
