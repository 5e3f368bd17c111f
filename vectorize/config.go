package vectorize

import (
	"errors"
	"fmt"

	"github.com/cinevec/cinevec/ai"
)

// Config holds configuration for an embedding run.
type Config struct {
	// BatchSize is the number of texts per embedding request.
	// Must be between 1 and ai.MaxBatchSize. Default: ai.MaxBatchSize
	BatchSize int

	// ReportInterval is how often to report progress (number of movies).
	ReportInterval int

	// ForceRecompute regenerates every embedding, ignoring cache hits.
	ForceRecompute bool

	// CheckpointEvery persists the cache after every N batches when a
	// checkpoint store is attached. 0 disables mid-run checkpoints.
	CheckpointEvery int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      ai.MaxBatchSize,
		ReportInterval: 500,
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BatchSize < 1 || c.BatchSize > ai.MaxBatchSize {
		return fmt.Errorf("vectorize config: BatchSize must be between 1 and %d", ai.MaxBatchSize)
	}
	if c.ReportInterval < 1 {
		return errors.New("vectorize config: ReportInterval must be positive")
	}
	if c.CheckpointEvery < 0 {
		return errors.New("vectorize config: CheckpointEvery must not be negative")
	}
	return nil
}
