package quantize

import (
	"fmt"
	"slices"
)

// MinMax implements 8-bit per-axis scalar quantization.
// It compresses float32 vectors (4 bytes/dim) to uint8 (1 byte/dim), with
// each axis calibrated independently on the training matrix.
type MinMax struct {
	mins   []float32
	ranges []float32
}

// NewMinMax creates an untrained quantizer. Train must be called before
// Encode or Decode.
func NewMinMax() *MinMax {
	return &MinMax{}
}

// Train calibrates the quantizer by finding min/max values per axis across
// all rows. Rows must all share one dimensionality.
func (q *MinMax) Train(matrix [][]float32) error {
	if len(matrix) == 0 || len(matrix[0]) == 0 {
		return ErrEmptyMatrix
	}

	dims := len(matrix[0])
	mins := slices.Clone(matrix[0])
	maxs := slices.Clone(matrix[0])

	for _, row := range matrix[1:] {
		if len(row) != dims {
			return fmt.Errorf("%w: got %d dimensions, want %d", ErrRaggedMatrix, len(row), dims)
		}
		for i, val := range row {
			if val < mins[i] {
				mins[i] = val
			}
			if val > maxs[i] {
				maxs[i] = val
			}
		}
	}

	ranges := make([]float32, dims)
	for i := range ranges {
		r := maxs[i] - mins[i]
		if r == 0 {
			// Constant axis: every value maps to 0.
			r = 1
		}
		ranges[i] = r
	}

	q.mins = mins
	q.ranges = ranges
	return nil
}

// Encode quantizes a float32 vector to one byte per axis. Each axis is
// linearly mapped from its trained [min, max] interval onto [0, 255] and
// truncated, so an axis midpoint lands on 127.
func (q *MinMax) Encode(v []float32) ([]byte, error) {
	if q.mins == nil {
		return nil, ErrNotTrained
	}
	if len(v) != len(q.mins) {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d", ErrDimensionMismatch, len(v), len(q.mins))
	}

	quantized := make([]byte, len(v))
	for i, val := range v {
		normalized := (val - q.mins[i]) / q.ranges[i] * 255
		if normalized < 0 {
			normalized = 0
		} else if normalized > 255 {
			normalized = 255
		}
		quantized[i] = uint8(normalized)
	}
	return quantized, nil
}

// EncodeMatrix quantizes every row, preserving row order.
func (q *MinMax) EncodeMatrix(matrix [][]float32) ([][]byte, error) {
	rows := make([][]byte, len(matrix))
	for i, v := range matrix {
		row, err := q.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows[i] = row
	}
	return rows, nil
}

// Decode reconstructs an approximate float32 vector from its quantized
// representation.
func (q *MinMax) Decode(b []byte) ([]float32, error) {
	if q.mins == nil {
		return nil, ErrNotTrained
	}
	if len(b) != len(q.mins) {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d", ErrDimensionMismatch, len(b), len(q.mins))
	}

	decoded := make([]float32, len(b))
	for i, val := range b {
		decoded[i] = float32(val)/255*q.ranges[i] + q.mins[i]
	}
	return decoded, nil
}

// Dims returns the trained dimensionality, 0 before training.
func (q *MinMax) Dims() int {
	return len(q.mins)
}

// Mins returns a copy of the per-axis minimum values.
func (q *MinMax) Mins() []float32 {
	return slices.Clone(q.mins)
}

// Ranges returns a copy of the per-axis value ranges. Constant axes report
// a range of 1.
func (q *MinMax) Ranges() []float32 {
	return slices.Clone(q.ranges)
}
