package quantize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedQuantizer(t *testing.T) *MinMax {
	t.Helper()

	q := NewMinMax()
	err := q.Train([][]float32{
		{0, 10},
		{1, 20},
	})
	require.NoError(t, err)
	return q
}

func TestMinMax_TrainEmpty(t *testing.T) {
	q := NewMinMax()

	err := q.Train(nil)
	assert.ErrorIs(t, err, ErrEmptyMatrix)

	err = q.Train([][]float32{{}})
	assert.ErrorIs(t, err, ErrEmptyMatrix)
}

func TestMinMax_TrainRagged(t *testing.T) {
	q := NewMinMax()

	err := q.Train([][]float32{
		{1, 2, 3},
		{1, 2},
	})
	assert.ErrorIs(t, err, ErrRaggedMatrix)
}

func TestMinMax_NotTrained(t *testing.T) {
	q := NewMinMax()

	_, err := q.Encode([]float32{1})
	assert.ErrorIs(t, err, ErrNotTrained)

	_, err = q.Decode([]byte{1})
	assert.ErrorIs(t, err, ErrNotTrained)

	assert.Equal(t, 0, q.Dims())
}

func TestMinMax_EncodeKnownValues(t *testing.T) {
	q := trainedQuantizer(t)

	low, err := q.Encode([]float32{0, 10})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, low)

	high, err := q.Encode([]float32{1, 20})
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 255}, high)

	// Truncation, not rounding: the midpoint of each axis is 127.5 steps
	// and must land on 127.
	mid, err := q.Encode([]float32{0.5, 15})
	require.NoError(t, err)
	assert.Equal(t, []byte{127, 127}, mid)
}

func TestMinMax_EncodeClipsOutOfRange(t *testing.T) {
	q := trainedQuantizer(t)

	out, err := q.Encode([]float32{-3, 99})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255}, out)
}

func TestMinMax_ConstantAxis(t *testing.T) {
	q := NewMinMax()
	err := q.Train([][]float32{
		{5, 1},
		{5, 3},
	})
	require.NoError(t, err)

	assert.Equal(t, []float32{5, 1}, q.Mins())
	assert.Equal(t, []float32{1, 2}, q.Ranges())

	out, err := q.Encode([]float32{5, 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 127}, out)
}

func TestMinMax_DimensionMismatch(t *testing.T) {
	q := trainedQuantizer(t)

	_, err := q.Encode([]float32{1, 2, 3})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = q.Decode([]byte{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMinMax_EncodeMatrix(t *testing.T) {
	q := trainedQuantizer(t)

	rows, err := q.EncodeMatrix([][]float32{
		{1, 20},
		{0, 10},
		{0.5, 15},
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Row order matches input order.
	assert.Equal(t, []byte{255, 255}, rows[0])
	assert.Equal(t, []byte{0, 0}, rows[1])
	assert.Equal(t, []byte{127, 127}, rows[2])
}

func TestMinMax_DecodeRoundTrip(t *testing.T) {
	q := NewMinMax()
	matrix := [][]float32{
		{-2.5, 100, 0.125},
		{4.25, -50, 0.375},
		{1.75, 12.5, 0.25},
	}
	require.NoError(t, q.Train(matrix))

	for _, original := range matrix {
		encoded, err := q.Encode(original)
		require.NoError(t, err)

		decoded, err := q.Decode(encoded)
		require.NoError(t, err)
		require.Len(t, decoded, len(original))

		// Reconstruction error is bounded by one quantization step per axis.
		ranges := q.Ranges()
		for i := range original {
			assert.InDelta(t, original[i], decoded[i], float64(ranges[i])/255)
		}
	}
}

func TestMinMax_RequantizeStable(t *testing.T) {
	q := NewMinMax()
	matrix := [][]float32{
		{-2.5, 100, 0.125},
		{4.25, -50, 0.375},
		{1.75, 12.5, 0.25},
	}
	require.NoError(t, q.Train(matrix))

	// Quantizing a dequantized vector must reproduce the same bytes,
	// give or take one step of truncation error.
	for _, row := range matrix {
		first, err := q.Encode(row)
		require.NoError(t, err)

		decoded, err := q.Decode(first)
		require.NoError(t, err)

		second, err := q.Encode(decoded)
		require.NoError(t, err)

		for i := range first {
			assert.InDelta(t, float64(first[i]), float64(second[i]), 1, "axis %d", i)
		}
	}
}

func TestMinMax_AccessorsReturnCopies(t *testing.T) {
	q := trainedQuantizer(t)

	mins := q.Mins()
	mins[0] = 999

	fresh := q.Mins()
	assert.Equal(t, float32(0), fresh[0])
}
