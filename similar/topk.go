package similar

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/cinevec/cinevec/core"
	"github.com/cinevec/cinevec/encode"
)

// Match pairs an embedding record with its squared distance to the query.
type Match struct {
	Record   encode.EmbeddingRecord
	Distance int
}

// SquaredDistance returns the squared Euclidean distance between two
// quantized vectors of equal length.
func SquaredDistance(a, b []byte) int {
	sum := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		sum += d * d
	}
	return sum
}

// TopK returns the k records nearest to the query vector, nearest first.
// Ties break by ascending movie id. Every record must match the query's
// width.
func TopK(records []encode.EmbeddingRecord, query []byte, k int) ([]Match, error) {
	if k <= 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(records))
	for _, rec := range records {
		if len(rec.Vector) != len(query) {
			return nil, fmt.Errorf("%w: record %d has %d bytes, query has %d",
				ErrDimensionMismatch, rec.ID, len(rec.Vector), len(query))
		}
		matches = append(matches, Match{
			Record:   rec,
			Distance: SquaredDistance(rec.Vector, query),
		})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Record.ID, b.Record.ID)
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches, nil
}

// ByID finds the record with the given movie id.
func ByID(records []encode.EmbeddingRecord, id core.MovieID) (encode.EmbeddingRecord, bool) {
	for _, rec := range records {
		if rec.ID == id {
			return rec, true
		}
	}
	return encode.EmbeddingRecord{}, false
}

// Neighbors returns the k records nearest to the movie with the given id,
// excluding the movie itself.
func Neighbors(records []encode.EmbeddingRecord, id core.MovieID, k int) ([]Match, error) {
	query, ok := ByID(records, id)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	others := make([]encode.EmbeddingRecord, 0, len(records)-1)
	for _, rec := range records {
		if rec.ID != id {
			others = append(others, rec)
		}
	}
	return TopK(others, query.Vector, k)
}
