package dataset

import (
	"strconv"
	"strings"
)

// Row is one raw record of a movie export, before any quality filtering.
// Numeric fields default to zero when the export leaves them blank.
type Row struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Tagline       string  `json:"tagline"`
	Overview      string  `json:"overview"`
	Combined      string  `json:"combined"`
	PosterPath    string  `json:"poster_path"`
	IMDBID        string  `json:"imdb_id"`
	VoteCount     int64   `json:"vote_count"`
	VoteAverage   float64 `json:"vote_average"`
}

// Source streams raw rows from a movie export. Next returns io.EOF after
// the final row.
type Source interface {
	Next() (*Row, error)
	Close() error
}

// ParseIMDBNumber extracts the numeric part of an IMDb reference such as
// "tt0133093". Missing, malformed, or out-of-range references yield 0.
func ParseIMDBNumber(s string) uint32 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "tt")
	if s == "" {
		return 0
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
