package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVSource reads a header-mapped CSV export. Columns are matched by name,
// so column order and extra columns do not matter. Only the id column is
// mandatory; absent columns read as empty.
type CSVSource struct {
	closer io.Closer
	reader *csv.Reader
	cols   map[string]int
}

var _ Source = (*CSVSource)(nil)

// NewCSVSource reads rows from r, consuming the header line immediately.
// Close is a no-op; use OpenCSV for file-backed sources.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	// Rows are mapped by header name, so ragged records are tolerable.
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	if _, ok := cols["id"]; !ok {
		return nil, ErrMissingIDColumn
	}

	return &CSVSource{reader: cr, cols: cols}, nil
}

// OpenCSV opens a CSV file as a row source.
func OpenCSV(path string) (*CSVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src, err := NewCSVSource(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	src.closer = f
	return src, nil
}

// Next returns the next row, or io.EOF after the final record.
func (s *CSVSource) Next() (*Row, error) {
	record, err := s.reader.Read()
	if err != nil {
		return nil, err
	}

	return &Row{
		ID:            parseCount(s.field(record, "id")),
		Title:         s.field(record, "title"),
		OriginalTitle: s.field(record, "original_title"),
		Tagline:       s.field(record, "tagline"),
		Overview:      s.field(record, "overview"),
		Combined:      s.field(record, "combined"),
		PosterPath:    s.field(record, "poster_path"),
		IMDBID:        s.field(record, "imdb_id"),
		VoteCount:     parseCount(s.field(record, "vote_count")),
		VoteAverage:   parseRating(s.field(record, "vote_average")),
	}, nil
}

// Close releases the underlying file, if any.
func (s *CSVSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func (s *CSVSource) field(record []string, name string) string {
	idx, ok := s.cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

// parseCount reads an integer column. Some exports format counts as floats
// ("150.0"); blanks and garbage read as 0, which quality rules reject.
func parseCount(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return 0
}

func parseRating(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
