package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

// maxLineBytes bounds a single JSONL line. Overview and combined text make
// rows long, but nowhere near this.
const maxLineBytes = 4 * 1024 * 1024

// JSONLSource reads one JSON object per line. Blank lines are skipped; a
// line that fails to parse ends the run with an error naming the line.
type JSONLSource struct {
	closer  io.Closer
	scanner *bufio.Scanner
	line    int
}

var _ Source = (*JSONLSource)(nil)

// NewJSONLSource reads rows from r. Close is a no-op; use OpenJSONL for
// file-backed sources.
func NewJSONLSource(r io.Reader) *JSONLSource {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return &JSONLSource{scanner: scanner}
}

// OpenJSONL opens a JSONL file as a row source.
func OpenJSONL(path string) (*JSONLSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	src := NewJSONLSource(f)
	src.closer = f
	return src, nil
}

// Next returns the next row, or io.EOF after the final line.
func (s *JSONLSource) Next() (*Row, error) {
	for s.scanner.Scan() {
		s.line++
		line := bytes.TrimSpace(s.scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var row Row
		if err := json.Unmarshal(line, &row); err != nil {
			return nil, fmt.Errorf("line %d: %w", s.line, err)
		}
		return &row, nil
	}

	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Close releases the underlying file, if any.
func (s *JSONLSource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
