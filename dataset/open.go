package dataset

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format names a dataset file layout.
type Format string

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = ""

	// FormatJSONL is one JSON object per line.
	FormatJSONL Format = "jsonl"

	// FormatCSV is a header-mapped CSV export.
	FormatCSV Format = "csv"
)

// Open opens path as a row source. With FormatAuto the format follows the
// file extension: .jsonl and .ndjson read as JSONL, .csv as CSV.
func Open(path string, format Format) (Source, error) {
	switch format {
	case FormatJSONL:
		return OpenJSONL(path)
	case FormatCSV:
		return OpenCSV(path)
	case FormatAuto:
		switch strings.ToLower(filepath.Ext(path)) {
		case ".jsonl", ".ndjson":
			return OpenJSONL(path)
		case ".csv":
			return OpenCSV(path)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
