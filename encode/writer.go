package encode

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/cinevec/cinevec/core"
)

func writeCount(w io.Writer, n int) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("%w: %d records", ErrTooManyRecords, n)
	}
	var head [4]byte
	binary.LittleEndian.PutUint32(head[:], uint32(n))
	_, err := w.Write(head[:])
	return err
}

// WriteMetadata writes the metadata file layout to w. Titles longer than
// 255 UTF-8 bytes are clamped on a rune boundary.
func WriteMetadata(w io.Writer, records []MetadataRecord) error {
	if err := writeCount(w, len(records)); err != nil {
		return fmt.Errorf("count header: %w", err)
	}

	for i, rec := range records {
		title := []byte(core.TruncateUTF8(rec.Title, core.MaxFieldBytes))

		buf := make([]byte, 0, 10+len(title))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(rec.ID))
		buf = binary.LittleEndian.AppendUint32(buf, rec.CrossRef)
		buf = append(buf, rec.Score, byte(len(title)))
		buf = append(buf, title...)

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}

// WriteEmbeddings writes the embedding file layout to w. Every record must
// carry a vector of the same length since the file stores no per-record
// dimensionality. Poster paths longer than 255 UTF-8 bytes are clamped on a
// rune boundary.
func WriteEmbeddings(w io.Writer, records []EmbeddingRecord) error {
	if err := writeCount(w, len(records)); err != nil {
		return fmt.Errorf("count header: %w", err)
	}

	dims := 0
	if len(records) > 0 {
		dims = len(records[0].Vector)
	}

	for i, rec := range records {
		if len(rec.Vector) != dims {
			return fmt.Errorf("%w: record %d has %d bytes, want %d", ErrVectorSizeMismatch, i, len(rec.Vector), dims)
		}
		poster := []byte(core.TruncateUTF8(rec.PosterPath, core.MaxFieldBytes))

		buf := make([]byte, 0, 5+len(poster)+dims)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(rec.ID))
		buf = append(buf, byte(len(poster)))
		buf = append(buf, poster...)
		buf = append(buf, rec.Vector...)

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}
	return nil
}
