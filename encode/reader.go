package encode

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cinevec/cinevec/core"
)

func readCount(r io.Reader) (uint32, error) {
	var head [4]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return 0, fmt.Errorf("count header: %w", err)
	}
	return binary.LittleEndian.Uint32(head[:]), nil
}

// expectEOF verifies the stream ends where the count header said it would.
func expectEOF(r io.Reader) error {
	var extra [1]byte
	_, err := io.ReadFull(r, extra[:])
	switch err {
	case io.EOF:
		return nil
	case nil:
		return ErrTrailingData
	default:
		return err
	}
}

// ReadMetadata reads a metadata file layout from r and validates that the
// stream length matches the count header.
func ReadMetadata(r io.Reader) ([]MetadataRecord, error) {
	count, err := readCount(r)
	if err != nil {
		return nil, err
	}

	records := make([]MetadataRecord, 0, min(int(count), 1<<20))
	for i := uint32(0); i < count; i++ {
		var fixed [10]byte
		if _, err := io.ReadFull(r, fixed[:]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		title := make([]byte, fixed[9])
		if _, err := io.ReadFull(r, title); err != nil {
			return nil, fmt.Errorf("record %d title: %w", i, err)
		}

		records = append(records, MetadataRecord{
			ID:       core.MovieID(binary.LittleEndian.Uint32(fixed[0:4])),
			CrossRef: binary.LittleEndian.Uint32(fixed[4:8]),
			Score:    fixed[8],
			Title:    string(title),
		})
	}

	if err := expectEOF(r); err != nil {
		return nil, err
	}
	return records, nil
}

// ReadEmbeddings reads an embedding file layout from r. The caller supplies
// dims, the per-record vector width, since the file does not store it.
func ReadEmbeddings(r io.Reader, dims int) ([]EmbeddingRecord, error) {
	if dims < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeDimensions, dims)
	}

	count, err := readCount(r)
	if err != nil {
		return nil, err
	}

	records := make([]EmbeddingRecord, 0, min(int(count), 1<<20))
	for i := uint32(0); i < count; i++ {
		var fixed [5]byte
		if _, err := io.ReadFull(r, fixed[:]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		poster := make([]byte, fixed[4])
		if _, err := io.ReadFull(r, poster); err != nil {
			return nil, fmt.Errorf("record %d poster: %w", i, err)
		}

		vector := make([]byte, dims)
		if _, err := io.ReadFull(r, vector); err != nil {
			return nil, fmt.Errorf("record %d vector: %w", i, err)
		}

		records = append(records, EmbeddingRecord{
			ID:         core.MovieID(binary.LittleEndian.Uint32(fixed[0:4])),
			PosterPath: string(poster),
			Vector:     vector,
		})
	}

	if err := expectEOF(r); err != nil {
		return nil, err
	}
	return records, nil
}
