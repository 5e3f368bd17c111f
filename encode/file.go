package encode

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

const fileBufferSize = 256 * 1024

// SaveToFile writes an output file through writeFunc. The data goes to a
// temp file in the target directory first and is renamed over the target
// only after a successful flush and sync, so a failed run never leaves a
// partial output in place.
func SaveToFile(filename string, writeFunc func(io.Writer) error) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, fileBufferSize)
	if err := writeFunc(buf); err != nil {
		return err
	}
	if err := buf.Flush(); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}

// LoadFromFile reads an output file through readFunc.
func LoadFromFile(filename string, readFunc func(io.Reader) error) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return readFunc(bufio.NewReaderSize(f, fileBufferSize))
}

// SaveMetadataFile writes records to the metadata file at path.
func SaveMetadataFile(path string, records []MetadataRecord) error {
	return SaveToFile(path, func(w io.Writer) error {
		return WriteMetadata(w, records)
	})
}

// SaveEmbeddingsFile writes records to the embedding file at path.
func SaveEmbeddingsFile(path string, records []EmbeddingRecord) error {
	return SaveToFile(path, func(w io.Writer) error {
		return WriteEmbeddings(w, records)
	})
}

// LoadMetadataFile reads the metadata file at path.
func LoadMetadataFile(path string) ([]MetadataRecord, error) {
	var records []MetadataRecord
	err := LoadFromFile(path, func(r io.Reader) error {
		var readErr error
		records, readErr = ReadMetadata(r)
		return readErr
	})
	return records, err
}

// LoadEmbeddingsFile reads the embedding file at path, with dims vector
// bytes per record.
func LoadEmbeddingsFile(path string, dims int) ([]EmbeddingRecord, error) {
	var records []EmbeddingRecord
	err := LoadFromFile(path, func(r io.Reader) error {
		var readErr error
		records, readErr = ReadEmbeddings(r, dims)
		return readErr
	})
	return records, err
}
