package encode

import (
	"fmt"

	"github.com/cinevec/cinevec/core"
)

// DefaultMetadataFilename is the conventional name of the metadata output.
const DefaultMetadataFilename = "movies.bin"

// DefaultEmbeddingsFilename is the conventional name of the embedding output.
const DefaultEmbeddingsFilename = "embeddings.bin"

// MetadataRecord is one row of the metadata file: display fields the
// frontend needs without touching the embedding file.
type MetadataRecord struct {
	ID       core.MovieID
	CrossRef uint32
	Score    uint8
	Title    string
}

// EmbeddingRecord is one row of the embedding file: the poster reference
// plus the quantized vector.
type EmbeddingRecord struct {
	ID         core.MovieID
	PosterPath string
	Vector     []byte
}

// MetadataFromMovies builds metadata records in movie order.
func MetadataFromMovies(movies []core.Movie) []MetadataRecord {
	records := make([]MetadataRecord, len(movies))
	for i, m := range movies {
		records[i] = MetadataRecord{
			ID:       m.ID,
			CrossRef: m.IMDBNumber,
			Score:    m.Score,
			Title:    m.Title,
		}
	}
	return records
}

// EmbeddingsFromMovies pairs movies with their quantized vectors, row i of
// vectors belonging to movies[i].
func EmbeddingsFromMovies(movies []core.Movie, vectors [][]byte) ([]EmbeddingRecord, error) {
	if len(movies) != len(vectors) {
		return nil, fmt.Errorf("%w: %d movies, %d vectors", ErrCountMismatch, len(movies), len(vectors))
	}

	records := make([]EmbeddingRecord, len(movies))
	for i, m := range movies {
		records[i] = EmbeddingRecord{
			ID:         m.ID,
			PosterPath: m.PosterPath,
			Vector:     vectors[i],
		}
	}
	return records, nil
}
