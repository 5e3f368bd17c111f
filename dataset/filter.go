package dataset

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/cinevec/cinevec/core"
)

// Default quality thresholds. Below either, a movie's rating signal is too
// thin to be worth a spot in the output files.
const (
	DefaultMinVotes  = 100
	DefaultMinRating = 5.0
)

// Rules holds the quality thresholds applied to raw rows.
type Rules struct {
	// MinVotes is the minimum vote count a row must carry.
	MinVotes int64

	// MinRating is the minimum vote average a row must carry.
	MinRating float64
}

// DefaultRules returns the thresholds used for the published output files.
func DefaultRules() Rules {
	return Rules{
		MinVotes:  DefaultMinVotes,
		MinRating: DefaultMinRating,
	}
}

// FilterStats counts how rows fared against the quality rules. Each
// scanned row lands in Kept or exactly one rejection counter, checked in
// field order.
type FilterStats struct {
	Scanned     int
	Kept        int
	NoPoster    int
	LowVotes    int
	LowRating   int
	BadID       int
	DuplicateID int
	NoTitle     int
	NoText      int
}

// Collect streams all rows from src, applies the quality rules, and maps
// surviving rows to movies in source order. Individual rows are excluded
// silently; only source errors stop the run.
func Collect(src Source, rules Rules) ([]core.Movie, FilterStats, error) {
	logger := slog.Default().With("component", "dataset")

	var stats FilterStats
	var movies []core.Movie
	seen := make(map[core.MovieID]bool)

	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("reading dataset: %w", err)
		}
		stats.Scanned++

		poster := strings.TrimSpace(row.PosterPath)
		if poster == "" {
			stats.NoPoster++
			continue
		}
		if row.VoteCount < rules.MinVotes {
			stats.LowVotes++
			continue
		}
		if row.VoteAverage < rules.MinRating {
			stats.LowRating++
			continue
		}
		if row.ID < 1 || row.ID > math.MaxUint32 {
			stats.BadID++
			continue
		}
		id := core.MovieID(row.ID)
		if seen[id] {
			stats.DuplicateID++
			continue
		}

		title := strings.TrimSpace(row.Title)
		if title == "" {
			title = strings.TrimSpace(row.OriginalTitle)
		}
		if title == "" {
			stats.NoTitle++
			continue
		}

		text := core.EmbeddingText(row.Title, row.Tagline, row.Overview, row.Combined)
		if text == "" {
			stats.NoText++
			continue
		}

		seen[id] = true
		movies = append(movies, core.Movie{
			ID:         id,
			Title:      core.TruncateUTF8(title, core.MaxFieldBytes),
			PosterPath: core.TruncateUTF8(poster, core.MaxFieldBytes),
			Text:       text,
			IMDBNumber: ParseIMDBNumber(row.IMDBID),
			Score:      core.ScoreFromVoteAverage(row.VoteAverage),
		})
		stats.Kept++
	}

	logger.Info("dataset filtered",
		"scanned", stats.Scanned,
		"kept", stats.Kept,
		"no_poster", stats.NoPoster,
		"low_votes", stats.LowVotes,
		"low_rating", stats.LowRating,
		"bad_id", stats.BadID,
		"duplicate_id", stats.DuplicateID,
		"no_title", stats.NoTitle,
		"no_text", stats.NoText)

	return movies, stats, nil
}
