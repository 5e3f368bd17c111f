// Copyright 2025 The Cinevec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateMovie validates a Movie according to domain rules.
//
// Validation rules:
//   - ID must not be zero
//   - Title must not be empty and must fit a single-byte length prefix
//   - PosterPath must not be empty and must fit a single-byte length prefix
//   - Text must not be empty
//
// NOT validated:
//   - IMDBNumber (0 is valid, the cross-reference is optional)
//   - Score (every uint8 value up to 100 is produced by ScoreFromVoteAverage)
func ValidateMovie(movie *Movie) error {
	if movie == nil {
		return fmt.Errorf("%w: movie is nil", ErrInvalidMovie)
	}

	if movie.ID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrInvalidMovieID)
	}

	if movie.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrEmptyTitle)
	}

	if len(movie.Title) > MaxFieldBytes {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrTitleTooLong)
	}

	if movie.PosterPath == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrEmptyPosterPath)
	}

	if len(movie.PosterPath) > MaxFieldBytes {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrPosterPathTooLong)
	}

	if movie.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMovie, ErrEmptyText)
	}

	return nil
}

// ValidateSnapshot validates the internal consistency of a cache snapshot.
//
// Validation rules:
//   - IDs, Keys and Vectors must have equal lengths
//   - IDs must be strictly ascending (implies uniqueness)
func ValidateSnapshot(s *CacheSnapshot) error {
	if s == nil {
		return fmt.Errorf("%w: snapshot is nil", ErrInvalidSnapshot)
	}

	if len(s.IDs) != len(s.Keys) || len(s.IDs) != len(s.Vectors) {
		return fmt.Errorf("%w: parallel arrays disagree (ids=%d keys=%d vectors=%d)",
			ErrInvalidSnapshot, len(s.IDs), len(s.Keys), len(s.Vectors))
	}

	for i := 1; i < len(s.IDs); i++ {
		if s.IDs[i] <= s.IDs[i-1] {
			return fmt.Errorf("%w: ids not strictly ascending at index %d", ErrInvalidSnapshot, i)
		}
	}

	return nil
}
