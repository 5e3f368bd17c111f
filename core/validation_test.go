package core

import (
	"errors"
	"strings"
	"testing"
)

func validMovie() *Movie {
	return &Movie{
		ID:         603,
		Title:      "The Matrix",
		PosterPath: "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
		Text:       "The Matrix. A computer hacker learns about the true nature of reality.",
		IMDBNumber: 133093,
		Score:      82,
	}
}

func TestValidateMovie(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Movie)
		movie   *Movie
		wantErr error
	}{
		{
			name:    "valid movie",
			movie:   validMovie(),
			wantErr: nil,
		},
		{
			name:    "valid movie without cross-reference",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.IMDBNumber = 0 },
			wantErr: nil,
		},
		{
			name:    "nil movie",
			movie:   nil,
			wantErr: ErrInvalidMovie,
		},
		{
			name:    "zero id",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.ID = 0 },
			wantErr: ErrInvalidMovieID,
		},
		{
			name:    "empty title",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.Title = "" },
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "oversized title",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.Title = strings.Repeat("x", 256) },
			wantErr: ErrTitleTooLong,
		},
		{
			name:    "title at limit",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.Title = strings.Repeat("x", 255) },
			wantErr: nil,
		},
		{
			name:    "empty poster path",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.PosterPath = "" },
			wantErr: ErrEmptyPosterPath,
		},
		{
			name:    "oversized poster path",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.PosterPath = strings.Repeat("p", 256) },
			wantErr: ErrPosterPathTooLong,
		},
		{
			name:    "empty text",
			movie:   validMovie(),
			mutate:  func(m *Movie) { m.Text = "" },
			wantErr: ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.mutate != nil {
				tt.mutate(tt.movie)
			}
			err := ValidateMovie(tt.movie)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMovie() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateMovie() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMovie() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidMovie) {
				t.Errorf("ValidateMovie() error = %v, want it to wrap %v", err, ErrInvalidMovie)
			}
		})
	}
}

func TestValidateSnapshot(t *testing.T) {
	tests := []struct {
		name     string
		snapshot *CacheSnapshot
		wantErr  bool
	}{
		{
			name: "valid snapshot",
			snapshot: &CacheSnapshot{
				Scope:   "openai:nomic-embed-text",
				IDs:     []MovieID{1, 2, 3},
				Keys:    []string{"a", "b", "c"},
				Vectors: [][]float32{{1}, {2}, {3}},
			},
			wantErr: false,
		},
		{
			name: "empty snapshot",
			snapshot: &CacheSnapshot{
				Scope: "openai:nomic-embed-text",
			},
			wantErr: false,
		},
		{
			name:     "nil snapshot",
			snapshot: nil,
			wantErr:  true,
		},
		{
			name: "key array too short",
			snapshot: &CacheSnapshot{
				IDs:     []MovieID{1, 2},
				Keys:    []string{"a"},
				Vectors: [][]float32{{1}, {2}},
			},
			wantErr: true,
		},
		{
			name: "vector array too long",
			snapshot: &CacheSnapshot{
				IDs:     []MovieID{1},
				Keys:    []string{"a"},
				Vectors: [][]float32{{1}, {2}},
			},
			wantErr: true,
		},
		{
			name: "duplicate ids",
			snapshot: &CacheSnapshot{
				IDs:     []MovieID{1, 1},
				Keys:    []string{"a", "b"},
				Vectors: [][]float32{{1}, {2}},
			},
			wantErr: true,
		},
		{
			name: "unsorted ids",
			snapshot: &CacheSnapshot{
				IDs:     []MovieID{2, 1},
				Keys:    []string{"a", "b"},
				Vectors: [][]float32{{1}, {2}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSnapshot(tt.snapshot)

			if tt.wantErr && err == nil {
				t.Error("ValidateSnapshot() error = nil, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateSnapshot() error = %v, want nil", err)
			}
			if err != nil && !errors.Is(err, ErrInvalidSnapshot) {
				t.Errorf("ValidateSnapshot() error = %v, want %v", err, ErrInvalidSnapshot)
			}
		})
	}
}
