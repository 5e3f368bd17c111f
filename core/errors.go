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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMovie indicates a Movie failed validation.
	ErrInvalidMovie = errors.New("invalid movie")

	// ErrInvalidMovieID indicates a zero movie identifier.
	ErrInvalidMovieID = errors.New("movie id cannot be zero")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrTitleTooLong indicates the Title field exceeds 255 bytes.
	ErrTitleTooLong = errors.New("title exceeds 255 bytes")

	// ErrEmptyPosterPath indicates the PosterPath field is empty.
	ErrEmptyPosterPath = errors.New("poster path cannot be empty")

	// ErrPosterPathTooLong indicates the PosterPath field exceeds 255 bytes.
	ErrPosterPathTooLong = errors.New("poster path exceeds 255 bytes")

	// ErrEmptyText indicates the embedding input text is empty.
	ErrEmptyText = errors.New("embedding text cannot be empty")

	// ErrInvalidSnapshot indicates a cache snapshot with inconsistent
	// parallel arrays.
	ErrInvalidSnapshot = errors.New("invalid cache snapshot")
)
