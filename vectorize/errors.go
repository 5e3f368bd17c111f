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


package vectorize

import "errors"

var (
	// ErrNilCache is returned when Run is given a nil cache map. The map is
	// updated in place, so the caller must supply one.
	ErrNilCache = errors.New("nil cache map")

	// ErrVectorCountMismatch is returned when the embedding backend answers
	// a batch with the wrong number of vectors.
	ErrVectorCountMismatch = errors.New("embedding backend returned wrong vector count")

	// ErrEmptyVector is returned when a movie ends the embedding phase
	// without a non-empty vector.
	ErrEmptyVector = errors.New("empty embedding vector")

	// ErrDimensionMismatch is returned when cached and regenerated vectors
	// disagree on dimensionality.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
