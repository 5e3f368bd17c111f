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


package pipeline

import "errors"

var (
	// ErrSourceRequired is returned when a dataset source is not provided.
	ErrSourceRequired = errors.New("dataset source required")

	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")

	// ErrStoreRequired is returned when a cache store is not provided.
	ErrStoreRequired = errors.New("cache store required")

	// ErrReducerRequired is returned when a reducer is not provided.
	ErrReducerRequired = errors.New("reducer required")

	// ErrNoMovies is returned when no rows survive the quality filter.
	// Writing empty output files would wipe a working dataset, so the run
	// aborts instead.
	ErrNoMovies = errors.New("no movies survived filtering")

	// ErrReductionShape is returned when the reducer does not answer with
	// exactly one row per movie.
	ErrReductionShape = errors.New("reduction returned wrong row count")
)
