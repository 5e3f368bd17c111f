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


package similar

import "errors"

var (
	// ErrNotFound is returned when the query movie id is not in the records.
	ErrNotFound = errors.New("movie not found")

	// ErrDimensionMismatch is returned when records disagree with the query
	// vector on width.
	ErrDimensionMismatch = errors.New("vector width mismatch")
)
