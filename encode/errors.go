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


package encode

import "errors"

var (
	// ErrTooManyRecords is returned when a record count does not fit the
	// uint32 file header.
	ErrTooManyRecords = errors.New("record count exceeds uint32 range")

	// ErrCountMismatch is returned when movies and vectors passed together
	// differ in length.
	ErrCountMismatch = errors.New("record count mismatch")

	// ErrVectorSizeMismatch is returned when embedding vectors in one file
	// differ in length.
	ErrVectorSizeMismatch = errors.New("vector length mismatch")

	// ErrTrailingData is returned when a stream holds bytes beyond the final
	// record announced by the count header.
	ErrTrailingData = errors.New("trailing bytes after final record")

	// ErrNegativeDimensions is returned when a reader is given a negative
	// vector width.
	ErrNegativeDimensions = errors.New("negative vector dimensions")
)
