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


package dataset

import "errors"

var (
	// ErrMissingIDColumn is returned when a CSV export lacks the id column.
	ErrMissingIDColumn = errors.New("dataset has no id column")

	// ErrUnknownFormat is returned when a dataset path has neither a JSONL
	// nor a CSV extension and no format override was given.
	ErrUnknownFormat = errors.New("unknown dataset format")
)
