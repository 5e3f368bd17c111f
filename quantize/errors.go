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


package quantize

import "errors"

var (
	// ErrEmptyMatrix is returned when training input has no rows or no columns.
	ErrEmptyMatrix = errors.New("empty training matrix")

	// ErrRaggedMatrix is returned when training rows differ in dimensionality.
	ErrRaggedMatrix = errors.New("ragged training matrix")

	// ErrNotTrained is returned when encoding or decoding before Train succeeded.
	ErrNotTrained = errors.New("quantizer not trained")

	// ErrDimensionMismatch is returned when a vector does not match the
	// trained dimensionality.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
