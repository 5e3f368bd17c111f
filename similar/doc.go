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


// Package similar ranks quantized embedding records by distance. It backs
// the neighbors tool used to sanity-check output quality: if a movie's
// nearest neighbors look unrelated, something upstream went wrong.
//
// Distance is squared Euclidean over the raw quantized bytes. It is
// monotonic with Euclidean distance, which is all that ranking needs.
// Ties break by movie id so results are deterministic.
package similar
