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


// Package quantize compresses reduced embedding vectors to one byte per
// dimension using per-axis min-max quantization.
//
// The MinMax quantizer is trained on the full matrix of a run: each axis
// gets its own [min, max] interval observed across all rows, and values
// are linearly mapped onto 0..255 with float-to-int truncation. Axes where
// every row holds the same value get a range of 1 so they quantize to zero
// instead of dividing by zero.
//
// Training parameters are exposed through Mins and Ranges so tools can
// reconstruct approximate float vectors from quantized records via Decode.
package quantize
