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


// Package encode writes and reads the binary output files consumed by the
// movie browser frontend. The byte layout is fixed: all multi-byte integers
// are little-endian, records carry no padding, alignment, or checksums, and
// record order in the file matches record order in memory.
//
// # Metadata File (movies.bin)
//
//	[count: uint32]
//	per record:
//	  [id: uint32]
//	  [crossref: uint32]     numeric IMDb reference, 0 when unknown
//	  [score: uint8]         vote average scaled to 0..100
//	  [title_len: uint8]
//	  [title: utf8 bytes]
//
// # Embedding File (embeddings.bin)
//
//	[count: uint32]
//	per record:
//	  [id: uint32]
//	  [poster_len: uint8]
//	  [poster: utf8 bytes]
//	  [vector: uint8 bytes]  fixed per-file dimensionality, not stored
//
// The embedding dimensionality is not encoded in the file; readers must be
// told how many vector bytes each record carries.
//
// Writers clamp titles and poster paths to 255 UTF-8 bytes on rune
// boundaries. SaveToFile writes through a temp file and rename so a failed
// run never leaves a partial output in place.
package encode
