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


// Package dataset reads tabular movie exports and filters them down to the
// records worth embedding.
//
// A Source streams raw rows from a JSONL or CSV export. Collect applies
// the quality rules (poster present, enough votes, decent rating, usable
// identifier and derivable title and embedding text) and maps surviving
// rows to core.Movie values. Rows failing a rule are skipped silently;
// only the per-rule totals are reported.
//
// Row field names follow the common movie-export column naming (id, title,
// original_title, tagline, overview, combined, poster_path, imdb_id,
// vote_count, vote_average). Missing numeric values count as zero, which
// always fails the vote and rating rules.
package dataset
