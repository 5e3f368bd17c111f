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


// Package vectorize turns filtered movies into an embedding matrix.
//
// The Orchestrator decides per movie whether the cached vector is still
// valid (the stored cache key must equal the key derived from the current
// scope and embedding text) and regenerates the rest through the
// embedding backend in order-preserving batches. Any backend error or
// malformed response ends the run; there are no retries, and a rerun
// resumes from whatever the cache already holds.
//
// The cache map passed to Run is updated in place with every regenerated
// vector. Persisting it is the caller's job, though an optional checkpoint
// store can flush it mid-run so a crash late in a long first run does not
// forfeit every embedding.
package vectorize
