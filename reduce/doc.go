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


// Package reduce defines the dimensionality-reduction boundary of the
// pipeline. Reduction itself runs outside the process: the embedding
// matrix is handed to an external UMAP service and comes back as one row
// per input vector with the configured output dimensionality.
//
// Params carries the projection parameters. They are part of the output
// contract: changing any of them reshuffles the projected space, so runs
// that should be comparable must share them.
//
// Implementations live in subpackages; see umapsvc for the HTTP client.
// The Identity reducer stands in where no service is available and the
// input dimensionality is already acceptable.
package reduce
