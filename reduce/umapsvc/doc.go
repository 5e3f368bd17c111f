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


// Package umapsvc implements reduce.Reducer on top of an external UMAP
// HTTP service.
//
// The client posts one JSON request per run:
//
//	{
//	  "vectors":    [[...], ...],
//	  "output_dim": 16,
//	  "metric":     "cosine",
//	  "neighbors":  30,
//	  "min_dist":   0.1,
//	  "seed":       42
//	}
//
// and expects {"vectors": [[...], ...]} back with one row per input row.
// Any transport failure, non-2xx status, or shape mismatch is returned as
// an error; there are no retries, the run either completes or fails.
package umapsvc
