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


package badger

import "github.com/cinevec/cinevec/storage"

// NewMemoryStore creates an in-memory cache store for testing.
// Caller must close the store when done; closing it closes the backend.
func NewMemoryStore() (storage.CacheStore, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, err
	}
	return NewCacheStore(backend), nil
}
