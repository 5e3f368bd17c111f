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


// Package storage provides persistence for the embedding cache.
//
// This package defines the CacheStore interface that decouples cache
// persistence from the pipeline logic, plus the default single-file
// implementation. The storage/badger sub-package provides an alternative
// backend for workflows that update the cache incrementally.
//
// # Cache Container Format
//
// The file store persists the cache as a single container file:
//
//	[magic: "CVEC"][version: 1 byte][zstd-compressed MUS payload]
//
// The payload is a CacheSnapshot serialized with the generated MUS
// serializers from the core package. Version 1 containers predate cache
// keys; they still load, but every entry comes back with an empty key and
// is regenerated on the next run rather than trusted.
//
// # Atomicity
//
// Saves are atomic at the file level: the new container is written to a
// temp file in the target directory, synced, and renamed over the old one.
// A crash mid-save leaves the previous cache intact. The Badger backend
// gets the equivalent guarantee from its transactions.
//
// # Usage
//
//	store := storage.NewFileStore(".cache/embeddings.cvec")
//	defer store.Close()
//
//	scope, entries, err := store.Load(ctx)
//	// decide reuse per entry, regenerate the rest
//	err = store.Save(ctx, scope, entries)
//
// # Ownership
//
// A store is owned by a single pipeline run for its duration. No
// implementation locks the cache against a second concurrent run; keeping
// runs serialized per cache file is the caller's responsibility.
//
// # Context Support
//
// All store methods accept context.Context for cancellation and timeout
// support. Pass context.Background() for operations without specific
// timeout requirements.
package storage
