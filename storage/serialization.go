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


package storage

import (
	"github.com/cinevec/cinevec/core"
)

// MarshalMovieID serializes a MovieID to bytes.
func MarshalMovieID(id core.MovieID) []byte {
	buf := make([]byte, core.MovieIDMUS.Size(id))
	core.MovieIDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalMovieID deserializes a MovieID from bytes.
func UnmarshalMovieID(data []byte) (core.MovieID, error) {
	id, _, err := core.MovieIDMUS.Unmarshal(data)
	return id, err
}

// MarshalCacheEntry serializes a CacheEntry to bytes.
func MarshalCacheEntry(entry *core.CacheEntry) []byte {
	buf := make([]byte, core.CacheEntryMUS.Size(*entry))
	core.CacheEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalCacheEntry deserializes a CacheEntry from bytes.
func UnmarshalCacheEntry(data []byte) (*core.CacheEntry, error) {
	entry, _, err := core.CacheEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalCacheSnapshot serializes a CacheSnapshot to bytes.
func MarshalCacheSnapshot(snapshot *core.CacheSnapshot) []byte {
	buf := make([]byte, core.CacheSnapshotMUS.Size(*snapshot))
	core.CacheSnapshotMUS.Marshal(*snapshot, buf)
	return buf
}

// UnmarshalCacheSnapshot deserializes a CacheSnapshot from bytes.
func UnmarshalCacheSnapshot(data []byte) (*core.CacheSnapshot, error) {
	snapshot, _, err := core.CacheSnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// MarshalLegacyCacheSnapshot serializes a LegacyCacheSnapshot to bytes.
func MarshalLegacyCacheSnapshot(snapshot *core.LegacyCacheSnapshot) []byte {
	buf := make([]byte, core.LegacyCacheSnapshotMUS.Size(*snapshot))
	core.LegacyCacheSnapshotMUS.Marshal(*snapshot, buf)
	return buf
}

// UnmarshalLegacyCacheSnapshot deserializes a LegacyCacheSnapshot from bytes.
func UnmarshalLegacyCacheSnapshot(data []byte) (*core.LegacyCacheSnapshot, error) {
	snapshot, _, err := core.LegacyCacheSnapshotMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}
