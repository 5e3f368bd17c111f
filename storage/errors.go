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

import "errors"

var (
	// ErrBadMagic indicates the cache file does not start with the cache
	// container magic bytes.
	ErrBadMagic = errors.New("not a cache container")

	// ErrUnsupportedVersion indicates a cache container version this build
	// cannot read.
	ErrUnsupportedVersion = errors.New("unsupported cache container version")

	// ErrStorageClosed indicates that the storage backend is closed.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed indicates a serialization/deserialization failure.
	ErrSerializationFailed = errors.New("serialization failed")

	// ErrTruncatedData indicates that data was truncated during reading.
	ErrTruncatedData = errors.New("truncated data")
)
