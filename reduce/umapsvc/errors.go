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


package umapsvc

import "errors"

var (
	// ErrServiceURLRequired is returned when a client is created without a
	// service URL.
	ErrServiceURLRequired = errors.New("reduction service URL required")

	// ErrServiceFailed is returned when the service answers with a non-2xx
	// status.
	ErrServiceFailed = errors.New("reduction service failed")

	// ErrShapeMismatch is returned when the service response does not hold
	// one row per input vector with the configured output dimensionality.
	ErrShapeMismatch = errors.New("reduction response shape mismatch")
)
