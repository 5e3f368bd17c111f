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
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cinevec/cinevec/core"
)

// FileStore is the default CacheStore: a single cache container file on disk.
// Saves write a temp file in the target directory and rename it into place,
// so an interrupted save never corrupts the previous cache.
type FileStore struct {
	path   string
	logger *slog.Logger
}

var _ CacheStore = (*FileStore)(nil)

// NewFileStore creates a file-backed cache store at the given path.
// The file does not need to exist yet.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:   path,
		logger: slog.Default().With("component", "cache-file", "path", path),
	}
}

// Path returns the location of the cache container file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the cache container.
// A missing file is a cold cache: empty scope, no entries, no error.
func (s *FileStore) Load(ctx context.Context) (string, map[core.MovieID]core.CacheEntry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug("no cache file, starting cold")
			return "", map[core.MovieID]core.CacheEntry{}, nil
		}
		return "", nil, err
	}

	snapshot, err := DecodeContainer(data)
	if err != nil {
		return "", nil, fmt.Errorf("cache file %s: %w", s.path, err)
	}

	s.logger.Debug("cache loaded", "entries", len(snapshot.IDs), "scope", snapshot.Scope)
	return snapshot.Scope, snapshot.Entries(), nil
}

// Save encodes the cache and atomically replaces the container file.
func (s *FileStore) Save(ctx context.Context, scope string, entries map[core.MovieID]core.CacheEntry) error {
	data := EncodeContainer(core.NewCacheSnapshot(scope, entries))

	dir := filepath.Dir(s.path)
	base := filepath.Base(s.path)

	// Write to a temp file in the same directory to ensure rename is atomic.
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	// Match typical file permissions (best-effort).
	_ = tmp.Chmod(0644)

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	// Atomically replace target.
	if err := os.Rename(tmpName, s.path); err != nil {
		return err
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""

	s.logger.Debug("cache saved", "entries", len(entries), "bytes", len(data))
	return nil
}

// Prune rewrites the cache keeping only the given identifiers.
func (s *FileStore) Prune(ctx context.Context, keep map[core.MovieID]bool) (int, error) {
	scope, entries, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}

	removed := PruneEntries(entries, keep)
	if removed == 0 {
		return 0, nil
	}

	if err := s.Save(ctx, scope, entries); err != nil {
		return 0, err
	}
	s.logger.Info("cache pruned", "removed", removed, "remaining", len(entries))
	return removed, nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
