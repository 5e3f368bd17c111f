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

import (
	"context"
	"log/slog"
	"slices"

	"github.com/cinevec/cinevec/core"
	"github.com/cinevec/cinevec/storage"
	"github.com/dgraph-io/badger/v4"
)

// entries per write transaction, kept well under Badger's txn size limit
const writeChunkSize = 1000

// CacheStore implements storage.CacheStore on BadgerDB.
//
// Each cached embedding lives under its own key, so unlike the single-file
// store, individual entries can be rewritten without re-encoding the whole
// cache. Useful for workflows that checkpoint the cache mid-run.
type CacheStore struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.CacheStore = (*CacheStore)(nil)

// NewCacheStore creates a cache store on an open backend.
// The store takes ownership of the backend; Close closes it.
func NewCacheStore(backend *Backend) *CacheStore {
	return &CacheStore{
		backend: backend,
		logger:  slog.Default().With("component", "cache-badger"),
	}
}

// Load reads every cached entry and the scope marker.
func (s *CacheStore) Load(ctx context.Context) (string, map[core.MovieID]core.CacheEntry, error) {
	if s.backend.IsClosed() {
		return "", nil, storage.ErrStorageClosed
	}

	scope := ""
	entries := map[core.MovieID]core.CacheEntry{}

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		if item, err := tx.Get([]byte(metaScopeKey)); err == nil {
			if err := item.Value(func(val []byte) error {
				scope = string(val)
				return nil
			}); err != nil {
				return err
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = vectorEntryKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()
			id, err := parseVectorEntryKey(item.Key())
			if err != nil {
				return err
			}
			if err := item.Value(func(val []byte) error {
				entry, err := storage.UnmarshalCacheEntry(val)
				if err != nil {
					return err
				}
				entries[id] = *entry
				return nil
			}); err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return "", nil, err
	}
	s.logger.Debug("cache loaded", "entries", len(entries), "scope", scope)
	return scope, entries, nil
}

// Save replaces the stored cache with the given scope and entries.
// The replacement runs in chunked transactions; a crash mid-save leaves a
// readable cache whose entries are individually valid.
func (s *CacheStore) Save(ctx context.Context, scope string, entries map[core.MovieID]core.CacheEntry) error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	stale, err := s.staleKeys(entries)
	if err != nil {
		return err
	}

	// Drop entries that are no longer present, then upsert the rest.
	for chunk := range slices.Chunk(stale, writeChunkSize) {
		err := s.backend.WithTx(func(tx *badger.Txn) error {
			for _, key := range chunk {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}

	ids := make([]core.MovieID, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for chunk := range slices.Chunk(ids, writeChunkSize) {
		err := s.backend.WithTx(func(tx *badger.Txn) error {
			for _, id := range chunk {
				entry := entries[id]
				if err := tx.Set(makeVectorEntryKey(id), storage.MarshalCacheEntry(&entry)); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}

	err = s.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(metaScopeKey), []byte(scope)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	s.logger.Debug("cache saved", "entries", len(entries), "removed", len(stale))
	return nil
}

// Prune removes entries whose identifiers are absent from keep.
func (s *CacheStore) Prune(ctx context.Context, keep map[core.MovieID]bool) (int, error) {
	if s.backend.IsClosed() {
		return 0, storage.ErrStorageClosed
	}

	var stale [][]byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = vectorEntryKeyPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().KeyCopy(nil)
			id, err := parseVectorEntryKey(key)
			if err != nil {
				return err
			}
			if !keep[id] {
				stale = append(stale, key)
			}
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	for chunk := range slices.Chunk(stale, writeChunkSize) {
		err := s.backend.WithTx(func(tx *badger.Txn) error {
			for _, key := range chunk {
				if err := tx.Delete(key); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return 0, err
		}
	}

	if len(stale) > 0 {
		s.logger.Info("cache pruned", "removed", len(stale))
	}
	return len(stale), nil
}

// Close closes the underlying backend.
func (s *CacheStore) Close() error {
	return s.backend.Close()
}

// staleKeys lists stored entry keys absent from the new entry set.
func (s *CacheStore) staleKeys(entries map[core.MovieID]core.CacheEntry) ([][]byte, error) {
	var stale [][]byte
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = vectorEntryKeyPrefix()
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().KeyCopy(nil)
			id, err := parseVectorEntryKey(key)
			if err != nil {
				return err
			}
			if _, ok := entries[id]; !ok {
				stale = append(stale, key)
			}
		}
		return nil
	}, false)
	return stale, err
}
