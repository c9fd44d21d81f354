// Copyright 2025 Poiesic Systems
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
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/storage"
)

// EntryStore implements storage.Store for BadgerDB.
type EntryStore struct {
	backend *Backend
}

var _ storage.Store = (*EntryStore)(nil)

// NewEntryStore creates an entry store on top of the given backend.
func NewEntryStore(backend *Backend) *EntryStore {
	return &EntryStore{backend: backend}
}

// Close closes the underlying backend.
func (s *EntryStore) Close() error {
	return s.backend.Close()
}

// Store inserts entries, replacing any existing entries with the same ID.
func (s *EntryStore) Store(ctx context.Context, entries ...*core.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := core.ValidateEntry(entry); err != nil {
				return err
			}
			if entry.InsertedAt.IsZero() {
				entry.InsertedAt = time.Now().UTC()
			}

			key := makeEntryKey(entry.ID)
			value := storage.MarshalEntry(entry)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Remove deletes entries by their IDs. Absent IDs are ignored.
func (s *EntryStore) Remove(ctx context.Context, ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeEntryKey(id)
			if _, err := tx.Get(key); err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// List returns all stored entries.
func (s *EntryStore) List(ctx context.Context) ([]*core.Entry, error) {
	var entries []*core.Entry

	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(entryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var entry *core.Entry
			err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			entries = append(entries, entry)
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return entries, nil
}
