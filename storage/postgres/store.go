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


package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/poiesic/inflow/core"
	"github.com/poiesic/inflow/storage"
)

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS entries (
		id        BIGINT PRIMARY KEY,
		source_id BIGINT NOT NULL,
		data      BYTEA NOT NULL
	)`

const upsertEntryQuery = `
	INSERT INTO entries (id, source_id, data) VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET source_id = EXCLUDED.source_id, data = EXCLUDED.data`

// EntryStore implements storage.Store on top of a PostgreSQL connection pool.
// Entries are stored as MUS-encoded blobs keyed by ID, so the wire format
// stays identical to the badger backend.
type EntryStore struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*EntryStore)(nil)

// Open connects to the database at connString and ensures the entries table
// exists.
func Open(ctx context.Context, connString string) (*EntryStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if _, err := pool.Exec(ctx, createTableQuery); err != nil {
		pool.Close()
		return nil, err
	}
	return &EntryStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *EntryStore) Close() error {
	s.pool.Close()
	return nil
}

// Store inserts entries, replacing any existing entries with the same ID.
func (s *EntryStore) Store(ctx context.Context, entries ...*core.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, entry := range entries {
		if err := core.ValidateEntry(entry); err != nil {
			return err
		}
		if entry.InsertedAt.IsZero() {
			entry.InsertedAt = time.Now().UTC()
		}
		batch.Queue(upsertEntryQuery, int64(entry.ID), int64(entry.SourceID), storage.MarshalEntry(entry))
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
}

// Remove deletes entries by their IDs. Absent IDs are ignored.
func (s *EntryStore) Remove(ctx context.Context, ids ...core.ID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	_, err := s.pool.Exec(ctx, `DELETE FROM entries WHERE id = ANY($1)`, raw)
	return err
}

// List returns all stored entries.
func (s *EntryStore) List(ctx context.Context) ([]*core.Entry, error) {
	rows, err := s.pool.Query(ctx, `SELECT data FROM entries`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*core.Entry
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		entry, err := storage.UnmarshalEntry(data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
