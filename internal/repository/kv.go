// Package repository provides SQL-backed implementations of the portal's
// key-value storage.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/atinyakov/SmileCare/internal/storage"
)

// Dialect selects placeholder syntax and upsert form.
type Dialect int

const (
	// Postgres uses $n placeholders (lib/pq).
	Postgres Dialect = iota
	// SQLite uses ? placeholders (modernc.org/sqlite).
	SQLite
)

type queries struct {
	get    string
	upsert string
	remove string
}

var dialectQueries = map[Dialect]queries{
	Postgres: {
		get:    `SELECT value FROM kv WHERE key = $1`,
		upsert: `INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW()) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		remove: `DELETE FROM kv WHERE key = $1`,
	},
	SQLite: {
		get:    `SELECT value FROM kv WHERE key = ?`,
		upsert: `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP) ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		remove: `DELETE FROM kv WHERE key = ?`,
	},
}

// SQLStorage implements storage.Storage on a kv table.
type SQLStorage struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	q  queries
}

var _ storage.Storage = (*SQLStorage)(nil)

// NewSQLStorage creates a SQLStorage for db using the given dialect.
// The kv table must already exist (see db.InitPostgres and db.InitSQLite).
func NewSQLStorage(db *sql.DB, d Dialect) *SQLStorage {
	q, ok := dialectQueries[d]
	if !ok {
		q = dialectQueries[Postgres]
	}
	return &SQLStorage{DB: db, q: q}
}

// Get returns the value for key or storage.ErrNotFound.
func (s *SQLStorage) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.DB.QueryRowContext(ctx, s.q.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

// Set inserts or replaces the value for key.
func (s *SQLStorage) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.DB.ExecContext(ctx, s.q.upsert, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key; a missing key is not an error.
func (s *SQLStorage) Remove(ctx context.Context, key string) error {
	if _, err := s.DB.ExecContext(ctx, s.q.remove, key); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
