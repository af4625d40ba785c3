package gateway

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver for database/sql
)

// SQLite is a Gateway backed by a single kv_store table in a SQLite file.
// The schema is created by the sqlite migrations in package migrations.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLiteDB opens the SQLite database at path with WAL journaling and a
// busy timeout. ":memory:" is accepted for tests and pins the pool to a single
// connection, because every new in-memory connection is a fresh database.
func OpenSQLiteDB(path string) (*sql.DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("gateway.OpenSQLiteDB: open: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("gateway.OpenSQLiteDB: ping: %w", err)
	}
	return db, nil
}

// NewSQLite returns a Gateway over an already-migrated database.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db, now: time.Now}
}

func (s *SQLite) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	const q = `SELECT value FROM kv_store WHERE key = ?`

	var value string
	err := s.db.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, persistenceErr("gateway.SQLite.Get", err)
	}
	return json.RawMessage(value), true, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return persistenceErr("gateway.SQLite.Set", errInvalidJSON(key))
	}
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE
		SET value = excluded.value,
		    updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, q, key, string(value), s.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return persistenceErr("gateway.SQLite.Set", err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_store WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, q, key); err != nil {
		return persistenceErr("gateway.SQLite.Delete", err)
	}
	return nil
}
