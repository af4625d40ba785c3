package gateway

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres is a Gateway backed by the kv_store table (JSONB values).
type Postgres struct {
	db db
}

// NewPostgres constructs a Postgres gateway.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgres(db db) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	const q = `SELECT value FROM kv_store WHERE key = @key`

	var value []byte
	err := p.db.QueryRow(ctx, q, pgx.NamedArgs{"key": key}).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, persistenceErr("gateway.Postgres.Get", err)
	}
	return value, true, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return persistenceErr("gateway.Postgres.Set", errInvalidJSON(key))
	}
	const q = `
		INSERT INTO kv_store (key, value)
		VALUES (@key, @value)
		ON CONFLICT (key) DO UPDATE
		SET value      = EXCLUDED.value,
		    updated_at = now()`

	args := pgx.NamedArgs{
		"key":   key,
		"value": []byte(value),
	}
	if _, err := p.db.Exec(ctx, q, args); err != nil {
		return persistenceErr("gateway.Postgres.Set", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_store WHERE key = @key`

	if _, err := p.db.Exec(ctx, q, pgx.NamedArgs{"key": key}); err != nil {
		return persistenceErr("gateway.Postgres.Delete", err)
	}
	return nil
}
