package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq" // registers the "postgres" database/sql driver
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS schemeguardian_secrets (
	key   BYTEA PRIMARY KEY,
	value BYTEA NOT NULL
)`

// NewPostgresStore implements SecretStore on a single table in an existing
// Postgres database, reached through a caller-supplied *sqlx.DB. It
// creates its table on first use if absent.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if db == nil {
		return nil, fmt.Errorf("store: postgres db must not be nil")
	}
	if _, err := db.Exec(postgresSchema); err != nil {
		return nil, fmt.Errorf("store: failed to create postgres schema: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// PostgresStore is a SecretStore backed by a Postgres table.
type PostgresStore struct {
	db *sqlx.DB
}

func (p *PostgresStore) Get(ctx context.Context, key []byte) ([]byte, Result, error) {
	var value []byte
	err := p.db.GetContext(ctx, &value, `SELECT value FROM schemeguardian_secrets WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ResultKeyNotFound, nil
	}
	if err != nil {
		return nil, ResultUnknown, fmt.Errorf("store: postgres get: %w", err)
	}
	return value, ResultKeyFound, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value []byte) (Result, error) {
	existed, err := p.Check(ctx, key)
	if err != nil {
		return ResultUnknown, err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO schemeguardian_secrets (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value)
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: postgres set: %w", err)
	}
	if existed {
		return ResultModified, nil
	}
	return ResultInserted, nil
}

func (p *PostgresStore) Remove(ctx context.Context, key []byte) (Result, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM schemeguardian_secrets WHERE key = $1`, key)
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: postgres remove: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return ResultUnknown, fmt.Errorf("store: postgres rows affected: %w", err)
	}
	if n == 0 {
		return ResultKeyNotFound, nil
	}
	return ResultDeleted, nil
}

func (p *PostgresStore) Check(ctx context.Context, key []byte) (bool, error) {
	var exists bool
	err := p.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM schemeguardian_secrets WHERE key = $1)`, key)
	if err != nil {
		return false, fmt.Errorf("store: postgres check: %w", err)
	}
	return exists, nil
}

func (p *PostgresStore) List(ctx context.Context) ([][]byte, error) {
	var keys [][]byte
	if err := p.db.SelectContext(ctx, &keys, `SELECT key FROM schemeguardian_secrets`); err != nil {
		return nil, fmt.Errorf("store: postgres list: %w", err)
	}
	return keys, nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM schemeguardian_secrets`); err != nil {
		return fmt.Errorf("store: postgres clear: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error { return p.db.Close() }
