package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend stores documents in a single key/jsonb table.
type PostgresBackend struct {
	pool *pgxpool.Pool
}

func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{pool: pool}
}

// Init creates the documents table if it does not exist yet.
func (b *PostgresBackend) Init(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS documents (
			key   text PRIMARY KEY,
			value jsonb NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	return nil
}

func (b *PostgresBackend) GetDoc(ctx context.Context, key string) (json.RawMessage, error) {
	var value json.RawMessage
	err := b.pool.QueryRow(ctx, `SELECT value FROM documents WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: pg get %s: %w", key, err)
	}
	return value, nil
}

func (b *PostgresBackend) SetDoc(ctx context.Context, key string, value json.RawMessage) error {
	_, err := b.pool.Exec(ctx, `
		INSERT INTO documents (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("store: pg set %s: %w", key, err)
	}
	return nil
}

func (b *PostgresBackend) DeleteDoc(ctx context.Context, key string) error {
	_, err := b.pool.Exec(ctx, `DELETE FROM documents WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("store: pg del %s: %w", key, err)
	}
	return nil
}

func (b *PostgresBackend) ListKeys(ctx context.Context, table string) ([]string, error) {
	rows, err := b.pool.Query(ctx, `SELECT key FROM documents WHERE key LIKE $1 ORDER BY key`, table+"/%")
	if err != nil {
		return nil, fmt.Errorf("store: pg list %s: %w", table, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.pool.Ping(ctx)
}
