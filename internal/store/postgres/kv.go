// Package postgres stores board documents in a single PostgreSQL table.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/kanban/internal/store"
)

const createTable = `CREATE TABLE IF NOT EXISTS kanban_documents (
	key        TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// KV is a store.KV backed by the kanban_documents table.
type KV struct {
	pool *pgxpool.Pool
}

// New connects, verifies the connection and ensures the table exists.
func New(ctx context.Context, dsn string, maxConns int32) (*KV, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	if _, err := pool.Exec(ctx, createTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: migrate: %w", err)
	}

	return &KV{pool: pool}, nil
}

func (k *KV) Close() {
	k.pool.Close()
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte

	err := k.pool.QueryRow(ctx,
		`SELECT value FROM kanban_documents WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres.KV.Get: %w", err)
	}

	return value, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := k.pool.Exec(ctx,
		`INSERT INTO kanban_documents (key, value, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("postgres.KV.Set: %w", err)
	}

	return nil
}
