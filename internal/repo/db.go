package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// DB represents a database connection. A DB without a pool is valid and
// makes NewRepository fall back to Redis or memory.
type DB struct {
	pool *pgxpool.Pool
}

// NewDB opens a connection pool. An empty URL returns a DB with no pool.
func NewDB(ctx context.Context, databaseURL string) (*DB, error) {
	if databaseURL == "" {
		return &DB{}, nil
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	log.Info().Msg("Postgres connection established")
	return &DB{pool: pool}, nil
}

func (db *DB) Enabled() bool {
	return db != nil && db.pool != nil
}

func (db *DB) Ping(ctx context.Context) error {
	if !db.Enabled() {
		return nil
	}
	return db.pool.Ping(ctx)
}

func (db *DB) Close() {
	if db.Enabled() {
		db.pool.Close()
	}
}
