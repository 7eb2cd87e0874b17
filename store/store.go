// Package store persists browser sessions in Postgres. Sessions are the
// only state shared across requests; everything else in an import is held
// in the request and response.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(connectionURL string) (*Store, error) {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, connectionURL)
	if err != nil {
		return nil, err
	}

	return &Store{
		pool: pool,
	}, nil
}

func (s Store) Cleanup() {
	s.pool.Close()
}
