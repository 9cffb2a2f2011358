package factory

import (
	"context"
	"fmt"

	"github.com/opengovaccess/votewatch/internal/storage"
	"github.com/opengovaccess/votewatch/internal/storage/in_mem"
	"github.com/opengovaccess/votewatch/internal/storage/pg"
)

// NewStorer creates the write-path store for the configured backend. For
// pg it also ensures the schema, so first runs bootstrap themselves.
func NewStorer(ctx context.Context, cfg *StorageConfig) (storage.Storer, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		if err := pg.EnsureSchema(ctx, pool); err != nil {
			return nil, err
		}
		return pg.NewStore(pool)

	case storage.InMem:
		return in_mem.NewInMemStore(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}

// NewReader creates the query-path store for the configured backend.
func NewReader(ctx context.Context, cfg *StorageConfig) (storage.Reader, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewReader(pool)

	case storage.InMem:
		return in_mem.NewInMemStore(), nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}
