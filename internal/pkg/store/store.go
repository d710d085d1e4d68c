package store

import (
	"context"

	"github.com/ougirez/profitability/internal/pkg/store/xdb"
)

type Pool = xdb.Pool

type Store interface {
	IndicatorStore
	ValueStore

	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}

func (s *store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return storageErr(err)
	}
	return nil
}
