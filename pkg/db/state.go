package db

import (
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolState owns the shared connection pool.
// Copies of the pointer share the one pool; the only mutation is Close.
type PoolState struct {
	pool   *pgxpool.Pool
	closed atomic.Bool
}

// NewPoolState wraps an existing pool. It panics on a nil pool.
func NewPoolState(pool *pgxpool.Pool) *PoolState {
	if pool == nil {
		panic("db: NewPoolState called with nil pool")
	}
	return &PoolState{pool: pool}
}

// Pool returns the shared pool handle, or ErrPoolClosed once Close was called.
func (s *PoolState) Pool() (*pgxpool.Pool, error) {
	if s.closed.Load() {
		return nil, ErrPoolClosed
	}
	return s.pool, nil
}

// PoolState returns s. It lets *PoolState be used wherever a pool provider is expected.
func (s *PoolState) PoolState() *PoolState {
	return s
}

// Close closes the pool. Only the first call has an effect.
func (s *PoolState) Close() {
	if s.closed.CompareAndSwap(false, true) {
		s.pool.Close()
	}
}

func (s *PoolState) Closed() bool {
	return s.closed.Load()
}

// Stat reports pool statistics. It is safe to call after Close.
func (s *PoolState) Stat() *pgxpool.Stat {
	return s.pool.Stat()
}
