package handlers

import (
	"github.com/rigma/metadata/pkg/db"
	"github.com/rigma/metadata/repository"
)

// State is the composition root shared by every handler.
type State struct {
	pool *db.PoolState
}

var _ repository.PoolProvider = (*State)(nil)

// NewState panics on a nil pool; the binary builds exactly one at startup.
func NewState(pool *db.PoolState) *State {
	if pool == nil {
		panic("handlers: nil pool state")
	}
	return &State{pool: pool}
}

func (s *State) PoolState() *db.PoolState {
	return s.pool
}
