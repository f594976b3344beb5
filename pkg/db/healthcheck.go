package db

import (
	"context"
	"errors"
)

// Healthcheck returns a check that pings the database through the shared pool.
// The signature matches health.CheckFunc.
func Healthcheck(state *PoolState) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		pool, err := state.Pool()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
