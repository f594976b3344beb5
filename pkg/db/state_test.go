package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/puddle/v2"
	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/pkg/db"
)

func newUnreachableState(t *testing.T) *db.PoolState {
	t.Helper()

	state, err := db.Builder().
		Host("127.0.0.1").
		Port(1).
		ConnectTimeout(time.Second).
		Finalize()
	require.NoError(t, err)
	t.Cleanup(state.Close)
	return state
}

func TestPoolState(t *testing.T) {
	t.Parallel()

	t.Run("provides itself", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		require.Same(t, state, state.PoolState())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		require.False(t, state.Closed())

		state.Close()
		state.Close()

		require.True(t, state.Closed())
		_, err := state.Pool()
		require.ErrorIs(t, err, db.ErrPoolClosed)
	})

	t.Run("closed pool error is a connection-closed error", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		pool, err := state.Pool()
		require.NoError(t, err)

		state.Close()

		_, err = pool.Acquire(context.Background())
		require.ErrorIs(t, err, puddle.ErrClosedPool)
		require.True(t, db.IsConnectionClosed(err))
	})

	t.Run("shutdown hook closes the pool", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		require.NoError(t, db.Shutdown(state)(context.Background()))
		require.True(t, state.Closed())
	})

	t.Run("nil pool panics", func(t *testing.T) {
		t.Parallel()

		require.Panics(t, func() { db.NewPoolState(nil) })
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	t.Run("unreachable database", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		err := db.Healthcheck(state)(context.Background())
		require.ErrorIs(t, err, db.ErrHealthcheckFailed)
	})

	t.Run("closed state", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		state.Close()

		err := db.Healthcheck(state)(context.Background())
		require.ErrorIs(t, err, db.ErrHealthcheckFailed)
		require.ErrorIs(t, err, db.ErrPoolClosed)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("closed state fails without retrying", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		state.Close()

		err := db.Connect(context.Background(), state, db.WithRetryAttempts(10), db.WithRetryInterval(time.Hour))
		require.ErrorIs(t, err, db.ErrFailedToOpenDBConnection)
		require.ErrorIs(t, err, db.ErrPoolClosed)
	})

	t.Run("gives up after the configured attempts", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		err := db.Connect(context.Background(), state,
			db.WithRetryAttempts(2),
			db.WithRetryInterval(time.Millisecond),
			db.WithMaxRetryInterval(5*time.Millisecond),
		)
		require.ErrorIs(t, err, db.ErrFailedToOpenDBConnection)
	})

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		state := newUnreachableState(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := db.Connect(ctx, state, db.WithRetryAttempts(3), db.WithRetryInterval(time.Hour))
		require.ErrorIs(t, err, db.ErrFailedToOpenDBConnection)
	})
}
