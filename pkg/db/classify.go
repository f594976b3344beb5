package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
)

// IsConnectionClosed reports whether err means the pool could not hand out a
// connection: it was closed, or acquiring or querying ran out of time.
func IsConnectionClosed(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrPoolClosed) ||
		errors.Is(err, puddle.ErrClosedPool) ||
		errors.Is(err, context.DeadlineExceeded) ||
		pgconn.Timeout(err)
}
