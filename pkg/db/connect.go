package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/rigma/metadata/pkg/logger"
)

type connectOptions struct {
	attempts    int
	interval    time.Duration
	maxInterval time.Duration
	log         *slog.Logger
}

// ConnectOption configures Connect.
type ConnectOption func(*connectOptions)

// WithRetryAttempts sets how many pings are tried before giving up. Default 5.
func WithRetryAttempts(n int) ConnectOption {
	return func(o *connectOptions) {
		o.attempts = n
	}
}

// WithRetryInterval sets the first backoff interval. Default 500ms.
func WithRetryInterval(d time.Duration) ConnectOption {
	return func(o *connectOptions) {
		o.interval = d
	}
}

// WithMaxRetryInterval caps a single backoff interval. Default 10s.
func WithMaxRetryInterval(d time.Duration) ConnectOption {
	return func(o *connectOptions) {
		o.maxInterval = d
	}
}

func WithConnectLogger(l *slog.Logger) ConnectOption {
	return func(o *connectOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Connect blocks until the database behind state answers a ping.
// Failed pings are retried with exponential backoff so several replicas
// restarting together do not hammer the database in lockstep.
// The pool itself stays lazy; Connect only proves it can be used.
func Connect(ctx context.Context, state *PoolState, opts ...ConnectOption) error {
	o := connectOptions{
		attempts:    5,
		interval:    500 * time.Millisecond,
		maxInterval: 10 * time.Second,
		log:         logger.NewNope(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = o.interval
	bo.MaxInterval = o.maxInterval

	var lastErr error
	for attempt := range max(o.attempts, 1) {
		pool, err := state.Pool()
		if err != nil {
			return errors.Join(ErrFailedToOpenDBConnection, err)
		}

		lastErr = pool.Ping(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt == max(o.attempts, 1)-1 {
			break
		}

		wait := bo.NextBackOff()
		if wait == backoff.Stop {
			wait = o.maxInterval
		}
		o.log.WarnContext(ctx, "database not reachable, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait),
			slog.Any("error", lastErr),
		)

		select {
		case <-ctx.Done():
			return errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(wait):
		}
	}

	return errors.Join(ErrFailedToOpenDBConnection, lastErr)
}
