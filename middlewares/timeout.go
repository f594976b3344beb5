package middlewares

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/pkg/problem"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// TimeoutConfig configures the timeout middleware.
type TimeoutConfig struct {
	Timeout time.Duration
}

// TimeoutOption configures TimeoutConfig.
type TimeoutOption func(*TimeoutConfig)

// Timeout returns middleware that enforces a request timeout.
// The request context is replaced by one carrying the deadline, so database
// queries started by the handler are cancelled when it expires.
//
// The handler runs in its own goroutine. On expiry the middleware takes over
// the response, writes a 504 problem and returns a TimeoutError; anything the
// handler writes afterwards is discarded. A panic in the handler goroutine is
// converted to a PanicError.
//
// The handler goroutine gets its own copy of the response headers and of the
// chi route context, so it can keep running after the request has been
// answered without sharing state with the server or the router pool.
// Request ID is automatically included via RequestIDExtractor() if configured.
func Timeout(timeout time.Duration, opts ...TimeoutOption) internal.Middleware {
	cfg := &TimeoutConfig{
		Timeout: timeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	recoverCfg := &RecoverConfig{StackSize: DefaultStackSize}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), cfg.Timeout)
			defer cancel()

			ctx, commitRoute := detachRouteContext(ctx)
			c.SetContext(ctx)
			c.ResponseWriter().StageHeader()

			done := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- panicError(c, recoverCfg, r)
					}
				}()
				done <- next(c)
			}()

			select {
			case err := <-done:
				commitRoute()
				return err
			case <-ctx.Done():
				if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
					// Client went away; nothing left to answer.
					return ctx.Err()
				}

				c.LogWarn("request timeout", "timeout", cfg.Timeout.String())
				terr := &TimeoutError{Duration: cfg.Timeout}
				if w, ok := c.ResponseWriter().Takeover(); ok {
					if err := problem.RenderProblem(w, terr); err != nil {
						c.LogError("failed to render timeout", "error", err)
					}
				}
				return terr
			}
		}
	}
}

// detachRouteContext gives ctx a private chi route context seeded from the
// current one. chi recycles its route contexts once the request returns, so a
// goroutine that may outlive the request must not route into the shared one.
// commit copies the routing result back; call it only after the goroutine is
// done.
func detachRouteContext(ctx context.Context) (context.Context, func()) {
	shared := chi.RouteContext(ctx)
	if shared == nil {
		return ctx, func() {}
	}

	private := chi.NewRouteContext()
	private.Routes = shared.Routes
	private.RoutePath = shared.RoutePath
	private.RouteMethod = shared.RouteMethod
	private.URLParams.Keys = slices.Clone(shared.URLParams.Keys)
	private.URLParams.Values = slices.Clone(shared.URLParams.Values)
	private.RoutePatterns = slices.Clone(shared.RoutePatterns)

	commit := func() {
		shared.URLParams = private.URLParams
		shared.RoutePatterns = private.RoutePatterns
	}
	return context.WithValue(ctx, chi.RouteCtxKey, private), commit
}
