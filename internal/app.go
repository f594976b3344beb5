package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rigma/metadata/pkg/health"
	"github.com/rigma/metadata/pkg/logger"
	"github.com/rigma/metadata/pkg/problem"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App orchestrates the application lifecycle.
// It manages HTTP routing, middleware, and graceful shutdown.
// App is immutable after creation - all configuration is done via New().
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	healthConfig            *healthConfig
	logger                  *slog.Logger
	httpMiddlewares         []func(http.Handler) http.Handler
	middlewares             []Middleware
	handlers                []Handler
}

// New creates a new application with the given options.
// The App is immutable after creation.
//
// Example:
//
//	app := metadata.New(
//	    metadata.WithMiddleware(middlewares.RequestID()),
//	    metadata.WithHandlers(
//	        handlers.NewDomains(state),
//	        handlers.NewBlocks(state),
//	    ),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:                  chi.NewRouter(),
		logger:                  logger.NewNope(), // Default: noop logger (before options)
		notFoundHandler:         defaultNotFound,
		methodNotAllowedHandler: defaultMethodNotAllowed,
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes the App usable as a plain http.Handler, mostly in tests.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until shutdown.
//
// Example:
//
//	app := metadata.New(
//	    metadata.WithHandlers(handlers.NewDomains(state)),
//	)
//	err := app.Run(":8080", metadata.Logger(log))
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if addr == "" {
		addr = cfg.address
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware and handlers.
func (a *App) setupRoutes() {
	// Set custom error handlers on chi router
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Plain net/http middleware runs outermost
	for _, mw := range a.httpMiddlewares {
		a.router.Use(mw)
	}

	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	// Register health check endpoints
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks))
	}

	// Register handlers
	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError handles errors from handlers using the configured error handler.
func (a *App) handleError(c Context, err error) {
	// Check if response has already been written
	if c.Written() {
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr == nil {
			return
		}
	}
	renderProblem(c, err)
}

// renderProblem is the default error handler: every error becomes an
// application/problem+json response, unless the client already went away.
func renderProblem(c Context, err error) {
	if errors.Is(err, context.Canceled) && errors.Is(c.Request().Context().Err(), context.Canceled) {
		c.LogDebug("client disconnected",
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
		return
	}

	e := problem.From(err)
	status := e.StatusCode()

	if status >= http.StatusInternalServerError {
		c.LogError("request failed",
			slog.Int("status", status),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
	} else {
		c.LogDebug("request rejected",
			slog.Int("status", status),
			slog.String("path", c.Request().URL.Path),
			slog.Any("error", err),
		)
	}

	if rerr := problem.Render(c.Response(), e); rerr != nil {
		c.LogError("failed to render problem", slog.Any("error", rerr))
	}
}

func defaultNotFound(c Context) error {
	return ErrNotFound("No route matches " + c.Request().URL.Path + ".")
}

func defaultMethodNotAllowed(c Context) error {
	return ErrMethodNotAllowed("Method " + c.Request().Method + " is not allowed on " + c.Request().URL.Path + ".")
}

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during readiness probe.
//
// Example:
//
//	metadata.WithReadinessCheck("db", db.Healthcheck(state))
func WithReadinessCheck(name string, fn func(ctx context.Context) error) HealthOption {
	return func(c *healthConfig) {
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}
