// Package metadata is a read-only lookup service for domains and the blocks
// nested inside them, backed by PostgreSQL.
//
// This package exposes the HTTP application: App, Context, Router and their
// options. The pieces that give the service its behaviour live alongside it:
//
//   - pkg/db: the lazily connecting pool (PoolState) and its builder
//   - repository: Handle and Factory, which bind repositories to the pool
//   - pkg/problem: RFC 9457 problem details and the error envelope
//   - internal/handlers: the lookup endpoints
//   - middlewares: request ID, recover, timeout, CORS, access log, metrics
//
// # Quick Start
//
//	pool, err := db.FromEnv().ApplicationName("metadata").Finalize()
//	if err != nil {
//	    return err
//	}
//	state := handlers.NewState(pool)
//
//	app := metadata.New(
//	    metadata.WithLogger("metadata", middlewares.RequestIDExtractor()),
//	    metadata.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Timeout(10*time.Second),
//	    ),
//	    metadata.WithHandlers(
//	        handlers.NewDomains(state),
//	        handlers.NewBlocks(state),
//	    ),
//	    metadata.WithHealthChecks(
//	        metadata.WithReadinessCheck("db", db.Healthcheck(pool)),
//	    ),
//	)
//
//	err = app.Run(":8080", metadata.ShutdownHook(db.Shutdown(pool)))
//
// # Handlers
//
// Handlers implement [Handler] and declare routes on a [Router]. A route that
// needs the database wraps its function with repository.Handle, which builds
// the repository per request:
//
//	func (h *Domains) Routes(r metadata.Router) {
//	    r.GET("/domains/{domain_name}",
//	        repository.Handle(h.state, repositories.NewDomainRepository, h.show))
//	}
//
// # Errors
//
// Handlers return errors; the App renders every one of them as
// application/problem+json with Cache-Control: no-store. Errors implementing
// problem.Problem keep their type, title and detail. Database errors wrapped
// with problem.Database become 504 with Retry-After when the pool is closed or
// timed out, 500 otherwise. Anything else is an opaque 500.
//
// Unknown routes and wrong methods are 404 and 405 problems of type
// about:blank.
//
// # Binary
//
// cmd/metadata wires all of the above behind a cobra CLI with serve, migrate
// and version commands.
package metadata
