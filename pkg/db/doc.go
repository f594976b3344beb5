// Package db owns the PostgreSQL connection pool shared by every request.
//
// The pool lives in a [PoolState] built from a [PoolStateBuilder]. Building the
// state performs no network I/O: pgx dials on first use, so the service starts
// even when the database is down and requests report the outage instead.
//
// # Configuration
//
// [Builder] starts from localhost:5432 with the postgres user. [FromEnv] reads
// the same values from the environment:
//
//	POSTGRES_APPNAME   - application_name reported to the server
//	POSTGRES_HOST      - server host (default: localhost)
//	POSTGRES_PORT      - server port (default: 5432)
//	POSTGRES_USER      - role name (default: postgres)
//	POSTGRES_PASSWORD  - role password
//	POSTGRES_DATABASE  - database name
//
// A malformed POSTGRES_PORT silently keeps 5432. [FromEnvStrict] reports it as
// [ErrInvalidPort] instead.
//
// # Usage
//
//	state, err := db.FromEnv().
//		ApplicationName("metadata").
//		MaxConns(16).
//		Finalize()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer state.Close()
//
//	pool, err := state.Pool()
//	if errors.Is(err, db.ErrPoolClosed) {
//		// shutting down
//	}
//
// Repositories take a [DBTX], which the pool, a connection and a transaction
// all satisfy.
//
// # Lifecycle helpers
//
//   - [Connect] waits for the database with exponential backoff
//   - [Migrate] applies embedded goose migrations
//   - [Healthcheck] pings through the pool
//   - [Shutdown] closes the pool from a shutdown hook
//   - [ObservePoolMetrics] exports pool statistics as OpenTelemetry gauges
//
// # Errors
//
// [IsConnectionClosed] tells pool-closed and timeout failures apart from other
// database errors. Wrapped errors are combined with [errors.Join] so both the
// sentinel and the pgx cause stay visible to [errors.Is].
package db
