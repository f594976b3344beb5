package db

import "context"

// Shutdown returns a hook that closes the pool held by state.
// Use with metadata.ShutdownHook().
//
// Example:
//
//	app.Run(":8080",
//	    metadata.ShutdownHook(db.Shutdown(state)),
//	)
func Shutdown(state *PoolState) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		state.Close()
		return nil
	}
}
