package repository

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/pkg/db"
	"github.com/rigma/metadata/pkg/problem"
)

// Factory builds a repository bound to a database handle.
// Each repository package exposes one, usually its New function.
type Factory[T any] func(db.DBTX) T

// PoolProvider is the capability Handle needs from the application state.
// *db.PoolState implements it, as does any state embedding or holding one.
type PoolProvider interface {
	PoolState() *db.PoolState
}

// UnavailableError reports that no pool could be provided for the request.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	return "repository: database unavailable: " + e.Err.Error()
}

func (e *UnavailableError) Unwrap() error { return e.Err }

func (e *UnavailableError) Type() string   { return problem.TypeURI("sql", "unavailable") }
func (e *UnavailableError) Title() string  { return "Database Unavailable." }
func (e *UnavailableError) Detail() string { return "The database pool is not available." }
func (e *UnavailableError) Status() int    { return http.StatusServiceUnavailable }

func (e *UnavailableError) Headers() http.Header {
	h := http.Header{}
	h.Set("Retry-After", strconv.Itoa(problem.RetryAfterSeconds))
	return h
}

// Resolve builds a repository from the provider's pool.
// It fails with *UnavailableError once the pool is closed.
func Resolve[T any](p PoolProvider, f Factory[T]) (T, error) {
	var zero T

	pool, err := p.PoolState().Pool()
	if err != nil {
		if errors.Is(err, db.ErrPoolClosed) {
			return zero, &UnavailableError{Err: err}
		}
		return zero, err
	}
	return f(pool), nil
}

// Handle adapts fn into a route handler that receives a fresh repository on
// every request.
//
// It panics when p or f is nil, so a miswired route fails at startup.
//
// Example:
//
//	r.GET("/domains/{domain_name}", repository.Handle(state, repositories.NewDomainRepository, h.show))
func Handle[T any](p PoolProvider, f Factory[T], fn func(internal.Context, T) error) internal.HandlerFunc {
	if p == nil {
		panic("repository: nil pool provider")
	}
	if f == nil {
		panic("repository: nil factory")
	}
	if fn == nil {
		panic("repository: nil handler")
	}

	return func(c internal.Context) error {
		repo, err := Resolve(p, f)
		if err != nil {
			return err
		}
		return fn(c, repo)
	}
}
