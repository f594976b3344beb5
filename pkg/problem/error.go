package problem

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rigma/metadata/pkg/db"
)

// Error is the envelope every failed request is rendered from.
// Exactly one branch is set: a Problem, or a database error.
type Error struct {
	problem  Problem
	database error
}

// New wraps p in the problem branch. It panics on nil, which is a programming error.
func New(p Problem) *Error {
	if p == nil {
		panic("problem: New called with nil Problem")
	}
	return &Error{problem: p}
}

// Database wraps a database error. Errors that already carry a Problem keep it,
// so repository-level problems are not flattened into 500s.
func Database(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var p Problem
	if errors.As(err, &p) {
		return New(p)
	}
	return &Error{database: err}
}

// From normalises any handler error into an envelope.
// Errors with neither an envelope nor a Problem in their chain become an opaque
// 500 whose body does not repeat the error text.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	var p Problem
	if errors.As(err, &p) {
		return New(p)
	}
	return New(InternalError())
}

// InternalError is the generic 500 problem.
func InternalError() *Details {
	return NewDetails(
		TypeURI("internal-error"),
		"Internal Server Error.",
		"The server encountered an unexpected condition.",
		WithStatus(http.StatusInternalServerError),
	)
}

func (e *Error) Error() string {
	if e.database != nil {
		return "database error: " + e.database.Error()
	}
	if err, ok := e.problem.(error); ok {
		return err.Error()
	}
	p := PartsOf(e.problem)
	return p.Title + " " + p.Detail
}

func (e *Error) Unwrap() error {
	if e.database != nil {
		return e.database
	}
	if err, ok := e.problem.(error); ok {
		return err
	}
	return nil
}

// Problem returns the problem branch, if set.
func (e *Error) Problem() (Problem, bool) {
	return e.problem, e.problem != nil
}

// DatabaseErr returns the database branch, if set.
func (e *Error) DatabaseErr() (error, bool) {
	return e.database, e.database != nil
}

// Parts returns the body members and extra headers of the response.
func (e *Error) Parts() Parts {
	if e.database == nil {
		return PartsOf(e.problem)
	}
	if db.IsConnectionClosed(e.database) {
		return Parts{
			Type:    TypeURI("sql", "connection-closed"),
			Title:   "Database Connection Closed.",
			Detail:  e.database.Error(),
			Headers: http.Header{"Retry-After": []string{strconv.Itoa(RetryAfterSeconds)}},
		}
	}
	return Parts{
		Type:   TypeURI("sql", "unknown-error"),
		Title:  "Unknown database error",
		Detail: e.database.Error(),
	}
}

// StatusCode returns the response status.
func (e *Error) StatusCode() int {
	if e.database == nil {
		return PartsOf(e.problem).StatusCode()
	}
	if db.IsConnectionClosed(e.database) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
