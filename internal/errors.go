package internal

import (
	"net/http"

	"github.com/rigma/metadata/pkg/problem"
)

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements problem.Problem, so the App renders it as a problem document.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error
	// Message is the user-facing error message. It becomes the problem detail.
	Message string
	// ProblemTitle overrides the title derived from Code.
	ProblemTitle string
	// ProblemType is the problem type URI. Defaults to about:blank.
	ProblemType string
	// ProblemInstance identifies this occurrence of the problem.
	ProblemInstance string
	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

var (
	_ problem.StatusProblem   = (*HTTPError)(nil)
	_ problem.InstanceProblem = (*HTTPError)(nil)
)

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

func (e *HTTPError) Type() string {
	if e.ProblemType == "" {
		return problem.BlankType
	}
	return e.ProblemType
}

// Title returns ProblemTitle, or the status text for about:blank problems.
func (e *HTTPError) Title() string {
	if e.ProblemTitle == "" {
		return e.StatusText()
	}
	return e.ProblemTitle
}

func (e *HTTPError) Detail() string {
	return e.Message
}

func (e *HTTPError) Status() int {
	return e.Code
}

func (e *HTTPError) Instance() string {
	return e.ProblemInstance
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ProblemTitle = title
	}
}

func WithType(uri string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ProblemType = uri
	}
}

func WithInstance(uri string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ProblemInstance = uri
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func newHTTPError(code int, message string, opts []HTTPErrorOption) *HTTPError {
	e := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Constructors for the routing failures the App renders itself.

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, opts)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusMethodNotAllowed, message, opts)
}
