package handlers

import (
	"fmt"
	"net/http"

	"github.com/rigma/metadata/internal"
	"github.com/rigma/metadata/pkg/problem"
)

// DomainNotFoundError is returned when no domain matches a lookup.
type DomainNotFoundError struct {
	Name string
}

func (e *DomainNotFoundError) Error() string  { return e.Detail() }
func (e *DomainNotFoundError) Type() string   { return problem.TypeURI("domains", "not-found") }
func (e *DomainNotFoundError) Title() string  { return "Domain Not Found." }
func (e *DomainNotFoundError) Detail() string { return fmt.Sprintf("Domain '%s' is not found.", e.Name) }
func (e *DomainNotFoundError) Status() int    { return http.StatusNotFound }

// BlockNotFoundError is returned when no block matches a lookup.
type BlockNotFoundError struct {
	Name string
}

func (e *BlockNotFoundError) Error() string  { return e.Detail() }
func (e *BlockNotFoundError) Type() string   { return problem.TypeURI("blocks", "not-found") }
func (e *BlockNotFoundError) Title() string  { return "Block Not Found." }
func (e *BlockNotFoundError) Detail() string { return fmt.Sprintf("Block '%s' is not found.", e.Name) }
func (e *BlockNotFoundError) Status() int    { return http.StatusNotFound }

func invalidIdentifier(c internal.Context, raw string, err error) error {
	return c.Error(http.StatusBadRequest, fmt.Sprintf("'%s' is not a valid identifier.", raw),
		internal.WithType(problem.TypeURI("request", "invalid-identifier")),
		internal.WithTitle("Invalid Identifier."),
		internal.WithInstance(c.Request().URL.Path),
		internal.WithError(err),
	)
}
