// Package id generates and parses the identifiers used across the service.
//
// Entity and request identifiers are UUIDv7, so they sort by creation time
// and index well in PostgreSQL.
package id

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalid is returned by Parse for anything that is not a canonical UUID.
var ErrInvalid = errors.New("id: invalid identifier")

// New returns a fresh UUIDv7. If the time-ordered generator fails it falls
// back to a random UUIDv4 rather than returning an error.
func New() uuid.UUID {
	v, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v
}

// NewString is New().String().
func NewString() string {
	return New().String()
}

// Parse accepts only the canonical 36-character hyphenated form.
// uuid.Parse also takes braces and urn:uuid: prefixes; those are rejected here
// so every identifier has one spelling in URLs.
func Parse(s string) (uuid.UUID, error) {
	if len(s) != 36 || strings.ContainsAny(s, "{}") {
		return uuid.Nil, ErrInvalid
	}
	v, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalid, err)
	}
	return v, nil
}
