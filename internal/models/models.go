package models

import (
	"errors"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrEmptyName     = errors.New("models: empty name")
	ErrMissingParent = errors.New("models: missing parent")
)

// NormalizeDomainName lower-cases a domain name.
// Domains are stored and looked up in this form. Whitespace is significant.
func NormalizeDomainName(name string) string {
	// Casers keep state, so one is built per call.
	return cases.Lower(language.Und).String(name)
}
