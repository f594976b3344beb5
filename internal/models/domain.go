package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rigma/metadata/pkg/id"
)

// Domain is the top-level namespace blocks live in.
type Domain struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDomain returns a domain with a fresh UUIDv7 and a normalised name.
func NewDomain(name string) (Domain, error) {
	name = NormalizeDomainName(name)
	if name == "" {
		return Domain{}, ErrEmptyName
	}

	now := time.Now().UTC()
	return Domain{
		ID:        id.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (d Domain) String() string {
	return fmt.Sprintf("Domain(id=%s, name=%s)", d.ID, d.Name)
}
