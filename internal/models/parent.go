package models

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ParentKind tells which table a block parent lives in.
type ParentKind string

const (
	ParentDomain ParentKind = "domain"
	ParentBlock  ParentKind = "block"
)

var ErrInvalidParentJSON = errors.New("models: invalid parent")

// Parent references either a domain or a block, never both.
// The zero value references nothing and is only valid as "unset".
type Parent struct {
	kind ParentKind
	id   uuid.UUID
}

func DomainParent(domainID uuid.UUID) Parent {
	return Parent{kind: ParentDomain, id: domainID}
}

func BlockParent(blockID uuid.UUID) Parent {
	return Parent{kind: ParentBlock, id: blockID}
}

// NewParent builds a Parent from the nullable domain_id and block_id columns
// of a block row. Exactly one must be set.
func NewParent(blockID uuid.UUID, domainID, parentBlockID *uuid.UUID) (Parent, error) {
	switch {
	case domainID != nil && parentBlockID == nil:
		return DomainParent(*domainID), nil
	case domainID == nil && parentBlockID != nil:
		return BlockParent(*parentBlockID), nil
	default:
		return Parent{}, &InvalidParentError{BlockID: blockID, DomainID: domainID, ParentID: parentBlockID}
	}
}

func (p Parent) Kind() ParentKind { return p.kind }
func (p Parent) ID() uuid.UUID    { return p.id }
func (p Parent) IsZero() bool     { return p.kind == "" }

// DomainID returns the parent domain, if the parent is one.
func (p Parent) DomainID() (uuid.UUID, bool) {
	return p.id, p.kind == ParentDomain
}

// BlockID returns the parent block, if the parent is one.
func (p Parent) BlockID() (uuid.UUID, bool) {
	return p.id, p.kind == ParentBlock
}

func (p Parent) String() string {
	return fmt.Sprintf("%s:%s", p.kind, p.id)
}

type parentJSON struct {
	Type       ParentKind `json:"type"`
	DomainUUID *uuid.UUID `json:"domain_uuid,omitempty"`
	BlockUUID  *uuid.UUID `json:"block_uuid,omitempty"`
}

// MarshalJSON writes {"type":"domain","domain_uuid":...} or
// {"type":"block","block_uuid":...}.
func (p Parent) MarshalJSON() ([]byte, error) {
	id := p.id
	switch p.kind {
	case ParentDomain:
		return json.Marshal(parentJSON{Type: ParentDomain, DomainUUID: &id})
	case ParentBlock:
		return json.Marshal(parentJSON{Type: ParentBlock, BlockUUID: &id})
	default:
		return nil, ErrInvalidParentJSON
	}
}

func (p *Parent) UnmarshalJSON(data []byte) error {
	var raw parentJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Join(ErrInvalidParentJSON, err)
	}

	switch {
	case raw.Type == ParentDomain && raw.DomainUUID != nil && raw.BlockUUID == nil:
		*p = DomainParent(*raw.DomainUUID)
	case raw.Type == ParentBlock && raw.BlockUUID != nil && raw.DomainUUID == nil:
		*p = BlockParent(*raw.BlockUUID)
	default:
		return ErrInvalidParentJSON
	}
	return nil
}
