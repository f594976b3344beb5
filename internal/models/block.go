package models

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/rigma/metadata/pkg/id"
	"github.com/rigma/metadata/pkg/problem"
)

// Block is a named node nested under a domain or under another block.
type Block struct {
	ID        uuid.UUID `json:"id"`
	Parent    Parent    `json:"parent"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewBlock returns a block with a fresh UUIDv7. Block names are kept as
// given.
func NewBlock(name string, parent Parent) (Block, error) {
	if name == "" {
		return Block{}, ErrEmptyName
	}
	if parent.IsZero() {
		return Block{}, ErrMissingParent
	}

	now := time.Now().UTC()
	return Block{
		ID:        id.New(),
		Parent:    parent,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (b Block) String() string {
	return fmt.Sprintf("Block(id=%s, name=%s)", b.ID, b.Name)
}

// InvalidParentError reports a stored block whose row does not reference
// exactly one parent. The schema forbids it, so seeing one means the data was
// changed behind the service's back.
type InvalidParentError struct {
	BlockID  uuid.UUID
	DomainID *uuid.UUID
	ParentID *uuid.UUID
}

func (e *InvalidParentError) Error() string {
	return fmt.Sprintf("models: block %s has domain_id=%s block_id=%s", e.BlockID, uuidOrNull(e.DomainID), uuidOrNull(e.ParentID))
}

func (e *InvalidParentError) Type() string  { return problem.TypeURI("blocks", "invalid-parent") }
func (e *InvalidParentError) Title() string { return "Invalid Block Parent." }
func (e *InvalidParentError) Detail() string {
	return fmt.Sprintf("Block '%s' must reference exactly one parent.", e.BlockID)
}
func (e *InvalidParentError) Status() int { return http.StatusInternalServerError }

func uuidOrNull(v *uuid.UUID) string {
	if v == nil {
		return "null"
	}
	return v.String()
}
