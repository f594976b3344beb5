package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rigma/metadata/internal/models"
	"github.com/rigma/metadata/pkg/db"
)

const findBlockByID = `-- name: FindBlockByID :one
SELECT id, domain_id, block_id, name, created_at, updated_at
FROM blocks
WHERE id = $1`

// Block names are not unique across parents; the oldest match wins.
const findBlockByName = `-- name: FindBlockByName :one
SELECT id, domain_id, block_id, name, created_at, updated_at
FROM blocks
WHERE name = $1
ORDER BY created_at, id
LIMIT 1`

// BlockRepository looks up blocks.
type BlockRepository struct {
	db db.DBTX
}

func NewBlockRepository(q db.DBTX) *BlockRepository {
	return &BlockRepository{db: q}
}

// FindByID returns ErrNotFound when no block has the id.
func (r *BlockRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Block, error) {
	return scanBlock(r.db.QueryRow(ctx, findBlockByID, pgUUID(id)))
}

// FindByName compares names verbatim. It returns ErrNotFound on a miss and
// *models.InvalidParentError when the row breaks the single-parent rule.
func (r *BlockRepository) FindByName(ctx context.Context, name string) (models.Block, error) {
	return scanBlock(r.db.QueryRow(ctx, findBlockByName, name))
}

func scanBlock(row pgx.Row) (models.Block, error) {
	var (
		b                      models.Block
		id, domainID, parentID pgtype.UUID
	)
	if err := row.Scan(&id, &domainID, &parentID, &b.Name, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return models.Block{}, notFound(err)
	}
	b.ID = uuid.UUID(id.Bytes)

	parent, err := models.NewParent(b.ID, nullableUUID(domainID), nullableUUID(parentID))
	if err != nil {
		return models.Block{}, err
	}
	b.Parent = parent
	return b, nil
}
