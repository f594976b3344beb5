package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/rigma/metadata/internal/models"
	"github.com/rigma/metadata/pkg/db"
)

const findDomainByID = `-- name: FindDomainByID :one
SELECT id, name, created_at, updated_at
FROM domains
WHERE id = $1`

const findDomainByName = `-- name: FindDomainByName :one
SELECT id, name, created_at, updated_at
FROM domains
WHERE name = $1`

// DomainRepository looks up domains.
type DomainRepository struct {
	db db.DBTX
}

func NewDomainRepository(q db.DBTX) *DomainRepository {
	return &DomainRepository{db: q}
}

// FindByID returns ErrNotFound when no domain has the id.
func (r *DomainRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Domain, error) {
	return scanDomain(r.db.QueryRow(ctx, findDomainByID, pgUUID(id)))
}

// FindByName matches the normalised name. It returns ErrNotFound on a miss.
func (r *DomainRepository) FindByName(ctx context.Context, name string) (models.Domain, error) {
	return scanDomain(r.db.QueryRow(ctx, findDomainByName, models.NormalizeDomainName(name)))
}

func scanDomain(row pgx.Row) (models.Domain, error) {
	var (
		d  models.Domain
		id pgtype.UUID
	)
	if err := row.Scan(&id, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return models.Domain{}, notFound(err)
	}
	d.ID = uuid.UUID(id.Bytes)
	return d, nil
}
