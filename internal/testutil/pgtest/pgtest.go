// Package pgtest starts a throwaway PostgreSQL for integration tests and
// applies the service migrations to it.
package pgtest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rigma/metadata/db/migrations"
	"github.com/rigma/metadata/internal/models"
	"github.com/rigma/metadata/pkg/db"
)

const (
	image    = "postgres:16-alpine"
	user     = "postgres"
	password = "secret"
	database = "metadata"
)

// Database is a migrated PostgreSQL container and a pool connected to it.
type Database struct {
	State     *db.PoolState
	container testcontainers.Container
}

// Start runs the container and migrates it. It returns an error, never
// panics, when Docker is unavailable so callers can skip.
func Start(ctx context.Context) (d *Database, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pgtest: docker unavailable: %v", r)
		}
	}()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: image,
			Env: map[string]string{
				"POSTGRES_USER":     user,
				"POSTGRES_PASSWORD": password,
				"POSTGRES_DB":       database,
			},
			ExposedPorts: []string{"5432/tcp"},
			// The server restarts once after initdb.
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("pgtest: start container: %w", err)
	}
	d = &Database{container: container}

	if err := d.init(ctx); err != nil {
		return nil, errors.Join(err, d.Close(ctx))
	}
	return d, nil
}

func (d *Database) init(ctx context.Context) error {
	host, err := d.container.Host(ctx)
	if err != nil {
		return fmt.Errorf("pgtest: container host: %w", err)
	}
	mapped, err := d.container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return fmt.Errorf("pgtest: container port: %w", err)
	}
	port, err := db.ParsePort(mapped.Port())
	if err != nil {
		return fmt.Errorf("pgtest: container port: %w", err)
	}

	state, err := db.Builder().
		ApplicationName("metadata-test").
		Host(host).
		Port(port).
		User(user).
		Password(password).
		DBName(database).
		Finalize()
	if err != nil {
		return err
	}
	d.State = state

	if err := db.Connect(ctx, state, db.WithRetryAttempts(10)); err != nil {
		return err
	}
	return db.Migrate(ctx, state, migrations.Files, db.DefaultMigrationsTable, nil)
}

// Seed inserts domains, then blocks, in one transaction. Blocks nested under
// other blocks must come after their parent. Nothing is stored on error.
func (d *Database) Seed(ctx context.Context, domains []models.Domain, blocks []models.Block) error {
	return db.WithTx(ctx, d.State, func(tx pgx.Tx) error {
		for _, domain := range domains {
			if err := insertDomain(ctx, tx, domain); err != nil {
				return err
			}
		}
		for _, block := range blocks {
			if err := insertBlock(ctx, tx, block); err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertDomain stores a domain row as is.
func (d *Database) InsertDomain(ctx context.Context, domain models.Domain) error {
	return d.Seed(ctx, []models.Domain{domain}, nil)
}

// InsertBlock stores a block row, splitting its parent into the two columns.
func (d *Database) InsertBlock(ctx context.Context, block models.Block) error {
	return d.Seed(ctx, nil, []models.Block{block})
}

func insertDomain(ctx context.Context, q db.DBTX, domain models.Domain) error {
	_, err := q.Exec(ctx,
		"INSERT INTO domains (id, name, created_at, updated_at) VALUES ($1::uuid, $2, $3, $4)",
		domain.ID.String(), domain.Name, domain.CreatedAt, domain.UpdatedAt,
	)
	return err
}

func insertBlock(ctx context.Context, q db.DBTX, block models.Block) error {
	var domainID, blockID *string
	if v, ok := block.Parent.DomainID(); ok {
		s := v.String()
		domainID = &s
	}
	if v, ok := block.Parent.BlockID(); ok {
		s := v.String()
		blockID = &s
	}

	_, err := q.Exec(ctx,
		"INSERT INTO blocks (id, domain_id, block_id, name, created_at, updated_at) VALUES ($1::uuid, $2::uuid, $3::uuid, $4, $5, $6)",
		block.ID.String(), domainID, blockID, block.Name, block.CreatedAt, block.UpdatedAt,
	)
	return err
}

// Close closes the pool and removes the container.
func (d *Database) Close(ctx context.Context) error {
	if d.State != nil {
		d.State.Close()
	}
	return d.container.Terminate(ctx)
}
