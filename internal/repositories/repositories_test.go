package repositories_test

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/internal/models"
	"github.com/rigma/metadata/internal/repositories"
	"github.com/rigma/metadata/internal/testutil/pgtest"
	"github.com/rigma/metadata/pkg/db"
	"github.com/rigma/metadata/pkg/problem"
)

var (
	testDB   *pgtest.Database
	setupErr error
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	testDB, setupErr = pgtest.Start(ctx)
	if setupErr != nil {
		fmt.Fprintf(os.Stderr, "postgres integration tests skipped: %v\n", setupErr)
	}

	code := m.Run()
	if testDB != nil {
		_ = testDB.Close(ctx)
	}
	os.Exit(code)
}

func requireDB(t *testing.T) *pgtest.Database {
	t.Helper()
	if setupErr != nil {
		t.Skipf("postgres unavailable: %v", setupErr)
	}
	return testDB
}

func pool(t *testing.T, d *pgtest.Database) db.DBTX {
	t.Helper()
	p, err := d.State.Pool()
	require.NoError(t, err)
	return p
}

// unique keeps parallel tests apart in the shared database.
func unique(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func seedDomain(t *testing.T, d *pgtest.Database, name string) models.Domain {
	t.Helper()
	domain, err := models.NewDomain(name)
	require.NoError(t, err)
	require.NoError(t, d.InsertDomain(context.Background(), domain))
	return domain
}

func seedBlock(t *testing.T, d *pgtest.Database, name string, parent models.Parent) models.Block {
	t.Helper()
	block, err := models.NewBlock(name, parent)
	require.NoError(t, err)
	require.NoError(t, d.InsertBlock(context.Background(), block))
	return block
}

func TestDomainRepository(t *testing.T) {
	t.Parallel()
	d := requireDB(t)
	repo := repositories.NewDomainRepository(pool(t, d))
	ctx := context.Background()

	domain := seedDomain(t, d, unique("acme"))

	t.Run("find by name", func(t *testing.T) {
		t.Parallel()

		got, err := repo.FindByName(ctx, domain.Name)
		require.NoError(t, err)
		require.Equal(t, domain.ID, got.ID)
		require.Equal(t, domain.Name, got.Name)
		require.WithinDuration(t, domain.CreatedAt, got.CreatedAt, time.Millisecond)
	})

	t.Run("name lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		got, err := repo.FindByName(ctx, strings.ToUpper(domain.Name))
		require.NoError(t, err)
		require.Equal(t, domain.ID, got.ID)
	})

	t.Run("name lookup keeps whitespace", func(t *testing.T) {
		t.Parallel()

		_, err := repo.FindByName(ctx, " "+domain.Name)
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("find by id", func(t *testing.T) {
		t.Parallel()

		got, err := repo.FindByID(ctx, domain.ID)
		require.NoError(t, err)
		require.Equal(t, domain.Name, got.Name)
	})

	t.Run("misses", func(t *testing.T) {
		t.Parallel()

		_, err := repo.FindByName(ctx, unique("missing"))
		require.ErrorIs(t, err, repositories.ErrNotFound)

		_, err = repo.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestBlockRepository(t *testing.T) {
	t.Parallel()
	d := requireDB(t)
	repo := repositories.NewBlockRepository(pool(t, d))
	ctx := context.Background()

	domain := seedDomain(t, d, unique("acme"))
	top := seedBlock(t, d, unique("Web-API"), models.DomainParent(domain.ID))
	nested := seedBlock(t, d, unique("handlers"), models.BlockParent(top.ID))

	t.Run("block under a domain", func(t *testing.T) {
		t.Parallel()

		got, err := repo.FindByName(ctx, top.Name)
		require.NoError(t, err)
		require.Equal(t, top.ID, got.ID)

		parentID, ok := got.Parent.DomainID()
		require.True(t, ok)
		require.Equal(t, domain.ID, parentID)
	})

	t.Run("block under a block", func(t *testing.T) {
		t.Parallel()

		got, err := repo.FindByID(ctx, nested.ID)
		require.NoError(t, err)
		require.Equal(t, nested.Name, got.Name)

		parentID, ok := got.Parent.BlockID()
		require.True(t, ok)
		require.Equal(t, top.ID, parentID)
	})

	t.Run("names are case-sensitive", func(t *testing.T) {
		t.Parallel()

		_, err := repo.FindByName(ctx, strings.ToLower(top.Name))
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("misses", func(t *testing.T) {
		t.Parallel()

		_, err := repo.FindByID(ctx, uuid.New())
		require.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestSchemaRejectsInvalidParents(t *testing.T) {
	t.Parallel()
	d := requireDB(t)
	ctx := context.Background()

	domain := seedDomain(t, d, unique("acme"))
	p, err := d.State.Pool()
	require.NoError(t, err)

	_, err = p.Exec(ctx,
		"INSERT INTO blocks (id, domain_id, block_id, name) VALUES ($1::uuid, NULL, NULL, 'orphan')",
		uuid.NewString(),
	)
	require.Error(t, err)

	_, err = p.Exec(ctx,
		"INSERT INTO blocks (id, domain_id, block_id, name) VALUES ($1::uuid, $2::uuid, $2::uuid, 'twice')",
		uuid.NewString(), domain.ID.String(),
	)
	require.Error(t, err)
}

func TestSeedRollsBackOnFailure(t *testing.T) {
	t.Parallel()
	d := requireDB(t)
	ctx := context.Background()

	domain, err := models.NewDomain(unique("rollback"))
	require.NoError(t, err)
	dangling, err := models.NewBlock("dangling", models.BlockParent(uuid.New()))
	require.NoError(t, err)

	require.Error(t, d.Seed(ctx, []models.Domain{domain}, []models.Block{dangling}))

	_, err = repositories.NewDomainRepository(pool(t, d)).FindByName(ctx, domain.Name)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestClosedPool(t *testing.T) {
	t.Parallel()

	state, err := db.Builder().Host("127.0.0.1").Port(1).Finalize()
	require.NoError(t, err)
	p, err := state.Pool()
	require.NoError(t, err)
	state.Close()

	_, err = repositories.NewDomainRepository(p).FindByName(context.Background(), "acme")
	require.Error(t, err)
	require.True(t, db.IsConnectionClosed(err))

	e := problem.From(problem.Database(err))
	require.Equal(t, http.StatusGatewayTimeout, e.StatusCode())
}
