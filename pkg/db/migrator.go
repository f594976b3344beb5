package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/rigma/metadata/pkg/logger"
)

// DefaultMigrationsTable is the goose version table used when none is given.
const DefaultMigrationsTable = "schema_migrations"

// Migrate applies every pending migration found at the root of migrations.
// A nil logger discards goose output.
func Migrate(ctx context.Context, state *PoolState, migrations fs.FS, table string, log *slog.Logger) error {
	return runGoose(ctx, state, migrations, table, log, func(ctx context.Context, sqlDB *sql.DB) error {
		return goose.UpContext(ctx, sqlDB, ".")
	})
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, state *PoolState, migrations fs.FS, table string, log *slog.Logger) error {
	return runGoose(ctx, state, migrations, table, log, func(ctx context.Context, sqlDB *sql.DB) error {
		return goose.DownContext(ctx, sqlDB, ".")
	})
}

// MigrationVersion reports the current schema version.
func MigrationVersion(ctx context.Context, state *PoolState, migrations fs.FS, table string, log *slog.Logger) (int64, error) {
	var version int64
	err := runGoose(ctx, state, migrations, table, log, func(ctx context.Context, sqlDB *sql.DB) error {
		v, err := goose.GetDBVersionContext(ctx, sqlDB)
		version = v
		return err
	})
	return version, err
}

func runGoose(ctx context.Context, state *PoolState, migrations fs.FS, table string, log *slog.Logger, fn func(context.Context, *sql.DB) error) error {
	pool, err := state.Pool()
	if err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}
	if log == nil {
		log = logger.NewNope()
	}
	if table == "" {
		table = DefaultMigrationsTable
	}

	// The database/sql handle shares pool connections, so it is not closed here.
	sqlDB := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(migrations)
	goose.SetLogger(&gooseLoggerAdapter{log})
	goose.SetTableName(table)

	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Join(ErrSetDialect, err)
	}

	if err := fn(ctx, sqlDB); err != nil {
		return errors.Join(ErrApplyMigrations, err)
	}

	return nil
}

type gooseLoggerAdapter struct {
	log *slog.Logger
}

func (g *gooseLoggerAdapter) Printf(format string, args ...any) {
	g.log.Info(fmt.Sprintf(format, args...))
}

// Fatalf only logs; goose returns the error to the caller anyway.
func (g *gooseLoggerAdapter) Fatalf(format string, args ...any) {
	g.log.Error(fmt.Sprintf(format, args...))
}
