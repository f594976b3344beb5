package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rigma/metadata/db/migrations"
	"github.com/rigma/metadata/pkg/db"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	table := db.DefaultMigrationsTable

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&table, "table", table, "migration version table")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withPool(cmd, func(ctx context.Context, state *db.PoolState, log *slog.Logger) error {
					return db.Migrate(ctx, state, migrations.Files, table, log)
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withPool(cmd, func(ctx context.Context, state *db.PoolState, log *slog.Logger) error {
					return db.Rollback(ctx, state, migrations.Files, table, log)
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the current schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return opts.withPool(cmd, func(ctx context.Context, state *db.PoolState, log *slog.Logger) error {
					version, err := db.MigrationVersion(ctx, state, migrations.Files, table, log)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
					return err
				})
			},
		},
	)

	return cmd
}

// withPool loads the configuration, opens the pool for the duration of fn and
// closes it afterwards.
func (o *rootOptions) withPool(cmd *cobra.Command, fn func(context.Context, *db.PoolState, *slog.Logger) error) error {
	log, err := o.load(cmd)
	if err != nil {
		return err
	}

	state, err := o.cfg.Postgres.Builder(appName()).Finalize()
	if err != nil {
		return fmt.Errorf("build database pool: %w", err)
	}
	defer state.Close()

	ctx := cmd.Context()
	if o.cfg.WaitForDB {
		if err := db.Connect(ctx, state, db.WithConnectLogger(log)); err != nil {
			return err
		}
	}

	return fn(ctx, state, log)
}
