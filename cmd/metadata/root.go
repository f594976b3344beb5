package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rigma/metadata/internal/cliconfig"
	"github.com/rigma/metadata/middlewares"
	"github.com/rigma/metadata/pkg/logger"
)

type rootOptions struct {
	cfg     cliconfig.Config
	cfgPath string
	envFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:           appName(),
		Short:         "Read-only lookup service for domains and blocks",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&opts.cfgPath, "config", "", "path to a YAML config file")
	pf.StringVar(&opts.envFile, "env-file", "", "path to a .env file (default: ./.env when present)")
	pf.StringVar(&opts.cfg.LogLevel, "log-level", opts.cfg.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&opts.cfg.LogFormat, "log-format", opts.cfg.LogFormat, "log format: json or text")
	pf.BoolVar(&opts.cfg.WaitForDB, "wait-for-db", opts.cfg.WaitForDB, "wait until the database answers before starting")

	pf.StringVar(&opts.cfg.Postgres.Host, "postgres-host", opts.cfg.Postgres.Host, "database host")
	pf.Uint16Var(&opts.cfg.Postgres.Port, "postgres-port", opts.cfg.Postgres.Port, "database port")
	pf.StringVar(&opts.cfg.Postgres.User, "postgres-user", opts.cfg.Postgres.User, "database user")
	pf.StringVar(&opts.cfg.Postgres.Password, "postgres-password", opts.cfg.Postgres.Password, "database password")
	pf.StringVar(&opts.cfg.Postgres.Database, "postgres-database", opts.cfg.Postgres.Database, "database name (defaults to the user name)")

	root.AddCommand(
		newServeCommand(opts),
		newMigrateCommand(opts),
		newVersionCommand(),
	)

	return root
}

// load resolves the configuration for cmd and builds the process logger.
// Layers apply in order file, environment; flags set on the command line
// are never overwritten.
func (o *rootOptions) load(cmd *cobra.Command) (*slog.Logger, error) {
	if err := cliconfig.LoadDotEnv(o.envFile); err != nil {
		return nil, err
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if o.cfgPath != "" {
		fc, err := cliconfig.LoadFileConfig(o.cfgPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&o.cfg, fc, changed); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	warnings, err := cliconfig.ApplyEnvConfig(&o.cfg, changed)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	if err := o.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logOpts := append(o.cfg.LoggerOptions(),
		logger.WithWriter(cmd.OutOrStdout()),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
	log := logger.NewWithSentry(o.cfg.Sentry(getVersion()), logOpts...)

	for _, w := range warnings {
		log.Warn(w)
	}

	return log, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName(), versionString())
			return err
		},
	}
}
