package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rigma/metadata"
	"github.com/rigma/metadata/internal/handlers"
	"github.com/rigma/metadata/middlewares"
	"github.com/rigma/metadata/pkg/db"
	"github.com/rigma/metadata/pkg/telemetry"
)

const compressionLevel = 5

func newServeCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), opts, log)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.cfg.Host, "host", opts.cfg.Host, "address to bind (empty binds every interface)")
	f.Uint16Var(&opts.cfg.Port, "port", opts.cfg.Port, "port to bind")
	f.DurationVar(&opts.cfg.RequestTimeout, "request-timeout", opts.cfg.RequestTimeout, "per-request deadline")
	f.DurationVar(&opts.cfg.ShutdownTimeout, "shutdown-timeout", opts.cfg.ShutdownTimeout, "graceful shutdown deadline")
	f.StringSliceVar(&opts.cfg.CORSOrigins, "cors-origins", opts.cfg.CORSOrigins, "allowed CORS origins")
	f.StringVar(&opts.cfg.OTLPEndpoint, "otlp-endpoint", opts.cfg.OTLPEndpoint, "OTLP/HTTP metrics endpoint (empty disables export)")
	f.BoolVar(&opts.cfg.OTLPInsecure, "otlp-insecure", opts.cfg.OTLPInsecure, "use plain HTTP for the OTLP endpoint")

	return cmd
}

func serve(ctx context.Context, opts *rootOptions, log *slog.Logger) error {
	cfg := opts.cfg
	name := appName()

	// The pool is lazy: an unreachable database does not prevent startup.
	state, err := cfg.Postgres.Builder(name).Finalize()
	if err != nil {
		return fmt.Errorf("build database pool: %w", err)
	}
	// Normally closed by the shutdown hook; this covers failed startups.
	defer state.Close()

	tel, err := telemetry.New(ctx, cfg.Telemetry(name, getVersion()))
	if err != nil {
		return err
	}
	if err := db.ObservePoolMetrics(state, "primary"); err != nil {
		log.Warn("pool metrics unavailable", slog.Any("error", err))
	}

	hs := handlers.NewState(state)
	app := metadata.New(
		metadata.WithCustomLogger(log),
		metadata.WithCompression(compressionLevel, "application/json", "application/problem+json"),
		metadata.WithMiddleware(
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORSOrigins...)),
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Metrics(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
		),
		metadata.WithHealthChecks(
			metadata.WithReadinessCheck("postgres", db.Healthcheck(state)),
		),
		metadata.WithHandlers(
			handlers.NewDomains(hs),
			handlers.NewBlocks(hs),
		),
	)

	runOpts := []metadata.RunOption{
		metadata.Logger(log),
		metadata.WithContext(ctx),
		metadata.ShutdownTimeout(cfg.ShutdownTimeout),
		metadata.ShutdownHook(db.Shutdown(state)),
		metadata.ShutdownHook(tel.Shutdown),
	}
	if cfg.WaitForDB {
		runOpts = append(runOpts, metadata.StartupHook(func(ctx context.Context) error {
			return db.Connect(ctx, state, db.WithConnectLogger(log))
		}))
	}

	log.Info("starting",
		slog.String("version", getVersion()),
		slog.String("address", cfg.Address()),
		slog.String("postgres_host", cfg.Postgres.Host),
		slog.Bool("metrics_export", tel.Enabled()),
	)

	return app.Run(cfg.Address(), runOpts...)
}
