// Package logger builds log/slog loggers with context extraction and optional
// Sentry reporting.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithFormat(logger.FormatText),
//		logger.WithExtractors(middlewares.RequestIDExtractor()),
//	)
//	log.InfoContext(ctx, "domain resolved", slog.String("domain", "acme"))
//	// time=... level=INFO msg="domain resolved" domain=acme request_id=0199...
//
// [ParseLevel] and [ParseFormat] turn configuration strings into options.
//
// # Context Extractors
//
// A [ContextExtractor] pulls one attribute from the context of each record:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every log call, so request-scoped values stay fresh.
// [NewLogHandlerDecorator] adds them to any slog.Handler.
//
// # Sentry Integration
//
// [NewWithSentry] tees records to Sentry. Errors become issues; warnings are
// stored as logs unless MinLevel is error. With an empty DSN, or when Sentry
// fails to initialise, it falls back to local output only.
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:      os.Getenv("SENTRY_DSN"),
//		MinLevel: slog.LevelWarn,
//	})
//	defer sentry.Flush(2 * time.Second)
//
// [NewNope] discards everything and is the default wherever a logger is optional.
package logger
