package middlewares

import (
	"log/slog"
	"time"

	"github.com/rigma/metadata/internal"
)

// AccessLogConfig configures the access log middleware.
type AccessLogConfig struct {
	Level      slog.Level // Level for successful requests (default: debug)
	ErrorLevel slog.Level // Level for 5xx responses (default: warn)
}

// AccessLogOption configures AccessLogConfig.
type AccessLogOption func(*AccessLogConfig)

// WithAccessLogLevel sets the level used for non-5xx responses.
func WithAccessLogLevel(level slog.Level) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.Level = level
	}
}

// WithAccessLogErrorLevel sets the level used for 5xx responses.
func WithAccessLogErrorLevel(level slog.Level) AccessLogOption {
	return func(cfg *AccessLogConfig) {
		cfg.ErrorLevel = level
	}
}

// AccessLog returns middleware that logs one line per request with method,
// path, status, size and duration.
// It must run outside Recover and Timeout so it sees their final status.
func AccessLog(opts ...AccessLogOption) internal.Middleware {
	cfg := &AccessLogConfig{
		Level:      slog.LevelDebug,
		ErrorLevel: slog.LevelWarn,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			rw := c.ResponseWriter()
			status := rw.Status()
			if err != nil && !rw.Written() {
				// The App renders the error after this middleware returns.
				status = statusOf(err)
			}

			level := cfg.Level
			if status >= 500 {
				level = cfg.ErrorLevel
			}

			c.Logger().Log(c.Context(), level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", rw.Size()),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
