package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/rigma/metadata/pkg/db"
)

// Environment variable prefixes read by ApplyEnvConfig.
const (
	EnvPrefix       = "METADATA_"
	SentryEnvPrefix = "SENTRY_"
)

// LoadDotEnv loads variables from path without overriding the environment.
// An empty path loads ./.env when it exists.
func LoadDotEnv(path string) error {
	if path == "" {
		if !FileExists(".env") {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvConfig copies METADATA_*, SENTRY_* and POSTGRES_* variables into
// cfg, skipping changed flags. POSTGRES_* is read by db.LoadEnv, the same
// parser behind db.FromEnv. A malformed POSTGRES_PORT keeps the current
// port and is reported as a warning; any other malformed value is an error.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) (warnings []string, err error) {
	k := koanf.New(".")
	for _, prefix := range []string{EnvPrefix, SentryEnvPrefix} {
		if err := k.Load(env.Provider(prefix, ".", strings.ToLower), nil); err != nil {
			return nil, fmt.Errorf("load %s environment: %w", prefix, err)
		}
	}

	s := newConfigSetter(changed)

	s.setString("host", k.String("metadata_host"), &cfg.Host)
	if err := s.setPort("port", k.String("metadata_port"), &cfg.Port); err != nil {
		return nil, err
	}
	s.setString("log-level", k.String("metadata_log_level"), &cfg.LogLevel)
	s.setString("log-format", k.String("metadata_log_format"), &cfg.LogFormat)
	if err := s.setDuration("request-timeout", k.String("metadata_request_timeout"), &cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if err := s.setDuration("shutdown-timeout", k.String("metadata_shutdown_timeout"), &cfg.ShutdownTimeout); err != nil {
		return nil, err
	}
	s.setStrings("cors-origins", splitList(k.String("metadata_cors_origins")), &cfg.CORSOrigins)
	if err := s.setBoolFromString("wait-for-db", k.String("metadata_wait_for_db"), &cfg.WaitForDB); err != nil {
		return nil, err
	}
	s.setString("otlp-endpoint", k.String("metadata_otlp_endpoint"), &cfg.OTLPEndpoint)
	if err := s.setBoolFromString("otlp-insecure", k.String("metadata_otlp_insecure"), &cfg.OTLPInsecure); err != nil {
		return nil, err
	}

	s.setString("sentry-dsn", k.String("sentry_dsn"), &cfg.SentryDSN)
	s.setString("sentry-environment", k.String("sentry_environment"), &cfg.SentryEnvironment)

	pg, err := db.LoadEnv()
	if err != nil {
		if !errors.Is(err, db.ErrInvalidPort) {
			return nil, err
		}
		warnings = append(warnings, fmt.Sprintf("ignoring %sPORT: %v", db.EnvPrefix, err))
	}
	s.setString("postgres-host", pg.Host, &cfg.Postgres.Host)
	s.setUint16("postgres-port", pg.Port, &cfg.Postgres.Port)
	s.setString("postgres-user", pg.User, &cfg.Postgres.User)
	s.setString("postgres-password", pg.Password, &cfg.Postgres.Password)
	s.setString("postgres-database", pg.Database, &cfg.Postgres.Database)

	return warnings, nil
}
