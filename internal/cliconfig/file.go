package cliconfig

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the YAML config file. Durations are Go duration strings.
type FileConfig struct {
	Host            string   `yaml:"host"`
	Port            int      `yaml:"port"`
	LogLevel        string   `yaml:"log_level"`
	LogFormat       string   `yaml:"log_format"`
	RequestTimeout  string   `yaml:"request_timeout"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	CORSOrigins     []string `yaml:"cors_origins"`
	WaitForDB       *bool    `yaml:"wait_for_db"`

	OTLP struct {
		Endpoint string `yaml:"endpoint"`
		Insecure *bool  `yaml:"insecure"`
	} `yaml:"otlp"`

	Sentry struct {
		DSN         string `yaml:"dsn"`
		Environment string `yaml:"environment"`
	} `yaml:"sentry"`

	Postgres struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
	} `yaml:"postgres"`
}

// FileExists reports whether path names a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// LoadFileConfig reads and parses a YAML config file.
// Unknown keys are rejected so typos do not pass silently.
func LoadFileConfig(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var fc FileConfig
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &fc, nil
}

// ApplyFileConfig copies file values into cfg, skipping changed flags.
func ApplyFileConfig(cfg *Config, fc *FileConfig, changed map[string]bool) error {
	if fc == nil {
		return nil
	}
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	if err := s.setPort("port", portString(fc.Port), &cfg.Port); err != nil {
		return err
	}
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	if err := s.setDuration("request-timeout", fc.RequestTimeout, &cfg.RequestTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}
	s.setStrings("cors-origins", fc.CORSOrigins, &cfg.CORSOrigins)
	s.setBool("wait-for-db", fc.WaitForDB, &cfg.WaitForDB)

	s.setString("otlp-endpoint", fc.OTLP.Endpoint, &cfg.OTLPEndpoint)
	s.setBool("otlp-insecure", fc.OTLP.Insecure, &cfg.OTLPInsecure)

	s.setString("sentry-dsn", fc.Sentry.DSN, &cfg.SentryDSN)
	s.setString("sentry-environment", fc.Sentry.Environment, &cfg.SentryEnvironment)

	s.setString("postgres-host", fc.Postgres.Host, &cfg.Postgres.Host)
	if err := s.setPort("postgres-port", portString(fc.Postgres.Port), &cfg.Postgres.Port); err != nil {
		return err
	}
	s.setString("postgres-user", fc.Postgres.User, &cfg.Postgres.User)
	s.setString("postgres-password", fc.Postgres.Password, &cfg.Postgres.Password)
	s.setString("postgres-database", fc.Postgres.Database, &cfg.Postgres.Database)

	return nil
}

func portString(port int) string {
	if port == 0 {
		return ""
	}
	return strconv.Itoa(port)
}
