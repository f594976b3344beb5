// Package cliconfig assembles the metadata server configuration from
// defaults, a YAML file, environment variables and command-line flags.
//
// Precedence is flag > environment > file > default. Flags are bound directly
// to a Config; the file and environment layers skip every field whose flag
// was set explicitly.
package cliconfig

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/rigma/metadata/pkg/db"
	"github.com/rigma/metadata/pkg/logger"
	"github.com/rigma/metadata/pkg/telemetry"
)

const (
	DefaultPort            = uint16(80)
	DefaultRequestTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the CLI configuration.
type Config struct {
	Host            string
	Port            uint16
	LogLevel        string
	LogFormat       string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	WaitForDB       bool

	OTLPEndpoint string
	OTLPInsecure bool

	SentryDSN         string
	SentryEnvironment string

	Postgres Postgres
}

// Postgres holds connection parameters. Empty values keep db.Builder defaults.
type Postgres struct {
	Host     string
	Port     uint16
	User     string
	Password string
	Database string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:            DefaultPort,
		LogLevel:        "info",
		LogFormat:       string(logger.FormatJSON),
		RequestTimeout:  DefaultRequestTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		CORSOrigins:     []string{"*"},
		Postgres: Postgres{
			Host: db.DefaultHost,
			Port: db.DefaultPort,
			User: db.DefaultUser,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port == 0 {
		return fmt.Errorf("port must be in 1..65535")
	}
	if c.Postgres.Port == 0 {
		return fmt.Errorf("postgres port must be in 1..65535")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}

// Address is the listen address, host:port.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// LoggerOptions converts the log settings. Call Validate first.
func (c Config) LoggerOptions() []logger.Option {
	level, _ := logger.ParseLevel(c.LogLevel)
	format, _ := logger.ParseFormat(c.LogFormat)
	return []logger.Option{logger.WithLevel(level), logger.WithFormat(format)}
}

// Sentry returns the Sentry settings for logger.NewWithSentry.
func (c Config) Sentry(release string) logger.SentryConfig {
	return logger.SentryConfig{
		DSN:         c.SentryDSN,
		Environment: c.SentryEnvironment,
		Release:     release,
	}
}

// Telemetry returns the OpenTelemetry settings.
func (c Config) Telemetry(service, version string) telemetry.Config {
	return telemetry.Config{
		OTLPEndpoint:   c.OTLPEndpoint,
		OTLPInsecure:   c.OTLPInsecure,
		ServiceName:    service,
		ServiceVersion: version,
		Environment:    c.SentryEnvironment,
	}
}

// Builder returns a pool builder for these parameters, tagged with appName.
func (p Postgres) Builder(appName string) *db.PoolStateBuilder {
	b := db.Builder().Host(p.Host).Port(p.Port).User(p.User)
	if appName != "" {
		b.ApplicationName(appName)
	}
	if p.Password != "" {
		b.Password(p.Password)
	}
	if p.Database != "" {
		b.DBName(p.Database)
	}
	return b
}

// configSetter applies values unless the matching flag was set explicitly.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setStrings(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setPort(flag, value string, dst *uint16) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	port, err := db.ParsePort(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = port
	return nil
}

func (s *configSetter) setUint16(flag string, value uint16, dst *uint16) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

func (s *configSetter) setBoolFromString(flag, value string, dst *bool) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = b
	return nil
}

// splitList splits a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
