package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	DefaultHost = "localhost"
	DefaultPort = uint16(5432)
	DefaultUser = "postgres"
)

// Settings is a read-only snapshot of the values collected by a PoolStateBuilder.
// Nil pointers mean the value was never set and pgx defaults apply.
type Settings struct {
	ApplicationName *string
	Host            string
	Port            uint16
	User            string
	Password        *string
	DBName          *string

	MaxConns          *int32
	MinConns          *int32
	MaxConnLifetime   *time.Duration
	MaxConnIdleTime   *time.Duration
	HealthCheckPeriod *time.Duration
	ConnectTimeout    *time.Duration
}

// PoolStateBuilder collects connection parameters for a PoolState.
// It is consumed by Finalize and cannot be reused afterwards.
type PoolStateBuilder struct {
	settings Settings
	consumed bool
}

// Builder returns a builder with localhost:5432 and the postgres user preset.
func Builder() *PoolStateBuilder {
	return &PoolStateBuilder{
		settings: Settings{
			Host: DefaultHost,
			Port: DefaultPort,
			User: DefaultUser,
		},
	}
}

func (b *PoolStateBuilder) ApplicationName(name string) *PoolStateBuilder {
	b.settings.ApplicationName = &name
	return b
}

func (b *PoolStateBuilder) Host(host string) *PoolStateBuilder {
	b.settings.Host = host
	return b
}

func (b *PoolStateBuilder) Port(port uint16) *PoolStateBuilder {
	b.settings.Port = port
	return b
}

func (b *PoolStateBuilder) User(user string) *PoolStateBuilder {
	b.settings.User = user
	return b
}

func (b *PoolStateBuilder) Password(password string) *PoolStateBuilder {
	b.settings.Password = &password
	return b
}

func (b *PoolStateBuilder) DBName(name string) *PoolStateBuilder {
	b.settings.DBName = &name
	return b
}

// MaxConns caps the number of open connections. pgx defaults to max(4, NumCPU).
func (b *PoolStateBuilder) MaxConns(n int32) *PoolStateBuilder {
	b.settings.MaxConns = &n
	return b
}

// MinConns keeps n connections open in the background.
// Any value above zero makes the pool dial right after Finalize.
func (b *PoolStateBuilder) MinConns(n int32) *PoolStateBuilder {
	b.settings.MinConns = &n
	return b
}

func (b *PoolStateBuilder) MaxConnLifetime(d time.Duration) *PoolStateBuilder {
	b.settings.MaxConnLifetime = &d
	return b
}

func (b *PoolStateBuilder) MaxConnIdleTime(d time.Duration) *PoolStateBuilder {
	b.settings.MaxConnIdleTime = &d
	return b
}

func (b *PoolStateBuilder) HealthCheckPeriod(d time.Duration) *PoolStateBuilder {
	b.settings.HealthCheckPeriod = &d
	return b
}

func (b *PoolStateBuilder) ConnectTimeout(d time.Duration) *PoolStateBuilder {
	b.settings.ConnectTimeout = &d
	return b
}

// Settings returns a copy of the collected values.
func (b *PoolStateBuilder) Settings() Settings {
	return b.settings
}

// ConnString renders the keyword/value connection string handed to pgx.
// Optional keys are omitted when unset.
func (b *PoolStateBuilder) ConnString() string {
	s := b.settings
	parts := []string{
		"host=" + quoteValue(s.Host),
		fmt.Sprintf("port=%d", s.Port),
		"user=" + quoteValue(s.User),
	}
	if s.Password != nil {
		parts = append(parts, "password="+quoteValue(*s.Password))
	}
	if s.DBName != nil {
		parts = append(parts, "dbname="+quoteValue(*s.DBName))
	}
	if s.ApplicationName != nil {
		parts = append(parts, "application_name="+quoteValue(*s.ApplicationName))
	}
	return strings.Join(parts, " ")
}

// Finalize builds the PoolState. No connection is opened here: the pool dials
// on first use, so an unreachable database does not fail startup.
// The only error source is a configuration pgx refuses to parse.
func (b *PoolStateBuilder) Finalize() (*PoolState, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	cfg, err := pgxpool.ParseConfig(b.ConnString())
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	s := b.settings
	cfg.MinConns = 0
	if s.MinConns != nil {
		cfg.MinConns = *s.MinConns
	}
	if s.MaxConns != nil {
		cfg.MaxConns = *s.MaxConns
	}
	if s.MaxConnLifetime != nil {
		cfg.MaxConnLifetime = *s.MaxConnLifetime
	}
	if s.MaxConnIdleTime != nil {
		cfg.MaxConnIdleTime = *s.MaxConnIdleTime
	}
	if s.HealthCheckPeriod != nil {
		cfg.HealthCheckPeriod = *s.HealthCheckPeriod
	}
	if s.ConnectTimeout != nil {
		cfg.ConnConfig.ConnectTimeout = *s.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}

	return NewPoolState(pool), nil
}

// quoteValue quotes a keyword/value connection string value.
// Backslashes and single quotes are escaped as libpq expects.
func quoteValue(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(v) + "'"
}
