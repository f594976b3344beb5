package db

import (
	"errors"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every variable read by FromEnv.
const EnvPrefix = "POSTGRES_"

// FromEnv returns a builder populated from POSTGRES_APPNAME, POSTGRES_HOST,
// POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD and POSTGRES_DATABASE.
// Unset or empty variables keep the Builder defaults.
// A malformed or zero port falls back to 5432 without error; use FromEnvStrict
// to surface it.
func FromEnv() *PoolStateBuilder {
	b, _ := fromEnv(false)
	return b
}

// FromEnvStrict is FromEnv that reports a malformed POSTGRES_PORT as ErrInvalidPort.
// The returned builder is still usable and carries the default port.
func FromEnvStrict() (*PoolStateBuilder, error) {
	return fromEnv(true)
}

func fromEnv(strict bool) (*PoolStateBuilder, error) {
	b := Builder()
	e, err := LoadEnv()
	e.Apply(b)
	if err != nil && (strict || !errors.Is(err, ErrInvalidPort)) {
		return b, err
	}
	return b, nil
}

// Env holds the POSTGRES_* variables that were set. Empty fields and a zero
// Port were unset or empty.
type Env struct {
	ApplicationName string
	Host            string
	Port            uint16
	User            string
	Password        string
	Database        string
}

// LoadEnv reads the POSTGRES_* variables. A malformed port leaves Port zero
// and is returned as ErrInvalidPort alongside the other values.
func LoadEnv() (Env, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Env{}, errors.Join(ErrLoadEnv, err)
	}

	e := Env{
		ApplicationName: k.String("appname"),
		Host:            k.String("host"),
		User:            k.String("user"),
		Password:        k.String("password"),
		Database:        k.String("database"),
	}
	if raw := k.String("port"); raw != "" {
		port, err := ParsePort(raw)
		if err != nil {
			return e, err
		}
		e.Port = port
	}
	return e, nil
}

// Apply copies the set values onto b.
func (e Env) Apply(b *PoolStateBuilder) *PoolStateBuilder {
	if e.ApplicationName != "" {
		b.ApplicationName(e.ApplicationName)
	}
	if e.Host != "" {
		b.Host(e.Host)
	}
	if e.Port != 0 {
		b.Port(e.Port)
	}
	if e.User != "" {
		b.User(e.User)
	}
	if e.Password != "" {
		b.Password(e.Password)
	}
	if e.Database != "" {
		b.DBName(e.Database)
	}
	return b
}

// ParsePort parses a TCP port in 1..65535.
func ParsePort(raw string) (uint16, error) {
	port, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 16)
	if err != nil {
		return 0, errors.Join(ErrInvalidPort, err)
	}
	if port == 0 {
		return 0, ErrInvalidPort
	}
	return uint16(port), nil
}
