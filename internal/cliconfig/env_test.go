package cliconfig_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rigma/metadata/internal/cliconfig"
	"github.com/rigma/metadata/pkg/db"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func TestApplyEnvConfig(t *testing.T) {
	t.Run("reads every prefix", func(t *testing.T) {
		t.Setenv("METADATA_HOST", "127.0.0.1")
		t.Setenv("METADATA_PORT", "8081")
		t.Setenv("METADATA_LOG_LEVEL", "warn")
		t.Setenv("METADATA_REQUEST_TIMEOUT", "2s")
		t.Setenv("METADATA_CORS_ORIGINS", "https://a.example, ,https://b.example")
		t.Setenv("METADATA_WAIT_FOR_DB", "true")
		t.Setenv("METADATA_OTLP_ENDPOINT", "collector:4318")
		t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")
		t.Setenv("SENTRY_ENVIRONMENT", "production")
		t.Setenv("POSTGRES_HOST", "pg")
		t.Setenv("POSTGRES_PORT", "6000")
		t.Setenv("POSTGRES_USER", "reader")
		t.Setenv("POSTGRES_DATABASE", "metadata")

		cfg := cliconfig.DefaultConfig()
		warnings, err := cliconfig.ApplyEnvConfig(&cfg, nil)
		require.NoError(t, err)
		require.Empty(t, warnings)

		require.Equal(t, "127.0.0.1:8081", cfg.Address())
		require.Equal(t, "warn", cfg.LogLevel)
		require.Equal(t, 2*time.Second, cfg.RequestTimeout)
		require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
		require.True(t, cfg.WaitForDB)
		require.Equal(t, "collector:4318", cfg.OTLPEndpoint)
		require.Equal(t, "https://key@sentry.example/1", cfg.SentryDSN)
		require.Equal(t, "production", cfg.SentryEnvironment)
		require.Equal(t, "pg", cfg.Postgres.Host)
		require.Equal(t, uint16(6000), cfg.Postgres.Port)
		require.Equal(t, "reader", cfg.Postgres.User)
		require.Equal(t, "metadata", cfg.Postgres.Database)
	})

	t.Run("changed flags win", func(t *testing.T) {
		t.Setenv("METADATA_PORT", "8081")
		t.Setenv("POSTGRES_USER", "reader")

		cfg := cliconfig.DefaultConfig()
		cfg.Port = 9000
		_, err := cliconfig.ApplyEnvConfig(&cfg, map[string]bool{"port": true})
		require.NoError(t, err)
		require.Equal(t, uint16(9000), cfg.Port)
		require.Equal(t, "reader", cfg.Postgres.User)
	})

	t.Run("malformed postgres port is a warning", func(t *testing.T) {
		t.Setenv("POSTGRES_PORT", "not-a-port")

		cfg := cliconfig.DefaultConfig()
		warnings, err := cliconfig.ApplyEnvConfig(&cfg, nil)
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.Contains(t, warnings[0], "POSTGRES_PORT")
		require.Equal(t, db.DefaultPort, cfg.Postgres.Port)
	})

	t.Run("postgres settings match db.FromEnv", func(t *testing.T) {
		t.Setenv("POSTGRES_HOST", "pg")
		t.Setenv("POSTGRES_PORT", "6000")
		t.Setenv("POSTGRES_USER", "reader")
		t.Setenv("POSTGRES_PASSWORD", "secret")
		t.Setenv("POSTGRES_DATABASE", "metadata")

		cfg := cliconfig.DefaultConfig()
		_, err := cliconfig.ApplyEnvConfig(&cfg, nil)
		require.NoError(t, err)

		want := db.FromEnv().Settings()
		got := cfg.Postgres.Builder("").Settings()
		require.Equal(t, want.Host, got.Host)
		require.Equal(t, want.Port, got.Port)
		require.Equal(t, want.User, got.User)
		require.Equal(t, *want.Password, *got.Password)
		require.Equal(t, *want.DBName, *got.DBName)
	})

	t.Run("unset postgres variables keep earlier layers", func(t *testing.T) {
		for _, k := range []string{"HOST", "PORT", "USER", "PASSWORD", "DATABASE"} {
			t.Setenv(db.EnvPrefix+k, "")
		}

		cfg := cliconfig.DefaultConfig()
		cfg.Postgres.Host = "from-file"
		cfg.Postgres.Port = 7000
		_, err := cliconfig.ApplyEnvConfig(&cfg, nil)
		require.NoError(t, err)
		require.Equal(t, "from-file", cfg.Postgres.Host)
		require.Equal(t, uint16(7000), cfg.Postgres.Port)
	})

	t.Run("malformed server port is an error", func(t *testing.T) {
		t.Setenv("METADATA_PORT", "0")

		cfg := cliconfig.DefaultConfig()
		_, err := cliconfig.ApplyEnvConfig(&cfg, nil)
		require.ErrorIs(t, err, db.ErrInvalidPort)
	})

	t.Run("malformed bool", func(t *testing.T) {
		t.Setenv("METADATA_WAIT_FOR_DB", "maybe")

		cfg := cliconfig.DefaultConfig()
		_, err := cliconfig.ApplyEnvConfig(&cfg, nil)
		require.Error(t, err)
	})
}

func TestLoadDotEnv(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("METADATA_TEST_DOTENV=loaded\n"), 0o600))
		t.Setenv("METADATA_TEST_DOTENV", "")
		require.NoError(t, os.Unsetenv("METADATA_TEST_DOTENV"))

		require.NoError(t, cliconfig.LoadDotEnv(path))
		require.Equal(t, "loaded", os.Getenv("METADATA_TEST_DOTENV"))
	})

	t.Run("does not override the environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("METADATA_TEST_DOTENV=from-file\n"), 0o600))
		t.Setenv("METADATA_TEST_DOTENV", "from-env")

		require.NoError(t, cliconfig.LoadDotEnv(path))
		require.Equal(t, "from-env", os.Getenv("METADATA_TEST_DOTENV"))
	})

	t.Run("missing explicit file", func(t *testing.T) {
		require.Error(t, cliconfig.LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))
	})
}
