package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "HTTP_ADDR", "STORE_DRIVER", "DB_HOST", "DB_MAX_CONNS", "MIGRATIONS_ENABLED", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	require.Equal(t, "development", cfg.Environment)
	require.Equal(t, ":9000", cfg.HTTPAddr)
	require.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	require.Equal(t, "localhost", cfg.DBHost)
	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.True(t, cfg.MigrationsEnabled)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("MIGRATIONS_ENABLED", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg := Load()

	require.True(t, cfg.IsProduction())
	require.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	require.Equal(t, int32(25), cfg.DBMaxConns)
	require.False(t, cfg.MigrationsEnabled)
	require.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "many")
	t.Setenv("MIGRATIONS_ENABLED", "maybe")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg := Load()

	require.Equal(t, int32(10), cfg.DBMaxConns)
	require.True(t, cfg.MigrationsEnabled)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{
		DBUser:     "bob",
		DBPassword: "secret",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "auctions",
		DBSSLMode:  "require",
	}
	require.Equal(t, "postgres://bob:secret@db:5433/auctions?sslmode=require", cfg.PostgresDSN())
}
