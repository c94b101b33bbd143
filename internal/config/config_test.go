package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("CONFIG_FILE")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("HTTP_LISTEN_ADDR")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("MIGRATE_ON_START")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, ":8090", cfg.HTTPListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.MigrateOnStart)
}

func TestLoad_EnvVars(t *testing.T) {
	os.Unsetenv("CONFIG_FILE")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/anomalies")
	t.Setenv("HTTP_LISTEN_ADDR", ":7071")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MIGRATE_ON_START", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost:5432/anomalies", cfg.DatabaseURL)
	assert.Equal(t, ":7071", cfg.HTTPListenAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.MigrateOnStart)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"database_url: postgres://filehost/db\nhttp_listen_addr: \":9000\"\nlog_level: warn\n",
	), 0o600))

	t.Setenv("CONFIG_FILE", path)
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("HTTP_LISTEN_ADDR")
	os.Unsetenv("LOG_LEVEL")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres://filehost/db", cfg.DatabaseURL)
	assert.Equal(t, ":9000", cfg.HTTPListenAddr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_url: postgres://filehost/db\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DATABASE_URL", "postgres://envhost/db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://envhost/db", cfg.DatabaseURL)
}

func TestLoad_BadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database_url: [broken\n"), 0o600))

	t.Setenv("CONFIG_FILE", path)
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestValidate_MissingFields(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "HTTP_LISTEN_ADDR")
}

func TestValidate_AllPresent(t *testing.T) {
	cfg := &Config{
		DatabaseURL:    "postgres://localhost/db",
		HTTPListenAddr: ":8090",
	}
	assert.NoError(t, cfg.Validate())
}
