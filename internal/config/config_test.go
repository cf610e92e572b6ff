package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/worklog/internal/config"
)

func TestLoadWritesTemplateOnFirstRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := config.Load(path, config.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, config.DatabaseFile), cfg.Database.DSN)
	assert.Equal(t, config.DefaultLogLevel, cfg.Log.Level)

	_, err = os.Stat(path)
	assert.NoError(t, err, "template should be written")

	// The template itself must parse back to the defaults.
	again, err := config.Load(path, config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: DEBUG\n"), 0o600))

	cfg, err := config.Load(path, config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, config.DatabaseFile), cfg.Database.DSN)
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv(config.EnvDriver, "postgres")
	t.Setenv(config.EnvDSN, "postgres://u:p@localhost:5432/worklog")
	t.Setenv(config.EnvLogLevel, "error")

	cfg, err := config.Load(path, config.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost:5432/worklog", cfg.Database.DSN)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown driver", "database:\n  driver: mysql\n"},
		{"postgres without dsn", "database:\n  driver: postgres\n"},
		{"bad level", "log:\n  level: loud\n"},
		{"bad yaml", "database: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))
			_, err := config.Load(path, config.Overrides{})
			assert.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := config.ParseLevel("info")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	_, err = config.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLoadCommandLineOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := config.Load(path, config.Overrides{Driver: " SQLite ", LogLevel: "INFO"})
	require.NoError(t, err)
	assert.Equal(t, config.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, filepath.Join(dir, config.DatabaseFile), cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)

	cfg, err = config.Load(path, config.Overrides{Driver: "postgres", DSN: "postgres://u:p@localhost/worklog"})
	require.NoError(t, err)
	assert.Equal(t, config.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost/worklog", cfg.Database.DSN)
}

func TestLoadDriverOverrideDropsForeignDSN(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  driver: sqlite\n  dsn: /tmp/other.db\n"), 0o600))

	_, err := config.Load(path, config.Overrides{Driver: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn is required")
}
