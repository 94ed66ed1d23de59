package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "csv:\n  path: data/students.csv\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Equal(t, ":memory:", cfg.Storage.Path)
	assert.Equal(t, "data/students.csv", cfg.CSV.Path)
	assert.Equal(t, ",", cfg.CSV.Separator)
	assert.False(t, cfg.CSV.HasHeader)
	assert.Equal(t, "localhost:8082", cfg.Addr)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage:
  driver: sqlite
  path: roster.db
csv:
  path: /srv/students.csv
  separator: ";"
  has_header: true
http_server:
  address: 0.0.0.0:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "roster.db", cfg.Storage.Path)
	assert.Equal(t, ";", cfg.CSV.Separator)
	assert.True(t, cfg.CSV.HasHeader)
	assert.Equal(t, "0.0.0.0:9000", cfg.HTTPServer.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "csv:\n  path: a.csv\n")
	t.Setenv("CSV_PATH", "b.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.csv", cfg.CSV.Path)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "csv:\n  path: a.csv\nstorage:\n  driver: postgres\n"))
	assert.ErrorContains(t, err, "unknown storage driver")
}
