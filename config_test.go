package sqlcmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sqlcmd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  provider: postgres
  host: db.internal
  port: 5432
  database: master
  username: app
  ssl_mode: disable
  pool:
    max_open: 20
commands:
  user_insert: "INSERT INTO users (%s) VALUES (%s)"
  user_update: "UPDATE users "
  user_select: "SELECT id, name FROM users"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Server.Provider)
	assert.Equal(t, "db.internal", cfg.Server.Host)
	assert.Equal(t, 5432, cfg.Server.Port)
	assert.Equal(t, "master", cfg.Server.Database)
	assert.Equal(t, "disable", cfg.Server.SSLMode)
	assert.Equal(t, 20, cfg.Server.Pool.MaxOpen)

	require.Len(t, cfg.Commands, 3)
	assert.Equal(t, "INSERT INTO users (%s) VALUES (%s)", cfg.Commands["user_insert"])
}

func TestLoadConfigMissingProvider(t *testing.T) {
	path := writeConfig(t, `
server:
  host: db.internal
  port: 5432
`)

	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "server.provider is required")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping")
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "parse config")
}

func TestFromConfigFileUnknownProvider(t *testing.T) {
	path := writeConfig(t, `
server:
  provider: oracle
  host: db.internal
  port: 1521
`)

	_, err := FromConfigFile(context.Background(), path)
	assert.ErrorContains(t, err, "provider oracle not registered")
}
