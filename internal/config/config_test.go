package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hoard/internal/cache"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultMaxCapacity, cfg.Cache.MaxCapacity)
	assert.False(t, cfg.Cache.PurgeStoreOnRemoveAll)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
cache:
  max_capacity: 16
  purge_store_on_remove_all: true
database:
  path: /tmp/hoard-test.db
logging:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.Cache.MaxCapacity)
	assert.True(t, cfg.Cache.PurgeStoreOnRemoveAll)
	assert.Equal(t, "/tmp/hoard-test.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("HOARD_CACHE_MAX_CAPACITY", "7")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Cache.MaxCapacity)
}

func TestLoad_InvalidCapacity(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  max_capacity: 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, cache.ErrInvalidCapacity)
	assert.Contains(t, err.Error(), "max_capacity")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestSchema_DescribesConfig(t *testing.T) {
	out, err := Schema()
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "max_capacity")
	assert.Contains(t, s, "purge_store_on_remove_all")
	assert.Contains(t, s, "logging")
}
