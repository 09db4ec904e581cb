package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covetools/cove/internal/config"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.RootDir)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Empty(t, cfg.Remote)
	assert.Equal(t, 2*time.Minute, cfg.Timeout.Std())
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	doc := `
root_dir: /data/workspaces
listen: ":8000"
remote: analysis-host:9090
timeout: 30s
log_level: debug
cache:
  backend: redis
  address: localhost:6379
  ttl: 1h
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte(doc), 0o644))

	cfg, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/data/workspaces", cfg.RootDir)
	assert.Equal(t, ":8000", cfg.Listen)
	assert.Equal(t, "analysis-host:9090", cfg.Remote)
	assert.Equal(t, 30*time.Second, cfg.Timeout.Std())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Std())
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.FileName), []byte("listen: [unclosed"), 0o644))

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", config.Config{LogLevel: "debug"}.Level().String())
	assert.Equal(t, "INFO", config.Config{LogLevel: ""}.Level().String())
	assert.Equal(t, "ERROR", config.Config{LogLevel: "error"}.Level().String())
}
