package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/orgtree/orgerrors"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "orgtree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Listen)
	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, "xml", cfg.Report.DefaultFormat)
	assert.Equal(t, 50.0, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
server:
  listen: "0.0.0.0:9090"
  readTimeout: 5s
storage:
  inMemory: false
  dataDir: /var/lib/orgtree
registry:
  strictMerge: true
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout, "unset keys keep defaults")
	assert.False(t, cfg.Storage.InMemory)
	assert.Equal(t, "/var/lib/orgtree", cfg.Storage.DataDir)
	assert.True(t, cfg.Registry.StrictMerge)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "server:\n  listen: \"0.0.0.0:9090\"\n")
	t.Setenv("ORGTREE_LISTEN", "127.0.0.1:7000")
	t.Setenv("ORGTREE_STRICT_MERGE", "true")
	t.Setenv("ORGTREE_RATE_LIMIT_RPS", "2.5")
	t.Setenv("ORGTREE_RATE_LIMIT_BURST", "5")
	t.Setenv("ORGTREE_LOG_LEVEL", "WARN")
	t.Setenv("ORGTREE_WRITE_TIMEOUT", "1m")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:7000", cfg.Server.Listen)
	assert.True(t, cfg.Registry.StrictMerge)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
}

func TestEnvDataDirSelectsBadger(t *testing.T) {
	t.Setenv("ORGTREE_DATA_DIR", "/tmp/orgtree")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Storage.InMemory)
	assert.Equal(t, "/tmp/orgtree", cfg.Storage.DataDir)
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("ORGTREE_STRICT_MERGE", "maybe")
	t.Setenv("ORGTREE_READ_TIMEOUT", "soon")
	t.Setenv("ORGTREE_RATE_LIMIT_BURST", "-4")
	t.Setenv("ORGTREE_RATE_LIMIT_RPS", "fast")

	cfg, err := Load("")
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.Registry.StrictMerge, cfg.Registry.StrictMerge)
	assert.Equal(t, def.Server.ReadTimeout, cfg.Server.ReadTimeout)
	assert.Equal(t, def.RateLimit.Burst, cfg.RateLimit.Burst)
	assert.Equal(t, def.RateLimit.RequestsPerSecond, cfg.RateLimit.RequestsPerSecond)
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		option string
	}{
		{"log level", func(c *Config) { c.Log.Level = "verbose" }, "Log.Level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "Log.Format"},
		{"report format", func(c *Config) { c.Report.DefaultFormat = "pdf" }, "Report.DefaultFormat"},
		{"listen", func(c *Config) { c.Server.Listen = "" }, "Server.Listen"},
		{"timeout", func(c *Config) { c.Server.ReadTimeout = 0 }, "Server.ReadTimeout"},
		{"data dir", func(c *Config) { c.Storage.InMemory = false }, "Storage.DataDir"},
		{"discard ratio", func(c *Config) { c.Storage.GCDiscardRatio = 2 }, "Storage.GCDiscardRatio"},
		{"burst", func(c *Config) { c.RateLimit.Burst = 0 }, "rateLimit.burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, orgerrors.ErrConfig))

			var ce *orgerrors.ConfigError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.option, ce.Option)
		})
	}
}

func TestRateLimitDisabled(t *testing.T) {
	cfg := Default()
	cfg.RateLimit.RequestsPerSecond = 0
	cfg.RateLimit.Burst = 0
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, orgerrors.ErrConfig))

	_, err = Load(writeFile(t, "server: [unclosed"))
	assert.True(t, errors.Is(err, orgerrors.ErrConfig))
}
