package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://ajay-cafe-1.onrender.com", cfg.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Poll.Board)
	assert.Equal(t, 10*time.Second, cfg.Poll.Tracking)
	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr())
	assert.Equal(t, ":8088", cfg.Server.Addr)
	assert.True(t, cfg.Server.MetricsEnabled)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CANTEEN_BACKEND_BASE_URL", "http://localhost:4000")
	t.Setenv("CANTEEN_POLL_BOARD", "2s")
	t.Setenv("CANTEEN_CACHE_TYPE", "redis")
	t.Setenv("CANTEEN_SERVER_METRICS_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.Backend.BaseURL)
	assert.Equal(t, 2*time.Second, cfg.Poll.Board)
	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.False(t, cfg.Server.MetricsEnabled)
}

func TestLoad_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "canteen.toml")
	content := `
[backend]
base_url = "http://backend.local"
timeout = "3s"

[store]
path = "/tmp/c.db"

[log]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://backend.local", cfg.Backend.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "/tmp/c.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative backend url", func(c *Config) { c.Backend.BaseURL = "/api" }},
		{"negative rate", func(c *Config) { c.Backend.RateLimit = -1 }},
		{"negative retries", func(c *Config) { c.Retry.MaxRetries = -1 }},
		{"small multiplier", func(c *Config) { c.Retry.Multiplier = 0.5 }},
		{"fast poll", func(c *Config) { c.Poll.Board = 100 * time.Millisecond }},
		{"unknown cache", func(c *Config) { c.Cache.Type = "memcached" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
