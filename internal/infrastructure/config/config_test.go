package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8000", cfg.Server.GetAddr())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "recipes.json", cfg.Store.Path)
	assert.True(t, cfg.Store.LockWrites)
	assert.False(t, cfg.Store.AtomicWrites)
	assert.Equal(t, uint32(0o644), cfg.Store.FileMode)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins())
	assert.Zero(t, cfg.Security.RateLimitRequests)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.Docs.Enabled)
	assert.True(t, cfg.App.IsDevelopment())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("STORE_PATH", "/tmp/cookbook.json")
	t.Setenv("STORE_LOCK_WRITES", "false")
	t.Setenv("STORE_ATOMIC_WRITES", "true")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT_REQUESTS", "25")
	t.Setenv("APP_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.GetAddr())
	assert.Equal(t, "/tmp/cookbook.json", cfg.Store.Path)
	assert.False(t, cfg.Store.LockWrites)
	assert.True(t, cfg.Store.AtomicWrites)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins())
	assert.Equal(t, 25, cfg.Security.RateLimitRequests)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"port out of range", map[string]string{"SERVER_PORT": "70000"}},
		{"empty store path", map[string]string{"STORE_PATH": " "}},
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}},
		{"file output without filename", map[string]string{"LOG_OUTPUT": "file"}},
		{"negative rate limit", map[string]string{"RATE_LIMIT_REQUESTS": "-1"}},
		{"relative metrics path", map[string]string{"METRICS_PATH": "metrics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
