package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PG_DSN", "postgres://u:p@localhost:5432/habits")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout.Duration())
	assert.Equal(t, 60*time.Second, cfg.Redis.DefaultTTL.Duration())
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL.Duration())
	assert.Equal(t, 3650, cfg.Streak.MaxScanDays)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "UTC", cfg.App.Timezone)
}

func TestLoad_RedisURLOverridesAddr(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("REDIS_ADDR", "ignored:1")
	t.Setenv("REDIS_URL", "redis://default:pw@cache:6380/3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without dsn", map[string]string{"REDIS_ADDR": "r:1"}},
		{"unknown driver", map[string]string{"STORE_DRIVER": "mongo", "REDIS_ADDR": "r:1"}},
		{"no redis", map[string]string{"STORE_DRIVER": "sqlite"}},
		{"bad timezone", map[string]string{"STORE_DRIVER": "sqlite", "REDIS_ADDR": "r:1", "APP_TIMEZONE": "Mars/Olympus"}},
		{"bad duration", map[string]string{"STORE_DRIVER": "sqlite", "REDIS_ADDR": "r:1", "HTTP_READ_TIMEOUT": "soon"}},
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
