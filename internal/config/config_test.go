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

	assert.True(t, cfg.Environment.IsDevelopment())
	assert.Equal(t, "0.0.0.0:3001", cfg.HTTP.Addr())
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowOrigins)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, DefaultTokenSecret, cfg.Auth.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "admin@sweetcupcakes.com", cfg.Admin.Email)
	assert.True(t, cfg.Catalog.Seed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("HTTP_ALLOW_ORIGINS", "http://localhost:5173,https://shop.example.com")
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("DATABASE_URL", "user:pass@tcp(db:3306)/cupcakes?parseTime=true")
	t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
	t.Setenv("AUTH_TOKEN_TTL", "2h")
	t.Setenv("CATALOG_SEED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Environment.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, []string{"http://localhost:5173", "https://shop.example.com"}, cfg.HTTP.AllowOrigins)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.Auth.TokenSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Catalog.Seed)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown driver", key: "DATABASE_DRIVER", val: "postgres"},
		{name: "unknown log format", key: "LOG_FORMAT", val: "xml"},
		{name: "non positive ttl", key: "AUTH_TOKEN_TTL", val: "0s"},
		{name: "malformed ttl", key: "AUTH_TOKEN_TTL", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
