package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "TOKEN_TTL", "PURGE_INTERVAL", "STORAGE_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "0.0.0.0:4000", cfg.HTTPAddr)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.PurgeInterval)
	assert.Equal(t, "auto", cfg.StorageDriver)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9999")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("DB_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "127.0.0.1:9999", cfg.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 25, cfg.DBMaxConns)
}

func TestConfig_Driver(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"explicit driver wins", Config{StorageDriver: "sqlite", DatabaseURL: "postgres://x"}, "sqlite"},
		{"auto prefers postgres", Config{StorageDriver: "auto", DatabaseURL: "postgres://x", RedisURL: "redis://y"}, "postgres"},
		{"auto falls back to redis", Config{StorageDriver: "auto", RedisURL: "redis://y"}, "redis"},
		{"auto defaults to sqlite", Config{StorageDriver: "auto"}, "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Driver())
		})
	}
}
