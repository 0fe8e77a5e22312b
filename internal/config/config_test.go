package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/codacy-badger/mayday-ticketing-db-api/internal/pkg/errors"
)

var envKeys = []string{
	"STAGE",
	"DB_HOST", "DB_PORT", "DB_USERNAME", "DB_PASSWD", "DB_NAME", "DB_DRIVER",
	"REDIS_HOST", "REDIS_PORT", "REDIS_DB",
	"SERVER_HOST", "SERVER_PORT", "LOG_FORMAT", "RATE_LIMIT_MAX",
	"AUTH_TOKEN_SECRET", "AUTH_TOKEN_TTL_MINUTES", "SENTRY_DSN", "SENTRY_ENVIRONMENT",
}

// clearEnv unsets every variable the loader reads and restores them afterwards
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageConfig{
		Host:   "localhost",
		Port:   3306,
		Driver: DriverMySQL,
	}, cfg.Storage)
	assert.Equal(t, CacheConfig{Host: "localhost", Port: 6627, DB: 0}, cfg.Cache)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, AuthConfig{TokenTTL: time.Hour}, cfg.Auth)
	assert.Empty(t, cfg.Sentry.DSN)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_USERNAME", "mayday")
	t.Setenv("DB_PASSWD", "s3cret")
	t.Setenv("DB_NAME", "tickets")
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("AUTH_TOKEN_SECRET", "signing-key")
	t.Setenv("AUTH_TOKEN_TTL_MINUTES", "15")
	t.Setenv("SENTRY_DSN", " https://key@sentry.example.com/1 ")
	t.Setenv("SENTRY_ENVIRONMENT", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageConfig{
		Host:     "db.internal",
		Port:     3307,
		Username: "mayday",
		Password: "s3cret",
		Database: "tickets",
		Driver:   DriverPostgres,
	}, cfg.Storage)
	assert.Equal(t, CacheConfig{Host: "cache.internal", Port: 6379, DB: 2}, cfg.Cache)
	assert.Equal(t, "cache.internal:6379", cfg.Cache.Addr())
	assert.NotContains(t, cfg.Storage.String(), "s3cret")
	assert.Equal(t, AuthConfig{Secret: "signing-key", TokenTTL: 15 * time.Minute}, cfg.Auth)
	assert.Equal(t, SentryConfig{DSN: "https://key@sentry.example.com/1", Environment: "staging"}, cfg.Sentry)
}

func TestLoad_EmptyNumericFallsBackToDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "")
	t.Setenv("REDIS_DB", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3306, cfg.Storage.Port)
	assert.Equal(t, 0, cfg.Cache.DB)
}

func TestLoad_InvalidNumeric(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "DB_PORT", value: "notanumber"},
		{key: "REDIS_PORT", value: "63.x"},
		{key: "REDIS_DB", value: "zero"},
		{key: "DB_PORT", value: "0x10"},
		{key: "REDIS_PORT", value: "1.0"},
		{key: "REDIS_DB", value: "0b11"},
		{key: "DB_PORT", value: "1_000"},
		{key: "DB_PORT", value: "99999999999999999999999"},
		{key: "AUTH_TOKEN_TTL_MINUTES", value: "0"},
		{key: "AUTH_TOKEN_TTL_MINUTES", value: "1h"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, apperrors.IsInvalidEnvironmentValue(err))
			assert.Equal(t, tt.key, apperrors.GetAppError(err).Details["key"])
		})
	}
}

func TestLoad_NumericIsDecimal(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PORT", "03306")
	t.Setenv("REDIS_PORT", " 010 ")
	t.Setenv("REDIS_DB", "+3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3306, cfg.Storage.Port)
	assert.Equal(t, 10, cfg.Cache.Port)
	assert.Equal(t, 3, cfg.Cache.DB)
}

func TestLoad_UnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := Load()
	assert.True(t, apperrors.IsInvalidEnvironmentValue(err))
}
