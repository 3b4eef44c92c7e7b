package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_ACCESS_TOKEN_DURATION", "20m")
	t.Setenv("APP_REFRESH_TOKEN_DURATION", "3h")
	t.Setenv("APP_EMAIL_TOKEN_SECRET", "email-secret")
	t.Setenv("APP_DOMAIN", "fundoo.example.com")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost:5432/fundoo")
	t.Setenv("STORAGE_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("WORKERS_SWEEP_INTERVAL", "30m")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, 20*time.Minute, cfg.App.AccessTokenDuration)
	assert.Equal(t, 3*time.Hour, cfg.App.RefreshTokenDuration)
	assert.Equal(t, "email-secret", cfg.App.EmailTokenSecret)
	assert.Equal(t, "fundoo.example.com", cfg.App.Domain)
	assert.Equal(t, "postgres://localhost:5432/fundoo", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:6379", cfg.Storage.Redis.Addr)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Minute, cfg.Workers.SweepInterval)
}

func TestParseEnv_EmptyEnvironmentIsValid(t *testing.T) {
	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))
	assert.Zero(t, cfg.App.AccessTokenDuration)
}
