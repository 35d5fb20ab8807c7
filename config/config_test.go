package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "postgres://localhost:5432/app")
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	// Development mode relaxes the access-token TTL to a day.
	assert.Equal(t, 86400, cfg.AccessTokenTTLSec)
	assert.Equal(t, 630720000, cfg.RefreshTokenTTLSec)
}

func TestLoad_Production(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("ACCESS_TOKEN_TTL", "")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.Equal(t, 1200, cfg.AccessTokenTTLSec)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("ACCESS_TOKEN_TTL", "600")
	t.Setenv("REFRESH_TOKEN_TTL", "3600")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 600, cfg.AccessTokenTTLSec)
	assert.Equal(t, 3600, cfg.RefreshTokenTTLSec)
}

func TestLoad_InvalidTTLFallsBack(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-number")

	cfg := Load()

	assert.Equal(t, 1200, cfg.AccessTokenTTLSec)
}

func TestLoad_Secrets(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()

	assert.Equal(t, "access-secret", cfg.AccessTokenSecret)
	assert.Equal(t, "refresh-secret", cfg.RefreshTokenSecret)
	assert.Equal(t, "postgres://localhost:5432/app", cfg.DBURL)
}
