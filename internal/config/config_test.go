package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost user=test dbname=test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("ACCESS_TOKEN_TTL_HOURS", "")
	t.Setenv("REFRESH_TOKEN_TTL_HOURS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 168*time.Hour, cfg.RefreshTokenTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_DSN", "host=localhost user=test dbname=test")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "8080")
	t.Setenv("ACCESS_TOKEN_TTL_HOURS", "2")
	t.Setenv("REFRESH_TOKEN_TTL_HOURS", "72")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 72*time.Hour, cfg.RefreshTokenTTL)
}

func TestLoadRequiredSettings(t *testing.T) {
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_DSN", "host=localhost user=test dbname=test")
	t.Setenv("JWT_SECRET", "")

	_, err = Load()
	assert.Error(t, err)
}

func TestParseHoursIgnoresGarbage(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseHours("abc"))
	assert.Equal(t, time.Duration(0), parseHours("-3"))
	assert.Equal(t, time.Duration(0), parseHours(""))
	assert.Equal(t, 5*time.Hour, parseHours("5"))
}
