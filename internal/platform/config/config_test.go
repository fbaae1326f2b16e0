package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"HMIS_DATABASE_URL", "HMIS_REDIS_URL", "HMIS_LOG_LEVEL", "HMIS_LOG_FORMAT",
		"HMIS_INTERACTIVE", "HMIS_STRONG_MATCHING", "HMIS_LOCK_TTL", "HMIS_TX_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Minute, cfg.LockTTL)
	assert.Zero(t, cfg.TxTimeout)
	assert.False(t, cfg.Interactive)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HMIS_DATABASE_URL", "postgres://localhost/hmis")
	t.Setenv("HMIS_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("HMIS_INTERACTIVE", "true")
	t.Setenv("HMIS_STRONG_MATCHING", "1")
	t.Setenv("HMIS_LOCK_TTL", "5m")
	t.Setenv("HMIS_TX_TIMEOUT", "90s")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/hmis", cfg.DatabaseURL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.True(t, cfg.Interactive)
	assert.True(t, cfg.StrongMatching)
	assert.Equal(t, 5*time.Minute, cfg.LockTTL)
	assert.Equal(t, 90*time.Second, cfg.TxTimeout)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Run("bool", func(t *testing.T) {
		t.Setenv("HMIS_INTERACTIVE", "maybe")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "HMIS_INTERACTIVE")
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("HMIS_INTERACTIVE", "")
		t.Setenv("HMIS_LOCK_TTL", "soon")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "HMIS_LOCK_TTL")
	})
}
