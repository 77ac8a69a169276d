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

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 5050, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)

	assert.Equal(t, "BosphorusFellasAPI", cfg.Security.JWTIssuer)
	assert.Equal(t, "BosphorusFellasAPI", cfg.Security.JWTAudience)
	assert.Equal(t, time.Hour, cfg.Security.TokenTTL)
	assert.Equal(t, "123456", cfg.Security.TempMemberPassword)
	assert.Equal(t, 10, cfg.Security.LoginAttemptLimit)
	assert.Equal(t, 15*time.Minute, cfg.Security.LoginAttemptWindow)

	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxFileSize)
	assert.Equal(t, []string{"profile_photos", "events", "news", "sponsors"}, cfg.Upload.Folders)

	assert.Equal(t, "club-media", cfg.Storage.Bucket)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BFELLAS_ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
}
