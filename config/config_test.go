package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiry)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiry)
	assert.Equal(t, 10, cfg.DB.MaxIdleConns)
	assert.Equal(t, 100, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nJWT_SECRET=from-file\nDB_NAME=clinic\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	t.Setenv("DB_NAME", "from-env")

	cfg, err := load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "from-file", cfg.JWT.Secret)
	assert.Equal(t, "from-env", cfg.DB.Name)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.DB.DSN(), "dbname=from-env")
	assert.Contains(t, cfg.DB.DSN(), "TimeZone=UTC")
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := load(filepath.Join(t.TempDir(), "missing.env"))
	assert.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadRejectsBadExpiry(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("JWT_ACCESS_EXPIRY", "soon")

	_, err := load(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "JWT_ACCESS_EXPIRY")
}
