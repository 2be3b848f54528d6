package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/project-sync-web/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := config.New("")
	require.NoError(t, err)

	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.True(t, c.IsDev())
	require.Equal(t, "http://localhost:5000/api", c.GetBackendURL())
	require.Equal(t, 10*time.Second, c.GetRestoreTimeout())
	require.Empty(t, c.GetTokenCachePath())
	require.Empty(t, c.GetAllowedOrigins())
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PROJECT_SYNC_PORT", "9090")
	t.Setenv("PROJECT_SYNC_ENV", "prod")
	t.Setenv("PROJECT_SYNC_BACKEND_URL", "https://api.example.com/api/")
	t.Setenv("PROJECT_SYNC_SESSION_RESTORE_TIMEOUT", "3s")
	t.Setenv("PROJECT_SYNC_CORS_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	c, err := config.New("")
	require.NoError(t, err)

	require.Equal(t, ":9090", c.GetPort())
	require.Equal(t, "PROD", c.GetEnv())
	require.False(t, c.IsDev())
	require.Equal(t, "https://api.example.com/api", c.GetBackendURL())
	require.Equal(t, 3*time.Second, c.GetRestoreTimeout())
	require.True(t, c.GetAllowedOrigins().IsAllowedOrigin("https://b.example.com"))
	require.False(t, c.GetAllowedOrigins().IsAllowedOrigin("https://c.example.com"))
}

func TestNew_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projectsync.yaml")
	yaml := []byte("backend:\n  url: http://backend.internal:5000/api\nsession:\n  token_cache_path: /tmp/ps-token\n  token_cache_secret: s3cret\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	c, err := config.New(path)
	require.NoError(t, err)

	require.Equal(t, "http://backend.internal:5000/api", c.GetBackendURL())
	require.Equal(t, "/tmp/ps-token", c.GetTokenCachePath())
	require.Equal(t, "s3cret", c.GetTokenCacheSecret())
}

func TestNew_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("backend url not a url", func(t *testing.T) {
		t.Setenv("PROJECT_SYNC_BACKEND_URL", "not a url")
		_, err := config.New("")
		require.Error(t, err)
	})

	t.Run("cache path without secret", func(t *testing.T) {
		t.Setenv("PROJECT_SYNC_SESSION_TOKEN_CACHE_PATH", "/tmp/token")
		_, err := config.New("")
		require.Error(t, err)
		require.Contains(t, err.Error(), "token_cache_secret")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := config.New(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})
}
