package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp runs the test from a scratch directory with the given .env
// contents, so the repository's own .env never leaks into assertions.
func chdirTemp(t *testing.T, dotenv string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))

	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t, "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, "calclone", cfg.Database.Name)
	assert.Equal(t, "Asia/Kolkata", cfg.Scheduling.DefaultTimezone)
	assert.Equal(t, time.Minute, cfg.Slots.CacheTTL)
	assert.True(t, cfg.Notifications.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t, "")
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_TIMEZONE", "Europe/Berlin")
	t.Setenv("SLOT_CACHE_ENABLED", "true")
	t.Setenv("SLOT_CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "Europe/Berlin", cfg.Scheduling.DefaultTimezone)
	assert.True(t, cfg.Slots.CacheEnabled)
	assert.Equal(t, 30*time.Second, cfg.Slots.CacheTTL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadDotenvFile(t *testing.T) {
	chdirTemp(t, "PORT=7070\nDB_NAME=calclone_test\n")
	// godotenv exports the file into the process environment; undo it.
	t.Cleanup(func() {
		_ = os.Unsetenv("PORT")
		_ = os.Unsetenv("DB_NAME")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "calclone_test", cfg.Database.Name)
}

func TestParseDurationFallback(t *testing.T) {
	assert.Equal(t, time.Minute, parseDuration("", time.Minute))
	assert.Equal(t, time.Minute, parseDuration("bogus", time.Minute))
	assert.Equal(t, 90*time.Second, parseDuration("90s", time.Minute))
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a , b ,"))
}
