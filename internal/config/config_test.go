package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "DB_PATH", "APP_ENV", "CELL_SIZE", "JWT_EXPIRES_DAYS", "MAX_VIEWPORT_WIDTH", "MAX_VIEWPORT_HEIGHT"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./data/app.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.CellSize)
	assert.Equal(t, 14, cfg.JWTDays)
	assert.Equal(t, 7680, cfg.MaxViewport.Width)
	assert.Equal(t, 4320, cfg.MaxViewport.Height)
	assert.False(t, cfg.Production())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CELL_SIZE", "32")
	t.Setenv("APP_ENV", "production")
	t.Setenv("MAX_VIEWPORT_WIDTH", "1920")

	cfg := FromEnv()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 32, cfg.CellSize)
	assert.Equal(t, 1920, cfg.MaxViewport.Width)
	assert.True(t, cfg.Production())
}

func TestFromEnv_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("CELL_SIZE", "abc")
	t.Setenv("JWT_EXPIRES_DAYS", "-2")

	cfg := FromEnv()
	assert.Equal(t, 20, cfg.CellSize)
	assert.Equal(t, 14, cfg.JWTDays)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	if _, set := os.LookupEnv("MAX_VIEWPORT_HEIGHT"); set {
		t.Skip("MAX_VIEWPORT_HEIGHT already set in environment")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MAX_VIEWPORT_HEIGHT=1080\n"), 0o644))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Cleanup(func() { _ = os.Unsetenv("MAX_VIEWPORT_HEIGHT") })

	cfg := Load()
	assert.Equal(t, 1080, cfg.MaxViewport.Height)
}
