package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Mode)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, slog.LevelInfo, cfg.Log.SlogLevel())
	assert.Equal(t, "text", cfg.Log.SlogFormat())
	assert.Equal(t, defaultDatabase(), cfg.DB)
}

func TestLoadFromNilSnapshotIgnoresProcessEnvironment(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("DB_HOST", "from-process-env")

	cfg, err := LoadFrom(nil)
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Mode)
	assert.Equal(t, uint16(8080), cfg.HTTP.Port)
	assert.Equal(t, defaultDatabase(), cfg.DB)
}

func TestLoadFromSections(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"NODE_ENV":    "development",
		"HTTP_PORT":   "9090",
		"LOG_LEVEL":   "debug",
		"LOG_FORMAT":  "JSON",
		"DB_HOST":     "db",
		"DB_DATABASE": "app",
	})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Mode)
	assert.Equal(t, uint16(9090), cfg.HTTP.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
	assert.Equal(t, "json", cfg.Log.SlogFormat())
	assert.Equal(t, "db", cfg.DB.Host)
	assert.Equal(t, "app", cfg.DB.Database)
	assert.True(t, cfg.DB.Synchronize)
	assert.True(t, cfg.DB.Logging)
}

func TestLoadFromInvalidHTTPPort(t *testing.T) {
	_, err := LoadFrom(map[string]string{"HTTP_PORT": "eighty"})
	assert.Error(t, err)
}

func TestLoadFromInvalidDBPortDoesNotFail(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"DB_PORT": "eighty"})
	require.NoError(t, err)
	assert.Equal(t, 5432, cfg.DB.Port)
}

func TestEnvironOverlaysDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DotEnvFile),
		[]byte("DB_HOST=from-file\nDB_DATABASE=filedb\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("DB_HOST", "from-process")

	environ, err := Environ()
	require.NoError(t, err)
	assert.Equal(t, "from-process", environ["DB_HOST"])
	assert.Equal(t, "filedb", environ["DB_DATABASE"])

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-process", cfg.DB.Host)
	assert.Equal(t, "filedb", cfg.DB.Database)
}

func TestEnvironWithoutDotEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_USERNAME", "proc")

	environ, err := Environ()
	require.NoError(t, err)
	assert.Equal(t, "proc", environ["DB_USERNAME"])
}
