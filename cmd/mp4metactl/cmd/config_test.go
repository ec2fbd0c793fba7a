package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mp4metactl.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
artwork_dir = "/tmp/covers"
log_level = "debug"
`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/covers", cfg.ArtworkDir)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, defaultConfig().ArtworkDir, cfg.ArtworkDir)
	require.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfigBadFile(t *testing.T) {
	path := writeConfig(t, `log_level = [`)

	_, err := loadConfig(path)
	require.Error(t, err)
}
