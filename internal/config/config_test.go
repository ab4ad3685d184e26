package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EnvironmentOverrideWins(t *testing.T) {
	t.Setenv(EnvResourcesDir, "/srv/agentry-resources")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/agentry-resources", cfg.ResourcesDir)
}

func TestLoad_ExpandsHomeShorthandFromEnv(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv(EnvResourcesDir, "~/resources")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "resources"), cfg.ResourcesDir)
}

func TestLoadFrom(t *testing.T) {
	t.Run("valid config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "resources_dir: /data/resources\nversion: \"1.0\"\ninit_time: 1700000000\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := LoadFrom(path)
		require.NoError(t, err)
		assert.Equal(t, "/data/resources", cfg.ResourcesDir)
		assert.Equal(t, "1.0", cfg.Version)
		assert.Equal(t, int64(1700000000), cfg.InitTime)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte(":\n\t- broken"), 0600))

		_, err := LoadFrom(path)
		assert.Error(t, err)
	})
}

func TestSaveTo_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.ResourcesDir = "/data/resources"
	require.NoError(t, cfg.SaveTo(path))

	assert.NotZero(t, cfg.InitTime, "first save should stamp init time")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.ResourcesDir, loaded.ResourcesDir)
	assert.Equal(t, cfg.InitTime, loaded.InitTime)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.ResourcesDir)
	assert.Equal(t, "1.0", cfg.Version)
	assert.Zero(t, cfg.InitTime)
}
