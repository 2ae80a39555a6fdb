package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	assert.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)

	// Subsequent calls return the same instance.
	assert.Same(t, cfg, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, cfg, GetGlobalConfig())
}

func TestSetGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Cleanup(ResetGlobalConfigForTest)

	custom := Default()
	custom.API.PageSize = 50
	SetGlobalConfig(custom)
	assert.Same(t, custom, GetGlobalConfig())

	// Clearing falls back to lazy initialization.
	SetGlobalConfig(nil)
	got := GetGlobalConfig()
	require.NotNil(t, got)
	assert.Equal(t, DefaultPageSize, got.API.PageSize)
}

func TestGetOutputFormat(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	assert.Equal(t, "table", GetOutputFormat(""))
	assert.Equal(t, "json", GetOutputFormat("json"))

	GetGlobalConfig().Output.DefaultFormat = "ndjson"
	assert.Equal(t, "ndjson", GetOutputFormat(""))
}

func TestGetConfigDir(t *testing.T) {
	t.Run("environment override", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(EnvHome, home)

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, home, dir)
	})

	t.Run("under user home", func(t *testing.T) {
		tmpHome := t.TempDir()
		t.Setenv(EnvHome, "")
		t.Setenv("HOME", tmpHome)
		t.Setenv("USERPROFILE", tmpHome) // Windows uses USERPROFILE

		dir, err := GetConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tmpHome, ".artgrid"), dir)
	})
}

func TestEnsureConfigDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "artgrid")
	t.Setenv(EnvHome, home)

	require.NoError(t, EnsureConfigDir())

	stat, err := os.Stat(home)
	require.NoError(t, err)
	assert.True(t, stat.IsDir())
}

func TestEnsureLogDir(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvHome, tmpDir)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	cfg.Logging.File = filepath.Join(tmpDir, "logs", "subdir", "test.log")
	require.NoError(t, EnsureLogDir())

	stat, err := os.Stat(filepath.Join(tmpDir, "logs", "subdir"))
	require.NoError(t, err)
	assert.True(t, stat.IsDir())

	// No log file means nothing to create.
	cfg.Logging.File = ""
	require.NoError(t, EnsureLogDir())
}

func TestEnsureLogDirError(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv(EnvHome, tmpDir)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	// A regular file where a directory is expected.
	blocker := filepath.Join(tmpDir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	GetGlobalConfig().Logging.File = filepath.Join(blocker, "subdir", "test.log")
	assert.Error(t, EnsureLogDir())
}
