package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/artgrid/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLI(t, nil)
	path := filepath.Join(home, "config.yaml")

	out, _, err := execCLI(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)
	require.FileExists(t, path)

	_, _, err = execCLI(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("api:\n  page_size: 50\n"), 0o600))
	_, _, err = execCLI(t, "config", "init", "--force")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 12")
}

func TestConfigSetGet(t *testing.T) {
	home := setupCLI(t, nil)

	out, _, err := execCLI(t, "config", "set", "api.page_size", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Set api.page_size = 25")

	out, _, err = execCLI(t, "config", "get", "api.page_size")
	require.NoError(t, err)
	assert.Equal(t, "25\n", out)

	data, err := os.ReadFile(filepath.Join(home, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "page_size: 25")
	assert.NotContains(t, string(data), "requests_per_second: 1000", "environment overrides must not be saved")

	out, _, err = execCLI(t, "config", "get", "api.requests_per_second")
	require.NoError(t, err)
	assert.Equal(t, "1000\n", out, "get reports the effective value")
}

func TestConfigSet_Errors(t *testing.T) {
	setupCLI(t, nil)

	_, _, err := execCLI(t, "config", "set", "api.colour", "red")
	require.ErrorIs(t, err, config.ErrUnknownKey)

	_, _, err = execCLI(t, "config", "set", "api.page_size", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an integer")

	_, _, err = execCLI(t, "config", "set", "api.page_size", "0")
	require.ErrorIs(t, err, config.ErrInvalidPageSize)

	_, _, err = execCLI(t, "config", "get", "nope")
	require.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigList(t *testing.T) {
	setupCLI(t, nil)

	out, _, err := execCLI(t, "config", "list")
	require.NoError(t, err)
	for _, key := range config.Keys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, "cache.enabled")
}

func TestConfigValidate(t *testing.T) {
	setupCLI(t, nil)

	out, _, err := execCLI(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	t.Setenv("ARTGRID_API_BURST", "0")
	_, _, err = execCLI(t, "config", "validate")
	require.ErrorIs(t, err, config.ErrInvalidBurst)
}

func TestRoot_ConfigFlag(t *testing.T) {
	home := setupCLI(t, nil)

	_, _, err := execCLI(t, "--config", filepath.Join(home, "missing.yaml"), "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")

	custom := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(custom, []byte("api:\n  page_size: 40\n  base_url: https://example.test/api/v1\n"), 0o600))
	out, _, err := execCLI(t, "--config", custom, "config", "get", "api.page_size")
	require.NoError(t, err)
	assert.Equal(t, "40\n", out)
}
