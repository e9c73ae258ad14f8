//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config file at a temp dir and runs from an empty
// working directory so no real .env or user config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv(constants.EnvConfigFile, filepath.Join(dir, "config.yaml"))
	for _, key := range []string{constants.EnvBaseURL, constants.EnvOutputDir, constants.EnvService, constants.EnvTimeout, constants.EnvAPIVariant} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, constants.DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, constants.DefaultService, cfg.Service)
	assert.Equal(t, constants.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, constants.APIVariantCurrent, cfg.APIVariant)
	assert.Empty(t, cfg.Source)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := isolate(t)

	require.NoError(t, Save(filepath.Join(dir, "config.yaml"), FileConfig{
		BaseURL:    "https://staging.shipkit.app/",
		OutputDir:  "/tmp/projects",
		Service:    "shipkit-staging",
		Timeout:    "30s",
		APIVariant: "legacy",
	}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://staging.shipkit.app", cfg.BaseURL, "trailing slash should be trimmed")
	assert.Equal(t, "/tmp/projects", cfg.OutputDir)
	assert.Equal(t, "shipkit-staging", cfg.Service)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, constants.APIVariantLegacy, cfg.APIVariant)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), cfg.Source)

	t.Setenv(constants.EnvBaseURL, "http://localhost:3000")
	t.Setenv(constants.EnvTimeout, "0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL, "environment should override the file")
	assert.Zero(t, cfg.Timeout, "0 disables the timeout")
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SHIPKIT_OUTPUT_DIR=./out\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "./out", cfg.OutputDir)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{name: "relative base URL", key: constants.EnvBaseURL, value: "shipkit.app", wantErr: "absolute http(s) URL"},
		{name: "bad timeout", key: constants.EnvTimeout, value: "soon", wantErr: "invalid timeout"},
		{name: "negative timeout", key: constants.EnvTimeout, value: "-1s", wantErr: "must not be negative"},
		{name: "unknown variant", key: constants.EnvAPIVariant, value: "v3", wantErr: "api variant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("base_url: [unterminated\n"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}
