//go:build !integration

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/shipkit/shipkit-cli/pkg/config"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipkit", "config.yaml")
	var stderr bytes.Buffer

	require.NoError(t, runConfigInit(path, false, &stderr))
	assert.Contains(t, stderr.String(), "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var fc config.FileConfig
	require.NoError(t, yaml.Unmarshal(data, &fc))
	assert.Equal(t, "https://shipkit.app", fc.BaseURL)
	assert.Equal(t, "2m0s", fc.Timeout)
	assert.Equal(t, "current", fc.APIVariant)

	err = runConfigInit(path, false, &stderr)
	assert.ErrorContains(t, err, "already exists")

	require.NoError(t, os.WriteFile(path, []byte("base_url: http://x\n"), 0o644))
	require.NoError(t, runConfigInit(path, true, &stderr))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://shipkit.app", "--force should overwrite")
}

func TestConfigInitHonoursConfigEnv(t *testing.T) {
	dir := isolateConfig(t)
	path := filepath.Join(dir, "custom", "shipkit.yaml")
	t.Setenv(constants.EnvConfigFile, path)

	cmd := NewConfigCommand()
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source, "Load reads the file init wrote")
}

func TestRunConfigShow(t *testing.T) {
	cfg := config.Default()
	cfg.OutputDir = "projects"
	var stdout, stderr bytes.Buffer

	require.NoError(t, runConfigShow(cfg, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "base_url: https://shipkit.app")
	assert.Contains(t, stdout.String(), "output_dir: projects")
	assert.Contains(t, stderr.String(), "No config file found")

	cfg.Source = "/etc/shipkit.yaml"
	stderr.Reset()
	require.NoError(t, runConfigShow(cfg, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "/etc/shipkit.yaml")
}
