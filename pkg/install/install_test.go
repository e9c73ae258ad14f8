//go:build !integration

package install

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		manager string
		want    string
	}{
		{manager: "bun", want: "bun install"},
		{manager: "npm", want: "npm install"},
		{manager: "pnpm", want: "pnpm install"},
		{manager: "yarn", want: "yarn"},
	}

	for _, tt := range tests {
		t.Run(tt.manager, func(t *testing.T) {
			got, err := Command(tt.manager)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandUnknownManager(t *testing.T) {
	_, err := Command("deno")
	require.ErrorIs(t, err, ErrUnknownManager)
	assert.Contains(t, err.Error(), `"deno"`)
}

func TestRunUnknownManager(t *testing.T) {
	var stdout bytes.Buffer
	err := New(&stdout, &stdout).Run(context.Background(), t.TempDir(), "deno")
	require.ErrorIs(t, err, ErrUnknownManager)
	assert.Empty(t, stdout.String(), "nothing should be spawned")
}

func TestNewDefaultsToProcessStreams(t *testing.T) {
	i := New(nil, nil)
	assert.Equal(t, os.Stdout, i.Stdout)
	assert.Equal(t, os.Stderr, i.Stderr)
}

func TestRunRelaysOutputInDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o644))

	var stdout, stderr bytes.Buffer
	i := New(&stdout, &stderr)

	err := i.run(context.Background(), dir, "ls; echo warn 1>&2")
	require.NoError(t, err)
	assert.Equal(t, "package.json\n", stdout.String(), "command should run inside dir")
	assert.Equal(t, "warn\n", stderr.String())
}

func TestRunNonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}

	var stdout, stderr bytes.Buffer
	err := New(&stdout, &stderr).run(context.Background(), t.TempDir(), "echo boom 1>&2; exit 3")
	require.Error(t, err)

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
	assert.Equal(t, "boom\n", stderr.String())
}

func TestRunCancelled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell syntax")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(&out, &out).run(ctx, t.TempDir(), "echo never")
	assert.Error(t, err)
}
