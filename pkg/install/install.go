// Package install runs a package manager's install command inside a freshly
// extracted project.
package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/shipkit/shipkit-cli/pkg/catalog"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/sourcegraph/conc"
)

var installLog = logger.New("install:install")

// ErrUnknownManager is returned for a package manager with no install
// command.
var ErrUnknownManager = errors.New("unknown package manager")

// Command returns the install command for manager.
func Command(manager string) (string, error) {
	cmd, ok := catalog.InstallCommand(manager)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownManager, manager)
	}
	return cmd, nil
}

// Installer runs install commands, relaying the child's output as it is
// produced.
type Installer struct {
	Stdout io.Writer
	Stderr io.Writer
}

// New returns an Installer writing to stdout and stderr. Nil writers fall
// back to the process's own streams.
func New(stdout, stderr io.Writer) *Installer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Installer{Stdout: stdout, Stderr: stderr}
}

// Run executes manager's install command with dir as the working directory.
// It returns nil when the command exits with status 0.
func (i *Installer) Run(ctx context.Context, dir, manager string) error {
	command, err := Command(manager)
	if err != nil {
		return err
	}
	return i.run(ctx, dir, command)
}

func (i *Installer) run(ctx context.Context, dir, command string) error {
	installLog.Printf("Running %q in %s", command, dir)

	cmd := shellCommand(ctx, command)
	cmd.Dir = dir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("attach stdout: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("attach stderr: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q: %w", command, err)
	}

	// Both pipes must be drained before Wait closes them.
	var wg conc.WaitGroup
	wg.Go(func() { relay(i.Stdout, stdout) })
	wg.Go(func() { relay(i.Stderr, stderr) })
	wg.Wait()

	if err := cmd.Wait(); err != nil {
		installLog.Printf("Install command failed: %v", err)
		return fmt.Errorf("%q failed: %w", command, err)
	}
	installLog.Print("Install command finished")
	return nil
}

func relay(dst io.Writer, src io.Reader) {
	if _, err := io.Copy(dst, src); err != nil {
		installLog.Printf("Output relay stopped: %v", err)
	}
}

func shellCommand(ctx context.Context, command string) *exec.Cmd {
	if runtime.GOOS == "windows" {
		return exec.CommandContext(ctx, "cmd", "/C", command)
	}
	return exec.CommandContext(ctx, "sh", "-c", command)
}
