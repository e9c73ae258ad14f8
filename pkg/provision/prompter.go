package provision

import (
	"context"
	"errors"
)

// ErrCancelled is returned by a Prompter when the user aborts a prompt.
var ErrCancelled = errors.New("cancelled by user")

// Choice is one option of a select prompt. Disabled choices are shown with
// Hint but must not be accepted.
type Choice struct {
	Label    string
	Value    string
	Disabled bool
	Hint     string
}

// Prompter asks the user questions. Implementations return ErrCancelled
// (possibly wrapped) when the user aborts.
type Prompter interface {
	Confirm(title string) (bool, error)
	Input(title, defaultValue string, validate func(string) error) (string, error)
	Secret(title string) (string, error)
	Select(title string, choices []Choice) (string, error)
}

// Builder is the remote build service.
type Builder interface {
	IsValidToken(ctx context.Context, token string) bool
	DownloadArchive(ctx context.Context, token string, body any, dest string) (int64, error)
}

// Installer installs the project's dependencies.
type Installer interface {
	Run(ctx context.Context, dir, manager string) error
}

// Status shows progress of a long-running step.
type Status interface {
	Start(message string)
	Update(message string)
	Stop()
}

type nopStatus struct{}

func (nopStatus) Start(string)  {}
func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}
