package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/shipkit/shipkit-cli/pkg/console"
	"github.com/shipkit/shipkit-cli/pkg/provision"
)

// huhPrompter answers provision prompts with the console package's huh
// forms.
type huhPrompter struct{}

func (huhPrompter) Confirm(title string) (bool, error) {
	ok, err := console.ConfirmAction(title, "Yes", "No")
	return ok, mapPromptError(err)
}

func (huhPrompter) Input(title, defaultValue string, validate func(string) error) (string, error) {
	v, err := console.PromptInputWithDefault(title, "", defaultValue, validate)
	if err != nil {
		return "", mapPromptError(err)
	}
	if v == "" {
		v = defaultValue
	}
	return v, nil
}

func (huhPrompter) Secret(title string) (string, error) {
	v, err := console.PromptSecretInput(title, "")
	return v, mapPromptError(err)
}

func (huhPrompter) Select(title string, choices []provision.Choice) (string, error) {
	options := make([]console.SelectOption, 0, len(choices))
	for _, c := range choices {
		options = append(options, console.SelectOption{
			Label:    c.Label,
			Value:    c.Value,
			Disabled: c.Disabled,
			Hint:     c.Hint,
		})
	}
	v, err := console.PromptSelect(title, "", options)
	return v, mapPromptError(err)
}

// mapPromptError turns huh's abort into provision.ErrCancelled so the
// workflow reports a cancellation rather than a failure.
func mapPromptError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("%w: %w", provision.ErrCancelled, err)
	}
	return err
}

// spinnerStatus shows workflow progress with a console.Spinner.
type spinnerStatus struct {
	spinner *console.Spinner
}

func (s *spinnerStatus) Start(message string) {
	s.Stop()
	s.spinner = console.NewSpinner(message)
	s.spinner.Start()
}

func (s *spinnerStatus) Update(message string) {
	if s.spinner == nil {
		s.Start(message)
		return
	}
	s.spinner.UpdateMessage(message)
}

func (s *spinnerStatus) Stop() {
	if s.spinner != nil {
		s.spinner.Stop()
		s.spinner = nil
	}
}
