package console

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var selectLog = logger.New("console:select")

// SelectOption is one entry of a select prompt. Disabled options are still
// shown, suffixed with Hint, but cannot be submitted.
type SelectOption struct {
	Label    string
	Value    string
	Disabled bool
	Hint     string
}

// PromptSelect asks the user to pick one option and returns its value.
func PromptSelect(title, description string, options []SelectOption) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no options provided for select prompt")
	}
	selectLog.Printf("Prompting select %q with %d options", title, len(options))
	if err := ensureTTY(); err != nil {
		return "", err
	}

	var selected string
	field := huh.NewSelect[string]().
		Title(title).
		Description(description).
		Options(toHuhOptions(options)...).
		Value(&selected).
		Validate(rejectDisabled(options))

	if err := huh.NewForm(huh.NewGroup(field)).WithAccessible(IsAccessibleMode()).Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func toHuhOptions(options []SelectOption) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(options))
	for _, opt := range options {
		out = append(out, huh.NewOption(optionLabel(opt), opt.Value))
	}
	return out
}

func optionLabel(opt SelectOption) string {
	if !opt.Disabled {
		return opt.Label
	}
	hint := opt.Hint
	if hint == "" {
		hint = "unavailable"
	}
	return FormatMutedMessage(fmt.Sprintf("%s (%s)", opt.Label, hint))
}

func rejectDisabled(options []SelectOption) func(string) error {
	return func(value string) error {
		for _, opt := range options {
			if opt.Value == value && opt.Disabled {
				if opt.Hint != "" {
					return fmt.Errorf("%s is %s", opt.Label, opt.Hint)
				}
				return fmt.Errorf("%s is not available", opt.Label)
			}
		}
		return nil
	}
}
