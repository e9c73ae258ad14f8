package console

import (
	"github.com/charmbracelet/huh"
	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var inputLog = logger.New("console:input")

// PromptInput asks for a single line of text.
func PromptInput(title, description, placeholder string) (string, error) {
	return PromptInputWithValidation(title, description, placeholder, nil)
}

// PromptInputWithValidation asks for a single line of text and re-prompts
// until validate accepts it. A nil validator accepts anything.
func PromptInputWithValidation(title, description, placeholder string, validate func(string) error) (string, error) {
	return promptInput(title, description, placeholder, "", validate)
}

// PromptInputWithDefault is PromptInputWithValidation with a pre-filled value.
func PromptInputWithDefault(title, description, defaultValue string, validate func(string) error) (string, error) {
	return promptInput(title, description, defaultValue, defaultValue, validate)
}

func promptInput(title, description, placeholder, initial string, validate func(string) error) (string, error) {
	inputLog.Printf("Prompting for input: %s", title)
	if err := ensureTTY(); err != nil {
		return "", err
	}

	value := initial
	field := huh.NewInput().
		Title(title).
		Description(description).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		field = field.Validate(validate)
	}

	if err := huh.NewForm(huh.NewGroup(field)).WithAccessible(IsAccessibleMode()).Run(); err != nil {
		return "", err
	}
	return value, nil
}

// PromptSecretInput asks for a value without echoing it.
func PromptSecretInput(title, description string) (string, error) {
	inputLog.Printf("Prompting for secret input: %s", title)
	if err := ensureTTY(); err != nil {
		return "", err
	}

	var value string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).WithAccessible(IsAccessibleMode())

	if err := form.Run(); err != nil {
		return "", err
	}
	return value, nil
}
