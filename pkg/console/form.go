package console

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// FormField describes one field of a multi-field form. Value must be a
// *string for input, password and select fields and a *bool for confirm.
type FormField struct {
	Type        string // input, password, confirm, select
	Title       string
	Description string
	Placeholder string
	Value       any
	Options     []SelectOption
	Validate    func(string) error
}

// RunForm renders all fields as a single form group.
func RunForm(fields []FormField) error {
	if len(fields) == 0 {
		return errors.New("no form fields provided")
	}

	huhFields := make([]huh.Field, 0, len(fields))
	for _, f := range fields {
		field, err := buildField(f)
		if err != nil {
			return err
		}
		huhFields = append(huhFields, field)
	}

	if err := ensureTTY(); err != nil {
		return err
	}
	return huh.NewForm(huh.NewGroup(huhFields...)).WithAccessible(IsAccessibleMode()).Run()
}

func buildField(f FormField) (huh.Field, error) {
	switch f.Type {
	case "input", "password":
		ptr, ok := f.Value.(*string)
		if !ok {
			return nil, fmt.Errorf("%s field %q requires a *string value", f.Type, f.Title)
		}
		input := huh.NewInput().
			Title(f.Title).
			Description(f.Description).
			Placeholder(f.Placeholder).
			Value(ptr)
		if f.Type == "password" {
			input = input.EchoMode(huh.EchoModePassword)
		}
		if f.Validate != nil {
			input = input.Validate(f.Validate)
		}
		return input, nil
	case "confirm":
		ptr, ok := f.Value.(*bool)
		if !ok {
			return nil, fmt.Errorf("confirm field %q requires a *bool value", f.Title)
		}
		return huh.NewConfirm().Title(f.Title).Description(f.Description).Value(ptr), nil
	case "select":
		if len(f.Options) == 0 {
			return nil, fmt.Errorf("select field %q requires options", f.Title)
		}
		ptr, ok := f.Value.(*string)
		if !ok {
			return nil, fmt.Errorf("select field %q requires a *string value", f.Title)
		}
		return huh.NewSelect[string]().
			Title(f.Title).
			Description(f.Description).
			Options(toHuhOptions(f.Options)...).
			Value(ptr).
			Validate(rejectDisabled(f.Options)), nil
	default:
		return nil, fmt.Errorf("unknown field type %q", f.Type)
	}
}
