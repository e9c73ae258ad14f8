package console

import "github.com/charmbracelet/huh"

// ConfirmAction asks a yes/no question with custom button labels.
func ConfirmAction(title, affirmative, negative string) (bool, error) {
	if err := ensureTTY(); err != nil {
		return false, err
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative(negative).
				Value(&confirmed),
		),
	).WithAccessible(IsAccessibleMode())

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
