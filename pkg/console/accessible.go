package console

import (
	"errors"
	"os"

	"github.com/shipkit/shipkit-cli/pkg/tty"
)

// errNotTTY is returned by every prompt when stdin is not a terminal.
var errNotTTY = errors.New("not a TTY: interactive prompts need a terminal on stdin")

// IsAccessibleMode reports whether prompts should render in huh's accessible
// mode, which trades the full-screen UI for plain line-based questions.
func IsAccessibleMode() bool {
	return os.Getenv("ACCESSIBLE") != "" || os.Getenv("TERM") == "dumb"
}

func ensureTTY() error {
	if !tty.IsStdinTerminal() {
		return errNotTTY
	}
	return nil
}
