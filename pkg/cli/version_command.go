package cli

import (
	"fmt"

	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the " + constants.CLIName + " version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", constants.CLIName, GetVersion())
			return err
		},
	}
}
