package cli

import (
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the shipkit command tree. Running it without a
// subcommand starts the new workflow.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   constants.CLIName,
		Short: "Create full-stack projects from ShipKit kits",
		Long: `ShipKit builds a ready-to-run project from the stack you pick.

Run without a subcommand to start creating a project. The token you enter is
kept in your OS keychain and offered again next time.

Quick start:
  1. Create a project:     ` + constants.CLIName + `
  2. Manage your token:    ` + constants.CLIName + ` token status
  3. Persist defaults:     ` + constants.CLIName + ` config init`,
		Version:       GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunNew(cmd.Context(), newConfigFromFlags(cmd))
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	addNewFlags(cmd)

	cmd.AddCommand(
		NewNewCommand(),
		NewTokenCommand(),
		NewConfigCommand(),
		NewVersionCommand(),
	)
	return cmd
}
