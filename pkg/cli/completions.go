package cli

import (
	"strings"

	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/spf13/cobra"
)

var completionsLog = logger.New("cli:completions")

// ValidAPIVariants returns the build endpoint flavours for shell completion
func ValidAPIVariants() []string {
	return []string{string(constants.APIVariantCurrent), string(constants.APIVariantLegacy)}
}

// CompleteAPIVariants provides shell completion for the --api-variant flag
func CompleteAPIVariants(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	completionsLog.Printf("Completing API variants with prefix: %s", toComplete)

	var filtered []string
	for _, v := range ValidAPIVariants() {
		if toComplete == "" || strings.HasPrefix(v, toComplete) {
			filtered = append(filtered, v)
		}
	}
	return filtered, cobra.ShellCompDirectiveNoFileComp
}

// CompleteDirectories provides shell completion for directory paths
func CompleteDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	completionsLog.Printf("Completing directories with prefix: %s", toComplete)
	return nil, cobra.ShellCompDirectiveFilterDirs
}

// RegisterAPIVariantFlagCompletion registers completion for the --api-variant flag on a command
func RegisterAPIVariantFlagCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("api-variant", CompleteAPIVariants)
}

// RegisterDirFlagCompletion registers completion for directory-type flags on a command
func RegisterDirFlagCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, CompleteDirectories)
}
