package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shipkit/shipkit-cli/pkg/console"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/credentials"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/spf13/cobra"
)

var tokenLog = logger.New("cli:token_command")

// tokenValidator is the part of the API client the token commands use.
type tokenValidator interface {
	IsValidToken(ctx context.Context, token string) bool
}

// tokenEnv bundles what the token subcommands operate on.
type tokenEnv struct {
	store     credentials.Store
	validator tokenValidator
	out       io.Writer
}

func newTokenEnv(baseURL string) (tokenEnv, error) {
	cfg, err := loadConfig(configOverrides{BaseURL: baseURL})
	if err != nil {
		return tokenEnv{}, err
	}
	return tokenEnv{
		store:     credentials.NewKeyringStore(cfg.Service),
		validator: newAPIClient(cfg),
		out:       os.Stderr,
	}, nil
}

// NewTokenCommand creates the token command group
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the saved ShipKit token",
		Long: `Manage the ShipKit token kept in your OS keychain.

Examples:
  ` + constants.CLIName + ` token status        # Show whether a valid token is saved
  ` + constants.CLIName + ` token set           # Enter and save a new token
  ` + constants.CLIName + ` token remove        # Forget the saved token`,
	}
	cmd.PersistentFlags().String("base-url", "", "Build service URL used to check the token")

	cmd.AddCommand(
		newTokenSetSubcommand(),
		newTokenRemoveSubcommand(),
		newTokenStatusSubcommand(),
	)
	return cmd
}

func newTokenSetSubcommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Validate and save a ShipKit token",
		Long: `Validate a ShipKit token and save it in the OS keychain.

The token is read from --token, from $SHIPKIT_TOKEN, or asked for
interactively with a masked prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, _ := cmd.Flags().GetString("base-url")
			flagToken, _ := cmd.Flags().GetString("token")

			env, err := newTokenEnv(baseURL)
			if err != nil {
				return err
			}
			token, err := resolveTokenValue(flagToken)
			if err != nil {
				return err
			}
			return runTokenSet(cmd.Context(), env, token)
		},
	}
	cmd.Flags().String("token", "", "Token value (prompted for when omitted)")
	return cmd
}

func newTokenRemoveSubcommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove",
		Short: "Delete the saved ShipKit token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, _ := cmd.Flags().GetString("base-url")
			env, err := newTokenEnv(baseURL)
			if err != nil {
				return err
			}
			runTokenRemove(env)
			return nil
		},
	}
}

func newTokenStatusSubcommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a valid ShipKit token is saved",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			baseURL, _ := cmd.Flags().GetString("base-url")
			env, err := newTokenEnv(baseURL)
			if err != nil {
				return err
			}
			return runTokenStatus(cmd.Context(), env)
		},
	}
}

// resolveTokenValue picks the token from the flag, the environment or an
// interactive form, in that order.
func resolveTokenValue(fromFlag string) (string, error) {
	if v := strings.TrimSpace(fromFlag); v != "" {
		return v, nil
	}
	if v := strings.TrimSpace(os.Getenv(constants.EnvToken)); v != "" {
		tokenLog.Printf("Using token from %s", constants.EnvToken)
		return v, nil
	}

	var token string
	err := console.RunForm([]console.FormField{{
		Type:        "password",
		Title:       "Enter your ShipKit token",
		Description: "It is checked against the build service and saved in your OS keychain",
		Value:       &token,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("token cannot be empty")
			}
			return nil
		},
	}})
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(token), nil
}

func runTokenSet(ctx context.Context, env tokenEnv, token string) error {
	tokenLog.Print("Validating token before saving")
	if !env.validator.IsValidToken(ctx, token) {
		fmt.Fprintln(env.out, console.FormatErrorMessage("Invalid token"))
		return &ExitError{Code: 1, Err: errors.New("invalid token")}
	}
	if err := env.store.Set(token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	fmt.Fprintln(env.out, console.FormatSuccessMessage("Token saved ("+maskToken(token)+")"))
	return nil
}

func runTokenRemove(env tokenEnv) {
	if env.store.Remove() {
		fmt.Fprintln(env.out, console.FormatSuccessMessage("Token removed"))
		return
	}
	fmt.Fprintln(env.out, console.FormatInfoMessage("No token saved"))
}

func runTokenStatus(ctx context.Context, env tokenEnv) error {
	token, ok := env.store.Get()
	if !ok {
		fmt.Fprintln(env.out, console.FormatInfoMessage("No token saved"))
		fmt.Fprintln(env.out, "Run "+console.FormatCommandMessage(constants.CLIName+" token set")+" to save one.")
		return &ExitError{Code: 1, Err: errors.New("no token saved")}
	}
	if !env.validator.IsValidToken(ctx, token) {
		fmt.Fprintln(env.out, console.FormatWarningMessage("Saved token "+maskToken(token)+" is no longer valid"))
		return &ExitError{Code: 1, Err: errors.New("saved token is invalid")}
	}
	fmt.Fprintln(env.out, console.FormatSuccessMessage("Saved token "+maskToken(token)+" is valid"))
	return nil
}

// maskToken keeps the first and last four characters of long tokens.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "…" + token[len(token)-4:]
}
