package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shipkit/shipkit-cli/pkg/console"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/credentials"
	"github.com/shipkit/shipkit-cli/pkg/install"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/shipkit/shipkit-cli/pkg/provision"
	"github.com/spf13/cobra"
)

var newLog = logger.New("cli:new_command")

// NewConfig contains configuration for the new command
type NewConfig struct {
	OutputDir  string
	Timeout    string
	BaseURL    string
	APIVariant string
	DryRun     bool
	NoInstall  bool
	Verbose    bool
}

// NewNewCommand creates the new command
func NewNewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new project from a ShipKit kit",
		Long: `Create a new project from a ShipKit kit.

This command:
  1. Checks your ShipKit token, offering to reuse the saved one
  2. Asks for a project name and makes sure its folder does not exist yet
  3. Walks you through the stack: base framework, framework, ORM, database,
     auth provider, output target and package manager
  4. Downloads and extracts the kit into <output-dir>/<name>
  5. Optionally installs dependencies with the chosen package manager

Examples:
  ` + constants.CLIName + ` new                        # Create a project in the current directory
  ` + constants.CLIName + ` new -o ~/projects          # Create it somewhere else
  ` + constants.CLIName + ` new --timeout 5m           # Allow a slower download
  ` + constants.CLIName + ` new --dry-run              # Print the build request without sending it`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunNew(cmd.Context(), newConfigFromFlags(cmd))
		},
	}

	addNewFlags(cmd)
	return cmd
}

// addNewFlags registers the new command's flags on cmd. The root command
// shares them so that a bare invocation behaves like new.
func addNewFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output-dir", "o", "", "Directory the project folder is created in (default: $"+constants.EnvOutputDir+" or .)")
	cmd.Flags().String("timeout", "", "Download timeout such as 90s or 5m, 0 disables it (default: 2m)")
	cmd.Flags().String("base-url", "", "Build service URL (default: $"+constants.EnvBaseURL+" or "+constants.DefaultBaseURL+")")
	cmd.Flags().String("api-variant", "", "Build endpoint flavour: current or legacy")
	cmd.Flags().Bool("dry-run", false, "Print the build request body instead of downloading the kit")
	cmd.Flags().Bool("no-install", false, "Skip the dependency install step")

	RegisterDirFlagCompletion(cmd, "output-dir")
	RegisterAPIVariantFlagCompletion(cmd)
}

func newConfigFromFlags(cmd *cobra.Command) NewConfig {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	timeout, _ := cmd.Flags().GetString("timeout")
	baseURL, _ := cmd.Flags().GetString("base-url")
	variant, _ := cmd.Flags().GetString("api-variant")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noInstall, _ := cmd.Flags().GetBool("no-install")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return NewConfig{
		OutputDir:  outputDir,
		Timeout:    timeout,
		BaseURL:    baseURL,
		APIVariant: variant,
		DryRun:     dryRun,
		NoInstall:  noInstall,
		Verbose:    verbose,
	}
}

// RunNew runs the interactive provisioning workflow against the real
// terminal, keychain and build service.
func RunNew(ctx context.Context, config NewConfig) error {
	newLog.Printf("Running new: %+v", config)

	cfg, err := loadConfig(configOverrides{
		BaseURL:    config.BaseURL,
		OutputDir:  config.OutputDir,
		Timeout:    config.Timeout,
		APIVariant: config.APIVariant,
	})
	if err != nil {
		return err
	}
	console.LogVerbose(config.Verbose, fmt.Sprintf("Build service: %s (%s)", cfg.BaseURL, cfg.APIVariant))
	if cfg.Source != "" {
		console.LogVerbose(config.Verbose, "Config file: "+cfg.Source)
	}

	console.Banner(os.Stderr, "Welcome to ShipKit!", "Created by: Marcel Thomas")

	deps := provision.Deps{
		Prompter:  huhPrompter{},
		Store:     credentials.NewKeyringStore(cfg.Service),
		Builder:   newAPIClient(cfg),
		Installer: install.New(os.Stdout, os.Stderr),
		Status:    &spinnerStatus{},
		Out:       os.Stderr,
		Stdout:    os.Stdout,
	}
	opts := provision.Options{
		OutputDir:   cfg.OutputDir,
		Timeout:     cfg.Timeout,
		DryRun:      config.DryRun,
		SkipInstall: config.NoInstall,
	}
	return runWorkflow(ctx, deps, opts, config.Verbose, os.Stderr)
}

func runWorkflow(ctx context.Context, deps provision.Deps, opts provision.Options, verbose bool, stderr io.Writer) error {
	res := provision.New(deps, opts).Run(ctx)
	newLog.Printf("Workflow result: kind=%s", res.Kind)
	return resultError(res, verbose, stderr)
}

// resultError converts a workflow result into the command's error. Failures
// the workflow has not shown yet are printed here, so the returned
// *ExitError is never printed again.
func resultError(res provision.Result, verbose bool, stderr io.Writer) error {
	if res.OK() {
		if res.Destination != "" && !res.DryRun {
			console.LogVerbose(verbose, fmt.Sprintf("Project created at %s (%s archive)", res.Destination, console.FormatFileSize(res.ArchiveSize)))
		}
		return nil
	}

	switch {
	case res.Kind == provision.KindCancelled:
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, console.FormatWarningMessage("Cancelled"))
	case !res.Reported && res.Err != nil:
		fmt.Fprintln(stderr, console.FormatErrorMessage(res.Err.Error()))
	}
	if verbose && res.Err != nil {
		fmt.Fprintln(stderr, console.FormatVerboseMessage(fmt.Sprintf("%s: %v", res.Kind, res.Err)))
	}
	return &ExitError{Code: res.ExitCode(), Err: res.Err}
}
