package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/shipkit/shipkit-cli/pkg/config"
	"github.com/shipkit/shipkit-cli/pkg/console"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/fileutil"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/spf13/cobra"
)

var configCmdLog = logger.New("cli:config_command")

// NewConfigCommand creates the config command group
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the ShipKit user config file",
		Long: `Inspect or create the YAML user config file.

Settings are resolved from built-in defaults, the config file, a .env file,
environment variables and finally command line flags, each overriding the
previous one.

Examples:
  ` + constants.CLIName + ` config show          # Print the effective settings
  ` + constants.CLIName + ` config init          # Write a config file with the defaults`,
	}
	cmd.AddCommand(newConfigShowSubcommand(), newConfigInitSubcommand())
	return cmd
}

func newConfigShowSubcommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configOverrides{})
			if err != nil {
				return err
			}
			return runConfigShow(cfg, cmd.OutOrStdout(), os.Stderr)
		},
	}
}

func newConfigInitSubcommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("path")
			force, _ := cmd.Flags().GetBool("force")
			if path == "" {
				p, err := config.FilePath()
				if err != nil {
					return fmt.Errorf("cannot locate the user config directory: %w", err)
				}
				path = p
			}
			return runConfigInit(path, force, os.Stderr)
		},
	}
	cmd.Flags().String("path", "", "Where to write the file (default: user config dir, or $"+constants.EnvConfigFile+")")
	cmd.Flags().Bool("force", false, "Overwrite an existing config file")
	return cmd
}

func fileConfigOf(cfg *config.Config) config.FileConfig {
	return config.FileConfig{
		BaseURL:    cfg.BaseURL,
		OutputDir:  cfg.OutputDir,
		Service:    cfg.Service,
		Timeout:    cfg.Timeout.String(),
		APIVariant: string(cfg.APIVariant),
	}
}

func runConfigShow(cfg *config.Config, stdout, stderr io.Writer) error {
	data, err := yaml.Marshal(fileConfigOf(cfg))
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if cfg.Source != "" {
		fmt.Fprintln(stderr, console.FormatInfoMessage("Config file: "+cfg.Source))
	} else {
		fmt.Fprintln(stderr, console.FormatInfoMessage("No config file found, showing defaults and environment"))
	}
	_, err = stdout.Write(data)
	return err
}

func runConfigInit(path string, force bool, stderr io.Writer) error {
	configCmdLog.Printf("Writing config file: path=%s force=%v", path, force)
	if fileutil.Exists(path) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite it", path)
	}
	if err := config.Save(path, fileConfigOf(config.Default())); err != nil {
		return err
	}
	fmt.Fprintln(stderr, console.FormatSuccessMessage("Wrote "+path))
	return nil
}
