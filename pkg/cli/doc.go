// Package cli provides the command-line interface for shipkit.
//
// This package implements the `shipkit` binary using the Cobra command
// framework. It wires configuration, the OS keychain, the build service
// client and the huh-based prompts into the provisioning workflow.
//
// # Available Commands
//
// new - Create a project from a kit (also the default when no subcommand is given)
//
// token - Save, remove or check the ShipKit token kept in the OS keychain
//
// config - Print the effective settings or write a config file
//
// version - Print the CLI version
//
// # Basic Usage
//
//	// Run the interactive workflow with flag-style settings
//	err := cli.RunNew(ctx, cli.NewConfig{
//		OutputDir: "../projects",
//		Timeout:   "5m",
//	})
//	os.Exit(cli.ExitCode(err))
//
// # Command Structure
//
// Each command follows a consistent pattern:
//  1. Command definition in *_command.go files
//  2. Runnable function (RunX or runX) for testability
//  3. Console-formatted output using pkg/console
//
// Commands use standard flags:
//
//	--verbose/-v      Enable detailed output
//	--output-dir/-o   Directory the project folder is created in
//	--timeout         Download timeout
//	--dry-run         Print the build request instead of sending it
//
// # Error Handling
//
// Failures the workflow has already reported come back as *ExitError so
// main exits with the right status without printing them twice. A cancelled
// prompt exits with 130.
//
// # Related Packages
//
// pkg/provision - The workflow the new command runs
//
// pkg/console - Output formatting utilities
//
// pkg/logger - Debug logging controlled by DEBUG environment variable
package cli
