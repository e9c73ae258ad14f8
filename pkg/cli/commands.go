package cli

import (
	"errors"
	"fmt"

	"github.com/shipkit/shipkit-cli/pkg/api"
	"github.com/shipkit/shipkit-cli/pkg/config"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var commandsLog = logger.New("cli:commands")

// Package-level version information
var (
	version = "dev"
)

// SetVersionInfo sets the version reported by the CLI and sent as the user
// agent.
func SetVersionInfo(v string) {
	version = v
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// ExitError carries the process exit status for a failure whose message has
// already been shown to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode returns the exit status for err: 0 for nil, the carried code for
// an *ExitError and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// loadConfig resolves the configuration and applies flag overrides on top.
func loadConfig(overrides configOverrides) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := overrides.apply(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	commandsLog.Printf("Effective config: base=%s output=%s timeout=%s variant=%s",
		cfg.BaseURL, cfg.OutputDir, cfg.Timeout, cfg.APIVariant)
	return cfg, nil
}

// configOverrides are the flag values that take precedence over config.
// Empty fields leave the loaded value untouched.
type configOverrides struct {
	BaseURL    string
	OutputDir  string
	Timeout    string
	APIVariant string
}

func (o configOverrides) apply(cfg *config.Config) error {
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.OutputDir != "" {
		cfg.OutputDir = o.OutputDir
	}
	if o.Timeout != "" {
		if err := cfg.SetTimeout(o.Timeout); err != nil {
			return fmt.Errorf("--timeout: %w", err)
		}
	}
	if o.APIVariant != "" {
		cfg.APIVariant = constants.APIVariant(o.APIVariant)
	}
	return nil
}

func newAPIClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.BaseURL,
		api.WithVariant(cfg.APIVariant),
		api.WithUserAgent(constants.CLIName+"/"+GetVersion()),
	)
}
