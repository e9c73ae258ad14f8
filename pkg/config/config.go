// Package config resolves runtime settings for the CLI.
//
// Precedence, lowest first: built-in defaults, the YAML user config file, a
// .env file in the working directory, process environment variables. Command
// line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/fileutil"
	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var configLog = logger.New("config:config")

// FileConfig models the optional YAML user config file.
//
//	base_url: https://shipkit.app
//	output_dir: ~/projects
//	service: shipkit
//	timeout: 2m
//	api_variant: current
type FileConfig struct {
	BaseURL    string `yaml:"base_url,omitempty"`
	OutputDir  string `yaml:"output_dir,omitempty"`
	Service    string `yaml:"service,omitempty"`
	Timeout    string `yaml:"timeout,omitempty"`
	APIVariant string `yaml:"api_variant,omitempty"`
}

// Config holds the resolved settings.
type Config struct {
	// BaseURL is the build API root without a trailing slash.
	BaseURL string
	// OutputDir is where project directories are created.
	OutputDir string
	// Service is the credential store namespace holding the token.
	Service string
	// Timeout bounds the archive download. Zero disables the limit.
	Timeout time.Duration
	// APIVariant selects the build endpoint flavour.
	APIVariant constants.APIVariant
	// Source is the config file that was read, empty when none was found.
	Source string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BaseURL:    constants.DefaultBaseURL,
		OutputDir:  constants.DefaultOutputDir,
		Service:    constants.DefaultService,
		Timeout:    constants.DefaultTimeout,
		APIVariant: constants.APIVariantCurrent,
	}
}

// Load resolves the configuration from the config file, .env and the
// environment.
func Load() (*Config, error) {
	cfg := Default()

	path := configFilePath()
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	// A missing .env is the common case, not an error.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		configLog.Printf("Ignoring unreadable .env: %v", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configLog.Printf("Loaded config: base=%s output=%s service=%s timeout=%s variant=%s source=%q",
		cfg.BaseURL, cfg.OutputDir, cfg.Service, cfg.Timeout, cfg.APIVariant, cfg.Source)
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("config: base URL %q must be an absolute http(s) URL", c.BaseURL)
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("config: output directory is required")
	}
	if strings.TrimSpace(c.Service) == "" {
		return fmt.Errorf("config: credential service name is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	switch c.APIVariant {
	case constants.APIVariantCurrent, constants.APIVariantLegacy:
	default:
		return fmt.Errorf("config: api variant must be %q or %q, got %q",
			constants.APIVariantCurrent, constants.APIVariantLegacy, c.APIVariant)
	}
	return nil
}

// SetTimeout parses a duration string such as "90s" into c.Timeout.
func (c *Config) SetTimeout(value string) error {
	d, err := parseTimeout(value)
	if err != nil {
		return err
	}
	c.Timeout = d
	return nil
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			configLog.Printf("No config file at %s", path)
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.BaseURL != "" {
		c.BaseURL = normalizeBaseURL(fc.BaseURL)
	}
	if fc.OutputDir != "" {
		c.OutputDir = expandHome(fc.OutputDir)
	}
	if fc.Service != "" {
		c.Service = strings.TrimSpace(fc.Service)
	}
	if fc.Timeout != "" {
		if err := c.SetTimeout(fc.Timeout); err != nil {
			return fmt.Errorf("config: %s: %w", path, err)
		}
	}
	if fc.APIVariant != "" {
		c.APIVariant = constants.APIVariant(strings.ToLower(strings.TrimSpace(fc.APIVariant)))
	}
	c.Source = path
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(constants.EnvBaseURL); v != "" {
		c.BaseURL = normalizeBaseURL(v)
	}
	if v := os.Getenv(constants.EnvOutputDir); v != "" {
		c.OutputDir = expandHome(v)
	}
	if v := os.Getenv(constants.EnvService); v != "" {
		c.Service = strings.TrimSpace(v)
	}
	if v := os.Getenv(constants.EnvTimeout); v != "" {
		if err := c.SetTimeout(v); err != nil {
			return fmt.Errorf("config: %s: %w", constants.EnvTimeout, err)
		}
	}
	if v := os.Getenv(constants.EnvAPIVariant); v != "" {
		c.APIVariant = constants.APIVariant(strings.ToLower(strings.TrimSpace(v)))
	}
	return nil
}

// Save writes fc to path as YAML, creating parent directories.
func Save(path string, fc FileConfig) error {
	data, err := yaml.Marshal(fc)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// DefaultFilePath returns the per-user config file location.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.CLIName, "config.yaml"), nil
}

// FilePath returns the config file Load reads: $SHIPKIT_CONFIG when set,
// otherwise DefaultFilePath.
func FilePath() (string, error) {
	if v := os.Getenv(constants.EnvConfigFile); v != "" {
		return expandHome(v), nil
	}
	return DefaultFilePath()
}

func configFilePath() string {
	path, err := FilePath()
	if err != nil {
		configLog.Printf("No user config dir: %v", err)
		return ""
	}
	return path
}

func parseTimeout(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", value, err)
	}
	return d, nil
}

func normalizeBaseURL(v string) string {
	return strings.TrimRight(strings.TrimSpace(v), "/")
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
