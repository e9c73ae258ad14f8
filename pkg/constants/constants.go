// Package constants holds the fixed names shared across the CLI: the binary
// name, environment variables, default endpoints and the credential namespace.
package constants

import "time"

// CLIName is the binary name used in help text and messages.
const CLIName = "shipkit"

// Environment variables read by the CLI.
const (
	EnvBaseURL    = "SHIPKIT_BASE_URL"
	EnvOutputDir  = "SHIPKIT_OUTPUT_DIR"
	EnvService    = "SHIPKIT_SERVICE"
	EnvTimeout    = "SHIPKIT_TIMEOUT"
	EnvAPIVariant = "SHIPKIT_API_VARIANT"
	EnvConfigFile = "SHIPKIT_CONFIG"
	EnvToken      = "SHIPKIT_TOKEN"
)

// Defaults used when neither the config file nor the environment set a value.
const (
	DefaultBaseURL     = "https://shipkit.app"
	DefaultOutputDir   = "."
	DefaultService     = "shipkit"
	DefaultTimeout     = 2 * time.Minute
	DefaultProjectName = "my-project"
)

// CredentialAccount is the fixed account name under which the token is kept
// inside the credential service namespace.
const CredentialAccount = "token"

// APIVariant selects the build endpoint and the header carrying the token.
type APIVariant string

const (
	// APIVariantCurrent posts to /download with a shipkit-token header.
	APIVariantCurrent APIVariant = "current"
	// APIVariantLegacy posts to /api/build with a bearer token.
	APIVariantLegacy APIVariant = "legacy"
)

// Endpoint paths relative to the base URL.
const (
	TokenCheckPath       = "/token/check"
	DownloadPath         = "/download"
	LegacyTokenCheckPath = "/api/token/check"
	LegacyBuildPath      = "/api/build"
)

// TokenHeader is the header carrying the token for APIVariantCurrent.
const TokenHeader = "shipkit-token"
