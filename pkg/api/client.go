// Package api talks to the ShipKit build service: token validation and
// archive download.
package api

import (
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/shipkit/shipkit-cli/pkg/constants"
	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var clientLog = logger.New("api:client")

// Client is a thin wrapper over a resty client bound to one base URL.
type Client struct {
	http    *resty.Client
	baseURL string
	variant constants.APIVariant
}

// Option customizes a Client.
type Option func(*Client)

// WithVariant selects the build endpoint flavour.
func WithVariant(v constants.APIVariant) Option {
	return func(c *Client) { c.variant = v }
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.http.SetHeader("User-Agent", ua) }
}

// NewClient returns a client for baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetLogger(restyLogger{}).
			SetHeader("Accept", "application/json, application/zip"),
		baseURL: baseURL,
		variant: constants.APIVariantCurrent,
	}
	for _, opt := range opts {
		opt(c)
	}
	clientLog.Printf("Created API client: base=%s variant=%s", baseURL, c.variant)
	return c
}

// BaseURL returns the URL requests are resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// buildEndpoint returns the build path and the headers carrying token for
// the configured variant.
func (c *Client) buildEndpoint(token string) (string, map[string]string) {
	if c.variant == constants.APIVariantLegacy {
		return constants.LegacyBuildPath, map[string]string{"Authorization": "Bearer " + token}
	}
	return constants.DownloadPath, map[string]string{constants.TokenHeader: token}
}

// tokenCheckEndpoint returns the token check path for the configured
// variant.
func (c *Client) tokenCheckEndpoint() string {
	if c.variant == constants.APIVariantLegacy {
		return constants.LegacyTokenCheckPath
	}
	return constants.TokenCheckPath
}

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("build service responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("build service responded with status %d: %s", e.StatusCode, e.Body)
}

// restyLogger routes resty's own diagnostics to the debug logger instead of
// stderr.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { clientLog.Printf("resty error: "+format, v...) }
func (restyLogger) Warnf(format string, v ...any)  { clientLog.Printf("resty warn: "+format, v...) }
func (restyLogger) Debugf(format string, v ...any) { clientLog.Printf("resty debug: "+format, v...) }
