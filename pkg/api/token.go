package api

import (
	"context"
	"encoding/json"

	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var tokenLog = logger.New("api:token")

type tokenCheckRequest struct {
	Token string `json:"token"`
}

type tokenCheckResponse struct {
	Valid *bool `json:"valid"`
}

// IsValidToken asks the service whether token is currently valid. It fails
// closed: an empty token, a transport error, a non-2xx status, or a body
// without a boolean "valid" field all report false.
func (c *Client) IsValidToken(ctx context.Context, token string) bool {
	if token == "" {
		tokenLog.Print("Empty token, skipping check")
		return false
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(tokenCheckRequest{Token: token}).
		Post(c.tokenCheckEndpoint())
	if err != nil {
		tokenLog.Printf("Token check request failed: %v", err)
		return false
	}
	if !resp.IsSuccess() {
		tokenLog.Printf("Token check returned status %d", resp.StatusCode())
		return false
	}

	var parsed tokenCheckResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		tokenLog.Printf("Token check body is not valid JSON: %v", err)
		return false
	}
	if parsed.Valid == nil {
		tokenLog.Print("Token check body has no valid field")
		return false
	}
	tokenLog.Printf("Token check result: %v", *parsed.Valid)
	return *parsed.Valid
}
