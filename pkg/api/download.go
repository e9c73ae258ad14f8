package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shipkit/shipkit-cli/pkg/logger"
)

var downloadLog = logger.New("api:download")

// maxErrorBody bounds how much of a failed response is kept for the error.
const maxErrorBody = 512

// DownloadArchive posts body as JSON to the build endpoint and streams the
// response into dest without buffering it in memory. It returns the number
// of bytes written.
//
// Cancelling ctx aborts the transfer. Whatever the cause of a failure, a
// partially written dest is removed before returning.
func (c *Client) DownloadArchive(ctx context.Context, token string, body any, dest string) (written int64, err error) {
	path, headers := c.buildEndpoint(token)
	downloadLog.Printf("Requesting archive: POST %s%s -> %s", c.baseURL, path, dest)

	created := false
	defer func() {
		if err == nil {
			return
		}
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			err = fmt.Errorf("%w: %w", ctxErr, err)
		}
		if created {
			if rmErr := os.Remove(dest); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				downloadLog.Printf("Failed to remove partial archive %s: %v", dest, rmErr)
			} else {
				downloadLog.Printf("Removed partial archive %s", dest)
			}
		}
	}()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetDoNotParseResponse(true).
		Post(path)
	if err != nil {
		return 0, fmt.Errorf("request archive: %w", err)
	}
	raw := resp.RawBody()
	defer raw.Close()

	if !resp.IsSuccess() {
		snippet, _ := io.ReadAll(io.LimitReader(raw, maxErrorBody))
		return 0, &StatusError{StatusCode: resp.StatusCode(), Body: strings.TrimSpace(string(snippet))}
	}

	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create archive file: %w", err)
	}
	created = true

	written, err = io.Copy(f, raw)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, fmt.Errorf("stream archive: %w", err)
	}

	downloadLog.Printf("Archive written: %d bytes", written)
	return written, nil
}
