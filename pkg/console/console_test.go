//go:build !integration

package console

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMessages(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		want   string
	}{
		{name: "success", format: FormatSuccessMessage, want: "Build something amazing!"},
		{name: "info", format: FormatInfoMessage, want: "Downloading kit..."},
		{name: "warning", format: FormatWarningMessage, want: "stale archive removed"},
		{name: "error", format: FormatErrorMessage, want: "Folder already exists"},
		{name: "command", format: FormatCommandMessage, want: "pnpm install"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, tt.format(tt.want), tt.want)
		})
	}
}

func TestFormatErrorWithSuggestions(t *testing.T) {
	out := FormatErrorWithSuggestions("Folder already exists", []string{
		"Choose another project name",
		"Remove the existing folder",
	})

	assert.Contains(t, out, "Folder already exists")
	assert.Contains(t, out, "Suggestions:")
	assert.Contains(t, out, "  • Choose another project name")
	assert.Contains(t, out, "  • Remove the existing folder")

	assert.NotContains(t, FormatErrorWithSuggestions("plain", nil), "Suggestions:")
}

func TestFormatFileSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatFileSize(512))
	assert.Equal(t, "1.0 KB", FormatFileSize(1024))
	assert.Equal(t, "1.5 MB", FormatFileSize(1536*1024))
}

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	Banner(&buf, "Welcome to ShipKit!", "Created by: the ShipKit team")

	out := buf.String()
	assert.Contains(t, out, "Welcome to ShipKit!")
	assert.Contains(t, out, "Created by: the ShipKit team")
	assert.Contains(t, out, "-------------------------")
}

func TestSpinnerWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := &Spinner{text: "Checking token...", out: &buf}

	s.Start()
	s.UpdateMessage("Extracting kit...")
	s.Stop()
	s.Stop()

	out := buf.String()
	assert.Contains(t, out, "Checking token...")
	assert.Contains(t, out, "Extracting kit...")
}
