// Package logger provides namespaced debug logging controlled by the DEBUG
// environment variable.
//
// Each package declares a logger for its own namespace:
//
//	var downloadLog = logger.New("api:download")
//
// Output is written to stderr only when DEBUG matches the namespace. DEBUG is
// a comma-separated list of patterns where "*" matches any sequence and a
// leading "-" excludes matching namespaces:
//
//	DEBUG=*                  # everything
//	DEBUG=api:*,provision:*  # two packages
//	DEBUG=*,-console:*       # everything except the console package
//
// Each line carries the time elapsed since the previous line of the same
// logger, which makes slow stages easy to spot.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shipkit/shipkit-cli/pkg/tty"
)

var (
	output      io.Writer = os.Stderr
	outputMu    sync.Mutex
	debugEnv    = os.Getenv("DEBUG")
	colorize    = tty.IsStderrTerminal() && os.Getenv("NO_COLOR") == ""
	paletteNext int
)

var palette = []lipgloss.Color{"#5B8DEF", "#4CAF50", "#E5C07B", "#C678DD", "#56B6C2", "#E06C75"}

// Logger writes debug lines for a single namespace.
type Logger struct {
	namespace string
	enabled   bool
	style     lipgloss.Style

	mu   sync.Mutex
	last time.Time
}

// New creates a logger for namespace. Whether it prints is decided once, from
// the DEBUG variable at process start.
func New(namespace string) *Logger {
	outputMu.Lock()
	color := palette[paletteNext%len(palette)]
	paletteNext++
	outputMu.Unlock()

	return &Logger{
		namespace: namespace,
		enabled:   computeEnabled(namespace, debugEnv),
		style:     lipgloss.NewStyle().Foreground(color).Bold(true),
	}
}

// Enabled reports whether the logger prints anything.
func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Printf formats and writes a line.
func (l *Logger) Printf(format string, args ...any) {
	if !l.Enabled() {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

// Print writes its operands as a single line.
func (l *Logger) Print(args ...any) {
	if !l.Enabled() {
		return
	}
	l.write(fmt.Sprint(args...))
}

func (l *Logger) write(msg string) {
	l.mu.Lock()
	now := time.Now()
	var elapsed time.Duration
	if !l.last.IsZero() {
		elapsed = now.Sub(l.last)
	}
	l.last = now
	l.mu.Unlock()

	ns := l.namespace
	if colorize {
		ns = l.style.Render(ns)
	}

	outputMu.Lock()
	defer outputMu.Unlock()
	fmt.Fprintf(output, "%s %s +%s\n", ns, strings.TrimRight(msg, "\n"), formatElapsed(elapsed))
}

func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "0ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		return d.Round(time.Second).String()
	}
}

// computeEnabled evaluates a DEBUG pattern list against namespace. Later
// patterns win, so "*,-api:*" enables everything but the api package.
func computeEnabled(namespace, patterns string) bool {
	if strings.TrimSpace(patterns) == "" {
		return false
	}
	enabled := false
	for _, raw := range strings.Split(patterns, ",") {
		pattern := strings.TrimSpace(raw)
		if pattern == "" {
			continue
		}
		exclude := strings.HasPrefix(pattern, "-")
		pattern = strings.TrimPrefix(pattern, "-")
		if matchPattern(pattern, namespace) {
			enabled = !exclude
		}
	}
	return enabled
}

// matchPattern implements "*" wildcard matching.
func matchPattern(pattern, s string) bool {
	if pattern == "*" {
		return true
	}
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == s
	}
	if !strings.HasPrefix(s, parts[0]) {
		return false
	}
	s = s[len(parts[0]):]
	for i := 1; i < len(parts)-1; i++ {
		idx := strings.Index(s, parts[i])
		if idx < 0 {
			return false
		}
		s = s[idx+len(parts[i]):]
	}
	return strings.HasSuffix(s, parts[len(parts)-1])
}
