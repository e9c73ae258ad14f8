package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shipkit/shipkit-cli/pkg/logger"
	"github.com/shipkit/shipkit-cli/pkg/tty"
)

var spinnerLog = logger.New("console:spinner")

type spinnerTextMsg string

type spinnerStopMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	text    string
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTextMsg:
		m.text = string(msg)
		return m, nil
	case spinnerStopMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.text
}

// Spinner shows progress for a long-running step. When stderr is not a
// terminal it degrades to printing each message once.
type Spinner struct {
	mu      sync.Mutex
	text    string
	out     io.Writer
	enabled bool
	program *tea.Program
	done    chan struct{}
}

// NewSpinner returns a stopped spinner with the given text.
func NewSpinner(text string) *Spinner {
	return &Spinner{
		text:    text,
		out:     os.Stderr,
		enabled: tty.IsStderrTerminal(),
	}
}

// Start begins animating. Starting a running spinner is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program != nil {
		return
	}
	if !s.enabled {
		fmt.Fprintln(s.out, FormatInfoMessage(s.text))
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF"))

	s.program = tea.NewProgram(
		spinnerModel{spinner: sp, text: s.text},
		tea.WithOutput(s.out),
		tea.WithInput(nil),
	)
	s.done = make(chan struct{})
	go func(p *tea.Program, done chan struct{}) {
		defer close(done)
		if _, err := p.Run(); err != nil {
			spinnerLog.Printf("Spinner program exited: %v", err)
		}
	}(s.program, s.done)
}

// UpdateMessage replaces the text shown next to the spinner.
func (s *Spinner) UpdateMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = text
	if s.program == nil {
		if !s.enabled {
			fmt.Fprintln(s.out, FormatInfoMessage(text))
		}
		return
	}
	s.program.Send(spinnerTextMsg(text))
}

// Stop halts the animation and clears the line. It blocks until the
// terminal has been released so a following prompt can take over.
func (s *Spinner) Stop() {
	s.mu.Lock()
	p, done := s.program, s.done
	s.program, s.done = nil, nil
	s.mu.Unlock()

	if p == nil {
		return
	}
	p.Send(spinnerStopMsg{})
	<-done
}
