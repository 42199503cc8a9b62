// Package panel is the terminal rendition of the plugin's UI panel: the user
// types a colour or asks for a random one, and the panel previews the
// gradient the plugin reports back.
package panel

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// Pixel size of one terminal cell, used to map the requested panel size.
const (
	cellWidth  = 8
	cellHeight = 16
)

// DeliverFunc hands a panel message to the host.
type DeliverFunc func(ctx context.Context, msg plugin.Message) error

// GradientMsg carries an outbound plugin message into the panel.
type GradientMsg plugin.Message

// NoticeMsg carries a transient host notice into the panel.
type NoticeMsg string

// deliveredMsg reports the outcome of one delivery.
type deliveredMsg struct {
	err error
}

// Model is the bubbletea model of the panel.
type Model struct {
	deliver DeliverFunc
	input   textinput.Model

	// wantCols is the width the plugin asked for; cols is that width
	// capped to the terminal.
	wantCols int
	cols     int
	rows     int

	gradient string
	notice   string
	err      error
	pending  bool
}

// New creates a panel sized from a pixel width and height.
func New(deliver DeliverFunc, widthPx, heightPx int) Model {
	input := textinput.New()
	input.Placeholder = "#336699"
	input.CharLimit = 7
	input.Prompt = "colour › "
	input.Focus()

	cols := max(widthPx/cellWidth, 20)
	return Model{
		deliver:  deliver,
		input:    input,
		wantCols: cols,
		cols:     cols,
		rows:     max(heightPx/cellHeight, 8),
	}
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and plugin output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if !strings.HasPrefix(value, "#") {
				value = "#" + value
			}
			if _, err := colour.ParseHex(value); err != nil {
				m.err = err
				return m, nil
			}
			return m.send(plugin.Message{Type: plugin.MessageSelectColor, Color: strings.ToLower(value)})
		case "ctrl+r":
			return m.send(plugin.Message{Type: plugin.MessageRandomise})
		}

	case GradientMsg:
		if msg.Type == plugin.MessageUpdateGradient {
			m.gradient = msg.Gradient
			m.notice = ""
		}
		return m, nil

	case NoticeMsg:
		m.notice = string(msg)
		return m, nil

	case deliveredMsg:
		m.pending = false
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.cols = min(m.wantCols, msg.Width)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send delivers msg in the background. Only one delivery runs at a time.
func (m Model) send(msg plugin.Message) (tea.Model, tea.Cmd) {
	if m.pending {
		return m, nil
	}
	m.err = nil
	m.pending = true
	deliver := m.deliver
	return m, func() tea.Msg {
		return deliveredMsg{err: deliver(context.Background(), msg)}
	}
}

// ProgramPanel forwards host output into a running bubbletea program. It is
// safe to use from the goroutine that runs delivery commands.
type ProgramPanel struct {
	program *tea.Program
}

// NewProgramPanel creates a ProgramPanel for p.
func NewProgramPanel(p *tea.Program) *ProgramPanel {
	return &ProgramPanel{program: p}
}

// PostMessage sends an outbound plugin message to the panel.
func (p *ProgramPanel) PostMessage(msg plugin.Message) {
	p.program.Send(GradientMsg(msg))
}

// Notify sends a notice to the panel.
func (p *ProgramPanel) Notify(text string) {
	p.program.Send(NoticeMsg(text))
}
