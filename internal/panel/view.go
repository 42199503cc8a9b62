package panel

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmylchreest/gradientfill/internal/colour"
)

const (
	colorBorder    = "#3A3F55"
	colorTitle     = "#E6EAF2"
	colorHelp      = "240"
	colorNotice    = "#F59E0B"
	colorError     = "#EF4444"
	swatchRows     = 3
	framePaddingX  = 1
	frameBorderCol = 2
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorHelp))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorNotice))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(colorBorder)).Padding(0, framePaddingX)

	cssGradient = regexp.MustCompile(`^linear-gradient\(to right,\s*(#[0-9a-fA-F]{6}),\s*(#[0-9a-fA-F]{6})\)$`)
)

// ParseCSSGradient extracts the two colours of a left-to-right CSS gradient.
func ParseCSSGradient(css string) (from, to string, ok bool) {
	m := cssGradient.FindStringSubmatch(strings.TrimSpace(css))
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// View renders the panel.
func (m Model) View() string {
	inner := m.cols - 2*framePaddingX - frameBorderCol

	var b strings.Builder
	b.WriteString(titleStyle.Render("Complementary gradient"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(Swatch(m.gradient, inner, swatchRows))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	case m.pending:
		b.WriteString(helpStyle.Render("applying…"))
	case m.notice != "":
		b.WriteString(noticeStyle.Width(inner).Render(m.notice))
	}
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter apply • ctrl+r random • esc quit"))

	return frameStyle.Width(m.cols - frameBorderCol).Render(b.String())
}

// Swatch renders a CSS preview gradient as a block of coloured cells, with
// the end colours labelled on the first row. Unparseable gradients render as
// an empty box of the same size.
func Swatch(css string, width, height int) string {
	from, to, ok := ParseCSSGradient(css)
	if !ok || width <= 0 || height <= 0 {
		blank := strings.Repeat(" ", max(width, 0))
		return strings.TrimSuffix(strings.Repeat(blank+"\n", max(height, 0)), "\n")
	}

	start := colour.HexToNormalised(from)
	end := colour.HexToNormalised(to)

	cells := make([]string, width)
	for x := range width {
		t := 0.0
		if width > 1 {
			t = float64(x) / float64(width-1)
		}
		cells[x] = colour.Lerp(start, end, t).Hex()
	}

	label := []rune(from + strings.Repeat(" ", max(width-len(from)-len(to), 1)) + to)

	rows := make([]string, height)
	for y := range height {
		var row strings.Builder
		for x, hex := range cells {
			style := lipgloss.NewStyle().Background(lipgloss.Color(hex))
			ch := " "
			if y == 0 && x < len(label) {
				ch = string(label[x])
				style = style.Foreground(lipgloss.Color(colour.ReadableOn(colour.DecodeHex(hex)).Hex()))
			}
			row.WriteString(style.Render(ch))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}
