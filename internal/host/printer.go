package host

import (
	"fmt"
	"io"

	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// PrintPanel is a Panel that writes messages and notices as plain lines.
type PrintPanel struct {
	out io.Writer
}

// NewPrintPanel creates a PrintPanel writing to out.
func NewPrintPanel(out io.Writer) *PrintPanel {
	return &PrintPanel{out: out}
}

// PostMessage prints the outbound message, gradient first for update-gradient.
func (p *PrintPanel) PostMessage(msg plugin.Message) {
	if msg.Type == plugin.MessageUpdateGradient {
		fmt.Fprintln(p.out, msg.Gradient)
		return
	}
	fmt.Fprintf(p.out, "%s %s\n", msg.Type, msg.Color)
}

// Notify prints a notice.
func (p *PrintPanel) Notify(text string) {
	fmt.Fprintf(p.out, "notice: %s\n", text)
}
