// Package handler implements the plugin's message handling: it resolves the
// primary colour, derives its complement, previews the gradient in the panel
// and fills the selected node.
package handler

import (
	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/internal/gradient"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// SelectShapeNotice is shown when nothing eligible is selected.
const SelectShapeNotice = "Please select a shape, vector, frame, or group to apply the gradient"

// Host is the set of host capabilities the handler needs. The host owns the
// document; the handler never keeps a node beyond one call.
type Host interface {
	// PostMessage sends a message to the UI panel.
	PostMessage(msg plugin.Message)

	// Selection returns the nodes currently selected, in selection order.
	Selection() []plugin.NodeRef

	// SetFills replaces the entire fill list of a node.
	SetFills(nodeID string, paints []plugin.Paint)

	// Notify shows a transient notice to the user.
	Notify(text string)
}

var eligible = map[plugin.NodeType]bool{
	plugin.NodeRectangle: true,
	plugin.NodeEllipse:   true,
	plugin.NodePolygon:   true,
	plugin.NodeStar:      true,
	plugin.NodeVector:    true,
	plugin.NodeFrame:     true,
	plugin.NodeGroup:     true,
}

// Eligible reports whether a node of type t can receive the gradient fill.
func Eligible(t plugin.NodeType) bool {
	return eligible[t]
}

// Handler handles panel messages. It holds no per-message state.
type Handler struct {
	source colour.Source
	logger hclog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithSource sets the random source used by randomise messages.
func WithSource(src colour.Source) Option {
	return func(h *Handler) {
		h.source = src
	}
}

// WithLogger sets the handler's logger.
func WithLogger(logger hclog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// New creates a Handler. Without options it draws random colours from an
// unseeded source and discards logs.
func New(opts ...Option) *Handler {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if h.source == nil {
		h.source = colour.NewSource(0)
	}
	if h.logger == nil {
		h.logger = hclog.NewNullLogger()
	}
	return h
}

// Handle processes one panel message against host. Messages of unknown type
// are ignored without effect. It reports whether the message was accepted.
func (h *Handler) Handle(host Host, msg plugin.Message) bool {
	var primary string
	switch msg.Type {
	case plugin.MessageSelectColor:
		primary = msg.Color
	case plugin.MessageRandomise:
		primary = colour.RandomHex(h.source)
	default:
		h.logger.Trace("ignoring message", "type", msg.Type)
		return false
	}

	complement := colour.Complement(primary)
	host.PostMessage(plugin.Message{
		Type:     plugin.MessageUpdateGradient,
		Gradient: gradient.CSS(primary, complement),
	})

	selection := host.Selection()
	if len(selection) == 0 || !Eligible(selection[0].Type) {
		h.logger.Debug("no eligible selection", "selected", len(selection))
		host.Notify(SelectShapeNotice)
		return true
	}

	target := selection[0]
	host.SetFills(target.ID, []plugin.Paint{gradient.Build(primary, complement)})
	h.logger.Debug("applied gradient", "node", target.ID, "primary", primary, "complement", complement)
	return true
}
