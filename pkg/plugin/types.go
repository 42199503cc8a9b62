// Package plugin provides the public API for gradientfill plugins.
// External plugins should import this package instead of internal packages.
package plugin

// PluginInfo contains metadata about a plugin.
type PluginInfo struct {
	Name            string `json:"name"`
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "go-plugin"
	UIWidth         int    `json:"ui_width,omitempty"`
	UIHeight        int    `json:"ui_height,omitempty"`
}

// Message types exchanged between the UI panel and the plugin.
const (
	MessageSelectColor    = "select-color"
	MessageRandomise      = "randomise"
	MessageUpdateGradient = "update-gradient"
)

// Message is a panel message in either direction. Inbound messages carry
// Color (select-color) or nothing (randomise); the outbound update-gradient
// message carries Gradient.
type Message struct {
	Type     string `json:"type"`
	Color    string `json:"color,omitempty"`
	Gradient string `json:"gradient,omitempty"`
}

// NodeType is the host's kind of scene node.
type NodeType string

// Node types known to the host.
const (
	NodeRectangle NodeType = "RECTANGLE"
	NodeEllipse   NodeType = "ELLIPSE"
	NodePolygon   NodeType = "POLYGON"
	NodeStar      NodeType = "STAR"
	NodeVector    NodeType = "VECTOR"
	NodeFrame     NodeType = "FRAME"
	NodeGroup     NodeType = "GROUP"
	NodeText      NodeType = "TEXT"
	NodeLine      NodeType = "LINE"
	NodeComponent NodeType = "COMPONENT"
)

// NodeRef identifies a selected node without exposing the host's document.
type NodeRef struct {
	ID   string   `json:"id"`
	Type NodeType `json:"type"`
}

// Colour is a normalised RGBA colour as the host stores it.
type Colour struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// ColourStop is a colour at a position along a gradient axis, in [0, 1].
type ColourStop struct {
	Color    Colour  `json:"color"`
	Position float64 `json:"position"`
}

// Transform is a 2x3 affine matrix mapping the gradient axis onto the node.
type Transform [2][3]float64

// PaintGradientLinear is the paint type of a linear gradient.
const PaintGradientLinear = "GRADIENT_LINEAR"

// Paint is a single entry of a node's fill list.
type Paint struct {
	Type              string       `json:"type"`
	GradientStops     []ColourStop `json:"gradient_stops,omitempty"`
	GradientTransform *Transform   `json:"gradient_transform,omitempty"`
}

// Request is what the host sends for each panel message: the message itself
// and a snapshot of the current selection.
type Request struct {
	Message   Message   `json:"message"`
	Selection []NodeRef `json:"selection"`
}

// Fill replaces the whole fill list of one node.
type Fill struct {
	NodeID string  `json:"node_id"`
	Paints []Paint `json:"paints"`
}

// Effects is everything a plugin asked the host to do while handling one
// message, in the order it asked.
type Effects struct {
	Messages []Message `json:"messages,omitempty"`
	Fills    []Fill    `json:"fills,omitempty"`
	Notices  []string  `json:"notices,omitempty"`
}

// Empty reports whether the plugin requested nothing at all.
func (e Effects) Empty() bool {
	return len(e.Messages) == 0 && len(e.Fills) == 0 && len(e.Notices) == 0
}
