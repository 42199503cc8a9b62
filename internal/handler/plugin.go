package handler

import (
	"context"

	"github.com/jmylchreest/gradientfill/internal/version"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// Panel size requested from the host when the plugin starts.
const (
	UIWidth  = 350
	UIHeight = 440
)

// Plugin adapts a Handler to the plugin.GradientPlugin interface so the same
// code serves the in-process host and the go-plugin binary.
type Plugin struct {
	handler *Handler
}

// NewPlugin wraps h as a GradientPlugin.
func NewPlugin(h *Handler) *Plugin {
	return &Plugin{handler: h}
}

// Handle runs the handler against the request's selection snapshot.
func (p *Plugin) Handle(ctx context.Context, req plugin.Request) (plugin.Effects, error) {
	if err := ctx.Err(); err != nil {
		return plugin.Effects{}, err
	}
	rec := NewRecorder(req.Selection)
	p.handler.Handle(rec, req.Message)
	return rec.Effects(), nil
}

// GetMetadata returns plugin metadata.
func (p *Plugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "complementary-gradient",
		Version:         version.Short(),
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Fill the selected shape with a gradient from a colour to its complement",
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
		UIWidth:         UIWidth,
		UIHeight:        UIHeight,
	}
}
