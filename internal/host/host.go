// Package host is the reference host: it delivers panel messages to a
// gradient plugin and applies the effects the plugin returns to a scene
// document and a panel.
package host

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/gradientfill/internal/scene"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// Dispatcher runs a plugin for one request. Both the in-process handler and
// the external plugin executor satisfy it.
type Dispatcher interface {
	Handle(ctx context.Context, req plugin.Request) (plugin.Effects, error)
}

// Panel receives what the plugin sends towards the user.
type Panel interface {
	PostMessage(msg plugin.Message)
	Notify(text string)
}

// Host owns the document and delivers messages one at a time.
type Host struct {
	doc        *scene.Document
	dispatcher Dispatcher
	panel      Panel
	logger     hclog.Logger
}

// New creates a Host. A nil logger discards logs.
func New(doc *scene.Document, dispatcher Dispatcher, panel Panel, logger hclog.Logger) *Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Host{
		doc:        doc,
		dispatcher: dispatcher,
		panel:      panel,
		logger:     logger,
	}
}

// Document returns the document the host mutates.
func (h *Host) Document() *scene.Document {
	return h.doc
}

// Deliver sends msg to the plugin with a snapshot of the current selection,
// then applies the returned effects: panel messages first, then fills, then
// notices.
func (h *Host) Deliver(ctx context.Context, msg plugin.Message) (plugin.Effects, error) {
	req := plugin.Request{
		Message:   msg,
		Selection: h.doc.Selection(),
	}

	effects, err := h.dispatcher.Handle(ctx, req)
	if err != nil {
		return plugin.Effects{}, fmt.Errorf("failed to handle %q message: %w", msg.Type, err)
	}
	if effects.Empty() {
		h.logger.Debug("message produced no effects", "type", msg.Type)
		return effects, nil
	}

	for _, out := range effects.Messages {
		h.panel.PostMessage(out)
	}

	var errs []error
	for _, fill := range effects.Fills {
		if err := h.doc.SetFills(fill.NodeID, fill.Paints); err != nil {
			h.logger.Warn("plugin filled unknown node", "node", fill.NodeID)
			errs = append(errs, err)
			continue
		}
		h.logger.Info("replaced fills", "node", fill.NodeID, "paints", len(fill.Paints))
	}

	for _, notice := range effects.Notices {
		h.panel.Notify(notice)
	}

	return effects, errors.Join(errs...)
}
