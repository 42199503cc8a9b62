package handler

import (
	"slices"

	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// Recorder is a Host that works from a selection snapshot and records every
// effect instead of applying it. Plugins run the handler against a Recorder
// and hand the recorded effects back to the real host.
type Recorder struct {
	selection []plugin.NodeRef
	effects   plugin.Effects
}

// NewRecorder creates a Recorder over a snapshot of the selection.
func NewRecorder(selection []plugin.NodeRef) *Recorder {
	return &Recorder{selection: slices.Clone(selection)}
}

// PostMessage records an outbound panel message.
func (r *Recorder) PostMessage(msg plugin.Message) {
	r.effects.Messages = append(r.effects.Messages, msg)
}

// Selection returns the snapshot.
func (r *Recorder) Selection() []plugin.NodeRef {
	return r.selection
}

// SetFills records a fill replacement.
func (r *Recorder) SetFills(nodeID string, paints []plugin.Paint) {
	r.effects.Fills = append(r.effects.Fills, plugin.Fill{NodeID: nodeID, Paints: paints})
}

// Notify records a notice.
func (r *Recorder) Notify(text string) {
	r.effects.Notices = append(r.effects.Notices, text)
}

// Effects returns everything recorded so far.
func (r *Recorder) Effects() plugin.Effects {
	return r.effects
}
