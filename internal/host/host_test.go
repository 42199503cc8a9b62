package host

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/internal/handler"
	"github.com/jmylchreest/gradientfill/internal/scene"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// recordingPanel keeps everything sent to it.
type recordingPanel struct {
	messages []plugin.Message
	notices  []string
}

func (p *recordingPanel) PostMessage(msg plugin.Message) { p.messages = append(p.messages, msg) }
func (p *recordingPanel) Notify(text string) { p.notices = append(p.notices, text) }

// stubDispatcher returns fixed effects.
type stubDispatcher struct {
	effects plugin.Effects
	err     error
	lastReq plugin.Request
}

func (s *stubDispatcher) Handle(_ context.Context, req plugin.Request) (plugin.Effects, error) {
	s.lastReq = req
	return s.effects, s.err
}

func newDoc(t *testing.T, nodes []scene.Node, selected ...string) *scene.Document {
	t.Helper()
	doc := &scene.Document{}
	for _, n := range nodes {
		if err := doc.Add(n); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	if err := doc.Select(selected...); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	return doc
}

func builtin() Dispatcher {
	return handler.NewPlugin(handler.New(handler.WithSource(colour.NewSource(1))))
}

func TestDeliverSelectColorFillsRectangle(t *testing.T) {
	doc := newDoc(t, []scene.Node{
		{ID: "r", Type: plugin.NodeRectangle, Fills: []plugin.Paint{{Type: "SOLID"}, {Type: "IMAGE"}}},
	}, "r")
	panel := &recordingPanel{}
	h := New(doc, builtin(), panel, nil)

	if _, err := h.Deliver(context.Background(), plugin.Message{Type: plugin.MessageSelectColor, Color: "#336699"}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if len(panel.messages) != 1 || panel.messages[0].Gradient != "linear-gradient(to right, #336699, #cc9966)" {
		t.Errorf("panel messages = %+v", panel.messages)
	}
	if len(panel.notices) != 0 {
		t.Errorf("panel notices = %v", panel.notices)
	}

	n, _ := doc.Node("r")
	if len(n.Fills) != 1 || n.Fills[0].Type != plugin.PaintGradientLinear {
		t.Errorf("fills = %+v, want a single linear gradient", n.Fills)
	}
}

func TestDeliverRandomiseWithoutSelection(t *testing.T) {
	doc := newDoc(t, []scene.Node{{ID: "r", Type: plugin.NodeRectangle}})
	panel := &recordingPanel{}
	h := New(doc, builtin(), panel, nil)

	if _, err := h.Deliver(context.Background(), plugin.Message{Type: plugin.MessageRandomise}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if len(panel.messages) != 1 || !strings.HasPrefix(panel.messages[0].Gradient, "linear-gradient(to right, #") {
		t.Errorf("panel messages = %+v", panel.messages)
	}
	if len(panel.notices) != 1 || panel.notices[0] != handler.SelectShapeNotice {
		t.Errorf("panel notices = %v", panel.notices)
	}
	if n, _ := doc.Node("r"); len(n.Fills) != 0 {
		t.Errorf("unselected node was filled: %+v", n.Fills)
	}
}

func TestDeliverUnknownMessage(t *testing.T) {
	doc := newDoc(t, []scene.Node{{ID: "r", Type: plugin.NodeRectangle}}, "r")
	panel := &recordingPanel{}
	h := New(doc, builtin(), panel, nil)

	effects, err := h.Deliver(context.Background(), plugin.Message{Type: "noop"})
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if !effects.Empty() || len(panel.messages) != 0 || len(panel.notices) != 0 {
		t.Errorf("unknown message had effects: %+v", effects)
	}
	if n, _ := doc.Node("r"); len(n.Fills) != 0 {
		t.Errorf("fills = %+v", n.Fills)
	}
}

func TestDeliverSendsSelectionSnapshot(t *testing.T) {
	doc := newDoc(t, []scene.Node{
		{ID: "a", Type: plugin.NodeText},
		{ID: "b", Type: plugin.NodeStar},
	}, "b", "a")
	stub := &stubDispatcher{}
	h := New(doc, stub, &recordingPanel{}, nil)

	if _, err := h.Deliver(context.Background(), plugin.Message{Type: plugin.MessageRandomise}); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	want := []plugin.NodeRef{{ID: "b", Type: plugin.NodeStar}, {ID: "a", Type: plugin.NodeText}}
	if len(stub.lastReq.Selection) != 2 || stub.lastReq.Selection[0] != want[0] || stub.lastReq.Selection[1] != want[1] {
		t.Errorf("selection = %+v, want %+v", stub.lastReq.Selection, want)
	}
}

func TestDeliverErrors(t *testing.T) {
	t.Run("dispatch failure", func(t *testing.T) {
		doc := newDoc(t, nil)
		h := New(doc, &stubDispatcher{err: errors.New("plugin crashed")}, &recordingPanel{}, nil)
		_, err := h.Deliver(context.Background(), plugin.Message{Type: plugin.MessageRandomise})
		if err == nil || !strings.Contains(err.Error(), "plugin crashed") {
			t.Errorf("Deliver() error = %v", err)
		}
	})

	t.Run("fill for unknown node", func(t *testing.T) {
		doc := newDoc(t, nil)
		panel := &recordingPanel{}
		stub := &stubDispatcher{effects: plugin.Effects{
			Messages: []plugin.Message{{Type: plugin.MessageUpdateGradient}},
			Fills:    []plugin.Fill{{NodeID: "ghost"}},
		}}
		h := New(doc, stub, panel, nil)
		_, err := h.Deliver(context.Background(), plugin.Message{Type: plugin.MessageRandomise})
		if err == nil || !strings.Contains(err.Error(), "ghost") {
			t.Errorf("Deliver() error = %v", err)
		}
		if len(panel.messages) != 1 {
			t.Errorf("preview should still be posted, got %+v", panel.messages)
		}
	})
}

func TestPrintPanel(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrintPanel(&buf)
	p.PostMessage(plugin.Message{Type: plugin.MessageUpdateGradient, Gradient: "linear-gradient(to right, #000000, #ffffff)"})
	p.Notify("hello")

	want := "linear-gradient(to right, #000000, #ffffff)\nnotice: hello\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}
