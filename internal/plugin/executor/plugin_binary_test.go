package executor

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmylchreest/gradientfill/internal/config"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// buildPluginBinary compiles cmd/gradientfill-plugin into a temp dir.
func buildPluginBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("builds the plugin binary")
	}
	goBin, err := exec.LookPath("go")
	if err != nil {
		t.Skip("go toolchain not on PATH")
	}

	bin := filepath.Join(t.TempDir(), "gradientfill-plugin")
	cmd := exec.Command(goBin, "build", "-o", bin, "../../../cmd/gradientfill-plugin")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("go build failed: %v\n%s", err, out)
	}
	return bin
}

func TestPluginBinarySelectColor(t *testing.T) {
	bin := buildPluginBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	e, err := New(ctx, bin)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	if got := e.Info().Name; got != "complementary-gradient" {
		t.Errorf("Info().Name = %q, want complementary-gradient", got)
	}

	req := plugin.Request{
		Message:   plugin.Message{Type: plugin.MessageSelectColor, Color: "#336699"},
		Selection: []plugin.NodeRef{{ID: "1:2", Type: plugin.NodeRectangle}},
	}
	effects, err := e.Handle(ctx, req)
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	if len(effects.Messages) != 1 {
		t.Fatalf("messages = %+v, want one", effects.Messages)
	}
	msg := effects.Messages[0]
	if msg.Type != plugin.MessageUpdateGradient || msg.Gradient != "linear-gradient(to right, #336699, #cc9966)" {
		t.Errorf("message = %+v", msg)
	}
	if len(effects.Fills) != 1 || effects.Fills[0].NodeID != "1:2" {
		t.Fatalf("fills = %+v, want one for 1:2", effects.Fills)
	}
	paints := effects.Fills[0].Paints
	if len(paints) != 1 || len(paints[0].GradientStops) != 3 || paints[0].GradientTransform == nil {
		t.Errorf("paints = %+v, want one three-stop gradient with a transform", paints)
	}

	// The same process serves later messages.
	req.Selection = []plugin.NodeRef{{ID: "1:1", Type: plugin.NodeText}}
	effects, err = e.Handle(ctx, req)
	if err != nil {
		t.Fatalf("second Handle() error = %v", err)
	}
	if len(effects.Fills) != 0 || len(effects.Notices) != 1 {
		t.Errorf("text selection effects = %+v, want a notice and no fills", effects)
	}
}

func TestPluginBinarySeededRandomise(t *testing.T) {
	bin := buildPluginBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	randomise := func() string {
		e, err := New(ctx, bin, WithEnv(config.EnvSeed+"=42"))
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		defer e.Close()

		effects, err := e.Handle(ctx, plugin.Request{
			Message:   plugin.Message{Type: plugin.MessageRandomise},
			Selection: []plugin.NodeRef{{ID: "1:3", Type: plugin.NodeEllipse}},
		})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(effects.Messages) != 1 {
			t.Fatalf("messages = %+v, want one", effects.Messages)
		}
		return effects.Messages[0].Gradient
	}

	first, second := randomise(), randomise()
	if first != second {
		t.Errorf("seeded plugins disagree: %q vs %q", first, second)
	}
}
