package executor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jmylchreest/gradientfill/internal/plugin/protocol"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// mockRunner answers --plugin-info with canned output.
type mockRunner struct {
	stdout    string
	err       error
	callCount int
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	m.callCount++
	return []byte(m.stdout), nil, m.err
}

const goPluginInfo = `{"name":"complementary-gradient","version":"dev","protocol_version":"1.0.0","plugin_protocol":"go-plugin"}`

// mockPlugin is a dispensed plugin client.
type mockPlugin struct {
	effects plugin.Effects
	err     error
	calls   int
}

func (m *mockPlugin) Handle(_ context.Context, _ plugin.Request) (plugin.Effects, error) {
	m.calls++
	return m.effects, m.err
}

func (m *mockPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{Name: "mock"}
}

func newTestExecutor(t *testing.T, impl *mockPlugin) (*PluginExecutor, *int) {
	t.Helper()

	e, err := New(context.Background(), "/plugins/gradient", WithRunner(&mockRunner{stdout: goPluginInfo}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	dials := 0
	e.dial = func() (plugin.GradientPlugin, error) {
		dials++
		return impl, nil
	}
	t.Cleanup(e.Close)
	return e, &dials
}

func TestNew(t *testing.T) {
	runner := &mockRunner{stdout: goPluginInfo}
	e, err := New(context.Background(), "/plugins/gradient", WithRunner(runner), WithVerbose(true))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	if runner.callCount != 1 {
		t.Errorf("runner called %d times, want 1", runner.callCount)
	}
	if e.Info().Name != "complementary-gradient" {
		t.Errorf("Info().Name = %q", e.Info().Name)
	}
	if !e.verbose {
		t.Error("Expected verbose to be true")
	}
}

func TestNewRejectsBrokenPlugin(t *testing.T) {
	tests := []struct {
		name   string
		runner *mockRunner
	}{
		{name: "process error", runner: &mockRunner{err: errors.New("not found")}},
		{name: "incompatible", runner: &mockRunner{stdout: `{"name":"x","protocol_version":"9.0.0","plugin_protocol":"go-plugin"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(context.Background(), "/plugins/gradient", WithRunner(tt.runner))
			if err == nil || !strings.Contains(err.Error(), "failed to detect plugin protocol") {
				t.Errorf("New() error = %v", err)
			}
		})
	}
}

func TestHandleReusesConnection(t *testing.T) {
	impl := &mockPlugin{effects: plugin.Effects{Notices: []string{"hi"}}}
	e, dials := newTestExecutor(t, impl)

	for range 3 {
		got, err := e.Handle(context.Background(), plugin.Request{Message: plugin.Message{Type: plugin.MessageRandomise}})
		if err != nil {
			t.Fatalf("Handle() error = %v", err)
		}
		if len(got.Notices) != 1 {
			t.Errorf("Handle() = %+v", got)
		}
	}
	if *dials != 1 {
		t.Errorf("dialled %d times, want 1", *dials)
	}
	if impl.calls != 3 {
		t.Errorf("plugin called %d times, want 3", impl.calls)
	}
}

func TestHandlePluginErrorKeepsConnection(t *testing.T) {
	impl := &mockPlugin{err: &plugin.RPCError{Message: "bad"}}
	e, dials := newTestExecutor(t, impl)

	for range 2 {
		if _, err := e.Handle(context.Background(), plugin.Request{}); err == nil {
			t.Fatal("Handle() expected error")
		}
	}
	if *dials != 1 {
		t.Errorf("dialled %d times, want 1", *dials)
	}
}

func TestHandleTransportErrorReconnects(t *testing.T) {
	impl := &mockPlugin{err: io.ErrUnexpectedEOF}
	e, dials := newTestExecutor(t, impl)

	for range 2 {
		_, err := e.Handle(context.Background(), plugin.Request{})
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("Handle() error = %v, want wrapped io.ErrUnexpectedEOF", err)
		}
	}
	if *dials != 2 {
		t.Errorf("dialled %d times, want 2", *dials)
	}
}

func TestHandleCancelledContext(t *testing.T) {
	impl := &mockPlugin{}
	e, dials := newTestExecutor(t, impl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := e.Handle(ctx, plugin.Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Handle() error = %v, want context.Canceled", err)
	}
	if *dials != 0 {
		t.Errorf("dialled %d times, want 0", *dials)
	}
}

func TestCloseWithoutStart(t *testing.T) {
	e, err := New(context.Background(), "/plugins/gradient", WithRunner(&mockRunner{stdout: goPluginInfo}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	e.Close()
	e.Close()
}

var _ protocol.ProcessRunner = (*mockRunner)(nil)

func TestWithEnv(t *testing.T) {
	e, err := New(context.Background(), "/plugins/gradient",
		WithRunner(&mockRunner{stdout: goPluginInfo}),
		WithEnv("GRADIENTFILL_SEED=7"),
		WithEnv("A=1", "B=2"),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	want := []string{"GRADIENTFILL_SEED=7", "A=1", "B=2"}
	if strings.Join(e.env, ",") != strings.Join(want, ",") {
		t.Errorf("env = %v, want %v", e.env, want)
	}
}
