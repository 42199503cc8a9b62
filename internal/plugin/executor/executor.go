// Package executor runs external gradient plugins over the go-plugin RPC
// protocol and dispatches panel messages to them.
package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/gradientfill/internal/plugin/protocol"
	pluginapi "github.com/jmylchreest/gradientfill/pkg/plugin"
)

// PluginExecutor owns one external plugin process. The process is started on
// the first message and reused until Close.
type PluginExecutor struct {
	path    string
	info    protocol.PluginInfo
	logger  hclog.Logger
	runner  protocol.ProcessRunner
	verbose bool
	env     []string

	mu        sync.Mutex
	client    *plugin.Client
	rpcClient pluginapi.GradientPlugin

	// dial connects to the plugin; replaced in tests.
	dial func() (pluginapi.GradientPlugin, error)
}

// Option configures a PluginExecutor.
type Option func(*PluginExecutor)

// WithVerbose forwards plugin logs at debug level.
func WithVerbose(verbose bool) Option {
	return func(e *PluginExecutor) {
		e.verbose = verbose
	}
}

// WithLogger sets the parent logger for plugin output.
func WithLogger(logger hclog.Logger) Option {
	return func(e *PluginExecutor) {
		e.logger = logger
	}
}

// WithEnv adds KEY=VALUE pairs to the plugin process environment.
func WithEnv(kv ...string) Option {
	return func(e *PluginExecutor) {
		e.env = append(e.env, kv...)
	}
}

// WithRunner sets the process runner used for protocol detection.
func WithRunner(runner protocol.ProcessRunner) Option {
	return func(e *PluginExecutor) {
		e.runner = runner
	}
}

// New creates a PluginExecutor for the plugin binary at pluginPath after
// checking that it speaks a compatible protocol.
func New(ctx context.Context, pluginPath string, opts ...Option) (*PluginExecutor, error) {
	e := &PluginExecutor{path: pluginPath}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = hclog.NewNullLogger()
	}
	e.dial = e.dialGoPlugin

	result, err := protocol.NewDetector(e.runner).DetectProtocol(ctx, pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}
	e.info = result.PluginInfo

	e.logger.Debug("detected plugin", "path", pluginPath, "name", e.info.Name, "protocol_version", e.info.ProtocolVersion)
	return e, nil
}

// Info returns the metadata the plugin reported during detection.
func (e *PluginExecutor) Info() protocol.PluginInfo {
	return e.info
}

// Handle dispatches one request to the plugin, starting it if needed.
func (e *PluginExecutor) Handle(ctx context.Context, req pluginapi.Request) (pluginapi.Effects, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return pluginapi.Effects{}, err
	}

	if e.rpcClient == nil {
		client, err := e.dial()
		if err != nil {
			return pluginapi.Effects{}, err
		}
		e.rpcClient = client
	}

	effects, err := e.rpcClient.Handle(ctx, req)
	if err != nil {
		var rpcErr *pluginapi.RPCError
		if !errors.As(err, &rpcErr) {
			// The connection is unusable; restart the plugin on the next message.
			e.logger.Warn("plugin connection failed", "path", e.path, "error", err)
			e.closeLocked()
		}
		return pluginapi.Effects{}, fmt.Errorf("plugin %s: %w", e.info.Name, err)
	}
	return effects, nil
}

// Close cleans up any resources held by the executor.
func (e *PluginExecutor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeLocked()
}

func (e *PluginExecutor) closeLocked() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
	}
	e.rpcClient = nil
}

func (e *PluginExecutor) pluginLogger() hclog.Logger {
	if !e.verbose {
		return hclog.NewNullLogger()
	}
	return e.logger.Named("plugin")
}

func (e *PluginExecutor) dialGoPlugin() (pluginapi.GradientPlugin, error) {
	cmd := exec.Command(e.path) // #nosec G204 -- plugin path is configured by the user
	if len(e.env) > 0 {
		cmd.Env = append(os.Environ(), e.env...)
	}

	e.client = plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]plugin.Plugin{
			pluginapi.PluginName: &pluginapi.GradientPluginRPC{},
		},
		Cmd:              cmd,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolNetRPC},
		Logger:           e.pluginLogger(),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.closeLocked()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(pluginapi.PluginName)
	if err != nil {
		e.closeLocked()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(pluginapi.GradientPlugin)
	if !ok {
		e.closeLocked()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	return client, nil
}
