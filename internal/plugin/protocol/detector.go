package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// InfoFlag is the argument plugin binaries answer with their metadata as JSON.
const InfoFlag = "--plugin-info"

// detectTimeout bounds how long a plugin may take to describe itself.
const detectTimeout = 5 * time.Second

// DetectorResult contains information about a detected plugin.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo PluginInfo
}

// Detector queries plugin binaries for their metadata.
type Detector struct {
	runner ProcessRunner
}

// NewDetector creates a Detector. A nil runner uses real processes.
func NewDetector(runner ProcessRunner) *Detector {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Detector{runner: runner}
}

// DetectProtocol detects which protocol a plugin uses by querying it, and
// rejects plugins speaking an incompatible protocol version.
func (d *Detector) DetectProtocol(ctx context.Context, pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(ctx, detectTimeout)
	defer cancel()

	stdout, stderr, err := d.runner.Run(ctx, pluginPath, InfoFlag)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return nil, fmt.Errorf("failed to query plugin: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	var info PluginInfo
	if err := json.Unmarshal(stdout, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	if PluginType(info.PluginProtocol) != PluginTypeGoPlugin {
		return nil, fmt.Errorf("unsupported plugin_protocol: %q", info.PluginProtocol)
	}

	if _, err := IsCompatible(info.ProtocolVersion); err != nil {
		return nil, fmt.Errorf("plugin %s: %w", info.Name, err)
	}

	return &DetectorResult{Type: PluginTypeGoPlugin, PluginInfo: info}, nil
}
