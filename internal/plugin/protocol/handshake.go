// Package protocol defines the plugin protocol version and compatibility checking.
package protocol

import (
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// Handshake is the go-plugin handshake shared by the host and plugin binaries.
//
// NOTE: go-plugin's ProtocolVersion is a single uint that must match exactly.
// The full semantic version check (including MinCompatibleVersion) happens
// separately via the --plugin-info query and IsCompatible().
var Handshake = plugin.Handshake

// PluginInfo is a type alias to the public plugin.PluginInfo type.
// External plugins should import github.com/jmylchreest/gradientfill/pkg/plugin directly.
type PluginInfo = plugin.PluginInfo

// PluginType is a type alias to the public plugin.PluginType type.
type PluginType = plugin.PluginType

// Protocol types re-exported for host code.
const (
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin
	PluginTypeBuiltin  = plugin.PluginTypeBuiltin
)
