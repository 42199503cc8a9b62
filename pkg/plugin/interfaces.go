// Package plugin provides the public API for gradientfill plugins.
package plugin

import (
	"context"
)

// GradientPlugin is the interface that plugins must implement for go-plugin RPC.
type GradientPlugin interface {
	// Handle processes one panel message against a selection snapshot and
	// returns the effects the host should apply.
	Handle(ctx context.Context, req Request) (Effects, error)

	// GetMetadata returns plugin metadata.
	GetMetadata() PluginInfo
}
