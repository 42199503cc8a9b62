// Package plugin provides the public API for gradientfill plugins.
package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// GradientPluginRPC implements the go-plugin Plugin interface for gradient plugins.
type GradientPluginRPC struct {
	plugin.Plugin
	Impl GradientPlugin
}

// Server returns an RPC server for this plugin.
func (p *GradientPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &GradientPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *GradientPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &GradientPluginRPCClient{client: c}, nil
}

// GradientPluginRPCServer is the RPC server implementation for gradient plugins.
type GradientPluginRPCServer struct {
	Impl GradientPlugin
}

// HandleResponse carries effects back over net/rpc. Handler errors travel as
// a string so they survive gob encoding.
type HandleResponse struct {
	Effects Effects
	Error   string
}

// Handle implements the RPC method for message handling.
func (s *GradientPluginRPCServer) Handle(req Request, resp *HandleResponse) error {
	effects, err := s.Impl.Handle(context.Background(), req)
	resp.Effects = effects
	if err != nil {
		resp.Error = err.Error()
	}
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *GradientPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GradientPluginRPCClient is the RPC client implementation for gradient plugins.
type GradientPluginRPCClient struct {
	client *rpc.Client
}

// Handle calls the remote Handle method.
func (c *GradientPluginRPCClient) Handle(_ context.Context, req Request) (Effects, error) {
	var resp HandleResponse
	if err := c.client.Call("Plugin.Handle", req, &resp); err != nil {
		return Effects{}, err
	}
	if resp.Error != "" {
		return resp.Effects, &RPCError{Message: resp.Error}
	}
	return resp.Effects, nil
}

// GetMetadata calls the remote GetMetadata method.
func (c *GradientPluginRPCClient) GetMetadata() PluginInfo {
	var info PluginInfo
	if err := c.client.Call("Plugin.GetMetadata", new(any), &info); err != nil {
		return PluginInfo{}
	}
	return info
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
