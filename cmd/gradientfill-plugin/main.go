// gradientfill-plugin serves the complementary gradient handler as an
// external go-plugin binary. Run with --plugin-info to print its metadata.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/internal/config"
	"github.com/jmylchreest/gradientfill/internal/handler"
	"github.com/jmylchreest/gradientfill/internal/plugin/protocol"
	pluginapi "github.com/jmylchreest/gradientfill/pkg/plugin"
)

func main() {
	// The host filters by level; go-plugin parses JSON lines from stderr.
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "gradient",
		Output:     os.Stderr,
		Level:      hclog.Debug,
		JSONFormat: true,
	})

	cfg, err := config.NewBuilder().WithEnv().Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	impl := handler.NewPlugin(handler.New(
		handler.WithSource(colour.NewSource(cfg.Seed)),
		handler.WithLogger(logger),
	))

	if len(os.Args) > 1 && os.Args[1] == protocol.InfoFlag {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(impl.GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		return
	}

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]plugin.Plugin{
			pluginapi.PluginName: &pluginapi.GradientPluginRPC{Impl: impl},
		},
		Logger: logger,
	})
}
