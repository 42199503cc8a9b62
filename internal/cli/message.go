package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/internal/config"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

func newSelectColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select-color <hex>",
		Short: "Fill the selection with a gradient from a colour to its complement",
		Long: `Send a select-color message for the given colour. The plugin previews the
gradient and, when the first selected node is a shape, vector, frame or group,
replaces its fills with the gradient and saves the document.

Examples:
  gradientfill select-color '#336699'
  gradientfill select-color ff8800 --document card.yaml`,
		Aliases: []string{"select-colour"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hex, err := normaliseHex(args[0])
			if err != nil {
				return err
			}
			return runMessage(cmd, plugin.Message{Type: plugin.MessageSelectColor, Color: hex})
		},
	}
}

func newRandomiseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "randomise",
		Short: "Fill the selection with a gradient from a random colour",
		Long: `Send a randomise message. The plugin picks a random colour and handles it
exactly like select-color.

Examples:
  gradientfill randomise
  gradientfill randomise --seed 42`,
		Aliases: []string{"randomize"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMessage(cmd, plugin.Message{Type: plugin.MessageRandomise})
		},
	}
	cmd.Flags().Uint64(config.FlagSeed, 0, "seed for the random colour, unseeded when 0 (env: "+config.EnvSeed+")")
	return cmd
}

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <json>",
		Short: "Send a raw panel message to the plugin",
		Long: `Send a panel message given as JSON, without checking it. Messages of a type
the plugin does not know are ignored.

Examples:
  gradientfill send '{"type":"select-color","color":"#336699"}'
  gradientfill send '{"type":"randomise"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var msg plugin.Message
			if err := json.Unmarshal([]byte(args[0]), &msg); err != nil {
				return fmt.Errorf("invalid message: %w", err)
			}
			return runMessage(cmd, msg)
		},
	}
}

// normaliseHex accepts a colour with or without the leading '#' and returns
// it in lowercase #rrggbb form.
func normaliseHex(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	rgb, err := colour.ParseHex(s)
	if err != nil {
		return "", err
	}
	return rgb.Hex(), nil
}
