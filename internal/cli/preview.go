package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/gradientfill/internal/colour"
	"github.com/jmylchreest/gradientfill/internal/gradient"
	"github.com/jmylchreest/gradientfill/internal/preview"
	"github.com/jmylchreest/gradientfill/internal/scene"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

func newPreviewCmd() *cobra.Command {
	var (
		output string
		nodeID string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "preview [hex]",
		Short: "Render a gradient to a PNG file",
		Long: `Render the gradient for a colour, or the gradient fill of a node in the
scene document, to a PNG image. Rendering a colour does not touch the document.

Examples:
  gradientfill preview '#336699' -o gradient.png
  gradientfill preview --node 1:2 -o card.png --width 200 --height 200`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (nodeID != "") {
				return errors.New("give either a colour or --node")
			}

			var paint plugin.Paint
			if nodeID != "" {
				p, err := nodePaint(cmd, nodeID)
				if err != nil {
					return err
				}
				paint = p
			} else {
				hex, err := normaliseHex(args[0])
				if err != nil {
					return err
				}
				complement := colour.Complement(hex)
				paint = gradient.Build(hex, complement)
				fmt.Fprintln(cmd.OutOrStdout(), gradient.CSS(hex, complement))
			}

			if err := preview.SavePNG(output, paint, width, height); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", output, width, height)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "gradient.png", "PNG file to write")
	cmd.Flags().StringVar(&nodeID, "node", "", "render the gradient fill of this node instead")
	cmd.Flags().IntVar(&width, "width", preview.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", preview.DefaultHeight, "image height in pixels")
	return cmd
}

// nodePaint returns the first linear gradient in a node's fills.
func nodePaint(cmd *cobra.Command, id string) (plugin.Paint, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return plugin.Paint{}, err
	}
	doc, err := scene.Load(cfg.DocumentPath)
	if err != nil {
		return plugin.Paint{}, err
	}
	node, ok := doc.Node(id)
	if !ok {
		return plugin.Paint{}, fmt.Errorf("no node with id %q", id)
	}
	for _, paint := range node.Fills {
		if paint.Type == plugin.PaintGradientLinear {
			return paint, nil
		}
	}
	return plugin.Paint{}, fmt.Errorf("node %q has no linear gradient fill", id)
}
