package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/gradientfill/internal/gradient"
	"github.com/jmylchreest/gradientfill/internal/handler"
	"github.com/jmylchreest/gradientfill/internal/scene"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

func newSceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Create and inspect scene documents",
		Long:  `Create, inspect and change the selection of the scene document the plugin works on.`,
	}
	cmd.AddCommand(
		newSceneInitCmd(),
		newSceneShowCmd(),
		newSceneSelectCmd(),
	)
	return cmd
}

// sampleDocument is written by `scene init`.
func sampleDocument() *scene.Document {
	doc := &scene.Document{Page: scene.Page{Name: "Page 1"}}
	for _, n := range []scene.Node{
		{ID: "1:1", Name: "Heading", Type: plugin.NodeText},
		{ID: "1:2", Name: "Card", Type: plugin.NodeRectangle, Fills: []plugin.Paint{{Type: "SOLID"}}},
		{ID: "1:3", Name: "Avatar", Type: plugin.NodeEllipse},
		{ID: "1:4", Name: "Hero", Type: plugin.NodeFrame},
	} {
		// IDs are unique, Add cannot fail.
		_ = doc.Add(n)
	}
	_ = doc.Select("1:2")
	return doc
}

func newSceneInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample scene document",
		Long: `Write a sample scene document with a text node, a rectangle, an ellipse and a
frame, with the rectangle selected. Existing files are kept unless --force is set.

Examples:
  gradientfill scene init
  gradientfill scene init --document card.json --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(cfg.DocumentPath); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", cfg.DocumentPath)
				} else if !errors.Is(err, fs.ErrNotExist) {
					return fmt.Errorf("failed to check %s: %w", cfg.DocumentPath, err)
				}
			}
			if err := sampleDocument().Save(cfg.DocumentPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", cfg.DocumentPath)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing document")
	return cmd
}

func newSceneShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "List the nodes of the scene document",
		Long: `List every node with its type and fills. Selected nodes are marked with their
position in the selection; the plugin only looks at the first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			doc, err := scene.Load(cfg.DocumentPath)
			if err != nil {
				return err
			}
			return describeDocument(cmd, doc)
		},
	}
}

func describeDocument(cmd *cobra.Command, doc *scene.Document) error {
	tbl := newTable("ID", "NAME", "TYPE", "SELECTED", "FILLS")
	for _, n := range doc.Nodes {
		selected := ""
		if i := slices.Index(doc.Page.Selection, n.ID); i >= 0 {
			selected = fmt.Sprintf("#%d", i+1)
		}
		kind := string(n.Type)
		if handler.Eligible(n.Type) {
			kind += "*"
		}
		tbl.addRow(n.ID, n.Name, kind, selected, describeFills(n.Fills))
	}
	if err := tbl.render(cmd.OutOrStdout()); err != nil {
		return err
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), "\n* can take a gradient fill")
	return err
}

// describeFills summarises a fill list, showing gradients as their stop colours.
func describeFills(paints []plugin.Paint) string {
	if len(paints) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(paints))
	for _, p := range paints {
		if p.Type != plugin.PaintGradientLinear || len(p.GradientStops) == 0 {
			parts = append(parts, p.Type)
			continue
		}
		stops := make([]string, len(p.GradientStops))
		for i, s := range p.GradientStops {
			stops[i] = gradient.FromColour(s.Color).Hex()
		}
		parts = append(parts, fmt.Sprintf("%s(%s)", p.Type, strings.Join(stops, " ")))
	}
	return strings.Join(parts, ", ")
}

func newSceneSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [id...]",
		Short: "Change the selection of the scene document",
		Long: `Replace the selection with the given node ids, in order. With no ids the
selection is cleared.

Examples:
  gradientfill scene select 1:3
  gradientfill scene select`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			doc, err := scene.Load(cfg.DocumentPath)
			if err != nil {
				return err
			}
			if err := doc.Select(args...); err != nil {
				return err
			}
			if err := doc.Save(cfg.DocumentPath); err != nil {
				return err
			}
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "selection cleared")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "selected %s\n", strings.Join(args, ", "))
			return nil
		},
	}
}
