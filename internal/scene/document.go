// Package scene is the reference host's document model: a flat list of
// nodes, a current selection, and the fill lists the plugin replaces.
package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/jmylchreest/gradientfill/internal/security"
	"github.com/jmylchreest/gradientfill/pkg/plugin"
)

// MaxDocumentSize is the largest scene file Load accepts.
const MaxDocumentSize = 16 << 20

// DefaultFileMode is the mode of newly created documents. Save keeps the
// mode of a document it overwrites.
const DefaultFileMode os.FileMode = 0o644

// Node is a canvas object.
type Node struct {
	ID    string          `json:"id"`
	Name  string          `json:"name,omitempty"`
	Type  plugin.NodeType `json:"type"`
	Fills []plugin.Paint  `json:"fills,omitempty"`
}

// Page holds the user's current selection, as node IDs in selection order.
type Page struct {
	Name      string   `json:"name,omitempty"`
	Selection []string `json:"selection,omitempty"`
}

// Document is a scene loaded from a YAML or JSON file.
type Document struct {
	Page  Page   `json:"page"`
	Nodes []Node `json:"nodes"`

	index map[string]int
}

// Parse decodes a document from YAML or JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if err := doc.reindex(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads a document from path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path) // #nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(security.NewLimitedReader(f, MaxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Save writes the document to path, as JSON when the extension is .json and
// YAML otherwise. The file is replaced atomically.
func (d *Document) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(d, "", "  ")
		data = append(data, '\n')
	} else {
		data, err = yaml.Marshal(d)
	}
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	mode := DefaultFileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".scene-*")
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save document: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to save document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}
	return nil
}

func (d *Document) reindex() error {
	d.index = make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d has no id", i)
		}
		if _, dup := d.index[n.ID]; dup {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		d.index[n.ID] = i
	}
	return nil
}

// Node returns the node with the given id. Nodes appended to Nodes directly
// are found too.
func (d *Document) Node(id string) (*Node, bool) {
	if len(d.index) != len(d.Nodes) {
		// A failed reindex leaves a partial index; the scan below covers it.
		_ = d.reindex()
	}
	if i, ok := d.index[id]; ok && i < len(d.Nodes) && d.Nodes[i].ID == id {
		return &d.Nodes[i], true
	}
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// Add appends a node to the document.
func (d *Document) Add(n Node) error {
	if d.index == nil || len(d.index) != len(d.Nodes) {
		if err := d.reindex(); err != nil {
			return err
		}
	}
	if n.ID == "" {
		return fmt.Errorf("node has no id")
	}
	if _, dup := d.index[n.ID]; dup {
		return fmt.Errorf("duplicate node id %q", n.ID)
	}
	d.Nodes = append(d.Nodes, n)
	d.index[n.ID] = len(d.Nodes) - 1
	return nil
}

// Select replaces the selection. Every id must exist.
func (d *Document) Select(ids ...string) error {
	for _, id := range ids {
		if _, ok := d.Node(id); !ok {
			return fmt.Errorf("no node with id %q", id)
		}
	}
	d.Page.Selection = append([]string(nil), ids...)
	return nil
}

// Selection returns the selected nodes in selection order. Selected ids that
// no longer exist are skipped.
func (d *Document) Selection() []plugin.NodeRef {
	refs := make([]plugin.NodeRef, 0, len(d.Page.Selection))
	for _, id := range d.Page.Selection {
		if n, ok := d.Node(id); ok {
			refs = append(refs, plugin.NodeRef{ID: n.ID, Type: n.Type})
		}
	}
	return refs
}

// SetFills replaces the whole fill list of a node.
func (d *Document) SetFills(id string, paints []plugin.Paint) error {
	n, ok := d.Node(id)
	if !ok {
		return fmt.Errorf("no node with id %q", id)
	}
	n.Fills = paints
	return nil
}
