package outline

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pentaho/pentaho-reporting-sub000/pkg/report"
)

// Node summarizes one element of a report tree.
type Node struct {
	Type    string `yaml:"type"`
	Name    string `yaml:"name,omitempty"`
	ID      string `yaml:"id"`
	Changes int64  `yaml:"changes"`
	// Group is the index of a group within its report definition.
	Group    *int    `yaml:"group,omitempty"`
	Children []*Node `yaml:"children,omitempty"`
}

// Summarize returns the tree below root, root included.
func Summarize(root report.ReportElement) *Node {
	n := &Node{
		Type:    root.ElementType().Name(),
		Name:    root.Name(),
		ID:      root.ObjectID().String(),
		Changes: root.ChangeTracker(),
	}
	if g, ok := root.(report.Group); ok {
		if def := g.AsElement().ReportDefinition(); def != nil {
			for i := 0; i < def.GroupCount(); i++ {
				if def.Group(i).AsElement() == g.AsElement() {
					idx := i
					n.Group = &idx
					break
				}
			}
		}
	}
	if s, ok := root.(report.Section); ok {
		for _, child := range report.Elements(s) {
			if child != nil {
				n.Children = append(n.Children, Summarize(child))
			}
		}
	}
	return n
}

// Count returns the number of nodes in the tree.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// WriteText prints the tree with one indented line per element.
func (n *Node) WriteText(w io.Writer) error {
	return n.writeText(w, 0)
}

func (n *Node) writeText(w io.Writer, depth int) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Type)
	if n.Name != "" {
		fmt.Fprintf(&b, " %q", n.Name)
	}
	if n.Group != nil {
		fmt.Fprintf(&b, " group=%d", *n.Group)
	}
	id := n.ID
	if len(id) > 8 {
		id = id[:8]
	}
	fmt.Fprintf(&b, " id=%s changes=%d\n", id, n.Changes)
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, c := range n.Children {
		if err := c.writeText(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// WriteYAML encodes the tree as YAML.
func (n *Node) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return err
	}
	return enc.Close()
}
