// Package description models the bullet trees that describe a service in a proposal.
package description

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is one bullet. A node with nil Children is a leaf and serialises as a bare
// string; a node with a non-nil Children slice (even an empty one) is a branch and
// serialises as {"text": ..., "children": [...]}.
type Node struct {
	Text     string
	Children []Node
}

// Leaf returns a leaf node.
func Leaf(text string) Node {
	return Node{Text: text}
}

// Branch returns a branch node with the given children.
func Branch(text string, children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{Text: text, Children: children}
}

func (n Node) IsLeaf() bool {
	return n.Children == nil
}

// Clone returns a deep, order-preserving copy of the node.
func (n Node) Clone() Node {
	out := Node{Text: n.Text}
	if n.Children != nil {
		out.Children = CloneTree(n.Children)
	}
	return out
}

// CloneTree deep-copies a forest. A nil forest stays nil.
func CloneTree(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, node := range nodes {
		out[i] = node.Clone()
	}
	return out
}

// Equal reports whether two forests are structurally identical, including the
// leaf/branch distinction.
func Equal(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Text != b[i].Text {
			return false
		}
		if a[i].IsLeaf() != b[i].IsLeaf() {
			return false
		}
		if !Equal(a[i].Children, b[i].Children) {
			return false
		}
	}
	return true
}

// Flatten renders the forest as indented lines, two spaces per level.
func Flatten(nodes []Node) []string {
	var lines []string
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		for _, node := range nodes {
			lines = append(lines, strings.Repeat("  ", depth)+node.Text)
			walk(node.Children, depth+1)
		}
	}
	walk(nodes, 0)
	return lines
}

type branchWire struct {
	Text     string `json:"text" yaml:"text"`
	Children []Node `json:"children" yaml:"children"`
}

func (n Node) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(n.Text)
	}
	return json.Marshal(branchWire{Text: n.Text, Children: n.Children})
}

func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*n = Leaf(text)
		return nil
	}

	var wire branchWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("description node must be a string or an object: %w", err)
	}
	*n = Branch(wire.Text, wire.Children...)
	return nil
}

func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*n = Leaf(value.Value)
		return nil
	case yaml.MappingNode:
		var wire branchWire
		if err := value.Decode(&wire); err != nil {
			return err
		}
		*n = Branch(wire.Text, wire.Children...)
		return nil
	default:
		return fmt.Errorf("line %d: description node must be a string or a mapping", value.Line)
	}
}
