package description

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPath = errors.New("invalid description path")

// Path addresses a node by child indices starting at the root forest.
type Path []int

// ParsePath reads a dotted path such as "0.2.1".
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	parts := strings.Split(s, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		path = append(path, idx)
	}
	return path, nil
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ".")
}

// resolve returns a pointer to the addressed node inside nodes.
func resolve(nodes []Node, path Path) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPath)
	}
	current := nodes
	var node *Node
	for depth, idx := range path {
		if idx < 0 || idx >= len(current) {
			return nil, fmt.Errorf("%w: %s (index %d out of range at depth %d)", ErrInvalidPath, path, idx, depth)
		}
		node = &current[idx]
		current = node.Children
	}
	return node, nil
}

func checkPath(nodes []Node, path Path) error {
	_, err := resolve(nodes, path)
	return err
}

func setText(nodes []Node, path Path, text string) error {
	node, err := resolve(nodes, path)
	if err != nil {
		return err
	}
	node.Text = text
	return nil
}

// appendChild attaches a leaf under the addressed node; a leaf turns into a branch here.
func appendChild(nodes []Node, path Path, text string) (int, error) {
	node, err := resolve(nodes, path)
	if err != nil {
		return 0, err
	}
	if node.Children == nil {
		node.Children = []Node{}
	}
	node.Children = append(node.Children, Leaf(text))
	return len(node.Children) - 1, nil
}
