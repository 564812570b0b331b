package description

import "fmt"

type PatchOp string

const (
	PatchEdit     PatchOp = "edit"
	PatchAddChild PatchOp = "add_child"
)

// Patch records one user edit applied to the catalog default tree.
type Patch struct {
	Op   PatchOp `json:"op"`
	Path Path    `json:"path"`
	Text string  `json:"text"`
}

// Layer is the user-editable override over a service's catalog default description.
//
// The catalog default is never stored here; callers pass it in as base. The first
// edit of any default bullet clones base in full into ModifiedDefaults, and every
// default edit is also appended to Patches so the modified tree can be traced back
// to the catalog content. CustomDescription only grows.
type Layer struct {
	ModifiedDefaults  []Node  `json:"modifiedDefaults"`
	CustomDescription []Node  `json:"customDescription,omitempty"`
	Patches           []Patch `json:"patches,omitempty"`
}

// IsModified reports whether the default tree has been shadowed.
func (l *Layer) IsModified() bool {
	return l.ModifiedDefaults != nil
}

// Defaults returns the default part of the effective description.
func (l *Layer) Defaults(base []Node) []Node {
	if l.ModifiedDefaults != nil {
		return l.ModifiedDefaults
	}
	return base
}

// Effective returns a fresh copy of (ModifiedDefaults ?? base) followed by CustomDescription.
func (l *Layer) Effective(base []Node) []Node {
	defaults := l.Defaults(base)
	out := make([]Node, 0, len(defaults)+len(l.CustomDescription))
	out = append(out, CloneTree(defaults)...)
	out = append(out, CloneTree(l.CustomDescription)...)
	return out
}

// EditDefault replaces the text of the default bullet at path.
func (l *Layer) EditDefault(base []Node, path Path, text string) error {
	if err := checkPath(l.Defaults(base), path); err != nil {
		return err
	}
	l.shadow(base)
	if err := setText(l.ModifiedDefaults, path, text); err != nil {
		return err
	}
	l.Patches = append(l.Patches, Patch{Op: PatchEdit, Path: clonePath(path), Text: text})
	return nil
}

// AddDefaultChild attaches a sub-bullet under the default bullet at path.
func (l *Layer) AddDefaultChild(base []Node, path Path, text string) error {
	if err := checkPath(l.Defaults(base), path); err != nil {
		return err
	}
	l.shadow(base)
	if _, err := appendChild(l.ModifiedDefaults, path, text); err != nil {
		return err
	}
	l.Patches = append(l.Patches, Patch{Op: PatchAddChild, Path: clonePath(path), Text: text})
	return nil
}

// EditCustom replaces the text of the custom bullet at path.
func (l *Layer) EditCustom(path Path, text string) error {
	return setText(l.CustomDescription, path, text)
}

// AddCustom appends a top-level custom bullet and returns its index.
func (l *Layer) AddCustom(text string) int {
	l.CustomDescription = append(l.CustomDescription, Leaf(text))
	return len(l.CustomDescription) - 1
}

// AddCustomChild attaches a sub-bullet under the custom bullet at path and returns
// the new child's index.
func (l *Layer) AddCustomChild(path Path, text string) (int, error) {
	return appendChild(l.CustomDescription, path, text)
}

// Replay rebuilds the modified default tree from base and the patch log. It returns
// nil when no patch was recorded.
func (l *Layer) Replay(base []Node) ([]Node, error) {
	if len(l.Patches) == 0 {
		return nil, nil
	}
	tree := CloneTree(base)
	if tree == nil {
		tree = []Node{}
	}
	for i, patch := range l.Patches {
		var err error
		switch patch.Op {
		case PatchEdit:
			err = setText(tree, patch.Path, patch.Text)
		case PatchAddChild:
			_, err = appendChild(tree, patch.Path, patch.Text)
		default:
			err = fmt.Errorf("unknown patch op %q", patch.Op)
		}
		if err != nil {
			return nil, fmt.Errorf("replay patch %d: %w", i, err)
		}
	}
	return tree, nil
}

// Clone returns a deep copy of the layer.
func (l Layer) Clone() Layer {
	out := Layer{
		ModifiedDefaults:  CloneTree(l.ModifiedDefaults),
		CustomDescription: CloneTree(l.CustomDescription),
	}
	if l.Patches != nil {
		out.Patches = make([]Patch, len(l.Patches))
		for i, p := range l.Patches {
			out.Patches[i] = Patch{Op: p.Op, Path: clonePath(p.Path), Text: p.Text}
		}
	}
	return out
}

func (l *Layer) shadow(base []Node) {
	if l.ModifiedDefaults != nil {
		return
	}
	l.ModifiedDefaults = CloneTree(base)
	if l.ModifiedDefaults == nil {
		l.ModifiedDefaults = []Node{}
	}
}

func clonePath(p Path) Path {
	out := make(Path, len(p))
	copy(out, p)
	return out
}
