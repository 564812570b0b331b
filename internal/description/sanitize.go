package description

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// CleanText strips markup from user-entered bullet text. The policy escapes
// entities, so they are decoded again to keep plain text such as "Holz & Stein".
func CleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// SanitizeTree returns a copy of nodes with every text passed through CleanText.
func SanitizeTree(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, node := range nodes {
		out[i] = Node{Text: CleanText(node.Text)}
		if node.Children != nil {
			out[i].Children = SanitizeTree(node.Children)
		}
	}
	return out
}

// Sanitize cleans every user-supplied text held by the layer.
func (l *Layer) Sanitize() {
	l.ModifiedDefaults = SanitizeTree(l.ModifiedDefaults)
	l.CustomDescription = SanitizeTree(l.CustomDescription)
	for i := range l.Patches {
		l.Patches[i].Text = CleanText(l.Patches[i].Text)
	}
}
