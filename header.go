package hierchunk

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// headerFor extracts a boundary node's header: the literal slice from the
// node's start to the start of its first direct block-typed child (a function's
// signature, a class declaration line). When the node has no block child, the
// first line of its own text is used. Trailing whitespace is trimmed.
func (r *run) headerFor(node *sitter.Node) (string, error) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil || !r.profile.IsBlock(child.Type()) {
			continue
		}
		header, err := r.src.slice(node.StartByte(), child.StartByte())
		if err != nil {
			return "", err
		}
		return strings.TrimRight(header, " \t\r\n"), nil
	}

	text, err := r.src.nodeText(node)
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(text, '\n'); i != -1 {
		text = text[:i]
	}
	return strings.TrimRight(text, " \t\r"), nil
}
