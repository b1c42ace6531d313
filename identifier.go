package hierchunk

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Namespace separators: the root chunk's id is joined to its direct children
// with "::"; deeper nesting uses ".".
const (
	rootSeparator   = "::"
	nestedSeparator = "."
)

// labelFieldNames are the semantic field names consulted for a declared name,
// in priority order.
var labelFieldNames = []string{"name", "identifier"}

// nodeLabel returns the raw declared name of a node, or "" when none of the
// label fields yields a non-empty match.
func nodeLabel(node *sitter.Node, src *sourceBuffer) (string, error) {
	for _, field := range labelFieldNames {
		nameNode := node.ChildByFieldName(field)
		if nameNode == nil {
			continue
		}
		label, err := src.nodeText(nameNode)
		if err != nil {
			return "", err
		}
		if label != "" {
			return label, nil
		}
	}
	return "", nil
}

// sanitizeLabel converts a raw label into an identifier-safe form: whitespace
// runs become "_", characters outside [A-Za-z0-9_] are stripped, and leading
// or trailing underscores are trimmed. Returns "" when nothing usable remains.
func sanitizeLabel(label string) string {
	var b strings.Builder
	lastWasSpace := false
	for i := 0; i < len(label); i++ {
		c := label[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			if !lastWasSpace {
				b.WriteByte('_')
			}
			lastWasSpace = true
		case c == '_' ||
			(c >= 'a' && c <= 'z') ||
			(c >= 'A' && c <= 'Z') ||
			(c >= '0' && c <= '9'):
			b.WriteByte(c)
			lastWasSpace = false
		default:
			lastWasSpace = false
		}
	}
	return strings.Trim(b.String(), "_")
}

// joinID composes a child identifier under its parent namespace.
func joinID(parentID, base string, parentIsRoot bool) string {
	if parentID == "" {
		return base
	}
	if parentIsRoot {
		return parentID + rootSeparator + base
	}
	return parentID + nestedSeparator + base
}

// assignID derives a unique hierarchical id for a node. Nodes without a usable
// label synthesize "<node_type>_<n>" from the run-scoped counter; a sanitized
// label that collides with an already-assigned id falls back to "<label>_<n>"
// with the same counter, so duplicate-named siblings never overwrite each
// other and no chunk is dropped.
func (r *run) assignID(node *sitter.Node, label, parentID string) string {
	base := sanitizeLabel(label)
	if base == "" {
		base = fmt.Sprintf("%s_%d", node.Type(), r.nextCounter())
	}

	id := joinID(parentID, base, parentID == r.rootID)
	for r.ids[id] {
		id = joinID(parentID, fmt.Sprintf("%s_%d", base, r.nextCounter()), parentID == r.rootID)
	}
	r.ids[id] = true
	return id
}
