package hierchunk

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// indentPrefix captures the literal whitespace immediately before a node's
// first column on its starting line. It is empty when the node starts at
// column 0 or when the preceding text on the line is not all whitespace
// (the node is not alone on its line).
func indentPrefix(src *sourceBuffer, node *sitter.Node) string {
	col := node.StartPoint().Column
	if col == 0 {
		return ""
	}
	start := node.StartByte()
	if int(start) > src.len() || col > start {
		return ""
	}
	prefix := src.data[start-col : start]
	for i := 0; i < len(prefix); i++ {
		if prefix[i] != ' ' && prefix[i] != '\t' {
			return ""
		}
	}
	return string(prefix)
}

// dedent strips the captured ambient indentation prefix from every line of
// text after the first, so the fragment reads as a standalone top-level
// snippet. The first line is never modified (it already starts exactly at the
// node boundary). Lines shorter than the prefix or not matching it are left
// as-is: the transform never over-strips and never errors, which keeps
// continuation lines with unrelated indentation intact.
func dedent(text, prefix string) string {
	if prefix == "" || text == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], prefix) {
			lines[i] = lines[i][len(prefix):]
		}
	}
	return strings.Join(lines, "\n")
}
