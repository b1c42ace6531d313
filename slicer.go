package hierchunk

import (
	"errors"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrInvalidRange is returned when a node carries a byte range that violates
// the parser's input contract (start > end or out of bounds). The decomposer
// fails fast on it rather than silently truncating output.
var ErrInvalidRange = errors.New("invalid byte range")

// sourceBuffer is the single point of truth for "what text does this node
// correspond to". Source bytes are UTF-8; slicing is byte-exact, so multibyte
// sequences are preserved as long as node boundaries are valid.
type sourceBuffer struct {
	data []byte
}

func newSourceBuffer(data []byte) *sourceBuffer {
	return &sourceBuffer{data: data}
}

func (s *sourceBuffer) len() int {
	return len(s.data)
}

// slice extracts the half-open byte range [start, end). An empty string is
// returned when start >= end; ranges outside the buffer are a contract
// violation by the parser collaborator.
func (s *sourceBuffer) slice(start, end uint32) (string, error) {
	if int(start) > len(s.data) || int(end) > len(s.data) || start > end {
		return "", fmt.Errorf("%w: [%d, %d) in %d-byte source", ErrInvalidRange, start, end, len(s.data))
	}
	if start >= end {
		return "", nil
	}
	return string(s.data[start:end]), nil
}

// nodeText extracts a node's full text, naming the node in any diagnostic.
func (s *sourceBuffer) nodeText(node *sitter.Node) (string, error) {
	text, err := s.slice(node.StartByte(), node.EndByte())
	if err != nil {
		return "", fmt.Errorf("node %q: %w", node.Type(), err)
	}
	return text, nil
}
