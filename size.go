package hierchunk

import sitter "github.com/smacker/go-tree-sitter"

// Size estimation for the oversized-function budget. No true tokenizer is
// assumed: the unit is the non-whitespace (NWS) byte count of a fragment,
// which tracks token counts closely enough to budget chunks and is estimable
// from raw bytes alone.

func isWhitespace(c byte) bool {
	return c <= 32
}

// EstimateSize returns the budget size of a text fragment in NWS bytes.
func EstimateSize(text string) int {
	count := 0
	for i := 0; i < len(text); i++ {
		if !isWhitespace(text[i]) {
			count++
		}
	}
	return count
}

// nwsIndex is a cumulative sum over the source buffer for O(1) NWS range
// queries during statement grouping.
type nwsIndex []uint32

func buildNWSIndex(code []byte) nwsIndex {
	cumsum := make(nwsIndex, len(code)+1)
	count := uint32(0)
	for i := 0; i < len(code); i++ {
		if !isWhitespace(code[i]) {
			count++
		}
		cumsum[i+1] = count
	}
	return cumsum
}

// count returns the NWS byte count for a clamped [start, end) range.
func (ix nwsIndex) count(start, end int) int {
	if end > len(ix)-1 {
		end = len(ix) - 1
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return 0
	}
	return int(ix[end] - ix[start])
}

// nodeSize returns the NWS byte count of a node's span.
func (ix nwsIndex) nodeSize(node *sitter.Node) int {
	return ix.count(int(node.StartByte()), int(node.EndByte()))
}
