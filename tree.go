package hierchunk

import (
	"errors"
	"fmt"
)

// ErrInconsistentLineage is returned by BuildChunkTree when the flat chunk
// list violates its own lineage metadata (duplicate ids, dangling parent
// references, or a missing/duplicated root).
var ErrInconsistentLineage = errors.New("inconsistent chunk lineage")

// ChunkNode is one node of a reconstructed chunk tree.
type ChunkNode struct {
	Chunk    *Chunk
	Children []*ChunkNode
	Parent   *ChunkNode `json:"-"`
}

// ChunkTree is the parent/child hierarchy reconstructed from a flat
// decomposition output, without re-parsing any source.
type ChunkTree struct {
	Root *ChunkNode
	ByID map[string]*ChunkNode
}

// BuildChunkTree links a run's flat chunk list back into a tree using
// ParentID/ChildIDs. Children are attached in their parent's ChildIDs order,
// which is the order their placeholders appear in the parent's text.
func BuildChunkTree(chunks []Chunk) (*ChunkTree, error) {
	byID := make(map[string]*ChunkNode, len(chunks))
	var root *ChunkNode

	for i := range chunks {
		c := &chunks[i]
		if _, exists := byID[c.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInconsistentLineage, c.ID)
		}
		node := &ChunkNode{Chunk: c}
		byID[c.ID] = node

		if c.Kind == KindRoot {
			if root != nil {
				return nil, fmt.Errorf("%w: multiple root chunks", ErrInconsistentLineage)
			}
			root = node
		}
	}
	if root == nil {
		return nil, fmt.Errorf("%w: no root chunk", ErrInconsistentLineage)
	}

	for _, node := range byID {
		if node == root {
			continue
		}
		parent, ok := byID[node.Chunk.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: chunk %q references missing parent %q",
				ErrInconsistentLineage, node.Chunk.ID, node.Chunk.ParentID)
		}
		node.Parent = parent
	}

	// Attach children in ChildIDs order rather than map order.
	var attach func(node *ChunkNode) error
	attach = func(node *ChunkNode) error {
		for _, childID := range node.Chunk.ChildIDs {
			child, ok := byID[childID]
			if !ok {
				return fmt.Errorf("%w: chunk %q lists missing child %q",
					ErrInconsistentLineage, node.Chunk.ID, childID)
			}
			node.Children = append(node.Children, child)
			if err := attach(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := attach(root); err != nil {
		return nil, err
	}

	return &ChunkTree{Root: root, ByID: byID}, nil
}

// Walk visits every node of the tree depth-first, parents before children.
func (t *ChunkTree) Walk(visit func(node *ChunkNode, depth int)) {
	var walk func(node *ChunkNode, depth int)
	walk = func(node *ChunkNode, depth int) {
		visit(node, depth)
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	walk(t.Root, 0)
}
