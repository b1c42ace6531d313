package hierchunk

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// splitOversized splits an oversized function-like leaf into consecutive
// "function_part" chunks: the function's direct statement-level children are
// grouped greedily so that no group plus the re-prefixed header exceeds the
// size budget. A split boundary is always a statement boundary, never
// mid-statement, and the first statement of a group is kept whole even when
// it alone exceeds the budget, so content is never dropped. Parts are emitted
// in source order under the function's chunk.
//
// When the function has no block body to split on, the whole node stays one
// chunk and no parts are emitted.
func (r *run) splitOversized(node *sitter.Node, funcID, prefix string) ([]string, error) {
	var body *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child != nil && r.profile.IsBlock(child.Type()) {
			body = child
			break
		}
	}
	if body == nil || body.NamedChildCount() == 0 {
		return nil, nil
	}

	headerRaw, err := r.src.slice(node.StartByte(), body.StartByte())
	if err != nil {
		return nil, fmt.Errorf("node %q: %w", node.Type(), err)
	}
	budget := r.opts.MaxTokens - EstimateSize(headerRaw)
	if budget < 1 {
		budget = 1
	}

	type stmtGroup struct {
		start, end *sitter.Node
		size       int
	}
	var groups []stmtGroup
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		if stmt == nil {
			continue
		}
		size := r.nws.nodeSize(stmt)
		if len(groups) == 0 || groups[len(groups)-1].size+size > budget {
			groups = append(groups, stmtGroup{start: stmt, end: stmt, size: size})
		} else {
			groups[len(groups)-1].end = stmt
			groups[len(groups)-1].size += size
		}
	}
	if len(groups) < 2 {
		return nil, nil
	}

	ids := make([]string, 0, len(groups))
	for i, g := range groups {
		text, err := r.src.slice(g.start.StartByte(), g.end.EndByte())
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", node.Type(), err)
		}

		part := i + 1
		id := fmt.Sprintf("%s%spart%d", funcID, nestedSeparator, part)
		for r.ids[id] {
			id = fmt.Sprintf("%s%spart%d_%d", funcID, nestedSeparator, part, r.nextCounter())
		}
		r.ids[id] = true

		r.chunks = append(r.chunks, Chunk{
			ID:       id,
			Text:     dedent(headerRaw+text, prefix),
			Kind:     KindFunctionPart,
			ParentID: funcID,
			File:     r.file,
			Language: r.lang,
			ByteRange: ByteRange{
				Start: int(g.start.StartByte()),
				End:   int(g.end.EndByte()),
			},
			LineRange: LineRange{
				Start: int(g.start.StartPoint().Row),
				End:   int(g.end.EndPoint().Row),
			},
			Part: part,
		})
		ids = append(ids, id)
	}
	return ids, nil
}
