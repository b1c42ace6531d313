package hierchunk

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// rootSentinel is the root chunk id used when the input has no file path.
const rootSentinel = "source"

// run owns all mutable state of one decomposition pass: the growing chunk
// list, the id registry, and the monotonically increasing fallback counter.
// Runs over different files share nothing, so independent runs may execute
// concurrently without coordination.
type run struct {
	file    string
	lang    Language
	profile *GrammarProfile
	src     *sourceBuffer
	nws     nwsIndex
	comment string
	opts    Options
	rootID  string
	counter int
	ids     map[string]bool
	chunks  []Chunk
}

func (r *run) nextCounter() int {
	n := r.counter
	r.counter++
	return n
}

// decomposeSource runs one full decomposition pass over a source buffer and
// returns the ordered chunk list: root chunk first, all others by ascending
// start byte.
func decomposeSource(file string, code []byte, opts Options) ([]Chunk, error) {
	lang := opts.Language
	if lang == "" {
		lang = DetectLanguage(file)
	}
	if lang == "" {
		return nil, ErrUnsupportedLanguage
	}

	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultOptions().MaxTokens
	}
	profile := opts.Profile
	if profile == nil {
		profile = ProfileFor(lang)
	}

	parsed, err := parse(code, lang)
	if err != nil {
		return nil, err
	}

	rootID := file
	if rootID == "" {
		rootID = rootSentinel
	}

	r := &run{
		file:    file,
		lang:    lang,
		profile: profile,
		src:     newSourceBuffer(code),
		comment: commentTokenFor(lang),
		opts:    opts,
		rootID:  rootID,
		ids:     map[string]bool{rootID: true},
	}
	if opts.SplitOversized {
		r.nws = buildNWSIndex(code)
	}

	rootNode := parsed.Tree.RootNode()
	text, childIDs, err := r.decompose(rootNode, rootID)
	if err != nil {
		return nil, err
	}

	// The root chunk is the whole file with top-level boundaries replaced
	// by placeholders; it is never itself replaced by one. The root starts
	// at column 0, so no dedenting applies.
	root := Chunk{
		ID:        rootID,
		Text:      text,
		Kind:      KindRoot,
		ChildIDs:  childIDs,
		File:      file,
		Language:  lang,
		ByteRange: nodeByteRange(rootNode),
		LineRange: nodeLineRange(rootNode),
	}

	rest := r.chunks
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].ByteRange.Start < rest[j].ByteRange.Start
	})

	chunks := make([]Chunk, 0, len(rest)+1)
	chunks = append(chunks, root)
	chunks = append(chunks, rest...)

	// Attach the recoverable parse error, if any, to every chunk.
	if parsed.Error != nil {
		for i := range chunks {
			chunks[i].ParseError = parsed.Error
		}
	}

	return chunks, nil
}

// findBoundaries returns the minimal set of nested boundary nodes below node:
// depth-first, stopping descent at the first boundary on each path, so a
// boundary's interior is handled by its own recursive pass rather than
// re-scanned by the ancestor. ERROR recovery nodes are never boundaries and
// are not descended into; their text passes through as literal slices.
func (r *run) findBoundaries(node *sitter.Node) []*sitter.Node {
	var targets []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.ChildCount()); i++ {
			child := n.Child(i)
			if child == nil {
				continue
			}
			switch r.profile.Categorize(child.Type(), r.opts.SplitImports) {
			case CategoryBoundary:
				targets = append(targets, child)
			case CategoryError:
				continue
			default:
				walk(child)
			}
		}
	}
	walk(node)

	// In-order DFS already yields ascending start bytes; sort defensively
	// for error-recovered trees.
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].StartByte() < targets[j].StartByte()
	})
	return targets
}

// decompose reconstructs a node's text with each nested boundary replaced by
// a single-line placeholder, recursing into each boundary to produce its own
// chunk. Returns the text and the ordered child chunk ids.
func (r *run) decompose(node *sitter.Node, id string) (string, []string, error) {
	targets := r.findBoundaries(node)

	var b strings.Builder
	var childIDs []string
	cursor := node.StartByte()

	for _, target := range targets {
		// A target behind the cursor cannot occur under stop-on-match
		// over a well-formed tree; skip rather than corrupt the output
		// on malformed trees.
		if target.StartByte() < cursor {
			continue
		}

		literal, err := r.src.slice(cursor, target.StartByte())
		if err != nil {
			return "", nil, fmt.Errorf("node %q: %w", node.Type(), err)
		}
		b.WriteString(literal)

		placeholder, childID, err := r.buildChunk(target, id)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(placeholder)
		childIDs = append(childIDs, childID)
		cursor = target.EndByte()
	}

	tail, err := r.src.slice(cursor, node.EndByte())
	if err != nil {
		return "", nil, fmt.Errorf("node %q: %w", node.Type(), err)
	}
	b.WriteString(tail)

	return b.String(), childIDs, nil
}

// buildChunk turns a boundary node into a recorded chunk and returns the
// placeholder to install in the ancestor's text along with the chunk's id.
func (r *run) buildChunk(node *sitter.Node, parentID string) (string, string, error) {
	label, err := nodeLabel(node, r.src)
	if err != nil {
		return "", "", err
	}
	id := r.assignID(node, label, parentID)

	header, err := r.headerFor(node)
	if err != nil {
		return "", "", err
	}

	content, childIDs, err := r.decompose(node, id)
	if err != nil {
		return "", "", err
	}

	prefix := indentPrefix(r.src, node)
	content = dedent(content, prefix)

	placeholder := buildPlaceholder(header, r.comment, id)

	chunk := Chunk{
		ID:          id,
		Text:        content,
		Kind:        node.Type(),
		ParentID:    parentID,
		ChildIDs:    childIDs,
		Placeholder: placeholder,
		File:        r.file,
		Language:    r.lang,
		ByteRange:   nodeByteRange(node),
		LineRange:   nodeLineRange(node),
		Label:       label,
	}

	if r.opts.SplitOversized && len(childIDs) == 0 &&
		r.profile.IsFunction(node.Type()) &&
		EstimateSize(content) > r.opts.MaxTokens {
		partIDs, err := r.splitOversized(node, id, prefix)
		if err != nil {
			return "", "", err
		}
		chunk.ChildIDs = append(chunk.ChildIDs, partIDs...)
	}

	r.chunks = append(r.chunks, chunk)
	return placeholder, id, nil
}

func nodeByteRange(node *sitter.Node) ByteRange {
	return ByteRange{Start: int(node.StartByte()), End: int(node.EndByte())}
}

func nodeLineRange(node *sitter.Node) LineRange {
	return LineRange{Start: int(node.StartPoint().Row), End: int(node.EndPoint().Row)}
}
