package hierchunk

import (
	"context"
	"errors"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

var (
	// ErrUnsupportedLanguage is returned when no grammar is bundled for the
	// requested language and language detection fails.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrParseFailed is returned when parsing fails outright.
	ErrParseFailed = errors.New("parse failed")
)

// parseResult holds a parsed tree plus any recoverable parse error.
type parseResult struct {
	Tree  *sitter.Tree
	Error *ParseError
}

// parserPool manages a pool of tree-sitter parsers
var parserPool = sync.Pool{
	New: func() interface{} {
		return sitter.NewParser()
	},
}

func getParser() *sitter.Parser {
	return parserPool.Get().(*sitter.Parser)
}

func putParser(p *sitter.Parser) {
	parserPool.Put(p)
}

// parse parses source code and returns the syntax tree
func parse(code []byte, lang Language) (*parseResult, error) {
	return parseWithContext(context.Background(), code, lang)
}

// parseWithContext parses source code with a context for cancellation
func parseWithContext(ctx context.Context, code []byte, lang Language) (*parseResult, error) {
	grammar := grammarFor(lang)
	if grammar == nil {
		return nil, ErrUnsupportedLanguage
	}

	parser := getParser()
	defer putParser(parser)

	parser.SetLanguage(grammar)

	tree, err := parser.ParseCtx(ctx, nil, code)
	if err != nil {
		return nil, errors.Join(ErrParseFailed, err)
	}

	result := &parseResult{
		Tree: tree,
	}

	// Error-recovery nodes are tolerated: their text passes through the
	// decomposition as opaque literal slices.
	if tree.RootNode().HasError() {
		result.Error = &ParseError{
			Message:     "parse error in source code",
			Recoverable: true,
		}
	}

	return result, nil
}

// parseString is a convenience wrapper for parsing string code
func parseString(code string, lang Language) (*parseResult, error) {
	return parse([]byte(code), lang)
}
