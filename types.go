// Package hierchunk decomposes source code into a hierarchy of semantically
// meaningful, self-contained text fragments ("chunks") for retrieval and
// embedding pipelines. It uses tree-sitter to find chunk boundaries (functions,
// classes, and any other configured construct), replaces each nested boundary
// with a single-line placeholder referencing the nested chunk's id, and emits a
// flat, ordered list of chunks with full parent/child lineage.
package hierchunk

// Language represents supported programming languages for AST parsing
type Language string

const (
	LanguageTypeScript Language = "typescript"
	LanguageJavaScript Language = "javascript"
	LanguagePython     Language = "python"
	LanguageRust       Language = "rust"
	LanguageGo         Language = "go"
	LanguageJava       Language = "java"
)

// KindRoot is the kind of the single whole-file chunk emitted per run.
const KindRoot = "root"

// KindFunctionPart is the kind of chunks produced by oversized-function
// splitting. All other chunks carry the grammar node type as their kind
// ("function_definition", "class_declaration", ...).
//
// A part's Text repeats the function header before its statement group, but
// its ByteRange/LineRange cover the statement group only; the header's
// coordinates belong to the enclosing function chunk.
const KindFunctionPart = "function_part"

// LineRange represents a range of lines in the source code (0-indexed, inclusive)
type LineRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ByteRange represents a half-open [start, end) byte range in the source code
type ByteRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ParseError represents error information from parsing
type ParseError struct {
	Message     string `json:"message"`
	Recoverable bool   `json:"recoverable"`
}

// Chunk is one emitted fragment of source text plus lineage metadata.
//
// Text is the reconstructed fragment: literal source with each nested boundary
// replaced by its single-line placeholder, dedented so the fragment reads as a
// standalone top-level snippet. Byte and line coordinates always refer to the
// original source and are unaffected by dedenting.
type Chunk struct {
	// ID is unique within one decomposition run. It is hierarchical: the
	// root chunk's id joined to descendants with "::" at the root boundary
	// and "." for deeper nesting, e.g. "main.py::main.helper".
	ID string `json:"id"`

	// Text is the dedented fragment with placeholders inlined.
	Text string `json:"text"`

	// Kind is the grammar node type, or "root" / "function_part".
	Kind string `json:"kind"`

	// ParentID is the enclosing chunk's id; empty for the root chunk.
	ParentID string `json:"parentId,omitempty"`

	// ChildIDs lists directly nested chunks in the order their placeholders
	// appear in Text.
	ChildIDs []string `json:"childIds,omitempty"`

	// Placeholder is the single-line stand-in that represents this chunk in
	// its parent's Text; empty for the root chunk. Substituting each
	// placeholder in the root chunk's text with the referenced chunk's
	// original source span reconstructs the file byte-for-byte.
	Placeholder string `json:"placeholder,omitempty"`

	// File and Language record provenance.
	File     string   `json:"file,omitempty"`
	Language Language `json:"language,omitempty"`

	ByteRange ByteRange `json:"byteRange"`
	LineRange LineRange `json:"lineRange"`

	// Label is the raw declared name of the node, if one was found.
	Label string `json:"label,omitempty"`

	// ParseError is set on every chunk of a run whose tree contained
	// ERROR recovery nodes; nil for a clean parse.
	ParseError *ParseError `json:"parseError,omitempty"`

	// Part is the 1-based index of a "function_part" chunk; zero otherwise.
	Part int `json:"part,omitempty"`
}

// Options controls a decomposition run.
type Options struct {
	// Language overrides extension-based detection.
	Language Language `json:"language,omitempty"`

	// Profile overrides the built-in grammar profile for the language.
	Profile *GrammarProfile `json:"-"`

	// MaxTokens is the size budget for oversized-function splitting,
	// estimated as the non-whitespace byte count of the fragment
	// (default: 400). No true tokenizer is assumed.
	MaxTokens int `json:"maxTokens,omitempty"`

	// SplitOversized enables splitting function chunks that exceed
	// MaxTokens and contain no nested boundaries into consecutive
	// "function_part" chunks at statement granularity.
	SplitOversized bool `json:"splitOversized,omitempty"`

	// SplitImports treats the profile's import node types as boundaries,
	// so import statements become their own chunks.
	SplitImports bool `json:"splitImports,omitempty"`
}

// DefaultOptions returns the default decomposition options.
func DefaultOptions() Options {
	return Options{
		MaxTokens: 400,
	}
}

// FileInput represents a single file to decompose in batch processing.
type FileInput struct {
	Filepath string   `json:"filepath"` // Used for language detection and root ids
	Code     string   `json:"code"`     // Source code content
	Options  *Options `json:"options"`  // Optional per-file overrides
}

// BatchResult represents the result for a single file in batch processing.
type BatchResult struct {
	Filepath string  `json:"filepath"`
	Chunks   []Chunk `json:"chunks"`          // nil on error
	Error    error   `json:"error,omitempty"` // nil on success
}

// BatchOptions contains options for batch processing.
type BatchOptions struct {
	Options
	Concurrency int                                                       `json:"concurrency,omitempty"` // Max files in flight (default: 10)
	OnProgress  func(completed, total int, filepath string, success bool) `json:"-"`
}

// DefaultBatchOptions returns the default batch options.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Options:     DefaultOptions(),
		Concurrency: 10,
	}
}
