package hierchunk

// GrammarProfile declares, per language, which grammar node types the
// decomposer cares about. NestedBoundaryTypes is the governing set for
// recursive splitting: any construct listed there becomes its own chunk when
// found inside another chunk's scan. It need not equal the union of
// FunctionTypes and ClassTypes; operators may add conditionals, loops, or
// other constructs they want as retrievable units.
type GrammarProfile struct {
	FunctionTypes       map[string]bool
	ClassTypes          map[string]bool
	NestedBoundaryTypes map[string]bool
	ImportTypes         map[string]bool
	BlockTypes          map[string]bool
}

// NodeCategory is the closed category a node type resolves to under a profile.
// The decomposer derives it once per node instead of re-comparing type strings.
type NodeCategory int

const (
	CategoryOther NodeCategory = iota
	CategoryBoundary
	CategoryImport
	CategoryBlock
	CategoryError
)

// errorNodeType is tree-sitter's recovery node type. It is never a boundary.
const errorNodeType = "ERROR"

// Categorize resolves a node type to its category. splitImports widens the
// boundary set with the profile's import types.
func (p *GrammarProfile) Categorize(nodeType string, splitImports bool) NodeCategory {
	switch {
	case nodeType == errorNodeType:
		return CategoryError
	case p.NestedBoundaryTypes[nodeType]:
		return CategoryBoundary
	case p.ImportTypes[nodeType]:
		if splitImports {
			return CategoryBoundary
		}
		return CategoryImport
	case p.BlockTypes[nodeType]:
		return CategoryBlock
	default:
		return CategoryOther
	}
}

// IsFunction reports whether the node type is function-like under the profile.
func (p *GrammarProfile) IsFunction(nodeType string) bool {
	return p.FunctionTypes[nodeType]
}

// IsBlock reports whether the node type denotes a block/body.
func (p *GrammarProfile) IsBlock(nodeType string) bool {
	return p.BlockTypes[nodeType]
}

func typeSet(types ...string) map[string]bool {
	set := make(map[string]bool, len(types))
	for _, t := range types {
		set[t] = true
	}
	return set
}

func union(sets ...map[string]bool) map[string]bool {
	out := make(map[string]bool)
	for _, s := range sets {
		for t := range s {
			out[t] = true
		}
	}
	return out
}

// profiles maps known languages to their grammar profiles. Boundary sets
// default to function-like plus class-like node types.
var profiles = map[Language]*GrammarProfile{
	LanguagePython: newProfile(
		typeSet("function_definition"),
		typeSet("class_definition"),
		typeSet("import_statement", "import_from_statement"),
		typeSet("block"),
	),
	LanguageJavaScript: newProfile(
		typeSet("function_declaration", "generator_function_declaration", "method_definition"),
		typeSet("class_declaration"),
		typeSet("import_statement"),
		typeSet("statement_block", "class_body"),
	),
	LanguageTypeScript: newProfile(
		typeSet("function_declaration", "generator_function_declaration", "method_definition"),
		typeSet("class_declaration", "abstract_class_declaration", "interface_declaration", "enum_declaration"),
		typeSet("import_statement"),
		typeSet("statement_block", "class_body", "interface_body", "enum_body"),
	),
	LanguageGo: newProfile(
		typeSet("function_declaration", "method_declaration"),
		typeSet("type_declaration"),
		typeSet("import_declaration"),
		typeSet("block"),
	),
	LanguageRust: newProfile(
		typeSet("function_item"),
		typeSet("impl_item", "struct_item", "enum_item", "trait_item"),
		typeSet("use_declaration"),
		typeSet("block", "declaration_list", "field_declaration_list", "enum_variant_list"),
	),
	LanguageJava: newProfile(
		typeSet("method_declaration", "constructor_declaration"),
		typeSet("class_declaration", "interface_declaration", "enum_declaration"),
		typeSet("import_declaration"),
		typeSet("block", "class_body", "interface_body", "enum_body"),
	),
}

func newProfile(functions, classes, imports, blocks map[string]bool) *GrammarProfile {
	return &GrammarProfile{
		FunctionTypes:       functions,
		ClassTypes:          classes,
		NestedBoundaryTypes: union(functions, classes),
		ImportTypes:         imports,
		BlockTypes:          blocks,
	}
}

// DefaultProfile is used for any language without a dedicated profile. It
// covers the node-type vocabulary shared by the common grammars, so an unknown
// language still decomposes at function and class boundaries rather than
// failing or producing a single opaque chunk.
var DefaultProfile = newProfile(
	typeSet(
		"function_definition", "function_declaration",
		"method_definition", "method_declaration",
	),
	typeSet("class_definition", "class_declaration"),
	typeSet("import_statement", "import_declaration"),
	typeSet("block", "statement_block", "class_body"),
)

// ProfileFor returns the grammar profile for a language, falling back to
// DefaultProfile for unknown languages. It never fails.
func ProfileFor(lang Language) *GrammarProfile {
	if p, ok := profiles[lang]; ok {
		return p
	}
	return DefaultProfile
}
