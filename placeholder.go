package hierchunk

import "strings"

// placeholderMarker introduces a chunk reference inside a placeholder line.
const placeholderMarker = "chunk:"

// lineCommentTokens maps languages to their line-comment token, used so a
// placeholder's chunk marker reads as a no-op if the enclosing text is ever
// displayed as code.
var lineCommentTokens = map[Language]string{
	LanguageTypeScript: "//",
	LanguageJavaScript: "//",
	LanguagePython:     "#",
	LanguageRust:       "//",
	LanguageGo:         "//",
	LanguageJava:       "//",
}

// defaultCommentToken is used for languages without a known comment token.
const defaultCommentToken = "//"

func commentTokenFor(lang Language) string {
	if token, ok := lineCommentTokens[lang]; ok {
		return token
	}
	return defaultCommentToken
}

// buildPlaceholder produces the single-line stand-in for a nested chunk:
// the node's header followed by a commented marker carrying the chunk id,
// e.g. "def main(): # chunk:main.py::main". Headers that span multiple lines
// (wrapped parameter lists) are collapsed to one line first, so a placeholder
// can never span lines.
func buildPlaceholder(header, commentToken, id string) string {
	return collapseWhitespace(header) + " " + commentToken + " " + placeholderMarker + id
}

// collapseWhitespace folds every whitespace run into a single space and trims
// the ends, flattening multi-line headers.
func collapseWhitespace(s string) string {
	result := make([]byte, 0, len(s))
	lastWasSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		isSpace := c == ' ' || c == '\t' || c == '\r' || c == '\n'
		if isSpace {
			if !lastWasSpace {
				result = append(result, ' ')
			}
			lastWasSpace = true
		} else {
			result = append(result, c)
			lastWasSpace = false
		}
	}
	return strings.TrimSpace(string(result))
}
