package scanner

import "regexp"

var (
	blockHeaderPattern    = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*(?:\.[a-zA-Z_][a-zA-Z0-9_]*)*)\s+"([^"]+)"\s*\{`)
	attributePattern      = regexp.MustCompile(`^\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*=`)
	bareIdentifierPattern = regexp.MustCompile(`^\s*[a-zA-Z_][a-zA-Z0-9_]*\s*[^=\s]`)
)

// BlockHeader is the name and label of a `name "label" {` line
type BlockHeader struct {
	QualifiedName string
	Label         string
}

// Namespace returns the part of the qualified name before the first dot,
// or the whole name when it has none
func (h BlockHeader) Namespace() string {
	for i := 0; i < len(h.QualifiedName); i++ {
		if h.QualifiedName[i] == '.' {
			return h.QualifiedName[:i]
		}
	}
	return h.QualifiedName
}

// MatchBlockHeader matches a block header such as `prometheus.scrape "default" {`
func MatchBlockHeader(line string) (BlockHeader, bool) {
	m := blockHeaderPattern.FindStringSubmatch(line)
	if m == nil {
		return BlockHeader{}, false
	}
	return BlockHeader{QualifiedName: m[1], Label: m[2]}, true
}

// MatchAttributeAssignment matches `name = ...` and returns the attribute name
func MatchAttributeAssignment(line string) (string, bool) {
	m := attributePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LooksLikeBareIdentifier reports whether the line starts with an identifier
// followed by something other than '='. It is the shape of an attribute
// assignment that lost its operator, e.g. `forward_to [x]`.
func LooksLikeBareIdentifier(line string) bool {
	return bareIdentifierPattern.MatchString(line)
}

// CountUnescapedQuotes counts double quotes not immediately preceded by a backslash
func CountUnescapedQuotes(line string) int {
	count := 0
	for i := 0; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		if i > 0 && line[i-1] == '\\' {
			continue
		}
		count++
	}
	return count
}

// CountBraces returns the number of '{' and '}' characters in s
func CountBraces(s string) (opens, closes int) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			opens++
		case '}':
			closes++
		}
	}
	return opens, closes
}
