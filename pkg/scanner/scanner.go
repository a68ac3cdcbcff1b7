package scanner

import "strings"

// LineKind tags what a line looks like
type LineKind string

const (
	KindBlank       LineKind = "BLANK"
	KindComment     LineKind = "COMMENT"
	KindBlockHeader LineKind = "BLOCK_HEADER"
	KindAttribute   LineKind = "ATTRIBUTE"
	KindOther       LineKind = "OTHER"
)

// Line holds everything the analyses need to know about one source line
type Line struct {
	Number  int
	Raw     string
	Trimmed string
	Kind    LineKind
	Opens   int
	Closes  int

	// Header is set when Kind is KindBlockHeader
	Header BlockHeader
	// Attribute is the assigned name when Kind is KindAttribute
	Attribute string
}

// Delta is the net brace change contributed by the line
func (l Line) Delta() int {
	return l.Opens - l.Closes
}

// Len is the length of the raw line, used as the end column of whole-line ranges
func (l Line) Len() int {
	return len(l.Raw)
}

// IsComment reports whether a trimmed line is a line comment, the start of a
// block comment or a block comment continuation
func IsComment(trimmed string) bool {
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

// Classify computes the facts for a single line
func Classify(number int, raw string) Line {
	trimmed := strings.TrimSpace(raw)
	opens, closes := CountBraces(raw)
	line := Line{
		Number:  number,
		Raw:     raw,
		Trimmed: trimmed,
		Opens:   opens,
		Closes:  closes,
	}

	switch {
	case trimmed == "":
		line.Kind = KindBlank
	case IsComment(trimmed):
		line.Kind = KindComment
	default:
		if header, ok := MatchBlockHeader(raw); ok {
			line.Kind = KindBlockHeader
			line.Header = header
		} else if name, ok := MatchAttributeAssignment(raw); ok {
			line.Kind = KindAttribute
			line.Attribute = name
		} else {
			line.Kind = KindOther
		}
	}

	return line
}

// Document is a scanned Alloy document
type Document struct {
	Lines []Line
}

// Scan splits text on newlines and classifies every line. An empty text
// yields a document with a single blank line.
func Scan(text string) *Document {
	raw := SplitLines(text)
	doc := &Document{Lines: make([]Line, len(raw))}
	for i, l := range raw {
		doc.Lines[i] = Classify(i, l)
	}
	return doc
}

// SplitLines splits on '\n' only; carriage returns stay on the line
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// LastLine returns the final line of the document
func (d *Document) LastLine() Line {
	return d.Lines[len(d.Lines)-1]
}

// TotalBraces counts every brace in the document, comment lines included
func (d *Document) TotalBraces() (opens, closes int) {
	for _, l := range d.Lines {
		opens += l.Opens
		closes += l.Closes
	}
	return opens, closes
}

// BlockHeaders returns the header lines in document order
func (d *Document) BlockHeaders() []Line {
	headers := make([]Line, 0)
	for _, l := range d.Lines {
		if l.Kind == KindBlockHeader {
			headers = append(headers, l)
		}
	}
	return headers
}
