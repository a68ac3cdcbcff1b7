package format

import (
	"strings"

	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// DefaultIndent is one level of indentation
const DefaultIndent = "\t"

// Options controls formatting
type Options struct {
	Indent string
}

// DefaultOptions returns tab indentation
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent}
}

// Formatter re-indents Alloy text
type Formatter struct {
	indent string
}

// NewFormatter creates a formatter. An empty indent falls back to a tab.
func NewFormatter(opts Options) *Formatter {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}
	return &Formatter{indent: opts.Indent}
}

// Format re-indents the whole text
func (f *Formatter) Format(text string) string {
	lines := scanner.SplitLines(text)
	out := make([]string, 0, len(lines))
	level := 0

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if line == "" {
			out = append(out, "")
			continue
		}

		if scanner.IsComment(line) {
			out = append(out, strings.Repeat(f.indent, level)+line)
			continue
		}

		if strings.HasPrefix(line, "}") {
			level = max(0, level-1)
		}

		out = append(out, strings.Repeat(f.indent, level)+line)

		if strings.HasSuffix(line, "{") {
			level++
		}
		if strings.Contains(line, "{") && strings.Contains(line, "}") {
			opens, closes := scanner.CountBraces(line)
			level += opens - closes
		}
	}

	return strings.Join(out, "\n")
}

// FormatDocument returns a single edit replacing the whole text
func (f *Formatter) FormatDocument(text string) TextEdit {
	return TextEdit{
		Range:   FullRange(text),
		NewText: f.Format(text),
	}
}

// FormatRange formats only the text inside rng and returns the edit for that span
func (f *Formatter) FormatRange(text string, rng Range) (TextEdit, error) {
	fragment, err := Extract(text, rng)
	if err != nil {
		return TextEdit{}, err
	}

	return TextEdit{
		Range:   rng,
		NewText: f.Format(fragment),
	}, nil
}

// Format re-indents text with the default options
func Format(text string) string {
	return NewFormatter(DefaultOptions()).Format(text)
}
