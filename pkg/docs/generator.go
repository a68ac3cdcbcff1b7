package docs

import (
	"time"

	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// Documentation represents the generated summary of one configuration file
type Documentation struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`
	Blocks      []*Block  `json:"blocks"`
	Groups      []*Group  `json:"groups"`
}

// Block is one labeled component
type Block struct {
	QualifiedName string   `json:"qualified_name"`
	Label         string   `json:"label"`
	StartLine     int      `json:"start_line"`
	Attributes    []string `json:"attributes"`
	Description   string   `json:"description,omitempty"`
}

// Group counts blocks sharing a namespace prefix
type Group struct {
	Namespace string `json:"namespace"`
	Count     int    `json:"count"`
}

// Generator generates documentation from a scanned document
type Generator struct {
	now func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithClock overrides the generation timestamp source
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a new documentation generator
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the documentation model for doc
func (g *Generator) Generate(doc *scanner.Document, title string) *Documentation {
	documentation := &Documentation{
		Title:       title,
		GeneratedAt: g.now(),
		Blocks:      Blocks(doc),
	}
	documentation.Groups = GroupBlocks(documentation.Blocks)
	return documentation
}

// GenerateText scans and documents text
func (g *Generator) GenerateText(text, title string) *Documentation {
	return g.Generate(scanner.Scan(text), title)
}

// Blocks extracts labeled blocks in document order
func Blocks(doc *scanner.Document) []*Block {
	blocks := make([]*Block, 0)
	tracker := scanner.NewBlockTracker()

	var current *Block
	handle := func(events []scanner.Event) {
		for _, ev := range events {
			switch ev.Type {
			case scanner.EventOpen:
				current = &Block{
					QualifiedName: ev.Header.QualifiedName,
					Label:         ev.Header.Label,
					StartLine:     ev.Line,
					Attributes:    make([]string, 0),
					Description:   Describe(ev.Header.QualifiedName),
				}
				blocks = append(blocks, current)
			case scanner.EventAttribute:
				if current != nil {
					current.Attributes = append(current.Attributes, ev.Attribute)
				}
			case scanner.EventClose:
				current = nil
			}
		}
	}

	for _, line := range doc.Lines {
		handle(tracker.Feed(line))
	}
	handle(tracker.Finish(doc.LastLine()))

	return blocks
}

// GroupBlocks counts blocks per namespace in first-seen order
func GroupBlocks(blocks []*Block) []*Group {
	groups := make([]*Group, 0)
	index := make(map[string]*Group)

	for _, b := range blocks {
		ns := scanner.BlockHeader{QualifiedName: b.QualifiedName}.Namespace()
		group, ok := index[ns]
		if !ok {
			group = &Group{Namespace: ns}
			index[ns] = group
			groups = append(groups, group)
		}
		group.Count++
	}

	return groups
}
