package docs

import (
	"fmt"
	"strings"
	"time"
)

// MarkdownExporter exports documentation to Markdown format
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new Markdown exporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export exports documentation to Markdown
func (e *MarkdownExporter) Export(doc *Documentation) string {
	var b strings.Builder

	// Header
	b.WriteString(fmt.Sprintf("# Alloy Configuration: %s\n\n", doc.Title))
	b.WriteString(fmt.Sprintf("**Source:** `%s`\n\n", doc.Title))
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", doc.GeneratedAt.Format(time.RFC3339)))
	b.WriteString("---\n\n")

	// Summary
	b.WriteString("## Summary\n\n")
	if len(doc.Blocks) == 0 {
		b.WriteString("No components found in this configuration.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("This configuration contains **%d** component(s).\n\n", len(doc.Blocks)))

	b.WriteString("## Component Types\n\n")
	for _, group := range doc.Groups {
		b.WriteString(fmt.Sprintf("- **%s**: %d\n", group.Namespace, group.Count))
	}
	b.WriteString("\n")

	b.WriteString("## Components\n\n")
	for _, block := range doc.Blocks {
		e.writeBlock(&b, block)
	}

	return b.String()
}

// writeBlock writes a component subsection
func (e *MarkdownExporter) writeBlock(b *strings.Builder, block *Block) {
	b.WriteString(fmt.Sprintf("### %s \"%s\"\n\n", block.QualifiedName, block.Label))
	b.WriteString(fmt.Sprintf("- **Type:** `%s`\n", block.QualifiedName))
	b.WriteString(fmt.Sprintf("- **Label:** `%s`\n", block.Label))
	b.WriteString(fmt.Sprintf("- **Line:** %d\n", block.StartLine+1))
	if block.Description != "" {
		b.WriteString(fmt.Sprintf("- **Description:** %s\n", block.Description))
	}
	b.WriteString("\n")

	if len(block.Attributes) == 0 {
		b.WriteString("_No attributes configured._\n\n")
		return
	}

	b.WriteString("**Attributes:**\n\n")
	for _, attr := range block.Attributes {
		b.WriteString(fmt.Sprintf("- `%s`\n", attr))
	}
	b.WriteString("\n")
}
