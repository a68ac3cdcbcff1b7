// Package docs builds a structural summary of an Alloy configuration.
//
// # Overview
//
// The generator walks a scanned document once, tracking each labeled
// block from its header to the line where its brace depth returns to zero,
// and records the attribute names assigned inside it. Attributes of nested
// sub-blocks are attributed to the enclosing component.
//
// # Usage Example
//
//	generator := docs.NewGenerator()
//	documentation := generator.Generate(scanner.Scan(text), "config.alloy")
//
// Export to Markdown:
//
//	markdown := docs.NewMarkdownExporter().Export(documentation)
//
// Export to HTML:
//
//	html, err := docs.NewHTMLExporter().Export(documentation)
//
// Component descriptions come from a fixed table (see Describe); unknown
// components have no description.
package docs
