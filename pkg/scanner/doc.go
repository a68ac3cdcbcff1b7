// Package scanner classifies Alloy configuration text line by line.
//
// # Overview
//
// The scanner is deliberately heuristic: there is no grammar and no AST.
// Each line is matched against a small set of regular expressions and
// tagged with a LineKind, and brace counts are recorded per line. The
// linter, formatter and documentation generator all build on these facts.
//
// # Usage Example
//
//	doc := scanner.Scan(text)
//	for _, line := range doc.Lines {
//		if line.Kind == scanner.KindBlockHeader {
//			fmt.Println(line.Header.QualifiedName, line.Header.Label)
//		}
//	}
//
// Block boundaries:
//
//	tracker := scanner.NewBlockTracker()
//	for _, line := range doc.Lines {
//		for _, ev := range tracker.Feed(line) {
//			// ev.Type is EventOpen, EventAttribute or EventClose
//		}
//	}
//	tracker.Finish(doc.LastLine())
//
// # Known Limitations
//
// Block comments are not tracked as regions, so braces inside a multi-line
// comment body still count toward the document totals.
package scanner
