// Package linter reports common textual mistakes in Alloy configuration files.
//
// # Overview
//
// The engine runs a set of registered rules over a scanned document and
// returns findings. Rules are heuristics built on the line classifier in
// pkg/scanner; they never fail on malformed input, they report it.
//
// # Rules
//
// Syntax: missing "=" in an attribute, unclosed string literal, unmatched braces
// Style: block names without a namespace
// Component: required attributes for specific components
//
// # Usage Example
//
//	config, err := linter.LoadConfigFromDir(".")
//	if err != nil {
//		return err
//	}
//
//	engine := rules.NewDefaultEngine(config)
//	result := engine.Lint("config.alloy", text)
//
//	for _, f := range result.Findings {
//		fmt.Printf("%d: [%s] %s\n", f.Range.StartLine+1, f.Severity, f.Message)
//	}
//
// # Ordering
//
// Line-scoped findings are sorted by line, ties broken by rule registration
// order. Document-scoped findings (brace balance) always come last.
//
// # Related Packages
//
//   - pkg/scanner: Line classification
//   - pkg/linter/rules: Built-in rules
//   - pkg/workspace: Per-document finding storage
package linter
