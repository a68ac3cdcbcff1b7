package rules

import (
	"fmt"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// RequiredAttributeRule checks that components listed in the config's
// required_attributes table set each of their attributes somewhere inside
// the block. Findings are anchored at the block header.
type RequiredAttributeRule struct {
	BaseRule
}

// NewRequiredAttributeRule creates a new required-attribute rule
func NewRequiredAttributeRule() *RequiredAttributeRule {
	return &RequiredAttributeRule{
		BaseRule: BaseRule{
			RuleName:        "required-attribute",
			RuleCategory:    linter.CategoryComponent,
			RuleSeverity:    linter.SeverityWarning,
			RuleScope:       linter.ScopeLine,
			RuleDescription: "Some components require specific attributes",
		},
	}
}

// Check scans each listed component's brace span and compares the
// attributes assigned in it to the table
func (r *RequiredAttributeRule) Check(doc *scanner.Document, ctx *linter.LintContext) []linter.Finding {
	findings := make([]linter.Finding, 0)

	table := linter.DefaultRequiredAttributes
	if ctx != nil && ctx.Config != nil {
		table = ctx.Config.RequiredAttributes
	}
	if len(table) == 0 {
		return findings
	}

	for i, line := range doc.Lines {
		if line.Kind != scanner.KindBlockHeader {
			continue
		}
		required, ok := table[line.Header.QualifiedName]
		if !ok {
			continue
		}

		seen := blockAttributes(doc.Lines, i)
		for _, attr := range required {
			if seen[attr] {
				continue
			}
			findings = append(findings, r.finding(line,
				fmt.Sprintf("Component %q is missing required attribute %q", line.Header.QualifiedName, attr)))
		}
	}

	return findings
}

// blockAttributes collects the attribute names assigned between the header
// at start and the line where its brace counter returns to zero, nested
// blocks included. An unclosed block runs to the end of the document.
func blockAttributes(lines []scanner.Line, start int) map[string]bool {
	seen := make(map[string]bool)
	depth := lines[start].Delta()
	for i := start + 1; i < len(lines) && depth > 0; i++ {
		line := lines[i]
		if line.Kind == scanner.KindBlank || line.Kind == scanner.KindComment {
			continue
		}
		if line.Kind == scanner.KindAttribute {
			seen[line.Attribute] = true
		}
		depth += line.Delta()
	}
	return seen
}
