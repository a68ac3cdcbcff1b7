package rules

import (
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// UnclosedStringRule flags lines with an odd number of unescaped double quotes
type UnclosedStringRule struct {
	BaseRule
}

// NewUnclosedStringRule creates a new unclosed-string rule
func NewUnclosedStringRule() *UnclosedStringRule {
	return &UnclosedStringRule{
		BaseRule: BaseRule{
			RuleName:        "unclosed-string",
			RuleCategory:    linter.CategorySyntax,
			RuleSeverity:    linter.SeverityError,
			RuleScope:       linter.ScopeLine,
			RuleDescription: "String literals must be closed on the line they start",
		},
	}
}

// Check reports lines with unbalanced quotes
func (r *UnclosedStringRule) Check(doc *scanner.Document, ctx *linter.LintContext) []linter.Finding {
	findings := make([]linter.Finding, 0)

	for _, line := range doc.Lines {
		if line.Kind == scanner.KindComment {
			continue
		}
		if scanner.CountUnescapedQuotes(line.Raw)%2 != 0 {
			findings = append(findings, r.finding(line, "Unclosed string literal"))
		}
	}

	return findings
}
