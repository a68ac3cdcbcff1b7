package rules

import (
	"strings"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// MissingEqualsRule flags lines that look like an attribute without its "=".
// Continuation lines that start with an identifier are reported too; the
// rule has no way to tell them apart.
type MissingEqualsRule struct {
	BaseRule
}

// NewMissingEqualsRule creates a new missing-equals rule
func NewMissingEqualsRule() *MissingEqualsRule {
	return &MissingEqualsRule{
		BaseRule: BaseRule{
			RuleName:        "missing-equals",
			RuleCategory:    linter.CategorySyntax,
			RuleSeverity:    linter.SeverityWarning,
			RuleScope:       linter.ScopeLine,
			RuleDescription: "Attribute assignments need an \"=\" operator",
		},
	}
}

// Check reports candidate lines
func (r *MissingEqualsRule) Check(doc *scanner.Document, ctx *linter.LintContext) []linter.Finding {
	findings := make([]linter.Finding, 0)

	for _, line := range doc.Lines {
		if line.Kind == scanner.KindBlank || line.Kind == scanner.KindComment {
			continue
		}
		if strings.ContainsAny(line.Raw, "={}") {
			continue
		}
		if !scanner.LooksLikeBareIdentifier(line.Raw) {
			continue
		}
		findings = append(findings, r.finding(line, `Attribute assignment may be missing "=" operator`))
	}

	return findings
}
