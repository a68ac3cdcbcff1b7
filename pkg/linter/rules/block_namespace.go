package rules

import (
	"strings"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// BlockNamespaceRule suggests dot-qualified component names
type BlockNamespaceRule struct {
	BaseRule
}

// NewBlockNamespaceRule creates a new block-namespace rule
func NewBlockNamespaceRule() *BlockNamespaceRule {
	return &BlockNamespaceRule{
		BaseRule: BaseRule{
			RuleName:        "block-namespace",
			RuleCategory:    linter.CategoryStyle,
			RuleSeverity:    linter.SeverityInfo,
			RuleScope:       linter.ScopeLine,
			RuleDescription: "Labeled block names should include a namespace",
		},
	}
}

// Check reports block headers whose name has no dot
func (r *BlockNamespaceRule) Check(doc *scanner.Document, ctx *linter.LintContext) []linter.Finding {
	findings := make([]linter.Finding, 0)

	for _, line := range doc.BlockHeaders() {
		if strings.Contains(line.Header.QualifiedName, ".") {
			continue
		}
		findings = append(findings, r.finding(line,
			`Block name should typically include a namespace (e.g., "prometheus.scrape", "loki.write")`))
	}

	return findings
}
