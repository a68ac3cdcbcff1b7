package rules

import (
	"fmt"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// BraceBalanceRule compares the total number of opening and closing braces.
// Braces inside comments and strings are counted too.
type BraceBalanceRule struct {
	BaseRule
}

// NewBraceBalanceRule creates a new brace-balance rule
func NewBraceBalanceRule() *BraceBalanceRule {
	return &BraceBalanceRule{
		BaseRule: BaseRule{
			RuleName:        "brace-balance",
			RuleCategory:    linter.CategorySyntax,
			RuleSeverity:    linter.SeverityError,
			RuleScope:       linter.ScopeDocument,
			RuleDescription: "Opening and closing braces must match",
		},
	}
}

// Check reports at most one finding, anchored at the last line
func (r *BraceBalanceRule) Check(doc *scanner.Document, ctx *linter.LintContext) []linter.Finding {
	opens, closes := doc.TotalBraces()
	if opens == closes {
		return nil
	}

	return []linter.Finding{
		r.finding(doc.LastLine(), fmt.Sprintf("Unmatched braces: %d opening, %d closing", opens, closes)),
	}
}
