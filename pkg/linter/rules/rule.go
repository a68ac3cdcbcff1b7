package rules

import (
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// BaseRule provides common functionality for rules
type BaseRule struct {
	RuleName        string
	RuleCategory    linter.Category
	RuleSeverity    linter.Severity
	RuleScope       linter.Scope
	RuleDescription string
}

func (r *BaseRule) Name() string              { return r.RuleName }
func (r *BaseRule) Category() linter.Category { return r.RuleCategory }
func (r *BaseRule) Severity() linter.Severity { return r.RuleSeverity }
func (r *BaseRule) Scope() linter.Scope       { return r.RuleScope }
func (r *BaseRule) Description() string       { return r.RuleDescription }

// finding builds a whole-line finding attributed to this rule
func (r *BaseRule) finding(line scanner.Line, message string) linter.Finding {
	return linter.Finding{
		Rule:     r.RuleName,
		Severity: r.RuleSeverity,
		Category: r.RuleCategory,
		Message:  message,
		Range:    linter.LineRange(line),
	}
}
