package linter

import (
	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// Rule interface that all lint rules must implement
type Rule interface {
	Name() string
	Category() Category
	Severity() Severity
	Scope() Scope
	Description() string
	Check(doc *scanner.Document, ctx *LintContext) []Finding
}

// RuleRegistry manages available lint rules. Rules keep their registration
// order, which decides the order of findings reported on the same line.
type RuleRegistry struct {
	rules map[string]Rule
	order []string
}

// NewRuleRegistry creates a new rule registry
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules: make(map[string]Rule),
		order: make([]string, 0),
	}
}

// Register adds a rule to the registry, replacing a rule of the same name in place
func (r *RuleRegistry) Register(rule Rule) {
	if _, exists := r.rules[rule.Name()]; !exists {
		r.order = append(r.order, rule.Name())
	}
	r.rules[rule.Name()] = rule
}

// GetRule retrieves a rule by name
func (r *RuleRegistry) GetRule(name string) (Rule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// GetAllRules returns all registered rules in registration order
func (r *RuleRegistry) GetAllRules() []Rule {
	rules := make([]Rule, 0, len(r.order))
	for _, name := range r.order {
		rules = append(rules, r.rules[name])
	}
	return rules
}

// GetEnabledRules returns rules not disabled by config
func (r *RuleRegistry) GetEnabledRules(config *Config) []Rule {
	rules := make([]Rule, 0, len(r.order))
	for _, rule := range r.GetAllRules() {
		if config != nil && !config.RuleEnabled(rule.Name()) {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

// GetRulesByCategory returns rules in a specific category
func (r *RuleRegistry) GetRulesByCategory(category Category) []Rule {
	rules := make([]Rule, 0)
	for _, rule := range r.GetAllRules() {
		if rule.Category() == category {
			rules = append(rules, rule)
		}
	}
	return rules
}
