package rules

import "github.com/platinummonkey/alloykit/pkg/linter"

// Registry interface for registering rules
type Registry interface {
	Register(rule linter.Rule)
}

// DefaultRules returns the built-in rules in reporting order
func DefaultRules() []linter.Rule {
	return []linter.Rule{
		NewMissingEqualsRule(),
		NewUnclosedStringRule(),
		NewBlockNamespaceRule(),
		NewRequiredAttributeRule(),
		NewBraceBalanceRule(),
	}
}

// RegisterDefaultRules registers all built-in lint rules
func RegisterDefaultRules(registry Registry) {
	for _, rule := range DefaultRules() {
		registry.Register(rule)
	}
}

// NewDefaultEngine creates a lint engine with the built-in rules registered
func NewDefaultEngine(config *linter.Config) *linter.LintEngine {
	engine := linter.NewLintEngine(config)
	RegisterDefaultRules(engine.Registry())
	return engine
}
