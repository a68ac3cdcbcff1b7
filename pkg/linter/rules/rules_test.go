package rules

import (
	"testing"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func check(rule linter.Rule, text string) []linter.Finding {
	return rule.Check(scanner.Scan(text), &linter.LintContext{Config: linter.DefaultConfig()})
}

func TestMissingEqualsRule(t *testing.T) {
	rule := NewMissingEqualsRule()

	tests := []struct {
		name      string
		text      string
		wantLines []int
	}{
		{"assignment", "a = 1", nil},
		{"missing operator", "forward_to [prometheus.remote_write.x.receiver]", []int{0}},
		{"indented", "  url \"http://localhost\"", []int{0}},
		{"comment", "// forward_to [x]", nil},
		{"block comment", "/* forward_to [x]", nil},
		{"block header", "prometheus.scrape \"x\" {", nil},
		{"unlabeled block", "rule {", nil},
		{"closing", "}", nil},
		{"blank", "   ", nil},
		{"single letter", "a", nil},
		{"second line", "a = 1\nfoo bar", []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := check(rule, tt.text)
			lines := make([]int, 0)
			for _, f := range findings {
				lines = append(lines, f.Range.StartLine)
				assert.Equal(t, linter.SeverityWarning, f.Severity)
				assert.Equal(t, "missing-equals", f.Rule)
				assert.Equal(t, `Attribute assignment may be missing "=" operator`, f.Message)
			}
			if tt.wantLines == nil {
				tt.wantLines = []int{}
			}
			assert.Equal(t, tt.wantLines, lines)
		})
	}
}

func TestUnclosedStringRule(t *testing.T) {
	rule := NewUnclosedStringRule()

	findings := check(rule, "a = \"unterminated")
	require.Len(t, findings, 1)
	assert.Equal(t, linter.SeverityError, findings[0].Severity)
	assert.Equal(t, "Unclosed string literal", findings[0].Message)
	assert.Equal(t, linter.Range{StartLine: 0, StartColumn: 0, EndLine: 0, EndColumn: 17}, findings[0].Range)

	assert.Empty(t, check(rule, `a = "closed"`))
	assert.Empty(t, check(rule, `a = "with \"escaped\" quotes"`))
	assert.Empty(t, check(rule, `// it's "odd`))
	assert.Empty(t, check(rule, ` * "odd continuation`))

	findings = check(rule, "a = \"ok\"\nb = \"bad\nc = \"\"\"")
	require.Len(t, findings, 2)
	assert.Equal(t, 1, findings[0].Range.StartLine)
	assert.Equal(t, 2, findings[1].Range.StartLine)
}

func TestBlockNamespaceRule(t *testing.T) {
	rule := NewBlockNamespaceRule()

	findings := check(rule, "foo \"bar\" {\n  baz = 1\n}")
	require.Len(t, findings, 1)
	assert.Equal(t, linter.SeverityInfo, findings[0].Severity)
	assert.Equal(t, 0, findings[0].Range.StartLine)
	assert.Contains(t, findings[0].Message, "namespace")

	assert.Empty(t, check(rule, "prometheus.scrape \"default\" {\n}"))
	assert.Empty(t, check(rule, "logging {\n}"))
}

func TestRequiredAttributeRule(t *testing.T) {
	rule := NewRequiredAttributeRule()

	t.Run("missing on single line block", func(t *testing.T) {
		findings := check(rule, "prometheus.exporter.postgres \"x\" { }")
		require.Len(t, findings, 1)
		assert.Equal(t, linter.SeverityWarning, findings[0].Severity)
		assert.Equal(t, 0, findings[0].Range.StartLine)
		assert.Equal(t, `Component "prometheus.exporter.postgres" is missing required attribute "data_source_names"`, findings[0].Message)
	})

	t.Run("present", func(t *testing.T) {
		text := "prometheus.exporter.postgres \"db\" {\n  data_source_names = [\"postgresql://x\"]\n}"
		assert.Empty(t, check(rule, text))
	})

	t.Run("present in nested block", func(t *testing.T) {
		text := "prometheus.exporter.postgres \"db\" {\n  autodiscovery {\n    data_source_names = []\n  }\n}"
		assert.Empty(t, check(rule, text))
	})

	t.Run("present after a nested labeled block", func(t *testing.T) {
		text := "prometheus.exporter.postgres \"db\" {\n  inner \"x\" {\n  }\n  data_source_names = []\n}"
		assert.Empty(t, check(rule, text))
	})

	t.Run("nested component of the same kind", func(t *testing.T) {
		text := "prometheus.exporter.postgres \"outer\" {\n  prometheus.exporter.postgres \"inner\" {\n    data_source_names = []\n  }\n}"
		findings := check(rule, text)
		assert.Empty(t, findings)
	})

	t.Run("set after the block closes", func(t *testing.T) {
		text := "\n\nprometheus.exporter.postgres \"db\" {\n  custom_queries_config_path = \"q.yaml\"\n}\ndata_source_names = []"
		findings := check(rule, text)
		require.Len(t, findings, 1)
		assert.Equal(t, 2, findings[0].Range.StartLine)
	})

	t.Run("unclosed block", func(t *testing.T) {
		findings := check(rule, "prometheus.exporter.postgres \"db\" {\n  foo = 1")
		require.Len(t, findings, 1)
		assert.Equal(t, 0, findings[0].Range.StartLine)
	})

	t.Run("commented out attribute does not count", func(t *testing.T) {
		findings := check(rule, "prometheus.exporter.postgres \"db\" {\n  // data_source_names = []\n}")
		assert.Len(t, findings, 1)
	})

	t.Run("other components", func(t *testing.T) {
		assert.Empty(t, check(rule, "prometheus.scrape \"x\" {\n}"))
	})

	t.Run("custom table", func(t *testing.T) {
		config := linter.DefaultConfig()
		config.RequiredAttributes["loki.source.file"] = []string{"targets", "forward_to"}

		doc := scanner.Scan("loki.source.file \"logs\" {\n  targets = []\n}")
		findings := rule.Check(doc, &linter.LintContext{Config: config})
		require.Len(t, findings, 1)
		assert.Contains(t, findings[0].Message, `"forward_to"`)
	})

	t.Run("nil context uses defaults", func(t *testing.T) {
		findings := rule.Check(scanner.Scan("prometheus.exporter.postgres \"x\" { }"), nil)
		assert.Len(t, findings, 1)
	})
}

func TestBraceBalanceRule(t *testing.T) {
	rule := NewBraceBalanceRule()

	assert.Empty(t, check(rule, "a.b \"c\" {\n}"))
	assert.Empty(t, check(rule, ""))

	findings := check(rule, "a.b \"c\" {\n  d {\n}\n")
	require.Len(t, findings, 1)
	assert.Equal(t, linter.SeverityError, findings[0].Severity)
	assert.Equal(t, "Unmatched braces: 2 opening, 1 closing", findings[0].Message)
	assert.Equal(t, 3, findings[0].Range.StartLine)
	assert.Equal(t, 0, findings[0].Range.EndColumn)

	// Braces in comments still count
	findings = check(rule, "/* { */\na = 1")
	require.Len(t, findings, 1)
	assert.Equal(t, "Unmatched braces: 1 opening, 0 closing", findings[0].Message)
}

func TestDefaultRules(t *testing.T) {
	names := make([]string, 0)
	for _, rule := range DefaultRules() {
		names = append(names, rule.Name())
		assert.NotEmpty(t, rule.Description())
	}
	assert.Equal(t, []string{"missing-equals", "unclosed-string", "block-namespace", "required-attribute", "brace-balance"}, names)
}
