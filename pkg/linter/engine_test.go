package linter

import (
	"testing"

	"github.com/platinummonkey/alloykit/pkg/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func everyLine(rule string, severity Severity) func(doc *scanner.Document) []Finding {
	return func(doc *scanner.Document) []Finding {
		out := make([]Finding, 0, len(doc.Lines))
		for _, line := range doc.Lines {
			out = append(out, Finding{Rule: rule, Severity: severity, Range: LineRange(line)})
		}
		return out
	}
}

func TestNewLintEngine_NilConfig(t *testing.T) {
	engine := NewLintEngine(nil)
	require.NotNil(t, engine.Config())
	assert.Equal(t, "v1", engine.Config().Version)
	assert.Empty(t, engine.Registry().GetAllRules())
}

func TestLintEngine_AnalyzeEmptyRegistry(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())
	findings := engine.AnalyzeText("anything {")
	assert.NotNil(t, findings)
	assert.Empty(t, findings)
}

func TestLintEngine_Ordering(t *testing.T) {
	engine := NewLintEngine(DefaultConfig())

	engine.Registry().Register(&mockRule{
		name:  "doc-rule",
		scope: ScopeDocument,
		findings: func(doc *scanner.Document) []Finding {
			return []Finding{{Rule: "doc-rule", Range: LineRange(doc.Lines[0])}}
		},
	})
	engine.Registry().Register(&mockRule{name: "first", findings: everyLine("first", SeverityWarning)})
	engine.Registry().Register(&mockRule{name: "second", findings: everyLine("second", SeverityError)})

	findings := engine.AnalyzeText("a\nb")
	require.Len(t, findings, 5)

	got := make([]string, 0, len(findings))
	for _, f := range findings {
		got = append(got, f.Rule)
	}
	assert.Equal(t, []string{"first", "second", "first", "second", "doc-rule"}, got)
	assert.Equal(t, 0, findings[0].Range.StartLine)
	assert.Equal(t, 1, findings[2].Range.StartLine)
	// Document-scoped findings come last even when anchored earlier
	assert.Equal(t, 0, findings[4].Range.StartLine)
}

func TestLintEngine_DisabledRule(t *testing.T) {
	config := DefaultConfig()
	config.Rules["first"] = false

	engine := NewLintEngine(config)
	engine.Registry().Register(&mockRule{name: "first", findings: everyLine("first", SeverityWarning)})

	assert.Empty(t, engine.AnalyzeText("a\nb"))
}

func TestLintEngine_Lint(t *testing.T) {
	engine := NewLintEngine(nil)
	engine.Registry().Register(&mockRule{name: "first", findings: everyLine("first", SeverityInfo)})

	result := engine.Lint("main.alloy", "a\nb\nc")
	assert.Equal(t, "main.alloy", result.FilePath)
	assert.Len(t, result.Findings, 3)
}

func TestLintEngine_GenerateSummary(t *testing.T) {
	engine := NewLintEngine(nil)

	results := []LintResult{
		{FilePath: "a.alloy", Findings: []Finding{
			{Severity: SeverityError},
			{Severity: SeverityWarning},
		}},
		{FilePath: "b.alloy", Findings: []Finding{
			{Severity: SeverityInfo},
			{Severity: SeverityError},
		}},
		{FilePath: "c.alloy"},
	}

	summary := engine.GenerateSummary(results)
	assert.Equal(t, Summary{
		TotalFiles:    3,
		TotalFindings: 4,
		Errors:        2,
		Warnings:      1,
		Infos:         1,
	}, summary)
}

func TestLineRange(t *testing.T) {
	line := scanner.Classify(4, "  foo bar")
	assert.Equal(t, Range{StartLine: 4, StartColumn: 0, EndLine: 4, EndColumn: 9}, LineRange(line))
}
