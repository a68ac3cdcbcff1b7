package rules

import (
	"strings"
	"testing"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyze(text string) []linter.Finding {
	return NewDefaultEngine(linter.DefaultConfig()).AnalyzeText(text)
}

func TestEngine_UndottedBlockYieldsSingleInfo(t *testing.T) {
	findings := analyze("foo \"bar\" {\n  baz = 1\n}")
	require.Len(t, findings, 1)
	assert.Equal(t, linter.SeverityInfo, findings[0].Severity)
	assert.Equal(t, "block-namespace", findings[0].Rule)
}

func TestEngine_WellFormedScrape(t *testing.T) {
	assert.Empty(t, analyze("prometheus.scrape \"default\" {\n  forward_to = []\n}"))
}

func TestEngine_UnterminatedString(t *testing.T) {
	findings := analyze("a = \"unterminated")
	require.Len(t, findings, 1)
	assert.Equal(t, linter.SeverityError, findings[0].Severity)
	assert.Equal(t, "Unclosed string literal", findings[0].Message)
	assert.Equal(t, 0, findings[0].Range.StartLine)

	findings = analyze("x.y \"z\" {\n  a = \"unterminated")
	require.Len(t, findings, 2)
	assert.Equal(t, "unclosed-string", findings[0].Rule)
	assert.Equal(t, "brace-balance", findings[1].Rule)
}

func TestEngine_PostgresExporterWithoutDSN(t *testing.T) {
	findings := analyze("prometheus.exporter.postgres \"x\" { }")
	require.Len(t, findings, 1)
	assert.Equal(t, linter.SeverityWarning, findings[0].Severity)
	assert.Contains(t, findings[0].Message, "data_source_names")
	assert.Equal(t, 0, findings[0].Range.StartLine)
}

func TestEngine_OrderingAndOverlap(t *testing.T) {
	text := strings.Join([]string{
		`foo "bar" {`,
		`  url "http://x`,
		`prometheus.exporter.postgres "db" {`,
		`}`,
	}, "\n")

	findings := analyze(text)

	got := make([]string, 0, len(findings))
	for _, f := range findings {
		got = append(got, f.Rule)
	}
	assert.Equal(t, []string{
		"block-namespace",
		"missing-equals",
		"unclosed-string",
		"required-attribute",
		"brace-balance",
	}, got)
	assert.Equal(t, 3, findings[len(findings)-1].Range.StartLine)
}

func TestEngine_BraceBalanceAtMostOnce(t *testing.T) {
	inputs := []string{
		"",
		"{",
		"}}}}",
		"a.b \"c\" {\n{\n{",
		"a.b \"c\" {\n}",
		"// {\n/* } */",
	}

	for _, input := range inputs {
		count := 0
		for _, f := range analyze(input) {
			if f.Rule == "brace-balance" {
				count++
			}
		}
		assert.LessOrEqual(t, count, 1, "input %q", input)
	}
}

func TestEngine_DisableRuleByConfig(t *testing.T) {
	config := linter.DefaultConfig()
	config.Rules["block-namespace"] = false

	findings := NewDefaultEngine(config).AnalyzeText("foo \"bar\" {\n}")
	assert.Empty(t, findings)
}

func TestEngine_FindingsAreFreshPerCall(t *testing.T) {
	engine := NewDefaultEngine(nil)

	first := engine.AnalyzeText("a = \"x")
	second := engine.AnalyzeText("a = \"x\"")

	assert.Len(t, first, 1)
	assert.Empty(t, second)
}
