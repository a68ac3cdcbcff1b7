package linter

import (
	"sort"

	"github.com/platinummonkey/alloykit/pkg/scanner"
)

// LintEngine orchestrates the linting process
type LintEngine struct {
	config   *Config
	registry *RuleRegistry
}

// NewLintEngine creates a new lint engine with an empty registry
func NewLintEngine(config *Config) *LintEngine {
	if config == nil {
		config = DefaultConfig()
	}

	return &LintEngine{
		config:   config,
		registry: NewRuleRegistry(),
	}
}

// Registry returns the engine's rule registry
func (e *LintEngine) Registry() *RuleRegistry {
	return e.registry
}

// Config returns the engine's configuration
func (e *LintEngine) Config() *Config {
	return e.config
}

// Analyze runs all enabled rules against a scanned document. The returned
// slice is never nil and replaces any earlier findings for the document.
func (e *LintEngine) Analyze(doc *scanner.Document) []Finding {
	return e.analyze("", doc)
}

// AnalyzeText scans text and analyzes it
func (e *LintEngine) AnalyzeText(text string) []Finding {
	return e.Analyze(scanner.Scan(text))
}

// Lint analyzes a single file's content
func (e *LintEngine) Lint(filePath, text string) LintResult {
	return LintResult{
		FilePath: filePath,
		Findings: e.analyze(filePath, scanner.Scan(text)),
	}
}

func (e *LintEngine) analyze(filePath string, doc *scanner.Document) []Finding {
	ctx := &LintContext{
		FilePath: filePath,
		Config:   e.config,
	}

	lineFindings := make([]Finding, 0)
	docFindings := make([]Finding, 0)

	for _, rule := range e.registry.GetEnabledRules(e.config) {
		found := rule.Check(doc, ctx)
		if rule.Scope() == ScopeDocument {
			docFindings = append(docFindings, found...)
		} else {
			lineFindings = append(lineFindings, found...)
		}
	}

	sort.SliceStable(lineFindings, func(i, j int) bool {
		return lineFindings[i].Range.StartLine < lineFindings[j].Range.StartLine
	})

	return append(lineFindings, docFindings...)
}

// GenerateSummary creates a summary of lint results
func (e *LintEngine) GenerateSummary(results []LintResult) Summary {
	summary := Summary{
		TotalFiles: len(results),
	}

	for _, result := range results {
		summary.Add(result.Findings)
	}

	return summary
}

// LintResult contains the result of linting a single file
type LintResult struct {
	FilePath string    `json:"file_path"`
	Findings []Finding `json:"findings"`
}

// Finding is a single diagnostic
type Finding struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Message  string   `json:"message"`
	Range    Range    `json:"range"`
}

// Range is a zero-based span of text. Columns are byte offsets within a line.
type Range struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	EndLine     int `json:"end_line"`
	EndColumn   int `json:"end_column"`
}

// LineRange covers a whole line
func LineRange(line scanner.Line) Range {
	return Range{
		StartLine:   line.Number,
		StartColumn: 0,
		EndLine:     line.Number,
		EndColumn:   line.Len(),
	}
}

// Severity indicates how serious a finding is
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category groups related rules
type Category string

const (
	CategorySyntax    Category = "syntax"
	CategoryStyle     Category = "style"
	CategoryComponent Category = "component"
)

// Categories lists categories in display order
func Categories() []Category {
	return []Category{CategorySyntax, CategoryStyle, CategoryComponent}
}

// Scope says whether a rule reports per line or once per document
type Scope string

const (
	ScopeLine     Scope = "line"
	ScopeDocument Scope = "document"
)

// Summary provides an overview of lint results
type Summary struct {
	TotalFiles    int `json:"total_files"`
	TotalFindings int `json:"total_findings"`
	Errors        int `json:"errors"`
	Warnings      int `json:"warnings"`
	Infos         int `json:"infos"`
}

// Add counts findings into the summary
func (s *Summary) Add(findings []Finding) {
	s.TotalFindings += len(findings)
	for _, f := range findings {
		switch f.Severity {
		case SeverityError:
			s.Errors++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			s.Infos++
		}
	}
}

// LintContext provides context during rule checking
type LintContext struct {
	FilePath string
	Config   *Config
}
