package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/platinummonkey/alloykit/pkg/linter"
)

// SARIFInformationURI identifies the tool in SARIF reports
const SARIFInformationURI = "https://github.com/platinummonkey/alloykit"

// writeTextReport prints findings grouped by file. Positions are reported
// one-based in every output format.
func writeTextReport(w io.Writer, results []linter.LintResult, summary linter.Summary) error {
	hasFindings := false

	for _, result := range results {
		if len(result.Findings) == 0 {
			continue
		}

		hasFindings = true
		fmt.Fprintf(w, "\n%s:\n", result.FilePath)
		for _, f := range result.Findings {
			fmt.Fprintf(w, "  %s:%d:%d: [%s] %s (%s)\n",
				result.FilePath,
				f.Range.StartLine+1,
				f.Range.StartColumn+1,
				f.Severity,
				f.Message,
				f.Rule,
			)
		}
	}

	// Print summary
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Files:    %d\n", summary.TotalFiles)
	fmt.Fprintf(w, "  Findings: %d\n", summary.TotalFindings)
	fmt.Fprintf(w, "  Errors:   %d\n", summary.Errors)
	fmt.Fprintf(w, "  Warnings: %d\n", summary.Warnings)
	fmt.Fprintf(w, "  Infos:    %d\n", summary.Infos)

	if !hasFindings {
		fmt.Fprintln(w, "\n✓ All files passed linting")
	}
	return nil
}

func writeJSONReport(w io.Writer, results []linter.LintResult, summary linter.Summary) error {
	output := struct {
		Results []linter.LintResult `json:"results"`
		Summary linter.Summary      `json:"summary"`
	}{
		Results: results,
		Summary: summary,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// writeGitHubReport prints GitHub Actions workflow annotations:
// ::error file={name},line={line},col={col}::{message}
func writeGitHubReport(w io.Writer, results []linter.LintResult) error {
	for _, result := range results {
		for _, f := range result.Findings {
			fmt.Fprintf(w, "::%s file=%s,line=%d,col=%d::[%s] %s\n",
				githubLevel(f.Severity),
				result.FilePath,
				f.Range.StartLine+1,
				f.Range.StartColumn+1,
				f.Rule,
				f.Message,
			)
		}
	}
	return nil
}

func githubLevel(severity linter.Severity) string {
	switch severity {
	case linter.SeverityWarning:
		return "warning"
	case linter.SeverityInfo:
		return "notice"
	default:
		return "error"
	}
}

func writeSARIFReport(w io.Writer, engine *linter.LintEngine, results []linter.LintResult) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI("alloykit", SARIFInformationURI)
	for _, rule := range engine.Registry().GetEnabledRules(engine.Config()) {
		run.AddRule(rule.Name()).
			WithDescription(rule.Description()).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: sarifLevel(rule.Severity()),
			})
	}

	for _, result := range results {
		uri := filepath.ToSlash(result.FilePath)
		for _, f := range result.Findings {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(uri)).
					WithRegion(sarif.NewRegion().
						WithStartLine(f.Range.StartLine + 1).
						WithStartColumn(f.Range.StartColumn + 1).
						WithEndLine(f.Range.EndLine + 1).
						WithEndColumn(f.Range.EndColumn + 1)),
			)

			run.AddResult(sarif.NewRuleResult(f.Rule).
				WithMessage(sarif.NewTextMessage(f.Message)).
				WithLevel(sarifLevel(f.Severity)).
				WithLocations([]*sarif.Location{location}))
		}
	}

	report.AddRun(run)
	return report.PrettyWrite(w)
}

func sarifLevel(severity linter.Severity) string {
	switch severity {
	case linter.SeverityWarning:
		return "warning"
	case linter.SeverityInfo:
		return "note"
	default:
		return "error"
	}
}
