package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/linter/rules"
	"golang.org/x/sync/errgroup"
)

// Lint output formats
const (
	OutputText   = "text"
	OutputJSON   = "json"
	OutputGitHub = "github"
	OutputSARIF  = "sarif"
)

type lintOptions struct {
	dir           string
	files         []string
	configFile    string
	format        string
	failOnError   bool
	failOnWarning bool
	workers       int
	listRules     bool
}

// newLintCommand creates a new lint command
func newLintCommand() *Command {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)

	var (
		dir           = fs.String("dir", ".", "Directory containing Alloy files")
		configFile    = fs.String("config", "", "Path to lint config file (.alloykit.yaml)")
		format        = fs.String("format", OutputText, "Output format: text, json, github, sarif")
		failOnError   = fs.Bool("fail-on-error", true, "Exit with error code on lint errors")
		failOnWarning = fs.Bool("fail-on-warning", false, "Exit with error code on lint warnings")
		workers       = fs.Int("workers", runtime.NumCPU(), "Number of files analysed concurrently")
		rulesOnly     = fs.Bool("rules", false, "List available rules and exit")
	)

	return &Command{
		Name:        "lint",
		Description: "Lint Alloy configuration files",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runLint(context.Background(), os.Stdout, lintOptions{
				dir:           *dir,
				files:         fs.Args(),
				configFile:    *configFile,
				format:        *format,
				failOnError:   *failOnError,
				failOnWarning: *failOnWarning,
				workers:       *workers,
				listRules:     *rulesOnly,
			})
		},
	}
}

func runLint(ctx context.Context, w io.Writer, opts lintOptions) error {
	switch opts.format {
	case OutputText, OutputJSON, OutputGitHub, OutputSARIF:
	default:
		return fmt.Errorf("unsupported format: %s", opts.format)
	}

	// Load configuration
	config, err := loadLintConfig(opts.configFile, opts.dir)
	if err != nil {
		return err
	}

	engine := rules.NewDefaultEngine(config)

	// List rules if requested
	if opts.listRules {
		return lintListRules(w, engine)
	}

	var files []string
	if len(opts.files) > 0 {
		files, err = expandPaths(opts.files, config)
	} else {
		files, err = findAlloyFiles(opts.dir, config)
	}
	if err != nil {
		return fmt.Errorf("failed to find Alloy files: %w", err)
	}

	if len(files) == 0 && opts.format == OutputText {
		fmt.Fprintf(w, "No Alloy files found in %s\n", opts.dir)
		return nil
	}

	results, err := lintFiles(ctx, engine, files, opts.workers)
	if err != nil {
		return err
	}

	// Generate summary
	summary := engine.GenerateSummary(results)

	// Output results
	switch opts.format {
	case OutputJSON:
		err = writeJSONReport(w, results, summary)
	case OutputGitHub:
		err = writeGitHubReport(w, results)
	case OutputSARIF:
		err = writeSARIFReport(w, engine, results)
	default:
		err = writeTextReport(w, results, summary)
	}
	if err != nil {
		return err
	}

	// Exit with error if needed
	if opts.failOnError && summary.Errors > 0 {
		return fmt.Errorf("lint failed with %d errors", summary.Errors)
	}
	if opts.failOnWarning && summary.Warnings > 0 {
		return fmt.Errorf("lint failed with %d warnings", summary.Warnings)
	}

	return nil
}

func loadLintConfig(configFile, dir string) (*linter.Config, error) {
	var (
		config *linter.Config
		err    error
	)
	if configFile != "" {
		config, err = linter.LoadConfig(configFile)
	} else {
		config, err = linter.LoadConfigFromDir(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return config, nil
}

// lintFiles analyses files concurrently. Results keep the order of files.
func lintFiles(ctx context.Context, engine *linter.LintEngine, files []string, workers int) ([]linter.LintResult, error) {
	results := make([]linter.LintResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", file, err)
			}
			results[i] = engine.Lint(file, string(content))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func lintListRules(w io.Writer, engine *linter.LintEngine) error {
	allRules := engine.Registry().GetAllRules()

	fmt.Fprintf(w, "Available lint rules (%d):\n\n", len(allRules))

	for _, cat := range linter.Categories() {
		rules := engine.Registry().GetRulesByCategory(cat)
		if len(rules) == 0 {
			continue
		}

		// Capitalize category name
		catName := string(cat)
		catName = strings.ToUpper(catName[:1]) + catName[1:]

		fmt.Fprintf(w, "%s Rules:\n", catName)
		for _, rule := range rules {
			status := ""
			if !engine.Config().RuleEnabled(rule.Name()) {
				status = " [disabled]"
			}
			fmt.Fprintf(w, "  - %-20s [%s]%s\n    %s\n",
				rule.Name(),
				rule.Severity(),
				status,
				rule.Description(),
			)
		}
		fmt.Fprintln(w)
	}

	return nil
}
