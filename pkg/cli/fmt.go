package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/platinummonkey/alloykit/pkg/format"
	"github.com/platinummonkey/alloykit/pkg/linter"
)

type fmtOptions struct {
	files  []string
	write  bool
	check  bool
	diff   bool
	indent string
}

// newFmtCommand creates the fmt command
func newFmtCommand() *Command {
	fs := flag.NewFlagSet("fmt", flag.ExitOnError)

	var (
		write  = fs.Bool("w", false, "Write the result back to the source file")
		check  = fs.Bool("check", false, "List files whose formatting differs and fail")
		diff   = fs.Bool("diff", false, "Print a unified diff instead of the formatted text")
		indent = fs.String("indent", "", "Indent unit: tab, a number of spaces, or a run of spaces and tabs (default from config)")
	)

	return &Command{
		Name:        "fmt",
		Description: "Re-indent Alloy configuration files",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}

			return runFmt(os.Stdin, os.Stdout, fmtOptions{
				files:  fs.Args(),
				write:  *write,
				check:  *check,
				diff:   *diff,
				indent: *indent,
			})
		},
	}
}

func runFmt(stdin io.Reader, w io.Writer, opts fmtOptions) error {
	config, err := loadLintConfig("", ".")
	if err != nil {
		return err
	}

	indent := config.Format.Indent
	if opts.indent != "" {
		indent, err = parseIndent(opts.indent)
		if err != nil {
			return err
		}
	}
	formatter := format.NewFormatter(format.Options{Indent: indent})

	// Without files, format stdin to stdout
	if len(opts.files) == 0 {
		if opts.write {
			return fmt.Errorf("cannot use -w with standard input")
		}
		content, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read standard input: %w", err)
		}
		_, err = formatOne(w, formatter, "<stdin>", string(content), opts)
		return err
	}

	files, err := expandPaths(opts.files, config)
	if err != nil {
		return err
	}

	unformatted := 0
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		changed, err := formatOne(w, formatter, file, string(content), opts)
		if err != nil {
			return err
		}
		if changed {
			unformatted++
		}
	}

	if opts.check && unformatted > 0 {
		return fmt.Errorf("%d file(s) need formatting", unformatted)
	}
	return nil
}

// formatOne formats one file's content and reports whether it changed
func formatOne(w io.Writer, formatter *format.Formatter, name, text string, opts fmtOptions) (bool, error) {
	formatted := formatter.Format(text)
	changed := formatted != text

	if opts.diff && changed {
		diff, err := format.Diff(name, text, formatted)
		if err != nil {
			return changed, fmt.Errorf("failed to diff %s: %w", name, err)
		}
		fmt.Fprint(w, diff)
	}

	switch {
	case opts.check:
		if changed && !opts.diff {
			fmt.Fprintln(w, name)
		}
	case opts.write:
		if !changed {
			return false, nil
		}
		info, err := os.Stat(name)
		if err != nil {
			return changed, err
		}
		if err := os.WriteFile(name, []byte(formatted), info.Mode().Perm()); err != nil {
			return changed, fmt.Errorf("failed to write %s: %w", name, err)
		}
		if !opts.diff {
			fmt.Fprintln(w, name)
		}
	case !opts.diff:
		fmt.Fprint(w, formatted)
		if !strings.HasSuffix(formatted, "\n") {
			fmt.Fprintln(w)
		}
	}

	return changed, nil
}

// parseIndent maps "tab" and space counts to indent units
func parseIndent(s string) (string, error) {
	if strings.EqualFold(s, "tab") || s == `\t` {
		return "\t", nil
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return strings.Repeat(" ", n), nil
	}
	if !linter.ValidIndent(s) {
		return "", fmt.Errorf("invalid indent %q: use tab, a number of spaces, or spaces and tabs", s)
	}
	return s, nil
}
