package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/platinummonkey/alloykit/pkg/docs"
	"github.com/platinummonkey/alloykit/pkg/workspace"
)

// Documentation output formats
const (
	DocsMarkdown = "md"
	DocsHTML     = "html"
)

type docsOptions struct {
	file   string
	out    string
	format string
	title  string
}

// newDocsCommand creates the docs command
func newDocsCommand() *Command {
	fs := flag.NewFlagSet("docs", flag.ExitOnError)

	var (
		out    = fs.String("out", "", "Output file (default: stdout)")
		format = fs.String("format", DocsMarkdown, "Output format: md, html")
		title  = fs.String("title", "", "Document title (default: the file name)")
	)

	return &Command{
		Name:        "docs",
		Description: "Generate component documentation for an Alloy file",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			if fs.NArg() != 1 {
				return fmt.Errorf("docs requires exactly one file")
			}

			return runDocs(os.Stdout, docsOptions{
				file:   fs.Arg(0),
				out:    *out,
				format: *format,
				title:  *title,
			})
		},
	}
}

func runDocs(w io.Writer, opts docsOptions) error {
	if !isAlloyFile(opts.file) {
		return fmt.Errorf("%s: %w", opts.file, workspace.ErrUnsupportedLanguage)
	}

	content, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	title := opts.title
	if title == "" {
		title = filepath.Base(opts.file)
	}
	documentation := docs.NewGenerator().GenerateText(string(content), title)

	var output string
	switch opts.format {
	case DocsMarkdown, "markdown":
		output = docs.NewMarkdownExporter().Export(documentation)
	case DocsHTML:
		output, err = docs.NewHTMLExporter().Export(documentation)
		if err != nil {
			return fmt.Errorf("failed to render HTML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format: %s", opts.format)
	}

	if opts.out == "" {
		_, err = io.WriteString(w, output)
		return err
	}

	if dir := filepath.Dir(opts.out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(opts.out, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.out, err)
	}
	fmt.Fprintf(w, "Documentation for %d component(s) written to %s\n", len(documentation.Blocks), opts.out)
	return nil
}
