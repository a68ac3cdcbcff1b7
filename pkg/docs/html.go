package docs

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// HTMLExporter exports documentation to a standalone HTML page
type HTMLExporter struct {
	template *template.Template
}

// NewHTMLExporter creates a new HTML exporter
func NewHTMLExporter() *HTMLExporter {
	tmpl := template.Must(template.New("docs").Funcs(template.FuncMap{
		"anchor":     toAnchor,
		"hasContent": hasContent,
		"lineNumber": func(line int) int { return line + 1 },
		"timestamp":  func(t time.Time) string { return t.Format(time.RFC3339) },
	}).Parse(htmlTemplate))

	return &HTMLExporter{
		template: tmpl,
	}
}

// Export exports documentation to HTML
func (e *HTMLExporter) Export(doc *Documentation) (string, error) {
	var buf bytes.Buffer
	if err := e.template.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// toAnchor converts a block name and label to an HTML anchor
func toAnchor(name, label string) string {
	r := strings.NewReplacer(".", "-", " ", "-", "_", "-")
	return strings.ToLower(r.Replace(name + "-" + label))
}

// hasContent checks if a string has content
func hasContent(s string) bool {
	return strings.TrimSpace(s) != ""
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Alloy Configuration: {{ .Title }}</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f5f5f5;
            margin: 0;
        }
        .container {
            max-width: 1000px;
            margin: 0 auto;
            padding: 20px;
        }
        header {
            background: #2c3e50;
            color: white;
            padding: 30px 0;
        }
        .content {
            background: white;
            padding: 30px;
            border-radius: 8px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        h2 {
            color: #2c3e50;
            border-bottom: 2px solid #3498db;
        }
        code {
            background: #ecf0f1;
            padding: 2px 6px;
            border-radius: 3px;
        }
        .muted {
            color: #7f8c8d;
            font-style: italic;
        }
    </style>
</head>
<body>
    <header>
        <div class="container">
            <h1>Alloy Configuration: {{ .Title }}</h1>
            <p>Source: <code>{{ .Title }}</code> &middot; Generated {{ timestamp .GeneratedAt }}</p>
        </div>
    </header>
    <div class="container">
        <div class="content">
            <h2>Summary</h2>
            {{ if .Blocks }}
            <p>This configuration contains <strong>{{ len .Blocks }}</strong> component(s).</p>

            <h2>Component Types</h2>
            <ul>
                {{ range .Groups }}
                <li><strong>{{ .Namespace }}</strong>: {{ .Count }}</li>
                {{ end }}
            </ul>

            <h2>Components</h2>
            {{ range .Blocks }}
            <h3 id="{{ anchor .QualifiedName .Label }}">{{ .QualifiedName }} "{{ .Label }}"</h3>
            <ul>
                <li>Type: <code>{{ .QualifiedName }}</code></li>
                <li>Label: <code>{{ .Label }}</code></li>
                <li>Line: {{ lineNumber .StartLine }}</li>
                {{ if hasContent .Description }}<li>Description: {{ .Description }}</li>{{ end }}
            </ul>
            {{ if .Attributes }}
            <ul>
                {{ range .Attributes }}<li><code>{{ . }}</code></li>
                {{ end }}
            </ul>
            {{ else }}
            <p class="muted">No attributes configured.</p>
            {{ end }}
            {{ end }}
            {{ else }}
            <p class="muted">No components found in this configuration.</p>
            {{ end }}
        </div>
    </div>
</body>
</html>
`
