package api

import (
	"github.com/platinummonkey/alloykit/pkg/format"
	"github.com/platinummonkey/alloykit/pkg/linter"
)

// LintRequest is the body of POST /v1/lint
type LintRequest struct {
	Text string `json:"text"`
	Path string `json:"path,omitempty"`
}

// LintResponse carries the findings for one text
type LintResponse struct {
	Path     string           `json:"path,omitempty"`
	Findings []linter.Finding `json:"findings"`
	Summary  linter.Summary   `json:"summary"`
}

// FormatRequest is the body of POST /v1/format. Without a range the whole
// text is formatted.
type FormatRequest struct {
	Text  string        `json:"text"`
	Range *format.Range `json:"range,omitempty"`
}

// FormatResponse returns the edit and the text with the edit applied
type FormatResponse struct {
	Edit format.TextEdit `json:"edit"`
	Text string          `json:"text,omitempty"`
}

// DocsRequest is the body of POST /v1/docs
type DocsRequest struct {
	Text  string `json:"text"`
	Title string `json:"title"`
}

// DocumentRequest is the body of PUT /v1/documents. An empty language is
// derived from the URI's extension.
type DocumentRequest struct {
	URI        string `json:"uri"`
	LanguageID string `json:"language_id,omitempty"`
	Text       string `json:"text"`
}

// DocumentResponse reports the state of a document after open or change
type DocumentResponse struct {
	URI        string           `json:"uri"`
	LanguageID string           `json:"language_id"`
	Version    int              `json:"version"`
	Findings   []linter.Finding `json:"findings"`
}

// DiagnosticsResponse carries the stored findings for a document
type DiagnosticsResponse struct {
	URI      string           `json:"uri"`
	Findings []linter.Finding `json:"findings"`
}

// DocumentFormatRequest is the optional body of POST /v1/documents/format
type DocumentFormatRequest struct {
	Range *format.Range `json:"range,omitempty"`
}

// DocumentSummary describes an open document without its text
type DocumentSummary struct {
	URI        string `json:"uri"`
	LanguageID string `json:"language_id"`
	Version    int    `json:"version"`
}
