package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/platinummonkey/alloykit/pkg/docs"
	"github.com/platinummonkey/alloykit/pkg/format"
	"github.com/platinummonkey/alloykit/pkg/httputil"
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/observability"
	"github.com/platinummonkey/alloykit/pkg/workspace"
)

// Documentation output formats
const (
	DocsFormatMarkdown = "markdown"
	DocsFormatHTML     = "html"
	DocsFormatJSON     = "json"
)

// lint handles POST /v1/lint
func (s *Server) lint(w http.ResponseWriter, r *http.Request) {
	var req LintRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	findings := s.session.Analyze(r.Context(), req.Text)
	if findings == nil {
		findings = []linter.Finding{}
	}
	summary := linter.Summary{TotalFiles: 1}
	summary.Add(findings)

	httputil.WriteJSON(w, http.StatusOK, LintResponse{
		Path:     req.Path,
		Findings: findings,
		Summary:  summary,
	})
}

// format handles POST /v1/format
func (s *Server) format(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}

	edit, err := s.session.FormatText(r.Context(), req.Text, req.Range)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	text, err := format.ApplyEdit(req.Text, edit)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FormatResponse{Edit: edit, Text: text})
}

// docs handles POST /v1/docs
func (s *Server) docs(w http.ResponseWriter, r *http.Request) {
	outputFormat, ok := s.docsFormat(w, r)
	if !ok {
		return
	}

	var req DocsRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.Title, "title") {
		return
	}

	s.writeDocumentation(w, r, s.session.DocumentText(r.Context(), req.Text, req.Title), outputFormat)
}

// listDocuments handles GET /v1/documents
func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	documents := s.session.Documents()
	out := make([]DocumentSummary, 0, len(documents))
	for _, doc := range documents {
		out = append(out, DocumentSummary{URI: doc.URI, LanguageID: doc.LanguageID, Version: doc.Version})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// putDocument handles PUT /v1/documents. The first PUT for a URI opens the
// document; later ones replace its text.
func (s *Server) putDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.RequireNonEmpty(w, req.URI, "uri") {
		return
	}

	update, err := s.session.Upsert(r.Context(), req.URI, req.LanguageID, req.Text)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}

	status := http.StatusOK
	if update.Opened {
		status = http.StatusCreated
	}
	doc := update.Document
	findings := update.Findings
	if findings == nil {
		findings = []linter.Finding{}
	}

	httputil.WriteJSON(w, status, DocumentResponse{
		URI:        doc.URI,
		LanguageID: doc.LanguageID,
		Version:    doc.Version,
		Findings:   findings,
	})
}

// closeDocument handles DELETE /v1/documents?uri=
func (s *Server) closeDocument(w http.ResponseWriter, r *http.Request) {
	uri, ok := httputil.RequireQueryOrError(w, r, "uri")
	if !ok {
		return
	}

	if err := s.session.Close(r.Context(), uri); err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	httputil.WriteNoContent(w)
}

// documentDiagnostics handles GET /v1/documents/diagnostics?uri=
func (s *Server) documentDiagnostics(w http.ResponseWriter, r *http.Request) {
	uri, ok := httputil.RequireQueryOrError(w, r, "uri")
	if !ok {
		return
	}

	findings, err := s.session.Diagnostics(r.Context(), uri)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	if findings == nil {
		findings = []linter.Finding{}
	}
	httputil.WriteJSON(w, http.StatusOK, DiagnosticsResponse{URI: uri, Findings: findings})
}

// formatDocument handles POST /v1/documents/format?uri=. The body is
// optional; an empty body formats the whole document.
func (s *Server) formatDocument(w http.ResponseWriter, r *http.Request) {
	uri, ok := httputil.RequireQueryOrError(w, r, "uri")
	if !ok {
		return
	}

	var req DocumentFormatRequest
	if r.ContentLength != 0 {
		if !httputil.ParseJSONOrError(w, r, &req) {
			return
		}
	}

	var (
		edit format.TextEdit
		err  error
	)
	if req.Range != nil {
		edit, err = s.session.FormatRange(r.Context(), uri, *req.Range)
	} else {
		edit, err = s.session.Format(r.Context(), uri)
	}
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FormatResponse{Edit: edit})
}

// documentDocs handles GET /v1/documents/docs?uri=&format=
func (s *Server) documentDocs(w http.ResponseWriter, r *http.Request) {
	uri, ok := httputil.RequireQueryOrError(w, r, "uri")
	if !ok {
		return
	}
	outputFormat, ok := s.docsFormat(w, r)
	if !ok {
		return
	}

	documentation, err := s.session.Documentation(r.Context(), uri)
	if err != nil {
		s.writeSessionError(w, r, err)
		return
	}
	s.writeDocumentation(w, r, documentation, outputFormat)
}

func (s *Server) docsFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	outputFormat := httputil.ParseQueryString(r, "format", DocsFormatMarkdown)
	switch outputFormat {
	case DocsFormatMarkdown, DocsFormatHTML, DocsFormatJSON:
		return outputFormat, true
	default:
		httputil.WriteBadRequest(w, fmt.Sprintf("unsupported format: %s", outputFormat))
		return "", false
	}
}

func (s *Server) writeDocumentation(w http.ResponseWriter, r *http.Request, documentation *docs.Documentation, outputFormat string) {
	switch outputFormat {
	case DocsFormatHTML:
		page, err := s.html.Export(documentation)
		if err != nil {
			s.writeSessionError(w, r, err)
			return
		}
		httputil.WriteText(w, http.StatusOK, "text/html; charset=utf-8", page)
	case DocsFormatJSON:
		httputil.WriteJSON(w, http.StatusOK, documentation)
	default:
		httputil.WriteText(w, http.StatusOK, "text/markdown; charset=utf-8", s.markdown.Export(documentation))
	}
}

// writeSessionError maps workspace errors onto HTTP status codes
func (s *Server) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, workspace.ErrDocumentNotOpen):
		httputil.WriteNotFoundError(w, err.Error())
	case errors.Is(err, workspace.ErrUnsupportedLanguage):
		httputil.WriteUnsupportedMediaType(w, err.Error())
	case errors.Is(err, workspace.ErrInvalidRange), errors.Is(err, workspace.ErrLanguageMismatch):
		httputil.WriteBadRequest(w, err.Error())
	default:
		observability.FromContext(r.Context()).WithError(err).Error("request failed")
		httputil.WriteInternalError(w, err)
	}
}
