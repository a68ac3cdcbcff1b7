package workspace

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/platinummonkey/alloykit/pkg/docs"
	"github.com/platinummonkey/alloykit/pkg/format"
	"github.com/platinummonkey/alloykit/pkg/linter"
	"github.com/platinummonkey/alloykit/pkg/observability"
	"github.com/platinummonkey/alloykit/pkg/scanner"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Session is the set of documents an editor or server has open. It is safe
// for concurrent use.
type Session struct {
	mu       sync.RWMutex
	docs     map[string]*Document
	revision uint64

	// storeMu orders finding writes against Close
	storeMu sync.Mutex

	engine    *linter.LintEngine
	formatter *format.Formatter
	generator *docs.Generator
	store     DiagnosticStore
	cache     *AnalysisCache
	logger    *observability.Logger
	metrics   *observability.Metrics
	tracer    trace.Tracer
}

// Option configures a Session
type Option func(*Session)

// WithStore sets the diagnostic store (default: MemoryStore)
func WithStore(store DiagnosticStore) Option {
	return func(s *Session) { s.store = store }
}

// WithCache enables the analysis cache
func WithCache(cache *AnalysisCache) Option {
	return func(s *Session) { s.cache = cache }
}

// WithLogger sets the session logger
func WithLogger(logger *observability.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithMetrics enables Prometheus instrumentation
func WithMetrics(metrics *observability.Metrics) Option {
	return func(s *Session) { s.metrics = metrics }
}

// WithTracer sets the tracer (default: the global alloykit tracer)
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Session) { s.tracer = tracer }
}

// WithGenerator overrides the documentation generator
func WithGenerator(generator *docs.Generator) Option {
	return func(s *Session) { s.generator = generator }
}

// NewSession creates a session analysing with engine
func NewSession(engine *linter.LintEngine, opts ...Option) *Session {
	s := &Session{
		docs:      make(map[string]*Document),
		engine:    engine,
		formatter: format.NewFormatter(format.Options{Indent: engine.Config().Format.Indent}),
		generator: docs.NewGenerator(),
		store:     NewMemoryStore(),
		logger:    observability.NewNopLogger(),
		tracer:    observability.Tracer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the diagnostic store
func (s *Session) Store() DiagnosticStore {
	return s.store
}

// Update is the outcome of Upsert
type Update struct {
	Document Document
	Findings []linter.Finding
	Opened   bool
}

// Open starts tracking a document. Alloy documents are analysed and their
// findings returned; other languages return no findings.
func (s *Session) Open(ctx context.Context, uri, languageID, text string) ([]linter.Finding, error) {
	s.mu.Lock()
	doc := s.openLocked(uri, languageID, text)
	open := len(s.docs)
	s.mu.Unlock()

	s.metrics.SetOpenDocuments(open)
	s.logger.WithFields(map[string]interface{}{"uri": uri, "language": languageID}).Debug("document opened")
	return s.analyse(ctx, doc)
}

// Change replaces the text of an open document and re-analyses it
func (s *Session) Change(ctx context.Context, uri, text string) ([]linter.Finding, error) {
	s.mu.Lock()
	current, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("change %s: %w", uri, ErrDocumentNotOpen)
	}
	doc := s.changeLocked(current, text)
	s.mu.Unlock()

	return s.analyse(ctx, doc)
}

// Upsert opens uri or replaces its text, deciding which under one lock. An
// empty languageID means LanguageForPath(uri) for a new document and the
// current language for an open one.
func (s *Session) Upsert(ctx context.Context, uri, languageID, text string) (Update, error) {
	s.mu.Lock()
	var doc Document
	current, exists := s.docs[uri]
	switch {
	case exists && languageID != "" && languageID != current.LanguageID:
		s.mu.Unlock()
		return Update{}, fmt.Errorf("%s is open as %s: %w", uri, current.LanguageID, ErrLanguageMismatch)
	case exists:
		doc = s.changeLocked(current, text)
	default:
		if languageID == "" {
			languageID = LanguageForPath(uri)
		}
		doc = s.openLocked(uri, languageID, text)
	}
	open := len(s.docs)
	s.mu.Unlock()

	if !exists {
		s.metrics.SetOpenDocuments(open)
		s.logger.WithFields(map[string]interface{}{"uri": uri, "language": languageID}).Debug("document opened")
	}

	findings, err := s.analyse(ctx, doc)
	if err != nil {
		return Update{}, err
	}
	return Update{Document: doc, Findings: findings, Opened: !exists}, nil
}

// openLocked must be called with s.mu held
func (s *Session) openLocked(uri, languageID, text string) Document {
	s.revision++
	doc := &Document{URI: uri, LanguageID: languageID, Text: text, Version: 1, revision: s.revision}
	s.docs[uri] = doc
	return *doc
}

// changeLocked must be called with s.mu held
func (s *Session) changeLocked(doc *Document, text string) Document {
	s.revision++
	doc.Text = text
	doc.Version++
	doc.revision = s.revision
	return *doc
}

func (s *Session) analyse(ctx context.Context, doc Document) ([]linter.Finding, error) {
	if !doc.IsAlloy() {
		return nil, nil
	}
	return s.refresh(ctx, doc)
}

// Close stops tracking a document and clears its findings
func (s *Session) Close(ctx context.Context, uri string) error {
	s.mu.Lock()
	_, ok := s.docs[uri]
	delete(s.docs, uri)
	open := len(s.docs)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("close %s: %w", uri, ErrDocumentNotOpen)
	}

	s.metrics.SetOpenDocuments(open)

	s.storeMu.Lock()
	err := s.store.Delete(ctx, uri)
	s.storeMu.Unlock()
	if err != nil {
		s.metrics.RecordStoreError("delete")
		return fmt.Errorf("close %s: %w", uri, err)
	}

	s.logger.WithField("uri", uri).Debug("document closed")
	return nil
}

// Document returns a snapshot of an open document
func (s *Session) Document(uri string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[uri]
	if !ok {
		return Document{}, fmt.Errorf("%s: %w", uri, ErrDocumentNotOpen)
	}
	return *doc, nil
}

// Documents returns snapshots of all open documents sorted by URI
func (s *Session) Documents() []Document {
	s.mu.RLock()
	out := make([]Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out = append(out, *doc)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].URI < out[j].URI })
	return out
}

// Diagnostics returns the latest findings for an open Alloy document
func (s *Session) Diagnostics(ctx context.Context, uri string) ([]linter.Finding, error) {
	doc, err := s.alloyDocument(uri)
	if err != nil {
		return nil, err
	}

	findings, ok, err := s.store.Get(ctx, uri)
	if err != nil {
		s.metrics.RecordStoreError("get")
		s.logger.WithError(err).WithField("uri", uri).Warn("diagnostic store read failed, re-analysing")
	} else if ok {
		return findings, nil
	}

	return s.refresh(ctx, doc)
}

// Format returns one edit re-indenting the whole document
func (s *Session) Format(ctx context.Context, uri string) (format.TextEdit, error) {
	doc, err := s.alloyDocument(uri)
	if err != nil {
		return format.TextEdit{}, err
	}
	return s.FormatText(ctx, doc.Text, nil)
}

// FormatRange returns an edit re-indenting only rng
func (s *Session) FormatRange(ctx context.Context, uri string, rng format.Range) (format.TextEdit, error) {
	doc, err := s.alloyDocument(uri)
	if err != nil {
		return format.TextEdit{}, err
	}

	edit, err := s.FormatText(ctx, doc.Text, &rng)
	if err != nil {
		return format.TextEdit{}, fmt.Errorf("format %s: %w", uri, err)
	}
	return edit, nil
}

// FormatText formats untracked text, the whole of it when rng is nil
func (s *Session) FormatText(ctx context.Context, text string, rng *format.Range) (format.TextEdit, error) {
	_, span := s.tracer.Start(ctx, "workspace.Format")
	defer span.End()

	start := time.Now()
	if rng == nil {
		edit := s.formatter.FormatDocument(text)
		s.metrics.ObserveAnalysis("format", time.Since(start))
		return edit, nil
	}

	edit, err := s.formatter.FormatRange(text, *rng)
	if err != nil {
		span.RecordError(err)
		return format.TextEdit{}, err
	}
	s.metrics.ObserveAnalysis("format", time.Since(start))
	return edit, nil
}

// Documentation generates the component summary of an open Alloy document
func (s *Session) Documentation(ctx context.Context, uri string) (*docs.Documentation, error) {
	doc, err := s.alloyDocument(uri)
	if err != nil {
		return nil, err
	}
	return s.DocumentText(ctx, doc.Text, doc.Title()), nil
}

// DocumentText generates documentation for untracked text
func (s *Session) DocumentText(ctx context.Context, text, title string) *docs.Documentation {
	_, span := s.tracer.Start(ctx, "workspace.Documentation", trace.WithAttributes(attribute.String("title", title)))
	defer span.End()

	start := time.Now()
	documentation := s.generator.Generate(scanner.Scan(text), title)
	s.metrics.ObserveAnalysis("docs", time.Since(start))
	span.SetAttributes(attribute.Int("blocks", len(documentation.Blocks)))
	return documentation
}

// Analyze lints text without tracking it
func (s *Session) Analyze(ctx context.Context, text string) []linter.Finding {
	_, span := s.tracer.Start(ctx, "workspace.Analyze")
	defer span.End()

	if s.cache != nil {
		if findings, ok := s.cache.Get(text); ok {
			s.metrics.RecordCache(true)
			span.SetAttributes(attribute.Bool("cache_hit", true))
			return findings
		}
		s.metrics.RecordCache(false)
	}

	start := time.Now()
	findings := s.engine.AnalyzeText(text)
	s.metrics.ObserveAnalysis("lint", time.Since(start))
	for _, f := range findings {
		s.metrics.RecordFinding(f.Rule, string(f.Severity))
	}
	span.SetAttributes(attribute.Int("findings", len(findings)))

	if s.cache != nil {
		s.cache.Add(text, findings)
	}
	return findings
}

// refresh analyses doc and replaces its stored findings, unless the
// document was changed or closed meanwhile. The findings of doc are
// returned either way.
func (s *Session) refresh(ctx context.Context, doc Document) ([]linter.Finding, error) {
	findings := s.Analyze(ctx, doc.Text)

	s.storeMu.Lock()
	defer s.storeMu.Unlock()

	if !s.current(doc) {
		s.logger.WithFields(map[string]interface{}{
			"uri":     doc.URI,
			"version": doc.Version,
		}).Debug("discarding findings of a superseded document")
		return findings, nil
	}

	if err := s.store.Set(ctx, doc.URI, findings); err != nil {
		s.metrics.RecordStoreError("set")
		return findings, fmt.Errorf("store findings for %s: %w", doc.URI, err)
	}

	s.logger.WithFields(map[string]interface{}{
		"uri":      doc.URI,
		"version":  doc.Version,
		"findings": len(findings),
	}).Debug("document analysed")
	return findings, nil
}

// current reports whether doc is still the open revision of its URI
func (s *Session) current(doc Document) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	open, ok := s.docs[doc.URI]
	return ok && open.revision == doc.revision
}

func (s *Session) alloyDocument(uri string) (Document, error) {
	doc, err := s.Document(uri)
	if err != nil {
		return Document{}, err
	}
	if !doc.IsAlloy() {
		return Document{}, fmt.Errorf("%s (%s): %w", uri, doc.LanguageID, ErrUnsupportedLanguage)
	}
	return doc, nil
}
