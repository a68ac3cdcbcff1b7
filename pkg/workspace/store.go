package workspace

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/platinummonkey/alloykit/pkg/linter"
)

// DiagnosticStore holds the latest findings per document URI. Set always
// replaces what was stored before.
type DiagnosticStore interface {
	Set(ctx context.Context, uri string, findings []linter.Finding) error
	Get(ctx context.Context, uri string) ([]linter.Finding, bool, error)
	Delete(ctx context.Context, uri string) error
	URIs(ctx context.Context) ([]string, error)
}

// MemoryStore is an in-process DiagnosticStore
type MemoryStore struct {
	mu       sync.RWMutex
	findings map[string][]linter.Finding
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{findings: make(map[string][]linter.Finding)}
}

// Set replaces the findings for uri
func (s *MemoryStore) Set(_ context.Context, uri string, findings []linter.Finding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.findings[uri] = slices.Clone(findings)
	return nil
}

// Get returns the stored findings and whether any were stored
func (s *MemoryStore) Get(_ context.Context, uri string) ([]linter.Finding, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	findings, ok := s.findings[uri]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(findings), true, nil
}

// Delete removes the findings for uri
func (s *MemoryStore) Delete(_ context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.findings, uri)
	return nil
}

// URIs lists the documents with stored findings, sorted
func (s *MemoryStore) URIs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uris := make([]string, 0, len(s.findings))
	for uri := range s.findings {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris, nil
}

// Ping always succeeds
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
