// Package workspace tracks open documents on behalf of an editor or server
// and keeps the latest findings for each one.
//
// Only documents in the Alloy language are analysed. Others are tracked so
// that requests against them can be rejected with ErrUnsupportedLanguage
// rather than ErrDocumentNotOpen. Every Open or Change replaces the stored
// findings for the document, and Close deletes them.
//
// Findings live in a DiagnosticStore: MemoryStore for a single process,
// RedisStore when several servers share one view of the workspace.
package workspace
