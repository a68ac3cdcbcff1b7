package workspace

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// LanguageAlloy is the language identifier of Alloy configuration files
const LanguageAlloy = "alloy"

// FileExtension is the extension of Alloy configuration files
const FileExtension = ".alloy"

// Document is an open text document
type Document struct {
	URI        string `json:"uri"`
	LanguageID string `json:"language_id"`
	Text       string `json:"text"`
	Version    int    `json:"version"`

	// revision is unique across the session, so a reopened document never
	// matches an analysis started before it was closed
	revision uint64
}

// IsAlloy reports whether the document is analysed
func (d *Document) IsAlloy() bool {
	return d.LanguageID == LanguageAlloy
}

// Title is the base name of the document, used as its documentation title
func (d *Document) Title() string {
	return TitleForURI(d.URI)
}

// LanguageForPath maps a file path to a language identifier. Files without
// the Alloy extension map to "plaintext".
func LanguageForPath(p string) string {
	if strings.EqualFold(filepath.Ext(p), FileExtension) {
		return LanguageAlloy
	}
	return "plaintext"
}

// TitleForURI returns the last path element of a file URI or plain path
func TitleForURI(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.Scheme != "" {
		if u.Path != "" {
			return path.Base(u.Path)
		}
		return uri
	}
	return filepath.Base(uri)
}
