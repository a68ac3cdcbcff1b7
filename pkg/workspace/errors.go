package workspace

import (
	"errors"

	"github.com/platinummonkey/alloykit/pkg/format"
)

var (
	// ErrDocumentNotOpen is returned when no document is open under the URI
	ErrDocumentNotOpen = errors.New("no active document")

	// ErrUnsupportedLanguage is returned for documents that are not Alloy configurations
	ErrUnsupportedLanguage = errors.New("document is not an Alloy configuration")

	// ErrLanguageMismatch is returned when an open document is updated under another language
	ErrLanguageMismatch = errors.New("document is open with a different language")

	// ErrInvalidRange is returned when a format range lies outside the document
	ErrInvalidRange = format.ErrInvalidRange
)
