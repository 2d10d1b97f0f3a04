package host

import "errors"

// Errors returned by host implementations.
var (
	// ErrLineOutOfRange indicates a line number outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrRangeInvalid indicates an invalid range (e.g. end before start).
	ErrRangeInvalid = errors.New("invalid range")

	// ErrDocumentNotOpen indicates the document is not open in the editor.
	ErrDocumentNotOpen = errors.New("document not open")
)
