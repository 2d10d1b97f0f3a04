package textobj

import "errors"

// Errors returned by kind discovery and registry operations.
var (
	// ErrNoInstances indicates discovery found zero instances of a kind.
	ErrNoInstances = errors.New("no instances found")

	// ErrMalformedSpan indicates a kind resolved an inverted span, with
	// the end position before the start.
	ErrMalformedSpan = errors.New("malformed span")

	// ErrUnknownKind indicates the kind identifier is not registered.
	ErrUnknownKind = errors.New("unknown text-object kind")

	// ErrKindConflict indicates a kind identifier is already registered.
	ErrKindConflict = errors.New("kind identifier already registered")
)
