package textobj

import "github.com/Piotr1215/beam/internal/host"

// Variant selects the boundary handling of a span.
type Variant int

const (
	// VariantInner excludes the delimiters.
	VariantInner Variant = iota

	// VariantAround includes the delimiters.
	VariantAround
)

// String returns a string representation of the variant.
func (v Variant) String() string {
	switch v {
	case VariantInner:
		return "inner"
	case VariantAround:
		return "around"
	default:
		return "unknown"
	}
}

// RenderMode describes how a kind's spans are expressed during execution.
type RenderMode int

const (
	// RenderCharacterwise uses exact columns.
	RenderCharacterwise RenderMode = iota

	// RenderLinewise expands spans to whole-line ranges.
	RenderLinewise
)

// FindContext carries the host collaborators a finder may use. Search and
// Registers may be nil for finders that scan lines directly.
type FindContext struct {
	Doc       host.Document
	Search    host.Searcher
	Registers host.Registers
}

// Kind is a text-object kind: a named category of text span. Built-in
// kinds (delimiters, fences, headings) and externally supplied custom
// kinds implement the same interface and are dispatched via the Registry.
type Kind interface {
	// ID is the one-character kind identifier.
	ID() rune

	// Name is the human-readable kind name.
	Name() string

	// RenderMode reports whether spans are linewise or characterwise.
	RenderMode() RenderMode

	// Find enumerates every instance of the kind in the document.
	// Instances are position-unique and in document order.
	Find(fc FindContext) []Instance

	// SelectAt resolves the span of the kind's occurrence at or around
	// pos. It reports false when no well-formed span exists there.
	SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool)

	// Format renders an instance into one or more display lines for the
	// selection panel.
	Format(inst Instance) []string
}

// Delimited is implemented by kinds bounded by literal delimiter text.
// The deferred-operation machine uses it to pre-seed the locate prompt
// when smart highlighting is enabled.
type Delimited interface {
	OpenDelimiter() string
	CloseDelimiter() string
}

// emptyDoc reports whether the document has no searchable content.
func emptyDoc(doc host.Document) bool {
	if doc == nil || doc.LineCount() == 0 {
		return true
	}
	return doc.LineCount() == 1 && doc.Line(1) == ""
}
