// Package textobj defines text-object kinds, their instance model, the
// discovery scanners that enumerate every occurrence of a kind in a
// document, and the registry that maps kind identifiers to behavior.
package textobj

import (
	"strings"

	"github.com/Piotr1215/beam/internal/host"
)

// Instance is one concrete occurrence of a text-object kind in a document.
// Start and End span the "around" extent of the occurrence (delimiters
// included); Preview holds the inner text used for display.
type Instance struct {
	// Start is the position of the first character of the span.
	Start host.Position

	// End is the position just past the last character of the span.
	End host.Position

	// Preview is the full inner text of the span, never truncated.
	Preview string

	// Language is the fence language tag, when the kind captures one.
	Language string

	// Level is the heading nesting level, when the kind has one.
	Level int

	// HasContent reports whether a heading's range holds any non-blank
	// line.
	HasContent bool

	// DisplayStart and DisplayEnd are the panel lines this instance was
	// rendered to. Assigned only inside a selection session.
	DisplayStart int
	DisplayEnd   int
}

// FirstLinePreview returns the first line of the preview text.
func (i Instance) FirstLinePreview() string {
	if idx := strings.IndexByte(i.Preview, '\n'); idx >= 0 {
		return i.Preview[:idx]
	}
	return i.Preview
}

// LineCount returns the number of document lines the span covers.
func (i Instance) LineCount() int {
	return i.End.Line - i.Start.Line + 1
}

// dedupe removes instances sharing a start position, keeping first
// occurrences and preserving order.
func dedupe(instances []Instance) []Instance {
	seen := make(map[host.Position]bool, len(instances))
	out := instances[:0]
	for _, inst := range instances {
		if seen[inst.Start] {
			continue
		}
		seen[inst.Start] = true
		out = append(out, inst)
	}
	return out
}
