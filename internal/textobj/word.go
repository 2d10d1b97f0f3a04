package textobj

import (
	"regexp"

	"github.com/Piotr1215/beam/internal/host"
)

var wordRe = regexp.MustCompile(`[A-Za-z0-9_]+`)

// WordKind is a single-shot motion-style kind: it has no inner/around
// delimiter pair, and its resolved end column is the position of the last
// character. The executor applies the +1 inclusive-end adjustment for
// kinds reporting MotionStyle.
type WordKind struct {
	id   rune
	name string
}

// NewWordKind creates the word kind under the given identifier.
func NewWordKind(id rune) *WordKind {
	return &WordKind{id: id, name: "word"}
}

// ID returns the kind identifier.
func (k *WordKind) ID() rune { return k.id }

// Name returns the kind name.
func (k *WordKind) Name() string { return k.name }

// RenderMode returns characterwise.
func (k *WordKind) RenderMode() RenderMode { return RenderCharacterwise }

// MotionStyle marks the kind as a single-shot motion.
func (k *WordKind) MotionStyle() bool { return true }

// SelectAt resolves the word at pos. The variant is ignored; motion-style
// kinds have no delimiters to include or exclude. The returned end column
// is the last character's column, made inclusive by the executor.
func (k *WordKind) SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool) {
	line := doc.Line(pos.Line)
	if pos.Col < 0 || pos.Col >= len(line) {
		return host.Range{}, false
	}
	for _, loc := range wordRe.FindAllStringIndex(line, -1) {
		if pos.Col >= loc[0] && pos.Col < loc[1] {
			return host.Range{
				Start: host.Position{Line: pos.Line, Col: loc[0]},
				End:   host.Position{Line: pos.Line, Col: loc[1] - 1},
			}, true
		}
	}
	return host.Range{}, false
}

// Find enumerates every word in the document, line by line.
func (k *WordKind) Find(fc FindContext) []Instance {
	doc := fc.Doc
	if emptyDoc(doc) {
		return nil
	}
	var out []Instance
	for n := 1; n <= doc.LineCount(); n++ {
		line := doc.Line(n)
		for _, loc := range wordRe.FindAllStringIndex(line, -1) {
			out = append(out, Instance{
				Start:   host.Position{Line: n, Col: loc[0]},
				End:     host.Position{Line: n, Col: loc[1]},
				Preview: line[loc[0]:loc[1]],
			})
		}
	}
	return dedupe(out)
}

// Format renders the word itself.
func (k *WordKind) Format(inst Instance) []string {
	return []string{inst.Preview}
}

// MotionStyle is implemented by single-shot kinds that are not
// inner/around pairs; their resolved spans get the +1 end-column
// adjustment during execution.
type MotionStyle interface {
	MotionStyle() bool
}
