package textobj

import (
	"regexp"
	"strings"

	"github.com/Piotr1215/beam/internal/host"
)

var fenceRe = regexp.MustCompile("^```(\\S*)\\s*$")

// FenceKind is the fenced code-block kind. Spans are linewise: the around
// variant covers the fence lines, the inner variant only the content
// between them.
type FenceKind struct {
	id   rune
	name string
}

// NewFenceKind creates the fenced-block kind under the given identifier.
func NewFenceKind(id rune) *FenceKind {
	return &FenceKind{id: id, name: "codeblock"}
}

// ID returns the kind identifier.
func (k *FenceKind) ID() rune { return k.id }

// Name returns the kind name.
func (k *FenceKind) Name() string { return k.name }

// RenderMode returns linewise.
func (k *FenceKind) RenderMode() RenderMode { return RenderLinewise }

// fenceBlock is one discovered open/close fence pair.
type fenceBlock struct {
	openLine  int
	closeLine int
	language  string
}

// fenceBlocks scans the whole document in one pass. A fence line outside a
// block opens one and captures the language tag; the next fence line
// closes it. An opening fence with no close before end of document yields
// nothing.
func fenceBlocks(doc host.Document) []fenceBlock {
	var blocks []fenceBlock
	openLine := 0
	language := ""
	inside := false
	for n := 1; n <= doc.LineCount(); n++ {
		m := fenceRe.FindStringSubmatch(doc.Line(n))
		if m == nil {
			continue
		}
		if !inside {
			inside = true
			openLine = n
			language = m[1]
			continue
		}
		blocks = append(blocks, fenceBlock{openLine: openLine, closeLine: n, language: language})
		inside = false
	}
	return blocks
}

// Find enumerates every fenced block in the document.
func (k *FenceKind) Find(fc FindContext) []Instance {
	doc := fc.Doc
	if emptyDoc(doc) {
		return nil
	}
	var out []Instance
	for _, b := range fenceBlocks(doc) {
		preview := ""
		if b.closeLine > b.openLine+1 {
			preview = strings.Join(doc.Lines(b.openLine+1, b.closeLine-1), "\n")
		}
		out = append(out, Instance{
			Start:    host.Position{Line: b.openLine, Col: 0},
			End:      host.Position{Line: b.closeLine, Col: len(doc.Line(b.closeLine))},
			Preview:  preview,
			Language: b.language,
		})
	}
	return dedupe(out)
}

// SelectAt resolves the block containing pos. The inner variant reports
// false for a block with no content lines.
func (k *FenceKind) SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool) {
	for _, b := range fenceBlocks(doc) {
		if pos.Line < b.openLine || pos.Line > b.closeLine {
			continue
		}
		if v == VariantAround {
			return host.Range{
				Start: host.Position{Line: b.openLine, Col: 0},
				End:   host.Position{Line: b.closeLine, Col: len(doc.Line(b.closeLine))},
			}, true
		}
		if b.closeLine <= b.openLine+1 {
			return host.Range{}, false
		}
		return host.Range{
			Start: host.Position{Line: b.openLine + 1, Col: 0},
			End:   host.Position{Line: b.closeLine - 1, Col: len(doc.Line(b.closeLine - 1))},
		}, true
	}
	return host.Range{}, false
}

// Format renders the block with its fences and language tag.
func (k *FenceKind) Format(inst Instance) []string {
	lines := []string{"```" + inst.Language}
	if inst.Preview != "" {
		lines = append(lines, strings.Split(inst.Preview, "\n")...)
	}
	return append(lines, "```")
}
