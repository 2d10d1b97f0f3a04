package textobj

import (
	"regexp"
	"strings"

	"github.com/Piotr1215/beam/internal/host"
)

var headingRe = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)

// HeadingKind is the hierarchical heading kind. A heading's span runs from
// its own line to the line before the next heading of any level, or to the
// end of the document.
type HeadingKind struct {
	id   rune
	name string
}

// NewHeadingKind creates the heading kind under the given identifier.
func NewHeadingKind(id rune) *HeadingKind {
	return &HeadingKind{id: id, name: "heading"}
}

// ID returns the kind identifier.
func (k *HeadingKind) ID() rune { return k.id }

// Name returns the kind name.
func (k *HeadingKind) Name() string { return k.name }

// RenderMode returns linewise.
func (k *HeadingKind) RenderMode() RenderMode { return RenderLinewise }

type headingLine struct {
	line  int
	level int
	title string
}

func headingLines(doc host.Document) []headingLine {
	var out []headingLine
	for n := 1; n <= doc.LineCount(); n++ {
		if m := headingRe.FindStringSubmatch(doc.Line(n)); m != nil {
			out = append(out, headingLine{line: n, level: len(m[1]), title: m[2]})
		}
	}
	return out
}

// Find enumerates every heading. The first pass records heading lines and
// levels; the second computes each content range against the next heading
// of any level.
func (k *HeadingKind) Find(fc FindContext) []Instance {
	doc := fc.Doc
	if emptyDoc(doc) {
		return nil
	}
	heads := headingLines(doc)
	out := make([]Instance, 0, len(heads))
	for i, h := range heads {
		endLine := doc.LineCount()
		if i+1 < len(heads) {
			endLine = heads[i+1].line - 1
		}
		hasContent := false
		for n := h.line + 1; n <= endLine; n++ {
			if strings.TrimSpace(doc.Line(n)) != "" {
				hasContent = true
				break
			}
		}
		out = append(out, Instance{
			Start:      host.Position{Line: h.line, Col: 0},
			End:        host.Position{Line: endLine, Col: len(doc.Line(endLine))},
			Preview:    strings.Join(doc.Lines(h.line, endLine), "\n"),
			Level:      h.level,
			HasContent: hasContent,
		})
	}
	return dedupe(out)
}

// SelectAt resolves the heading span containing pos. The inner variant
// excludes the heading line itself and reports false for a heading with no
// content lines.
func (k *HeadingKind) SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool) {
	for _, inst := range k.Find(FindContext{Doc: doc}) {
		if pos.Line < inst.Start.Line || pos.Line > inst.End.Line {
			continue
		}
		if v == VariantAround {
			return host.Range{Start: inst.Start, End: inst.End}, true
		}
		if inst.End.Line == inst.Start.Line {
			return host.Range{}, false
		}
		return host.Range{
			Start: host.Position{Line: inst.Start.Line + 1, Col: 0},
			End:   inst.End,
		}, true
	}
	return host.Range{}, false
}

// Format renders the heading title indented by nesting level.
func (k *HeadingKind) Format(inst Instance) []string {
	level := inst.Level
	if level < 1 {
		level = 1
	}
	indent := strings.Repeat("  ", level-1)
	title := inst.FirstLinePreview()
	return []string{indent + title}
}
