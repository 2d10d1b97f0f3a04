package textobj

import (
	"regexp"
	"strings"

	"github.com/Piotr1215/beam/internal/host"
)

var openTagRe = regexp.MustCompile(`^<([A-Za-z][A-Za-z0-9-]*)((?:[^<>])*)>`)

// TagKind is the markup tag-pair kind. The around variant covers the
// opening through closing tag, the inner variant the content between them.
// Nesting of the same tag name is honored; self-closing tags never open a
// span.
type TagKind struct {
	id   rune
	name string
}

// NewTagKind creates the tag-pair kind under the given identifier.
func NewTagKind(id rune) *TagKind {
	return &TagKind{id: id, name: "tag"}
}

// ID returns the kind identifier.
func (k *TagKind) ID() rune { return k.id }

// Name returns the kind name.
func (k *TagKind) Name() string { return k.name }

// RenderMode returns characterwise.
func (k *TagKind) RenderMode() RenderMode { return RenderCharacterwise }

// SelectAt resolves the tag span whose opening "<" sits at pos.
func (k *TagKind) SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool) {
	line := doc.Line(pos.Line)
	if pos.Col < 0 || pos.Col >= len(line) {
		return host.Range{}, false
	}
	m := openTagRe.FindStringSubmatch(line[pos.Col:])
	if m == nil || strings.HasSuffix(m[0], "/>") {
		return host.Range{}, false
	}
	tagName := m[1]
	openEnd := host.Position{Line: pos.Line, Col: pos.Col + len(m[0])}

	closeStart, closeEnd, ok := k.matchClose(doc, tagName, openEnd)
	if !ok {
		return host.Range{}, false
	}
	if v == VariantAround {
		return host.Range{Start: pos, End: closeEnd}, true
	}
	return host.Range{Start: openEnd, End: closeStart}, true
}

// matchClose scans forward from pos for the closing tag of tagName,
// tracking nesting of the same name.
func (k *TagKind) matchClose(doc host.Document, tagName string, pos host.Position) (host.Position, host.Position, bool) {
	openPat := regexp.MustCompile(`<` + tagName + `(?:[^<>])*>`)
	closePat := regexp.MustCompile(`</` + tagName + `\s*>`)
	depth := 0
	for lineNum := pos.Line; lineNum <= doc.LineCount(); lineNum++ {
		line := doc.Line(lineNum)
		col := 0
		if lineNum == pos.Line {
			col = pos.Col
		}
		for col <= len(line) {
			openIdx := openPat.FindStringIndex(line[col:])
			closeIdx := closePat.FindStringIndex(line[col:])
			if closeIdx == nil {
				break
			}
			if openIdx != nil && openIdx[0] < closeIdx[0] {
				if !strings.HasSuffix(line[col+openIdx[0]:col+openIdx[1]], "/>") {
					depth++
				}
				col += openIdx[1]
				continue
			}
			if depth == 0 {
				start := host.Position{Line: lineNum, Col: col + closeIdx[0]}
				end := host.Position{Line: lineNum, Col: col + closeIdx[1]}
				return start, end, true
			}
			depth--
			col += closeIdx[1]
		}
	}
	return host.Position{}, host.Position{}, false
}

// Find enumerates every tag pair via the shared scan loop, probing each
// "<" hit with a trial selection.
func (k *TagKind) Find(fc FindContext) []Instance {
	return scanDelimited(fc, `<[A-Za-z]`, func(doc host.Document, pos host.Position) (Instance, bool) {
		around, ok := k.SelectAt(doc, pos, VariantAround)
		if !ok {
			return Instance{}, false
		}
		inner, _ := k.SelectAt(doc, pos, VariantInner)
		return Instance{
			Start:   around.Start,
			End:     around.End,
			Preview: doc.Text(inner),
		}, true
	})
}

// Format wraps the preview in generic angle delimiters.
func (k *TagKind) Format(inst Instance) []string {
	lines := strings.Split(inst.Preview, "\n")
	lines[0] = "<" + lines[0]
	lines[len(lines)-1] += ">"
	return lines
}
