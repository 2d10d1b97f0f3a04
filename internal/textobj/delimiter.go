package textobj

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/Piotr1215/beam/internal/host"
)

// scanCeiling bounds the number of search steps a whole-document scan may
// take, so pathological or unterminated delimiters cannot hang the engine.
const scanCeiling = 1000

// DelimiterKind is a quote, bracket, or similar delimiter-pair kind.
// Symmetric pairs (quotes) use the same rune on both sides and stay on one
// line; asymmetric pairs (brackets) nest and may span lines.
type DelimiterKind struct {
	id      rune
	name    string
	open    rune
	closing rune
}

// NewDelimiterKind creates a delimiter-pair kind. open == closing makes
// the kind symmetric.
func NewDelimiterKind(id rune, name string, open, closing rune) *DelimiterKind {
	return &DelimiterKind{id: id, name: name, open: open, closing: closing}
}

// ID returns the kind identifier.
func (k *DelimiterKind) ID() rune { return k.id }

// Name returns the kind name.
func (k *DelimiterKind) Name() string { return k.name }

// RenderMode returns characterwise; delimiter spans use exact columns.
func (k *DelimiterKind) RenderMode() RenderMode { return RenderCharacterwise }

// OpenDelimiter returns the opening delimiter text.
func (k *DelimiterKind) OpenDelimiter() string { return string(k.open) }

// CloseDelimiter returns the closing delimiter text.
func (k *DelimiterKind) CloseDelimiter() string { return string(k.closing) }

func (k *DelimiterKind) symmetric() bool { return k.open == k.closing }

// searchPattern is the host search pattern used by the scanner: the
// character itself for symmetric pairs, a character class of both sides
// for asymmetric ones.
func (k *DelimiterKind) searchPattern() string {
	if k.symmetric() {
		return regexp.QuoteMeta(string(k.open))
	}
	return "[" + escapeClass(k.open) + escapeClass(k.closing) + "]"
}

// escapeClass escapes a rune for use inside a regexp character class.
func escapeClass(r rune) string {
	switch r {
	case '\\', ']', '^', '-':
		return "\\" + string(r)
	}
	return string(r)
}

// SelectAt resolves the delimiter span enclosing pos, or opening at or
// after pos on the same line for quote pairs. It reports false when no
// well-formed pair exists.
func (k *DelimiterKind) SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool) {
	openPos, ok := k.findOpen(doc, pos)
	if !ok {
		return host.Range{}, false
	}
	w := utf8.RuneLen(k.open)

	var closePos host.Position
	var cw int
	if k.symmetric() {
		// Quote pairs close on the same line.
		line := doc.Line(openPos.Line)
		rest := line[openPos.Col+w:]
		idx := strings.IndexRune(rest, k.closing)
		if idx < 0 {
			return host.Range{}, false
		}
		closePos = host.Position{Line: openPos.Line, Col: openPos.Col + w + idx}
		cw = utf8.RuneLen(k.closing)
	} else {
		closePos, cw, ok = k.matchForward(doc, host.Position{Line: openPos.Line, Col: openPos.Col + w})
		if !ok {
			return host.Range{}, false
		}
	}

	if v == VariantAround {
		return host.Range{
			Start: openPos,
			End:   host.Position{Line: closePos.Line, Col: closePos.Col + cw},
		}, true
	}
	return host.Range{
		Start: host.Position{Line: openPos.Line, Col: openPos.Col + w},
		End:   closePos,
	}, true
}

// OpensAt reports whether pos sits exactly on an opening delimiter. The
// whole-document scanner only attempts trial selections at such positions
// so discovered spans stay compatible with forward-from-open selection.
func (k *DelimiterKind) OpensAt(doc host.Document, pos host.Position) bool {
	openPos, ok := k.findOpen(doc, pos)
	return ok && openPos == pos
}

// findOpen locates the opening delimiter governing pos.
func (k *DelimiterKind) findOpen(doc host.Document, pos host.Position) (host.Position, bool) {
	line := doc.Line(pos.Line)
	if pos.Col < 0 || pos.Col > len(line) {
		return host.Position{}, false
	}
	if k.symmetric() {
		return k.findQuoteOpen(line, pos)
	}
	return k.findBracketOpen(doc, pos)
}

// findQuoteOpen pairs quote occurrences on the line left to right. A
// cursor inside a pair selects that pair; a cursor before any pair selects
// the next one on the line. Each literal occurrence counts; escaped quotes
// are not special-cased.
func (k *DelimiterKind) findQuoteOpen(line string, pos host.Position) (host.Position, bool) {
	var cols []int
	for i := 0; i < len(line); {
		r, w := utf8.DecodeRuneInString(line[i:])
		if r == k.open {
			cols = append(cols, i)
		}
		i += w
	}
	if len(cols) < 2 {
		return host.Position{}, false
	}
	// Count occurrences strictly before the cursor.
	before := 0
	for _, c := range cols {
		if c < pos.Col {
			before++
		}
	}
	var openIdx int
	if before%2 == 1 {
		// Inside a pair (or sitting on its closing quote).
		openIdx = before - 1
	} else {
		// On an opening quote, or before the next pair on the line.
		openIdx = before
	}
	if openIdx+1 >= len(cols) {
		return host.Position{}, false
	}
	return host.Position{Line: pos.Line, Col: cols[openIdx]}, true
}

// findBracketOpen returns pos itself when it sits on the opening bracket,
// otherwise scans backward for the unmatched opening bracket enclosing
// pos.
func (k *DelimiterKind) findBracketOpen(doc host.Document, pos host.Position) (host.Position, bool) {
	line := doc.Line(pos.Line)
	if pos.Col < len(line) {
		if r, _ := utf8.DecodeRuneInString(line[pos.Col:]); r == k.open {
			return pos, true
		}
	}
	depth := 0
	for lineNum := pos.Line; lineNum >= 1; lineNum-- {
		text := doc.Line(lineNum)
		end := len(text)
		if lineNum == pos.Line && pos.Col < end {
			end = pos.Col
		}
		for col := end; col > 0; {
			r, w := utf8.DecodeLastRuneInString(text[:col])
			col -= w
			switch r {
			case k.closing:
				depth++
			case k.open:
				if depth == 0 {
					return host.Position{Line: lineNum, Col: col}, true
				}
				depth--
			}
		}
	}
	return host.Position{}, false
}

// matchForward finds the matching closing delimiter from pos, honoring
// nesting of the same pair.
func (k *DelimiterKind) matchForward(doc host.Document, pos host.Position) (host.Position, int, bool) {
	depth := 0
	for lineNum := pos.Line; lineNum <= doc.LineCount(); lineNum++ {
		line := doc.Line(lineNum)
		col := 0
		if lineNum == pos.Line {
			col = pos.Col
		}
		for col < len(line) {
			r, w := utf8.DecodeRuneInString(line[col:])
			switch r {
			case k.open:
				depth++
			case k.closing:
				if depth == 0 {
					return host.Position{Line: lineNum, Col: col}, w, true
				}
				depth--
			}
			col += w
		}
	}
	return host.Position{}, 0, false
}

// Find enumerates every instance of the pair in the document by repeated
// forward search plus trial selection: only opening-character hits are
// attempted, unterminated occurrences are skipped, duplicate start
// positions are suppressed, and the search pattern register is restored
// afterwards.
func (k *DelimiterKind) Find(fc FindContext) []Instance {
	return scanDelimited(fc, k.searchPattern(), func(doc host.Document, pos host.Position) (Instance, bool) {
		if !k.OpensAt(doc, pos) {
			return Instance{}, false
		}
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

// Format wraps the preview text with the kind's delimiters, attaching the
// opening delimiter to the first line and the closing one to the last.
func (k *DelimiterKind) Format(inst Instance) []string {
	lines := strings.Split(inst.Preview, "\n")
	lines[0] = string(k.open) + lines[0]
	lines[len(lines)-1] += string(k.closing)
	return lines
}

// scanDelimited is the shared whole-document scan loop: forward
// wrap-disabled search from (1,0), trial selection at each hit, a hard
// iteration ceiling, and force-advance when the host search returns the
// same position twice in a row. trial decides whether a hit yields an
// instance; misses (closing-character hits, unterminated pairs) are
// skipped and scanning continues from the next occurrence. Register and
// search-pattern state touched along the way is restored on all paths.
func scanDelimited(fc FindContext, pattern string, trial func(doc host.Document, pos host.Position) (Instance, bool)) []Instance {
	doc := fc.Doc
	if emptyDoc(doc) || fc.Search == nil {
		return nil
	}

	var out []Instance
	scan := func() error {
		pos := host.Position{Line: 1, Col: 0}
		include := true
		var last host.Position
		haveLast := false
		for steps := 0; steps < scanCeiling; steps++ {
			hit, ok := fc.Search.SearchIn(doc, pattern, pos, host.SearchFlags{
				IncludeCurrent: include,
				NoWrap:         true,
			})
			include = false
			if !ok {
				break
			}
			if haveLast && hit == last {
				// Host returned the same spot twice; step over it.
				pos = host.Position{Line: hit.Line, Col: hit.Col + 1}
				include = true
				continue
			}
			last, haveLast = hit, true
			if inst, ok := trial(doc, hit); ok {
				out = append(out, inst)
			}
			pos = hit
		}
		return nil
	}

	run := func() error {
		return host.WithPatternSnapshot(fc.Search, scan)
	}
	if fc.Registers != nil {
		_ = host.WithRegisterSnapshot(fc.Registers, run)
	} else {
		_ = run()
	}

	return dedupe(out)
}
