package editor

import (
	"regexp"

	"github.com/Piotr1215/beam/internal/host"
)

// SearchIn performs a forward search in doc starting at from. Patterns are
// Go regular expressions; an invalid pattern never matches. Matching is
// per-line (patterns do not cross newlines), which is all the engine's
// probes require.
func (e *Editor) SearchIn(doc host.Document, pattern string, from host.Position, flags host.SearchFlags) (host.Position, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return host.Position{}, false
	}

	if pos, ok := searchRange(doc, re, from, doc.LineCount(), flags.IncludeCurrent); ok {
		return pos, true
	}
	if flags.NoWrap {
		return host.Position{}, false
	}
	// Wrap: scan from the top back up to the start position.
	start := host.Position{Line: 1, Col: 0}
	if pos, ok := searchRange(doc, re, start, from.Line, true); ok {
		return pos, true
	}
	return host.Position{}, false
}

// searchRange scans lines from.Line through lastLine for the first match
// at or after from.
func searchRange(doc host.Document, re *regexp.Regexp, from host.Position, lastLine int, includeCurrent bool) (host.Position, bool) {
	startCol := from.Col
	if !includeCurrent {
		startCol++
	}
	for line := from.Line; line <= lastLine; line++ {
		if line < 1 {
			continue
		}
		text := doc.Line(line)
		col := startCol
		if line != from.Line {
			col = 0
		}
		if col > len(text) {
			continue
		}
		if idx := re.FindStringIndex(text[col:]); idx != nil {
			return host.Position{Line: line, Col: col + idx[0]}, true
		}
	}
	return host.Position{}, false
}

// LastPattern returns the search pattern register.
func (e *Editor) LastPattern() string { return e.lastPattern }

// SetLastPattern overwrites the search pattern register.
func (e *Editor) SetLastPattern(pattern string) { e.lastPattern = pattern }
