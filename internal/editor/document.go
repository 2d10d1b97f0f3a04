// Package editor provides an in-memory reference implementation of the
// host contract. It backs the test suite and the terminal front-end; a
// real integration would supply its own implementation of the interfaces
// in internal/host instead.
package editor

import (
	"strings"

	"github.com/Piotr1215/beam/internal/host"
)

// Document is an in-memory host document. A document always holds at
// least one line; a freshly opened empty document holds one empty line.
type Document struct {
	id       int
	name     string
	filetype string
	lines    []string
}

// ID returns the document's stable identifier.
func (d *Document) ID() int { return d.id }

// Name returns the document's display name.
func (d *Document) Name() string { return d.name }

// Filetype returns the document's kind tag.
func (d *Document) Filetype() string { return d.filetype }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the 1-based line, or "" if out of range.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// Lines returns lines from through to inclusive, clamped to the document.
func (d *Document) Lines(from, to int) []string {
	if from < 1 {
		from = 1
	}
	if to > len(d.lines) {
		to = len(d.lines)
	}
	if from > to {
		return nil
	}
	out := make([]string, to-from+1)
	copy(out, d.lines[from-1:to])
	return out
}

// SetLines replaces lines from through to inclusive with repl.
func (d *Document) SetLines(from, to int, repl []string) error {
	if from < 1 || to > len(d.lines) || from > to+1 {
		return host.ErrLineOutOfRange
	}
	newLines := make([]string, 0, len(d.lines)-(to-from+1)+len(repl))
	newLines = append(newLines, d.lines[:from-1]...)
	newLines = append(newLines, repl...)
	newLines = append(newLines, d.lines[to:]...)
	if len(newLines) == 0 {
		newLines = []string{""}
	}
	d.lines = newLines
	return nil
}

// Text returns the text covered by r. The end column is exclusive.
func (d *Document) Text(r host.Range) string {
	if !d.validRange(r) {
		return ""
	}
	if r.Start.Line == r.End.Line {
		line := d.lines[r.Start.Line-1]
		return line[clampCol(line, r.Start.Col):clampCol(line, r.End.Col)]
	}
	var b strings.Builder
	first := d.lines[r.Start.Line-1]
	b.WriteString(first[clampCol(first, r.Start.Col):])
	for n := r.Start.Line + 1; n < r.End.Line; n++ {
		b.WriteByte('\n')
		b.WriteString(d.lines[n-1])
	}
	last := d.lines[r.End.Line-1]
	b.WriteByte('\n')
	b.WriteString(last[:clampCol(last, r.End.Col)])
	return b.String()
}

// Replace substitutes the text covered by r with text. A multi-line text
// argument splits on newlines.
func (d *Document) Replace(r host.Range, text string) error {
	if !d.validRange(r) {
		return host.ErrRangeInvalid
	}
	first := d.lines[r.Start.Line-1]
	last := d.lines[r.End.Line-1]
	prefix := first[:clampCol(first, r.Start.Col)]
	suffix := last[clampCol(last, r.End.Col):]

	repl := strings.Split(prefix+text+suffix, "\n")
	return d.SetLines(r.Start.Line, r.End.Line, repl)
}

// ContentEquals reports whether the document's lines match want.
func (d *Document) ContentEquals(want []string) bool {
	if len(d.lines) != len(want) {
		return false
	}
	for i := range want {
		if d.lines[i] != want[i] {
			return false
		}
	}
	return true
}

func (d *Document) validRange(r host.Range) bool {
	if r.Start.Line < 1 || r.End.Line > len(d.lines) {
		return false
	}
	if r.End.Line < r.Start.Line {
		return false
	}
	if r.Start.Line == r.End.Line && r.End.Col < r.Start.Col {
		return false
	}
	return true
}

func clampCol(line string, col int) int {
	if col < 0 {
		return 0
	}
	if col > len(line) {
		return len(line)
	}
	return col
}
