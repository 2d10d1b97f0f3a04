package editor

import "github.com/Piotr1215/beam/internal/host"

// MemPanel is an in-memory side panel. The terminal front-end draws it;
// tests inspect it directly.
type MemPanel struct {
	editor *Editor
	lines  []string
	cursor int
	width  int
	open   bool
}

// OpenPanel creates a side panel with the given content and width.
func (e *Editor) OpenPanel(lines []string, width int) (host.Panel, error) {
	p := &MemPanel{editor: e, lines: lines, cursor: 1, width: width, open: true}
	e.panels = append(e.panels, p)
	return p, nil
}

// ActivePanel returns the most recently opened panel still showing.
func (e *Editor) ActivePanel() *MemPanel {
	for i := len(e.panels) - 1; i >= 0; i-- {
		if e.panels[i].open {
			return e.panels[i]
		}
	}
	return nil
}

// SetLines replaces the panel content.
func (p *MemPanel) SetLines(lines []string) { p.lines = lines }

// Lines returns the panel content.
func (p *MemPanel) Lines() []string { return p.lines }

// Width returns the panel width chosen at open time.
func (p *MemPanel) Width() int { return p.width }

// CursorLine returns the 1-based panel cursor line.
func (p *MemPanel) CursorLine() int { return p.cursor }

// SetCursorLine moves the panel cursor, clamped to the content.
func (p *MemPanel) SetCursorLine(n int) {
	if n < 1 {
		n = 1
	}
	if n > len(p.lines) {
		n = len(p.lines)
	}
	p.cursor = n
}

// LineCount returns the number of panel lines.
func (p *MemPanel) LineCount() int { return len(p.lines) }

// Close hides the panel.
func (p *MemPanel) Close() { p.open = false }

// IsOpen reports whether the panel is still showing.
func (p *MemPanel) IsOpen() bool { return p.open }
