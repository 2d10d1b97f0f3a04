package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Piotr1215/beam/internal/host"
)

var (
	styleDefault   = tcell.StyleDefault
	styleHighlight = tcell.StyleDefault.Reverse(true)
	styleStatus    = tcell.StyleDefault.Bold(true)
	stylePanel     = tcell.StyleDefault.Dim(true)
)

// draw renders the full screen: document area, optional session panel on
// the right, and a status line with the locate prompt at the bottom.
func (u *UI) draw() {
	u.screen.Clear()
	width, height := u.screen.Size()
	if height < 2 {
		u.screen.Show()
		return
	}
	textHeight := height - 1

	panelWidth := 0
	if s := u.app.Session(); s != nil {
		if p := u.ed.ActivePanel(); p != nil {
			panelWidth = p.Width()
			if panelWidth > width/2 {
				panelWidth = width / 2
			}
		}
	}
	docWidth := width - panelWidth

	u.drawDocument(docWidth, textHeight)
	if panelWidth > 0 {
		u.drawPanel(docWidth, panelWidth, textHeight)
	}
	u.drawStatus(width, height-1)
	u.screen.Show()
}

func (u *UI) drawDocument(width, height int) {
	doc := u.ed.ActiveDocument()
	if doc == nil {
		return
	}
	top := u.ed.TopLine()
	cur := u.ed.Cursor()

	hl, hasHL := u.ed.Highlight()
	sel, hasSel := u.ed.Selection()

	for row := 0; row < height; row++ {
		line := top + row
		if line > doc.LineCount() {
			break
		}
		text := doc.Line(line)
		for col, r := range []rune(text) {
			if col >= width {
				break
			}
			style := styleDefault
			pos := host.Position{Line: line, Col: col}
			if hasSel && inRange(sel, pos) {
				style = styleHighlight
			} else if hasHL && inRange(hl, pos) {
				style = styleHighlight
			}
			u.screen.SetContent(col, row, r, nil, style)
		}
	}

	if cur.Line >= top && cur.Line < top+height {
		u.screen.ShowCursor(cur.Col, cur.Line-top)
	} else {
		u.screen.HideCursor()
	}
}

func (u *UI) drawPanel(x, width, height int) {
	p := u.ed.ActivePanel()
	if p == nil {
		return
	}
	for row := 0; row < height; row++ {
		u.screen.SetContent(x, row, '│', nil, stylePanel)
	}
	for i, line := range p.Lines() {
		if i >= height {
			break
		}
		style := stylePanel
		if i+1 == p.CursorLine() {
			style = styleHighlight
		}
		for col, r := range []rune(line) {
			if col >= width-1 {
				break
			}
			u.screen.SetContent(x+1+col, i, r, nil, style)
		}
	}
}

func (u *UI) drawStatus(width, row int) {
	var text string
	switch {
	case u.mode == modeLocate:
		text = "/" + string(u.typed)
	case u.ed.InInsert():
		text = "-- INSERT --"
	case u.app.Session() != nil:
		text = "-- SCOPED -- j/k move, enter confirm, esc cancel"
	case u.mode == modeOperator:
		text = fmt.Sprintf("%s ...", u.pendingOp)
	default:
		text = u.ed.LastNotification()
	}
	for col, r := range []rune(text) {
		if col >= width {
			break
		}
		u.screen.SetContent(col, row, r, nil, styleStatus)
	}
}

// inRange reports whether pos falls inside r, treating the end column as
// exclusive on the final line.
func inRange(r host.Range, pos host.Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Col < r.Start.Col {
		return false
	}
	if pos.Line == r.End.Line && pos.Col >= r.End.Col {
		return false
	}
	return true
}
