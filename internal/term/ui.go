// Package term is the terminal front-end: a tcell screen over the
// in-memory editor, with a modal key loop that feeds intents to the
// engine controller.
package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Piotr1215/beam/internal/app"
	"github.com/Piotr1215/beam/internal/editor"
	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/operator"
	"github.com/Piotr1215/beam/internal/textobj"
)

type mode int

const (
	modeNormal mode = iota
	// modeOperator is waiting for the variant and kind keys after an
	// operator key.
	modeOperator
	// modeLocate is collecting the locating pattern.
	modeLocate
)

// UI runs the interactive terminal session.
type UI struct {
	screen tcell.Screen
	ed     *editor.Editor
	app    *app.App
	logger *log.Logger

	mode        mode
	pendingOp   operator.Operation
	pendingLine bool
	variant     textobj.Variant
	haveVariant bool
	typed       []rune
	quit        bool
}

// New creates a UI over an editor and its engine controller.
func New(ed *editor.Editor, a *app.App, logger *log.Logger) (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if logger == nil {
		logger = log.Null
	}
	return &UI{
		screen: screen,
		ed:     ed,
		app:    a,
		logger: logger.WithComponent("term"),
	}, nil
}

// Run initializes the screen and processes events until quit.
func (u *UI) Run() error {
	if err := u.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer u.screen.Fini()

	for !u.quit {
		u.draw()
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventResize:
			u.screen.Sync()
		case *tcell.EventKey:
			u.handleKey(ev)
		}
	}
	return nil
}

// Quit stops the event loop after the current iteration.
func (u *UI) Quit() { u.quit = true }

func (u *UI) handleKey(ev *tcell.EventKey) {
	if u.mode == modeLocate {
		u.handleLocateKey(ev)
		return
	}
	if u.ed.InInsert() {
		u.handleInsertKey(ev)
		return
	}
	if u.app.Session() != nil {
		u.handleSessionKey(ev)
		return
	}
	if u.mode == modeOperator {
		u.handleOperatorKey(ev)
		return
	}
	u.handleNormalKey(ev)
}

func (u *UI) handleNormalKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		u.app.CancelAll()
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'q':
		u.quit = true
	case 'y', 'd', 'c', 's':
		u.pendingOp = operatorFor(ev.Rune())
		u.pendingLine = false
		u.haveVariant = false
		u.mode = modeOperator
	case 'Y', 'D', 'C', 'S':
		u.pendingOp = operatorFor(ev.Rune())
		u.startLine()
	case 'h', 'j', 'k', 'l':
		u.moveCursor(ev.Rune())
	}
}

// handleOperatorKey collects the variant key (i or a) and then the kind
// key, then dispatches the intent.
func (u *UI) handleOperatorKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		u.mode = modeNormal
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	r := ev.Rune()
	if !u.haveVariant {
		switch r {
		case 'i':
			u.variant = textobj.VariantInner
		case 'a':
			u.variant = textobj.VariantAround
		default:
			u.mode = modeNormal
			return
		}
		u.haveVariant = true
		return
	}

	u.mode = modeNormal
	outcome, err := u.dispatch(u.pendingOp, r, u.variant)
	if err != nil {
		u.ed.Notify(err.Error())
		return
	}
	if outcome == app.OutcomeEnterLocate {
		u.enterLocate()
	}
}

func (u *UI) dispatch(op operator.Operation, kindID rune, v textobj.Variant) (app.Outcome, error) {
	switch op {
	case operator.OpYank:
		return u.app.Yank(kindID, v)
	case operator.OpDelete:
		return u.app.Delete(kindID, v)
	case operator.OpChange:
		return u.app.Change(kindID, v)
	default:
		return u.app.Select(kindID, v)
	}
}

func (u *UI) startLine() {
	var outcome app.Outcome
	var err error
	switch u.pendingOp {
	case operator.OpYank:
		outcome, err = u.app.YankLine()
	case operator.OpDelete:
		outcome, err = u.app.DeleteLine()
	case operator.OpChange:
		outcome, err = u.app.ChangeLine()
	default:
		outcome, err = u.app.SelectLine()
	}
	if err != nil {
		u.ed.Notify(err.Error())
		return
	}
	if outcome == app.OutcomeEnterLocate {
		u.enterLocate()
	}
}

func (u *UI) enterLocate() {
	u.mode = modeLocate
	u.typed = []rune(u.ed.LocateSeed())
	u.app.CapturePartial(string(u.typed))
}

func (u *UI) handleLocateKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		u.mode = modeNormal
		u.typed = nil
		u.ed.CancelLocate()
	case tcell.KeyEnter:
		u.mode = modeNormal
		pattern := string(u.typed)
		u.typed = nil
		u.ed.SetLocateHighlight()
		u.ed.ConfirmLocate(pattern)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(u.typed) > 0 {
			u.typed = u.typed[:len(u.typed)-1]
		}
		u.app.CapturePartial(string(u.typed))
	case tcell.KeyRune:
		u.typed = append(u.typed, ev.Rune())
		u.app.CapturePartial(string(u.typed))
	}
}

func (u *UI) handleSessionKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEscape:
		u.app.SessionCancel()
	case ev.Key() == tcell.KeyEnter:
		u.app.SessionConfirm()
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'j' || ev.Rune() == 'n'):
		u.app.SessionNext()
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'k' || ev.Rune() == 'p'):
		u.app.SessionPrev()
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
		u.app.SessionCancel()
	}
}

func (u *UI) handleInsertKey(ev *tcell.EventKey) {
	doc := u.ed.ActiveDocument()
	if doc == nil {
		u.ed.LeaveInsert()
		return
	}
	cur := u.ed.Cursor()
	switch ev.Key() {
	case tcell.KeyEscape:
		u.ed.LeaveInsert()
	case tcell.KeyRune:
		r := host.Range{Start: cur, End: cur}
		if err := doc.Replace(r, string(ev.Rune())); err == nil {
			u.ed.SetCursor(host.Position{Line: cur.Line, Col: cur.Col + len(string(ev.Rune()))})
		}
	}
}

func (u *UI) moveCursor(r rune) {
	cur := u.ed.Cursor()
	switch r {
	case 'h':
		cur.Col--
	case 'l':
		cur.Col++
	case 'j':
		cur.Line++
	case 'k':
		cur.Line--
	}
	u.ed.SetCursor(cur)
}

func operatorFor(r rune) operator.Operation {
	switch r {
	case 'y', 'Y':
		return operator.OpYank
	case 'd', 'D':
		return operator.OpDelete
	case 'c', 'C':
		return operator.OpChange
	default:
		return operator.OpSelect
	}
}
