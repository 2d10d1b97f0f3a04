package editor

import (
	"github.com/Piotr1215/beam/internal/host"
)

// Editor is an in-memory multi-document editor implementing the full host
// contract. It is deliberately single-threaded, mirroring the cooperative
// model of the engine.
type Editor struct {
	docs    []*Document
	nextID  int
	active  int
	visible map[int]bool

	cursors map[int]host.Position
	cursor  host.Position
	topLine int

	register    host.Register
	lastPattern string

	insertMode bool
	selection  *docRange
	highlight  *docRange

	locate       locateState
	locateHL     bool
	notification string

	preview *previewState
	panels  []*MemPanel
}

type docRange struct {
	docID int
	r     host.Range
}

type locateState struct {
	open    bool
	seed    string
	suffix  string
	handler func(pattern string)
	token   int
}

type previewState struct {
	docID   int
	restore host.ViewState
}

// New creates an empty editor with no documents.
func New() *Editor {
	return &Editor{
		nextID:  1,
		active:  -1,
		visible: make(map[int]bool),
		cursors: make(map[int]host.Position),
		cursor:  host.Position{Line: 1, Col: 0},
		topLine: 1,
	}
}

// Open adds a document with the given content and makes it active and
// visible. Empty content yields a single empty line.
func (e *Editor) Open(name, filetype string, lines []string) *Document {
	if len(lines) == 0 {
		lines = []string{""}
	}
	copied := make([]string, len(lines))
	copy(copied, lines)
	doc := &Document{
		id:       e.nextID,
		name:     name,
		filetype: filetype,
		lines:    copied,
	}
	e.nextID++
	e.docs = append(e.docs, doc)
	e.visible[doc.id] = true
	e.setActive(doc)
	return doc
}

// OpenHidden adds a document that is open but not shown in any window.
func (e *Editor) OpenHidden(name, filetype string, lines []string) *Document {
	doc := e.Open(name, filetype, lines)
	e.visible[doc.id] = false
	// Opening hidden must not steal focus.
	for i, d := range e.docs {
		if d != doc && e.visible[d.id] {
			e.active = i
			break
		}
	}
	return doc
}

// SetVisible marks a document visible or hidden.
func (e *Editor) SetVisible(doc *Document, visible bool) {
	e.visible[doc.id] = visible
}

// ActiveDocument returns the focused document, or nil when none is open.
func (e *Editor) ActiveDocument() host.Document {
	if e.active < 0 || e.active >= len(e.docs) {
		return nil
	}
	return e.docs[e.active]
}

// Documents returns all open documents in stable open order.
func (e *Editor) Documents() []host.Document {
	out := make([]host.Document, len(e.docs))
	for i, d := range e.docs {
		out[i] = d
	}
	return out
}

// IsVisible reports whether the document is shown in some window.
func (e *Editor) IsVisible(doc host.Document) bool {
	return e.visible[doc.ID()]
}

// SwitchTo focuses doc in the current window.
func (e *Editor) SwitchTo(doc host.Document) error {
	for _, d := range e.docs {
		if d.id == doc.ID() {
			e.setActive(d)
			return nil
		}
	}
	return host.ErrDocumentNotOpen
}

// OpenPreview shows doc in a secondary window. The returned func closes
// the preview and restores the prior focus and view.
func (e *Editor) OpenPreview(doc host.Document) (func(), error) {
	found := false
	for _, d := range e.docs {
		if d.id == doc.ID() {
			found = true
			break
		}
	}
	if !found {
		return nil, host.ErrDocumentNotOpen
	}

	saved := e.SaveView()
	e.preview = &previewState{docID: doc.ID(), restore: saved}
	if err := e.SwitchTo(doc); err != nil {
		e.preview = nil
		return nil, err
	}
	return func() {
		if e.preview == nil {
			return
		}
		restore := e.preview.restore
		e.preview = nil
		e.RestoreView(restore)
	}, nil
}

// PreviewOpen reports whether a secondary preview window is open.
func (e *Editor) PreviewOpen() bool { return e.preview != nil }

func (e *Editor) setActive(doc *Document) {
	if cur := e.ActiveDocument(); cur != nil {
		e.cursors[cur.ID()] = e.cursor
	}
	for i, d := range e.docs {
		if d == doc {
			e.active = i
			break
		}
	}
	if pos, ok := e.cursors[doc.id]; ok {
		e.cursor = pos
	} else {
		e.cursor = host.Position{Line: 1, Col: 0}
	}
}

// Cursor returns the cursor position in the focused window.
func (e *Editor) Cursor() host.Position { return e.cursor }

// SetCursor moves the cursor, clamping the line into the document.
func (e *Editor) SetCursor(pos host.Position) {
	if doc := e.ActiveDocument(); doc != nil {
		if pos.Line < 1 {
			pos.Line = 1
		}
		if pos.Line > doc.LineCount() {
			pos.Line = doc.LineCount()
		}
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	e.cursor = pos
}

// CenterOn scrolls so line is vertically centered. The in-memory editor
// models this as setting the top line; the terminal front-end reads it.
func (e *Editor) CenterOn(line int) {
	top := line - 10
	if top < 1 {
		top = 1
	}
	e.topLine = top
}

// TopLine returns the first visible line of the focused window.
func (e *Editor) TopLine() int { return e.topLine }

// SaveView captures the focused document, cursor, and scroll position.
func (e *Editor) SaveView() host.ViewState {
	docID := 0
	if doc := e.ActiveDocument(); doc != nil {
		docID = doc.ID()
	}
	return host.ViewState{DocID: docID, Cursor: e.cursor, TopLine: e.topLine}
}

// RestoreView returns to a previously saved view.
func (e *Editor) RestoreView(state host.ViewState) {
	for _, d := range e.docs {
		if d.id == state.DocID {
			e.setActive(d)
			break
		}
	}
	e.cursor = state.Cursor
	e.topLine = state.TopLine
}

// Register returns the default register content.
func (e *Editor) Register() host.Register { return e.register }

// SetRegister overwrites the default register.
func (e *Editor) SetRegister(reg host.Register) { e.register = reg }

// EnterInsert switches to insert mode at the cursor.
func (e *Editor) EnterInsert() { e.insertMode = true }

// LeaveInsert returns to normal mode.
func (e *Editor) LeaveInsert() { e.insertMode = false }

// InInsert reports whether the editor is in insert mode.
func (e *Editor) InInsert() bool { return e.insertMode }

// SetSelection puts the editor into visual-selection state over r.
func (e *Editor) SetSelection(doc host.Document, r host.Range) {
	e.selection = &docRange{docID: doc.ID(), r: r}
}

// Selection returns the active visual selection, if any.
func (e *Editor) Selection() (host.Range, bool) {
	if e.selection == nil {
		return host.Range{}, false
	}
	return e.selection.r, true
}

// ClearSelection drops the visual selection.
func (e *Editor) ClearSelection() { e.selection = nil }

// SetHighlight draws the preview highlight, replacing any previous one.
func (e *Editor) SetHighlight(doc host.Document, r host.Range) {
	e.highlight = &docRange{docID: doc.ID(), r: r}
}

// ClearHighlight removes the preview highlight.
func (e *Editor) ClearHighlight() { e.highlight = nil }

// Highlight returns the current preview highlight, if any.
func (e *Editor) Highlight() (host.Range, bool) {
	if e.highlight == nil {
		return host.Range{}, false
	}
	return e.highlight.r, true
}

// Notify records a passive notification message.
func (e *Editor) Notify(msg string) { e.notification = msg }

// LastNotification returns the most recent notification.
func (e *Editor) LastNotification() string { return e.notification }
