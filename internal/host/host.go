// Package host defines the contract between the beam engine and the text
// editing environment it operates inside.
//
// The engine never talks to a concrete editor directly. Everything it needs
// (documents, cursor, search, registers, the locate prompt, highlights,
// panels) is expressed as narrow interfaces here, bundled into a Context
// that is threaded through the operation executor, the deferred-operation
// machine, and the scoped selection session.
package host

// Position is a location in a document. Line is 1-based, Col is a 0-based
// byte column, matching the convention used throughout the engine.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p is strictly before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range is a span of text. End.Col is exclusive; a range with Start == End
// is empty. Linewise operations ignore the columns entirely.
type Range struct {
	Start Position
	End   Position
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// LineCount returns the number of lines the range touches.
func (r Range) LineCount() int {
	return r.End.Line - r.Start.Line + 1
}

// SearchFlags controls a forward search.
type SearchFlags struct {
	// IncludeCurrent includes the character at the start position itself
	// as a match candidate.
	IncludeCurrent bool

	// NoWrap disables wrapping around the end of the document.
	NoWrap bool
}

// Document is a read/write view of one open document.
type Document interface {
	// ID is a stable identifier unique within the editor session.
	ID() int

	// Name is the display name (usually a file path).
	Name() string

	// Filetype is the document's kind tag (e.g. "markdown", "go").
	Filetype() string

	// LineCount returns the number of lines. An empty document has one
	// empty line.
	LineCount() int

	// Line returns the 1-based line, or "" if out of range.
	Line(n int) string

	// Lines returns lines from through to inclusive, clamped to the
	// document.
	Lines(from, to int) []string

	// SetLines replaces lines from through to inclusive with repl.
	SetLines(from, to int, repl []string) error

	// Text returns the text covered by r (End.Col exclusive).
	Text(r Range) string

	// Replace substitutes the text covered by r with text.
	Replace(r Range, text string) error
}

// Searcher is the host's forward-search primitive plus its last-pattern
// register, which the engine must save and restore around internal probes.
type Searcher interface {
	// SearchIn searches doc forward from the given position and returns
	// the start of the first match.
	SearchIn(doc Document, pattern string, from Position, flags SearchFlags) (Position, bool)

	// LastPattern returns the host's current search pattern register.
	LastPattern() string

	// SetLastPattern overwrites the search pattern register.
	SetLastPattern(pattern string)
}

// ViewState captures enough viewport and focus state to return exactly
// where the user was.
type ViewState struct {
	DocID   int
	Cursor  Position
	TopLine int
}

// Viewport exposes cursor and view control for the focused window.
type Viewport interface {
	Cursor() Position
	SetCursor(pos Position)

	// CenterOn scrolls the focused window so line is vertically centered.
	CenterOn(line int)

	SaveView() ViewState
	RestoreView(state ViewState)
}

// Register is the content of the clipboard-like default register.
type Register struct {
	Text     string
	Linewise bool
}

// Registers exposes the default register for snapshot and restore.
type Registers interface {
	Register() Register
	SetRegister(reg Register)
}

// Editor exposes document enumeration and focus switching for the
// cross-document sweep.
type Editor interface {
	ActiveDocument() Document

	// Documents returns all open documents in the host's stable order.
	Documents() []Document

	// IsVisible reports whether the document is shown in some window.
	IsVisible(doc Document) bool

	// SwitchTo focuses doc in the current window.
	SwitchTo(doc Document) error

	// OpenPreview shows doc in a secondary window without disturbing the
	// current one. The returned func closes the preview again.
	OpenPreview(doc Document) (func(), error)
}

// Locator is the host's locate (search prompt) feature. The engine
// registers at most one confirmation handler at a time; registering a new
// handler replaces the previous one.
type Locator interface {
	// BeginLocate opens the locate prompt, optionally pre-seeded. suffix
	// is appended to whatever the user typed when they confirm.
	BeginLocate(seed, suffix string)

	// OnLocateConfirmed installs the single confirmation handler and
	// returns a cancel func that unregisters it. The handler receives the
	// effective pattern ("" when the user confirmed an empty prompt).
	OnLocateConfirmed(fn func(pattern string)) (cancel func())

	// ClearLocateHighlight removes locate match highlighting.
	ClearLocateHighlight()
}

// Selector exposes the host mutations the operation executor needs beyond
// plain text edits.
type Selector interface {
	// EnterInsert switches the host to insert mode at the cursor.
	EnterInsert()

	// SetSelection puts the host in visual-selection state over r.
	SetSelection(doc Document, r Range)

	// SetHighlight draws the transient preview highlight over r,
	// replacing any previous one.
	SetHighlight(doc Document, r Range)

	// ClearHighlight removes the preview highlight.
	ClearHighlight()
}

// Notifier delivers passive, non-blocking messages to the user.
type Notifier interface {
	Notify(msg string)
}

// Panel is an open side panel listing rendered instances.
type Panel interface {
	// SetLines replaces the panel content.
	SetLines(lines []string)

	CursorLine() int
	SetCursorLine(n int)

	LineCount() int

	Close()
}

// PanelOpener creates side panels for scoped selection sessions.
type PanelOpener interface {
	OpenPanel(lines []string, width int) (Panel, error)
}

// Context bundles the host collaborators the engine operates through. All
// fields are required unless noted.
type Context struct {
	Editor    Editor
	Search    Searcher
	View      Viewport
	Registers Registers
	Locate    Locator
	Select    Selector
	Notify    Notifier
	Panels    PanelOpener
}
