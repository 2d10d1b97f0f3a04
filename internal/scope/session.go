// Package scope implements the scoped selection session: it enumerates
// every instance of a text-object kind in the active document, renders
// them into a side panel for browsing with live preview, and executes the
// queued operation on the chosen instance.
package scope

import (
	"github.com/google/uuid"

	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/operator"
	"github.com/Piotr1215/beam/internal/textobj"
)

// Config controls panel geometry.
type Config struct {
	// MinWidth and MaxWidth bound the panel width.
	MinWidth int
	MaxWidth int

	// Padding is added to the longest rendered line before clamping.
	Padding int
}

// DefaultConfig returns the default panel geometry.
func DefaultConfig() Config {
	return Config{MinWidth: 30, MaxWidth: 80, Padding: 2}
}

// Session is one scoped selection interaction. At most one session is
// active at a time; the owning controller replaces any prior session
// before opening a new one.
type Session struct {
	id     string
	ctx    *host.Context
	exec   *operator.Executor
	logger *log.Logger

	op      operator.Operation
	kind    textobj.Kind
	variant textobj.Variant

	sourceDoc  host.Document
	sourceView host.ViewState

	instances []textobj.Instance
	lineIndex map[int]int
	panel     host.Panel
	open      bool
}

// Open discovers all instances of kind in the active document and opens
// the selection panel. It returns textobj.ErrNoInstances (and creates no
// session) when discovery comes up empty.
func Open(ctx *host.Context, exec *operator.Executor, cfg Config, logger *log.Logger, op operator.Operation, kind textobj.Kind, variant textobj.Variant) (*Session, error) {
	if logger == nil {
		logger = log.Null
	}
	doc := ctx.Editor.ActiveDocument()
	if doc == nil {
		return nil, textobj.ErrNoInstances
	}

	instances := kind.Find(textobj.FindContext{
		Doc:       doc,
		Search:    ctx.Search,
		Registers: ctx.Registers,
	})
	if len(instances) == 0 {
		return nil, textobj.ErrNoInstances
	}

	id := uuid.NewString()
	s := &Session{
		id:         id,
		ctx:        ctx,
		exec:       exec,
		logger:     logger.WithComponent("scope").WithField("session", id),
		op:         op,
		kind:       kind,
		variant:    variant,
		sourceDoc:  doc,
		sourceView: ctx.View.SaveView(),
		instances:  instances,
	}

	lines, index := renderInstances(kind, s.instances)
	s.lineIndex = index

	width := panelWidth(cfg, lines)
	panel, err := ctx.Panels.OpenPanel(lines, width)
	if err != nil {
		return nil, err
	}
	s.panel = panel
	s.open = true

	if idx := initialInstance(s.instances, s.sourceView.Cursor.Line); idx >= 0 {
		panel.SetCursorLine(s.instances[idx].DisplayStart)
	}
	s.updatePreview()
	s.logger.Debug("opened with %d instances of %q", len(instances), string(kind.ID()))
	return s, nil
}

// ID returns the session's identifier, used for log correlation.
func (s *Session) ID() string { return s.id }

// IsOpen reports whether the session is still active.
func (s *Session) IsOpen() bool { return s.open }

// Instances returns the discovered instance list.
func (s *Session) Instances() []textobj.Instance { return s.instances }

// MoveTo moves the panel cursor to the given panel line and refreshes the
// live preview.
func (s *Session) MoveTo(panelLine int) {
	if !s.open {
		return
	}
	s.panel.SetCursorLine(panelLine)
	s.updatePreview()
}

// Next moves to the next instance, wrapping past the end of the list.
func (s *Session) Next() { s.step(1) }

// Prev moves to the previous instance, wrapping past the start.
func (s *Session) Prev() { s.step(-1) }

func (s *Session) step(delta int) {
	if !s.open {
		return
	}
	idx, ok := s.lineIndex[s.panel.CursorLine()]
	if !ok {
		return
	}
	idx = (idx + delta + len(s.instances)) % len(s.instances)
	s.panel.SetCursorLine(s.instances[idx].DisplayStart)
	s.updatePreview()
}

// updatePreview jumps the source view to the instance under the panel
// cursor, centers it, and redraws the highlight. A missing index entry is
// a stale lookup and no-ops.
func (s *Session) updatePreview() {
	idx, ok := s.lineIndex[s.panel.CursorLine()]
	if !ok {
		return
	}
	inst := s.instances[idx]
	s.ctx.View.SetCursor(inst.Start)
	s.ctx.View.CenterOn(inst.Start.Line)
	s.ctx.Select.SetHighlight(s.sourceDoc, host.Range{Start: inst.Start, End: inst.End})
}

// Confirm executes the session's operation on the instance under the
// panel cursor. All session state is torn down before execution so the
// operation's side effects land in a clean editor; a stale cursor line is
// a no-op. Confirming a locate jump made inside the panel goes through
// here too: whatever instance the cursor landed on is the selection.
func (s *Session) Confirm() operator.Result {
	if !s.open {
		return operator.NoOp("no active session")
	}
	idx, ok := s.lineIndex[s.panel.CursorLine()]
	if !ok {
		return operator.NoOp("no instance on this line")
	}
	inst := s.instances[idx]
	s.teardown()

	s.logger.Debug("confirmed instance %d at %d:%d", idx, inst.Start.Line, inst.Start.Col)
	return s.exec.Execute(s.op, s.kind, s.variant, s.sourceDoc, inst.Start, s.sourceView)
}

// Cancel tears the session down and returns focus to the source document.
// Only focus is restored; the source cursor stays where previewing left
// it, since no mutation occurred.
func (s *Session) Cancel() {
	if !s.open {
		return
	}
	s.teardown()
	_ = s.ctx.Editor.SwitchTo(s.sourceDoc)
	s.logger.Debug("cancelled")
}

func (s *Session) teardown() {
	s.open = false
	s.ctx.Select.ClearHighlight()
	s.panel.Close()
	s.lineIndex = nil
}
