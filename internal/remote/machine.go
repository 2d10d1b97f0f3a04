package remote

import (
	"time"

	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/operator"
	"github.com/Piotr1215/beam/internal/textobj"
)

// Config controls resolution behavior.
type Config struct {
	// CrossDocument enables the document-by-document fallback sweep on a
	// local miss.
	CrossDocument bool

	// VisibleOnly restricts the sweep to documents shown in a window.
	VisibleOnly bool

	// SmartHighlight pre-seeds the locate prompt with the kind's opening
	// delimiter and appends the closing delimiter on confirmation.
	SmartHighlight bool

	// ClearHighlight clears locate highlighting after an operation.
	ClearHighlight bool

	// ClearHighlightDelay is how long highlighting lingers before being
	// cleared.
	ClearHighlightDelay time.Duration
}

// Machine is the deferred-operation state machine. It owns the single
// pending-operation slot: starting a new operation while one is pending
// tears the old one down rather than queueing.
type Machine struct {
	ctx      *host.Context
	registry *textobj.Registry
	exec     *operator.Executor
	cfg      Config
	logger   *log.Logger

	state   State
	pending *PendingOperation
	typed   string

	// schedule defers a func; replaced in tests to run synchronously.
	schedule func(d time.Duration, fn func())
}

// New creates a machine over the given host context.
func New(ctx *host.Context, registry *textobj.Registry, exec *operator.Executor, cfg Config, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Null
	}
	return &Machine{
		ctx:      ctx,
		registry: registry,
		exec:     exec,
		cfg:      cfg,
		logger:   logger.WithComponent("remote"),
		schedule: func(d time.Duration, fn func()) { time.AfterFunc(d, fn) },
	}
}

// SetConfig replaces the machine's resolution configuration. It applies
// to operations started afterwards; an in-flight operation keeps the
// configuration it started under.
func (m *Machine) SetConfig(cfg Config) {
	m.cfg = cfg
}

// SetScheduler replaces the delayed-call scheduler. Tests use this to run
// the highlight-clear step synchronously.
func (m *Machine) SetScheduler(fn func(d time.Duration, f func())) {
	m.schedule = fn
}

// State returns the machine's current state.
func (m *Machine) State() State { return m.state }

// Pending returns the queued intent, if any.
func (m *Machine) Pending() *PendingOperation { return m.pending }

// Start queues an (operation, kind) intent and opens the locate prompt.
// Any previously pending intent is abandoned first; the pending slot is
// replaced, never stacked.
func (m *Machine) Start(op operator.Operation, kindID rune, variant textobj.Variant) error {
	kind, ok := m.registry.Kind(kindID)
	if !ok {
		return textobj.ErrUnknownKind
	}

	seed, suffix := "", ""
	if m.cfg.SmartHighlight {
		if d, isDelim := kind.(textobj.Delimited); isDelim {
			seed, suffix = d.OpenDelimiter(), d.CloseDelimiter()
		}
	}
	m.queue(&PendingOperation{Op: op, KindID: kindID, Variant: variant}, seed, suffix)
	m.logger.Debug("pending %s %s %s", op, variant, string(kindID))
	return nil
}

// StartLines queues the line-granular variant of op: the pattern resolves
// to a position and the operation applies to that whole line.
func (m *Machine) StartLines(op operator.Operation) error {
	m.queue(&PendingOperation{Op: op, Lines: true}, "", "")
	m.logger.Debug("pending %s line", op)
	return nil
}

func (m *Machine) queue(p *PendingOperation, seed, suffix string) {
	if m.pending != nil {
		m.logger.Debug("replacing pending %s operation", m.pending.Op)
		m.rollback(m.pending)
		m.clear()
	}

	p.Return = m.ctx.View.SaveView()
	p.savedRegister = m.ctx.Registers.Register()
	p.savedPattern = m.ctx.Search.LastPattern()
	p.cancelLocate = m.ctx.Locate.OnLocateConfirmed(m.Resolve)
	m.pending = p
	m.state = StatePending
	m.typed = ""

	m.ctx.Locate.BeginLocate(seed, suffix)
}

// CapturePartial records the pattern as it is typed. Hosts whose
// confirmation event races their search-history registration call this on
// every prompt change so the machine never observes a stale pattern on
// first use; the memory host delivers the full pattern on confirm and
// never needs it.
func (m *Machine) CapturePartial(typed string) {
	if m.state == StatePending {
		m.typed = typed
	}
}

// LastTyped returns the most recent partial pattern.
func (m *Machine) LastTyped() string { return m.typed }

// Resolve consumes the confirmed locating pattern. An empty confirmation
// abandons the operation. Called by the host's locate-confirmed handler.
func (m *Machine) Resolve(pattern string) {
	if m.state != StatePending || m.pending == nil {
		return
	}
	p := m.pending
	m.state = StateResolving
	p.cancelLocate()

	if pattern == "" {
		m.logger.Debug("empty confirmation, abandoning")
		m.abandon(p, "")
		return
	}

	doc := m.ctx.Editor.ActiveDocument()
	if doc == nil {
		m.abandon(p, "no active document")
		return
	}

	// Local document first, forward from the cursor including the
	// character under it.
	hit, found := m.ctx.Search.SearchIn(doc, pattern, m.ctx.View.Cursor(), host.SearchFlags{
		IncludeCurrent: true,
	})
	if found {
		m.execute(p, doc, hit)
		return
	}

	if !m.cfg.CrossDocument {
		m.abandon(p, "pattern not found: "+pattern)
		return
	}

	sweepDoc, sweepHit, swept := m.sweep(p, pattern)
	if !swept {
		m.abandon(p, "pattern not found in any document: "+pattern)
		return
	}
	m.execute(p, sweepDoc, sweepHit)
}

// sweep probes other open documents in the host's stable order, skipping
// the origin document and, when configured, hidden documents. Each probe
// provisionally switches context and is reverted immediately on a miss;
// the first hit wins and the switch stays in place for execution.
func (m *Machine) sweep(p *PendingOperation, pattern string) (host.Document, host.Position, bool) {
	for _, doc := range m.ctx.Editor.Documents() {
		if doc.ID() == p.Return.DocID {
			continue
		}
		if m.cfg.VisibleOnly && !m.ctx.Editor.IsVisible(doc) {
			continue
		}

		revert, err := m.enterDocument(p, doc)
		if err != nil {
			m.logger.Warn("sweep: cannot enter %s: %v", doc.Name(), err)
			continue
		}

		// From the start of the document, first match wins.
		hit, found := m.ctx.Search.SearchIn(doc, pattern, host.Position{Line: 1, Col: 0}, host.SearchFlags{
			IncludeCurrent: true,
			NoWrap:         true,
		})
		if found {
			m.logger.Debug("sweep hit in %s at %d:%d", doc.Name(), hit.Line, hit.Col)
			return doc, hit, true
		}
		revert()
	}
	return nil, host.Position{}, false
}

// enterDocument switches context to doc for a probe. Change and select
// relocate the user, so they open a secondary view to leave the visible
// document undisturbed; yank and delete return home anyway and simply
// switch buffers.
func (m *Machine) enterDocument(p *PendingOperation, doc host.Document) (func(), error) {
	if p.Op == operator.OpChange || p.Op == operator.OpSelect {
		return m.ctx.Editor.OpenPreview(doc)
	}
	saved := m.ctx.View.SaveView()
	if err := m.ctx.Editor.SwitchTo(doc); err != nil {
		return nil, err
	}
	return func() { m.ctx.View.RestoreView(saved) }, nil
}

// execute runs the operation at the resolved position and finalizes.
func (m *Machine) execute(p *PendingOperation, doc host.Document, pos host.Position) {
	m.ctx.View.SetCursor(pos)

	var res operator.Result
	if p.Lines {
		res = m.exec.ExecuteLines(p.Op, doc, pos.Line, pos.Line, p.Return)
	} else {
		kind, ok := m.registry.Kind(p.KindID)
		if !ok {
			m.abandon(p, "unknown kind")
			return
		}
		res = m.exec.Execute(p.Op, kind, p.Variant, doc, pos, p.Return)
	}
	switch res.Status {
	case operator.StatusOK:
		m.finalize(p)
	case operator.StatusNoOp:
		m.abandon(p, res.Message)
	case operator.StatusError:
		m.logger.Error("execute failed: %v", res.Err)
		m.abandon(p, "operation failed: "+res.Err.Error())
	}
}

// finalize completes a successful operation: the executor has already
// applied the return-home policy; what remains is locate-highlight
// cleanup with the user's search history restored first.
func (m *Machine) finalize(p *PendingOperation) {
	if m.cfg.ClearHighlight {
		m.ctx.Search.SetLastPattern(p.savedPattern)
		m.schedule(m.cfg.ClearHighlightDelay, func() {
			m.ctx.Locate.ClearLocateHighlight()
		})
	}
	m.clear()
	m.logger.Debug("executed %s %s", p.Op, string(p.KindID))
}

// Cancel abandons any in-flight pending or resolving operation.
func (m *Machine) Cancel() {
	if m.pending == nil {
		return
	}
	p := m.pending
	p.cancelLocate()
	m.abandon(p, "")
}

// abandon rolls the host back to its pre-operation state: view, register,
// and search history, then reports msg as a passive notification when
// non-empty.
func (m *Machine) abandon(p *PendingOperation, msg string) {
	m.rollback(p)
	m.clear()
	if msg != "" {
		m.ctx.Notify.Notify(msg)
	}
}

func (m *Machine) rollback(p *PendingOperation) {
	p.cancelLocate()
	m.ctx.View.RestoreView(p.Return)
	m.ctx.Registers.SetRegister(p.savedRegister)
	m.ctx.Search.SetLastPattern(p.savedPattern)
	m.ctx.Locate.ClearLocateHighlight()
}

func (m *Machine) clear() {
	m.pending = nil
	m.state = StateIdle
	m.typed = ""
}
