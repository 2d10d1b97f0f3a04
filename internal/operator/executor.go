package operator

import (
	"fmt"
	"strings"

	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/textobj"
)

// Executor applies operations to resolved spans through the host context.
type Executor struct {
	ctx    *host.Context
	logger *log.Logger
}

// New creates an executor over the given host context.
func New(ctx *host.Context, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.Null
	}
	return &Executor{ctx: ctx, logger: logger.WithComponent("executor")}
}

// Execute resolves the kind's span at pos in doc and applies op. home is
// the view to restore for operations that return home; it is ignored for
// change and select. A span that cannot be resolved results in a no-op
// with no partial mutation.
func (e *Executor) Execute(op Operation, kind textobj.Kind, variant textobj.Variant, doc host.Document, pos host.Position, home host.ViewState) Result {
	r, ok := kind.SelectAt(doc, pos, variant)
	if !ok {
		e.logger.Debug("no span for kind %q at %d:%d", string(kind.ID()), pos.Line, pos.Col)
		return NoOp("no span to operate on")
	}
	// Guard against inverted spans from custom kinds.
	if r.End.Before(r.Start) {
		return Errorf("%w from kind %q at %d:%d", textobj.ErrMalformedSpan, string(kind.ID()), pos.Line, pos.Col)
	}

	if m, isMotion := kind.(textobj.MotionStyle); isMotion && m.MotionStyle() {
		// Single-shot motion kinds resolve an inclusive end column.
		r.End.Col++
	}

	linewise := kind.RenderMode() == textobj.RenderLinewise
	if linewise {
		r = wholeLines(doc, r)
	}
	return e.run(op, doc, r, linewise, home)
}

// ExecuteLines applies op to whole lines from through to of doc without a
// span lookup, the line-granular variant of each operation.
func (e *Executor) ExecuteLines(op Operation, doc host.Document, from, to int, home host.ViewState) Result {
	if from < 1 || to > doc.LineCount() || from > to {
		return NoOp("no lines to operate on")
	}
	r := host.Range{
		Start: host.Position{Line: from, Col: 0},
		End:   host.Position{Line: to, Col: len(doc.Line(to))},
	}
	return e.run(op, doc, r, true, home)
}

// run applies op to the already resolved range.
func (e *Executor) run(op Operation, doc host.Document, r host.Range, linewise bool, home host.ViewState) Result {
	e.logger.Debug("%s %d:%d..%d:%d linewise=%v", op, r.Start.Line, r.Start.Col, r.End.Line, r.End.Col, linewise)

	switch op {
	case OpYank:
		e.ctx.Registers.SetRegister(host.Register{
			Text:     e.spanText(doc, r, linewise),
			Linewise: linewise,
		})
		e.ctx.View.RestoreView(home)
		return OK()

	case OpDelete:
		if err := e.removeSpan(doc, r, linewise); err != nil {
			return Errorf("delete: %w", err)
		}
		e.ctx.View.RestoreView(home)
		return OK()

	case OpChange:
		if linewise {
			// Keep one empty line open for insertion.
			if err := doc.SetLines(r.Start.Line, r.End.Line, []string{""}); err != nil {
				return Errorf("change: %w", err)
			}
		} else if err := doc.Replace(r, ""); err != nil {
			return Errorf("change: %w", err)
		}
		e.ctx.View.SetCursor(host.Position{Line: r.Start.Line, Col: r.Start.Col})
		e.ctx.Select.EnterInsert()
		return OK()

	case OpSelect:
		e.ctx.View.SetCursor(r.Start)
		e.ctx.Select.SetSelection(doc, r)
		return OK()

	default:
		return Errorf("unknown operation: %v", int(op))
	}
}

// spanText returns the register content for the range; linewise spans
// carry a trailing newline.
func (e *Executor) spanText(doc host.Document, r host.Range, linewise bool) string {
	if linewise {
		return strings.Join(doc.Lines(r.Start.Line, r.End.Line), "\n") + "\n"
	}
	return doc.Text(r)
}

// removeSpan deletes the range; linewise spans remove whole lines.
func (e *Executor) removeSpan(doc host.Document, r host.Range, linewise bool) error {
	if linewise {
		if err := doc.SetLines(r.Start.Line, r.End.Line, nil); err != nil {
			return fmt.Errorf("removing lines %d-%d: %w", r.Start.Line, r.End.Line, err)
		}
		return nil
	}
	if err := doc.Replace(r, ""); err != nil {
		return fmt.Errorf("removing span: %w", err)
	}
	return nil
}

// wholeLines expands r to full line bounds.
func wholeLines(doc host.Document, r host.Range) host.Range {
	return host.Range{
		Start: host.Position{Line: r.Start.Line, Col: 0},
		End:   host.Position{Line: r.End.Line, Col: len(doc.Line(r.End.Line))},
	}
}
