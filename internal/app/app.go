// Package app wires the beam engine together and exposes the entry
// points the host's command glue calls: one per operation kind, one to
// resolve a confirmed locating pattern, and one to cancel any in-flight
// state.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/Piotr1215/beam/internal/config"
	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/operator"
	"github.com/Piotr1215/beam/internal/plugin/luakind"
	"github.com/Piotr1215/beam/internal/remote"
	"github.com/Piotr1215/beam/internal/scope"
	"github.com/Piotr1215/beam/internal/textobj"
)

// Outcome tells the caller what to do after issuing an intent.
type Outcome int

const (
	// OutcomeHandled means the engine took over: a scoped session opened,
	// or there is nothing further to do.
	OutcomeHandled Outcome = iota

	// OutcomeEnterLocate means the caller should let the user type a
	// locating pattern; the engine resolves it through the host's
	// locate-confirmed handler.
	OutcomeEnterLocate
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHandled:
		return "handled"
	case OutcomeEnterLocate:
		return "enter-locate"
	default:
		return "unknown"
	}
}

// App is the controller owning the engine's single-slot state: one
// deferred-operation machine and at most one scoped selection session.
type App struct {
	cfg      config.Config
	ctx      *host.Context
	logger   *log.Logger
	registry *textobj.Registry
	exec     *operator.Executor
	machine  *remote.Machine
	session  *scope.Session
	lua      *luakind.Loader
}

// New builds the engine over a host context.
func New(ctx *host.Context, cfg config.Config, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(log.Config{Level: log.ParseLevel(cfg.Log.Level)})
	}

	a := &App{
		ctx:    ctx,
		logger: logger,
		exec:   operator.New(ctx, logger),
	}
	a.registry = textobj.NewRegistry()
	a.machine = remote.New(ctx, a.registry, a.exec, remote.Config{}, logger)
	a.applyConfig(cfg)

	if len(cfg.Custom.Scripts) > 0 {
		a.lua = luakind.NewLoader(logger)
		for _, script := range cfg.Custom.Scripts {
			if err := a.lua.LoadFile(script, a.registry); err != nil {
				logger.Warn("custom kind script %s: %v", script, err)
			}
		}
	}
	return a, nil
}

// ApplyConfig swaps in a new configuration. Kind scoping, cross-document
// search, and resolution behavior take effect immediately; custom kind
// scripts are not re-evaluated.
func (a *App) ApplyConfig(cfg config.Config) {
	a.applyConfig(cfg)
	a.logger.Info("configuration applied")
}

func (a *App) applyConfig(cfg config.Config) {
	a.cfg = cfg
	for _, id := range a.registry.Kinds() {
		a.registry.SetScoped(id, false)
	}
	for _, id := range cfg.ScopedKinds() {
		a.registry.SetScoped(id, true)
	}
	a.registry.SetCrossDocument(cfg.Search.CrossDocument)
	a.machine.SetConfig(remote.Config{
		CrossDocument:       cfg.Search.CrossDocument,
		VisibleOnly:         cfg.Search.VisibleOnly,
		SmartHighlight:      cfg.Search.SmartHighlight,
		ClearHighlight:      cfg.Search.ClearHighlight,
		ClearHighlightDelay: time.Duration(cfg.Search.ClearHighlightDelayMS) * time.Millisecond,
	})
}

func (a *App) scopeConfig() scope.Config {
	return scope.Config{
		MinWidth: a.cfg.Scope.MinWidth,
		MaxWidth: a.cfg.Scope.MaxWidth,
		Padding:  a.cfg.Scope.Padding,
	}
}

// Registry exposes the kind registry.
func (a *App) Registry() *textobj.Registry { return a.registry }

// Machine exposes the deferred-operation state machine.
func (a *App) Machine() *remote.Machine { return a.machine }

// Session returns the active scoped selection session, if any.
func (a *App) Session() *scope.Session {
	if a.session != nil && a.session.IsOpen() {
		return a.session
	}
	return nil
}

// Yank queues or executes a copy of the given kind.
func (a *App) Yank(kindID rune, v textobj.Variant) (Outcome, error) {
	return a.operate(operator.OpYank, kindID, v)
}

// Delete queues or executes a deletion of the given kind.
func (a *App) Delete(kindID rune, v textobj.Variant) (Outcome, error) {
	return a.operate(operator.OpDelete, kindID, v)
}

// Change queues or executes a change of the given kind.
func (a *App) Change(kindID rune, v textobj.Variant) (Outcome, error) {
	return a.operate(operator.OpChange, kindID, v)
}

// Select queues or executes a visual selection of the given kind.
func (a *App) Select(kindID rune, v textobj.Variant) (Outcome, error) {
	return a.operate(operator.OpSelect, kindID, v)
}

// operate routes an intent: scoped kinds open a selection session, every
// other kind goes through the deferred-operation machine.
func (a *App) operate(op operator.Operation, kindID rune, v textobj.Variant) (Outcome, error) {
	kind, ok := a.registry.Kind(kindID)
	if !ok {
		return OutcomeHandled, fmt.Errorf("%w: %q", textobj.ErrUnknownKind, string(kindID))
	}

	if a.registry.IsScoped(kindID) {
		if existing := a.Session(); existing != nil {
			existing.Cancel()
		}
		s, err := scope.Open(a.ctx, a.exec, a.scopeConfig(), a.logger, op, kind, v)
		if err != nil {
			if errors.Is(err, textobj.ErrNoInstances) {
				a.ctx.Notify.Notify(fmt.Sprintf("no %s instances found", kind.Name()))
				return OutcomeHandled, nil
			}
			return OutcomeHandled, err
		}
		a.session = s
		return OutcomeHandled, nil
	}

	if err := a.machine.Start(op, kindID, v); err != nil {
		return OutcomeHandled, err
	}
	return OutcomeEnterLocate, nil
}

// YankLine, DeleteLine, ChangeLine, and SelectLine queue the
// line-granular variants: the operation applies to the whole line the
// pattern resolves to, without a span lookup.
func (a *App) YankLine() (Outcome, error)   { return a.operateLine(operator.OpYank) }
func (a *App) DeleteLine() (Outcome, error) { return a.operateLine(operator.OpDelete) }
func (a *App) ChangeLine() (Outcome, error) { return a.operateLine(operator.OpChange) }
func (a *App) SelectLine() (Outcome, error) { return a.operateLine(operator.OpSelect) }

func (a *App) operateLine(op operator.Operation) (Outcome, error) {
	if err := a.machine.StartLines(op); err != nil {
		return OutcomeHandled, err
	}
	return OutcomeEnterLocate, nil
}

// ResolveLocate feeds a confirmed locating pattern to the machine. Hosts
// whose locate prompt is wired through host.Locator never call this; it
// exists for glue that resolves patterns itself.
func (a *App) ResolveLocate(pattern string) {
	a.machine.Resolve(pattern)
}

// CapturePartial records the locate pattern as it is typed.
func (a *App) CapturePartial(typed string) {
	a.machine.CapturePartial(typed)
}

// SessionNext moves the active session to the next instance.
func (a *App) SessionNext() {
	if s := a.Session(); s != nil {
		s.Next()
	}
}

// SessionPrev moves the active session to the previous instance.
func (a *App) SessionPrev() {
	if s := a.Session(); s != nil {
		s.Prev()
	}
}

// SessionMoveTo moves the active session's panel cursor.
func (a *App) SessionMoveTo(panelLine int) {
	if s := a.Session(); s != nil {
		s.MoveTo(panelLine)
	}
}

// SessionConfirm executes the active session's operation on the instance
// under the panel cursor.
func (a *App) SessionConfirm() operator.Result {
	s := a.Session()
	if s == nil {
		return operator.NoOp("no active session")
	}
	res := s.Confirm()
	a.session = nil
	if res.Status == operator.StatusError {
		a.ctx.Notify.Notify("operation failed: " + res.Err.Error())
	}
	return res
}

// SessionCancel cancels the active session.
func (a *App) SessionCancel() {
	if s := a.Session(); s != nil {
		s.Cancel()
	}
	a.session = nil
}

// CancelAll abandons any pending operation and closes any session.
func (a *App) CancelAll() {
	a.machine.Cancel()
	a.SessionCancel()
}

// Shutdown releases engine resources.
func (a *App) Shutdown() {
	a.CancelAll()
	if a.lua != nil {
		a.lua.Close()
	}
}
