package editor

import "github.com/Piotr1215/beam/internal/host"

// BeginLocate opens the locate prompt. seed pre-fills the prompt and
// suffix is appended to a non-empty confirmation, so a smart-highlighted
// delimiter search always ends up balanced.
func (e *Editor) BeginLocate(seed, suffix string) {
	e.locate.open = true
	e.locate.seed = seed
	e.locate.suffix = suffix
}

// LocateOpen reports whether the locate prompt is showing.
func (e *Editor) LocateOpen() bool { return e.locate.open }

// LocateSeed returns the prompt's pre-filled text.
func (e *Editor) LocateSeed() string { return e.locate.seed }

// OnLocateConfirmed installs the confirmation handler. Only one handler is
// active at a time; installing a new one replaces the previous. The
// returned cancel func unregisters the handler if it is still installed.
func (e *Editor) OnLocateConfirmed(fn func(pattern string)) (cancel func()) {
	e.locate.token++
	token := e.locate.token
	e.locate.handler = fn
	return func() {
		if e.locate.token == token {
			e.locate.handler = nil
		}
	}
}

// ConfirmLocate simulates the user confirming the prompt with typed text.
// A non-empty confirmation gets the configured suffix appended and becomes
// the new last search pattern before the handler runs.
func (e *Editor) ConfirmLocate(typed string) {
	e.locate.open = false
	pattern := typed
	if pattern != "" && e.locate.suffix != "" {
		pattern += e.locate.suffix
	}
	if pattern != "" {
		e.lastPattern = pattern
	}
	handler := e.locate.handler
	if handler != nil {
		handler(pattern)
	}
}

// CancelLocate simulates the user dismissing the prompt, which confirms an
// empty pattern.
func (e *Editor) CancelLocate() {
	e.ConfirmLocate("")
}

// ClearLocateHighlight removes locate match highlighting. The in-memory
// editor tracks it as a flag for tests.
func (e *Editor) ClearLocateHighlight() { e.locateHL = false }

// SetLocateHighlight marks locate highlighting active.
func (e *Editor) SetLocateHighlight() { e.locateHL = true }

// LocateHighlighted reports whether locate highlighting is active.
func (e *Editor) LocateHighlighted() bool { return e.locateHL }

// Context bundles the editor into a host.Context for the engine.
func (e *Editor) Context() *host.Context {
	return &host.Context{
		Editor:    e,
		Search:    e,
		View:      e,
		Registers: e,
		Locate:    e,
		Select:    e,
		Notify:    e,
		Panels:    e,
	}
}
