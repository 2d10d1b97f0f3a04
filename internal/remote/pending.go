// Package remote implements the deferred-operation state machine: it
// couples a queued (operation, kind) intent to the user's locating
// pattern, resolves the pattern locally or via a cross-document sweep, and
// hands the resolved position to the operation executor.
package remote

import (
	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/operator"
	"github.com/Piotr1215/beam/internal/textobj"
)

// State is the machine's lifecycle state.
type State int

const (
	// StateIdle means no operation is queued.
	StateIdle State = iota

	// StatePending means an intent is queued and the locate prompt is
	// waiting for the user's pattern.
	StatePending

	// StateResolving means a confirmed pattern is being searched.
	StateResolving
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// PendingOperation is a queued intent awaiting pattern resolution. It
// snapshots everything the abandon path must roll back.
type PendingOperation struct {
	// Op is the queued operation.
	Op operator.Operation

	// KindID is the text-object kind identifier.
	KindID rune

	// Variant is the inner/around flag.
	Variant textobj.Variant

	// Lines marks the line-granular variant: the operation applies to the
	// whole line the pattern resolves to, without a span lookup. KindID is
	// unset when Lines is true.
	Lines bool

	// Return is the view (document + cursor) the operation started from.
	// Operations that return home restore it even after a remote hit.
	Return host.ViewState

	savedRegister host.Register
	savedPattern  string
	cancelLocate  func()
}
