package editor

import "testing"

// Locate Prompt Tests

func TestLocateConfirmAppendsSuffix(t *testing.T) {
	e := New()
	e.Open("t", "", []string{`"a"`})

	var got string
	e.OnLocateConfirmed(func(pattern string) { got = pattern })
	e.BeginLocate(`"`, `"`)
	e.ConfirmLocate(`"abc`)

	if got != `"abc"` {
		t.Errorf("expected suffix appended, got %q", got)
	}
	if e.LastPattern() != `"abc"` {
		t.Errorf("confirmation should set the pattern register, got %q", e.LastPattern())
	}
}

func TestLocateEmptyConfirmSkipsSuffix(t *testing.T) {
	e := New()

	var got string
	called := false
	e.OnLocateConfirmed(func(pattern string) { got, called = pattern, true })
	e.BeginLocate(`(`, `)`)
	e.ConfirmLocate("")

	if !called {
		t.Fatal("handler should run on empty confirmation")
	}
	if got != "" {
		t.Errorf("empty confirmation must stay empty, got %q", got)
	}
	if e.LastPattern() != "" {
		t.Error("empty confirmation must not touch the pattern register")
	}
}

func TestLocateCancelConfirmsEmpty(t *testing.T) {
	e := New()

	var got string
	e.OnLocateConfirmed(func(pattern string) { got = pattern + "?" })
	e.BeginLocate("", "")
	e.CancelLocate()

	if got != "?" {
		t.Error("cancel should deliver an empty pattern")
	}
	if e.LocateOpen() {
		t.Error("prompt should be closed after cancel")
	}
}

func TestLocateHandlerReplacedByNewRegistration(t *testing.T) {
	e := New()

	first, second := false, false
	e.OnLocateConfirmed(func(string) { first = true })
	e.OnLocateConfirmed(func(string) { second = true })
	e.ConfirmLocate("x")

	if first {
		t.Error("replaced handler should not run")
	}
	if !second {
		t.Error("current handler should run")
	}
}

func TestLocateCancelFuncOnlyRemovesOwnHandler(t *testing.T) {
	e := New()

	cancel := e.OnLocateConfirmed(func(string) {})
	ran := false
	e.OnLocateConfirmed(func(string) { ran = true })
	cancel()
	e.ConfirmLocate("x")

	if !ran {
		t.Error("stale cancel must not remove the newer handler")
	}
}

func TestLocateSeed(t *testing.T) {
	e := New()
	e.BeginLocate("[", "]")
	if !e.LocateOpen() {
		t.Fatal("prompt should be open")
	}
	if e.LocateSeed() != "[" {
		t.Errorf("expected seed [, got %q", e.LocateSeed())
	}
}
