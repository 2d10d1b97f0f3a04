package host

import (
	"errors"
	"testing"
)

// Snapshot Helper Tests

type fakeRegisters struct {
	reg Register
}

func (f *fakeRegisters) Register() Register       { return f.reg }
func (f *fakeRegisters) SetRegister(reg Register) { f.reg = reg }

type fakeSearcher struct {
	pattern string
}

func (f *fakeSearcher) SearchIn(Document, string, Position, SearchFlags) (Position, bool) {
	return Position{}, false
}
func (f *fakeSearcher) LastPattern() string           { return f.pattern }
func (f *fakeSearcher) SetLastPattern(pattern string) { f.pattern = pattern }

func TestWithRegisterSnapshot(t *testing.T) {
	regs := &fakeRegisters{reg: Register{Text: "user"}}
	err := WithRegisterSnapshot(regs, func() error {
		regs.SetRegister(Register{Text: "probe"})
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if regs.Register().Text != "user" {
		t.Errorf("register not restored, got %q", regs.Register().Text)
	}
}

func TestWithRegisterSnapshotRestoresOnError(t *testing.T) {
	regs := &fakeRegisters{reg: Register{Text: "user"}}
	wantErr := errors.New("boom")
	err := WithRegisterSnapshot(regs, func() error {
		regs.SetRegister(Register{Text: "probe"})
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("error not propagated, got %v", err)
	}
	if regs.Register().Text != "user" {
		t.Error("register not restored on error")
	}
}

func TestWithPatternSnapshot(t *testing.T) {
	s := &fakeSearcher{pattern: "user-pattern"}
	_ = WithPatternSnapshot(s, func() error {
		s.SetLastPattern("probe")
		return nil
	})
	if s.LastPattern() != "user-pattern" {
		t.Errorf("pattern not restored, got %q", s.LastPattern())
	}
}

// Position and Range Tests

func TestPositionBefore(t *testing.T) {
	a := Position{Line: 1, Col: 5}
	b := Position{Line: 2, Col: 0}
	c := Position{Line: 1, Col: 7}

	if !a.Before(b) || !a.Before(c) {
		t.Error("expected a before b and c")
	}
	if b.Before(a) || a.Before(a) {
		t.Error("Before should be strict")
	}
}

func TestRangeIsEmpty(t *testing.T) {
	p := Position{Line: 1, Col: 3}
	if !(Range{Start: p, End: p}).IsEmpty() {
		t.Error("equal endpoints should be empty")
	}
	if (Range{Start: p, End: Position{Line: 1, Col: 4}}).IsEmpty() {
		t.Error("distinct endpoints should not be empty")
	}
}

func TestRangeLineCount(t *testing.T) {
	r := Range{Start: Position{Line: 2}, End: Position{Line: 5}}
	if r.LineCount() != 4 {
		t.Errorf("expected 4, got %d", r.LineCount())
	}
}
