package editor

import (
	"testing"

	"github.com/Piotr1215/beam/internal/host"
)

// Search Tests

func TestSearchForwardFromCursor(t *testing.T) {
	e := New()
	doc := e.Open("t", "", []string{"foo bar", "bar baz"})

	pos, ok := e.SearchIn(doc, "bar", host.Position{Line: 1, Col: 0}, host.SearchFlags{})
	if !ok {
		t.Fatal("expected a match")
	}
	if pos.Line != 1 || pos.Col != 4 {
		t.Errorf("expected 1:4, got %d:%d", pos.Line, pos.Col)
	}
}

func TestSearchExcludesCurrentByDefault(t *testing.T) {
	e := New()
	doc := e.Open("t", "", []string{"bar bar"})

	pos, ok := e.SearchIn(doc, "bar", host.Position{Line: 1, Col: 0}, host.SearchFlags{})
	if !ok {
		t.Fatal("expected a match")
	}
	if pos.Col != 4 {
		t.Errorf("search from a match should skip it, got col %d", pos.Col)
	}
}

func TestSearchIncludeCurrent(t *testing.T) {
	e := New()
	doc := e.Open("t", "", []string{"bar bar"})

	pos, ok := e.SearchIn(doc, "bar", host.Position{Line: 1, Col: 0}, host.SearchFlags{IncludeCurrent: true})
	if !ok || pos.Col != 0 {
		t.Errorf("expected match at col 0, got %v %v", pos, ok)
	}
}

func TestSearchWraps(t *testing.T) {
	e := New()
	doc := e.Open("t", "", []string{"target", "nothing"})

	pos, ok := e.SearchIn(doc, "target", host.Position{Line: 2, Col: 0}, host.SearchFlags{})
	if !ok {
		t.Fatal("expected wrapped match")
	}
	if pos.Line != 1 || pos.Col != 0 {
		t.Errorf("expected 1:0, got %d:%d", pos.Line, pos.Col)
	}
}

func TestSearchNoWrap(t *testing.T) {
	e := New()
	doc := e.Open("t", "", []string{"target", "nothing"})

	_, ok := e.SearchIn(doc, "target", host.Position{Line: 2, Col: 0}, host.SearchFlags{NoWrap: true})
	if ok {
		t.Error("NoWrap search should not find a match behind the cursor")
	}
}

func TestSearchInvalidPattern(t *testing.T) {
	e := New()
	doc := e.Open("t", "", []string{"anything"})

	_, ok := e.SearchIn(doc, "([", host.Position{Line: 1, Col: 0}, host.SearchFlags{})
	if ok {
		t.Error("invalid pattern should never match")
	}
}

func TestSearchPatternRegister(t *testing.T) {
	e := New()
	if e.LastPattern() != "" {
		t.Error("pattern register should start empty")
	}
	e.SetLastPattern("foo")
	if e.LastPattern() != "foo" {
		t.Errorf("expected foo, got %q", e.LastPattern())
	}
}
