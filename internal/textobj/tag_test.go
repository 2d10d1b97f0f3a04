package textobj

import (
	"testing"

	"github.com/Piotr1215/beam/internal/host"
)

// Tag Kind Tests

func TestTagSelectInner(t *testing.T) {
	fc, _ := findCtx(`<div>content</div>`)
	r, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner)
	if !ok {
		t.Fatal("expected a span")
	}
	if got := fc.Doc.Text(r); got != "content" {
		t.Errorf("expected content, got %q", got)
	}
}

func TestTagSelectAround(t *testing.T) {
	fc, _ := findCtx(`<div>content</div>`)
	r, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantAround)
	if !ok {
		t.Fatal("expected a span")
	}
	if got := fc.Doc.Text(r); got != "<div>content</div>" {
		t.Errorf("expected full element, got %q", got)
	}
}

func TestTagNestedSameName(t *testing.T) {
	fc, _ := findCtx(`<div>a<div>b</div>c</div>`)
	r, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner)
	if !ok {
		t.Fatal("expected a span")
	}
	if got := fc.Doc.Text(r); got != "a<div>b</div>c" {
		t.Errorf("nesting not honored, got %q", got)
	}
}

func TestTagSelfClosingRejected(t *testing.T) {
	fc, _ := findCtx(`<br/>`)
	if _, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner); ok {
		t.Error("self-closing tag must not open a span")
	}
}

func TestTagUnclosedRejected(t *testing.T) {
	fc, _ := findCtx(`<div>never closed`)
	if _, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner); ok {
		t.Error("unclosed tag must not resolve")
	}
}

func TestTagSpansLines(t *testing.T) {
	fc, _ := findCtx("<section>", "  <p>x</p>", "</section>")
	r, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantAround)
	if !ok {
		t.Fatal("expected a span")
	}
	if r.Start.Line != 1 || r.End.Line != 3 {
		t.Errorf("expected lines 1..3, got %d..%d", r.Start.Line, r.End.Line)
	}
}

func TestTagWithAttributes(t *testing.T) {
	fc, _ := findCtx(`<a href="x">link</a>`)
	r, ok := NewTagKind('t').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner)
	if !ok {
		t.Fatal("expected a span")
	}
	if got := fc.Doc.Text(r); got != "link" {
		t.Errorf("expected link, got %q", got)
	}
}

func TestTagFind(t *testing.T) {
	fc, _ := findCtx(`<b>one</b> text <i>two</i>`)
	instances := NewTagKind('t').Find(fc)
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
	if instances[0].Preview != "one" || instances[1].Preview != "two" {
		t.Errorf("unexpected previews %q %q", instances[0].Preview, instances[1].Preview)
	}
}
