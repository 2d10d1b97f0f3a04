package textobj

import (
	"testing"

	"github.com/Piotr1215/beam/internal/host"
)

// Fenced Block Tests

func TestFenceFind(t *testing.T) {
	fc, _ := findCtx(
		"text",
		"```go",
		"func main() {}",
		"```",
		"more",
		"```",
		"plain",
		"```",
	)
	instances := NewFenceKind('m').Find(fc)
	if len(instances) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(instances))
	}
	if instances[0].Language != "go" {
		t.Errorf("expected language go, got %q", instances[0].Language)
	}
	if instances[0].Preview != "func main() {}" {
		t.Errorf("unexpected preview %q", instances[0].Preview)
	}
	if instances[1].Language != "" {
		t.Errorf("expected no language, got %q", instances[1].Language)
	}
	if instances[0].Start.Line != 2 || instances[0].End.Line != 4 {
		t.Errorf("unexpected span %v..%v", instances[0].Start, instances[0].End)
	}
}

func TestFenceDanglingOpenIgnored(t *testing.T) {
	fc, _ := findCtx("```go", "never closed")
	if got := NewFenceKind('m').Find(fc); len(got) != 0 {
		t.Errorf("dangling fence should yield nothing, got %d", len(got))
	}
}

func TestFenceSelectAround(t *testing.T) {
	fc, _ := findCtx("```", "inner", "```")
	r, ok := NewFenceKind('m').SelectAt(fc.Doc, host.Position{Line: 2, Col: 0}, VariantAround)
	if !ok {
		t.Fatal("expected a span")
	}
	if r.Start.Line != 1 || r.End.Line != 3 {
		t.Errorf("around should cover the fences, got %v..%v", r.Start, r.End)
	}
}

func TestFenceSelectInner(t *testing.T) {
	fc, _ := findCtx("```", "a", "b", "```")
	r, ok := NewFenceKind('m').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner)
	if !ok {
		t.Fatal("expected a span")
	}
	if r.Start.Line != 2 || r.End.Line != 3 {
		t.Errorf("inner should cover content only, got %v..%v", r.Start, r.End)
	}
}

func TestFenceSelectInnerEmptyBlock(t *testing.T) {
	fc, _ := findCtx("```", "```")
	if _, ok := NewFenceKind('m').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantInner); ok {
		t.Error("inner of an empty block must not resolve")
	}
}

func TestFenceSelectOutsideBlock(t *testing.T) {
	fc, _ := findCtx("outside", "```", "x", "```")
	if _, ok := NewFenceKind('m').SelectAt(fc.Doc, host.Position{Line: 1, Col: 0}, VariantAround); ok {
		t.Error("position outside any block must not resolve")
	}
}

func TestFenceFormat(t *testing.T) {
	k := NewFenceKind('m')
	got := k.Format(Instance{Preview: "a\nb", Language: "go"})
	want := []string{"```go", "a", "b", "```"}
	if len(got) != len(want) {
		t.Fatalf("unexpected format %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFenceFormatEmpty(t *testing.T) {
	got := NewFenceKind('m').Format(Instance{})
	if len(got) != 2 || got[0] != "```" || got[1] != "```" {
		t.Errorf("unexpected format %v", got)
	}
}
