package textobj

import (
	"errors"
	"testing"

	"github.com/Piotr1215/beam/internal/host"
)

// Registry Tests

func TestRegistryResolvesBuiltins(t *testing.T) {
	r := NewRegistry()
	for _, id := range []rune{'"', '\'', '`', '(', '[', '{', '<', 't', 'm', 'h', 'w'} {
		if _, ok := r.Kind(id); !ok {
			t.Errorf("builtin kind %q missing", string(id))
		}
	}
	if _, ok := r.Kind('z'); ok {
		t.Error("unknown kind should not resolve")
	}
}

func TestRegistryCustomShadowsBuiltin(t *testing.T) {
	r := NewRegistry()
	custom := &FuncKind{Identifier: '(', KindName: "custom-paren"}
	if err := r.Register(custom); err != nil {
		t.Fatalf("Register: %v", err)
	}
	k, ok := r.Kind('(')
	if !ok || k.Name() != "custom-paren" {
		t.Error("custom kind should shadow the builtin")
	}
	if !r.IsCustom('(') {
		t.Error("shadowed identifier should report custom")
	}
}

func TestRegistryCustomConflict(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&FuncKind{Identifier: 'x'}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := r.Register(&FuncKind{Identifier: 'x'}); !errors.Is(err, ErrKindConflict) {
		t.Errorf("expected ErrKindConflict, got %v", err)
	}
}

func TestRegistryDefaultScopedSet(t *testing.T) {
	r := NewRegistry()
	for _, id := range []rune{'"', '(', '[', '{', 't'} {
		if !r.IsScoped(id) {
			t.Errorf("kind %q should default to scoped", string(id))
		}
	}
	for _, id := range []rune{'m', 'h', 'w'} {
		if r.IsScoped(id) {
			t.Errorf("kind %q should not default to scoped", string(id))
		}
	}
}

// Cross-document search and scoped selection are mutually exclusive:
// enabling the sweep turns scoped resolution off for every kind.
func TestRegistryCrossDocumentDisablesScoping(t *testing.T) {
	r := NewRegistry()
	r.SetScoped('(', true)

	r.SetCrossDocument(true)
	if r.IsScoped('(') {
		t.Error("cross-document mode must disable scoped selection")
	}

	r.SetCrossDocument(false)
	if !r.IsScoped('(') {
		t.Error("disabling cross-document mode must restore the configured scoping")
	}
}

func TestRegistryKindsSorted(t *testing.T) {
	r := NewRegistry()
	ids := r.Kinds()
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("identifiers not sorted: %q before %q", string(ids[i-1]), string(ids[i]))
		}
	}
}

func TestRegistryRenderMode(t *testing.T) {
	r := NewRegistry()
	if r.RenderMode('m') != RenderLinewise {
		t.Error("fence kind should be linewise")
	}
	if r.RenderMode('(') != RenderCharacterwise {
		t.Error("paren kind should be characterwise")
	}
	if r.RenderMode('z') != RenderCharacterwise {
		t.Error("unknown kind should default to characterwise")
	}
}

func TestFuncKindFallbacks(t *testing.T) {
	k := &FuncKind{Identifier: 'x', KindName: "x"}
	if got := k.Find(FindContext{}); got != nil {
		t.Error("nil finder should yield nothing")
	}
	if _, ok := k.SelectAt(nil, host.Position{}, VariantInner); ok {
		t.Error("nil selector should not resolve")
	}
	if got := k.Format(Instance{Preview: "a\nb"}); len(got) != 2 || got[0] != "a" {
		t.Errorf("format fallback should split the preview, got %v", got)
	}
}

func TestDefaultFormatEmptyPreview(t *testing.T) {
	got := DefaultFormat(Instance{})
	if len(got) != 1 || got[0] != "" {
		t.Errorf("expected one empty line, got %v", got)
	}
}
