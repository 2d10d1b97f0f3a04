package luakind

import (
	"errors"
	"testing"

	"github.com/Piotr1215/beam/internal/editor"
	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/textobj"
)

// Lua Kind Loader Tests

const linkScript = `
return {
  ["L"] = {
    name = "link",
    mode = "characterwise",
    find = function(lines)
      local out = {}
      for n, line in ipairs(lines) do
        local s, e = string.find(line, "%[.-%]")
        if s then
          out[#out + 1] = {
            start_line = n, start_col = s - 1,
            end_line = n, end_col = e,
            preview = string.sub(line, s + 1, e - 1),
          }
        end
      end
      return out
    end,
    select_at = function(lines, line, col, variant)
      local s, e = string.find(lines[line], "%[.-%]")
      if not s then return nil end
      if variant == "inner" then
        return line, s, line, e - 1
      end
      return line, s - 1, line, e
    end,
    format = function(preview)
      return { "[" .. preview .. "]" }
    end,
  },
}
`

func TestLoadStringRegistersKind(t *testing.T) {
	loader := NewLoader(nil)
	defer loader.Close()
	registry := textobj.NewRegistry()

	if err := loader.LoadString(linkScript, registry); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	k, ok := registry.Kind('L')
	if !ok {
		t.Fatal("kind L not registered")
	}
	if k.Name() != "link" {
		t.Errorf("unexpected name %q", k.Name())
	}
	if k.RenderMode() != textobj.RenderCharacterwise {
		t.Error("unexpected render mode")
	}
}

func TestLuaKindFind(t *testing.T) {
	loader := NewLoader(nil)
	defer loader.Close()
	registry := textobj.NewRegistry()
	if err := loader.LoadString(linkScript, registry); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	k, _ := registry.Kind('L')

	e := editor.New()
	doc := e.Open("t.md", "markdown", []string{"see [docs] here", "none", "[more]"})
	instances := k.Find(textobj.FindContext{Doc: doc})
	if len(instances) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(instances))
	}
	if instances[0].Preview != "docs" || instances[1].Preview != "more" {
		t.Errorf("unexpected previews %q %q", instances[0].Preview, instances[1].Preview)
	}
	if instances[0].Start.Line != 1 || instances[0].Start.Col != 4 {
		t.Errorf("unexpected start %v", instances[0].Start)
	}
}

func TestLuaKindSelectAt(t *testing.T) {
	loader := NewLoader(nil)
	defer loader.Close()
	registry := textobj.NewRegistry()
	if err := loader.LoadString(linkScript, registry); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	k, _ := registry.Kind('L')

	e := editor.New()
	doc := e.Open("t.md", "markdown", []string{"see [docs] here"})

	r, ok := k.SelectAt(doc, host.Position{Line: 1, Col: 5}, textobj.VariantInner)
	if !ok {
		t.Fatal("expected a span")
	}
	if got := doc.Text(r); got != "docs" {
		t.Errorf("expected docs, got %q", got)
	}

	r, ok = k.SelectAt(doc, host.Position{Line: 1, Col: 5}, textobj.VariantAround)
	if !ok {
		t.Fatal("expected a span")
	}
	if got := doc.Text(r); got != "[docs]" {
		t.Errorf("expected bracketed text, got %q", got)
	}
}

func TestLuaKindSelectAtNil(t *testing.T) {
	loader := NewLoader(nil)
	defer loader.Close()
	registry := textobj.NewRegistry()
	if err := loader.LoadString(linkScript, registry); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	k, _ := registry.Kind('L')

	e := editor.New()
	doc := e.Open("t.md", "markdown", []string{"no links"})
	if _, ok := k.SelectAt(doc, host.Position{Line: 1, Col: 0}, textobj.VariantInner); ok {
		t.Error("nil return should mean no span")
	}
}

func TestLuaKindFormat(t *testing.T) {
	loader := NewLoader(nil)
	defer loader.Close()
	registry := textobj.NewRegistry()
	if err := loader.LoadString(linkScript, registry); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	k, _ := registry.Kind('L')

	got := k.Format(textobj.Instance{Preview: "docs"})
	if len(got) != 1 || got[0] != "[docs]" {
		t.Errorf("unexpected format %v", got)
	}
}

func TestLoadStringBadScripts(t *testing.T) {
	loader := NewLoader(nil)
	defer loader.Close()
	registry := textobj.NewRegistry()

	if err := loader.LoadString(`return 42`, registry); !errors.Is(err, ErrBadScript) {
		t.Errorf("non-table return: expected ErrBadScript, got %v", err)
	}
	if err := loader.LoadString(`return { ["xy"] = {} }`, registry); !errors.Is(err, ErrBadScript) {
		t.Errorf("multi-char key: expected ErrBadScript, got %v", err)
	}
	if err := loader.LoadString(`return { ["z"] = { name = "z" } }`, registry); !errors.Is(err, ErrBadScript) {
		t.Errorf("missing functions: expected ErrBadScript, got %v", err)
	}
}

func TestLoaderClosed(t *testing.T) {
	loader := NewLoader(nil)
	loader.Close()
	if err := loader.LoadString(linkScript, textobj.NewRegistry()); !errors.Is(err, ErrLoaderClosed) {
		t.Errorf("expected ErrLoaderClosed, got %v", err)
	}
}
