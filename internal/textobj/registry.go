package textobj

import (
	"sort"

	"github.com/Piotr1215/beam/internal/host"
)

// Registry maps one-character kind identifiers to behavior and tracks
// which kinds use scoped selection. Custom kinds registered from outside
// shadow built-ins under the same identifier, giving custom finders
// priority over the built-in fence/heading special cases and the generic
// delimiter scan.
type Registry struct {
	builtin map[rune]Kind
	custom  map[rune]Kind
	scoped  map[rune]bool

	crossDocument bool
}

// NewRegistry creates a registry pre-populated with the built-in kinds and
// the default scoped set (all delimiter-pair and tag kinds).
func NewRegistry() *Registry {
	r := &Registry{
		builtin: make(map[rune]Kind),
		custom:  make(map[rune]Kind),
		scoped:  make(map[rune]bool),
	}
	for _, k := range BuiltinKinds() {
		r.builtin[k.ID()] = k
		switch k.(type) {
		case *DelimiterKind, *TagKind:
			r.scoped[k.ID()] = true
		}
	}
	return r
}

// BuiltinKinds returns the standard kind set.
func BuiltinKinds() []Kind {
	return []Kind{
		NewDelimiterKind('"', "doubleQuote", '"', '"'),
		NewDelimiterKind('\'', "singleQuote", '\'', '\''),
		NewDelimiterKind('`', "backtick", '`', '`'),
		NewDelimiterKind('(', "paren", '(', ')'),
		NewDelimiterKind('[', "bracket", '[', ']'),
		NewDelimiterKind('{', "brace", '{', '}'),
		NewDelimiterKind('<', "angle", '<', '>'),
		NewTagKind('t'),
		NewFenceKind('m'),
		NewHeadingKind('h'),
		NewWordKind('w'),
	}
}

// Register adds a custom kind. Registering over an existing custom kind
// identifier fails; shadowing a built-in is allowed and takes priority.
func (r *Registry) Register(k Kind) error {
	if _, ok := r.custom[k.ID()]; ok {
		return ErrKindConflict
	}
	r.custom[k.ID()] = k
	return nil
}

// Kind resolves a kind identifier, custom kinds first.
func (r *Registry) Kind(id rune) (Kind, bool) {
	if k, ok := r.custom[id]; ok {
		return k, true
	}
	k, ok := r.builtin[id]
	return k, ok
}

// IsCustom reports whether the identifier resolves to a custom kind.
func (r *Registry) IsCustom(id rune) bool {
	_, ok := r.custom[id]
	return ok
}

// Kinds returns all registered kind identifiers in sorted order.
func (r *Registry) Kinds() []rune {
	seen := make(map[rune]bool)
	var ids []rune
	for id := range r.custom {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range r.builtin {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetScoped opts a kind in or out of scoped selection.
func (r *Registry) SetScoped(id rune, scoped bool) {
	r.scoped[id] = scoped
}

// IsScoped reports whether the kind uses scoped selection. Cross-document
// search and scoped selection are mutually exclusive: with cross-document
// enabled every kind resolves to not scoped, configuration
// notwithstanding.
func (r *Registry) IsScoped(id rune) bool {
	if r.crossDocument {
		return false
	}
	return r.scoped[id]
}

// SetCrossDocument enables or disables cross-document search, which
// forcibly disables scoped selection while active.
func (r *Registry) SetCrossDocument(enabled bool) {
	r.crossDocument = enabled
}

// CrossDocument reports whether cross-document search is enabled.
func (r *Registry) CrossDocument() bool { return r.crossDocument }

// RenderMode resolves a kind's rendering mode, defaulting to
// characterwise for unknown identifiers.
func (r *Registry) RenderMode(id rune) RenderMode {
	if k, ok := r.Kind(id); ok {
		return k.RenderMode()
	}
	return RenderCharacterwise
}

// FuncKind adapts an externally supplied find/select/format triple to the
// Kind interface. Nil funcs fall back to empty results.
type FuncKind struct {
	Identifier rune
	KindName   string
	Mode       RenderMode
	FindFunc   func(fc FindContext) []Instance
	SelectFunc func(doc host.Document, pos host.Position, v Variant) (host.Range, bool)
	FormatFunc func(inst Instance) []string
}

// ID returns the kind identifier.
func (k *FuncKind) ID() rune { return k.Identifier }

// Name returns the kind name.
func (k *FuncKind) Name() string { return k.KindName }

// RenderMode returns the declared rendering mode.
func (k *FuncKind) RenderMode() RenderMode { return k.Mode }

// Find runs the supplied finder with duplicate suppression applied.
func (k *FuncKind) Find(fc FindContext) []Instance {
	if k.FindFunc == nil {
		return nil
	}
	return dedupe(k.FindFunc(fc))
}

// SelectAt runs the supplied selector.
func (k *FuncKind) SelectAt(doc host.Document, pos host.Position, v Variant) (host.Range, bool) {
	if k.SelectFunc == nil {
		return host.Range{}, false
	}
	return k.SelectFunc(doc, pos, v)
}

// Format runs the supplied formatter, falling back to the preview lines.
func (k *FuncKind) Format(inst Instance) []string {
	if k.FormatFunc == nil {
		return DefaultFormat(inst)
	}
	return k.FormatFunc(inst)
}

// DefaultFormat renders an instance as its raw preview lines.
func DefaultFormat(inst Instance) []string {
	if inst.Preview == "" {
		return []string{""}
	}
	return splitLines(inst.Preview)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
