// Package luakind loads custom text-object kinds from Lua scripts.
//
// A script returns a table keyed by one-character kind identifiers, each
// value describing the kind:
//
//	return {
//	  ["L"] = {
//	    name = "link",
//	    mode = "characterwise",
//	    find = function(lines)
//	      return { { start_line = 1, start_col = 0, end_line = 1, end_col = 5, preview = "hello" } }
//	    end,
//	    select_at = function(lines, line, col, variant)
//	      return 1, 0, 1, 5
//	    end,
//	    format = function(preview)
//	      return { "[" .. preview .. "]" }
//	    end,
//	  },
//	}
//
// find enumerates instances (end_col exclusive); select_at resolves the
// span at a position and may return nil for no span; format is optional.
package luakind

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/Piotr1215/beam/internal/host"
	"github.com/Piotr1215/beam/internal/log"
	"github.com/Piotr1215/beam/internal/textobj"
)

// Loader owns the Lua state behind all custom kinds it registered.
// gopher-lua states are not goroutine-safe; every call into Lua runs
// under the loader's lock.
type Loader struct {
	mu     sync.Mutex
	state  *lua.LState
	logger *log.Logger
}

// NewLoader creates a loader with a fresh Lua state.
func NewLoader(logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Null
	}
	return &Loader{
		state:  lua.NewState(),
		logger: logger.WithComponent("luakind"),
	}
}

// Close releases the Lua state. Kinds registered from this loader stop
// resolving afterwards.
func (l *Loader) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != nil {
		l.state.Close()
		l.state = nil
	}
}

// LoadFile evaluates a script file and registers its kinds.
func (l *Loader) LoadFile(path string, registry *textobj.Registry) error {
	return l.load(func(L *lua.LState) error { return L.DoFile(path) }, registry, path)
}

// LoadString evaluates script source and registers its kinds.
func (l *Loader) LoadString(src string, registry *textobj.Registry) error {
	return l.load(func(L *lua.LState) error { return L.DoString(src) }, registry, "<string>")
}

func (l *Loader) load(run func(*lua.LState) error, registry *textobj.Registry, name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return ErrLoaderClosed
	}
	L := l.state

	top := L.GetTop()
	if err := run(L); err != nil {
		return fmt.Errorf("evaluating %s: %w", name, err)
	}
	defer L.SetTop(top)

	ret := L.Get(-1)
	table, ok := ret.(*lua.LTable)
	if !ok {
		return fmt.Errorf("%w: %s did not return a table", ErrBadScript, name)
	}

	var loadErr error
	table.ForEach(func(key, value lua.LValue) {
		if loadErr != nil {
			return
		}
		id, ok := kindID(key)
		if !ok {
			loadErr = fmt.Errorf("%w: kind key %q is not a single character", ErrBadScript, key.String())
			return
		}
		def, ok := value.(*lua.LTable)
		if !ok {
			loadErr = fmt.Errorf("%w: kind %q is not a table", ErrBadScript, string(id))
			return
		}
		kind, err := l.buildKind(id, def)
		if err != nil {
			loadErr = err
			return
		}
		if err := registry.Register(kind); err != nil {
			loadErr = fmt.Errorf("registering kind %q: %w", string(id), err)
			return
		}
		l.logger.Info("registered custom kind %q (%s)", string(id), kind.Name())
	})
	return loadErr
}

func kindID(key lua.LValue) (rune, bool) {
	s, ok := key.(lua.LString)
	if !ok {
		return 0, false
	}
	rs := []rune(string(s))
	if len(rs) != 1 {
		return 0, false
	}
	return rs[0], true
}

func (l *Loader) buildKind(id rune, def *lua.LTable) (textobj.Kind, error) {
	name := stringField(def, "name", string(id))
	mode := textobj.RenderCharacterwise
	if stringField(def, "mode", "characterwise") == "linewise" {
		mode = textobj.RenderLinewise
	}

	findFn, _ := def.RawGetString("find").(*lua.LFunction)
	selectFn, _ := def.RawGetString("select_at").(*lua.LFunction)
	formatFn, _ := def.RawGetString("format").(*lua.LFunction)
	if findFn == nil || selectFn == nil {
		return nil, fmt.Errorf("%w: kind %q needs find and select_at functions", ErrBadScript, string(id))
	}

	k := &luaKind{
		loader: l,
		id:     id,
		name:   name,
		mode:   mode,
		find:   findFn,
		sel:    selectFn,
		format: formatFn,
	}
	return k, nil
}

func stringField(t *lua.LTable, key, fallback string) string {
	if s, ok := t.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return fallback
}

// luaKind adapts a Lua find/select_at/format triple to textobj.Kind.
type luaKind struct {
	loader *Loader
	id     rune
	name   string
	mode   textobj.RenderMode

	find   *lua.LFunction
	sel    *lua.LFunction
	format *lua.LFunction
}

// ID returns the kind identifier.
func (k *luaKind) ID() rune { return k.id }

// Name returns the kind name.
func (k *luaKind) Name() string { return k.name }

// RenderMode returns the declared rendering mode.
func (k *luaKind) RenderMode() textobj.RenderMode { return k.mode }

// Find calls the script's find function over the document lines.
func (k *luaKind) Find(fc textobj.FindContext) []textobj.Instance {
	if fc.Doc == nil {
		return nil
	}
	var out []textobj.Instance
	err := k.loader.call(func(L *lua.LState) error {
		if err := L.CallByParam(lua.P{Fn: k.find, NRet: 1, Protect: true}, linesTable(L, fc.Doc)); err != nil {
			return err
		}
		defer L.Pop(1)
		table, ok := L.Get(-1).(*lua.LTable)
		if !ok {
			return nil
		}
		table.ForEach(func(_, v lua.LValue) {
			if inst, ok := instanceFromTable(v); ok {
				out = append(out, inst)
			}
		})
		return nil
	})
	if err != nil {
		k.loader.logger.Warn("find for kind %q failed: %v", string(k.id), err)
		return nil
	}
	return out
}

// SelectAt calls the script's select_at function. A nil first return
// means no span.
func (k *luaKind) SelectAt(doc host.Document, pos host.Position, v textobj.Variant) (host.Range, bool) {
	var r host.Range
	resolved := false
	err := k.loader.call(func(L *lua.LState) error {
		err := L.CallByParam(lua.P{Fn: k.sel, NRet: 4, Protect: true},
			linesTable(L, doc),
			lua.LNumber(pos.Line),
			lua.LNumber(pos.Col),
			lua.LString(v.String()),
		)
		if err != nil {
			return err
		}
		defer L.Pop(4)
		vals := make([]lua.LValue, 4)
		for i := range vals {
			vals[i] = L.Get(-4 + i)
		}
		nums := make([]int, 4)
		for i, lv := range vals {
			n, ok := lv.(lua.LNumber)
			if !ok {
				return nil
			}
			nums[i] = int(n)
		}
		r = host.Range{
			Start: host.Position{Line: nums[0], Col: nums[1]},
			End:   host.Position{Line: nums[2], Col: nums[3]},
		}
		resolved = true
		return nil
	})
	if err != nil {
		k.loader.logger.Warn("select_at for kind %q failed: %v", string(k.id), err)
		return host.Range{}, false
	}
	return r, resolved
}

// Format calls the script's format function when present, falling back to
// the preview lines.
func (k *luaKind) Format(inst textobj.Instance) []string {
	if k.format == nil {
		return textobj.DefaultFormat(inst)
	}
	var out []string
	err := k.loader.call(func(L *lua.LState) error {
		if err := L.CallByParam(lua.P{Fn: k.format, NRet: 1, Protect: true}, lua.LString(inst.Preview)); err != nil {
			return err
		}
		defer L.Pop(1)
		table, ok := L.Get(-1).(*lua.LTable)
		if !ok {
			return nil
		}
		table.ForEach(func(_, v lua.LValue) {
			out = append(out, v.String())
		})
		return nil
	})
	if err != nil || len(out) == 0 {
		return textobj.DefaultFormat(inst)
	}
	return out
}

func (l *Loader) call(fn func(*lua.LState) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == nil {
		return ErrLoaderClosed
	}
	return fn(l.state)
}

// linesTable converts document lines to a Lua array table.
func linesTable(L *lua.LState, doc host.Document) *lua.LTable {
	t := L.NewTable()
	for n := 1; n <= doc.LineCount(); n++ {
		t.Append(lua.LString(doc.Line(n)))
	}
	return t
}

// instanceFromTable converts one Lua instance table.
func instanceFromTable(v lua.LValue) (textobj.Instance, bool) {
	t, ok := v.(*lua.LTable)
	if !ok {
		return textobj.Instance{}, false
	}
	num := func(key string) (int, bool) {
		n, ok := t.RawGetString(key).(lua.LNumber)
		return int(n), ok
	}
	sl, ok1 := num("start_line")
	sc, ok2 := num("start_col")
	el, ok3 := num("end_line")
	ec, ok4 := num("end_col")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return textobj.Instance{}, false
	}
	inst := textobj.Instance{
		Start:   host.Position{Line: sl, Col: sc},
		End:     host.Position{Line: el, Col: ec},
		Preview: stringField(t, "preview", ""),
	}
	return inst, true
}
