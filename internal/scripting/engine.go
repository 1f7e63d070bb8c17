package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/simforge/server/internal/core/typegraph"
	"github.com/simforge/server/internal/core/world"
	"github.com/simforge/server/internal/singleton"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for data-driven runtime configuration.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory and its classes/ subdirectory.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	if err := e.loadDir(filepath.Join(scriptsDir, "classes")); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load class scripts: %w", err)
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// DoString runs a chunk of Lua source against the engine's VM. Used by the
// runtime console and by tests.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// RegisterClasses reads the script-defined actor_classes table and registers
// every entry into the graph. Each entry may declare:
//
//	MyClass = {
//	    parent       = "BaseClass",  -- optional, defaults to the graph root
//	    abstract     = true,          -- optional
//	    final_parent = true,          -- bool or function() -> bool
//	    notice_title = "...",         -- string or function() -> string
//	    notice_body  = "...",         -- string or function() -> string
//	}
//
// Parents may be declared in any order; registration iterates until every
// entry resolves. Classes are registered exactly once; traits never change
// afterwards.
func (e *Engine) RegisterClasses(g *typegraph.Graph) (int, error) {
	root := e.vm.GetGlobal("actor_classes")
	if root == lua.LNil {
		return 0, nil
	}
	classTbl, ok := root.(*lua.LTable)
	if !ok {
		return 0, fmt.Errorf("actor_classes is not a table")
	}

	type pendingClass struct {
		name   string
		parent string
		spec   *lua.LTable
	}
	var pending []pendingClass
	classTbl.ForEach(func(k, v lua.LValue) {
		spec, ok := v.(*lua.LTable)
		if !ok {
			return
		}
		pending = append(pending, pendingClass{
			name:   lua.LVAsString(k),
			parent: lua.LVAsString(spec.RawGetString("parent")),
			spec:   spec,
		})
	})

	registered := 0
	for len(pending) > 0 {
		progress := false
		remaining := pending[:0]
		for _, p := range pending {
			var parent *typegraph.Class
			if p.parent != "" {
				parent = g.Lookup(p.parent)
				if parent == nil {
					remaining = append(remaining, p)
					continue
				}
			}
			opts := []typegraph.ClassOption{typegraph.WithTraits(e.traitsFrom(p.spec))}
			if lua.LVAsBool(p.spec.RawGetString("abstract")) {
				opts = append(opts, typegraph.Abstract())
			}
			if _, err := g.Register(p.name, parent, opts...); err != nil {
				return registered, fmt.Errorf("register %s: %w", p.name, err)
			}
			registered++
			progress = true
		}
		pending = remaining
		if !progress {
			names := make([]string, len(pending))
			for i, p := range pending {
				names[i] = p.name + "<-" + p.parent
			}
			return registered, fmt.Errorf("unresolvable class parents: %v", names)
		}
	}
	return registered, nil
}

// traitsFrom builds the trait override set for one class spec. Lua values may
// be constants or functions; functions are re-evaluated on every call.
func (e *Engine) traitsFrom(spec *lua.LTable) typegraph.Traits {
	var t typegraph.Traits
	if v := spec.RawGetString("final_parent"); v != lua.LNil {
		t.FinalParent = func() bool { return e.evalBool(v) }
	}
	if v := spec.RawGetString("notice_title"); v != lua.LNil {
		t.NoticeTitle = func() string { return e.evalString(v, "") }
	}
	if v := spec.RawGetString("notice_body"); v != lua.LNil {
		t.NoticeBody = func() string { return e.evalString(v, "") }
	}
	return t
}

func (e *Engine) evalBool(v lua.LValue) bool {
	fn, ok := v.(*lua.LFunction)
	if !ok {
		return lua.LVAsBool(v)
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		e.log.Error("lua trait call failed", zap.Error(err))
		return false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsBool(ret)
}

func (e *Engine) evalString(v lua.LValue, fallback string) string {
	fn, ok := v.(*lua.LFunction)
	if !ok {
		return lua.LVAsString(v)
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		e.log.Error("lua trait call failed", zap.Error(err))
		return fallback
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return lua.LVAsString(ret)
}

// BindWorld exposes the singleton query to scripts as
// singleton_get(class_name), returning {id, name, class} or nil.
func (e *Engine) BindWorld(w *world.World, g *typegraph.Graph) {
	e.vm.SetGlobal("singleton_get", e.vm.NewFunction(func(L *lua.LState) int {
		className := L.CheckString(1)
		class := g.Lookup(className)
		if class == nil {
			L.Push(lua.LNil)
			return 1
		}
		a := singleton.Instance(w, class)
		if a == nil {
			L.Push(lua.LNil)
			return 1
		}
		t := L.NewTable()
		t.RawSetString("id", lua.LNumber(a.ID()))
		t.RawSetString("name", lua.LString(a.Name()))
		t.RawSetString("class", lua.LString(a.Class().Name()))
		L.Push(t)
		return 1
	}))
}
