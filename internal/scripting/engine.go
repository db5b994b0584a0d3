package scripting

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

//go:embed lua/*.lua
var builtin embed.FS

// Engine wraps a gopher-lua VM holding the encounter's tunable formulas.
// The built-in scripts load first; files in the override directory load
// after them and replace whatever globals they redefine.
type Engine struct {
	mu  sync.Mutex
	vm  *lua.LState
	dir string
	log *zap.Logger
}

// NewEngine creates a Lua engine. dir may be empty.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	e := &Engine{dir: dir, log: log}
	vm, err := e.build()
	if err != nil {
		return nil, err
	}
	e.vm = vm
	return e, nil
}

func (e *Engine) Dir() string { return e.dir }

func (e *Engine) build() (*lua.LState, error) {
	vm := lua.NewState()
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	names, err := fs.Glob(builtin, "lua/*.lua")
	if err != nil {
		vm.Close()
		return nil, err
	}
	sort.Strings(names)
	for _, name := range names {
		src, err := builtin.ReadFile(name)
		if err != nil {
			vm.Close()
			return nil, err
		}
		if err := vm.DoString(string(src)); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load builtin %s: %w", path.Base(name), err)
		}
	}

	if err := e.loadDir(vm); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load scripts: %w", err)
	}
	return vm, nil
}

// loadDir loads all .lua files in the override directory.
func (e *Engine) loadDir(vm *lua.LState) error {
	if e.dir == "" {
		return nil
	}
	entries, err := os.ReadDir(e.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		p := filepath.Join(e.dir, entry.Name())
		if err := vm.DoFile(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", p))
	}
	return nil
}

// Reload rebuilds the VM from scratch. On error the running VM is kept.
func (e *Engine) Reload() error {
	vm, err := e.build()
	if err != nil {
		return err
	}
	e.mu.Lock()
	old := e.vm
	e.vm = vm
	e.mu.Unlock()
	old.Close()
	return nil
}

// PhaseContext is passed to boss_phase_dialogue.
type PhaseContext struct {
	Name       string
	Phase      int // 1-based
	Threshold  float64
	Corruption int
	Default    string
}

// PhaseDialogue returns the line a boss speaks on entering a phase.
func (e *Engine) PhaseDialogue(ctx PhaseContext) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.vm.NewTable()
	t.RawSetString("name", lua.LString(ctx.Name))
	t.RawSetString("phase", lua.LNumber(ctx.Phase))
	t.RawSetString("threshold", lua.LNumber(ctx.Threshold))
	t.RawSetString("corruption", lua.LNumber(ctx.Corruption))
	t.RawSetString("default", lua.LString(ctx.Default))

	ret, ok := e.call("boss_phase_dialogue", t)
	if !ok {
		return ctx.Default
	}
	return lua.LVAsString(ret)
}

// BossWarning returns the banner shown while a boss is incoming.
func (e *Engine) BossWarning(stage int) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.vm.NewTable()
	t.RawSetString("stage", lua.LNumber(stage))
	ret, ok := e.call("boss_warning", t)
	if !ok {
		return fmt.Sprintf("WARNING: corruption spike in sector %d...", stage)
	}
	return lua.LVAsString(ret)
}

// ScoreContext is passed to calc_score.
type ScoreContext struct {
	Level   int
	Bosses  int
	Gold    int
	Stage   int
	Kills   int
	Victory bool
}

// Score computes the final run score.
func (e *Engine) Score(ctx ScoreContext) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.vm.NewTable()
	t.RawSetString("level", lua.LNumber(ctx.Level))
	t.RawSetString("bosses", lua.LNumber(ctx.Bosses))
	t.RawSetString("gold", lua.LNumber(ctx.Gold))
	t.RawSetString("stage", lua.LNumber(ctx.Stage))
	t.RawSetString("kills", lua.LNumber(ctx.Kills))
	t.RawSetString("victory", lua.LBool(ctx.Victory))

	ret, ok := e.call("calc_score", t)
	if !ok {
		return ctx.Level*1000 + ctx.Bosses*5000 + ctx.Gold
	}
	return int(lua.LVAsNumber(ret))
}

// call invokes a global with one table argument. Callers hold mu.
func (e *Engine) call(name string, arg *lua.LTable) (lua.LValue, bool) {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Error("lua function not found", zap.String("name", name))
		return lua.LNil, false
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, arg); err != nil {
		e.log.Error("lua call error", zap.String("name", name), zap.Error(err))
		return lua.LNil, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	return ret, true
}

func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.vm.Close()
}
