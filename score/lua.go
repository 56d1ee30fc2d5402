package score

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// DefaultLuaTimeout bounds each script execution: the load, the checks and every run
const DefaultLuaTimeout = 250 * time.Millisecond

// ErrExecutionTimeout is returned when a score script exceeds its time budget
var ErrExecutionTimeout = errors.New("lua execution timeout")

// LuaOption configures a Lua scorer
type LuaOption func(*Lua)

// WithTimeout sets the per-execution time budget; d <= 0 keeps the default
func WithTimeout(d time.Duration) LuaOption {
	return func(s *Lua) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// luaEntry is the global function a score script must define:
//
//	function score(length, age, window) ... end
//
// age is nil when the run has no prior occurrence
const luaEntry = "score"

// Lua evaluates a user script per run
// Not safe for concurrent use; the pipeline is single-threaded
type Lua struct {
	L      *lua.LState
	fn     *lua.LFunction
	window int
	absent  Absent
	timeout time.Duration
	failed  bool // first runtime failure already logged
	stalled bool // a run timed out; the script is no longer called
}

// LoadLua compiles the script at path and verifies it with a trial call
func LoadLua(path string, window int, absent Absent, opts ...LuaOption) (*Lua, error) {
	if path == "" {
		return nil, fmt.Errorf("lua formula requires a script path")
	}
	s := newLua(window, absent, opts)
	if err := s.bounded(func() error { return s.L.DoFile(path) }); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("loading score script %s: %w", path, err)
	}
	return s.bind(path)
}

// NewLua compiles an in-memory script
func NewLua(src string, window int, absent Absent, opts ...LuaOption) (*Lua, error) {
	s := newLua(window, absent, opts)
	if err := s.bounded(func() error { return s.L.DoString(src) }); err != nil {
		s.L.Close()
		return nil, fmt.Errorf("loading score script: %w", err)
	}
	return s.bind("<string>")
}

func newLua(window int, absent Absent, opts []LuaOption) *Lua {
	s := &Lua{L: newLuaState(), window: window, absent: absent, timeout: DefaultLuaTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// bounded runs fn under the time budget
// A cancelled context aborts the VM loop; the error is reported as ErrExecutionTimeout
func (s *Lua) bounded(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := fn()
	if ctx.Err() != nil {
		return fmt.Errorf("%w after %v", ErrExecutionTimeout, s.timeout)
	}
	return err
}

func newLuaState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	// Pure computation only: no io, os, package or debug
	lua.OpenBase(L)
	lua.OpenMath(L)
	lua.OpenString(L)
	lua.OpenTable(L)
	return L
}

// bind resolves the entry function and tries both the found and absent shapes
// so type errors and runaway loops surface at load
func (s *Lua) bind(source string) (*Lua, error) {
	fn, ok := s.L.GetGlobal(luaEntry).(*lua.LFunction)
	if !ok {
		s.L.Close()
		return nil, fmt.Errorf("score script %s: global %q is not a function", source, luaEntry)
	}
	s.fn = fn

	for _, found := range []bool{true, false} {
		if _, err := s.call(1, 0, found); err != nil {
			s.L.Close()
			return nil, fmt.Errorf("score script %s: %w", source, err)
		}
	}
	return s, nil
}

func (s *Lua) Score(length, age int, found bool) float64 {
	if s.stalled {
		return 0
	}
	v, err := s.call(length, age, found)
	if err != nil {
		if errors.Is(err, ErrExecutionTimeout) {
			s.stalled = true
		}
		if !s.failed {
			log.Printf("score script failed, scoring as novel: %v", err)
			s.failed = true
		}
		return 0
	}
	return clamp(v)
}

func (s *Lua) call(length, age int, found bool) (float64, error) {
	var luaAge lua.LValue = lua.LNil
	if found {
		luaAge = lua.LNumber(age)
	} else if s.absent == AbsentZero {
		luaAge = lua.LNumber(0)
	}

	err := s.bounded(func() error {
		return s.L.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true},
			lua.LNumber(length), luaAge, lua.LNumber(s.window))
	})
	if err != nil {
		return 0, err
	}
	ret := s.L.Get(-1)
	s.L.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s returned %s, want number", luaEntry, ret.Type())
	}
	return float64(n), nil
}

// Close releases the Lua state
func (s *Lua) Close() error {
	s.L.Close()
	return nil
}
