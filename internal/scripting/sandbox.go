// Package scripting evaluates Lua character files in a sandboxed GopherLua
// state. Scripts can compute values but cannot reach the filesystem, the OS
// or other modules, and every run is bounded by an opcode budget.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of a character file when the
// caller does not pass one.
const DefaultInstructionLimit = 100_000

// opBudget cancels itself once Done has been called more times than its
// budget allows. GopherLua polls Done once per opcode.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// blockedGlobals are base-library entries that load code or touch the host.
var blockedGlobals = []string{"dofile", "loadfile", "load", "loadstring", "collectgarbage", "require", "module"}

// Sandbox is a Lua state restricted to the base, table, string and math
// libraries.
type Sandbox struct {
	L      *lua.LState
	budget *opBudget
}

// NewSandbox builds a sandbox whose scripts stop with an error after
// instLimit opcodes or when ctx is cancelled, whichever comes first.
//
// Precondition: ctx must be non-nil; instLimit <= 0 selects DefaultInstructionLimit.
// Postcondition: Returns a ready sandbox. The caller must call Close.
func NewSandbox(ctx context.Context, instLimit int) *Sandbox {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, open := range []lua.LGFunction{lua.OpenBase, lua.OpenTable, lua.OpenString, lua.OpenMath} {
		open(L)
	}
	for _, name := range blockedGlobals {
		L.SetGlobal(name, lua.LNil)
	}

	inner, cancel := context.WithCancel(ctx)
	b := &opBudget{Context: inner, cancel: cancel}
	b.left.Store(int64(instLimit))
	L.SetContext(b)
	return &Sandbox{L: L, budget: b}
}

// Close releases the Lua state and its budget.
func (s *Sandbox) Close() {
	s.budget.cancel()
	s.L.Close()
}
