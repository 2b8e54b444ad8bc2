package scripting

import (
	"context"
	"fmt"
	"math"

	lua "github.com/yuin/gopher-lua"
)

// EvalGlobals runs src in a fresh sandbox and returns the globals it defined,
// converted to Go values:
//   - strings and booleans map directly
//   - integral numbers become int, others float64
//   - tables with keys 1..n become []any, other tables map[string]any
//
// Functions and userdata are dropped. name is used in error messages only.
//
// Precondition: ctx must be non-nil.
// Postcondition: Returns the user globals or a non-nil error when the script
// fails to parse, raises an error or exceeds instLimit opcodes.
func EvalGlobals(ctx context.Context, src, name string, instLimit int) (map[string]any, error) {
	sb := NewSandbox(ctx, instLimit)
	defer sb.Close()
	L := sb.L

	builtin := make(map[string]bool)
	L.G.Global.ForEach(func(k, _ lua.LValue) {
		builtin[k.String()] = true
	})

	fn, err := L.LoadString(src)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("running %s: %w", name, err)
	}

	out := make(map[string]any)
	L.G.Global.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok || builtin[string(key)] {
			return
		}
		if gv, ok := toGo(v, 0); ok {
			out[string(key)] = gv
		}
	})
	return out, nil
}

// maxDepth bounds table nesting so self-referencing tables terminate.
const maxDepth = 32

func toGo(v lua.LValue, depth int) (any, bool) {
	if depth > maxDepth {
		return nil, false
	}
	switch lv := v.(type) {
	case lua.LBool:
		return bool(lv), true
	case lua.LString:
		return string(lv), true
	case lua.LNumber:
		f := float64(lv)
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(f), true
		}
		return f, true
	case *lua.LTable:
		return tableToGo(lv, depth+1), true
	default:
		return nil, false
	}
}

func tableToGo(t *lua.LTable, depth int) any {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })
	if n > 0 && n == count {
		list := make([]any, 0, n)
		for i := 1; i <= n; i++ {
			gv, _ := toGo(t.RawGetInt(i), depth)
			list = append(list, gv)
		}
		return list
	}
	m := make(map[string]any, count)
	t.ForEach(func(k, v lua.LValue) {
		if gv, ok := toGo(v, depth); ok {
			m[k.String()] = gv
		}
	})
	return m
}
