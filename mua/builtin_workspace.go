// === FILE: builtin_workspace.go ===
package mua

import (
	"fmt"
)

// --- Workspace -----------------------------------------------------------
//
// All four operate on the local bindings of the calling environment; at top
// level that is the global map.

func registerWorkspaceBuiltins(r *Registry) {
	r.Register("poall", nil, func(ctx *CallCtx, args []Value) Value {
		for _, name := range ctx.Env().LocalNames() {
			fmt.Fprintln(ctx.Out(), name)
		}
		return Absent
	})

	r.Register("erall", nil, func(ctx *CallCtx, args []Value) Value {
		ctx.Env().EraseAll()
		return Absent
	})

	r.Register("save", []string{"file"}, func(ctx *CallCtx, args []Value) Value {
		path := ctx.Name(args, 0)
		ctx.check(SaveFile(ctx.Env(), path))
		return Absent
	})

	r.Register("load", []string{"file"}, func(ctx *CallCtx, args []Value) Value {
		ctx.ev.load(ctx.Name(args, 0))
		return Absent
	})
}
