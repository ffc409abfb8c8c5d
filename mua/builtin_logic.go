// === FILE: builtin_logic.go ===
package mua

// --- Boolean operators & kind predicates ---------------------------------

func registerLogicBuiltins(r *Registry) {
	r.Register("and", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		x, y := ctx.Bool(args, 0), ctx.Bool(args, 1)
		return Bool(x && y)
	})
	r.Register("or", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		x, y := ctx.Bool(args, 0), ctx.Bool(args, 1)
		return Bool(x || y)
	})
	r.Register("not", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		return Bool(!ctx.Bool(args, 0))
	})

	for name, tag := range map[string]ValueTag{
		"isnumber": VTNum,
		"isword":   VTWord,
		"islist":   VTList,
		"isbool":   VTBool,
	} {
		tag := tag
		r.Register(name, []string{"x"}, func(ctx *CallCtx, args []Value) Value {
			return Bool(args[0].Tag == tag)
		})
	}
}
