// === FILE: builtin_control.go ===
package mua

// --- Control flow --------------------------------------------------------
//
// Code arguments arrive as List values holding unevaluated words; they run
// as nested blocks in the caller's environment, so assignments inside an
// if/repeat body are visible after it.

func registerControlBuiltins(r *Registry) {
	r.Register("if", []string{"cond", "then", "else"}, func(ctx *CallCtx, args []Value) Value {
		cond := ctx.Bool(args, 0)
		ctx.List(args, 1)
		ctx.List(args, 2)
		if cond {
			return ctx.RunCode(args[1])
		}
		return ctx.RunCode(args[2])
	})

	r.Register("repeat", []string{"count", "code"}, func(ctx *CallCtx, args []Value) Value {
		n := roundHalfUp(ctx.Number(args, 0))
		ctx.List(args, 1)
		res := Absent
		for i := 0.0; i < n; i++ {
			res = ctx.RunCode(args[1])
			if _, ok := ctx.Env().ReturnValue(); ok {
				break
			}
		}
		return res
	})

	r.Register("output", []string{"value"}, func(ctx *CallCtx, args []Value) Value {
		ctx.Env().SetReturn(args[0])
		return args[0]
	})
}
