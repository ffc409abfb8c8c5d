// === FILE: builtin_names.go ===
package mua

// --- Bindings ------------------------------------------------------------

func registerNameBuiltins(r *Registry) {
	// make "name value binds in the calling scope (the global map at root).
	r.Register("make", []string{"name", "value"}, func(ctx *CallCtx, args []Value) Value {
		name := ctx.Name(args, 0)
		ctx.check(ctx.Env().Make(name, args[1]))
		return Absent
	})

	r.Register("erase", []string{"name"}, func(ctx *CallCtx, args []Value) Value {
		name := ctx.Name(args, 0)
		ctx.check(ctx.Env().Erase(name))
		return Absent
	})

	r.Register("isname", []string{"name"}, func(ctx *CallCtx, args []Value) Value {
		if args[0].Tag != VTWord {
			return Bool(false)
		}
		return Bool(ctx.Env().IsName(args[0].Text()))
	})

	// thing is also what :name expands to.
	r.Register("thing", []string{"name"}, func(ctx *CallCtx, args []Value) Value {
		return ctx.Env().Thing(ctx.Name(args, 0))
	})

	r.Register("export", []string{"name"}, func(ctx *CallCtx, args []Value) Value {
		name := ctx.Name(args, 0)
		ctx.check(ctx.Env().Export(name))
		return Absent
	})
}
