// === FILE: builtin_wordlist.go ===
package mua

// --- Words & lists -------------------------------------------------------

func registerWordListBuiltins(r *Registry) {
	r.Register("isempty", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		switch args[0].Tag {
		case VTList:
			return Bool(len(args[0].Elems()) == 0)
		case VTWord:
			return Bool(args[0].Text() == "")
		default:
			ctx.Fail(TypeError, "x must be a word or list, got %s", args[0].Tag)
			return Absent
		}
	})

	r.Register("word", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		ctx.Present(args)
		for i, a := range args {
			if a.Tag == VTList {
				ctx.Fail(TypeError, "%s must not be a list", ctx.fn.params[i])
			}
		}
		return Word(args[0].String() + args[1].String())
	})

	r.Register("list", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		ctx.Present(args)
		return List([]Value{args[0], args[1]})
	})

	r.Register("sentence", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		ctx.Present(args)
		out := []Value{}
		for _, a := range args {
			if a.Tag == VTList {
				out = append(out, a.Elems()...)
			} else {
				out = append(out, a)
			}
		}
		return List(out)
	})

	r.Register("join", []string{"list", "x"}, func(ctx *CallCtx, args []Value) Value {
		xs := ctx.List(args, 0)
		ctx.Present(args)
		out := make([]Value, 0, len(xs)+1)
		out = append(out, xs...)
		return List(append(out, args[1]))
	})

	r.Register("first", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		return slice(ctx, args[0], func(n int) (int, int) { return 0, 1 }, true)
	})
	r.Register("last", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		return slice(ctx, args[0], func(n int) (int, int) { return n - 1, n }, true)
	})
	r.Register("butfirst", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		return slice(ctx, args[0], func(n int) (int, int) { return 1, n }, false)
	})
	r.Register("butlast", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		if args[0].Tag == VTWord {
			// a Word keeps only its last character
			return slice(ctx, args[0], func(n int) (int, int) { return n - 1, n }, false)
		}
		return slice(ctx, args[0], func(n int) (int, int) { return 0, n - 1 }, false)
	})
}

// slice cuts [lo, hi) out of a List or a Word (by character). With elem
// set, a List yields the single element instead of a sub-list.
func slice(ctx *CallCtx, x Value, bounds func(n int) (int, int), elem bool) Value {
	switch x.Tag {
	case VTList:
		xs := x.Elems()
		if len(xs) == 0 {
			ctx.Fail(RuntimeError, "empty list")
		}
		lo, hi := bounds(len(xs))
		if elem {
			return xs[lo]
		}
		out := make([]Value, hi-lo)
		copy(out, xs[lo:hi])
		return List(out)
	case VTWord:
		rs := []rune(x.Text())
		if len(rs) == 0 {
			ctx.Fail(RuntimeError, "empty word")
		}
		lo, hi := bounds(len(rs))
		return Word(string(rs[lo:hi]))
	default:
		ctx.Fail(TypeError, "x must be a word or list, got %s", x.Tag)
		return Absent
	}
}
