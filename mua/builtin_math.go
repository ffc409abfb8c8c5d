// === FILE: builtin_math.go ===
package mua

import (
	"math"
)

// --- Arithmetic ----------------------------------------------------------

func registerMathBuiltins(r *Registry) {
	binary := func(name string, op func(x, y float64) float64) {
		r.Register(name, []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
			return Num(op(ctx.Number(args, 0), ctx.Number(args, 1)))
		})
	}
	unary := func(name string, op func(x float64) float64) {
		r.Register(name, []string{"x"}, func(ctx *CallCtx, args []Value) Value {
			return Num(op(ctx.Number(args, 0)))
		})
	}

	binary("add", func(x, y float64) float64 { return x + y })
	binary("sub", func(x, y float64) float64 { return x - y })
	binary("mul", func(x, y float64) float64 { return x * y })
	// IEEE: div 1 0 is Infinity, div 0 0 is NaN.
	binary("div", func(x, y float64) float64 { return x / y })

	r.Register("mod", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		x := roundHalfUp(ctx.Number(args, 0))
		y := roundHalfUp(ctx.Number(args, 1))
		if y == 0 {
			ctx.Fail(RuntimeError, "division by zero")
		}
		// sign follows the dividend
		return Num(math.Mod(x, y))
	})

	unary("negative", func(x float64) float64 { return -x })
	unary("int", math.Floor)
	unary("sqrt", math.Sqrt)

	r.Register("random", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		x := ctx.Number(args, 0)
		return Num(ctx.Interp().rnd.Float64() * x)
	})

	// --- Comparison ------------------------------------------------------

	r.Register("gt", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		return Bool(ctx.Number(args, 0) > ctx.Number(args, 1))
	})
	r.Register("lt", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		return Bool(ctx.Number(args, 0) < ctx.Number(args, 1))
	})
	r.Register("eq", []string{"x", "y"}, func(ctx *CallCtx, args []Value) Value {
		return Bool(valuesEqual(args[0], args[1]))
	})
}

// valuesEqual never fails. Lists are never equal (not even to themselves);
// two Words compare as text; anything else compares numerically, and a
// side that does not coerce makes the result false.
func valuesEqual(x, y Value) bool {
	if x.Tag == VTList || y.Tag == VTList {
		return false
	}
	if x.Tag == VTWord && y.Tag == VTWord {
		return x.Text() == y.Text()
	}
	a, ok := x.ToNumber()
	if !ok {
		return false
	}
	b, ok := y.ToNumber()
	if !ok {
		return false
	}
	return a == b
}
