// === FILE: builtin_io.go ===
package mua

import (
	"fmt"
	"strings"
	"time"
)

// --- Console -------------------------------------------------------------

func registerIOBuiltins(r *Registry) {
	r.Register("print", []string{"value"}, func(ctx *CallCtx, args []Value) Value {
		if _, err := fmt.Fprintln(ctx.Out(), args[0].PrintForm()); err != nil {
			failWrap(IOError, err, "print: write failed")
		}
		return Absent
	})

	r.Register("read", nil, func(ctx *CallCtx, args []Value) Value {
		return Word(ctx.ReadLine())
	})

	// readlist splits on runs of blanks; a blank line gives [].
	r.Register("readlist", nil, func(ctx *CallCtx, args []Value) Value {
		return Words(strings.Fields(ctx.ReadLine())...)
	})

	r.Register("wait", []string{"ms"}, func(ctx *CallCtx, args []Value) Value {
		ms := ctx.Number(args, 0)
		if ms > 0 {
			ctx.Interp().sleep(time.Duration(ms * float64(time.Millisecond)))
		}
		return Absent
	})
}
