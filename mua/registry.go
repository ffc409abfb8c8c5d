package mua

import (
	"sort"
)

// Function is anything a prefix call can dispatch to.
type Function interface {
	Name() string
	Arity() int
	ParamNames() []string
	apply(ev *evaluator, args []Value) Value
}

// NativeImpl is the Go implementation of a builtin. args has exactly
// Arity() elements, already evaluated.
type NativeImpl func(ctx *CallCtx, args []Value) Value

// Builtin is a fixed-arity native operation identified by a reserved name.
type Builtin struct {
	name   string
	params []string
	impl   NativeImpl
}

func (b *Builtin) Name() string         { return b.name }
func (b *Builtin) Arity() int           { return len(b.params) }
func (b *Builtin) ParamNames() []string { return b.params }

func (b *Builtin) apply(ev *evaluator, args []Value) Value {
	return b.impl(&CallCtx{ev: ev, fn: b}, args)
}

// Operator is an infix symbol aliasing a binary builtin.
type Operator struct {
	Symbol string
	Target *Builtin
}

func (o *Operator) Name() string         { return o.Symbol }
func (o *Operator) Arity() int           { return o.Target.Arity() }
func (o *Operator) ParamNames() []string { return o.Target.ParamNames() }
func (o *Operator) apply(ev *evaluator, args []Value) Value {
	return o.Target.apply(ev, args)
}

// UserFunc is a function defined by binding a name to [[params] [body]].
// Body holds the body list's interior text; it is tokenised afresh on every
// call.
type UserFunc struct {
	name   string
	Params []string
	Body   string
}

func (f *UserFunc) Name() string         { return f.name }
func (f *UserFunc) Arity() int           { return len(f.Params) }
func (f *UserFunc) ParamNames() []string { return f.Params }

func (f *UserFunc) apply(ev *evaluator, args []Value) Value {
	child := ev.env.Child()
	for i, p := range f.Params {
		if err := child.bind(p, args[i]); err != nil {
			panic(err)
		}
	}
	return ev.runText(f.Body, child)
}

// newUserFunc unpacks a [[params] [body]] value.
func newUserFunc(name string, def Value) *UserFunc {
	parts := def.Elems()
	params := parts[0].Elems()
	f := &UserFunc{name: name, Params: make([]string, len(params))}
	for i, p := range params {
		f.Params[i] = p.String()
	}
	f.Body = parts[1].PrintForm()
	return f
}

////////////////////////////////////////////////////////////////////////////////
//                                 REGISTRY
////////////////////////////////////////////////////////////////////////////////

// Registry holds the builtin and operator tables. It is filled once when an
// Interpreter is constructed and only read afterwards.
type Registry struct {
	builtins  map[string]*Builtin
	operators map[string]*Operator
}

func newRegistry() *Registry {
	r := &Registry{
		builtins:  map[string]*Builtin{},
		operators: map[string]*Operator{},
	}
	registerNameBuiltins(r)
	registerIOBuiltins(r)
	registerMathBuiltins(r)
	registerLogicBuiltins(r)
	registerControlBuiltins(r)
	registerWordListBuiltins(r)
	registerWorkspaceBuiltins(r)

	for sym, target := range map[string]string{
		"+": "add",
		"-": "sub",
		"*": "mul",
		"/": "div",
		"%": "mod",
	} {
		r.operators[sym] = &Operator{Symbol: sym, Target: r.builtins[target]}
	}
	return r
}

// Register installs (or replaces) a builtin.
func (r *Registry) Register(name string, params []string, impl NativeImpl) {
	r.builtins[name] = &Builtin{name: name, params: params, impl: impl}
}

// Builtin looks up a builtin by name.
func (r *Registry) Builtin(name string) (*Builtin, bool) {
	b, ok := r.builtins[name]
	return b, ok
}

// Operator looks up an infix operator by symbol.
func (r *Registry) Operator(sym string) (*Operator, bool) {
	o, ok := r.operators[sym]
	return o, ok
}

// IsReserved reports whether name is taken by a builtin or operator.
func (r *Registry) IsReserved(name string) bool {
	if _, ok := r.builtins[name]; ok {
		return true
	}
	_, ok := r.operators[name]
	return ok
}

// Names lists builtin names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.builtins))
	for n := range r.builtins {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
