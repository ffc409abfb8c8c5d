package mua

import (
	"sort"
)

// Env is a two-level scope: a private local map plus a reference to the one
// global map shared by every environment of an interpreter. In the root
// environment both refer to the same map. A child environment (one per user
// function call) starts with an empty local map and never sees its caller's
// locals. Lookup order is local, then global.
type Env struct {
	local  map[string]Value
	global map[string]Value
	reg    *Registry
	root   bool

	// return binding set by output; kept out of the variable maps so no
	// user name can collide with it
	ret    Value
	hasRet bool
}

// NewRootEnv creates a root environment over reg.
func NewRootEnv(reg *Registry) *Env {
	g := map[string]Value{}
	return &Env{local: g, global: g, reg: reg, root: true}
}

// Child creates a call-scope environment sharing this environment's globals.
func (e *Env) Child() *Env {
	return &Env{local: map[string]Value{}, global: e.global, reg: e.reg}
}

// IsRoot reports whether the local map is the global map.
func (e *Env) IsRoot() bool { return e.root }

// Registry exposes the builtin tables this environment resolves against.
func (e *Env) Registry() *Registry { return e.reg }

// Make binds name in the local scope after validating it.
func (e *Env) Make(name string, v Value) error {
	if v.IsAbsent() {
		return &Error{Kind: TypeError, Msg: "value of " + name + " is absent"}
	}
	if !IsValidName(name) {
		return &Error{Kind: NameError, Msg: "invalid name: " + name}
	}
	return e.bind(name, v)
}

// bind is Make without the grammar and value checks; used for parameters.
func (e *Env) bind(name string, v Value) error {
	if e.reg.IsReserved(name) {
		return &Error{Kind: NameError, Msg: "invalid variable name: " + name + " is reserved"}
	}
	e.local[name] = v
	return nil
}

// Erase removes a local binding.
func (e *Env) Erase(name string) error {
	if _, ok := e.local[name]; !ok {
		return &Error{Kind: NameError, Msg: "word " + name + " is not a variable name"}
	}
	delete(e.local, name)
	return nil
}

// Lookup finds a variable: local first, then global.
func (e *Env) Lookup(name string) (Value, bool) {
	if v, ok := e.local[name]; ok {
		return v, true
	}
	v, ok := e.global[name]
	return v, ok
}

// Thing returns the bound value of name, or Absent.
func (e *Env) Thing(name string) Value {
	v, _ := e.Lookup(name)
	return v
}

// IsName reports whether name is a variable (local or global) or a builtin.
func (e *Env) IsName(name string) bool {
	if _, ok := e.Lookup(name); ok {
		return true
	}
	_, ok := e.reg.Builtin(name)
	return ok
}

// Export copies a visible binding into the global map.
func (e *Env) Export(name string) error {
	v, ok := e.Lookup(name)
	if !ok {
		return &Error{Kind: NameError, Msg: "word " + name + " is not a variable name"}
	}
	e.global[name] = v
	return nil
}

// Function resolves name as a builtin, an operator or a user function (a
// variable bound to a list of two lists), in that order.
func (e *Env) Function(name string) (Function, bool) {
	if b, ok := e.reg.Builtin(name); ok {
		return b, true
	}
	if o, ok := e.reg.Operator(name); ok {
		return o, true
	}
	if v, ok := e.Lookup(name); ok && isFunctionShape(v) {
		return newUserFunc(name, v), true
	}
	return nil, false
}

// FunctionArity implements ArityLookup.
func (e *Env) FunctionArity(name string) (int, bool) {
	if b, ok := e.reg.Builtin(name); ok {
		return b.Arity(), true
	}
	if v, ok := e.Lookup(name); ok && isFunctionShape(v) {
		return len(v.Elems()[0].Elems()), true
	}
	return 0, false
}

// LocalNames lists local binding names, sorted.
func (e *Env) LocalNames() []string {
	out := make([]string, 0, len(e.local))
	for n := range e.local {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// EraseAll clears every local binding.
func (e *Env) EraseAll() {
	for n := range e.local {
		delete(e.local, n)
	}
}

// SetReturn records the value of output.
func (e *Env) SetReturn(v Value) { e.ret, e.hasRet = v, true }

// ReturnValue reports the pending return value, if any.
func (e *Env) ReturnValue() (Value, bool) { return e.ret, e.hasRet }

func (e *Env) clearReturn() { e.ret, e.hasRet = Absent, false }
