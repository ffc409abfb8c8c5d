// eval.go: PRIVATE. The recursive evaluator.
//
// An evaluator walks one token slice against one environment. Two mutually
// recursive procedures do the work:
//
//   - term consumes exactly one syntactic unit: a literal, a list literal,
//     a parenthesised expression, or a prefix call together with its
//     arguments (a call to a function of arity n consumes n further terms).
//   - expr evaluates the inside of one parenthesis group with a value stack
//     and an operator stack; '*' and '/' bind eagerly, the rest reduce left
//     to right once ')' is reached.
//
// block runs terms until the tokens run out, 'stop' is seen, or output has
// set the environment's return binding.
//
// Code that lives in lists (function bodies, if/repeat branches) is kept as
// text and tokenised again every time it runs, against the environment it
// runs in.
package mua

import (
	"strconv"
)

type evaluator struct {
	ip    *Interpreter
	env   *Env
	toks  []Token
	pos   int
	depth int
}

func (ev *evaluator) done() bool { return ev.pos >= len(ev.toks) }

func (ev *evaluator) peek() Token {
	if ev.done() {
		return Token{Type: EOF}
	}
	return ev.toks[ev.pos]
}

func (ev *evaluator) next() Token {
	t := ev.peek()
	if !ev.done() {
		ev.pos++
	}
	return t
}

// runText tokenises code against env and evaluates it as a block.
func (ev *evaluator) runText(code string, env *Env) Value {
	if ev.depth+1 > ev.ip.maxDepth {
		fail(RuntimeError, "stack overflow: call depth exceeds %d", ev.ip.maxDepth)
	}
	toks, err := Tokenize(code, env)
	if err != nil {
		panic(err)
	}
	sub := &evaluator{ip: ev.ip, env: env, toks: toks, depth: ev.depth + 1}
	return sub.block()
}

// runCode evaluates a code list in the current environment.
func (ev *evaluator) runCode(code Value) Value {
	return ev.runText(code.PrintForm(), ev.env)
}

// block evaluates statements in order.
func (ev *evaluator) block() Value {
	res := Absent
	for !ev.done() {
		if t := ev.peek(); t.Type == IDENT && t.Lexeme == "stop" {
			break
		}
		res = ev.term()
		if v, ok := ev.env.ReturnValue(); ok {
			return v
		}
	}
	return res
}

// term evaluates exactly one syntactic unit.
func (ev *evaluator) term() Value {
	tok := ev.next()
	switch tok.Type {
	case EOF:
		return Absent
	case IDENT:
		if fn, ok := ev.env.Function(tok.Lexeme); ok {
			return ev.call(fn)
		}
		return Word(tok.Lexeme)
	case INTEGER, FLOAT:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			failWrap(ParseError, err, "bad number %q", tok.Lexeme)
		}
		return Num(f)
	case BOOLEAN:
		return Bool(tok.Lexeme == "true")
	case WORD:
		return Word(tok.Lexeme)
	case DEREF:
		return ev.callWith(ev.builtin("thing"), []Value{Word(tok.Lexeme)})
	case BRACKET:
		if tok.Lexeme == "[" {
			return ev.list()
		}
		fail(ParseError, "unexpected ']' at %d:%d", tok.Line, tok.Col)
	case OPERATOR:
		switch tok.Lexeme {
		case "(":
			return ev.expr()
		case "-":
			return ev.call(ev.builtin("negative"))
		}
		fail(ParseError, "unexpected operator %q at %d:%d", tok.Lexeme, tok.Line, tok.Col)
	}
	fail(ParseError, "unexpected token %s %q", tok.Type, tok.Lexeme)
	return Absent
}

func (ev *evaluator) builtin(name string) *Builtin {
	b, ok := ev.ip.reg.Builtin(name)
	if !ok {
		fail(NameError, "word %s is not a function name", name)
	}
	return b
}

// call evaluates Arity() argument terms, then applies fn.
func (ev *evaluator) call(fn Function) Value {
	args := make([]Value, fn.Arity())
	for i := range args {
		args[i] = ev.term()
	}
	return ev.callWith(fn, args)
}

func (ev *evaluator) callWith(fn Function, args []Value) Value {
	return fn.apply(ev, args)
}

// list collects raw words and nested lists up to the matching ']'.
// Contents are never evaluated.
func (ev *evaluator) list() Value {
	xs := []Value{}
	for {
		tok := ev.next()
		switch {
		case tok.Type == EOF:
			fail(ParseError, "list is not closed with ']'")
		case tok.Type == BRACKET && tok.Lexeme == "]":
			return List(xs)
		case tok.Type == BRACKET:
			xs = append(xs, ev.list())
		default:
			xs = append(xs, Word(tok.Lexeme))
		}
	}
}

// expr evaluates one parenthesis group; the '(' is already consumed.
func (ev *evaluator) expr() Value {
	var vals []Value
	var ops []string
	for {
		neg := 0
		for t := ev.peek(); t.Type == OPERATOR && t.Lexeme == "-"; t = ev.peek() {
			neg++
			ev.pos++
		}
		v := ev.term()
		for ; neg > 0; neg-- {
			v = ev.callWith(ev.builtin("negative"), []Value{v})
		}

		if n := len(ops); n > 0 && (ops[n-1] == "*" || ops[n-1] == "/") {
			lhs := vals[len(vals)-1]
			vals[len(vals)-1] = ev.binary(ops[n-1], lhs, v)
			ops = ops[:n-1]
		} else {
			vals = append(vals, v)
		}

		tok := ev.next()
		if tok.Type != OPERATOR || tok.Lexeme == "(" {
			if tok.Type == EOF {
				fail(ParseError, "invalid expression: missing ')'")
			}
			fail(ParseError, "invalid expression: expected operator, got %q", tok.Lexeme)
		}
		if tok.Lexeme == ")" {
			break
		}
		ops = append(ops, tok.Lexeme)
	}

	if len(vals) != len(ops)+1 {
		fail(ParseError, "invalid expression")
	}
	acc := vals[0]
	for i, op := range ops {
		acc = ev.binary(op, acc, vals[i+1])
	}
	return acc
}

func (ev *evaluator) binary(sym string, x, y Value) Value {
	op, ok := ev.ip.reg.Operator(sym)
	if !ok {
		fail(ParseError, "unknown operator %q", sym)
	}
	return ev.callWith(op, []Value{x, y})
}
