// interpreter.go: PUBLIC API SURFACE of the MUA interpreter.
//
// OVERVIEW
// ========
// An Interpreter owns one builtin registry, one root environment (whose
// local map is the global map) and the two I/O capabilities every program
// touches: the input LineSource (shared by statement continuation and the
// read/readlist builtins) and the output io.Writer used by print/poall.
//
// Statements are accepted one at a time:
//
//	lx := ip.NewLexer()
//	lx.AppendLine(`print add 1`)   // lx.IsComplete() == false
//	lx.AppendLine(`2`)             // lx.IsComplete() == true
//	v, err := ip.Accept(lx)        // prints 3.0
//
// Accept evaluates every token the lexer holds as one block in the root
// environment and resets the lexer. Failures abort the statement and come
// back as *Error or *LexError; the interpreter stays usable.
//
// Higher-level entry points:
//   - EvalSource(src): feed a whole text through the acceptor, stop at the
//     first error, return the value of the last statement.
//   - Run(onErr): read statements from the input source until EOF, exactly
//     like a script read from stdin; onErr decides whether to go on after
//     a failing statement.
//   - LoadFile / SaveFile: the persistence behind load/save.
//
// CONCURRENCY
// -----------
// An Interpreter is single-threaded: evaluation, the root environment and
// the input cursor must not be used from more than one goroutine.
package mua

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/golang/glog"
)

// Version is the interpreter version reported by the CLI.
var Version = "0.3.0"

// DefaultMaxDepth bounds nested code evaluation (calls, if, repeat).
const DefaultMaxDepth = 10000

// Interpreter evaluates MUA statements.
type Interpreter struct {
	Root *Env

	reg      *Registry
	in       LineSource
	out      io.Writer
	rnd      *rand.Rand
	sleep    func(time.Duration)
	maxDepth int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithInput sets the line source used by read, readlist and Run.
func WithInput(src LineSource) Option { return func(ip *Interpreter) { ip.in = src } }

// WithOutput sets the writer used by print and poall.
func WithOutput(w io.Writer) Option { return func(ip *Interpreter) { ip.out = w } }

// WithRand sets the random source used by random.
func WithRand(r *rand.Rand) Option { return func(ip *Interpreter) { ip.rnd = r } }

// WithSleep replaces the blocking delay used by wait.
func WithSleep(f func(time.Duration)) Option { return func(ip *Interpreter) { ip.sleep = f } }

// WithMaxDepth bounds nested evaluation depth.
func WithMaxDepth(n int) Option {
	return func(ip *Interpreter) {
		if n > 0 {
			ip.maxDepth = n
		}
	}
}

// NewInterpreter builds the registry and the root environment. Unless
// overridden, input is empty, output is os.Stdout.
func NewInterpreter(opts ...Option) *Interpreter {
	ip := &Interpreter{
		reg:      newRegistry(),
		in:       noInput{},
		out:      os.Stdout,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:    time.Sleep,
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(ip)
	}
	ip.Root = NewRootEnv(ip.reg)
	installConstants(ip.Root)
	return ip
}

// installConstants binds the names every session starts with.
func installConstants(root *Env) {
	root.local["pi"] = Num(3.14159)
	// run [code] evaluates a code list once
	root.local["run"] = List([]Value{Words("x"), Words("repeat", "1", ":x")})
}

// Registry returns the builtin registry.
func (ip *Interpreter) Registry() *Registry { return ip.reg }

// RegisterNative adds a host builtin. Its name becomes reserved.
func (ip *Interpreter) RegisterNative(name string, params []string, impl NativeImpl) {
	ip.reg.Register(name, params, impl)
}

// NewLexer returns a lexer whose arity lookups see the root environment.
func (ip *Interpreter) NewLexer() *Lexer { return NewLexer(ip.Root) }

// Accept evaluates the statement held by lx in the root environment and
// resets lx.
func (ip *Interpreter) Accept(lx *Lexer) (out Value, err error) {
	toks := lx.Tokens()
	lx.Reset()
	if glog.V(2) {
		glog.Infof("mua: accept %d tokens", len(toks))
	}

	ev := &evaluator{ip: ip, env: ip.Root, toks: toks}
	defer func() {
		ip.Root.clearReturn()
		if r := recover(); r != nil {
			out, err = Absent, recoverError(r)
		}
	}()
	return ev.block(), nil
}

// recoverError converts a recovered panic into an error value.
func recoverError(r interface{}) error {
	switch sig := r.(type) {
	case *Error:
		return sig
	case *LexError:
		return sig
	case error:
		return &Error{Kind: RuntimeError, Msg: sig.Error(), Err: sig}
	default:
		return &Error{Kind: RuntimeError, Msg: fmt.Sprintf("runtime panic: %v", r)}
	}
}

// EvalSource feeds src through the statement acceptor and returns the value
// of the last statement. The first failure stops evaluation.
func (ip *Interpreter) EvalSource(src string) (Value, error) {
	last := Absent
	err := forEachStatement(NewLineReader(strings.NewReader(src)), ip.NewLexer(),
		func(lx *Lexer) error {
			v, err := ip.Accept(lx)
			if err != nil {
				return err
			}
			last = v
			return nil
		}, nil)
	return last, err
}

// Run reads statements from the input source until it is exhausted. After
// a failing statement, onErr is consulted: returning true continues with
// the next statement. A nil onErr stops at the first failure.
func (ip *Interpreter) Run(onErr func(error) bool) error {
	return forEachStatement(ip.in, ip.NewLexer(),
		func(lx *Lexer) error {
			_, err := ip.Accept(lx)
			return err
		}, onErr)
}

// forEachStatement appends lines from src to lx and calls fn whenever lx
// holds a complete statement. Lex errors and errors from fn go to onErr.
func forEachStatement(src LineSource, lx *Lexer, fn func(*Lexer) error, onErr func(error) bool) error {
	handle := func(err error) error {
		if onErr != nil && onErr(err) {
			return nil
		}
		return err
	}
	for {
		line, err := src.ReadLine()
		if err == io.EOF {
			if !lx.IsComplete() {
				lx.Reset()
				return handle(&Error{Kind: ParseError, Msg: "incomplete statement at end of input"})
			}
			return nil
		}
		if err != nil {
			return &Error{Kind: IOError, Msg: "read input", Err: err}
		}
		if err := lx.AppendLine(line); err != nil {
			if err := handle(err); err != nil {
				return err
			}
			continue
		}
		if !lx.IsComplete() {
			continue
		}
		if len(lx.Tokens()) == 0 {
			lx.Reset()
			continue
		}
		if err := fn(lx); err != nil {
			lx.Reset()
			if err := handle(err); err != nil {
				return err
			}
		}
	}
}

////////////////////////////////////////////////////////////////////////////////
//                                  CALL CONTEXT
////////////////////////////////////////////////////////////////////////////////

// CallCtx is handed to native builtins. It exposes the calling environment,
// the interpreter's I/O capabilities and helpers that raise typed errors.
type CallCtx struct {
	ev *evaluator
	fn *Builtin
}

// Env is the environment the call happens in.
func (c *CallCtx) Env() *Env { return c.ev.env }

// Interp is the interpreter running the call.
func (c *CallCtx) Interp() *Interpreter { return c.ev.ip }

// Out is the program output.
func (c *CallCtx) Out() io.Writer { return c.ev.ip.out }

// ReadLine consumes one line of program input.
func (c *CallCtx) ReadLine() string {
	line, err := c.ev.ip.in.ReadLine()
	if err != nil {
		failWrap(IOError, err, "%s: no input", c.fn.name)
	}
	return line
}

// RunCode block-evaluates a code list in the calling environment.
func (c *CallCtx) RunCode(code Value) Value { return c.ev.runCode(code) }

// Fail aborts the statement with an error of kind k.
func (c *CallCtx) Fail(k ErrorKind, format string, args ...interface{}) {
	fail(k, "%s: %s", c.fn.name, fmt.Sprintf(format, args...))
}

// Number coerces args[i] to a number or fails with a TypeError.
func (c *CallCtx) Number(args []Value, i int) float64 {
	f, ok := args[i].ToNumber()
	if !ok {
		c.Fail(TypeError, "%s must be a number, got %s %q", c.fn.params[i], args[i].Tag, args[i].String())
	}
	return f
}

// Name requires args[i] to be a Word and returns its text.
func (c *CallCtx) Name(args []Value, i int) string {
	if args[i].Tag != VTWord {
		c.Fail(TypeError, "%s must be a word, got %s", c.fn.params[i], args[i].Tag)
	}
	return args[i].Text()
}

// Bool requires args[i] to be a Boolean.
func (c *CallCtx) Bool(args []Value, i int) bool {
	if args[i].Tag != VTBool {
		c.Fail(TypeError, "%s must be a bool, got %s", c.fn.params[i], args[i].Tag)
	}
	return args[i].Data.(bool)
}

// List requires args[i] to be a List.
func (c *CallCtx) List(args []Value, i int) []Value {
	if args[i].Tag != VTList {
		c.Fail(TypeError, "%s must be a list, got %s", c.fn.params[i], args[i].Tag)
	}
	return args[i].Elems()
}

// Present rejects Absent arguments.
func (c *CallCtx) Present(args []Value) {
	for i, a := range args {
		if a.IsAbsent() {
			c.Fail(TypeError, "%s has no value", c.fn.params[i])
		}
	}
}

// check turns an error returned by an Env method into a statement failure.
func (c *CallCtx) check(err error) {
	if err == nil {
		return
	}
	if e, ok := err.(*Error); ok {
		fail(e.Kind, "%s: %s", c.fn.name, e.Msg)
	}
	panic(err)
}
