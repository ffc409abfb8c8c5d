package mua

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"
)

// --- helpers ---------------------------------------------------------------

// newIP builds an interpreter with captured output, a fixed random seed and
// a no-op sleep. input feeds read/readlist (and Run).
func newIP(input string, opts ...Option) (*Interpreter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	base := []Option{
		WithOutput(out),
		WithInput(NewLineReader(strings.NewReader(input))),
		WithRand(rand.New(rand.NewSource(1))),
		WithSleep(func(time.Duration) {}),
	}
	return NewInterpreter(append(base, opts...)...), out
}

func mustEval(t *testing.T, ip *Interpreter, src string) Value {
	t.Helper()
	v, err := ip.EvalSource(src)
	if err != nil {
		t.Fatalf("eval error: %v\nsource:\n%s", err, src)
	}
	return v
}

// output runs src in a fresh interpreter and returns what it printed.
func output(t *testing.T, src string) string {
	t.Helper()
	ip, out := newIP("")
	mustEval(t, ip, src)
	return out.String()
}

func wantOutput(t *testing.T, src, want string) {
	t.Helper()
	if got := output(t, src); got != want {
		t.Fatalf("source:\n%s\nwant output %q, got %q", src, want, got)
	}
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	ip, _ := newIP("")
	_, err := ip.EvalSource(src)
	if err == nil {
		t.Fatalf("expected error for:\n%s", src)
	}
	return err
}

func wantKind(t *testing.T, src string, k ErrorKind) {
	t.Helper()
	err := evalErr(t, src)
	if !IsKind(err, k) {
		t.Fatalf("want %s for %q, got %v", k, src, err)
	}
}

func wantNum(t *testing.T, v Value, f float64) {
	t.Helper()
	if v.Tag != VTNum || v.Data.(float64) != f {
		t.Fatalf("want num %g, got %#v", f, v)
	}
}

// --- core properties --------------------------------------------------------

func Test_Interpreter_Make_Then_Print_Deref(t *testing.T) {
	wantOutput(t, "make \"a 6\nprint :a", "6.0\n")
}

func Test_Interpreter_Thing_Of_Deref_Is_Indirection(t *testing.T) {
	// :b is the word a; thing of it fetches a's value
	wantOutput(t, "make \"a 6\nmake \"b \"a\nprint thing :b", "6.0\n")
	wantOutput(t, "make \"b \"a\nprint :b", "a\n")
}

func Test_Interpreter_Statement_Across_Two_Chunks(t *testing.T) {
	ip, out := newIP("")
	lx := ip.NewLexer()

	if err := lx.AppendLine("print add 1"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if lx.IsComplete() {
		t.Fatalf("statement should be incomplete, pending=%d", lx.Pending())
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should have been printed yet, got %q", out.String())
	}

	if err := lx.AppendLine("2"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if !lx.IsComplete() {
		t.Fatalf("statement should be complete")
	}
	if _, err := ip.Accept(lx); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if got := out.String(); got != "3.0\n" {
		t.Fatalf("want 3.0, got %q", got)
	}
	if len(lx.Tokens()) != 0 {
		t.Fatalf("Accept should reset the lexer")
	}
}

func Test_Interpreter_Repeat_Counter_From_Unbound(t *testing.T) {
	ip, _ := newIP("")
	mustEval(t, ip, `repeat 3 [ make "x add :x 1 ]`)
	wantNum(t, ip.Root.Thing("x"), 3)
}

func Test_Interpreter_Print_Renders(t *testing.T) {
	wantOutput(t, `print 6`, "6.0\n")
	wantOutput(t, `print 2.5`, "2.5\n")
	wantOutput(t, `print "hello`, "hello\n")
	wantOutput(t, `print [a [b c] d]`, "a [b c] d\n")
	wantOutput(t, `print true`, "true\n")
	wantOutput(t, `print thing "unbound`, "\n")
}

func Test_Interpreter_Bare_Identifier_Is_Word(t *testing.T) {
	wantOutput(t, `print hello`, "hello\n")
}

func Test_Interpreter_Several_Statements_On_One_Line(t *testing.T) {
	wantOutput(t, `make "a 1 make "b 2 print add :a :b`, "3.0\n")
}

// --- infix -------------------------------------------------------------------

func Test_Interpreter_Infix_Precedence(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{`(1 + 2 * 3)`, 7},
		{`(2 * 3 + 1)`, 7},
		{`(10 - 2 - 3)`, 5},
		{`(8 / 2 / 2)`, 2},
		{`(2 * (3 + 4))`, 14},
		{`(-3 + 5)`, 2},
		{`(- - 4)`, 4},
		{`(7 % 3)`, 1},
		{`(9 / 2)`, 4.5},
		{`(add 1 2 * 3)`, 9},
		{`(:n + 1)`, 1},
	}
	for _, c := range cases {
		ip, _ := newIP("")
		wantNum(t, mustEval(t, ip, c.src), c.want)
	}
}

func Test_Interpreter_Infix_Inside_Prefix_Call(t *testing.T) {
	wantOutput(t, `print add (1 + 2) 3`, "6.0\n")
	wantOutput(t, "print (1 +\n 2)", "3.0\n")
}

func Test_Interpreter_Negation_Outside_Parens(t *testing.T) {
	wantOutput(t, `print -3`, "-3.0\n")
	wantOutput(t, "make \"x 4\nprint -:x", "-4.0\n")
}

func Test_Interpreter_Infix_Errors(t *testing.T) {
	wantKind(t, `print (1 2)`, ParseError)
	wantKind(t, `print (1 + )`, ParseError)
}

// --- user functions ----------------------------------------------------------

func Test_Interpreter_User_Function_Call(t *testing.T) {
	wantOutput(t, "make \"sq [[x] [output mul :x :x]]\nprint sq 5", "25.0\n")
}

func Test_Interpreter_Recursion(t *testing.T) {
	src := `
make "fact [[n] [if lt :n 2 [output 1] [output mul :n fact sub :n 1]]]
print fact 5
`
	wantOutput(t, src, "120.0\n")
}

func Test_Interpreter_Function_Without_Output_Returns_Last_Value(t *testing.T) {
	ip, _ := newIP("")
	v := mustEval(t, ip, "make \"two [[] [add 1 1]]\ntwo")
	wantNum(t, v, 2)
}

func Test_Interpreter_Stop_Ends_Block(t *testing.T) {
	wantOutput(t, "make \"f [[] [print 1 stop print 2]]\nf", "1.0\n")
}

func Test_Interpreter_Output_Does_Not_Leak_Into_Caller(t *testing.T) {
	wantOutput(t, "make \"g [[] [output 3]]\nprint add g 1\nprint 9", "4.0\n9.0\n")
}

func Test_Interpreter_Top_Level_Output_Cleared_Per_Statement(t *testing.T) {
	ip, out := newIP("")
	v := mustEval(t, ip, "output 5")
	wantNum(t, v, 5)
	mustEval(t, ip, "print 1 print 2")
	if got := out.String(); got != "1.0\n2.0\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Interpreter_Scopes_Are_Two_Level(t *testing.T) {
	src := `
make "v 1
make "k [[] [print :v make "v 2 print :v]]
k
print :v
`
	wantOutput(t, src, "1.0\n2.0\n1.0\n")

	// callee never sees the caller's locals
	src = `
make "inner [[] [output isname "q]]
make "outer [[q] [output inner]]
print outer 5
`
	wantOutput(t, src, "false\n")
}

func Test_Interpreter_Export_From_Function(t *testing.T) {
	wantOutput(t, "make \"h [[] [make \"loc 7 export \"loc]]\nh\nprint :loc", "7.0\n")
}

func Test_Interpreter_Repeat_Stops_At_Output(t *testing.T) {
	src := `
make "firstbig [[] [repeat 10 [make "i add :i 1 if gt :i 3 [output :i] []]]]
print firstbig
`
	wantOutput(t, src, "4.0\n")
}

func Test_Interpreter_Run_Constant(t *testing.T) {
	wantOutput(t, `run [print 1]`, "1.0\n")
	wantOutput(t, `print pi`, "3.14159\n")
}

func Test_Interpreter_Max_Depth(t *testing.T) {
	ip, _ := newIP("", WithMaxDepth(50))
	_, err := ip.EvalSource("make \"r [[] [r]]\nr")
	if !IsKind(err, RuntimeError) {
		t.Fatalf("want runtime error, got %v", err)
	}
	// still usable
	wantNum(t, mustEval(t, ip, "add 1 1"), 2)
}

// --- acceptor ----------------------------------------------------------------

func Test_Interpreter_EvalSource_Incomplete_Is_ParseError(t *testing.T) {
	wantKind(t, `print add 1`, ParseError)
	wantKind(t, `print [a b`, ParseError)
}

func Test_Interpreter_Lex_Error_Surfaces(t *testing.T) {
	err := evalErr(t, `print )`)
	if _, ok := err.(*LexError); !ok {
		t.Fatalf("want *LexError, got %T %v", err, err)
	}
}

func Test_Interpreter_Usable_After_Error(t *testing.T) {
	ip, out := newIP("")
	if _, err := ip.EvalSource(`erase "nope`); err == nil {
		t.Fatalf("expected error")
	}
	mustEval(t, ip, `print 1`)
	if out.String() != "1.0\n" {
		t.Fatalf("got %q", out.String())
	}
}

func Test_Interpreter_Run_Shares_Input_With_Read(t *testing.T) {
	ip, out := newIP("make \"d read\n1234\nprint :d\nprint eq :d 1234\n")
	if err := ip.Run(nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "1234\ntrue\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Interpreter_Run_Continues_When_Asked(t *testing.T) {
	ip, out := newIP("print 1\nerase \"nope\nprint 2\n")
	var errs []error
	err := ip.Run(func(err error) bool {
		errs = append(errs, err)
		return true
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(errs) != 1 || !IsKind(errs[0], NameError) {
		t.Fatalf("want one name error, got %v", errs)
	}
	if got := out.String(); got != "1.0\n2.0\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Interpreter_Run_Stops_On_First_Error(t *testing.T) {
	ip, out := newIP("print 1\nprint add \"x 1\nprint 2\n")
	err := ip.Run(nil)
	if !IsKind(err, TypeError) {
		t.Fatalf("want type error, got %v", err)
	}
	if got := out.String(); got != "1.0\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Interpreter_RegisterNative(t *testing.T) {
	ip, out := newIP("")
	ip.RegisterNative("twice", []string{"x"}, func(ctx *CallCtx, args []Value) Value {
		return Num(2 * ctx.Number(args, 0))
	})
	mustEval(t, ip, `print twice 21`)
	if out.String() != "42.0\n" {
		t.Fatalf("got %q", out.String())
	}
	_, err := ip.EvalSource(`make "twice 1`)
	if !IsKind(err, NameError) {
		t.Fatalf("host builtin name should be reserved, got %v", err)
	}
}
