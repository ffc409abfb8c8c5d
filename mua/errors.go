// errors.go: error kinds and caret-snippet rendering
//
// Every failure aborts the current top-level statement. Two shapes exist:
//
//   - *LexError, produced by the lexer while appending text. It carries a
//     1-based Line/Col so the driver can point at the offending character.
//   - *Error, produced by the evaluator and builtins. Kind classifies it
//     (parse, type, name, io, runtime); Err keeps an underlying Go error
//     when there is one (file I/O, input source).
//
// Inside the evaluator errors travel as panics (see fail); the statement
// acceptor recovers them and hands a plain Go error back to the caller.
// WrapErrorWithSource turns a *LexError into a readable multi-line snippet:
//
//	LEXICAL ERROR at 2:7: unexpected character '#'
//
//	   1 | make "a 6
//	   2 | print #a
//	     |       ^
package mua

import (
	"fmt"
	"strings"
)

// ErrorKind classifies evaluation failures.
type ErrorKind int

const (
	ParseError ErrorKind = iota
	TypeError
	NameError
	IOError
	RuntimeError
)

func (k ErrorKind) String() string {
	switch k {
	case ParseError:
		return "PARSE ERROR"
	case TypeError:
		return "TYPE ERROR"
	case NameError:
		return "NAME ERROR"
	case IOError:
		return "IO ERROR"
	default:
		return "RUNTIME ERROR"
	}
}

// Error is an evaluation failure.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// LexError is a tokenisation failure. Line and Col are 1-based.
type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k ErrorKind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == k
}

// fail raises an evaluation error; recovered by the statement acceptor.
func fail(k ErrorKind, format string, args ...interface{}) {
	panic(&Error{Kind: k, Msg: fmt.Sprintf(format, args...)})
}

func failWrap(k ErrorKind, err error, format string, args ...interface{}) {
	panic(&Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err})
}

/* ===========================
   caret snippets
   =========================== */

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src when err is a *LexError; any other error is returned as is.
func WrapErrorWithSource(err error, src string) error {
	if e, ok := err.(*LexError); ok {
		return fmt.Errorf("%s", prettyErrorString(src, "LEXICAL ERROR", e.Line, e.Col, e.Msg))
	}
	return err
}

// prettyErrorString shows at most one line of context on each side.
// Coordinates are 1-based and clamped to the source.
func prettyErrorString(src, header string, line, col int, msg string) string {
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if line > len(lines) {
		line = len(lines)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lines[line-1])
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
