// lexer.go: incremental, arity-aware tokeniser.
//
// Text arrives in chunks (usually one physical line at a time). Each Append
// resumes scanning where the previous one stopped; the end of the
// accumulated text always terminates the token being scanned.
//
// After every append the lexer can say whether the text seen so far forms a
// complete statement (IsComplete). Completeness needs three counters at
// zero:
//
//   - pending: operands still owed to function names already seen. Every
//     identifier that names a function (according to the ArityLookup, i.e.
//     the live symbol table) adds its arity; every operand-starting token
//     pays one back.
//   - bracket depth: open '[' lists.
//   - paren depth: open '(' expression groups.
//
// Tokens inside a list or expression group never touch the outer pending
// count; the count is parked when the outermost group opens and restored
// when it closes.
package mua

import (
	"fmt"
	"strings"
)

// TokenType represents the kind of token.
type TokenType int

const (
	EOF     TokenType = iota
	INTEGER           // 12, -3
	FLOAT             // 1.5, 2.
	WORD              // "abc, or any raw word inside [ ]
	BOOLEAN           // true, false
	OPERATOR          // + - * / % ( )
	IDENT             // letter-first name
	DEREF             // :name (Lexeme holds the name)
	BRACKET           // [ ]
)

var tokenNames = [...]string{
	EOF:      "EOF",
	INTEGER:  "INTEGER",
	FLOAT:    "FLOAT",
	WORD:     "WORD",
	BOOLEAN:  "BOOLEAN",
	OPERATOR: "OPERATOR",
	IDENT:    "IDENT",
	DEREF:    "DEREF",
	BRACKET:  "BRACKET",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a lexical token. Line and Col are 1-based.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// ArityLookup is the lexer's view of the symbol table.
type ArityLookup interface {
	FunctionArity(name string) (int, bool)
}

// Lexer scans MUA source incrementally.
type Lexer struct {
	lookup ArityLookup

	src  string
	cur  int // next byte to scan
	line int // 1-based
	col  int // 0-based column of cur

	tokens []Token

	pending      int
	bracketDepth int
	parenDepth   int
	parked       int // outer pending count while a paren group is open

	tokLine, tokCol int
}

// NewLexer creates an empty lexer that consults lookup for function arity.
// A nil lookup treats every identifier as a plain word.
func NewLexer(lookup ArityLookup) *Lexer {
	return &Lexer{lookup: lookup, line: 1}
}

// Append adds chunk to the source and tokenises it. On error the lexer is
// reset, discarding the unfinished statement.
func (l *Lexer) Append(chunk string) error {
	l.src += chunk
	for !l.isAtEnd() {
		if err := l.scanToken(); err != nil {
			l.Reset()
			return err
		}
	}
	return nil
}

// AppendLine appends one physical line.
func (l *Lexer) AppendLine(line string) error { return l.Append(line + "\n") }

// IsComplete reports whether the accumulated text is a complete statement.
func (l *Lexer) IsComplete() bool {
	return l.pending == 0 && l.bracketDepth == 0 && l.parenDepth == 0
}

// Pending is the number of operands still owed to function calls.
func (l *Lexer) Pending() int { return l.pending }

// Tokens returns the tokens scanned since the last Reset.
func (l *Lexer) Tokens() []Token { return l.tokens }

// Source returns the text appended since the last Reset.
func (l *Lexer) Source() string { return l.src }

// Reset discards all text, tokens and counters.
func (l *Lexer) Reset() {
	*l = Lexer{lookup: l.lookup, line: 1}
}

// Tokenize scans a complete source text in one go.
func Tokenize(src string, lookup ArityLookup) ([]Token, error) {
	l := NewLexer(lookup)
	if err := l.Append(src); err != nil {
		return nil, err
	}
	return l.Tokens(), nil
}

// IsValidName reports whether s matches the identifier grammar
// [A-Za-z][A-Za-z0-9_]*.
func IsValidName(s string) bool {
	if s == "" || !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return true
}

// ----- character classes -----

func isDigit(b byte) bool     { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool     { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isIdentChar(b byte) bool { return isAlpha(b) || isDigit(b) || b == '_' }
func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
func isBracket(b byte) bool { return b == '[' || b == ']' }
func isOpChar(b byte) bool  { return strings.IndexByte("+-*/%()", b) >= 0 }

// isDelimiter: what may legally follow a number or identifier.
func isDelimiter(b byte) bool {
	return isOpChar(b) || isBracket(b) || b == ':' || isBlank(b)
}

// ----- cursor helpers -----

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) peekN(n int) (byte, bool) {
	if l.cur+n >= len(l.src) {
		return 0, false
	}
	return l.src[l.cur+n], true
}

func (l *Lexer) advance() byte {
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

// atDelimiter: end of text counts as a delimiter.
func (l *Lexer) atDelimiter() bool {
	b, ok := l.peek()
	return !ok || isDelimiter(b)
}

func (l *Lexer) mark() { l.tokLine, l.tokCol = l.line, l.col+1 }

func (l *Lexer) addToken(tt TokenType, lex string) {
	l.tokens = append(l.tokens, Token{Type: tt, Lexeme: lex, Line: l.tokLine, Col: l.tokCol})
}

func (l *Lexer) err(format string, args ...interface{}) error {
	return &LexError{Line: l.tokLine, Col: l.tokCol, Msg: fmt.Sprintf(format, args...)}
}

// operand pays one owed argument. Tokens inside a list or an expression
// group belong to that group, not to the outer statement.
func (l *Lexer) operand() {
	if l.bracketDepth > 0 || l.parenDepth > 0 {
		return
	}
	if l.pending > 0 {
		l.pending--
	}
}

// ----- main scanner -----

func (l *Lexer) scanToken() error {
	l.mark()
	ch, _ := l.peek()

	switch {
	case isBracket(ch):
		return l.scanBracket()
	case isBlank(ch):
		for b, ok := l.peek(); ok && isBlank(b); b, ok = l.peek() {
			l.advance()
		}
		return nil
	case ch == '/' && l.nextIs('/'):
		for b, ok := l.peek(); ok && b != '\n'; b, ok = l.peek() {
			l.advance()
		}
		return nil
	case l.bracketDepth > 0:
		l.addToken(WORD, l.scanRawWord())
		return nil
	case ch == '"':
		l.advance()
		l.operand()
		l.addToken(WORD, l.scanRawWord())
		return nil
	case ch == ':':
		return l.scanDeref()
	case isOpChar(ch) && (l.parenDepth > 0 || ch == '('):
		return l.scanOperator()
	case isDigit(ch) || (l.parenDepth == 0 && (ch == '+' || ch == '-')):
		return l.scanNumber()
	case isAlpha(ch):
		return l.scanIdentifier()
	case ch == ')':
		return l.err("unmatched ')'")
	}
	return l.err("unexpected character %q", ch)
}

func (l *Lexer) nextIs(b byte) bool {
	n, ok := l.peekN(1)
	return ok && n == b
}

func (l *Lexer) scanBracket() error {
	ch := l.advance()
	if ch == '[' {
		l.operand()
		l.bracketDepth++
		l.addToken(BRACKET, "[")
		return nil
	}
	if l.bracketDepth == 0 {
		return l.err("unmatched ']'")
	}
	l.bracketDepth--
	l.addToken(BRACKET, "]")
	return nil
}

// scanRawWord reads up to whitespace, a bracket or the end of text.
func (l *Lexer) scanRawWord() string {
	start := l.cur
	for b, ok := l.peek(); ok && !isBlank(b) && !isBracket(b); b, ok = l.peek() {
		l.advance()
	}
	return l.src[start:l.cur]
}

func (l *Lexer) scanDeref() error {
	l.advance() // ':'
	start := l.cur
	for b, ok := l.peek(); ok && isIdentChar(b); b, ok = l.peek() {
		l.advance()
	}
	if l.cur == start {
		return l.err("expected a name after ':'")
	}
	l.operand()
	l.addToken(DEREF, l.src[start:l.cur])
	return nil
}

func (l *Lexer) scanOperator() error {
	ch := l.advance()
	switch ch {
	case '(':
		if l.parenDepth == 0 {
			l.operand()
			l.parked, l.pending = l.pending, 0
		}
		l.parenDepth++
	case ')':
		l.parenDepth--
		if l.parenDepth == 0 {
			l.pending = l.parked
		}
	}
	l.addToken(OPERATOR, string(ch))
	return nil
}

// scanNumber: optional sign, digits, at most one '.', then a delimiter.
func (l *Lexer) scanNumber() error {
	start := l.cur
	if ch, _ := l.peek(); ch == '+' || ch == '-' {
		l.advance()
		if b, ok := l.peek(); !ok || !isDigit(b) {
			if ch == '-' {
				// bare negation outside parentheses: "-:x"
				l.addToken(OPERATOR, "-")
				return nil
			}
			return l.err("malformed number %q", l.src[start:l.cur])
		}
	}
	l.operand()

	isFloat := false
	for b, ok := l.peek(); ok && (isDigit(b) || b == '.'); b, ok = l.peek() {
		if b == '.' {
			if isFloat {
				return l.err("malformed number %q", l.src[start:l.cur+1])
			}
			isFloat = true
		}
		l.advance()
	}
	if !l.atDelimiter() {
		b, _ := l.peek()
		return l.err("invalid number literal %q", l.src[start:l.cur]+string(b))
	}
	if isFloat {
		l.addToken(FLOAT, l.src[start:l.cur])
	} else {
		l.addToken(INTEGER, l.src[start:l.cur])
	}
	return nil
}

func (l *Lexer) scanIdentifier() error {
	start := l.cur
	for b, ok := l.peek(); ok && isIdentChar(b); b, ok = l.peek() {
		l.advance()
	}
	id := l.src[start:l.cur]
	if !l.atDelimiter() {
		b, _ := l.peek()
		return l.err("invalid identifier %q", id+string(b))
	}
	l.operand()
	if id == "true" || id == "false" {
		l.addToken(BOOLEAN, id)
		return nil
	}
	l.addToken(IDENT, id)
	if l.lookup != nil && l.bracketDepth == 0 && l.parenDepth == 0 {
		if n, ok := l.lookup.FunctionArity(id); ok {
			l.pending += n
		}
	}
	return nil
}
