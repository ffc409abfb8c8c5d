package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/peterh/liner"

	"github.com/daios-ai/mua/internal/config"
	"github.com/daios-ai/mua/mua"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isolate points $HOME at an empty directory so no user config leaks in.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func runCmd(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := cmdRun(args, strings.NewReader(stdin), &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	prog := writeFile(t, dir, "prog.mua", "make \"d read\nprint add :d 1\n")
	code, out, errOut := runCmd(t, "41\n", prog)
	if code != 0 || out != "42.0\n" {
		t.Fatalf("code=%d out=%q err=%q", code, out, errOut)
	}
}

func TestRunStdinSharesStream(t *testing.T) {
	isolate(t)
	code, out, errOut := runCmd(t, "make \"d read\n1234\nprint :d\n", "-")
	if code != 0 || out != "1234\n" {
		t.Fatalf("code=%d out=%q err=%q", code, out, errOut)
	}
	code, out, _ = runCmd(t, "print sub 5\n2\n")
	if code != 0 || out != "3.0\n" {
		t.Fatalf("code=%d out=%q", code, out)
	}
}

func TestRunErrorExitsNonZero(t *testing.T) {
	isolate(t)
	code, out, errOut := runCmd(t, "print 1\nerase \"nope\nprint 2\n")
	if code != 1 || out != "1.0\n" || !strings.Contains(errOut, "NAME ERROR") {
		t.Fatalf("code=%d out=%q err=%q", code, out, errOut)
	}
}

func TestRunPreloadAndMaxDepth(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, dir, "lib.mua", "make \"sq [[x] [output mul :x :x]]\nmake \"loop [[] [loop]]\n")
	cfg := writeFile(t, dir, "mua.yaml", "max_depth: 20\npreload: [lib.mua]\n")

	code, out, errOut := runCmd(t, "print sq 4\n", "--config", cfg)
	if code != 0 || out != "16.0\n" {
		t.Fatalf("code=%d out=%q err=%q", code, out, errOut)
	}
	code, _, errOut = runCmd(t, "loop\n", "--config", cfg)
	if code != 1 || !strings.Contains(errOut, "depth") {
		t.Fatalf("code=%d err=%q", code, errOut)
	}
}

func TestRunBadArgs(t *testing.T) {
	isolate(t)
	if code, _, _ := runCmd(t, "", "a", "b"); code != 2 {
		t.Fatalf("want usage exit 2, got %d", code)
	}
	if code, _, _ := runCmd(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml")); code != 1 {
		t.Fatalf("missing explicit config should fail, got %d", code)
	}
	if code, _, errOut := runCmd(t, "", filepath.Join(t.TempDir(), "missing.mua")); code != 1 || !strings.Contains(errOut, "IO ERROR") {
		t.Fatalf("missing program: code=%d err=%q", code, errOut)
	}
}

// --- repl ---------------------------------------------------------------------

// scripted plays back lines (or errors) and records prompts and history.
type scripted struct {
	lines   []interface{}
	prompts []string
	history []string
}

func (s *scripted) Prompt(p string) (string, error) {
	s.prompts = append(s.prompts, p)
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	next := s.lines[0]
	s.lines = s.lines[1:]
	if err, ok := next.(error); ok {
		return "", err
	}
	return next.(string), nil
}

func (s *scripted) AppendHistory(item string) { s.history = append(s.history, item) }

func startRepl(lines ...interface{}) (*scripted, string, string) {
	sc := &scripted{lines: lines}
	cfg := config.Default()
	cfg.Color = false
	var out, errOut bytes.Buffer
	ip := mua.NewInterpreter(mua.WithInput(linerInput{sc}), mua.WithOutput(&out))
	replLoop(ip, sc, &out, &errOut, cfg)
	return sc, out.String(), errOut.String()
}

func TestReplMultiLineStatement(t *testing.T) {
	sc, out, errOut := startRepl("print add 1", "2", ":quit")
	if out != "3.0\n" || errOut != "" {
		t.Fatalf("out=%q err=%q", out, errOut)
	}
	want := []string{"mua> ", "...  ", "mua> "}
	if !reflect.DeepEqual(sc.prompts, want) {
		t.Fatalf("prompts %q, want %q", sc.prompts, want)
	}
	if !reflect.DeepEqual(sc.history, []string{"print add 1 2"}) {
		t.Fatalf("history %q", sc.history)
	}
}

func TestReplErrorsDoNotStopLoop(t *testing.T) {
	_, out, errOut := startRepl("print #", "erase \"x", "print 1")
	if out != "1.0\n\n" {
		t.Fatalf("out=%q", out)
	}
	if !strings.Contains(errOut, "LEXICAL ERROR at 1:7") || !strings.Contains(errOut, "^") {
		t.Fatalf("lex error not reported with caret: %q", errOut)
	}
	if !strings.Contains(errOut, "NAME ERROR") {
		t.Fatalf("name error not reported: %q", errOut)
	}
}

func TestReplResetAndCtrlC(t *testing.T) {
	_, out, _ := startRepl("print add 1", ":reset", "print 5", "print add", liner.ErrPromptAborted, "print 6", ":quit")
	if out != "5.0\n6.0\n" {
		t.Fatalf("out=%q", out)
	}
}

func TestReplReadUsesPrompter(t *testing.T) {
	_, out, errOut := startRepl("make \"n read", "hello", "print :n", ":quit")
	if out != "hello\n" || errOut != "" {
		t.Fatalf("out=%q err=%q", out, errOut)
	}
}
