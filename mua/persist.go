// persist.go: save and load of workspace bindings.
//
// A saved workspace is ordinary MUA source, one statement per binding:
//
//	make "greeting "hello
//	make "n 6.0
//	make "sq [[x] [output mul :x :x]]
//
// Words are written with a leading quote so that a Word whose text happens
// to name a function (or look like a number) reloads as the same Word.
// Loading a file runs it through the same statement acceptor used for
// interactive input, in the environment that called load.
package mua

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golang/glog"
)

// SaveFile writes the local bindings of env to path, sorted by name.
func SaveFile(env *Env, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &Error{Kind: IOError, Msg: "cannot create " + path, Err: err}
	}
	w := bufio.NewWriter(f)
	names := env.LocalNames()
	for _, name := range names {
		v, _ := env.Lookup(name)
		fmt.Fprintln(w, saveLine(name, v))
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return &Error{Kind: IOError, Msg: "cannot write " + path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Kind: IOError, Msg: "cannot close " + path, Err: err}
	}
	glog.V(1).Infof("mua: saved %d bindings to %s", len(names), path)
	return nil
}

func saveLine(name string, v Value) string {
	if v.Tag == VTWord {
		return fmt.Sprintf("make \"%s \"%s", name, v.Text())
	}
	return fmt.Sprintf("make \"%s %s", name, v.String())
}

// LoadFile evaluates the statements of path in the root environment.
func (ip *Interpreter) LoadFile(path string) (err error) {
	ev := &evaluator{ip: ip, env: ip.Root}
	defer func() {
		ip.Root.clearReturn()
		if r := recover(); r != nil {
			err = recoverError(r)
		}
	}()
	ev.load(path)
	return nil
}

// load runs the file in ev's environment. Failures panic like any other
// evaluation error.
func (ev *evaluator) load(path string) {
	f, err := os.Open(path)
	if err != nil {
		failWrap(IOError, err, "load: cannot open %s", path)
	}
	defer f.Close()

	n := 0
	err = forEachStatement(NewLineReader(f), NewLexer(ev.env), func(lx *Lexer) error {
		toks := lx.Tokens()
		lx.Reset()
		sub := &evaluator{ip: ev.ip, env: ev.env, toks: toks, depth: ev.depth}
		sub.block()
		if ev.env.IsRoot() {
			ev.env.clearReturn()
		}
		n++
		return nil
	}, nil)
	if e, ok := err.(*Error); ok {
		failWrap(e.Kind, e.Err, "load %s: %s", path, e.Msg)
	} else if err != nil {
		panic(err)
	}
	glog.V(1).Infof("mua: loaded %d statements from %s", n, path)
}
