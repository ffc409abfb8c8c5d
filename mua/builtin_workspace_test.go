package mua

import (
	"testing"
)

func Test_Builtin_Workspace_Poall_Sorted(t *testing.T) {
	wantOutput(t, "make \"b 1\nmake \"a 2\npoall", "a\nb\npi\nrun\n")
}

func Test_Builtin_Workspace_Poall_In_Function(t *testing.T) {
	wantOutput(t, "make \"g 1\nmake \"f [[x y] [poall]]\nf 1 2", "x\ny\n")
}

func Test_Builtin_Workspace_Erall(t *testing.T) {
	wantOutput(t, "make \"a 1\nerall\nprint isname \"a\nprint isname \"pi", "false\nfalse\n")
	// builtins survive
	wantOutput(t, "erall\nprint add 1 1", "2.0\n")
}

func Test_Builtin_Names(t *testing.T) {
	wantOutput(t, `make "x 1 print isname "x print isname "print print isname "nope print isname 5`,
		"true\ntrue\nfalse\nfalse\n")
	wantOutput(t, "make \"x 1\nerase \"x\nprint isname \"x", "false\n")
	wantKind(t, `erase "nope`, NameError)
	wantKind(t, `make "print 1`, NameError)
	wantKind(t, `make "1a 2`, NameError)
	wantKind(t, `make "x thing "nothing`, TypeError)
	wantKind(t, `make 5 1`, TypeError)
	wantKind(t, `thing [a]`, TypeError)
	wantKind(t, `export "nothing`, NameError)
}

func Test_Builtin_Names_Parameter_Cannot_Be_Reserved(t *testing.T) {
	wantKind(t, "make \"bad [[print] [output 1]]\nbad 1", NameError)
}
