package sema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
	"github.com/pyjs-lang/pyjs/frontend/parser"
	"github.com/pyjs-lang/pyjs/frontend/sema"
)

func parseTree(t *testing.T, code string) *ast.Program {
	t.Helper()
	toks, err := lexer.Lex("test.pyjs", code)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	prog, err := parser.ParseWithOptions(toks, parser.Options{SkipResolve: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return prog
}

func resolveOK(t *testing.T, code string, globals ...string) *ast.Program {
	t.Helper()
	prog := parseTree(t, code)
	if err := sema.Resolve(prog, sema.Options{Globals: globals}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	return prog
}

func resolveErr(t *testing.T, code string, globals ...string) *common.Error {
	t.Helper()
	prog := parseTree(t, code)
	err := sema.Resolve(prog, sema.Options{Globals: globals})
	if err == nil {
		t.Fatalf("Resolve(%q) succeeded, want error", code)
	}
	if err.Stage != common.StageParse {
		t.Errorf("stage = %v, want %v", err.Stage, common.StageParse)
	}
	return err
}

// refs collects the resolution of every name reference, keyed by name.
func refs(prog *ast.Program) map[string][]ast.RefKind {
	out := make(map[string][]ast.RefKind)
	ast.Inspect(prog, func(n ast.Node) bool {
		if e, ok := n.(ast.Expr); ok && e.Kind() == ast.ExprKindName {
			name := e.Name()
			out[name.Id.Raw] = append(out[name.Id.Raw], name.Ref)
		}
		return true
	})
	return out
}

func findDef(prog *ast.Program, name string) *ast.FunctionDef {
	var found *ast.FunctionDef
	ast.Inspect(prog, func(n ast.Node) bool {
		if def, ok := n.(*ast.FunctionDef); ok && def.Name.Raw == name {
			found = def
		}
		return found == nil
	})
	return found
}

func TestRefKinds(t *testing.T) {
	prog := resolveOK(t, `import os
from m import helper
x = 1
def f(a):
    y = a + x
    print(y)
    console.log(y)
    return helper(os)
`)
	got := refs(prog)
	want := map[string][]ast.RefKind{
		"x":       {ast.RefGlobal, ast.RefGlobal},
		"a":       {ast.RefLocal},
		"y":       {ast.RefLocal, ast.RefLocal, ast.RefLocal},
		"print":   {ast.RefBuiltin},
		"console": {ast.RefHost},
		"helper":  {ast.RefImport},
		"os":      {ast.RefImport},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("refs mismatch (-want +got):\n%s", diff)
	}
}

func TestHoisting(t *testing.T) {
	prog := resolveOK(t, `import os
x = 1
def f(a):
    y = a
    for i in range(3):
        z = i
    return y
class C:
    pass
`)
	if diff := cmp.Diff([]string{"x"}, prog.Locals); diff != "" {
		t.Errorf("module locals mismatch (-want +got):\n%s", diff)
	}
	f := findDef(prog, "f")
	if diff := cmp.Diff([]string{"y", "i", "z"}, f.Locals); diff != "" {
		t.Errorf("function locals mismatch (-want +got):\n%s", diff)
	}
	if !f.AsDeclaration {
		t.Error("f should be emitted as a declaration")
	}
}

func TestDeclarationNeedsSingleBinding(t *testing.T) {
	prog := resolveOK(t, `def dec(fn):
    return fn
def f():
    pass
f = 2
@dec
def g():
    pass
`)
	if findDef(prog, "f").AsDeclaration {
		t.Error("reassigned f must not be a declaration")
	}
	if findDef(prog, "g").AsDeclaration {
		t.Error("decorated g must not be a declaration")
	}
	if !findDef(prog, "dec").AsDeclaration {
		t.Error("dec should be a declaration")
	}
	if diff := cmp.Diff([]string{"f", "g"}, prog.Locals); diff != "" {
		t.Errorf("module locals mismatch (-want +got):\n%s", diff)
	}
}

func TestModuleOrder(t *testing.T) {
	err := resolveErr(t, "print(x)\nx = 1\n")
	if err.Kind != common.ErrUndefinedVariable {
		t.Errorf("kind = %v, want %v", err.Kind, common.ErrUndefinedVariable)
	}
	if !strings.Contains(err.Message, "before its definition") {
		t.Errorf("message = %q", err.Message)
	}
	if err.Line() != 1 || err.Column() != 7 {
		t.Errorf("position = %d:%d, want 1:7", err.Line(), err.Column())
	}
}

func TestFunctionsSeeLaterModuleNames(t *testing.T) {
	resolveOK(t, `def f():
    return g()
def g():
    return 1
`)
}

func TestBranchBindings(t *testing.T) {
	resolveOK(t, `if True:
    y = 1
else:
    y = 2
print(y)
`)
}

func TestUndefinedVariable(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"in function", "def f():\n    return zzz\n"},
		{"class scope hidden from methods", "class A:\n    k = 1\n    def m(self):\n        return k\n"},
		{"comprehension variable does not leak", "ys = [i for i in range(3)]\nprint(i)\n"},
		{"host global not configured", "React.createElement(1)\n"},
		{"export of unbound name", "export y\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := resolveErr(t, tt.code)
			if err.Kind != common.ErrUndefinedVariable {
				t.Errorf("kind = %v, want %v (%s)", err.Kind, common.ErrUndefinedVariable, err.Message)
			}
		})
	}
}

func TestConfiguredGlobals(t *testing.T) {
	prog := resolveOK(t, "React.createElement(1)\n", "React")
	if diff := cmp.Diff(map[string][]ast.RefKind{"React": {ast.RefHost}}, refs(prog)); diff != "" {
		t.Errorf("refs mismatch (-want +got):\n%s", diff)
	}
}

func TestWalrusBindsOutsideComprehension(t *testing.T) {
	prog := resolveOK(t, `def f(xs):
    ys = [y for x in xs if (y := x)]
    return y
`)
	if diff := cmp.Diff([]string{"ys", "y"}, findDef(prog, "f").Locals); diff != "" {
		t.Errorf("locals mismatch (-want +got):\n%s", diff)
	}
}

func TestNonlocal(t *testing.T) {
	prog := resolveOK(t, `def f():
    n = 0
    def g():
        nonlocal n
        n += 1
    return g
`)
	if diff := cmp.Diff([]string{"n"}, findDef(prog, "f").Locals); diff != "" {
		t.Errorf("f locals mismatch (-want +got):\n%s", diff)
	}
	if got := findDef(prog, "g").Locals; len(got) != 0 {
		t.Errorf("g locals = %v, want none", got)
	}

	err := resolveErr(t, `def f():
    def g():
        nonlocal z
        z = 1
`)
	if err.Kind != common.ErrInvalidScopeDeclaration {
		t.Errorf("kind = %v, want %v", err.Kind, common.ErrInvalidScopeDeclaration)
	}
}

func TestGlobal(t *testing.T) {
	prog := resolveOK(t, `def set_it():
    global counter
    counter = 1
def get_it():
    return counter
`)
	if diff := cmp.Diff([]string{"counter"}, prog.Locals); diff != "" {
		t.Errorf("module locals mismatch (-want +got):\n%s", diff)
	}
	if got := findDef(prog, "set_it").Locals; len(got) != 0 {
		t.Errorf("set_it locals = %v, want none", got)
	}
}

func TestExports(t *testing.T) {
	prog := resolveOK(t, `x = 1
export x
export def f():
    pass
export class C:
    pass
`)
	if diff := cmp.Diff([]string{"x", "f", "C"}, prog.Exports); diff != "" {
		t.Errorf("exports mismatch (-want +got):\n%s", diff)
	}
}

func TestSymbols(t *testing.T) {
	prog := resolveOK(t, `def add(a, b):
    return a + b
add(1, 2)
`)
	var add *ast.Symbol
	for _, sym := range prog.Symbols {
		if sym.Name == "add" {
			add = sym
		}
	}
	if add == nil {
		t.Fatal("no symbol for add")
	}
	if add.Kind != ast.SymFunction {
		t.Errorf("kind = %v, want function", add.Kind)
	}
	if add.Detail != "def add(a, b)" {
		t.Errorf("detail = %q", add.Detail)
	}
	if len(add.Refs) != 2 {
		t.Errorf("refs = %d, want 2 (definition and call)", len(add.Refs))
	}
}
