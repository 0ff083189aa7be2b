package parser

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

// astOpts compare trees structurally, ignoring positions.
var astOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.IgnoreTypes(common.Span{}),
}

func parseOK(t *testing.T, code string) *ast.Program {
	t.Helper()
	toks, lerr := lexer.Lex("test.pyjs", code)
	if lerr != nil {
		t.Fatalf("Lex(%q) failed: %v", code, lerr)
	}
	prog, err := ParseWithOptions(toks, Options{SkipResolve: true})
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", code, err)
	}
	return prog
}

func resolveOK(t *testing.T, code string) *ast.Program {
	t.Helper()
	toks, lerr := lexer.Lex("test.pyjs", code)
	if lerr != nil {
		t.Fatalf("Lex(%q) failed: %v", code, lerr)
	}
	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", code, err)
	}
	return prog
}

func parseErr(t *testing.T, code string) *common.Error {
	t.Helper()
	toks, lerr := lexer.Lex("test.pyjs", code)
	if lerr != nil {
		t.Fatalf("Lex(%q) failed: %v", code, lerr)
	}
	_, err := Parse(toks)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", code)
	}
	return err
}

// expr returns the value of the single expression statement in code.
func expr(t *testing.T, code string) ast.Expr {
	t.Helper()
	prog := parseOK(t, code)
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	stmt, ok := prog.Body[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", prog.Body[0])
	}
	return stmt.Value
}

func TestDualSyntax(t *testing.T) {
	tests := []struct {
		name   string
		colon  string
		braces string
	}{
		{
			"def",
			"def add(a, b):\n    return a + b\n",
			"def add(a, b) {\n    return a + b\n}\n",
		},
		{
			"if elif else",
			"x = 0\nif x > 0:\n    y = 1\nelif x < 0:\n    y = 2\nelse:\n    y = 3\n",
			"x = 0\nif x > 0 {\n    y = 1\n} elif x < 0 {\n    y = 2\n} else {\n    y = 3\n}\n",
		},
		{
			"for else",
			"for i in range(3):\n    if i:\n        break\nelse:\n    print(i)\n",
			"for i in range(3) {\n    if i {\n        break\n    }\n} else {\n    print(i)\n}\n",
		},
		{
			"while",
			"n = 3\nwhile n:\n    n -= 1\n",
			"n = 3\nwhile n {\n    n -= 1\n}\n",
		},
		{
			"try",
			"try:\n    x = 1\nexcept ValueError as e:\n    print(e)\nelse:\n    x = 2\nfinally:\n    x = 3\n",
			"try {\n    x = 1\n} except ValueError as e {\n    print(e)\n} else {\n    x = 2\n} finally {\n    x = 3\n}\n",
		},
		{
			"class",
			"class Point:\n    def __init__(self, x):\n        self.x = x\n",
			"class Point {\n    def __init__(self, x) {\n        self.x = x\n    }\n}\n",
		},
		{
			"nested mix",
			"def f(xs):\n    for x in xs:\n        if x:\n            return x\n    return None\n",
			"def f(xs) {\n    for x in xs:\n        if x {\n            return x\n        }\n    return None\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			colon := resolveOK(t, tt.colon)
			braces := resolveOK(t, tt.braces)
			if diff := cmp.Diff(colon, braces, astOpts...); diff != "" {
				t.Errorf("trees differ (-colon +braces):\n%s", diff)
			}
		})
	}
}

func TestElseAfterBraceOnNextLine(t *testing.T) {
	same := resolveOK(t, "x = 1\nif x {\n    y = 1\n} else {\n    y = 2\n}\n")
	next := resolveOK(t, "x = 1\nif x {\n    y = 1\n}\nelse {\n    y = 2\n}\n")
	if diff := cmp.Diff(same, next, astOpts...); diff != "" {
		t.Errorf("trees differ (-same line +next line):\n%s", diff)
	}
}

func TestAddFunction(t *testing.T) {
	prog := resolveOK(t, "def add(a, b):\n    return a + b\n")
	def, ok := prog.Body[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDef", prog.Body[0])
	}
	if def.Name.Raw != "add" || len(def.Params) != 2 || def.Params[1].Name.Raw != "b" {
		t.Errorf("unexpected signature: %s", ast.Signature(def))
	}
	ret, ok := def.Body[0].(*ast.Return)
	if !ok || ret.Value == nil {
		t.Fatalf("body = %T, want return with a value", def.Body[0])
	}
	sum := ret.Value.Binary()
	if sum.Op != ast.BinaryOpAdd || sum.Left.Name().Ref != ast.RefLocal {
		t.Errorf("return value = %s %v", sum.Op, sum.Left.Name().Ref)
	}
	if !def.AsDeclaration || len(def.Locals) != 0 {
		t.Errorf("AsDeclaration = %v, locals = %v", def.AsDeclaration, def.Locals)
	}
}

func TestPrecedence(t *testing.T) {
	t.Run("unary minus binds looser than power", func(t *testing.T) {
		e := expr(t, "-2 ** 2\n")
		if e.Kind() != ast.ExprKindUnary || e.Unary().Op != ast.UnaryOpNegate {
			t.Fatalf("got %s, want unary minus", e.Kind())
		}
		if inner := e.Unary().Value; inner.Kind() != ast.ExprKindBinary || inner.Binary().Op != ast.BinaryOpPow {
			t.Errorf("operand = %s, want power", inner.Kind())
		}
	})
	t.Run("power is right associative", func(t *testing.T) {
		e := expr(t, "a ** b ** c\n").Binary()
		if !e.Left.IsNameOf("a") || e.Right.Kind() != ast.ExprKindBinary {
			t.Errorf("got left %s right %s", e.Left.Kind(), e.Right.Kind())
		}
	})
	t.Run("multiplication before addition", func(t *testing.T) {
		e := expr(t, "a + b * c\n").Binary()
		if e.Op != ast.BinaryOpAdd || e.Right.Binary().Op != ast.BinaryOpMul {
			t.Errorf("got %s with right %s", e.Op, e.Right.Kind())
		}
	})
	t.Run("and before or", func(t *testing.T) {
		e := expr(t, "a or b and c\n").BoolOp()
		if e.Op == ast.BoolOpAnd || e.Right.Kind() != ast.ExprKindBoolOp || e.Right.BoolOp().Op != ast.BoolOpAnd {
			t.Errorf("got %s", e.Op)
		}
	})
	t.Run("not covers comparisons", func(t *testing.T) {
		e := expr(t, "not a == b\n")
		if e.Kind() != ast.ExprKindUnary || e.Unary().Value.Kind() != ast.ExprKindCompare {
			t.Errorf("got %s", e.Kind())
		}
	})
	t.Run("comparison chain", func(t *testing.T) {
		c := expr(t, "a < b <= c not in d\n").Compare()
		want := []ast.CmpOp{ast.CmpOpLt, ast.CmpOpLtE, ast.CmpOpNotIn}
		if diff := cmp.Diff(want, c.Ops); diff != "" {
			t.Errorf("ops (-want +got):\n%s", diff)
		}
		if len(c.Comparators) != 3 {
			t.Errorf("got %d comparators, want 3", len(c.Comparators))
		}
	})
	t.Run("ternary", func(t *testing.T) {
		e := expr(t, "x if c else y if d else z\n").Ternary()
		if !e.Then.IsNameOf("x") || !e.Cond.IsNameOf("c") || e.Else.Kind() != ast.ExprKindTernary {
			t.Errorf("got then %s cond %s else %s", e.Then.Kind(), e.Cond.Kind(), e.Else.Kind())
		}
	})
	t.Run("bitwise or below xor", func(t *testing.T) {
		e := expr(t, "a | b ^ c\n").Binary()
		if e.Op != ast.BinaryOpBitwiseOr || e.Right.Binary().Op != ast.BinaryOpBitwiseXor {
			t.Errorf("got %s", e.Op)
		}
	})
}

func TestComprehensionClauseOrder(t *testing.T) {
	c := expr(t, "[x for row in rows if row for x in row if x > 0]\n").Comprehension()
	if c.Kind != ast.CompList {
		t.Errorf("kind = %v, want list", c.Kind)
	}
	var shape []string
	for _, clause := range c.Clauses {
		if clause.IsFilter() {
			shape = append(shape, "if")
		} else {
			shape = append(shape, "for "+clause.Target.Name().Id.Raw)
		}
	}
	want := []string{"for row", "if", "for x", "if"}
	if diff := cmp.Diff(want, shape); diff != "" {
		t.Errorf("clauses (-want +got):\n%s", diff)
	}

	d := expr(t, "{k: v for k, v in items}\n").Comprehension()
	if d.Kind != ast.CompDict || d.Key == nil || !d.Key.IsNameOf("k") {
		t.Errorf("dict comprehension = %+v", d)
	}
	g := expr(t, "sum(x for x in xs)\n").Call()
	if len(g.Args) != 1 || g.Args[0].Value.Comprehension().Kind != ast.CompGenerator {
		t.Errorf("generator argument = %+v", g.Args)
	}
}

func TestDisplays(t *testing.T) {
	if k := expr(t, "{}\n").Kind(); k != ast.ExprKindDict {
		t.Errorf("{} = %s, want dict", k)
	}
	if k := expr(t, "{1, 2}\n").Kind(); k != ast.ExprKindSet {
		t.Errorf("{1, 2} = %s, want set", k)
	}
	if k := expr(t, "()\n").Kind(); k != ast.ExprKindTuple {
		t.Errorf("() = %s, want tuple", k)
	}
	if k := expr(t, "(1)\n").Kind(); k != ast.ExprKindNumber {
		t.Errorf("(1) = %s, want number", k)
	}
	d := expr(t, "{\"a\": 1, **rest}\n").Dict()
	if len(d.Entries) != 2 || d.Entries[1].Key != nil {
		t.Errorf("dict entries = %+v", d.Entries)
	}
	s := expr(t, "xs[1:-1, ::2]\n").Subscript()
	if idx := s.Index; idx.Kind() != ast.ExprKindTuple || idx.Tuple().Elts[1].Slice().Step == nil {
		t.Errorf("subscript index = %s", idx.Kind())
	}
}

func TestCallArguments(t *testing.T) {
	c := expr(t, "f(a, *rest, key=1, **opts)\n").Call()
	if len(c.Args) != 4 {
		t.Fatalf("got %d args, want 4", len(c.Args))
	}
	if !c.Args[0].IsPositional() || !c.Args[1].Star || c.Args[2].Name.Raw != "key" || !c.Args[3].DoubleStar {
		t.Errorf("args = %+v", c.Args)
	}

	err := parseErr(t, "f(key=1, 2)\n")
	if err.Kind != common.ErrUnexpectedToken {
		t.Errorf("kind = %v, want %v", err.Kind, common.ErrUnexpectedToken)
	}
}

func TestWalrus(t *testing.T) {
	prog := parseOK(t, "if (n := len(xs)) > 3:\n    print(n)\n")
	cond := prog.Body[0].(*ast.If).Cond.Compare()
	named := cond.Left
	if named.Kind() != ast.ExprKindNamed || !named.Named().Target.IsNameOf("n") {
		t.Errorf("left = %s, want named expression", named.Kind())
	}

	stmt := parseOK(t, "while chunk := read():\n    pass\n").Body[0].(*ast.While)
	if stmt.Cond.Kind() != ast.ExprKindNamed {
		t.Errorf("while condition = %s, want named expression", stmt.Cond.Kind())
	}
}

func TestLambdaAndArrow(t *testing.T) {
	l := expr(t, "lambda a, b=2: a + b\n").Lambda()
	if l.Arrow || len(l.Params) != 2 || l.Params[1].Default == nil || l.Expr == nil {
		t.Errorf("lambda = %+v", l)
	}
	a := expr(t, "(a, b) => a + b\n").Lambda()
	if !a.Arrow || len(a.Params) != 2 || a.Expr == nil {
		t.Errorf("arrow = %+v", a)
	}
	single := expr(t, "x => x * 2\n").Lambda()
	if !single.Arrow || len(single.Params) != 1 {
		t.Errorf("single-parameter arrow = %+v", single)
	}
	block := expr(t, "async (x) => {\n    await x\n}\n").Lambda()
	if !block.Async || len(block.Body) != 1 || block.Expr != nil {
		t.Errorf("block arrow = %+v", block)
	}
}

func TestDecoratorsAndAsync(t *testing.T) {
	prog := parseOK(t, "@app.route(\"/\")\n@cached\nasync def index():\n    await render()\n")
	def := prog.Body[0].(*ast.FunctionDef)
	if !def.Async || len(def.Decorators) != 2 || def.Decorators[1].Name().Id.Raw != "cached" {
		t.Errorf("def = async %v decorators %d", def.Async, len(def.Decorators))
	}

	gen := parseOK(t, "def count():\n    yield 1\n    yield from more()\n").Body[0].(*ast.FunctionDef)
	if !gen.Generator {
		t.Error("def with yield should be a generator")
	}
}

func TestParams(t *testing.T) {
	def := parseOK(t, "def f(a, /, b=1, *args, c, d=2, **kw):\n    pass\n").Body[0].(*ast.FunctionDef)
	var got []string
	for _, p := range def.Params {
		s := p.String()
		if p.KwOnly {
			s += " kwonly"
		}
		got = append(got, s)
	}
	want := []string{"a", "b", "*args", "c kwonly", "d kwonly", "**kw"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("params (-want +got):\n%s", diff)
	}
}

func TestMatch(t *testing.T) {
	code := `match cmd:
    case [x, *rest]:
        pass
    case {"k": v, **others}:
        pass
    case Point(x=0, y=py) | Point(x=py, y=0):
        pass
    case 1 | -2 | "s" as lit:
        pass
    case Color.RED:
        pass
    case _ if cmd:
        pass
`
	m := parseOK(t, code).Body[0].(*ast.Match)
	if len(m.Cases) != 6 {
		t.Fatalf("got %d cases, want 6", len(m.Cases))
	}
	seq := m.Cases[0].Pattern.(*ast.PatternSequence)
	if seq.StarIndex() != 1 {
		t.Errorf("star index = %d, want 1", seq.StarIndex())
	}
	mapping := m.Cases[1].Pattern.(*ast.PatternMapping)
	if len(mapping.Keys) != 1 || mapping.Rest == nil || mapping.Rest.Raw != "others" {
		t.Errorf("mapping = %+v", mapping)
	}
	or := m.Cases[2].Pattern.(*ast.PatternOr)
	if cls := or.Alts[0].(*ast.PatternClass); len(cls.KwNames) != 2 || !cls.Class.IsNameOf("Point") {
		t.Errorf("class pattern = %+v", cls)
	}
	as := m.Cases[3].Pattern.(*ast.PatternAs)
	if as.Name.Raw != "lit" || len(as.Pattern.(*ast.PatternOr).Alts) != 3 {
		t.Errorf("as pattern = %+v", as)
	}
	if _, ok := m.Cases[4].Pattern.(*ast.PatternValue); !ok {
		t.Errorf("case 4 = %T, want value pattern", m.Cases[4].Pattern)
	}
	if _, ok := m.Cases[5].Pattern.(*ast.PatternWildcard); !ok || m.Cases[5].Guard == nil {
		t.Errorf("case 5 = %T with guard %v", m.Cases[5].Pattern, m.Cases[5].Guard)
	}

	braces := parseOK(t, "match cmd {\n    case 1 {\n        pass\n    }\n    case _ {\n        pass\n    }\n}\n").Body[0].(*ast.Match)
	if len(braces.Cases) != 2 {
		t.Errorf("brace match: got %d cases, want 2", len(braces.Cases))
	}
}

func TestImportsAndExports(t *testing.T) {
	prog := parseOK(t, `import a.b as c, "side-effect"
from ..pkg.mod import (x, y as z)
from "react" import default as React
export def f():
    pass
export n = 1
export f, n
`)
	imp := prog.Body[0].(*ast.Import)
	if len(imp.Names) != 2 || imp.Names[0].Alias.Raw != "c" || imp.Names[1].Module.Spec == nil {
		t.Errorf("import = %+v", imp)
	}
	from := prog.Body[1].(*ast.ImportFrom)
	if from.Module.Level != 2 || from.Module.Dotted() != "..pkg.mod" || from.Names[1].Bound().Raw != "z" {
		t.Errorf("from import = %+v", from)
	}
	react := prog.Body[2].(*ast.ImportFrom)
	if react.Names[0].Name.Raw != "default" || react.Names[0].Bound().Raw != "React" {
		t.Errorf("default import = %+v", react.Names[0])
	}
	if e := prog.Body[3].(*ast.Export); e.Decl == nil {
		t.Error("export def lost its declaration")
	}
	if e := prog.Body[4].(*ast.Export); e.Decl == nil {
		t.Error("export assignment lost its declaration")
	}
	if e := prog.Body[5].(*ast.Export); len(e.Names) != 2 {
		t.Errorf("export names = %v", e.Names)
	}
}

func TestStringsAndJSX(t *testing.T) {
	f := expr(t, "f\"a{x!r:>4}b\" \"c\"\n").FString()
	if len(f.Parts) != 3 || f.Parts[2].Literal != "bc" || f.Parts[1].Field == nil {
		t.Errorf("f-string parts = %+v", f.Parts)
	}
	if s := expr(t, "\"a\" 'b'\n").StringLit(); s.Value != "ab" {
		t.Errorf("concatenated string = %q", s.Value)
	}

	el := parseOK(t, "node = <Button kind=\"primary\" onClick={go}>Go {label}</Button>\n").
		Body[0].(*ast.Assign).Value.JSX()
	if el.TagExpr == nil || !el.TagExpr.IsNameOf("Button") {
		t.Errorf("tag expression = %v", el.TagExpr)
	}
	if len(el.Attrs) != 2 || el.Attrs[1].Value == nil || !el.Attrs[1].Value.IsNameOf("go") {
		t.Errorf("attrs = %+v", el.Attrs)
	}
	if len(el.Children) != 2 || el.Children[1].Expr == nil {
		t.Errorf("children = %+v", el.Children)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		kind common.ErrorKind
	}{
		{"module return", "return 1\n", common.ErrReturnOutsideFunction},
		{"class body return", "class A:\n    return 1\n", common.ErrReturnOutsideFunction},
		{"module yield", "yield 1\n", common.ErrYieldOutsideFunction},
		{"yield in lambda", "f = lambda: (yield)\n", common.ErrYieldOutsideFunction},
		{"await in sync def", "def f():\n    await g()\n", common.ErrAwaitOutsideAsync},
		{"break outside loop", "break\n", common.ErrLoopControlOutsideLoop},
		{"continue in nested def", "for i in x:\n    def f():\n        continue\n", common.ErrLoopControlOutsideLoop},
		{"duplicate parameter", "def f(a, a):\n    pass\n", common.ErrDuplicateParameter},
		{"two starred targets", "a, *b, *c = xs\n", common.ErrInvalidDestructuring},
		{"assign to call", "f() = 1\n", common.ErrInvalidTarget},
		{"assign to literal", "1 = x\n", common.ErrInvalidTarget},
		{"augmented tuple", "a, b += 1\n", common.ErrInvalidTarget},
		{"bad annotation", "x: 1 + 2 = 3\n", common.ErrInvalidAnnotation},
		{"missing indent", "def f():\nreturn 1\n", common.ErrInvalidIndent},
		{"nonlocal at module", "nonlocal x\n", common.ErrInvalidScopeDeclaration},
		{"two star patterns", "match x:\n    case [*a, *b]:\n        pass\n", common.ErrInvalidPattern},
		{"or pattern names differ", "match x:\n    case 1 | y:\n        pass\n", common.ErrInvalidPattern},
		{"default before plain", "def f(a=1, b):\n    pass\n", common.ErrUnexpectedToken},
		{"compound after colon", "if x: for y in z: pass\n", common.ErrUnexpectedToken},
		{"try without handlers", "try:\n    pass\nx = 1\n", common.ErrExpectedToken},
		{"undefined name", "print(missing)\n", common.ErrUndefinedVariable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErr(t, tt.code)
			if err.Kind != tt.kind {
				t.Errorf("kind = %v, want %v (%s)", err.Kind, tt.kind, err.Message)
			}
			if err.Stage != common.StageParse {
				t.Errorf("stage = %v, want %v", err.Stage, common.StageParse)
			}
		})
	}
}

func TestModuleReturnPosition(t *testing.T) {
	err := parseErr(t, "x = 1\nreturn x\n")
	if err.Line() != 2 || err.Column() != 1 {
		t.Errorf("position = %d:%d, want 2:1", err.Line(), err.Column())
	}
}

func TestIncompleteInputIsEOF(t *testing.T) {
	err := parseErr(t, "def f():\n")
	if err.Kind != common.ErrUnexpectedEOF {
		t.Errorf("kind = %v, want %v (%s)", err.Kind, common.ErrUnexpectedEOF, err.Message)
	}
}
