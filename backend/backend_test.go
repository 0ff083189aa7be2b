package backend_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyjs-lang/pyjs/backend"
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
	"github.com/pyjs-lang/pyjs/frontend/parser"
)

func transpileWith(t *testing.T, code string, opts backend.Options) (*backend.Module, *common.Error) {
	t.Helper()
	toks, err := lexer.Lex("test.pyjs", code)
	if err != nil {
		t.Fatalf("Lex failed: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return backend.Transpile(prog, opts)
}

func transpile(t *testing.T, code string) *backend.Module {
	t.Helper()
	mod, err := transpileWith(t, code, backend.Options{})
	if err != nil {
		t.Fatalf("Transpile failed: %v", err)
	}
	return mod
}

func TestAddFunction(t *testing.T) {
	want := "function add(a, b) {\n\treturn a + b;\n}\n"
	for _, code := range []string{
		"def add(a, b):\n    return a + b\n",
		"def add(a, b) {\n    return a + b\n}\n",
	} {
		if diff := cmp.Diff(want, transpile(t, code).Code); diff != "" {
			t.Errorf("%q (-want +got):\n%s", code, diff)
		}
	}
}

func TestIfElse(t *testing.T) {
	want := "let x, y;\n\nx = 5;\nif (x > 10) {\n\ty = 1;\n} else {\n\ty = 2;\n}\n"
	for _, code := range []string{
		"x = 5\nif x > 10:\n    y = 1\nelse:\n    y = 2\n",
		"x = 5\nif x > 10 {\n    y = 1\n} else {\n    y = 2\n}\n",
	} {
		if diff := cmp.Diff(want, transpile(t, code).Code); diff != "" {
			t.Errorf("%q (-want +got):\n%s", code, diff)
		}
	}
}

func TestElifChain(t *testing.T) {
	got := transpile(t, "x = 0\nif x > 0:\n    y = 1\nelif x < 0:\n    y = 2\nelse:\n    y = 3\n").Code
	want := "if (x > 0) {\n\ty = 1;\n} else if (x < 0) {\n\ty = 2;\n} else {\n\ty = 3;\n}\n"
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
	}
}

func TestComprehension(t *testing.T) {
	got := transpile(t, "def f(x):\n    return x\nys = [f(x) for x in range(3) if x != 1]\n").Code
	want := `import { range } from "@pyjs/runtime";

let ys;

function f(x) {
	return x;
}

ys = (() => {
	const __pyjs_r0 = [];
	for (const x of range(3)) {
		if (x !== 1) {
			__pyjs_r0.push(f(x));
		}
	}
	return __pyjs_r0;
})();
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestHelperSet(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{"none", "x = 1\n", nil},
		{"builtins", "print(len([1]))\n", []string{"len", "print"}},
		{"shadowed builtin", "def len(x):\n    return 0\nprint(len([]))\n", []string{"print"}},
		{"membership", "a = [1]\nb = 2 in a\n", []string{"contains"}},
		{"stepped slice", "s = \"abc\"[::2]\n", []string{"slice"}},
		{"plain slice", "s = \"abc\"[1:]\n", nil},
		{"f-string conversion", "x = 1\ns = f\"{x!r}\"\n", []string{"repr"}},
		{"with", "def open_it(m):\n    with m as f:\n        pass\n", []string{"enterContext", "exitContext"}},
		{"renamed builtin", "t = type(1)\n", []string{"typeOf"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod := transpile(t, tt.code)
			if diff := cmp.Diff(tt.want, mod.Helpers.Exports()); diff != "" {
				t.Errorf("helpers (-want +got):\n%s", diff)
			}
			if mod.Helpers.Len() == 0 && strings.Contains(mod.Code, "@pyjs/runtime") {
				t.Errorf("runtime imported without helpers:\n%s", mod.Code)
			}
		})
	}
}

func TestImportBeforeUse(t *testing.T) {
	code := `import lib.util
from .local import thing
x = [1, 2, 3]
print(len(x), 2 in x, x[::2], f"{thing!r:>4}")
`
	mod := transpile(t, code)
	lines := strings.Split(mod.Code, "\n")
	if !strings.HasPrefix(lines[0], "import {") {
		t.Fatalf("first line is not the helper import:\n%s", mod.Code)
	}
	wantHead := []string{
		`import { contains as __pyjs_contains, format as __pyjs_format, len, print, repr as __pyjs_repr, slice as __pyjs_slice } from "@pyjs/runtime";`,
		`import * as util from "lib/util";`,
		`import { thing } from "./local.js";`,
	}
	if diff := cmp.Diff(wantHead, lines[:3]); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	body := strings.Join(lines[3:], "\n")
	for _, h := range mod.Helpers.Sorted() {
		if !strings.Contains(body, h.Local+"(") {
			t.Errorf("helper %s imported but not called", h.Local)
		}
	}
}

func TestHelperAliasAvoidsUserNames(t *testing.T) {
	got := transpile(t, "typeOf = 1\nprint(type(typeOf))\n").Code
	want := `import { print, typeOf as __pyjs_typeOf } from "@pyjs/runtime";

let typeOf;

typeOf = 1;
print(__pyjs_typeOf(typeOf));
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestKeywordArguments(t *testing.T) {
	got := transpile(t, "def f(a, b=2, *, c=3):\n    return a + b + c\nf(1, c=4)\nf(b=5, a=1)\n").Code
	want := "function f(a, b = 2, { c = 3 } = {}) {\n\treturn a + b + c;\n}\n\nf(1, undefined, { c: 4 });\nf(1, 5);\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestMethodKeywordArguments(t *testing.T) {
	code := `class A:
    def m(self, a, b=2):
        return a - b
    def n(self, *xs, k=0):
        return [xs, k]
    def run(self):
        return [self.m(b=3, a=1), self.m(5, b=1), self.n(1, 2, k=3)]

p = A()
`
	got := transpile(t, code).Code
	for _, want := range []string{
		"\tn(...xs) {\n\t\tconst self = this;\n\t\tconst { k = 0 } = __pyjs_popKwargs(xs);\n\t\treturn [xs, k];\n\t}\n",
		"return [self.m(1, 3), self.m(5, 1), self.n(1, 2, __pyjs_kwargs({ k: 3 }))];",
		"p = new A();",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("got:\n%s\nwant it to contain:\n%s", got, want)
		}
	}
}

func TestVarArgsWithOptions(t *testing.T) {
	code := "def n(a, *xs, k=0, **kw):\n    return xs\ng = n\ng(1, 2)\nn(1, 2, 3, k=4, z=5)\nn(k=4, a=1)\n"
	got := transpile(t, code).Code
	for _, want := range []string{
		"function n(a, ...xs) {\n\tconst { k = 0, ...kw } = __pyjs_popKwargs(xs);\n",
		"g(1, 2);\n",
		"n(1, 2, 3, __pyjs_kwargs({ k: 4, z: 5 }));\n",
		"n(1, __pyjs_kwargs({ k: 4 }));\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("got:\n%s\nwant it to contain:\n%s", got, want)
		}
	}
}

func TestBuiltinKeywordArguments(t *testing.T) {
	got := transpile(t, "print(1, end=\"\")\n").Code
	if !strings.Contains(got, "print(1, { end: \"\" });") {
		t.Errorf("got:\n%s", got)
	}
}

func TestAssertRaisesAssertionError(t *testing.T) {
	got := transpile(t, "try:\n    assert 1 == 2, \"boom\"\nexcept AssertionError:\n    pass\n").Code
	if !strings.HasPrefix(got, `import { AssertionError } from "@pyjs/runtime";`) {
		t.Errorf("unexpected header:\n%s", got)
	}
	for _, want := range []string{"throw new AssertionError(\"boom\");", "instanceof AssertionError"} {
		if !strings.Contains(got, want) {
			t.Errorf("got:\n%s\nwant it to contain:\n%s", got, want)
		}
	}
}

func TestMatchArmsEndingInReturn(t *testing.T) {
	code := "def f(x):\n    match x:\n        case 1:\n            return \"one\"\n        case 2:\n            y = 2\n        case _:\n            return \"many\"\n"
	got := transpile(t, code).Code
	if strings.Contains(got, "return \"one\";\n\t\t\tbreak") {
		t.Errorf("unreachable break after return:\n%s", got)
	}
	if !strings.Contains(got, "y = 2;\n\t\t\tbreak __pyjs_match0;") {
		t.Errorf("falling arm lost its break:\n%s", got)
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"floor division", "x = 7 // 2\n", "x = Math.floor(7 / 2);"},
		{"negative index load", "a = [1, 2]\nb = a[-1]\n", "b = a.at(-1);"},
		{"negative index store", "a = [1, 2]\na[-1] = 3\n", "a[a.length - 1] = 3;"},
		{"slice", "a = [1, 2]\nb = a[1:]\n", "b = a.slice(1);"},
		{"none comparison", "x = None\ny = x is None\n", "y = x == null;"},
		{"chained comparison", "a = 1\nb = 0 < a < 3\n", "b = 0 < a && a < 3;"},
		{"dict", "d = {\"a\": 1, 2: 3}\n", `d = { "a": 1, 2: 3 };`},
		{"set", "s = {1, 2}\n", "s = new Set([1, 2]);"},
		{"f-string", "name = \"x\"\ng = f\"hi {name}!\"\n", "g = `hi ${name}!`;"},
		{"augmented floor division", "n = 1\nn //= 2\n", "n = Math.floor(n / 2);"},
		{"augmented", "n = 1\nn += 2\n", "n += 2;"},
		{"tuple unpacking", "a, *b = [1, 2, 3]\n", "[a, ...b] = [1, 2, 3];"},
		{"delete item", "xs = [1]\ndel xs[0]\n", "__pyjs_delitem(xs, 0);"},
		{"delete attribute", "o = {}\ndel o.a\n", "delete o.a;"},
		{"assert", "assert 1 == 1, \"bad\"\n", "if (!(1 === 1)) {\n\tthrow new AssertionError(\"bad\");\n}"},
		{"lambda", "f = lambda a, b=2: a + b\n", "f = (a, b = 2) => a + b;"},
		{"arrow", "f = x => x * 2\n", "f = (x) => x * 2;"},
		{"async def", "async def main():\n    await main()\n", "async function main() {\n\tawait main();\n}"},
		{"host constructor", "m = Map()\n", "m = new Map();"},
		{"ternary", "x = 1\ny = \"a\" if x else \"b\"\n", `y = x ? "a" : "b";`},
		{"boolean operators", "a = 1\nb = not a and a or a\n", "b = !a && a || a;"},
		{"reserved word", "new = 1\n", "new_ = 1;"},
		{"walrus", "xs = [1]\nif (n := len(xs)) > 0:\n    pass\n", "if ((n = len(xs)) > 0) {"},
		{"generator", "def g():\n    yield 1\n", "function* g() {\n\tyield 1;\n}"},
		{"decorator", "def d(f):\n    return f\n@d\ndef g():\n    pass\n", "g = d(function g() {\n});"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := transpile(t, tt.code).Code
			if !strings.Contains(got, tt.want) {
				t.Errorf("got:\n%s\nwant it to contain:\n%s", got, tt.want)
			}
		})
	}
}

func TestLoopElse(t *testing.T) {
	got := transpile(t, "for i in range(3):\n    if i:\n        break\nelse:\n    print(i)\n").Code
	want := `__pyjs_loop0: {
	for (i of range(3)) {
		if (i) {
			break __pyjs_loop0;
		}
	}
	print(i);
}
`
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
	}
}

func TestTryExcept(t *testing.T) {
	got := transpile(t, "try:\n    x = 1\nexcept ValueError as e:\n    print(e)\n").Code
	want := `try {
	x = 1;
} catch (__pyjs_err0) {
	if (__pyjs_err0 instanceof ValueError) {
		e = __pyjs_err0;
		print(e);
	} else {
		throw __pyjs_err0;
	}
}
`
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
	}
	if !strings.HasPrefix(got, `import { ValueError, print } from "@pyjs/runtime";`) {
		t.Errorf("unexpected header:\n%s", got)
	}
}

func TestTryCatchAll(t *testing.T) {
	got := transpile(t, "try:\n    x = 1\nexcept Exception:\n    raise\nfinally:\n    x = 2\n").Code
	want := `try {
	x = 1;
} catch (__pyjs_err0) {
	throw __pyjs_err0;
} finally {
	x = 2;
}
`
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
	}
}

func TestClasses(t *testing.T) {
	code := `class Animal:
    def __init__(self, name):
        self.name = name
    def speak(self):
        return self.name

class Dog(Animal):
    def __init__(self, name):
        super().__init__(name)
        self.tricks = []

d = Dog("rex")
`
	got := transpile(t, code).Code
	for _, want := range []string{
		"class Animal {\n\tconstructor(name) {\n\t\tconst self = this;\n\t\tself.name = name;\n\t}\n\tspeak() {\n\t\tconst self = this;\n\t\treturn self.name;\n\t}\n}\n",
		"class Dog extends Animal {\n\tconstructor(name) {\n\t\tsuper(name);\n\t\tconst self = this;\n\t\tself.tricks = [];\n\t}\n}\n",
		"d = new Dog(\"rex\");\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("got:\n%s\nwant it to contain:\n%s", got, want)
		}
	}
}

func TestMatch(t *testing.T) {
	got := transpile(t, "cmd = [1, 2, 3]\nmatch cmd:\n    case [x, *rest]:\n        print(x)\n    case _:\n        pass\n").Code
	want := `__pyjs_match0: {
	const __pyjs_t1 = cmd;
	if (Array.isArray(__pyjs_t1) && __pyjs_t1.length >= 1 && (x = __pyjs_t1[0], true) && (rest = __pyjs_t1.slice(1), true)) {
		print(x);
		break __pyjs_match0;
	}
}
`
	if !strings.HasSuffix(got, want) {
		t.Errorf("got:\n%s\nwant suffix:\n%s", got, want)
	}
}

func TestJSX(t *testing.T) {
	got := transpile(t, "label = \"x\"\nnode = <b id=\"a\">Go {label}</b>\n").Code
	for _, want := range []string{
		`import { h as __pyjs_h } from "@pyjs/runtime";`,
		`node = __pyjs_h("b", { id: "a" }, ...["Go ", label].flat(Infinity).filter((c) => c != null));`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("got:\n%s\nwant it to contain:\n%s", got, want)
		}
	}

	mod, err := transpileWith(t, "node = <p>hi</p>\n", backend.Options{JSXImportSource: "preact"})
	if err != nil {
		t.Fatalf("Transpile failed: %v", err)
	}
	want := `import { h as __pyjs_h } from "preact";

let node;

node = __pyjs_h("p", null, "hi");
`
	if diff := cmp.Diff(want, mod.Code); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExports(t *testing.T) {
	got := transpile(t, "export def f():\n    pass\nexport n = 1\n").Code
	if !strings.HasSuffix(got, "export { f, n };\n") {
		t.Errorf("got:\n%s", got)
	}
}

func TestTranspileErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		msg  string
	}{
		{"star import", "from m import *\n", "import *"},
		{"slice assignment", "a = [1, 2]\na[0:1] = [3]\n", "slice"},
		{"negative store on call", "def g():\n    return [1]\ng()[-1] = 2\n", "simple receiver"},
		{"too many arguments", "def f(a):\n    return a\nf(1, 2)\n", "too many positional arguments"},
		{"unknown keyword", "def f(a):\n    return a\nf(1, b=2)\n", "unexpected keyword argument 'b'"},
		{"duplicate argument", "def f(a):\n    return a\nf(1, a=2)\n", "multiple values for argument 'a'"},
		{"multiple inheritance", "class A:\n    pass\nclass B:\n    pass\nclass C(A, B):\n    pass\n", "multiple inheritance"},
		{"method keyword", "class A:\n    def m(self, a):\n        return a\no = A()\no.m(a=1)\n", "keyword argument 'a'"},
		{"alias keyword", "def f(a, k=1):\n    return a\ng = f\ng(1, k=2)\n", "signature is unknown"},
		{"host keyword", "console.log(1, sep=2)\n", "keyword argument 'sep'"},
		{"double star into unknown", "def f(**kw):\n    return kw\nd = {}\nh = f\nh(**d)\n", "** unpacking"},
		{"delete slice", "xs = [1, 2]\ndel xs[0:1]\n", "deleting a slice"},
		{"positional class pattern", "class P:\n    pass\nmatch 1:\n    case P(x):\n        pass\n", "positional class patterns"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mod, err := transpileWith(t, tt.code, backend.Options{})
			if err == nil {
				t.Fatalf("Transpile succeeded:\n%s", mod.Code)
			}
			if err.Stage != common.StageTranspile {
				t.Errorf("stage = %v, want %v", err.Stage, common.StageTranspile)
			}
			if !strings.Contains(err.Message, tt.msg) {
				t.Errorf("message = %q, want it to contain %q", err.Message, tt.msg)
			}
		})
	}
}
