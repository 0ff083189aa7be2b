package lexer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyjs-lang/pyjs/common"
)

func lexOK(t *testing.T, code string) []Token {
	t.Helper()
	toks, err := Lex("test.pyjs", code)
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", code, err)
	}
	return toks
}

func lexErr(t *testing.T, code string) *common.Error {
	t.Helper()
	_, err := Lex("test.pyjs", code)
	if err == nil {
		t.Fatalf("Lex(%q) succeeded, want error", code)
	}
	return err
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind()
	}
	return out
}

func lexemes(toks []Token) []string {
	var out []string
	for _, tok := range toks {
		if !IsStructural(tok) {
			out = append(out, tok.Lexeme())
		}
	}
	return out
}

const (
	I  = KindIdent
	K  = KindKeyword
	P  = KindPunct
	N  = KindNumber
	S  = KindString
	NL = KindNewline
	IN = KindIndent
	DE = KindDedent
	EO = KindEOF
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []TokenKind
	}{
		{
			name: "colon block",
			code: "if x:\n    y\nz\n",
			want: []TokenKind{K, I, P, NL, IN, I, NL, DE, I, NL, EO},
		},
		{
			name: "blank and comment lines do not count",
			code: "if x:\n\n    # note\n    y\n\n# end\nz",
			want: []TokenKind{K, I, P, NL, IN, I, NL, DE, I, NL, EO},
		},
		{
			name: "dedent several levels at once",
			code: "if a:\n  if b:\n    c\nd\n",
			want: []TokenKind{K, I, P, NL, IN, K, I, P, NL, IN, I, NL, DE, DE, I, NL, EO},
		},
		{
			name: "dedents closed at end of file",
			code: "def f():\n    return 1",
			want: []TokenKind{K, I, P, P, P, NL, IN, K, N, NL, DE, EO},
		},
		{
			name: "brace block",
			code: "if x {\n    a\n}\nb\n",
			want: []TokenKind{K, I, P, NL, I, NL, P, NL, I, NL, EO},
		},
		{
			name: "brace block with nested colon suite",
			code: "if x {\n    for y in z:\n        a\n    b\n}\n",
			want: []TokenKind{K, I, P, NL, K, I, K, I, P, NL, IN, I, NL, DE, I, NL, P, NL, EO},
		},
		{
			name: "dict display suppresses layout",
			code: "x = {\n  1: 2,\n}\n",
			want: []TokenKind{I, P, P, N, P, N, P, P, NL, EO},
		},
		{
			name: "parentheses join lines",
			code: "f(1,\n      2)\n",
			want: []TokenKind{I, P, N, P, N, P, NL, EO},
		},
		{
			name: "backslash continuation",
			code: "x = 1 + \\\n    2\n",
			want: []TokenKind{I, P, N, P, N, NL, EO},
		},
		{
			name: "ternary else brace is a dict",
			code: "x = a if c else {}\n",
			want: []TokenKind{I, P, I, K, I, K, P, P, NL, EO},
		},
		{
			name: "tabs",
			code: "if x:\n\ty\n",
			want: []TokenKind{K, I, P, NL, IN, I, NL, DE, EO},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(lexOK(t, tt.code))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token kinds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIndentBalance(t *testing.T) {
	sources := []string{
		"a\n",
		"if a:\n    b\n",
		"class A:\n    def f(self):\n        if x:\n            return 1\n        return 2\n",
		"if a {\n    if b:\n        c\n        if d:\n            e\n}\nf\n",
		"def f():\n    x = [\n  1,\n]\n    return x\n",
		"while x {\n  while y {\n      z\n  }\n}\n",
	}
	for _, code := range sources {
		depth := 0
		for _, tok := range lexOK(t, code) {
			switch tok.Kind() {
			case KindIndent:
				depth++
			case KindDedent:
				depth--
			}
			if depth < 0 {
				t.Fatalf("%q: Dedent without matching Indent", code)
			}
		}
		if depth != 0 {
			t.Errorf("%q: %d unbalanced Indent tokens", code, depth)
		}
	}
}

func TestRelexLexemes(t *testing.T) {
	sources := []string{
		"x = foo(1, 'a') + 2 ** y[3] // 4",
		"total += items[-1].price if ok else 0.5e3",
		`name = f"hi {user.name!r:>10}" + r"\d+"`,
		"node = <Button kind=\"primary\" onClick={go}>Go {label}</Button>",
		"a <= b and not c is None",
	}
	for _, code := range sources {
		first := lexemes(lexOK(t, code))
		second := lexemes(lexOK(t, strings.Join(first, " ")))
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("%q: relexed lexemes differ (-first +second):\n%s", code, diff)
		}
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		kind       common.ErrorKind
		line, col  uint32
	}{
		{"unterminated string", "x = \"abc\n", common.ErrUnterminatedString, 1, 5},
		{"unterminated triple string", "y = 1\nx = '''abc\n\n", common.ErrUnterminatedString, 2, 5},
		{"inconsistent dedent", "if x:\n    a\n  b\n", common.ErrInvalidIndent, 3, 3},
		{"tabs mixed with spaces", "if x:\n\t y\n", common.ErrInvalidIndent, 2, 3},
		{"identifier glued to number", "x = 12ab\n", common.ErrUnexpectedCharacter, 1, 5},
		{"doubled underscore", "x = 1__0\n", common.ErrInvalidNumber, 1, 5},
		{"missing exponent digits", "x = 1e\n", common.ErrInvalidNumber, 1, 5},
		{"unclosed paren", "f(1,\n", common.ErrUnexpectedEOF, 1, 2},
		{"mismatched bracket", "f(1]\n", common.ErrUnexpectedCharacter, 1, 4},
		{"reserved prefix", "__pyjs_x = 1\n", common.ErrUnexpectedCharacter, 1, 1},
		{"stray character", "x = $\n", common.ErrUnexpectedCharacter, 1, 5},
		{"bad escape", "x = '\\xZZ'\n", common.ErrInvalidEscape, 1, 8},
		{"mismatched closing tag", "x = <a></b>\n", common.ErrInvalidJSX, 1, 8},
		{"single closing brace in f-string", "x = f'a}'\n", common.ErrUnexpectedCharacter, 1, 8},
		{"invalid utf-8", "x = 1\ny = \"é\xff\xfe\"\n", common.ErrUnexpectedCharacter, 2, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lexErr(t, tt.code)
			if err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", err.Kind, tt.kind, err)
			}
			if err.Stage != common.StageLex {
				t.Errorf("stage = %s, want lex", err.Stage)
			}
			if err.Line() != tt.line || err.Column() != tt.col {
				t.Errorf("position = %d:%d, want %d:%d", err.Line(), err.Column(), tt.line, tt.col)
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	for _, lit := range []string{"0", "1_000", "0x_ff", "0XFF", "0o17", "0b1010", "1.5", ".5", "10.", "1e10", "1.5E-3"} {
		toks := lexOK(t, lit)
		num, ok := toks[0].(TokNumber)
		if !ok {
			t.Errorf("%q: first token is %T, want TokNumber", lit, toks[0])
			continue
		}
		if num.Raw != lit {
			t.Errorf("%q: lexeme = %q", lit, num.Raw)
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{`"a\tb"`, "a\tb"},
		{`'it\'s'`, "it's"},
		{`r"a\tb"`, `a\tb`},
		{`"\x41\u00e9\101"`, "Aé" + "A"},
		{`"\q"`, `\q`},
		{"'''one\ntwo'''", "one\ntwo"},
		{`"""say "hi" """`, `say "hi" `},
	}
	for _, tt := range tests {
		toks := lexOK(t, tt.code)
		str, ok := toks[0].(TokString)
		if !ok {
			t.Errorf("%q: first token is %T, want TokString", tt.code, toks[0])
			continue
		}
		if str.Value != tt.want {
			t.Errorf("%q: value = %q, want %q", tt.code, str.Value, tt.want)
		}
		if str.Raw != tt.code {
			t.Errorf("%q: lexeme = %q", tt.code, str.Raw)
		}
	}
}

func TestFString(t *testing.T) {
	toks := lexOK(t, `f"a{x!r:>4}b{{c}}{y + 1}"`)
	fs, ok := toks[0].(TokFString)
	if !ok {
		t.Fatalf("first token is %T, want TokFString", toks[0])
	}
	if len(fs.Parts) != 4 {
		t.Fatalf("got %d parts, want 4", len(fs.Parts))
	}
	if fs.Parts[0].Literal != "a" || fs.Parts[2].Literal != "b{c}" {
		t.Errorf("literals = %q, %q", fs.Parts[0].Literal, fs.Parts[2].Literal)
	}

	first := fs.Parts[1].Field
	if first == nil {
		t.Fatal("part 1 is not a field")
	}
	if diff := cmp.Diff([]TokenKind{I, EO}, kinds(first.Tokens)); diff != "" {
		t.Errorf("field tokens (-want +got):\n%s", diff)
	}
	if first.Conversion != 'r' || first.Spec != ">4" {
		t.Errorf("conversion/spec = %q/%q", first.Conversion, first.Spec)
	}

	second := fs.Parts[3].Field
	if second == nil {
		t.Fatal("part 3 is not a field")
	}
	if diff := cmp.Diff([]string{"y", "+", "1"}, lexemes(second.Tokens)); diff != "" {
		t.Errorf("field lexemes (-want +got):\n%s", diff)
	}

	// layout continues normally after the literal
	if diff := cmp.Diff([]TokenKind{KindFString, NL, EO}, kinds(toks)); diff != "" {
		t.Errorf("outer kinds (-want +got):\n%s", diff)
	}
}

func TestFStringFieldKeepsComparisons(t *testing.T) {
	toks := lexOK(t, `f"{a != b}{d[1:2]}{(x := 3)}"`)
	fs := toks[0].(TokFString)
	var got [][]string
	for _, part := range fs.Parts {
		if part.Field != nil {
			got = append(got, lexemes(part.Field.Tokens))
			if part.Field.Spec != "" || part.Field.Conversion != 0 {
				t.Errorf("unexpected conversion or spec in %v", lexemes(part.Field.Tokens))
			}
		}
	}
	want := [][]string{{"a", "!=", "b"}, {"d", "[", "1", ":", "2", "]"}, {"(", "x", ":=", "3", ")"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fields (-want +got):\n%s", diff)
	}
}

func TestJSX(t *testing.T) {
	code := "view = <div class=\"box\" hidden {...rest}>\n    Hello {name}!\n    <br/>\n</div>\n"
	toks := lexOK(t, code)
	if diff := cmp.Diff([]TokenKind{I, P, KindJSX, NL, EO}, kinds(toks)); diff != "" {
		t.Fatalf("kinds (-want +got):\n%s", diff)
	}
	el := toks[2].(TokJSX).Element
	if el.Tag != "div" {
		t.Errorf("tag = %q", el.Tag)
	}
	if len(el.Attrs) != 3 {
		t.Fatalf("got %d attrs, want 3", len(el.Attrs))
	}
	if a := el.Attrs[0]; a.Name != "class" || a.Str == nil || *a.Str != "box" {
		t.Errorf("attr 0 = %+v", a)
	}
	if a := el.Attrs[1]; a.Name != "hidden" || a.Str != nil || a.Tokens != nil {
		t.Errorf("attr 1 = %+v", a)
	}
	if a := el.Attrs[2]; !a.Spread || len(a.Tokens) != 2 {
		t.Errorf("attr 2 = %+v", a)
	}

	if len(el.Children) != 4 {
		t.Fatalf("got %d children, want 4", len(el.Children))
	}
	if el.Children[0].Text != "Hello " {
		t.Errorf("child 0 text = %q", el.Children[0].Text)
	}
	if diff := cmp.Diff([]string{"name"}, lexemes(el.Children[1].Tokens)); diff != "" {
		t.Errorf("child 1 (-want +got):\n%s", diff)
	}
	if el.Children[2].Text != "!" {
		t.Errorf("child 2 text = %q", el.Children[2].Text)
	}
	if br := el.Children[3].Element; br == nil || br.Tag != "br" || !br.SelfClosing {
		t.Errorf("child 3 = %+v", el.Children[3])
	}
}

func TestJSXFragmentAndComparison(t *testing.T) {
	toks := lexOK(t, "x = <><b>1</b></>\ny = a < b\nz = f(<i/>)\n")
	var got []TokenKind
	for _, tok := range toks {
		if tok.Kind() == KindJSX || tok.Is("<") {
			got = append(got, tok.Kind())
		}
	}
	want := []TokenKind{KindJSX, KindPunct, KindJSX}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("kinds (-want +got):\n%s", diff)
	}
	frag := toks[2].(TokJSX).Element
	if frag.Tag != "" || len(frag.Children) != 1 || frag.Children[0].Element.Tag != "b" {
		t.Errorf("fragment = %+v", frag)
	}
}

func TestJSXText(t *testing.T) {
	tests := []struct{ raw, want string }{
		{"hello", "hello"},
		{" a b ", " a b "},
		{"\n    one\n    two\n", "one two"},
		{"\n   \n", ""},
		{"a &amp; b", "a & b"},
	}
	for _, tt := range tests {
		if got := JSXText(tt.raw); got != tt.want {
			t.Errorf("JSXText(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestKeywordsAndPuncts(t *testing.T) {
	toks := lexOK(t, "async def f(a, *b, **c) -> None: pass")
	want := []string{"async", "def", "f", "(", "a", ",", "*", "b", ",", "**", "c", ")", "->", "None", ":", "pass"}
	if diff := cmp.Diff(want, lexemes(toks)); diff != "" {
		t.Errorf("lexemes (-want +got):\n%s", diff)
	}
	if !toks[0].Is("async") || toks[0].Kind() != KindKeyword {
		t.Errorf("first token = %v", toks[0])
	}
	if !toks[12].Is("->") {
		t.Errorf("arrow token = %v", toks[12])
	}
}

func TestSpans(t *testing.T) {
	toks := lexOK(t, "if x:\n    total = 10\n")
	total := toks[5]
	span := total.Span()
	if span.LineStart != 2 || span.ColumnStart != 5 || span.ColumnEnd != 9 {
		t.Errorf("span of %q = %s", total.Lexeme(), span)
	}
	if span.Source != "test.pyjs" {
		t.Errorf("source = %q", span.Source)
	}
}
