package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
	"github.com/pyjs-lang/pyjs/project"
)

func TestNeedsMore(t *testing.T) {
	p, err := project.New(t.TempDir(), frontend.DefaultToml())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		src  string
		want bool
	}{
		{"", false},
		{"x = 1", false},
		{"x = (1,", true},
		{"def f():", true},
		{"def f():\n    return 1", true},
		{"def f():\n    return 1\n", false},
		{"if x {", true},
		{"print(undefined_name)", false},
		{"x = )", false},
	}
	for _, tt := range tests {
		if got := needsMore(p, tt.src); got != tt.want {
			t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestPrintError(t *testing.T) {
	p, err := project.New(t.TempDir(), frontend.DefaultToml())
	if err != nil {
		t.Fatal(err)
	}
	code := "x = 1\ny = missing\n"
	_, cerr := p.CompileSource("main.pyjs", code)
	if cerr == nil {
		t.Fatal("expected an error")
	}
	var buf bytes.Buffer
	printError(&buf, cerr, code)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "main.pyjs:2:5: UndefinedVariable:") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "    2 | y = missing" || lines[2] != "      |     ^" {
		t.Errorf("snippet:\n%s\n%s", lines[1], lines[2])
	}
}

func TestPrintTokens(t *testing.T) {
	toks, err := lexer.Lex("t.pyjs", "x = 1\n")
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := printTokens(&buf, toks); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"identifier", "punctuation", "number", "newline", "end of file"} {
		if !strings.Contains(out, want) {
			t.Errorf("token listing lacks %q:\n%s", want, out)
		}
	}
}

func TestNewProjectBuilds(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	if err := (&NewCmd{Name: dir}).Run(); err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := (&NewCmd{Name: dir}).Run(); err == nil {
		t.Error("creating a project twice should fail")
	}
	if err := (&BuildCmd{Path: dir}).Run(); err != nil {
		t.Fatalf("build: %v", err)
	}
	out, err := os.ReadFile(filepath.Join(dir, "out", "main.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "function main() {") {
		t.Errorf("main.js:\n%s", out)
	}
}
