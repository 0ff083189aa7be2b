package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
)

func testConfig() Config {
	cfg := frontend.DefaultToml()
	cfg.Name, cfg.Version = "app", "0.1"
	return cfg
}

func newProject(t *testing.T, root string, cfg Config) *Project {
	t.Helper()
	p, err := New(root, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCompileSource(t *testing.T) {
	p := newProject(t, t.TempDir(), testConfig())
	mod, err := p.CompileSource("main.pyjs", "def add(a, b):\n    return a + b\n")
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	want := "function add(a, b) {\n\treturn a + b;\n}\n"
	if diff := cmp.Diff(want, mod.Code); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileSourceDefines(t *testing.T) {
	cfg := testConfig()
	cfg.Defines = []string{"BROWSER"}
	p := newProject(t, t.TempDir(), cfg)
	mod, err := p.CompileSource("main.pyjs", "#ifdef BROWSER\nx = 1\n#else\nx = 2\n#endif\n")
	if err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
	if !strings.Contains(mod.Code, "x = 1;") || strings.Contains(mod.Code, "x = 2;") {
		t.Errorf("unexpected output:\n%s", mod.Code)
	}
}

func TestInvalidDefines(t *testing.T) {
	cfg := testConfig()
	cfg.Defines = []string{"1BAD"}
	if _, err := New(t.TempDir(), cfg); err == nil {
		t.Fatal("expected an error for an invalid macro name")
	}
}

func TestCompileSourceErrors(t *testing.T) {
	tests := []struct {
		name  string
		code  string
		stage common.Stage
		kind  common.ErrorKind
	}{
		{"unclosed bracket", "x = (", common.StageLex, common.ErrUnexpectedEOF},
		{"stray endif", "#endif\n", common.StagePreprocess, common.ErrPreprocessor},
		{"undefined name", "print(missing)\n", common.StageParse, common.ErrUndefinedVariable},
	}
	p := newProject(t, t.TempDir(), testConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CompileSource("src/main.pyjs", tt.code)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Stage != tt.stage || err.Kind != tt.kind {
				t.Errorf("got %s/%s, want %s/%s", err.Stage, err.Kind, tt.stage, tt.kind)
			}
			if err.Span.Source != "src/main.pyjs" {
				t.Errorf("error source = %q", err.Span.Source)
			}
		})
	}
}

func TestConfiguredGlobals(t *testing.T) {
	cfg := testConfig()
	cfg.Globals = []string{"document"}
	p := newProject(t, t.TempDir(), cfg)
	if _, err := p.CompileSource("main.pyjs", "document.title = 'x'\n"); err != nil {
		t.Fatalf("CompileSource: %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	root := filepath.FromSlash("/work/app")
	p := newProject(t, root, testConfig())
	tests := []struct{ in, want string }{
		{"/work/app/src/main.pyjs", "/work/app/out/main.js"},
		{"/work/app/src/lib/util.pyjs", "/work/app/out/lib/util.js"},
		{"/elsewhere/x.pyjs", "/work/app/out/x.js"},
	}
	for _, tt := range tests {
		got := p.OutputPath(filepath.FromSlash(tt.in))
		if got != filepath.FromSlash(tt.want) {
			t.Errorf("OutputPath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestLoadAndBuild(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, frontend.ConfigFile), "name = \"app\"\nversion = \"0.1\"\njobs = 2\n")
	writeFile(t, filepath.Join(root, "src", "main.pyjs"), "from .lib.util import double\nprint(double(2))\n")
	writeFile(t, filepath.Join(root, "src", "lib", "util.pyjs"), "export def double(x):\n    return x * 2\n")
	writeFile(t, filepath.Join(root, "src", ".cache", "skip.pyjs"), "x = (\n")
	writeFile(t, filepath.Join(root, "src", "notes.txt"), "not a source file")

	p, err := Load(root)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	results, err := p.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("built %d files, want 2", len(results))
	}

	main, err := os.ReadFile(filepath.Join(root, "out", "main.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(main), `import { double } from "./lib/util.js";`) {
		t.Errorf("main.js:\n%s", main)
	}
	util, err := os.ReadFile(filepath.Join(root, "out", "lib", "util.js"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(util), "export { double };") {
		t.Errorf("util.js:\n%s", util)
	}
}

func TestBuildChecksImportedNames(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.pyjs"), "from .util import double, triple\nprint(double(2))\n")
	writeFile(t, filepath.Join(root, "src", "util.pyjs"), "export def double(x):\n    return x * 2\ndef triple(x):\n    return x * 3\n")
	p := newProject(t, root, testConfig())

	results, err := p.Build(context.Background())
	if err == nil {
		t.Fatal("expected the unexported import to fail the build")
	}
	cerr, ok := common.AsError(err)
	if !ok {
		t.Fatalf("error %v carries no position", err)
	}
	if cerr.Span.Source != "src/main.pyjs" || cerr.Kind != common.ErrUndefinedVariable {
		t.Errorf("error = %v", cerr)
	}
	if !strings.Contains(cerr.Message, "'.util' does not export 'triple'") {
		t.Errorf("message = %q", cerr.Message)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "main.js")); !os.IsNotExist(err) {
		t.Errorf("main.js was written: %v", err)
	}
	if len(results) != 2 || results[1].Err != nil {
		t.Errorf("util.pyjs should still compile: %+v", results)
	}
}

func TestBuildKeepsGoingPastErrors(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "bad.pyjs"), "x = (\n")
	writeFile(t, filepath.Join(root, "src", "good.pyjs"), "x = 1\n")
	p := newProject(t, root, testConfig())

	results, err := p.Build(context.Background())
	if err == nil {
		t.Fatal("expected the broken file to fail the build")
	}
	cerr, ok := common.AsError(err)
	if !ok || cerr.Span.Source != "src/bad.pyjs" {
		t.Errorf("error %v does not carry the failing file", err)
	}
	if len(results) != 2 || results[0].Err == nil || results[1].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "good.js")); err != nil {
		t.Errorf("good.js was not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "out", "bad.js")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("bad.js should not exist: %v", err)
	}
}

func TestCheckWritesNothing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.pyjs"), "x = 1\n")
	p := newProject(t, root, testConfig())
	if _, err := p.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "out")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("check created the output directory: %v", err)
	}
}

func TestCompileUsesOverrides(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "src", "main.pyjs")
	writeFile(t, path, "x = (\n")
	p := newProject(t, root, testConfig())
	p.Override(path, "x = 1\n")

	results, err := p.Compile(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if results[0].Err != nil {
		t.Fatalf("override was not used: %v", results[0].Err)
	}

	p.DropOverride(path)
	results, err = p.Compile(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if results[0].Err == nil {
		t.Error("expected the file on disk to be compiled")
	}
}

func TestCompileCancelled(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "src", "main.pyjs")
	writeFile(t, path, "x = 1\n")
	p := newProject(t, root, testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Compile(ctx, []string{path}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestCompileMissingFile(t *testing.T) {
	p := newProject(t, t.TempDir(), testConfig())
	_, err := p.Compile(context.Background(), []string{filepath.Join(p.Root, "src", "nope.pyjs")})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want a wrapped not-exist error", err)
	}
}
