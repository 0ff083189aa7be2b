package frontend

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHandlePyjsTomlDefaults(t *testing.T) {
	pt, err := HandlePyjsToml("name = \"app\"\nversion = \"0.1\"\n")
	if err != nil {
		t.Fatalf("HandlePyjsToml: %v", err)
	}
	want := DefaultToml()
	want.Name, want.Version = "app", "0.1"
	want.Debug = pt.Debug
	if diff := cmp.Diff(want, pt); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestHandlePyjsTomlFields(t *testing.T) {
	content := `
name = "site"
version = "1.2.0"
src = "app"
out = "dist"
jsx_factory = "createElement"
jsx_fragment = "Fragment"
jsx_import_source = "preact"
import_extension = ".mjs"
tab_width = 8
jobs = 2
globals = ["React", "document"]
defines = ["BROWSER", "LEVEL=2"]
`
	pt, err := HandlePyjsToml(content)
	if err != nil {
		t.Fatalf("HandlePyjsToml: %v", err)
	}
	if pt.Src != "app" || pt.Out != "dist" {
		t.Errorf("dirs = %q, %q", pt.Src, pt.Out)
	}
	if pt.JSXImportSource != "preact" || pt.ImportExtension != ".mjs" {
		t.Errorf("jsx source %q, extension %q", pt.JSXImportSource, pt.ImportExtension)
	}
	if pt.TabWidth != 8 || pt.Jobs != 2 {
		t.Errorf("tab width %d, jobs %d", pt.TabWidth, pt.Jobs)
	}
	if diff := cmp.Diff([]string{"BROWSER", "LEVEL=2"}, pt.Defines); diff != "" {
		t.Errorf("defines (-want +got):\n%s", diff)
	}
}

func TestHandlePyjsTomlErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"missing name", `version = "0.1"`, "Name"},
		{"missing version", `name = "app"`, "Version"},
		{"tab width too large", "name = \"a\"\nversion = \"1\"\ntab_width = 32", "TabWidth"},
		{"zero tab width", "name = \"a\"\nversion = \"1\"\ntab_width = 0", "TabWidth"},
		{"negative jobs", "name = \"a\"\nversion = \"1\"\njobs = -1", "Jobs"},
		{"bad extension", "name = \"a\"\nversion = \"1\"\nimport_extension = \"js\"", "ImportExtension"},
		{"unknown key", "name = \"a\"\nversion = \"1\"\nlib = true", "unknown key"},
		{"syntax", "name = ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := HandlePyjsToml(tt.content)
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PYJS_RUNTIME", "./runtime.js")
	t.Setenv("PYJS_JSX_FACTORY", "jsx")
	t.Setenv("PYJS_OUT", "build")
	t.Setenv("PYJS_JOBS", "3")
	t.Setenv("PYJS_DEBUG", "1")

	pt, err := HandlePyjsToml("name = \"app\"\nversion = \"0.1\"\nruntime = \"other\"\n")
	if err != nil {
		t.Fatalf("HandlePyjsToml: %v", err)
	}
	if pt.Runtime != "./runtime.js" || pt.JSXFactory != "jsx" || pt.Out != "build" {
		t.Errorf("overrides not applied: %+v", pt)
	}
	if pt.Jobs != 3 || !pt.Debug {
		t.Errorf("jobs %d, debug %v", pt.Jobs, pt.Debug)
	}
}

func TestReadPyjsToml(t *testing.T) {
	dir := t.TempDir()
	if _, err := ReadPyjsToml(dir); err == nil {
		t.Fatal("expected an error for a missing project file")
	}
	path := filepath.Join(dir, ConfigFile)
	if err := os.WriteFile(path, []byte("name = \"app\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := ReadPyjsToml(dir)
	if err == nil || !strings.Contains(err.Error(), path) {
		t.Fatalf("error %v does not name %s", err, path)
	}
}
