package preprocess

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pyjs-lang/pyjs/common"
)

func TestPreprocess(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		macros map[string]string
		want   string
	}{
		{
			name:  "no directives is unchanged",
			input: "x = 1\n# a comment\ny = 2\n",
			want:  "x = 1\n# a comment\ny = 2\n",
		},
		{
			name:  "ifdef keeps line count",
			input: "#ifdef DEBUG\nlog(1)\n#else\nlog(2)\n#endif\nz = 3",
			want:  "\n\n\nlog(2)\n\nz = 3",
		},
		{
			name:   "ifdef with default macro",
			input:  "#ifdef DEBUG\nlog(1)\n#endif",
			macros: map[string]string{"DEBUG": ""},
			want:   "\nlog(1)\n",
		},
		{
			name:  "if tests the value",
			input: "#define LEVEL 0\n#if LEVEL\na\n#else\nb\n#endif",
			want:  "\n\n\n\nb\n",
		},
		{
			name:  "ifndef and undef",
			input: "#define A\n#undef A\n#ifndef A\nyes\n#endif",
			want:  "\n\n\nyes\n",
		},
		{
			name:  "substitution skips strings",
			input: "#define SIZE 10\nn = SIZE + len(\"SIZE\") + len('SIZE')",
			want:  "\nn = 10 + len(\"SIZE\") + len('SIZE')",
		},
		{
			name:  "nested inactive region",
			input: "#ifdef A\n#ifdef B\nx\n#else\ny\n#endif\n#endif\nz",
			want:  "\n\n\n\n\n\n\nz",
		},
		{
			name:  "define inside inactive region is ignored",
			input: "#ifdef A\n#define N 1\n#endif\nN",
			want:  "\n\n\nN",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Preprocess(tt.input, tt.macros)
			if err != nil {
				t.Fatalf("Preprocess failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPreprocessErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  uint32
	}{
		{"else without if", "x\n#else\n", 2},
		{"endif without if", "#endif\n", 1},
		{"unclosed if", "a\n#ifdef X\nb\n", 2},
		{"duplicate else", "#ifdef X\n#else\n#else\n#endif\n", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Preprocess(tt.input, nil)
			if err == nil {
				t.Fatal("Preprocess succeeded, want error")
			}
			if err.Kind != common.ErrPreprocessor || err.Stage != common.StagePreprocess {
				t.Errorf("got %v/%v", err.Stage, err.Kind)
			}
			if err.Line() != tt.line {
				t.Errorf("line = %d, want %d", err.Line(), tt.line)
			}
		})
	}
}

func TestDefines(t *testing.T) {
	got, err := Defines([]string{"DEBUG", "LEVEL=2"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"DEBUG": "", "LEVEL": "2"}, got); diff != "" {
		t.Errorf("defines mismatch (-want +got):\n%s", diff)
	}
	for _, name := range []string{"bad-name", "1BAD", "=1"} {
		if _, err := Defines([]string{name}); err == nil {
			t.Errorf("Defines(%q) succeeded, want an error", name)
		}
	}
}
