package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/project"
)

// printError writes `file:line:col: kind: message` and the offending line.
func printError(w io.Writer, err *common.Error, code string) {
	fmt.Fprintln(w, err.Error())
	if snippet := err.Snippet(code); snippet != "" {
		fmt.Fprintln(w, snippet)
	}
}

// report prints the compile errors of results and returns how many there
// were.
func report(w io.Writer, results []project.Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			printError(w, res.Err, res.Source)
			n++
		}
	}
	return n
}

// openProject loads the project at dir. Without a project file the
// standalone configuration is used.
func openProject(dir string) (*project.Project, error) {
	_, err := os.Stat(filepath.Join(dir, frontend.ConfigFile))
	if errors.Is(err, os.ErrNotExist) {
		root, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		return project.New(root, frontend.StandaloneToml())
	}
	return project.Load(dir)
}
