package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

type CompileCmd struct {
	File   string `arg:"" type:"existingfile" help:"Source file to transpile."`
	Output string `help:"Write the module to this file instead of stdout." short:"o" type:"path"`
	Path   string `help:"Project whose configuration is used." short:"p" default:"."`
}

func (c *CompileCmd) Run() error {
	p, err := openProject(c.Path)
	if err != nil {
		return err
	}
	code, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	mod, cerr := p.CompileSource(filepath.ToSlash(c.File), string(code))
	if cerr != nil {
		printError(os.Stderr, cerr, string(code))
		return errors.New("compilation failed")
	}
	if c.Output == "" {
		fmt.Print(mod.Code)
		return nil
	}
	if dir := filepath.Dir(c.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(c.Output, []byte(mod.Code), 0o644)
}
