// Package project drives the compiler over a whole project: it loads
// pyjs.toml, finds the sources and transpiles them into the output tree.
package project

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pyjs-lang/pyjs/backend"
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
	"github.com/pyjs-lang/pyjs/frontend/parser"
	"github.com/pyjs-lang/pyjs/frontend/preprocess"
)

// SourceExt is the extension of source files.
const SourceExt = ".pyjs"

type Config = frontend.PyjsToml

// Project is a workspace with its configuration.
type Project struct {
	Root   string
	Config Config

	macros    map[string]string
	overrides map[string]string
}

// Load reads the configuration of the project rooted at root.
func Load(root string) (*Project, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	cfg, err := frontend.ReadPyjsToml(root)
	if err != nil {
		return nil, err
	}
	return New(root, cfg)
}

// New creates a project from an already loaded configuration.
func New(root string, cfg Config) (*Project, error) {
	macros, err := preprocess.Defines(cfg.Defines)
	if err != nil {
		return nil, fmt.Errorf("defines: %w", err)
	}
	return &Project{
		Root:      root,
		Config:    cfg,
		macros:    macros,
		overrides: make(map[string]string),
	}, nil
}

// Override makes the project read code instead of the file at path. Editors
// use it for unsaved buffers.
func (p *Project) Override(path, code string) {
	p.overrides[common.FilePathClean(path)] = code
}

func (p *Project) DropOverride(path string) {
	delete(p.overrides, common.FilePathClean(path))
}

func (p *Project) SrcDir() string {
	return filepath.Join(p.Root, p.Config.Src)
}

func (p *Project) OutDir() string {
	if filepath.IsAbs(p.Config.Out) {
		return p.Config.Out
	}
	return filepath.Join(p.Root, p.Config.Out)
}

// Jobs is the number of files compiled at once.
func (p *Project) Jobs() int {
	if p.Config.Jobs > 0 {
		return p.Config.Jobs
	}
	return runtime.NumCPU()
}

func (p *Project) debugf(format string, args ...any) {
	if p.Config.Debug {
		log.Printf(format, args...)
	}
}

// Files lists the source files of the project in a stable order.
func (p *Project) Files() ([]string, error) {
	var files []string
	err := filepath.WalkDir(p.SrcDir(), func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != p.SrcDir() && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", p.SrcDir(), err)
	}
	slices.Sort(files)
	return files, nil
}

// RelPath is path relative to the project root, with forward slashes. Error
// positions and logs use it.
func (p *Project) RelPath(path string) string {
	rel, err := filepath.Rel(p.Root, path)
	if err != nil {
		return common.FilePathClean(path)
	}
	return common.FilePathClean(rel)
}

// OutputPath maps a source file to its module in the output tree:
// src/app/main.pyjs -> out/app/main.js.
func (p *Project) OutputPath(path string) string {
	rel, err := filepath.Rel(p.SrcDir(), path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return filepath.Join(p.OutDir(), common.ReplaceExt(rel, ".js"))
}

func (p *Project) readSource(path string) (string, error) {
	if code, ok := p.overrides[common.FilePathClean(path)]; ok {
		return code, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// BackendOptions are the code generation settings of the project.
func (p *Project) BackendOptions() backend.Options {
	return backend.Options{
		Runtime:         p.Config.Runtime,
		ImportExtension: p.Config.ImportExtension,
		JSXFactory:      p.Config.JSXFactory,
		JSXFragment:     p.Config.JSXFragment,
		JSXImportSource: p.Config.JSXImportSource,
	}
}

// Analyze runs the front end over code: preprocessing, lexing, parsing and
// name resolution. src names the file in error positions.
func (p *Project) Analyze(src, code string) (*ast.Program, *common.Error) {
	code, err := preprocess.Preprocess(code, p.macros)
	if err != nil {
		err.Span.Source = src
		return nil, err
	}
	toks, err := lexer.LexWithOptions(src, code, lexer.Options{TabWidth: p.Config.TabWidth})
	if err != nil {
		return nil, err
	}
	return parser.ParseWithOptions(toks, parser.Options{Globals: p.Config.Globals})
}

// CompileSource transpiles one compilation unit.
func (p *Project) CompileSource(src, code string) (*backend.Module, *common.Error) {
	_, mod, err := p.compile(src, code)
	return mod, err
}

func (p *Project) compile(src, code string) (*ast.Program, *backend.Module, *common.Error) {
	prog, err := p.Analyze(src, code)
	if err != nil {
		return nil, nil, err
	}
	mod, err := backend.Transpile(prog, p.BackendOptions())
	if err != nil {
		return nil, nil, err
	}
	return prog, mod, nil
}
