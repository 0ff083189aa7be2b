package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// Result is the outcome of compiling one file.
type Result struct {
	Path   string // source file
	Output string // module path in the output tree
	Code   string
	Err    *common.Error
	Source string // the code that was compiled, for error snippets

	prog *ast.Program
}

// Compile transpiles files concurrently, at most Jobs at a time. A failing
// file does not stop the others; its error is kept in its Result. The
// returned error is only set when a file could not be read or ctx was
// cancelled, which is checked between files. Relative imports between the
// files are checked against the names the target module exports.
func (p *Project) Compile(ctx context.Context, files []string) ([]Result, error) {
	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.Jobs())
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			code, err := p.readSource(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", p.RelPath(path), err)
			}
			start := time.Now()
			prog, mod, cerr := p.compile(p.RelPath(path), code)
			res := Result{Path: path, Output: p.OutputPath(path), Source: code, Err: cerr, prog: prog}
			if cerr == nil {
				res.Code = mod.Code
			}
			results[i] = res
			p.debugf("compiled %s in %s", p.RelPath(path), time.Since(start))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	link(results)
	return results, nil
}

// Build compiles every source file and writes the modules that compiled.
// The error joins the failures of all files.
func (p *Project) Build(ctx context.Context) ([]Result, error) {
	files, err := p.Files()
	if err != nil {
		return nil, err
	}
	p.debugf("building %d files from %s", len(files), p.SrcDir())
	results, err := p.Compile(ctx, files)
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
			continue
		}
		if err := writeOutput(res.Output, res.Code); err != nil {
			errs = append(errs, err)
		}
	}
	return results, errors.Join(errs...)
}

// Check compiles every source file without writing anything.
func (p *Project) Check(ctx context.Context) ([]Result, error) {
	files, err := p.Files()
	if err != nil {
		return nil, err
	}
	results, err := p.Compile(ctx, files)
	if err != nil {
		return nil, err
	}
	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return results, errors.Join(errs...)
}

func writeOutput(path, code string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
