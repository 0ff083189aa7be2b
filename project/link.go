package project

import (
	"fmt"
	"path/filepath"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// link fails the results whose relative imports name a binding the
// imported module does not export. Imports of files outside results are
// left to the JavaScript loader.
func link(results []Result) {
	exports := make(map[string]map[string]bool, len(results))
	for _, res := range results {
		if res.Err != nil || res.prog == nil {
			continue
		}
		names := make(map[string]bool, len(res.prog.Exports))
		for _, name := range res.prog.Exports {
			names[name] = true
		}
		exports[common.FilePathClean(res.Path)] = names
	}

	for i := range results {
		res := &results[i]
		if res.Err != nil || res.prog == nil {
			continue
		}
		if err := checkImports(res, exports); err != nil {
			res.Err, res.Code = err, ""
		}
	}
}

func checkImports(res *Result, exports map[string]map[string]bool) *common.Error {
	for _, stmt := range res.prog.Body {
		imp, ok := stmt.(*ast.ImportFrom)
		if !ok || imp.Star {
			continue
		}
		target := importTarget(res.Path, imp.Module)
		names, ok := exports[target]
		if target == "" || !ok {
			continue
		}
		for _, alias := range imp.Names {
			if alias.Name.Raw == "default" || names[alias.Name.Raw] {
				continue
			}
			return common.NewError(common.StageTranspile, common.ErrUndefinedVariable,
				fmt.Sprintf("module '%s' does not export '%s'", imp.Module.Dotted(), alias.Name.Raw),
				alias.Name.Span())
		}
	}
	return nil
}

// importTarget is the source file a relative module reference in from
// points to, or "" for other references.
func importTarget(from string, ref ast.ModuleRef) string {
	if ref.Spec != nil || ref.Level == 0 {
		return ""
	}
	dir := filepath.Dir(from)
	for range ref.Level - 1 {
		dir = filepath.Dir(dir)
	}
	if len(ref.Path) == 0 {
		return common.FilePathClean(filepath.Join(dir, "index"+SourceExt))
	}
	parts := make([]string, len(ref.Path))
	for i, seg := range ref.Path {
		parts[i] = seg.Raw
	}
	return common.FilePathClean(filepath.Join(dir, filepath.Join(parts...)+SourceExt))
}
