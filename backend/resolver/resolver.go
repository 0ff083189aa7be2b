// Package resolver maps imports and builtin references onto ES module
// imports: user imports become `import` declarations with rewritten
// specifiers, builtins and compiler helpers come from the runtime module.
package resolver

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/sema"
)

const DefaultExtension = ".js"

// Binding is where an imported name lives.
type Binding struct {
	Module string
	Export string
}

type Options struct {
	// Runtime is the specifier of the helper library, RuntimeModule when empty.
	Runtime string
	// Extension is appended to relative module paths, ".js" when empty.
	Extension string
}

type Resolver struct {
	runtime   string
	extension string
}

func New(opts Options) *Resolver {
	r := &Resolver{runtime: opts.Runtime, extension: opts.Extension}
	if r.runtime == "" {
		r.runtime = frontend.RuntimeModule
	}
	if r.extension == "" {
		r.extension = DefaultExtension
	}
	return r
}

func (r *Resolver) Runtime() string {
	return r.runtime
}

// Builtin reports where the builtin name is served from.
func (r *Resolver) Builtin(name string) (Binding, bool) {
	export, ok := frontend.BuiltinExport(name)
	if !ok {
		return Binding{}, false
	}
	return Binding{Module: r.runtime, Export: export}, true
}

// Specifier renders the module reference as an ES module specifier. String
// specifiers are used verbatim, dotted names are joined with `/`, relative
// names get the configured extension.
func (r *Resolver) Specifier(ref ast.ModuleRef) string {
	if ref.Spec != nil {
		return *ref.Spec
	}
	segs := make([]string, len(ref.Path))
	for i, seg := range ref.Path {
		segs[i] = seg.Raw
	}
	if ref.Level == 0 {
		return strings.Join(segs, "/")
	}

	var sb strings.Builder
	if ref.Level == 1 {
		sb.WriteString("./")
	} else {
		for range ref.Level - 1 {
			sb.WriteString("../")
		}
	}
	if len(segs) == 0 {
		sb.WriteString("index")
	} else {
		sb.WriteString(strings.Join(segs, "/"))
	}
	sb.WriteString(r.extension)
	return sb.String()
}

// Import rewrites `import a.b.c, x as y, "side-effect"` into one declaration
// per name.
func (r *Resolver) Import(stmt *ast.Import) []string {
	lines := make([]string, 0, len(stmt.Names))
	for _, name := range stmt.Names {
		spec := Quote(r.Specifier(name.Module))
		local, ok := sema.ImportBinding(name)
		if !ok {
			lines = append(lines, fmt.Sprintf("import %s;", spec))
			continue
		}
		lines = append(lines, fmt.Sprintf("import * as %s from %s;", SafeName(local), spec))
	}
	return lines
}

// ImportFrom rewrites `from m import a, b as c`. The name `default` selects
// the default export.
func (r *Resolver) ImportFrom(stmt *ast.ImportFrom) (string, *common.Error) {
	if stmt.Star {
		return "", common.NewError(common.StageTranspile, common.ErrUnsupported,
			fmt.Sprintf("'from %s import *' is not supported", stmt.Module.Dotted()), stmt.Span())
	}

	var def string
	named := make([]string, 0, len(stmt.Names))
	for _, alias := range stmt.Names {
		local := SafeName(alias.Bound().Raw)
		if alias.Name.Raw == "default" {
			def = local
			continue
		}
		if local == alias.Name.Raw {
			named = append(named, local)
		} else {
			named = append(named, alias.Name.Raw+" as "+local)
		}
	}

	var clause string
	switch {
	case def != "" && len(named) > 0:
		clause = fmt.Sprintf("%s, { %s }", def, strings.Join(named, ", "))
	case def != "":
		clause = def
	default:
		clause = fmt.Sprintf("{ %s }", strings.Join(named, ", "))
	}
	return fmt.Sprintf("import %s from %s;", clause, Quote(r.Specifier(stmt.Module))), nil
}
