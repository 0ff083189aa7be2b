package backend

import (
	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/sema"
)

// collectUserNames returns every JavaScript name the program binds or
// references, so runtime imports can avoid them.
func collectUserNames(prog *ast.Program) map[string]bool {
	names := make(map[string]bool)
	add := func(id ast.Ident) { names[resolver.SafeName(id.Raw)] = true }
	addParams := func(params []ast.Param) {
		for _, p := range params {
			add(p.Name)
		}
	}
	ast.Inspect(prog, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.FunctionDef:
			add(n.Name)
			addParams(n.Params)
		case *ast.ClassDef:
			add(n.Name)
		case *ast.Try:
			for _, h := range n.Handlers {
				if h.Name != nil {
					add(*h.Name)
				}
			}
		case *ast.Import:
			for _, name := range n.Names {
				if local, ok := sema.ImportBinding(name); ok {
					names[resolver.SafeName(local)] = true
				}
			}
		case *ast.ImportFrom:
			for _, alias := range n.Names {
				add(alias.Bound())
			}
		case *ast.Global:
			for _, id := range n.Names {
				add(id)
			}
		case ast.Expr:
			switch n.Kind() {
			case ast.ExprKindName:
				if ref := n.Name().Ref; ref != ast.RefBuiltin && ref != ast.RefHost {
					add(n.Name().Id)
				}
			case ast.ExprKindLambda:
				addParams(n.Lambda().Params)
			}
		case ast.Pattern:
			for _, id := range ast.PatternBindings(n) {
				add(id)
			}
		}
		return true
	})
	return names
}

func collectClasses(prog *ast.Program) map[string]bool {
	classes := make(map[string]bool)
	ast.Inspect(prog, func(n ast.Node) bool {
		if c, ok := n.(*ast.ClassDef); ok {
			classes[c.Name.Raw] = true
		}
		return true
	})
	return classes
}

// builtin records the runtime import serving the builtin name and returns
// its local name.
func (cg *Codegen) builtin(name string) string {
	b, ok := cg.resolver.Builtin(name)
	if !ok {
		return resolver.SafeName(name)
	}
	local := b.Export
	if cg.userNames[local] || resolver.IsReserved(local) {
		local = PREFIX + local
	}
	return cg.helpers.Add(b.Export, local)
}

// helper records a construct helper and returns its local name.
func (cg *Codegen) helper(export string) string {
	return cg.helpers.Add(export, resolver.HelperLocal(export))
}

func (cg *Codegen) genName(n *ast.Name) string {
	raw := n.Id.Raw
	switch n.Ref {
	case ast.RefBuiltin:
		return cg.builtin(raw)
	case ast.RefHost:
		return raw
	case ast.RefLocal:
		if fs := cg.currentFunc(); fs.kind == scopeClass && fs.fields[raw] {
			return "this." + raw
		}
	}
	return resolver.SafeName(raw)
}

// isConstructor reports whether a call through name needs `new`.
func (cg *Codegen) isConstructor(n *ast.Name) bool {
	raw := n.Id.Raw
	switch n.Ref {
	case ast.RefHost:
		return frontend.IsHostConstructor(raw)
	case ast.RefBuiltin:
		return frontend.IsBuiltinClass(raw)
	case ast.RefGlobal, ast.RefLocal:
		return cg.classes[raw]
	}
	return false
}
