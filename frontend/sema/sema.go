// Package sema resolves the names of a parsed program: it builds the scope of
// every module, function, lambda, class body and comprehension, classifies
// each name reference and reports references to undefined names.
package sema

import (
	"fmt"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

type Span = common.Span
type Ident = ast.Ident
type Symbol = ast.Symbol

type Options struct {
	// Globals are extra host names, such as `React`, accepted without a
	// binding.
	Globals []string
}

type resolver struct {
	module *Scope
	scope  *Scope
	hosts  map[string]bool

	// module-level names bound so far, in source order
	defined map[string]bool

	symbols []*Symbol
}

// Resolve annotates every name in prog with what it refers to and fills the
// hoisting lists of the program and its functions.
func Resolve(prog *ast.Program, opts Options) (err *common.Error) {
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(*common.Error)
			if !ok {
				panic(r)
			}
			err = e
		}
	}()

	r := &resolver{
		hosts:   make(map[string]bool),
		defined: make(map[string]bool),
	}
	for _, name := range opts.Globals {
		r.hosts[name] = true
	}

	r.module = NewScope(nil, ScopeModule)
	r.scope = r.module
	r.module.collectBody(prog.Body)
	r.collectGlobalDecls(prog)

	r.resolveBody(prog.Body)
	for _, name := range r.module.order {
		r.symbols = append(r.symbols, r.module.Symbols[name])
	}

	declared := markDeclarations(r.module, prog.Body)
	prog.Locals = r.module.Locals(declared)
	prog.Exports = r.exports(prog)
	prog.Symbols = r.symbols
	return nil
}

func (r *resolver) errorf(kind common.ErrorKind, span Span, format string, args ...any) {
	common.PanicError(common.StageParse, kind, fmt.Sprintf(format, args...), span)
}

// collectGlobalDecls binds at module level every name a function declares
// `global`, so that functions resolved earlier can see it.
func (r *resolver) collectGlobalDecls(prog *ast.Program) {
	ast.Inspect(prog, func(n ast.Node) bool {
		if g, ok := n.(*ast.Global); ok {
			for _, id := range g.Names {
				if !r.module.Binds(id.Raw) {
					r.module.AddSymbol(id, ast.SymVariable)
				}
			}
		}
		return true
	})
}

func (r *resolver) pushScope(kind ScopeKind) *Scope {
	r.scope = NewScope(r.scope, kind)
	return r.scope
}

func (r *resolver) popScope() {
	for _, name := range r.scope.order {
		if !r.scope.Globals[name] && !r.scope.Nonlocals[name] {
			r.symbols = append(r.symbols, r.scope.Symbols[name])
		}
	}
	r.scope = r.scope.Parent
}

// deferred reports whether code in the current scope runs later than the
// module body around it, so module names bound further down are visible.
func (r *resolver) deferred() bool {
	return r.scope.walkScopes(func(s *Scope) bool {
		return s.IsFunctionLike()
	})
}

// lookup classifies a read of name from the current scope.
func (r *resolver) lookup(name Ident) (ast.RefKind, *Symbol) {
	raw := name.Raw
	var (
		kind ast.RefKind
		sym  *Symbol
	)
	deferred := false
	r.scope.walkScopes(func(s *Scope) bool {
		// class bodies are not visible to the functions nested in them
		if s.Kind == ScopeClass && s != r.scope && s != r.scope.bindingScope() {
			return false
		}
		if s.Kind == ScopeModule {
			if s.Binds(raw) && (deferred || r.defined[raw]) {
				kind, sym = moduleRef(s, raw), s.GetSymbol(raw)
			}
			return true
		}
		if s.Globals[raw] {
			if mod := s.Module(); mod.Binds(raw) {
				kind, sym = ast.RefGlobal, mod.GetSymbol(raw)
			}
			return true
		}
		if s.Binds(raw) && !s.Nonlocals[raw] {
			kind, sym = ast.RefLocal, s.GetSymbol(raw)
			return true
		}
		if s.IsFunctionLike() {
			deferred = true
		}
		return false
	})
	if kind != ast.RefUnresolved {
		return kind, sym
	}

	switch {
	case frontend.IsBuiltin(raw):
		return ast.RefBuiltin, nil
	case raw == "super", frontend.IsHostGlobal(raw), r.hosts[raw]:
		return ast.RefHost, nil
	}
	if r.module.Binds(raw) && !r.deferred() {
		r.errorf(common.ErrUndefinedVariable, name.Span(), "'%s' is used before its definition", raw)
	}
	r.errorf(common.ErrUndefinedVariable, name.Span(), "undefined variable '%s'", raw)
	return ast.RefUnresolved, nil
}

func moduleRef(module *Scope, name string) ast.RefKind {
	if module.imports[name] {
		return ast.RefImport
	}
	return ast.RefGlobal
}

func (r *resolver) store(name Ident) (ast.RefKind, *Symbol) {
	return r.storeIn(r.scope, name)
}

// storeIn classifies a write of name into scope s and, at module level,
// marks it defined from here on.
func (r *resolver) storeIn(s *Scope, name Ident) (ast.RefKind, *Symbol) {
	raw := name.Raw
	switch {
	case s.Kind == ScopeModule || s.Globals[raw]:
		r.defined[raw] = true
		return moduleRef(r.module, raw), r.module.GetSymbol(raw)
	case s.Nonlocals[raw]:
		for outer := s.Parent; outer != nil; outer = outer.Parent {
			if outer.IsFunctionLike() && outer.Binds(raw) && !outer.Nonlocals[raw] {
				return ast.RefLocal, outer.GetSymbol(raw)
			}
		}
	}
	return ast.RefLocal, s.GetSymbol(raw)
}

// checkNonlocals verifies that every `nonlocal` name of the current scope is
// bound by an enclosing function.
func (r *resolver) checkNonlocals(body []ast.Stmt) {
	for _, stmt := range body {
		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.Nonlocal:
				for _, id := range n.Names {
					if !r.enclosingBinds(id.Raw) {
						r.errorf(common.ErrInvalidScopeDeclaration, id.Span(), "no binding for nonlocal '%s' found", id.Raw)
					}
				}
			case *ast.FunctionDef, *ast.ClassDef:
				return false
			case ast.Expr:
				return n.Kind() != ast.ExprKindLambda
			}
			return true
		})
	}
}

func (r *resolver) enclosingBinds(name string) bool {
	for outer := r.scope.Parent; outer != nil; outer = outer.Parent {
		if outer.IsFunctionLike() && outer.Binds(name) {
			return true
		}
	}
	return false
}

// exports lists the exported names, each of which must be bound at module
// level.
func (r *resolver) exports(prog *ast.Program) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(id Ident) {
		if !r.module.Binds(id.Raw) {
			r.errorf(common.ErrUndefinedVariable, id.Span(), "cannot export undefined name '%s'", id.Raw)
		}
		if !seen[id.Raw] {
			seen[id.Raw] = true
			out = append(out, id.Raw)
		}
	}
	for _, stmt := range prog.Body {
		export, ok := stmt.(*ast.Export)
		if !ok {
			continue
		}
		for _, id := range export.Names {
			add(id)
		}
		switch decl := export.Decl.(type) {
		case *ast.FunctionDef:
			add(decl.Name)
		case *ast.ClassDef:
			add(decl.Name)
		case *ast.Assign:
			for _, target := range decl.Targets {
				for _, id := range targetNames(target) {
					add(id)
				}
			}
		case *ast.AnnAssign:
			for _, id := range targetNames(decl.Target) {
				add(id)
			}
		}
	}
	return out
}

func targetNames(target ast.Expr) []Ident {
	switch target.Kind() {
	case ast.ExprKindName:
		return []Ident{target.Name().Id}
	case ast.ExprKindStarred:
		return targetNames(target.Starred().Value)
	case ast.ExprKindTuple, ast.ExprKindList:
		var elts []ast.Expr
		if target.Kind() == ast.ExprKindTuple {
			elts = target.Tuple().Elts
		} else {
			elts = target.List().Elts
		}
		var out []Ident
		for _, elt := range elts {
			out = append(out, targetNames(elt)...)
		}
		return out
	}
	return nil
}

// markDeclarations flags the defs and classes of body that can be emitted as
// declarations: undecorated, directly in the body and the only binding of
// their name. It returns their names.
func markDeclarations(s *Scope, body []ast.Stmt) map[string]bool {
	declared := make(map[string]bool)
	single := func(name string) bool {
		return s.counts[name] == 1 && !s.Globals[name] && !s.Nonlocals[name]
	}
	var mark func(stmt ast.Stmt)
	mark = func(stmt ast.Stmt) {
		switch n := stmt.(type) {
		case *ast.FunctionDef:
			if len(n.Decorators) == 0 && single(n.Name.Raw) {
				n.AsDeclaration = true
				declared[n.Name.Raw] = true
			}
		case *ast.ClassDef:
			if len(n.Decorators) == 0 && single(n.Name.Raw) {
				n.AsDeclaration = true
				declared[n.Name.Raw] = true
			}
		case *ast.Export:
			if n.Decl != nil {
				mark(n.Decl)
			}
		}
	}
	for _, stmt := range body {
		mark(stmt)
	}
	return declared
}
