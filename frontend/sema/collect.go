package sema

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// collectParams binds the parameters of a function or lambda.
func (s *Scope) collectParams(params []ast.Param) {
	for _, param := range params {
		s.params[param.Name.Raw] = true
		s.AddSymbol(param.Name, ast.SymParam)
	}
}

// collectBody records every name the statements bind in s, without entering
// nested functions, lambdas or classes.
func (s *Scope) collectBody(body []ast.Stmt) {
	for _, stmt := range body {
		ast.Inspect(stmt, s.collectNode)
	}
}

func (s *Scope) collectExpr(e ast.Expr) {
	ast.Inspect(e, s.collectNode)
}

func (s *Scope) collectNode(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.FunctionDef:
		s.AddSymbol(n.Name, ast.SymFunction)
		return false
	case *ast.ClassDef:
		s.AddSymbol(n.Name, ast.SymClass)
		return false
	case *ast.Assign:
		for _, target := range n.Targets {
			s.collectTarget(target)
		}
	case *ast.AugAssign:
		s.collectTarget(n.Target)
	case *ast.AnnAssign:
		s.collectTarget(n.Target)
		if n.Value != nil {
			s.collectExpr(*n.Value)
		}
		return false
	case *ast.For:
		s.collectTarget(n.Target)
	case *ast.With:
		for _, item := range n.Items {
			if item.Target != nil {
				s.collectTarget(*item.Target)
			}
		}
	case *ast.Try:
		for _, h := range n.Handlers {
			if h.Name != nil {
				s.AddSymbol(*h.Name, ast.SymVariable)
			}
		}
	case *ast.Match:
		for _, c := range n.Cases {
			for _, id := range ast.PatternBindings(c.Pattern) {
				s.AddSymbol(id, ast.SymVariable)
			}
		}
	case *ast.Import:
		for _, name := range n.Names {
			if id, ok := importBinding(name); ok {
				s.imports[id.Raw] = true
				s.AddSymbol(id, ast.SymImport)
			}
		}
	case *ast.ImportFrom:
		for _, alias := range n.Names {
			id := alias.Bound()
			s.imports[id.Raw] = true
			s.AddSymbol(id, ast.SymImport)
		}
	case *ast.Delete:
		for _, target := range n.Targets {
			s.collectTarget(target)
		}
	case *ast.Global:
		for _, id := range n.Names {
			s.Globals[id.Raw] = true
		}
	case *ast.Nonlocal:
		for _, id := range n.Names {
			s.Nonlocals[id.Raw] = true
		}
	case ast.Expr:
		switch n.Kind() {
		case ast.ExprKindLambda:
			return false
		case ast.ExprKindComprehension:
			// clause targets belong to the comprehension; walrus targets
			// inside it still bind here
			c := n.Comprehension()
			for _, clause := range c.Clauses {
				if clause.IsFilter() {
					s.collectExpr(clause.Cond)
				} else {
					s.collectExpr(clause.Iter)
				}
			}
			if c.Key != nil {
				s.collectExpr(*c.Key)
			}
			s.collectExpr(c.Elt)
			return false
		case ast.ExprKindNamed:
			s.collectTarget(n.Named().Target)
		}
	}
	return true
}

// collectTarget binds the names of an assignment target. Attribute and
// subscript targets bind nothing.
func (s *Scope) collectTarget(target ast.Expr) {
	switch target.Kind() {
	case ast.ExprKindName:
		s.AddSymbol(target.Name().Id, ast.SymVariable)
	case ast.ExprKindStarred:
		s.collectTarget(target.Starred().Value)
	case ast.ExprKindTuple:
		for _, elt := range target.Tuple().Elts {
			s.collectTarget(elt)
		}
	case ast.ExprKindList:
		for _, elt := range target.List().Elts {
			s.collectTarget(elt)
		}
	}
}

// importBinding is the local name `import m` introduces: the alias, or the
// last segment of a dotted path. A bare string import binds nothing.
func importBinding(name ast.ImportName) (Ident, bool) {
	if name.Alias != nil {
		return *name.Alias, true
	}
	if path := name.Module.Path; len(path) > 0 {
		return path[len(path)-1], true
	}
	return Ident{}, false
}

// ImportBinding is exported for the code generator, which must agree on the
// bound name.
func ImportBinding(name ast.ImportName) (string, bool) {
	id, ok := importBinding(name)
	return id.Raw, ok
}
