package sema

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (r *resolver) resolveName(name *ast.Name) {
	ref, sym := r.lookup(name.Id)
	name.Ref = ref
	if sym != nil {
		sym.AddRef(name.Id.Span())
	}
}

func (r *resolver) resolveExprs(list []ast.Expr) {
	for _, e := range list {
		r.resolveExpr(e)
	}
}

func (r *resolver) resolveOpt(e *ast.Expr) {
	if e != nil {
		r.resolveExpr(*e)
	}
}

func (r *resolver) resolveExpr(e ast.Expr) {
	if !e.IsValid() {
		return
	}
	switch e.Kind() {
	case ast.ExprKindName:
		r.resolveName(e.Name())
	case ast.ExprKindNumber, ast.ExprKindString, ast.ExprKindBool, ast.ExprKindNone:
	case ast.ExprKindFString:
		for _, part := range e.FString().Parts {
			if part.Field != nil {
				r.resolveExpr(part.Field.Value)
			}
		}
	case ast.ExprKindList:
		r.resolveExprs(e.List().Elts)
	case ast.ExprKindTuple:
		r.resolveExprs(e.Tuple().Elts)
	case ast.ExprKindSet:
		r.resolveExprs(e.Set().Elts)
	case ast.ExprKindDict:
		for _, entry := range e.Dict().Entries {
			r.resolveOpt(entry.Key)
			r.resolveExpr(entry.Value)
		}
	case ast.ExprKindComprehension:
		r.resolveComprehension(e.Comprehension())
	case ast.ExprKindBinary:
		r.resolveExpr(e.Binary().Left)
		r.resolveExpr(e.Binary().Right)
	case ast.ExprKindUnary:
		r.resolveExpr(e.Unary().Value)
	case ast.ExprKindBoolOp:
		r.resolveExpr(e.BoolOp().Left)
		r.resolveExpr(e.BoolOp().Right)
	case ast.ExprKindCompare:
		r.resolveExpr(e.Compare().Left)
		r.resolveExprs(e.Compare().Comparators)
	case ast.ExprKindTernary:
		t := e.Ternary()
		r.resolveExpr(t.Cond)
		r.resolveExpr(t.Then)
		r.resolveExpr(t.Else)
	case ast.ExprKindLambda:
		r.resolveLambda(e.Lambda())
	case ast.ExprKindAwait:
		r.resolveExpr(e.Await().Value)
	case ast.ExprKindYield:
		r.resolveOpt(e.Yield().Value)
	case ast.ExprKindYieldFrom:
		r.resolveExpr(e.YieldFrom().Value)
	case ast.ExprKindCall:
		c := e.Call()
		r.resolveExpr(c.Func)
		for _, arg := range c.Args {
			r.resolveExpr(arg.Value)
		}
	case ast.ExprKindAttribute:
		r.resolveExpr(e.Attribute().Value)
	case ast.ExprKindSubscript:
		r.resolveExpr(e.Subscript().Value)
		r.resolveExpr(e.Subscript().Index)
	case ast.ExprKindSlice:
		s := e.Slice()
		r.resolveOpt(s.Lower)
		r.resolveOpt(s.Upper)
		r.resolveOpt(s.Step)
	case ast.ExprKindStarred:
		r.resolveExpr(e.Starred().Value)
	case ast.ExprKindNamed:
		r.resolveExpr(e.Named().Value)
		// the target binds outside any enclosing comprehension
		name := e.Named().Target.Name()
		ref, sym := r.storeIn(r.scope.bindingScope(), name.Id)
		name.Ref = ref
		if sym != nil {
			sym.AddRef(name.Id.Span())
		}
	case ast.ExprKindJSX:
		r.resolveJSX(e.JSX())
	}
}

func (r *resolver) resolveLambda(l *ast.Lambda) {
	r.resolveParamDefaults(l.Params)

	scope := r.pushScope(ScopeLambda)
	scope.collectParams(l.Params)
	if l.Expr != nil {
		scope.collectExpr(*l.Expr)
		r.resolveExpr(*l.Expr)
	} else {
		scope.collectBody(l.Body)
		r.checkNonlocals(l.Body)
		r.resolveBody(l.Body)
	}
	declared := markDeclarations(scope, l.Body)
	l.Locals = scope.Locals(declared)
	r.popScope()
}

// resolveComprehension resolves the first iterable in the enclosing scope
// and everything else in the comprehension's own scope.
func (r *resolver) resolveComprehension(c *ast.Comprehension) {
	first := true
	for _, clause := range c.Clauses {
		if !clause.IsFilter() {
			r.resolveExpr(clause.Iter)
			break
		}
	}

	scope := r.pushScope(ScopeComprehension)
	for _, clause := range c.Clauses {
		if clause.Target != nil {
			scope.collectTarget(*clause.Target)
		}
	}
	for _, clause := range c.Clauses {
		if clause.IsFilter() {
			r.resolveExpr(clause.Cond)
			continue
		}
		if !first {
			r.resolveExpr(clause.Iter)
		}
		first = false
		r.resolveTarget(*clause.Target)
	}
	r.resolveOpt(c.Key)
	r.resolveExpr(c.Elt)
	r.popScope()
}

func (r *resolver) resolveJSX(el *ast.JSXElement) {
	r.resolveOpt(el.TagExpr)
	for _, attr := range el.Attrs {
		r.resolveOpt(attr.Value)
	}
	for _, child := range el.Children {
		r.resolveOpt(child.Expr)
		if child.Element != nil {
			r.resolveJSX(child.Element)
		}
	}
}
