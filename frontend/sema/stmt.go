package sema

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (r *resolver) resolveBody(body []ast.Stmt) {
	for _, stmt := range body {
		r.resolveStmt(stmt)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.FunctionDef:
		r.resolveFunctionDef(s)
	case *ast.ClassDef:
		r.resolveClassDef(s)
	case *ast.If:
		r.resolveExpr(s.Cond)
		r.resolveBody(s.Body)
		r.resolveBody(s.Else)
	case *ast.For:
		r.resolveExpr(s.Iter)
		r.resolveTarget(s.Target)
		r.resolveBody(s.Body)
		r.resolveBody(s.Else)
	case *ast.While:
		r.resolveExpr(s.Cond)
		r.resolveBody(s.Body)
		r.resolveBody(s.Else)
	case *ast.Try:
		r.resolveBody(s.Body)
		for _, h := range s.Handlers {
			if h.Type != nil {
				r.resolveExpr(*h.Type)
			}
			if h.Name != nil {
				r.bindName(*h.Name)
			}
			r.resolveBody(h.Body)
		}
		r.resolveBody(s.Else)
		r.resolveBody(s.Finally)
	case *ast.With:
		for _, item := range s.Items {
			r.resolveExpr(item.Context)
			if item.Target != nil {
				r.resolveTarget(*item.Target)
			}
		}
		r.resolveBody(s.Body)
	case *ast.Match:
		r.resolveExpr(s.Subject)
		for _, c := range s.Cases {
			r.resolvePattern(c.Pattern)
			if c.Guard != nil {
				r.resolveExpr(*c.Guard)
			}
			r.resolveBody(c.Body)
		}
	case *ast.Import:
		for _, name := range s.Names {
			if id, ok := importBinding(name); ok {
				r.bindName(id)
			}
		}
	case *ast.ImportFrom:
		for _, alias := range s.Names {
			r.bindName(alias.Bound())
		}
	case *ast.Export:
		if s.Decl != nil {
			r.resolveStmt(s.Decl)
		}
		for _, id := range s.Names {
			if _, sym := r.lookup(id); sym != nil {
				sym.AddRef(id.Span())
			}
		}
	case *ast.Assign:
		r.resolveExpr(s.Value)
		for _, target := range s.Targets {
			r.resolveTarget(target)
		}
	case *ast.AugAssign:
		r.resolveExpr(s.Value)
		if s.Target.Kind() == ast.ExprKindName {
			r.resolveName(s.Target.Name())
		}
		r.resolveTarget(s.Target)
	case *ast.AnnAssign:
		if s.Value != nil {
			r.resolveExpr(*s.Value)
		}
		r.resolveTarget(s.Target)
	case *ast.Return:
		if s.Value != nil {
			r.resolveExpr(*s.Value)
		}
	case *ast.Raise:
		if s.Exc != nil {
			r.resolveExpr(*s.Exc)
		}
		if s.Cause != nil {
			r.resolveExpr(*s.Cause)
		}
	case *ast.Delete:
		for _, target := range s.Targets {
			r.resolveDelTarget(target)
		}
	case *ast.Assert:
		r.resolveExpr(s.Test)
		if s.Msg != nil {
			r.resolveExpr(*s.Msg)
		}
	case *ast.ExprStmt:
		r.resolveExpr(s.Value)
	case *ast.Pass, *ast.Break, *ast.Continue, *ast.Global, *ast.Nonlocal:
	}
}

func (r *resolver) resolveFunctionDef(def *ast.FunctionDef) {
	for _, dec := range def.Decorators {
		r.resolveExpr(dec)
	}
	r.resolveParamDefaults(def.Params)
	r.bindName(def.Name)
	r.describeFunction(def)

	scope := r.pushScope(ScopeFunction)
	scope.collectParams(def.Params)
	scope.collectBody(def.Body)
	r.checkNonlocals(def.Body)
	r.resolveBody(def.Body)
	declared := markDeclarations(scope, def.Body)
	def.Locals = scope.Locals(declared)
	r.popScope()
}

func (r *resolver) resolveClassDef(class *ast.ClassDef) {
	for _, dec := range class.Decorators {
		r.resolveExpr(dec)
	}
	for _, base := range class.Bases {
		r.resolveExpr(base)
	}

	scope := r.pushScope(ScopeClass)
	scope.collectBody(class.Body)
	r.resolveBody(class.Body)
	r.popScope()

	r.bindName(class.Name)
}

// describeFunction attaches the signature of def to its symbol for hovers.
func (r *resolver) describeFunction(def *ast.FunctionDef) {
	owner := r.scope.bindingScope()
	if owner.Globals[def.Name.Raw] {
		owner = r.module
	}
	sym := owner.GetSymbol(def.Name.Raw)
	if sym == nil {
		return
	}
	sym.Detail = ast.Signature(def)
}

func (r *resolver) resolveParamDefaults(params []ast.Param) {
	for _, param := range params {
		if param.Default != nil {
			r.resolveExpr(*param.Default)
		}
	}
}

// bindName resolves a name introduced by a statement other than an
// assignment: def, class, import and except names.
func (r *resolver) bindName(id Ident) {
	_, sym := r.store(id)
	if sym != nil {
		sym.AddRef(id.Span())
	}
}

func (r *resolver) resolveTarget(target ast.Expr) {
	switch target.Kind() {
	case ast.ExprKindName:
		name := target.Name()
		ref, sym := r.store(name.Id)
		name.Ref = ref
		if sym != nil {
			sym.AddRef(name.Id.Span())
		}
	case ast.ExprKindStarred:
		r.resolveTarget(target.Starred().Value)
	case ast.ExprKindTuple:
		for _, elt := range target.Tuple().Elts {
			r.resolveTarget(elt)
		}
	case ast.ExprKindList:
		for _, elt := range target.List().Elts {
			r.resolveTarget(elt)
		}
	default:
		// attribute and subscript targets only read names
		r.resolveExpr(target)
	}
}

func (r *resolver) resolveDelTarget(target ast.Expr) {
	switch target.Kind() {
	case ast.ExprKindTuple:
		for _, elt := range target.Tuple().Elts {
			r.resolveDelTarget(elt)
		}
	case ast.ExprKindList:
		for _, elt := range target.List().Elts {
			r.resolveDelTarget(elt)
		}
	default:
		r.resolveExpr(target)
	}
}

func (r *resolver) resolvePattern(pattern ast.Pattern) {
	switch p := pattern.(type) {
	case *ast.PatternLiteral:
		r.resolveExpr(p.Value)
	case *ast.PatternValue:
		r.resolveExpr(p.Value)
	case *ast.PatternCapture:
		r.bindName(p.Name)
	case *ast.PatternStar:
		if p.Name != nil {
			r.bindName(*p.Name)
		}
	case *ast.PatternSequence:
		for _, elt := range p.Elts {
			r.resolvePattern(elt)
		}
	case *ast.PatternMapping:
		for _, key := range p.Keys {
			r.resolveExpr(key)
		}
		for _, value := range p.Values {
			r.resolvePattern(value)
		}
		if p.Rest != nil {
			r.bindName(*p.Rest)
		}
	case *ast.PatternClass:
		r.resolveExpr(p.Class)
		for _, arg := range p.Args {
			r.resolvePattern(arg)
		}
		for _, value := range p.KwValues {
			r.resolvePattern(value)
		}
	case *ast.PatternOr:
		for _, alt := range p.Alts {
			r.resolvePattern(alt)
		}
	case *ast.PatternAs:
		r.resolvePattern(p.Pattern)
		r.bindName(p.Name)
	case *ast.PatternWildcard:
	}
}
