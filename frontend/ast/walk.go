package ast

// Inspect traverses the tree rooted at node in depth-first order. It calls
// f(n) for every statement, expression and pattern; children are visited only
// when f returns true.
func Inspect(node Node, f func(Node) bool) {
	if node == nil {
		return
	}
	if e, ok := node.(Expr); ok && !e.IsValid() {
		return
	}
	if !f(node) {
		return
	}

	stmts := func(list []Stmt) {
		for _, s := range list {
			Inspect(s, f)
		}
	}
	exprs := func(list []Expr) {
		for _, e := range list {
			Inspect(e, f)
		}
	}
	opt := func(e *Expr) {
		if e != nil {
			Inspect(*e, f)
		}
	}
	params := func(list []Param) {
		for _, p := range list {
			opt(p.Annotation)
			opt(p.Default)
		}
	}

	switch n := node.(type) {
	case *Program:
		stmts(n.Body)

	// statements
	case *FunctionDef:
		exprs(n.Decorators)
		params(n.Params)
		opt(n.Returns)
		stmts(n.Body)
	case *ClassDef:
		exprs(n.Decorators)
		exprs(n.Bases)
		stmts(n.Body)
	case *If:
		Inspect(n.Cond, f)
		stmts(n.Body)
		stmts(n.Else)
	case *For:
		Inspect(n.Target, f)
		Inspect(n.Iter, f)
		stmts(n.Body)
		stmts(n.Else)
	case *While:
		Inspect(n.Cond, f)
		stmts(n.Body)
		stmts(n.Else)
	case *Try:
		stmts(n.Body)
		for _, h := range n.Handlers {
			opt(h.Type)
			stmts(h.Body)
		}
		stmts(n.Else)
		stmts(n.Finally)
	case *With:
		for _, item := range n.Items {
			Inspect(item.Context, f)
			opt(item.Target)
		}
		stmts(n.Body)
	case *Match:
		Inspect(n.Subject, f)
		for _, c := range n.Cases {
			Inspect(c.Pattern, f)
			opt(c.Guard)
			stmts(c.Body)
		}
	case *Export:
		if n.Decl != nil {
			Inspect(n.Decl, f)
		}
	case *Assign:
		exprs(n.Targets)
		Inspect(n.Value, f)
	case *AugAssign:
		Inspect(n.Target, f)
		Inspect(n.Value, f)
	case *AnnAssign:
		Inspect(n.Target, f)
		Inspect(n.Annotation, f)
		opt(n.Value)
	case *Return:
		opt(n.Value)
	case *Raise:
		opt(n.Exc)
		opt(n.Cause)
	case *Delete:
		exprs(n.Targets)
	case *Assert:
		Inspect(n.Test, f)
		opt(n.Msg)
	case *ExprStmt:
		Inspect(n.Value, f)
	case *Import, *ImportFrom, *Pass, *Break, *Continue, *Global, *Nonlocal:

	// expressions
	case Expr:
		inspectExpr(n, f, stmts, exprs, opt, params)

	// patterns
	case *PatternLiteral:
		Inspect(n.Value, f)
	case *PatternValue:
		Inspect(n.Value, f)
	case *PatternSequence:
		for _, p := range n.Elts {
			Inspect(p, f)
		}
	case *PatternMapping:
		exprs(n.Keys)
		for _, p := range n.Values {
			Inspect(p, f)
		}
	case *PatternClass:
		Inspect(n.Class, f)
		for _, p := range n.Args {
			Inspect(p, f)
		}
		for _, p := range n.KwValues {
			Inspect(p, f)
		}
	case *PatternOr:
		for _, p := range n.Alts {
			Inspect(p, f)
		}
	case *PatternAs:
		Inspect(n.Pattern, f)
	case *PatternCapture, *PatternWildcard, *PatternStar:
	}
}

func inspectExpr(e Expr, f func(Node) bool, stmts func([]Stmt), exprs func([]Expr), opt func(*Expr), params func([]Param)) {
	switch e.Kind() {
	case ExprKindFString:
		for _, part := range e.FString().Parts {
			if part.Field != nil {
				Inspect(part.Field.Value, f)
			}
		}
	case ExprKindList:
		exprs(e.List().Elts)
	case ExprKindTuple:
		exprs(e.Tuple().Elts)
	case ExprKindSet:
		exprs(e.Set().Elts)
	case ExprKindDict:
		for _, entry := range e.Dict().Entries {
			opt(entry.Key)
			Inspect(entry.Value, f)
		}
	case ExprKindComprehension:
		c := e.Comprehension()
		for _, clause := range c.Clauses {
			if clause.IsFilter() {
				Inspect(clause.Cond, f)
				continue
			}
			Inspect(clause.Iter, f)
			opt(clause.Target)
		}
		opt(c.Key)
		Inspect(c.Elt, f)
	case ExprKindBinary:
		Inspect(e.Binary().Left, f)
		Inspect(e.Binary().Right, f)
	case ExprKindUnary:
		Inspect(e.Unary().Value, f)
	case ExprKindBoolOp:
		Inspect(e.BoolOp().Left, f)
		Inspect(e.BoolOp().Right, f)
	case ExprKindCompare:
		Inspect(e.Compare().Left, f)
		exprs(e.Compare().Comparators)
	case ExprKindTernary:
		t := e.Ternary()
		Inspect(t.Then, f)
		Inspect(t.Cond, f)
		Inspect(t.Else, f)
	case ExprKindLambda:
		l := e.Lambda()
		params(l.Params)
		opt(l.Expr)
		stmts(l.Body)
	case ExprKindAwait:
		Inspect(e.Await().Value, f)
	case ExprKindYield:
		opt(e.Yield().Value)
	case ExprKindYieldFrom:
		Inspect(e.YieldFrom().Value, f)
	case ExprKindCall:
		c := e.Call()
		Inspect(c.Func, f)
		for _, arg := range c.Args {
			Inspect(arg.Value, f)
		}
	case ExprKindAttribute:
		Inspect(e.Attribute().Value, f)
	case ExprKindSubscript:
		Inspect(e.Subscript().Value, f)
		Inspect(e.Subscript().Index, f)
	case ExprKindSlice:
		s := e.Slice()
		opt(s.Lower)
		opt(s.Upper)
		opt(s.Step)
	case ExprKindStarred:
		Inspect(e.Starred().Value, f)
	case ExprKindNamed:
		Inspect(e.Named().Value, f)
		Inspect(e.Named().Target, f)
	case ExprKindJSX:
		inspectJSX(e.JSX(), f, opt)
	}
}

func inspectJSX(el *JSXElement, f func(Node) bool, opt func(*Expr)) {
	opt(el.TagExpr)
	for _, attr := range el.Attrs {
		opt(attr.Value)
	}
	for _, child := range el.Children {
		opt(child.Expr)
		if child.Element != nil {
			inspectJSX(child.Element, f, opt)
		}
	}
}
