package backend

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// genComprehension lowers a comprehension into an immediately invoked
// function: an arrow that fills and returns a collection, or a generator
// function for generator expressions.
func (cg *Codegen) genComprehension(c *ast.Comprehension) string {
	async := comprehensionAwaits(c)
	generator := c.Kind == ast.CompGenerator

	// the first iterable is evaluated in the enclosing scope
	first := -1
	var firstIter string
	for i, clause := range c.Clauses {
		if !clause.IsFilter() {
			first, firstIter = i, cg.operand(clause.Iter, LAssign)
			break
		}
	}

	cg.pushTempScope()
	cg.pushFunc(&funcScope{kind: scopeLambda})
	bodyBuf := cg.newBuf()
	cg.pushIndent()

	var result string
	if !generator {
		result = cg.namedTemp(RESULT_PREFIX)
		init := "[]"
		switch c.Kind {
		case ast.CompSet:
			init = "new Set()"
		case ast.CompDict:
			init = "{}"
		}
		cg.ln("const %s = %s;", result, init)
	}
	for i, clause := range c.Clauses {
		if clause.IsFilter() {
			cg.open("if (%s)", cg.genExpr(clause.Cond))
			continue
		}
		iter := firstIter
		if i != first {
			iter = cg.operand(clause.Iter, LAssign)
		}
		head := "for"
		if clause.Async {
			head = "for await"
		}
		cg.open("%s (const %s of %s)", head, cg.genTarget(*clause.Target), iter)
	}
	switch c.Kind {
	case ast.CompList:
		cg.ln("%s.push(%s);", result, cg.operand(c.Elt, LAssign))
	case ast.CompSet:
		cg.ln("%s.add(%s);", result, cg.operand(c.Elt, LAssign))
	case ast.CompDict:
		cg.ln("%s[%s] = %s;", result, cg.genExpr(*c.Key), cg.operand(c.Elt, LAssign))
	case ast.CompGenerator:
		cg.ln("yield %s;", cg.operand(c.Elt, LYield))
	}
	for range c.Clauses {
		cg.close("")
	}
	if !generator {
		cg.ln("return %s;", result)
	}
	cg.popIndent()
	body := cg.restoreBuf(bodyBuf)
	cg.popFunc()
	temps := cg.popTempScope()

	oldBuf := cg.newBuf()
	switch {
	case generator && async:
		cg.writeString("(async function* () {\n")
	case generator:
		cg.writeString("(function* () {\n")
	case async:
		cg.writeString("(await (async () => {\n")
	default:
		cg.writeString("(() => {\n")
	}
	cg.pushIndent()
	cg.genLocals(nil, temps)
	cg.popIndent()
	cg.writeString(body)
	cg.writeIndent()
	if async && !generator {
		cg.writeString("})())")
	} else {
		cg.writeString("})()")
	}
	return cg.restoreBuf(oldBuf)
}

// comprehensionAwaits reports whether c must run in an async function.
// Lambdas are their own functions and are not searched.
func comprehensionAwaits(c *ast.Comprehension) bool {
	found := false
	visit := func(n ast.Node) bool {
		if found {
			return false
		}
		if e, ok := n.(ast.Expr); ok {
			switch e.Kind() {
			case ast.ExprKindAwait:
				found = true
				return false
			case ast.ExprKindLambda:
				return false
			}
		}
		return true
	}
	for _, clause := range c.Clauses {
		if clause.Async {
			return true
		}
		if clause.IsFilter() {
			ast.Inspect(clause.Cond, visit)
		} else {
			ast.Inspect(clause.Iter, visit)
		}
	}
	if c.Key != nil {
		ast.Inspect(*c.Key, visit)
	}
	ast.Inspect(c.Elt, visit)
	return found
}
