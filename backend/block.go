package backend

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (cg *Codegen) genBlock(body []ast.Stmt) {
	for _, stmt := range body {
		cg.genStmt(stmt)
	}
}

// genBraced writes `header {`, the body and the closing brace.
func (cg *Codegen) genBraced(body []ast.Stmt, format string, args ...any) {
	cg.open(format, args...)
	cg.genBlock(body)
	cg.close("")
}

// genElse continues an open `if` with its else branches, chaining a lone
// nested if as `else if`.
func (cg *Codegen) genElse(els []ast.Stmt) {
	for len(els) == 1 {
		inner, ok := els[0].(*ast.If)
		if !ok {
			break
		}
		cg.popIndent()
		cg.ln("} else if (%s) {", cg.genExpr(inner.Cond))
		cg.pushIndent()
		cg.genBlock(inner.Body)
		els = inner.Else
	}
	if len(els) > 0 {
		cg.popIndent()
		cg.ln("} else {")
		cg.pushIndent()
		cg.genBlock(els)
	}
}
