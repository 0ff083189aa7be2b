package backend

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (cg *Codegen) genStmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		cg.genExprStmt(stmt)
	case *ast.Assign:
		cg.genAssign(stmt)
	case *ast.AugAssign:
		cg.genAugAssign(stmt)
	case *ast.AnnAssign:
		if stmt.Value != nil {
			cg.ln("%s = %s;", cg.genTarget(stmt.Target), cg.genExpr(*stmt.Value))
		}
	case *ast.Return:
		if stmt.Value == nil {
			cg.ln("return;")
		} else {
			cg.ln("return %s;", cg.genExpr(*stmt.Value))
		}
	case *ast.Raise:
		cg.genRaise(stmt)
	case *ast.Break:
		if label := cg.innermostLoop().brk; label != "" {
			cg.ln("break %s;", label)
		} else {
			cg.ln("break;")
		}
	case *ast.Continue:
		cg.ln("continue;")
	case *ast.Pass, *ast.Global, *ast.Nonlocal:
	case *ast.Delete:
		cg.genDelete(stmt)
	case *ast.Assert:
		cg.genAssert(stmt)
	case *ast.If:
		cg.open("if (%s)", cg.genExpr(stmt.Cond))
		cg.genBlock(stmt.Body)
		cg.genElse(stmt.Else)
		cg.close("")
	case *ast.For:
		cg.genFor(stmt)
	case *ast.While:
		cg.withLoopElse(stmt.Else, func() {
			cg.genBraced(stmt.Body, "while (%s)", cg.genExpr(stmt.Cond))
		})
	case *ast.Try:
		cg.genTry(stmt)
	case *ast.With:
		cg.genWith(stmt.Items, stmt.Body, stmt.Async)
	case *ast.Match:
		cg.genMatch(stmt)
	case *ast.FunctionDef:
		cg.genFunctionDef(stmt)
	case *ast.ClassDef:
		cg.genClassDef(stmt)
	case *ast.Export:
		// the names are exported at the end of the module
		if stmt.Decl != nil {
			cg.genStmt(stmt.Decl)
		}
	case *ast.Import, *ast.ImportFrom:
		cg.errorf(stmt.Span(), "imports are only supported at the top level of a module")
	default:
		panic(fmt.Sprintf("codegen: unhandled statement %T", stmt))
	}
}

func (cg *Codegen) genExprStmt(stmt *ast.ExprStmt) {
	if fs := cg.currentFunc(); fs.superInit != nil && fs.superInit == stmt {
		call := stmt.Value.Call()
		cg.ln("super(%s);", strings.Join(cg.callArgs(cg.baseSignature(), call, false), ", "))
		cg.bindSelf(fs)
		return
	}
	// docstrings
	if stmt.Value.Kind() == ast.ExprKindString {
		return
	}
	code := cg.genExpr(stmt.Value)
	if strings.HasPrefix(code, "{") || strings.HasPrefix(code, "function") ||
		strings.HasPrefix(code, "class") || strings.HasPrefix(code, "let [") {
		code = "(" + code + ")"
	}
	cg.ln("%s;", code)
}

// genTarget renders an assignment target.
func (cg *Codegen) genTarget(e ast.Expr) string {
	switch e.Kind() {
	case ast.ExprKindName:
		return cg.genName(e.Name())
	case ast.ExprKindAttribute:
		return cg.genAttribute(e.Attribute())
	case ast.ExprKindSubscript:
		s := e.Subscript()
		if s.Index.Kind() == ast.ExprKindSlice {
			cg.errorf(e.Span(), "assignment to a slice is not supported")
		}
		if n, ok := negativeIndex(s.Index); ok {
			if !isSimple(s.Value) {
				cg.errorf(e.Span(), "negative index assignment needs a simple receiver")
			}
			recv := cg.receiver(s.Value)
			return fmt.Sprintf("%s[%s.length - %s]", recv, recv, n)
		}
		return cg.receiver(s.Value) + "[" + cg.genExpr(s.Index) + "]"
	case ast.ExprKindTuple:
		return cg.genPatternTarget(e.Tuple().Elts)
	case ast.ExprKindList:
		return cg.genPatternTarget(e.List().Elts)
	}
	cg.errorf(e.Span(), "cannot assign to %s", e.Kind())
	return ""
}

func (cg *Codegen) genPatternTarget(elts []ast.Expr) string {
	parts := make([]string, len(elts))
	for i, elt := range elts {
		if elt.Kind() == ast.ExprKindStarred {
			if i != len(elts)-1 {
				cg.errorf(elt.Span(), "a starred target must come last")
			}
			parts[i] = "..." + cg.genTarget(elt.Starred().Value)
			continue
		}
		parts[i] = cg.genTarget(elt)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (cg *Codegen) genAssign(stmt *ast.Assign) {
	parts := make([]string, 0, len(stmt.Targets)+1)
	for _, target := range stmt.Targets {
		parts = append(parts, cg.genTarget(target))
	}
	parts = append(parts, cg.operand(stmt.Value, LAssign))
	cg.ln("%s;", strings.Join(parts, " = "))
}

func (cg *Codegen) genAugAssign(stmt *ast.AugAssign) {
	target := cg.genTarget(stmt.Target)
	switch stmt.Op {
	case ast.BinaryOpFloorDiv:
		cg.ln("%s = Math.floor(%s / %s);", target, target, cg.operand(stmt.Value, LMultiply+1))
	case ast.BinaryOpMatMul:
		cg.ln("%s = %s(%s, %s);", target, cg.helper("matmul"), target, cg.operand(stmt.Value, LAssign))
	default:
		cg.ln("%s %s= %s;", target, binaryOps[stmt.Op].js, cg.operand(stmt.Value, LAssign))
	}
}

func (cg *Codegen) genRaise(stmt *ast.Raise) {
	if stmt.Exc == nil {
		if len(cg.catchStack) == 0 {
			cg.errorf(stmt.Span(), "bare 'raise' outside of an except block")
		}
		cg.ln("throw %s;", cg.catchStack[len(cg.catchStack)-1])
		return
	}
	exc := cg.genExpr(*stmt.Exc)
	if stmt.Exc.Kind() == ast.ExprKindName && cg.isConstructor(stmt.Exc.Name()) {
		exc = "new " + exc + "()"
	}
	if stmt.Cause == nil {
		cg.ln("throw %s;", exc)
		return
	}
	errVar := cg.namedTemp(ERROR_PREFIX)
	cg.ln("{")
	cg.pushIndent()
	cg.ln("const %s = %s;", errVar, exc)
	cg.ln("%s.cause = %s;", errVar, cg.genExpr(*stmt.Cause))
	cg.ln("throw %s;", errVar)
	cg.close("")
}

func (cg *Codegen) genDelete(stmt *ast.Delete) {
	for _, target := range stmt.Targets {
		switch target.Kind() {
		case ast.ExprKindName:
			cg.ln("%s = undefined;", cg.genName(target.Name()))
		case ast.ExprKindAttribute:
			cg.ln("delete %s;", cg.genTarget(target))
		case ast.ExprKindSubscript:
			sub := target.Subscript()
			if sub.Index.Kind() == ast.ExprKindSlice {
				cg.errorf(target.Span(), "deleting a slice is not supported")
			}
			// arrays are spliced, maps and objects lose the key
			cg.ln("%s(%s, %s);", cg.helper("delitem"), cg.operand(sub.Value, LAssign), cg.operand(sub.Index, LAssign))
		case ast.ExprKindTuple:
			cg.genDelete(ast.NewDelete(target.Tuple().Elts, target.Span()))
		default:
			cg.errorf(target.Span(), "cannot delete %s", target.Kind())
		}
	}
}

func (cg *Codegen) genAssert(stmt *ast.Assert) {
	msg := resolver.Quote("assertion failed")
	if stmt.Msg != nil {
		msg = cg.operand(*stmt.Msg, LAssign)
	}
	cg.open("if (!%s)", cg.operand(stmt.Test, LPrefix))
	cg.ln("throw new %s(%s);", cg.builtin("AssertionError"), msg)
	cg.close("")
}

// withLoopElse wraps a loop with an else clause in a labeled block, so a
// `break` skips the else body.
func (cg *Codegen) withLoopElse(els []ast.Stmt, loop func()) {
	if len(els) == 0 {
		cg.pushLoop(loopLabel{})
		loop()
		cg.popLoop()
		return
	}
	label := cg.namedTemp(LOOP_PREFIX)
	cg.open("%s:", label)
	cg.pushLoop(loopLabel{brk: label})
	loop()
	cg.popLoop()
	cg.genBlock(els)
	cg.close("")
}

func (cg *Codegen) genFor(stmt *ast.For) {
	head := "for"
	if stmt.Async {
		head = "for await"
	}
	cg.withLoopElse(stmt.Else, func() {
		target := cg.genTarget(stmt.Target)
		cg.genBraced(stmt.Body, "%s (%s of %s)", head, target, cg.operand(stmt.Iter, LAssign))
	})
}
