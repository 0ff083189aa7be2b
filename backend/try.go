package backend

import (
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// genTry lowers try/except/else/finally. Handlers become an instanceof
// chain inside a single catch; an unmatched error is rethrown. The else
// branch runs behind a flag set at the end of the try body.
func (cg *Codegen) genTry(stmt *ast.Try) {
	if len(stmt.Handlers) == 0 {
		cg.open("try")
		cg.genBlock(stmt.Body)
		cg.genBlock(stmt.Else)
		cg.genFinally(stmt.Finally)
		return
	}

	outer := len(stmt.Else) > 0 && len(stmt.Finally) > 0
	if outer {
		cg.open("try")
	}
	var ok string
	if len(stmt.Else) > 0 {
		ok = cg.getTempVar()
		cg.ln("%s = false;", ok)
	}

	cg.open("try")
	cg.genBlock(stmt.Body)
	if ok != "" {
		cg.ln("%s = true;", ok)
	}
	errVar := cg.namedTemp(ERROR_PREFIX)
	cg.popIndent()
	cg.ln("} catch (%s) {", errVar)
	cg.pushIndent()
	cg.genHandlers(errVar, stmt.Handlers)
	if len(stmt.Finally) > 0 && !outer {
		cg.genFinally(stmt.Finally)
	} else {
		cg.close("")
	}

	if ok != "" {
		cg.genBraced(stmt.Else, "if (%s)", ok)
	}
	if outer {
		cg.genFinally(stmt.Finally)
	}
}

// genFinally closes an open try block with a finally clause, when there is
// one.
func (cg *Codegen) genFinally(finally []ast.Stmt) {
	if len(finally) == 0 {
		cg.close("")
		return
	}
	cg.popIndent()
	cg.ln("} finally {")
	cg.pushIndent()
	cg.genBlock(finally)
	cg.close("")
}

func (cg *Codegen) genHandlers(errVar string, handlers []ast.ExceptHandler) {
	cg.catchStack = append(cg.catchStack, errVar)
	defer func() { cg.catchStack = cg.catchStack[:len(cg.catchStack)-1] }()

	for i, h := range handlers {
		test := cg.handlerTest(errVar, h.Type)
		switch {
		case test == "" && i == 0:
			cg.genHandlerBody(errVar, h)
			return
		case test == "":
			cg.popIndent()
			cg.ln("} else {")
			cg.pushIndent()
			cg.genHandlerBody(errVar, h)
			cg.close("")
			return
		case i == 0:
			cg.open("if (%s)", test)
		default:
			cg.popIndent()
			cg.ln("} else if (%s) {", test)
			cg.pushIndent()
		}
		cg.genHandlerBody(errVar, h)
	}
	cg.popIndent()
	cg.ln("} else {")
	cg.pushIndent()
	cg.ln("throw %s;", errVar)
	cg.close("")
}

func (cg *Codegen) genHandlerBody(errVar string, h ast.ExceptHandler) {
	if h.Name != nil {
		cg.ln("%s = %s;", resolver.SafeName(h.Name.Raw), errVar)
	}
	cg.genBlock(h.Body)
}

// handlerTest is the condition selecting a handler, "" for one that catches
// everything.
func (cg *Codegen) handlerTest(errVar string, ty *ast.Expr) string {
	if ty == nil {
		return ""
	}
	var classes []ast.Expr
	if ty.Kind() == ast.ExprKindTuple {
		classes = ty.Tuple().Elts
	} else {
		classes = []ast.Expr{*ty}
	}
	tests := make([]string, 0, len(classes))
	for _, class := range classes {
		if isCatchAll(class) {
			return ""
		}
		tests = append(tests, errVar+" instanceof "+cg.operand(class, LCompare+1))
	}
	return strings.Join(tests, " || ")
}

func isCatchAll(e ast.Expr) bool {
	if e.Kind() != ast.ExprKindName || e.Name().Ref != ast.RefBuiltin {
		return false
	}
	raw := e.Name().Id.Raw
	return raw == "Exception" || raw == "BaseException"
}

// genWith lowers a with statement onto the runtime context protocol. Items
// nest left to right.
func (cg *Codegen) genWith(items []ast.WithItem, body []ast.Stmt, async bool) {
	if len(items) == 0 {
		cg.genBlock(body)
		return
	}
	item := items[0]
	await, asyncArg := "", ""
	if async {
		await, asyncArg = "await ", ", true"
	}

	mgr := cg.getTempVar()
	failed := cg.getTempVar()
	cg.ln("%s = %s;", mgr, cg.operand(item.Context, LAssign))
	enter := await + cg.helper("enterContext") + "(" + mgr + asyncArg + ")"
	if item.Target != nil {
		cg.ln("%s = %s;", cg.genTarget(*item.Target), enter)
	} else {
		cg.ln("%s;", enter)
	}
	cg.ln("%s = false;", failed)

	cg.open("try")
	cg.genWith(items[1:], body, async)
	errVar := cg.namedTemp(ERROR_PREFIX)
	cg.popIndent()
	cg.ln("} catch (%s) {", errVar)
	cg.pushIndent()
	cg.ln("%s = true;", failed)
	cg.open("if (!%s%s(%s, %s%s))", await, cg.helper("exitContext"), mgr, errVar, asyncArg)
	cg.ln("throw %s;", errVar)
	cg.close("")
	cg.popIndent()
	cg.ln("} finally {")
	cg.pushIndent()
	cg.open("if (!%s)", failed)
	cg.ln("%s%s(%s, null%s);", await, cg.helper("exitContext"), mgr, asyncArg)
	cg.close("")
	cg.close("")
}
