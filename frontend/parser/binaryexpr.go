package parser

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

// getBinaryOperatorPrecedence returns the binding power of an arithmetic or
// bitwise operator; all of them are left-associative. `**` is handled by
// parsePower.
func getBinaryOperatorPrecedence(tok lexer.Token) (int, ast.BinaryOp, bool) {
	switch tok.AsString() {
	case "|":
		return 1, ast.BinaryOpBitwiseOr, true
	case "^":
		return 2, ast.BinaryOpBitwiseXor, true
	case "&":
		return 3, ast.BinaryOpBitwiseAnd, true
	case "<<":
		return 4, ast.BinaryOpBitwiseLeftShift, true
	case ">>":
		return 4, ast.BinaryOpBitwiseRightShift, true
	case "+":
		return 5, ast.BinaryOpAdd, true
	case "-":
		return 5, ast.BinaryOpSub, true
	case "*":
		return 6, ast.BinaryOpMul, true
	case "/":
		return 6, ast.BinaryOpDiv, true
	case "//":
		return 6, ast.BinaryOpFloorDiv, true
	case "%":
		return 6, ast.BinaryOpMod, true
	case "@":
		return 6, ast.BinaryOpMatMul, true
	}
	return 0, ast.BinaryOpInvalid, false
}

func (p *parser) parseBinary(minPrec int) ast.Expr {
	spanStart := p.span()
	left := p.parseUnary()
	for {
		prec, op, ok := getBinaryOperatorPrecedence(p.Token)
		if !ok || prec < minPrec {
			return left
		}
		p.advance() // consume operator
		right := p.parseBinary(prec + 1)
		left = ast.NewBinaryExpr(left, op, right, SpanFrom(spanStart, p.prevSpan()))
	}
}

// comparisonOp consumes a comparison operator, including the two-word
// `not in` and `is not`.
func (p *parser) comparisonOp() (ast.CmpOp, bool) {
	var op ast.CmpOp
	switch p.Token.AsString() {
	case "==":
		op = ast.CmpOpEq
	case "!=":
		op = ast.CmpOpNotEq
	case "<":
		op = ast.CmpOpLt
	case "<=":
		op = ast.CmpOpLtE
	case ">":
		op = ast.CmpOpGt
	case ">=":
		op = ast.CmpOpGtE
	case "in":
		op = ast.CmpOpIn
	case "is":
		p.advance() // consume "is"
		if p.tryConsume("not") {
			return ast.CmpOpIsNot, true
		}
		return ast.CmpOpIs, true
	case "not":
		if !p.peek().Is("in") {
			return 0, false
		}
		p.advance() // consume "not"
		op = ast.CmpOpNotIn
	default:
		return 0, false
	}
	p.advance() // consume operator
	return op, true
}

// parseComparison parses a comparison chain `a < b <= c` into one node.
func (p *parser) parseComparison() ast.Expr {
	spanStart := p.span()
	left := p.parseBinary(1)

	var ops []ast.CmpOp
	var comparators []ast.Expr
	for {
		op, ok := p.comparisonOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.parseBinary(1))
	}
	if len(ops) == 0 {
		return left
	}
	return ast.NewCompareExpr(left, ops, comparators, SpanFrom(spanStart, p.prevSpan()))
}
