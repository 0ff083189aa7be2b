package parser

import (
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (p *parser) parseUnary() ast.Expr {
	spanStart := p.span()

	var op ast.UnaryOp
	switch p.Token.AsString() {
	case "-":
		op = ast.UnaryOpNegate
	case "+":
		op = ast.UnaryOpPlus
	case "~":
		op = ast.UnaryOpBitwiseNot
	default:
		return p.parsePower()
	}
	p.advance() // consume operator

	value := p.parseUnary()
	return ast.NewUnaryExpr(op, value, SpanFrom(spanStart, p.prevSpan()))
}

// parsePower parses `a ** b`. The right operand may carry its own unary
// operator, so `2 ** -1` works and `-2 ** 2` is `-(2 ** 2)`.
func (p *parser) parsePower() ast.Expr {
	spanStart := p.span()
	base := p.parseAwait()
	if !p.tryConsume("**") {
		return base
	}
	exp := p.parseUnary()
	return ast.NewBinaryExpr(base, ast.BinaryOpPow, exp, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseAwait() ast.Expr {
	spanStart := p.span()
	if !p.tryConsume("await") {
		return p.parsePostfix(p.parseAtom(), spanStart)
	}
	p.checkAwait("await", spanStart)
	value := p.parseAwait()
	return ast.NewAwaitExpr(value, SpanFrom(spanStart, p.prevSpan()))
}
