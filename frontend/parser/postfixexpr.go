package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// parsePostfix applies attribute access, calls and subscripts to expr,
// left to right.
func (p *parser) parsePostfix(expr ast.Expr, spanStart Span) ast.Expr {
	for {
		switch {
		case p.Token.Is("."):
			p.advance() // consume "."
			attr := p.expectName()
			expr = ast.NewAttributeExpr(expr, attr, SpanFrom(spanStart, p.prevSpan()))
		case p.Token.Is("("):
			args := p.parseCallArgs()
			expr = ast.NewCallExpr(expr, args, SpanFrom(spanStart, p.prevSpan()))
		case p.Token.Is("["):
			p.advance() // consume "["
			index := p.parseSubscriptIndex()
			p.expect("]")
			expr = ast.NewSubscriptExpr(expr, index, SpanFrom(spanStart, p.prevSpan()))
		default:
			return expr
		}
	}
}

func (p *parser) parseCallArgs() []ast.Arg {
	p.advance() // consume "("

	var args []ast.Arg
	keywords := make(map[string]bool)
	sawKeyword := false
	p.parseCommaSeparatedDelimited(")", func(p *parser) {
		switch {
		case p.tryConsume("**"):
			args = append(args, ast.Arg{Value: p.parseExpr(), DoubleStar: true})
			sawKeyword = true
		case p.tryConsume("*"):
			args = append(args, ast.Arg{Value: p.parseExpr(), Star: true})
		case p.isName(p.Token) && p.peek().Is("="):
			name := p.expectName()
			p.advance() // consume "="
			if keywords[name.Raw] {
				p.errorf(common.ErrDuplicateParameter, name.Span(), "keyword argument repeated: %s", name.Raw)
			}
			keywords[name.Raw] = true
			args = append(args, ast.Arg{Name: &name, Value: p.parseExpr()})
			sawKeyword = true
		default:
			value := p.parseNamedExpr()
			if p.isCompFor() {
				value = p.parseComprehension(ast.CompGenerator, nil, value, value.Span())
			}
			if sawKeyword {
				p.errorf(common.ErrUnexpectedToken, value.Span(), "positional argument follows keyword argument")
			}
			args = append(args, ast.Arg{Value: value})
		}
	})
	return args
}

// parseSubscriptIndex parses the inside of `[...]`: an expression, a slice or
// a tuple of them.
func (p *parser) parseSubscriptIndex() ast.Expr {
	spanStart := p.span()
	first := p.parseSliceItem()
	if !p.Token.Is(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if p.Token.Is("]") {
			break
		}
		elts = append(elts, p.parseSliceItem())
	}
	return ast.NewTupleExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseSliceItem() ast.Expr {
	spanStart := p.span()
	var lower *ast.Expr
	if !p.Token.Is(":") {
		e := p.parseStarExpr()
		if !p.Token.Is(":") {
			return e
		}
		lower = &e
	}
	p.advance() // consume ":"

	var upper, step *ast.Expr
	if !p.sliceBoundEnds() {
		e := p.parseExpr()
		upper = &e
	}
	if p.tryConsume(":") && !p.sliceBoundEnds() {
		e := p.parseExpr()
		step = &e
	}
	return ast.NewSliceExpr(lower, upper, step, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) sliceBoundEnds() bool {
	return p.Token.Is(":") || p.Token.Is("]") || p.Token.Is(",")
}
