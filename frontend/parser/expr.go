package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

// parseExpr parses one full expression: a lambda, an arrow function or a
// conditional expression. Tuples without parentheses are handled by the
// list parsers.
func (p *parser) parseExpr() ast.Expr {
	spanStart := p.span()
	switch {
	case p.Token.Is("lambda"):
		return p.parseLambda(false, spanStart)
	case p.Token.Is("async"):
		switch {
		case p.peek().Is("lambda"):
			p.advance() // consume "async"
			return p.parseLambda(true, spanStart)
		case p.arrowAt(1):
			p.advance() // consume "async"
			return p.parseArrow(true, spanStart)
		}
		p.unexpected()
	case p.arrowAt(0):
		return p.parseArrow(false, spanStart)
	}
	return p.parseTernary()
}

func (p *parser) parseTernary() ast.Expr {
	spanStart := p.span()
	then := p.parseOr()
	if !p.tryConsume("if") {
		return then
	}
	cond := p.parseOr()
	p.expect("else")
	els := p.parseExpr()
	return ast.NewTernaryExpr(cond, then, els, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseOr() ast.Expr {
	spanStart := p.span()
	left := p.parseAnd()
	for p.tryConsume("or") {
		right := p.parseAnd()
		left = ast.NewBoolOpExpr(left, ast.BoolOpOr, right, SpanFrom(spanStart, p.prevSpan()))
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	spanStart := p.span()
	left := p.parseNot()
	for p.tryConsume("and") {
		right := p.parseNot()
		left = ast.NewBoolOpExpr(left, ast.BoolOpAnd, right, SpanFrom(spanStart, p.prevSpan()))
	}
	return left
}

func (p *parser) parseNot() ast.Expr {
	spanStart := p.span()
	if p.tryConsume("not") {
		value := p.parseNot()
		return ast.NewUnaryExpr(ast.UnaryOpNot, value, SpanFrom(spanStart, p.prevSpan()))
	}
	return p.parseComparison()
}

// parseNamedExpr parses an expression that may be a walrus `name := value`.
func (p *parser) parseNamedExpr() ast.Expr {
	if ident, ok := p.Token.(lexer.TokIdent); ok && p.peek().Is(":=") {
		p.advance() // consume name
		p.advance() // consume ":="
		value := p.parseExpr()
		return ast.NewNamedExpr(ast.NewNameExpr(ident), value, SpanFrom(ident.Span(), p.prevSpan()))
	}
	return p.parseExpr()
}

// parseStarExpr parses an element of a display or an expression list, which
// may be starred.
func (p *parser) parseStarExpr() ast.Expr {
	spanStart := p.span()
	if p.tryConsume("*") {
		value := p.parseBinary(1)
		return ast.NewStarredExpr(value, SpanFrom(spanStart, p.prevSpan()))
	}
	return p.parseNamedExpr()
}

// parseStarExprList parses `a, *b, c` into a tuple; a single element without
// a trailing comma is returned as is.
func (p *parser) parseStarExprList() ast.Expr {
	spanStart := p.span()
	first := p.parseStarExpr()
	if !p.Token.Is(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if !p.canStartExpr() {
			break
		}
		elts = append(elts, p.parseStarExpr())
	}
	return ast.NewTupleExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

// canStartExpr reports whether the current token can begin an expression.
func (p *parser) canStartExpr() bool {
	switch p.Token.Kind() {
	case lexer.KindIdent, lexer.KindNumber, lexer.KindString, lexer.KindFString, lexer.KindJSX:
		return true
	}
	switch p.Token.AsString() {
	case "True", "False", "None", "not", "lambda", "await", "async", "yield",
		"(", "[", "{", "-", "+", "~", "*":
		return true
	}
	return false
}

func (p *parser) parseYield() ast.Expr {
	spanStart := p.span()
	p.advance() // consume "yield"
	p.markYield(spanStart)
	if p.tryConsume("from") {
		value := p.parseExpr()
		return ast.NewYieldFromExpr(value, SpanFrom(spanStart, p.prevSpan()))
	}
	var value *ast.Expr
	if p.canStartExpr() && !p.Token.Is("yield") {
		v := p.parseStarExprList()
		value = &v
	}
	return ast.NewYieldExpr(value, SpanFrom(spanStart, p.prevSpan()))
}

// parseTarget parses one assignment target. Targets stop below comparisons
// so that `for x in xs` keeps its `in`.
func (p *parser) parseTarget() ast.Expr {
	spanStart := p.span()
	if p.tryConsume("*") {
		value := p.parseBinary(1)
		return ast.NewStarredExpr(value, SpanFrom(spanStart, p.prevSpan()))
	}
	return p.parseBinary(1)
}

func (p *parser) parseTargetList() ast.Expr {
	spanStart := p.span()
	first := p.parseTarget()
	if !p.Token.Is(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if p.Token.Is("in") || p.Token.Is("=") {
			break
		}
		elts = append(elts, p.parseTarget())
	}
	return ast.NewTupleExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseAtom() ast.Expr {
	switch v := p.Token.(type) {
	case lexer.TokIdent:
		p.advance() // consume identifier
		return ast.NewNameExpr(v)
	case lexer.TokNumber:
		p.advance() // consume number
		return ast.NewNumberExpr(v)
	case lexer.TokString, lexer.TokFString:
		return p.parseStrings()
	case lexer.TokJSX:
		p.advance() // consume element
		return ast.NewExpr(p.parseJSX(v.Element))
	}

	tok := p.Token
	switch tok.AsString() {
	case "True", "False":
		p.advance() // consume bool
		return ast.NewBoolExpr(tok)
	case "None":
		p.advance() // consume None
		return ast.NewNoneExpr(tok.Span())
	case "(":
		return p.parseParenExpr()
	case "[":
		return p.parseListDisplay()
	case "{":
		return p.parseBraceDisplay()
	case "yield":
		p.errorf(common.ErrUnexpectedToken, tok.Span(), "'yield' expression must be parenthesized here")
	}
	p.errorAtToken(common.ErrUnexpectedToken, "expected expression, got %s", describe(tok))
	panic("unreachable")
}

func (p *parser) isCompFor() bool {
	return p.Token.Is("for") || (p.Token.Is("async") && p.peek().Is("for"))
}

func (p *parser) parseParenExpr() ast.Expr {
	spanStart := p.span()
	p.advance() // consume "("

	if p.tryConsume(")") {
		return ast.NewTupleExpr(nil, SpanFrom(spanStart, p.prevSpan()))
	}
	if p.Token.Is("yield") {
		y := p.parseYield()
		p.expect(")")
		return y
	}

	first := p.parseStarExpr()
	if p.isCompFor() {
		comp := p.parseComprehension(ast.CompGenerator, nil, first, spanStart)
		p.expect(")")
		return comp
	}
	if p.tryConsume(")") {
		if first.Kind() == ast.ExprKindStarred {
			p.errorf(common.ErrUnexpectedToken, first.Span(), "starred expression cannot be used here")
		}
		return first
	}

	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if p.Token.Is(")") {
			break
		}
		elts = append(elts, p.parseStarExpr())
	}
	p.expect(")")
	return ast.NewTupleExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseListDisplay() ast.Expr {
	spanStart := p.span()
	p.advance() // consume "["

	if p.tryConsume("]") {
		return ast.NewListExpr(nil, SpanFrom(spanStart, p.prevSpan()))
	}
	first := p.parseStarExpr()
	if p.isCompFor() {
		comp := p.parseComprehension(ast.CompList, nil, first, spanStart)
		p.expect("]")
		return comp
	}

	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if p.Token.Is("]") {
			break
		}
		elts = append(elts, p.parseStarExpr())
	}
	p.expect("]")
	return ast.NewListExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

// parseBraceDisplay parses a dict or set display or comprehension.
func (p *parser) parseBraceDisplay() ast.Expr {
	spanStart := p.span()
	p.advance() // consume "{"

	if p.tryConsume("}") {
		return ast.NewDictExpr(nil, SpanFrom(spanStart, p.prevSpan()))
	}

	if p.Token.Is("**") {
		return p.parseDictEntries(nil, spanStart)
	}

	first := p.parseStarExpr()
	if p.tryConsume(":") {
		value := p.parseExpr()
		if p.isCompFor() {
			comp := p.parseComprehension(ast.CompDict, &first, value, spanStart)
			p.expect("}")
			return comp
		}
		return p.parseDictEntries([]ast.DictEntry{{Key: &first, Value: value}}, spanStart)
	}

	if p.isCompFor() {
		comp := p.parseComprehension(ast.CompSet, nil, first, spanStart)
		p.expect("}")
		return comp
	}
	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if p.Token.Is("}") {
			break
		}
		elts = append(elts, p.parseStarExpr())
	}
	p.expect("}")
	return ast.NewSetExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

// parseDictEntries parses the remaining `key: value` and `**mapping` entries
// of a dict display, including the closing brace.
func (p *parser) parseDictEntries(entries []ast.DictEntry, spanStart Span) ast.Expr {
	if len(entries) > 0 && !p.tryConsume(",") {
		p.expect("}")
		return ast.NewDictExpr(entries, SpanFrom(spanStart, p.prevSpan()))
	}
	p.parseCommaSeparatedDelimited("}", func(p *parser) {
		if p.tryConsume("**") {
			entries = append(entries, ast.DictEntry{Value: p.parseBinary(1)})
			return
		}
		key := p.parseExpr()
		p.expect(":")
		entries = append(entries, ast.DictEntry{Key: &key, Value: p.parseExpr()})
	})
	return ast.NewDictExpr(entries, SpanFrom(spanStart, p.prevSpan()))
}

// parseComprehension parses the `for`/`if` clauses after the element of a
// comprehension, keeping their order.
func (p *parser) parseComprehension(kind ast.ComprehensionKind, key *ast.Expr, elt ast.Expr, spanStart Span) ast.Expr {
	if elt.Kind() == ast.ExprKindStarred {
		p.errorf(common.ErrUnexpectedToken, elt.Span(), "iterable unpacking cannot be used in comprehension")
	}

	var clauses []ast.CompClause
	for p.isCompFor() {
		clauseStart := p.span()
		async := p.tryConsume("async")
		if async {
			p.checkAwait("async for", clauseStart)
		}
		p.advance() // consume "for"

		target := p.parseTargetList()
		p.checkTarget(target)
		p.expect("in")
		iter := p.parseOr()
		clauses = append(clauses, ast.CompClause{Target: &target, Iter: iter, Async: async})

		for p.tryConsume("if") {
			clauses = append(clauses, ast.CompClause{Cond: p.parseFilter()})
		}
	}
	return ast.NewComprehensionExpr(kind, key, elt, clauses, SpanFrom(spanStart, p.prevSpan()))
}

// parseFilter parses the condition of a comprehension `if`, which stops
// before a conditional expression's `if` and may be a walrus.
func (p *parser) parseFilter() ast.Expr {
	if ident, ok := p.Token.(lexer.TokIdent); ok && p.peek().Is(":=") {
		p.advance() // consume name
		p.advance() // consume ":="
		value := p.parseOr()
		return ast.NewNamedExpr(ast.NewNameExpr(ident), value, SpanFrom(ident.Span(), p.prevSpan()))
	}
	return p.parseOr()
}
