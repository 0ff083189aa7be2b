package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

func (p *parser) isCompoundStart() bool {
	switch p.Token.AsString() {
	case "def", "class", "@", "if", "for", "while", "try", "with", "match":
		return true
	case "async":
		next := p.peek()
		return next.Is("def") || next.Is("for") || next.Is("with")
	}
	return false
}

func (p *parser) parseStmt() ast.Stmt {
	spanStart := p.span()
	switch p.Token.AsString() {
	case "def":
		return p.parseFunctionDef(nil, false, spanStart)
	case "class":
		return p.parseClassDef(nil, spanStart)
	case "@":
		return p.parseDecorated()
	case "if":
		return p.parseIf()
	case "for":
		return p.parseFor(false, spanStart)
	case "while":
		return p.parseWhile()
	case "try":
		return p.parseTry()
	case "with":
		return p.parseWith(false, spanStart)
	case "match":
		return p.parseMatch()
	case "async":
		switch next := p.peek(); {
		case next.Is("def"):
			p.advance() // consume "async"
			return p.parseFunctionDef(nil, true, spanStart)
		case next.Is("for"):
			p.advance() // consume "async"
			p.checkAwait("async for", spanStart)
			return p.parseFor(true, spanStart)
		case next.Is("with"):
			p.advance() // consume "async"
			p.checkAwait("async with", spanStart)
			return p.parseWith(true, spanStart)
		}
	case "export":
		return p.parseExport()
	}

	if p.Token.Kind() == lexer.KindIndent {
		p.errorf(common.ErrInvalidIndent, p.span(), "unexpected indent")
	}

	stmt := p.parseSimpleStmt()
	p.endStmt()
	return stmt
}

// parseSimpleStmt parses one statement that fits on a line, without its
// terminator.
func (p *parser) parseSimpleStmt() ast.Stmt {
	spanStart := p.span()
	switch p.Token.AsString() {
	case "pass":
		p.advance() // consume "pass"
		return ast.NewPass(spanStart)
	case "break", "continue":
		kw := p.Token.AsString()
		p.advance()
		if p.scope().loops == 0 {
			p.errorf(common.ErrLoopControlOutsideLoop, spanStart, "'%s' outside loop", kw)
		}
		if kw == "break" {
			return ast.NewBreak(spanStart)
		}
		return ast.NewContinue(spanStart)
	case "return":
		return p.parseReturn()
	case "raise":
		return p.parseRaise()
	case "global", "nonlocal":
		return p.parseScopeDecl()
	case "del":
		return p.parseDel()
	case "assert":
		p.advance() // consume "assert"
		test := p.parseExpr()
		var msg *ast.Expr
		if p.tryConsume(",") {
			m := p.parseExpr()
			msg = &m
		}
		return ast.NewAssert(test, msg, SpanFrom(spanStart, p.prevSpan()))
	case "import":
		return p.parseImport()
	case "from":
		return p.parseImportFrom()
	}
	return p.parseExprStmt()
}

func (p *parser) parseReturn() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "return"
	switch p.scope().kind {
	case scopeFunction, scopeLambda:
	default:
		p.errorf(common.ErrReturnOutsideFunction, spanStart, "'return' outside function")
	}
	var value *ast.Expr
	if p.canStartExpr() {
		v := p.parseStarExprList()
		value = &v
	}
	return ast.NewReturn(value, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseRaise() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "raise"
	var exc, cause *ast.Expr
	if p.canStartExpr() {
		e := p.parseExpr()
		exc = &e
		if p.tryConsume("from") {
			c := p.parseExpr()
			cause = &c
		}
	}
	return ast.NewRaise(exc, cause, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseScopeDecl() ast.Stmt {
	spanStart := p.span()
	nonlocal := p.Token.Is("nonlocal")
	p.advance() // consume "global" or "nonlocal"
	var names []ast.Ident
	for {
		names = append(names, p.expectIdent())
		if !p.tryConsume(",") {
			break
		}
	}
	span := SpanFrom(spanStart, p.prevSpan())
	if !nonlocal {
		return ast.NewGlobal(names, span)
	}
	if p.scope().kind != scopeFunction && p.scope().kind != scopeLambda {
		p.errorf(common.ErrInvalidScopeDeclaration, spanStart, "nonlocal declaration not allowed outside a function")
	}
	return ast.NewNonlocal(names, span)
}

func (p *parser) parseDel() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "del"
	var targets []ast.Expr
	for {
		target := p.parseTarget()
		p.checkDelTarget(target)
		targets = append(targets, target)
		if !p.tryConsume(",") || !p.canStartExpr() {
			break
		}
	}
	return ast.NewDelete(targets, SpanFrom(spanStart, p.prevSpan()))
}

// parseExprStmt parses an expression statement or any form of assignment.
func (p *parser) parseExprStmt() ast.Stmt {
	spanStart := p.span()
	first := p.parseAssignValue()

	switch {
	case p.Token.Is("="):
		exprs := []ast.Expr{first}
		for p.tryConsume("=") {
			exprs = append(exprs, p.parseAssignValue())
		}
		targets, value := exprs[:len(exprs)-1], exprs[len(exprs)-1]
		for _, target := range targets {
			p.checkTarget(target)
		}
		return ast.NewAssign(targets, value, SpanFrom(spanStart, p.prevSpan()))

	case p.Token.Is(":"):
		p.checkSingleTarget(first, "annotated")
		p.advance() // consume ":"
		annotation := p.parseExpr()
		p.checkAnnotation(annotation)
		var value *ast.Expr
		if p.tryConsume("=") {
			v := p.parseAssignValue()
			value = &v
		}
		return ast.NewAnnAssign(first, annotation, value, SpanFrom(spanStart, p.prevSpan()))
	}

	if op, ok := ast.AugmentedOps[p.Token.AsString()]; ok {
		p.checkSingleTarget(first, "augmented")
		p.advance() // consume operator
		value := p.parseAssignValue()
		return ast.NewAugAssign(first, op, value, SpanFrom(spanStart, p.prevSpan()))
	}

	if first.Kind() == ast.ExprKindStarred {
		p.errorf(common.ErrUnexpectedToken, first.Span(), "starred expression cannot be used here")
	}
	return ast.NewExprStmt(first, SpanFrom(spanStart, p.prevSpan()))
}

// parseAssignValue parses the right side of `=`: a yield expression or an
// expression list.
func (p *parser) parseAssignValue() ast.Expr {
	if p.Token.Is("yield") {
		return p.parseYield()
	}
	return p.parseStarExprList()
}
