package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (p *parser) parseIf() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "if" or "elif"
	cond := p.parseNamedExpr()
	body := p.parseSuite()

	var els []ast.Stmt
	switch {
	case p.continuesWith("elif"):
		elif := p.parseIf().(*ast.If)
		elif.IsElif = true
		els = []ast.Stmt{elif}
	case p.continuesWith("else"):
		p.advance() // consume "else"
		if p.Token.Is("if") {
			// `else if` reads as elif in brace style
			elif := p.parseIf().(*ast.If)
			elif.IsElif = true
			els = []ast.Stmt{elif}
		} else {
			els = p.parseSuite()
		}
	}
	return ast.NewIf(cond, body, els, SpanFrom(spanStart, p.prevSpan()))
}

// parenHeader reports whether the `(` at the current token wraps the whole
// header of a brace or colon statement and directly contains kw, as in
// `for (x in xs) {`.
func (p *parser) parenHeader(kw string) bool {
	if !p.Token.Is("(") {
		return false
	}
	open := int(p.Pos)
	after := p.peekOffset(p.matchingClose(open) - open + 1)
	return (after.Is("{") || after.Is(":")) && p.topLevelKeyword(open, kw)
}

func (p *parser) parseFor(async bool, spanStart Span) ast.Stmt {
	p.advance() // consume "for"

	parens := p.parenHeader("in")
	if parens {
		p.advance() // consume "("
	}
	target := p.parseTargetList()
	p.checkTarget(target)
	p.expect("in")
	iter := p.parseStarExprList()
	if parens {
		p.expect(")")
	}

	body, els := p.parseLoopBody()
	return ast.NewFor(target, iter, body, els, async, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseWhile() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "while"
	cond := p.parseNamedExpr()
	body, els := p.parseLoopBody()
	return ast.NewWhile(cond, body, els, SpanFrom(spanStart, p.prevSpan()))
}

// parseLoopBody parses the body of a loop and its optional else clause.
func (p *parser) parseLoopBody() (body, els []ast.Stmt) {
	p.scope().loops++
	body = p.parseSuite()
	p.scope().loops--
	if p.continuesWith("else") {
		p.advance() // consume "else"
		els = p.parseSuite()
	}
	return body, els
}

func (p *parser) parseTry() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "try"
	body := p.parseSuite()

	var handlers []ast.ExceptHandler
	catchAll := false
	for p.continuesWith("except") {
		handlerStart := p.span()
		p.advance() // consume "except"
		if catchAll {
			p.errorf(common.ErrUnexpectedToken, handlerStart, "default 'except' must be last")
		}

		var ty *ast.Expr
		var name *ast.Ident
		if p.Token.Is(":") || p.Token.Is("{") {
			catchAll = true
		} else {
			t := p.parseExpr()
			ty = &t
			if p.tryConsume("as") {
				n := p.expectIdent()
				name = &n
			}
		}
		handlerBody := p.parseSuite()
		handlers = append(handlers, ast.NewExceptHandler(ty, name, handlerBody, SpanFrom(handlerStart, p.prevSpan())))
	}

	var els, finally []ast.Stmt
	if len(handlers) > 0 && p.continuesWith("else") {
		p.advance() // consume "else"
		els = p.parseSuite()
	}
	if p.continuesWith("finally") {
		p.advance() // consume "finally"
		finally = p.parseSuite()
		if finally == nil {
			finally = []ast.Stmt{}
		}
	}
	if len(handlers) == 0 && finally == nil {
		p.errorAtToken(common.ErrExpectedToken, "expected 'except' or 'finally', got %s", describe(p.Token))
	}
	return ast.NewTry(body, handlers, els, finally, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseWith(async bool, spanStart Span) ast.Stmt {
	p.advance() // consume "with"

	var items []ast.WithItem
	if p.parenHeader("as") {
		p.advance() // consume "("
		p.parseCommaSeparatedDelimited(")", func(p *parser) {
			items = append(items, p.parseWithItem())
		})
	} else {
		for {
			items = append(items, p.parseWithItem())
			if !p.tryConsume(",") {
				break
			}
		}
	}

	body := p.parseSuite()
	return ast.NewWith(items, body, async, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseWithItem() ast.WithItem {
	item := ast.WithItem{Context: p.parseExpr()}
	if p.tryConsume("as") {
		target := p.parseTarget()
		p.checkTarget(target)
		item.Target = &target
	}
	return item
}
