package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

func (p *parser) parseDecorated() ast.Stmt {
	spanStart := p.span()
	var decorators []ast.Expr
	for p.tryConsume("@") {
		decorators = append(decorators, p.parseNamedExpr())
		p.endLine()
		p.skipNewlines()
	}

	switch {
	case p.Token.Is("def"):
		return p.parseFunctionDef(decorators, false, spanStart)
	case p.Token.Is("async") && p.peek().Is("def"):
		p.advance() // consume "async"
		return p.parseFunctionDef(decorators, true, spanStart)
	case p.Token.Is("class"):
		return p.parseClassDef(decorators, spanStart)
	}
	p.errorAtToken(common.ErrExpectedToken, "expected 'def' or 'class' after decorator, got %s", describe(p.Token))
	return nil
}

func (p *parser) parseFunctionDef(decorators []ast.Expr, async bool, spanStart Span) *ast.FunctionDef {
	p.advance() // consume "def"
	name := p.expectIdentMsg("expected function name")

	p.expect("(")
	params := p.parseParams(")", FlagParamAnnotations|FlagParamStars)

	var returns *ast.Expr
	if p.tryConsume("->") {
		r := p.parseExpr()
		p.checkAnnotation(r)
		returns = &r
	}

	p.scopes.Push(&scopeCtx{kind: scopeFunction, async: async})
	body := p.parseSuite()
	ctx, _ := p.scopes.Pop()

	fn := ast.NewFunctionDef(name, params, returns, body, async, SpanFrom(spanStart, p.prevSpan()))
	fn.Decorators = decorators
	fn.Generator = ctx.generator
	return fn
}

// parseParams parses a parameter list up to and including closing.
func (p *parser) parseParams(closing string, flags Flags) []ast.Param {
	var params []ast.Param
	seen := make(map[string]bool)
	kwOnly, sawDefault, sawKwArgs := false, false, false

	for !p.Token.Is(closing) {
		spanStart := p.span()
		if sawKwArgs {
			p.errorf(common.ErrUnexpectedToken, spanStart, "parameter after **%s", params[len(params)-1].Name.Raw)
		}

		kind := ast.ParamPlain
		switch {
		case flags.Has(FlagParamStars) && p.tryConsume("**"):
			kind = ast.ParamKwArgs
			sawKwArgs = true
		case flags.Has(FlagParamStars) && p.tryConsume("*"):
			if p.Token.Is(",") || p.Token.Is(closing) {
				// bare `*`: the rest are keyword-only
				kwOnly = true
				p.tryConsume(",")
				continue
			}
			kind = ast.ParamVarArgs
		case p.Token.Is("/"):
			// positional-only marker, no JavaScript counterpart
			p.advance()
			p.tryConsume(",")
			continue
		}

		name := p.expectIdentMsg("expected parameter name")
		if seen[name.Raw] {
			p.errorf(common.ErrDuplicateParameter, name.Span(), "duplicate parameter '%s'", name.Raw)
		}
		seen[name.Raw] = true

		var annotation, def *ast.Expr
		if flags.Has(FlagParamAnnotations) && p.tryConsume(":") {
			a := p.parseExpr()
			p.checkAnnotation(a)
			annotation = &a
		}
		if kind == ast.ParamPlain && p.tryConsume("=") {
			d := p.parseExpr()
			def = &d
			sawDefault = true
		} else if kind == ast.ParamPlain && sawDefault && !kwOnly {
			p.errorf(common.ErrUnexpectedToken, name.Span(), "non-default parameter '%s' follows default parameter", name.Raw)
		}

		param := ast.NewParam(name, kind, def, annotation, SpanFrom(spanStart, p.prevSpan()))
		param.KwOnly = kwOnly && kind == ast.ParamPlain
		params = append(params, param)
		if kind == ast.ParamVarArgs {
			kwOnly = true
		}

		if !p.tryConsume(",") {
			break
		}
	}
	p.expect(closing)
	return params
}

func (p *parser) parseLambda(async bool, spanStart Span) ast.Expr {
	p.advance() // consume "lambda"
	params := p.parseParams(":", FlagParamStars)

	p.scopes.Push(&scopeCtx{kind: scopeLambda, async: async})
	body := p.parseExpr()
	p.scopes.Pop()

	l := &ast.Lambda{Params: params, Expr: &body, Async: async}
	return ast.NewLambdaExpr(l, SpanFrom(spanStart, p.prevSpan()))
}

// arrowAt reports whether an arrow function starts at the token offset away:
// `x => ...` or `(params) => ...`.
func (p *parser) arrowAt(offset int) bool {
	tok := p.peekOffset(offset)
	switch {
	case lexer.IsIdent(tok):
		return p.peekOffset(offset + 1).Is("=>")
	case tok.Is("("):
		open := int(p.Pos) + offset
		return p.peekOffset(p.matchingClose(open) - int(p.Pos) + 1).Is("=>")
	}
	return false
}

func (p *parser) parseArrow(async bool, spanStart Span) ast.Expr {
	var params []ast.Param
	if ident, ok := p.Token.(lexer.TokIdent); ok {
		p.advance() // consume parameter
		params = []ast.Param{ast.NewParam(ident, ast.ParamPlain, nil, nil, ident.Span())}
	} else {
		p.expect("(")
		params = p.parseParams(")", FlagParamAnnotations|FlagParamStars)
	}
	p.expect("=>")

	l := &ast.Lambda{Params: params, Async: async, Arrow: true}
	p.scopes.Push(&scopeCtx{kind: scopeLambda, async: async})
	if p.tryConsume("{") {
		l.Body = p.parseStmtsUntil(func() bool { return p.Token.Is("}") })
		p.advance() // consume "}"
	} else {
		body := p.parseExpr()
		l.Expr = &body
	}
	p.scopes.Pop()

	return ast.NewLambdaExpr(l, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseClassDef(decorators []ast.Expr, spanStart Span) *ast.ClassDef {
	p.advance() // consume "class"
	name := p.expectIdentMsg("expected class name")

	var bases []ast.Expr
	if p.tryConsume("(") {
		p.parseCommaSeparatedDelimited(")", func(p *parser) {
			bases = append(bases, p.parseExpr())
		})
	}

	p.scopes.Push(&scopeCtx{kind: scopeClass})
	body := p.parseSuite()
	p.scopes.Pop()

	class := ast.NewClassDef(name, bases, body, SpanFrom(spanStart, p.prevSpan()))
	class.Decorators = decorators
	return class
}

// checkAwait rejects await-like constructs outside async functions. Module
// level is allowed since ES modules support top-level await.
func (p *parser) checkAwait(what string, span Span) {
	ctx := p.scope()
	switch {
	case ctx.kind == scopeModule:
	case ctx.kind == scopeClass:
		p.errorf(common.ErrAwaitOutsideAsync, span, "'%s' inside class body", what)
	case !ctx.async:
		p.errorf(common.ErrAwaitOutsideAsync, span, "'%s' outside async function", what)
	}
}

// markYield records a yield in the current function, making it a generator.
func (p *parser) markYield(span Span) {
	ctx := p.scope()
	switch ctx.kind {
	case scopeFunction:
		ctx.generator = true
	case scopeLambda:
		p.errorf(common.ErrYieldOutsideFunction, span, "'yield' inside lambda")
	default:
		p.errorf(common.ErrYieldOutsideFunction, span, "'yield' outside function")
	}
}
