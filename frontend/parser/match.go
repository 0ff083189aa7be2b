package parser

import (
	"slices"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

func (p *parser) parseMatch() ast.Stmt {
	spanStart := p.span()
	p.advance() // consume "match"
	subject := p.parseMatchSubject()

	var cases []ast.MatchCase
	switch {
	case p.tryConsume("{"):
		p.skipNewlines()
		for !p.Token.Is("}") {
			cases = append(cases, p.parseCase())
			p.skipNewlines()
		}
		p.advance() // consume "}"
	case p.tryConsume(":"):
		if !lexer.IsNewline(p.Token) {
			p.errorAtToken(common.ErrExpectedToken, "expected end of line after 'match', got %s", describe(p.Token))
		}
		p.advance() // consume newline
		if p.Token.Kind() != lexer.KindIndent {
			p.errorAtToken(common.ErrInvalidIndent, "expected an indented block of cases, got %s", describe(p.Token))
		}
		p.advance() // consume indent
		for !p.isDedent() {
			cases = append(cases, p.parseCase())
			p.skipNewlines()
		}
		p.advance() // consume dedent
	default:
		p.errorAtToken(common.ErrExpectedToken, "expected ':' or '{', got %s", describe(p.Token))
	}

	if len(cases) == 0 {
		p.errorf(common.ErrExpectedToken, spanStart, "'match' needs at least one case")
	}
	return ast.NewMatch(subject, cases, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseMatchSubject() ast.Expr {
	spanStart := p.span()
	first := p.parseStarExpr()
	if !p.Token.Is(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if p.Token.Is(":") || p.Token.Is("{") {
			break
		}
		elts = append(elts, p.parseStarExpr())
	}
	return ast.NewTupleExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseCase() ast.MatchCase {
	spanStart := p.span()
	if !p.tryConsume("case") {
		p.errorAtToken(common.ErrExpectedToken, "expected 'case', got %s", describe(p.Token))
	}
	pattern := p.parseOpenPattern()

	var guard *ast.Expr
	if p.tryConsume("if") {
		g := p.parseNamedExpr()
		guard = &g
	}
	body := p.parseSuite()
	return ast.NewMatchCase(pattern, guard, body, SpanFrom(spanStart, p.prevSpan()))
}

// parseOpenPattern parses the pattern of a case, where `a, *b` is a sequence
// without brackets.
func (p *parser) parseOpenPattern() ast.Pattern {
	spanStart := p.span()
	first := p.parseSequenceElt()
	if !p.Token.Is(",") {
		if _, ok := first.(*ast.PatternStar); ok {
			p.errorf(common.ErrInvalidPattern, first.Span(), "star pattern outside a sequence")
		}
		return first
	}
	elts := []ast.Pattern{first}
	for p.tryConsume(",") {
		if p.Token.Is(":") || p.Token.Is("if") {
			break
		}
		elts = append(elts, p.parseSequenceElt())
	}
	return p.newSequencePattern(elts, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseSequenceElt() ast.Pattern {
	spanStart := p.span()
	if !p.tryConsume("*") {
		return p.parseAsPattern()
	}
	name := p.expectIdentMsg("expected name after '*' in pattern")
	if name.Raw == "_" {
		return ast.NewPatternStar(nil, SpanFrom(spanStart, p.prevSpan()))
	}
	return ast.NewPatternStar(&name, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) newSequencePattern(elts []ast.Pattern, span Span) *ast.PatternSequence {
	stars := 0
	for _, elt := range elts {
		if _, ok := elt.(*ast.PatternStar); ok {
			stars++
			if stars > 1 {
				p.errorf(common.ErrInvalidPattern, elt.Span(), "multiple starred names in sequence pattern")
			}
		}
	}
	return ast.NewPatternSequence(elts, span)
}

func (p *parser) parseAsPattern() ast.Pattern {
	spanStart := p.span()
	pattern := p.parseOrPattern()
	if !p.tryConsume("as") {
		return pattern
	}
	name := p.expectIdentMsg("expected name after 'as'")
	if name.Raw == "_" {
		p.errorf(common.ErrInvalidPattern, name.Span(), "cannot use '_' as a target")
	}
	return ast.NewPatternAs(pattern, name, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseOrPattern() ast.Pattern {
	spanStart := p.span()
	alts := []ast.Pattern{p.parseClosedPattern()}
	for p.tryConsume("|") {
		alts = append(alts, p.parseClosedPattern())
	}
	if len(alts) == 1 {
		return alts[0]
	}

	want := boundNames(alts[0])
	for _, alt := range alts[1:] {
		if !slices.Equal(boundNames(alt), want) {
			p.errorf(common.ErrInvalidPattern, alt.Span(), "alternative patterns bind different names")
		}
	}
	return ast.NewPatternOr(alts, SpanFrom(spanStart, p.prevSpan()))
}

func boundNames(pattern ast.Pattern) []string {
	var names []string
	for _, id := range ast.PatternBindings(pattern) {
		names = append(names, id.Raw)
	}
	slices.Sort(names)
	return names
}

func (p *parser) parseClosedPattern() ast.Pattern {
	spanStart := p.span()
	switch v := p.Token.(type) {
	case lexer.TokNumber:
		p.advance() // consume number
		return &ast.PatternLiteral{Value: ast.NewNumberExpr(v)}
	case lexer.TokString:
		return &ast.PatternLiteral{Value: p.parseStrings()}
	case lexer.TokFString:
		p.errorf(common.ErrInvalidPattern, v.Span(), "patterns may not match formatted strings")
	case lexer.TokIdent:
		if v.Raw == "_" && !p.peek().Is(".") && !p.peek().Is("(") {
			p.advance() // consume "_"
			return ast.NewPatternWildcard(v.Span())
		}
		return p.parseNamePattern()
	}

	switch p.Token.AsString() {
	case "-":
		p.advance() // consume "-"
		num, ok := p.Token.(lexer.TokNumber)
		if !ok {
			p.errorAtToken(common.ErrInvalidPattern, "expected number after '-' in pattern, got %s", describe(p.Token))
		}
		p.advance() // consume number
		value := ast.NewUnaryExpr(ast.UnaryOpNegate, ast.NewNumberExpr(num), SpanFrom(spanStart, p.prevSpan()))
		return &ast.PatternLiteral{Value: value}
	case "True", "False":
		tok := p.Token
		p.advance() // consume bool
		return &ast.PatternLiteral{Value: ast.NewBoolExpr(tok)}
	case "None":
		p.advance() // consume None
		return &ast.PatternLiteral{Value: ast.NewNoneExpr(spanStart)}
	case "(":
		return p.parseGroupPattern()
	case "[":
		p.advance() // consume "["
		var elts []ast.Pattern
		p.parseCommaSeparatedDelimited("]", func(p *parser) {
			elts = append(elts, p.parseSequenceElt())
		})
		return p.newSequencePattern(elts, SpanFrom(spanStart, p.prevSpan()))
	case "{":
		return p.parseMappingPattern()
	}
	p.errorAtToken(common.ErrInvalidPattern, "invalid pattern, got %s", describe(p.Token))
	panic("unreachable")
}

// parseGroupPattern parses `(p)`, which is just p, or a parenthesized
// sequence `(p, q)`.
func (p *parser) parseGroupPattern() ast.Pattern {
	spanStart := p.span()
	p.advance() // consume "("
	if p.tryConsume(")") {
		return p.newSequencePattern(nil, SpanFrom(spanStart, p.prevSpan()))
	}
	first := p.parseSequenceElt()
	if _, star := first.(*ast.PatternStar); !star && p.tryConsume(")") {
		return first
	}
	elts := []ast.Pattern{first}
	for p.tryConsume(",") {
		if p.Token.Is(")") {
			break
		}
		elts = append(elts, p.parseSequenceElt())
	}
	p.expect(")")
	return p.newSequencePattern(elts, SpanFrom(spanStart, p.prevSpan()))
}

// parseNamePattern parses a capture, a dotted value pattern or a class
// pattern.
func (p *parser) parseNamePattern() ast.Pattern {
	spanStart := p.span()
	name := p.expectIdent()
	if !p.Token.Is(".") && !p.Token.Is("(") {
		return &ast.PatternCapture{Name: name}
	}

	value := ast.NewNameExpr(name)
	for p.tryConsume(".") {
		attr := p.expectName()
		value = ast.NewAttributeExpr(value, attr, SpanFrom(spanStart, p.prevSpan()))
	}
	if !p.Token.Is("(") {
		return &ast.PatternValue{Value: value}
	}

	p.advance() // consume "("
	var args []ast.Pattern
	var kwNames []ast.Ident
	var kwValues []ast.Pattern
	p.parseCommaSeparatedDelimited(")", func(p *parser) {
		if ident, ok := p.Token.(lexer.TokIdent); ok && p.peek().Is("=") {
			p.advance() // consume name
			p.advance() // consume "="
			kwNames = append(kwNames, ident)
			kwValues = append(kwValues, p.parseAsPattern())
			return
		}
		arg := p.parseAsPattern()
		if len(kwNames) > 0 {
			p.errorf(common.ErrInvalidPattern, arg.Span(), "positional patterns follow keyword patterns")
		}
		args = append(args, arg)
	})
	return ast.NewPatternClass(value, args, kwNames, kwValues, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseMappingPattern() ast.Pattern {
	spanStart := p.span()
	p.advance() // consume "{"

	var keys []ast.Expr
	var values []ast.Pattern
	var rest *ast.Ident
	p.parseCommaSeparatedDelimited("}", func(p *parser) {
		if rest != nil {
			p.errorf(common.ErrInvalidPattern, p.span(), "'**%s' must be the last entry of a mapping pattern", rest.Raw)
		}
		if p.tryConsume("**") {
			name := p.expectIdentMsg("expected name after '**' in pattern")
			rest = &name
			return
		}
		keys = append(keys, p.parseMappingKey())
		p.expect(":")
		values = append(values, p.parseAsPattern())
	})
	return ast.NewPatternMapping(keys, values, rest, SpanFrom(spanStart, p.prevSpan()))
}

// parseMappingKey parses a literal or dotted-name key of a mapping pattern.
func (p *parser) parseMappingKey() ast.Expr {
	switch key := p.parseClosedPattern().(type) {
	case *ast.PatternLiteral:
		return key.Value
	case *ast.PatternValue:
		return key.Value
	default:
		p.errorf(common.ErrInvalidPattern, key.Span(), "mapping pattern keys must be literals or dotted names")
	}
	panic("unreachable")
}
