package parser

import (
	"strings"
	"unicode"

	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

// parseStrings joins adjacent string and f-string literals. The result is a
// String unless one of the pieces is an f-string.
func (p *parser) parseStrings() ast.Expr {
	spanStart := p.span()
	var parts []ast.FStringPart
	formatted := false

	addLiteral := func(s string) {
		if n := len(parts); n > 0 && parts[n-1].Field == nil {
			parts[n-1].Literal += s
			return
		}
		parts = append(parts, ast.FStringPart{Literal: s})
	}

loop:
	for {
		switch v := p.Token.(type) {
		case lexer.TokString:
			addLiteral(v.Value)
		case lexer.TokFString:
			formatted = true
			for _, part := range v.Parts {
				if part.Field == nil {
					addLiteral(part.Literal)
					continue
				}
				parts = append(parts, ast.FStringPart{Field: p.parseFStringField(part.Field)})
			}
		default:
			break loop
		}
		p.advance() // consume string
	}

	span := SpanFrom(spanStart, p.prevSpan())
	if !formatted {
		var sb strings.Builder
		for _, part := range parts {
			sb.WriteString(part.Literal)
		}
		return ast.NewStringExpr(sb.String(), span)
	}
	return ast.NewFStringExpr(parts, span)
}

func (p *parser) parseFStringField(field *lexer.FStringField) *ast.FStringField {
	value := p.subParse(field.Tokens, p.parseExprList)
	return &ast.FStringField{Value: value, Conversion: field.Conversion, Spec: field.Spec}
}

// parseExprList parses `a, b` into a tuple, without starred elements.
func (p *parser) parseExprList() ast.Expr {
	spanStart := p.span()
	first := p.parseNamedExpr()
	if !p.Token.Is(",") {
		return first
	}
	elts := []ast.Expr{first}
	for p.tryConsume(",") {
		if !p.canStartExpr() {
			break
		}
		elts = append(elts, p.parseExpr())
	}
	return ast.NewTupleExpr(elts, SpanFrom(spanStart, p.prevSpan()))
}

func (p *parser) parseJSX(node *lexer.JSXNode) *ast.JSXElement {
	var tagExpr *ast.Expr
	if isComponentTag(node.Tag) {
		e := jsxTagExpr(node.Tag, node.Span)
		tagExpr = &e
	}

	attrs := make([]ast.JSXAttr, 0, len(node.Attrs))
	for _, attr := range node.Attrs {
		var value *ast.Expr
		if attr.Tokens != nil {
			v := p.subParse(attr.Tokens, p.parseExpr)
			value = &v
		}
		attrs = append(attrs, ast.NewJSXAttr(attr.Name, attr.Str, value, attr.Spread, attr.Span))
	}

	var children []ast.JSXChild
	for _, child := range node.Children {
		switch {
		case child.Element != nil:
			children = append(children, ast.JSXChild{Element: p.parseJSX(child.Element)})
		case child.Tokens != nil:
			v := p.subParse(child.Tokens, p.parseExpr)
			children = append(children, ast.JSXChild{Expr: &v})
		default:
			children = append(children, ast.JSXChild{Text: child.Text})
		}
	}
	return ast.NewJSXElement(node.Tag, tagExpr, attrs, children, node.Span)
}

// isComponentTag reports whether tag names a value (`Button`, `ui.Card`)
// rather than an intrinsic element (`div`, `my-widget`).
func isComponentTag(tag string) bool {
	if tag == "" || strings.ContainsAny(tag, "-:") {
		return false
	}
	if strings.Contains(tag, ".") {
		return true
	}
	first := []rune(tag)[0]
	return unicode.IsUpper(first)
}

// jsxTagExpr turns a component tag into a name or attribute chain.
func jsxTagExpr(tag string, span Span) ast.Expr {
	segs := strings.Split(tag, ".")
	expr := ast.NewNameExpr(lexer.NewTokIdent(segs[0], span))
	for _, seg := range segs[1:] {
		expr = ast.NewAttributeExpr(expr, lexer.NewTokIdent(seg, span), span)
	}
	return expr
}
