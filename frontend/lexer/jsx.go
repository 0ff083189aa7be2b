package lexer

import (
	"fmt"
	"html"
	"strings"

	"github.com/pyjs-lang/pyjs/common"
)

// TokJSX is a complete JSX element. Expression containers inside it are
// already tokenized.
type TokJSX struct {
	Element *JSXNode
	Raw     string
	span    common.Span
}

func (t TokJSX) isToken()          {}
func (t TokJSX) Kind() TokenKind   { return KindJSX }
func (t TokJSX) Span() common.Span { return t.span }
func (t TokJSX) Lexeme() string    { return t.Raw }
func (t TokJSX) String() string    { return t.Raw }
func (t TokJSX) Is(_ string) bool  { return false }
func (t TokJSX) AsString() string  { return "" }

type JSXNode struct {
	// Tag is empty for a fragment.
	Tag         string
	Attrs       []JSXAttr
	Children    []JSXChild
	SelfClosing bool
	Span        common.Span
}

// JSXAttr is `name="str"`, `name={expr}`, a bare `name` or `{...expr}`.
type JSXAttr struct {
	Name   string
	Str    *string
	Tokens []Token
	Spread bool
	Span   common.Span
}

// JSXChild holds exactly one of Text, Tokens or Element.
type JSXChild struct {
	Text    string
	Tokens  []Token
	Element *JSXNode
	Span    common.Span
}

/* Lexing */

func (lx *lexer) jsx() (Token, *common.Error) {
	node, err := lx.jsxElement()
	if err != nil {
		return nil, err
	}
	return TokJSX{Element: node, Raw: lx.lexeme(), span: lx.currentSpan()}, nil
}

func (lx *lexer) jsxElement() (*JSXNode, *common.Error) {
	startLine, startCol := lx.line, lx.column
	opener := lx.spanFrom(startLine, startCol)
	lx.advance() // consume '<'
	lx.skipJSXSpace()

	node := &JSXNode{}
	if !isChr(lx.curChr, '>') {
		node.Tag = lx.jsxName()
		if node.Tag == "" {
			return nil, lx.errorHere(common.ErrInvalidJSX, "expected a tag name")
		}
		if err := lx.jsxAttrs(node); err != nil {
			return nil, err
		}
	}

	if isChr(lx.curChr, '/') {
		lx.advance()
		if !isChr(lx.curChr, '>') {
			return nil, lx.errorHere(common.ErrInvalidJSX, "expected '>' after '/'")
		}
		lx.advance()
		node.SelfClosing = true
		node.Span = lx.spanFrom(startLine, startCol)
		return node, nil
	}
	lx.advance() // consume '>'

	if err := lx.jsxChildren(node, opener); err != nil {
		return nil, err
	}
	node.Span = lx.spanFrom(startLine, startCol)
	return node, nil
}

func (lx *lexer) jsxAttrs(node *JSXNode) *common.Error {
	for {
		lx.skipJSXSpace()
		c := lx.curChr
		switch {
		case c == nil:
			return lx.errorHere(common.ErrUnexpectedEOF, fmt.Sprintf("unterminated <%s> tag", node.Tag))
		case *c == '>' || *c == '/':
			return nil
		case *c == '{':
			attr, err := lx.jsxSpread()
			if err != nil {
				return err
			}
			node.Attrs = append(node.Attrs, attr)
		case isIdentStart(*c):
			attr, err := lx.jsxAttr()
			if err != nil {
				return err
			}
			node.Attrs = append(node.Attrs, attr)
		default:
			return lx.errorHere(common.ErrInvalidJSX, fmt.Sprintf("unexpected %q in <%s> tag", *c, node.Tag))
		}
	}
}

func (lx *lexer) jsxSpread() (JSXAttr, *common.Error) {
	startLine, startCol := lx.line, lx.column
	opener := lx.spanFrom(startLine, startCol)
	lx.advance() // consume '{'
	lx.skipJSXSpace()
	for range 3 {
		if !isChr(lx.curChr, '.') {
			return JSXAttr{}, lx.errorHere(common.ErrInvalidJSX, "expected '...' in attribute spread")
		}
		lx.advance()
	}
	tokens, err := lx.jsxContainer(opener)
	if err != nil {
		return JSXAttr{}, err
	}
	return JSXAttr{Tokens: tokens, Spread: true, Span: lx.spanFrom(startLine, startCol)}, nil
}

func (lx *lexer) jsxAttr() (JSXAttr, *common.Error) {
	startLine, startCol := lx.line, lx.column
	attr := JSXAttr{Name: lx.jsxName()}
	lx.skipJSXSpace()
	if !isChr(lx.curChr, '=') {
		attr.Span = lx.spanFrom(startLine, startCol)
		return attr, nil
	}
	lx.advance() // consume '='
	lx.skipJSXSpace()

	c := lx.curChr
	switch {
	case c != nil && (*c == '"' || *c == '\''):
		quote := *c
		lx.advance()
		var sb strings.Builder
		for c := lx.curChr; c == nil || *c != quote; c = lx.curChr {
			if c == nil {
				return JSXAttr{}, lx.errorAt(common.ErrUnterminatedString,
					"unterminated attribute string", lx.spanFrom(startLine, startCol))
			}
			sb.WriteRune(*c)
			lx.advance()
		}
		lx.advance() // closing quote
		s := html.UnescapeString(sb.String())
		attr.Str = &s
	case c != nil && *c == '{':
		opener := lx.spanFrom(lx.line, lx.column)
		lx.advance()
		tokens, err := lx.jsxContainer(opener)
		if err != nil {
			return JSXAttr{}, err
		}
		if len(tokens) == 1 {
			return JSXAttr{}, lx.errorAt(common.ErrInvalidJSX, "attribute expression must not be empty", opener)
		}
		attr.Tokens = tokens
	default:
		return JSXAttr{}, lx.errorHere(common.ErrInvalidJSX,
			fmt.Sprintf("expected a string or '{' after %s=", attr.Name))
	}
	attr.Span = lx.spanFrom(startLine, startCol)
	return attr, nil
}

func (lx *lexer) jsxChildren(node *JSXNode, opener common.Span) *common.Error {
	for {
		c := lx.curChr
		if c == nil {
			name := node.Tag
			return lx.errorAt(common.ErrUnexpectedEOF, fmt.Sprintf("<%s> was never closed", name), opener)
		}

		switch *c {
		case '<':
			if isChr(lx.peek(), '/') {
				return lx.jsxClosing(node)
			}
			child, err := lx.jsxElement()
			if err != nil {
				return err
			}
			node.Children = append(node.Children, JSXChild{Element: child, Span: child.Span})
		case '{':
			startLine, startCol := lx.line, lx.column
			brace := lx.spanFrom(startLine, startCol)
			lx.advance()
			lx.skipJSXSpace()
			if isChr(lx.curChr, '}') {
				lx.advance()
				continue
			}
			tokens, err := lx.jsxContainer(brace)
			if err != nil {
				return err
			}
			node.Children = append(node.Children, JSXChild{Tokens: tokens, Span: lx.spanFrom(startLine, startCol)})
		default:
			startLine, startCol := lx.line, lx.column
			var sb strings.Builder
			for c := lx.curChr; c != nil && *c != '<' && *c != '{'; c = lx.curChr {
				sb.WriteRune(*c)
				lx.advance()
			}
			if text := JSXText(sb.String()); text != "" {
				node.Children = append(node.Children, JSXChild{Text: text, Span: lx.spanFrom(startLine, startCol)})
			}
		}
	}
}

func (lx *lexer) jsxClosing(node *JSXNode) *common.Error {
	startLine, startCol := lx.line, lx.column
	lx.advance() // consume '<'
	lx.advance() // consume '/'
	lx.skipJSXSpace()
	name := lx.jsxName()
	lx.skipJSXSpace()
	if !isChr(lx.curChr, '>') {
		return lx.errorHere(common.ErrInvalidJSX, "expected '>' in closing tag")
	}
	lx.advance()
	if name != node.Tag {
		return lx.errorAt(common.ErrInvalidJSX,
			fmt.Sprintf("expected closing tag </%s>, found </%s>", node.Tag, name),
			lx.spanFrom(startLine, startCol))
	}
	return nil
}

// jsxContainer lexes the expression of a `{...}` container; the opening
// brace is already consumed.
func (lx *lexer) jsxContainer(opener common.Span) ([]Token, *common.Error) {
	tokens, err := lx.embedded(opener, func(c rune) bool { return c == '}' })
	if err != nil {
		return nil, err
	}
	if !isChr(lx.curChr, '}') {
		return nil, lx.errorAt(common.ErrUnexpectedEOF, "'{' was never closed", opener)
	}
	lx.advance()
	return tokens, nil
}

// jsxName reads a tag or attribute name such as `div`, `ui.Button`,
// `aria-label` or `xlink:href`.
func (lx *lexer) jsxName() string {
	var sb strings.Builder
	for c := lx.curChr; c != nil; c = lx.curChr {
		if !isIdentContinue(*c) && *c != '.' && *c != '-' && *c != ':' {
			break
		}
		sb.WriteRune(*c)
		lx.advance()
	}
	return sb.String()
}

func (lx *lexer) skipJSXSpace() {
	for c := lx.curChr; c != nil; c = lx.curChr {
		if *c != ' ' && *c != '\t' && *c != '\r' && *c != '\n' {
			return
		}
		lx.advance()
	}
}

func (lx *lexer) spanFrom(line, col uint32) common.Span {
	end := lx.column - 1
	if lx.line == line && end < col {
		end = col
	}
	span := common.SpanNew(line, lx.line, col, end)
	span.Source = lx.src
	return span
}

// JSXText collapses JSX text the way JSX compilers do: lines are trimmed,
// whitespace-only lines are dropped and the rest are joined by one space.
// Character references are decoded.
func JSXText(raw string) string {
	lines := strings.Split(raw, "\n")
	var kept []string
	for i, line := range lines {
		if i > 0 {
			line = strings.TrimLeft(line, " \t\r")
		}
		if i < len(lines)-1 {
			line = strings.TrimRight(line, " \t\r")
		}
		if strings.TrimSpace(line) == "" && len(lines) > 1 {
			continue
		}
		kept = append(kept, line)
	}
	return html.UnescapeString(strings.Join(kept, " "))
}
