package parser

import (
	"fmt"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
	"github.com/pyjs-lang/pyjs/frontend/sema"
)

type Span = common.Span

var SpanFrom = common.SpanFrom

// Options tune name resolution after parsing.
type Options struct {
	// Globals are extra host names accepted without a binding.
	Globals []string
	// SkipResolve leaves names unresolved; used by tools that only need the
	// tree.
	SkipResolve bool
}

type scopeKind uint8

const (
	scopeModule scopeKind = iota
	scopeFunction
	scopeLambda
	scopeClass
)

// scopeCtx tracks the function-like body being parsed, for the checks on
// return, yield, await and loop control.
type scopeCtx struct {
	kind      scopeKind
	async     bool
	generator bool
	loops     int
}

type parser struct {
	TokenStream []lexer.Token
	Token       lexer.Token
	Pos         uint32

	scopes common.Stack[*scopeCtx]
}

func Parse(tokens []lexer.Token) (*ast.Program, *common.Error) {
	return ParseWithOptions(tokens, Options{})
}

func ParseWithOptions(tokens []lexer.Token, opts Options) (prog *ast.Program, err *common.Error) {
	if len(tokens) == 0 || !lexer.IsEOF(tokens[len(tokens)-1]) {
		tokens = append(tokens, lexer.NewTokEOF(common.SpanDefault()))
	}
	p := &parser{
		TokenStream: tokens,
		Token:       tokens[0],
	}

	defer func() {
		if r := recover(); r != nil {
			prog = nil
			err = errorFromPanic(r)
		}
	}()

	p.scopes.Push(&scopeCtx{kind: scopeModule})
	spanStart := p.span()
	body := p.parseStmtsUntil(func() bool { return lexer.IsEOF(p.Token) })
	prog = ast.NewProgram(body, SpanFrom(spanStart, p.prevSpan()))

	if !opts.SkipResolve {
		if rerr := sema.Resolve(prog, sema.Options{Globals: opts.Globals}); rerr != nil {
			return nil, rerr
		}
	}
	return prog, nil
}

func errorFromPanic(r any) *common.Error {
	switch e := r.(type) {
	case *common.Error:
		return e
	default:
		panic(fmt.Errorf("unexpected error: %v", r))
	}
}

// advance moves the parser forward by one token.
func (p *parser) advance() {
	p.Pos = min(p.Pos+1, uint32(len(p.TokenStream)-1))
	p.Token = p.TokenStream[p.Pos]
}

func (p *parser) peek() lexer.Token {
	return p.peekOffset(+1)
}

// peekOffset returns the token at p.Pos + n, clamped to the stream.
func (p *parser) peekOffset(n int) lexer.Token {
	idx := int(p.Pos) + n
	if idx < 0 {
		idx = 0
	} else if idx >= len(p.TokenStream) {
		idx = len(p.TokenStream) - 1
	}
	return p.TokenStream[idx]
}

func (p *parser) tryConsume(s string) bool {
	if p.Token.Is(s) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(s string) {
	if !p.tryConsume(s) {
		p.errorAtToken(common.ErrExpectedToken, "expected '%s', got %s", s, describe(p.Token))
	}
}

func (p *parser) expectIdentMsg(msg string) lexer.TokIdent {
	if ident, ok := p.Token.(lexer.TokIdent); ok {
		p.advance()
		return ident
	}
	p.errorAtToken(common.ErrExpectedToken, "%s, got %s", msg, describe(p.Token))
	panic("unreachable")
}

func (p *parser) expectIdent() lexer.TokIdent {
	return p.expectIdentMsg("expected identifier")
}

// expectName accepts an identifier or a keyword, for attribute and keyword
// argument names.
func (p *parser) expectName() lexer.TokIdent {
	if kw, ok := p.Token.(lexer.TokKeyword); ok {
		p.advance()
		return lexer.NewTokIdent(kw.String(), kw.Span())
	}
	return p.expectIdentMsg("expected name")
}

func (p *parser) isName(tok lexer.Token) bool {
	switch tok.(type) {
	case lexer.TokIdent, lexer.TokKeyword:
		return true
	}
	return false
}

func (p *parser) span() Span {
	return p.Token.Span()
}

// prevSpan is the span of the last consumed token that is not layout.
func (p *parser) prevSpan() Span {
	for i := int(p.Pos) - 1; i >= 0; i-- {
		if tok := p.TokenStream[i]; !lexer.IsStructural(tok) {
			return tok.Span()
		}
	}
	return p.span()
}

func (p *parser) errorf(kind common.ErrorKind, span Span, format string, args ...any) {
	common.PanicError(common.StageParse, kind, fmt.Sprintf(format, args...), span)
}

// errorAtToken reports a problem with the current token. Running into the end
// of the input is reported as ErrUnexpectedEOF, so callers can ask for more.
func (p *parser) errorAtToken(kind common.ErrorKind, format string, args ...any) {
	if lexer.IsEOF(p.Token) {
		kind = common.ErrUnexpectedEOF
	}
	p.errorf(kind, p.span(), format, args...)
}

func (p *parser) unexpected() {
	p.errorAtToken(common.ErrUnexpectedToken, "unexpected %s", describe(p.Token))
}

func (p *parser) scope() *scopeCtx {
	return *p.scopes.Top()
}

func (p *parser) prevToken() lexer.Token {
	return p.peekOffset(-1)
}

func describe(tok lexer.Token) string {
	switch tok.Kind() {
	case lexer.KindNewline:
		return "end of line"
	case lexer.KindIndent:
		return "indent"
	case lexer.KindDedent:
		return "dedent"
	case lexer.KindEOF:
		return "end of file"
	case lexer.KindFString, lexer.KindJSX:
		return tok.Kind().String()
	}
	return fmt.Sprintf("'%s'", tok.Lexeme())
}

// matchingClose returns the index of the token closing the bracket at idx.
func (p *parser) matchingClose(idx int) int {
	depth := 0
	for i := idx; i < len(p.TokenStream); i++ {
		tok := p.TokenStream[i]
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
			if depth == 0 {
				return i
			}
		case lexer.IsEOF(tok):
			return i
		}
	}
	return len(p.TokenStream) - 1
}

// topLevelKeyword reports whether the bracket at idx directly contains the
// keyword kw (outside nested brackets).
func (p *parser) topLevelKeyword(idx int, kw string) bool {
	end := p.matchingClose(idx)
	depth := 0
	for i := idx + 1; i < end; i++ {
		tok := p.TokenStream[i]
		switch {
		case tok.Is("(") || tok.Is("[") || tok.Is("{"):
			depth++
		case tok.Is(")") || tok.Is("]") || tok.Is("}"):
			depth--
		case depth == 0 && tok.Is(kw):
			return true
		}
	}
	return false
}

func (p *parser) parseCommaSeparatedDelimited(closing string, parse func(*parser)) {
	for !p.Token.Is(closing) {
		parse(p)
		if !p.tryConsume(",") {
			break
		}
	}
	p.expect(closing)
}

// subParse runs parse over an embedded token run (f-string field or JSX
// container) that must be consumed completely.
func (p *parser) subParse(tokens []lexer.Token, parse func() ast.Expr) ast.Expr {
	stream, tok, pos := p.TokenStream, p.Token, p.Pos
	defer func() {
		p.TokenStream, p.Token, p.Pos = stream, tok, pos
	}()

	p.TokenStream, p.Pos = tokens, 0
	p.Token = tokens[0]
	expr := parse()
	if !lexer.IsEOF(p.Token) {
		p.unexpected()
	}
	return expr
}
