package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

// parseStmtsUntil parses statements until done reports true. Blank lines and
// stray semicolons between statements are skipped.
func (p *parser) parseStmtsUntil(done func() bool) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		p.skipSeparators()
		if done() {
			return stmts
		}
		if lexer.IsEOF(p.Token) {
			p.unexpected()
		}
		stmts = append(stmts, p.parseStmt())
	}
}

func (p *parser) skipSeparators() {
	for lexer.IsNewline(p.Token) || p.Token.Is(";") {
		p.advance()
	}
}

func (p *parser) skipNewlines() {
	for lexer.IsNewline(p.Token) {
		p.advance()
	}
}

func (p *parser) isDedent() bool {
	return p.Token.Kind() == lexer.KindDedent
}

// parseSuite parses the body of a compound statement. The first token after
// the header picks the form: `{` opens a brace block, `:` an indented block
// or simple statements on the same line.
func (p *parser) parseSuite() []ast.Stmt {
	switch {
	case p.Token.Is("{"):
		p.advance() // consume "{"
		body := p.parseStmtsUntil(func() bool { return p.Token.Is("}") })
		p.advance() // consume "}"
		return body
	case p.Token.Is(":"):
		p.advance() // consume ":"
		if !lexer.IsNewline(p.Token) {
			return p.parseSimpleSuite()
		}
		p.advance() // consume newline
		if p.Token.Kind() != lexer.KindIndent {
			p.errorAtToken(common.ErrInvalidIndent, "expected an indented block, got %s", describe(p.Token))
		}
		p.advance() // consume indent
		body := p.parseStmtsUntil(p.isDedent)
		p.advance() // consume dedent
		return body
	}
	p.errorAtToken(common.ErrExpectedToken, "expected ':' or '{', got %s", describe(p.Token))
	return nil
}

// parseSimpleSuite parses `a; b` after a colon, up to the end of the line.
func (p *parser) parseSimpleSuite() []ast.Stmt {
	var body []ast.Stmt
	for {
		if p.isCompoundStart() {
			p.errorf(common.ErrUnexpectedToken, p.span(),
				"compound statement cannot follow ':' on the same line; use a brace block")
		}
		body = append(body, p.parseSimpleStmt())
		if !p.tryConsume(";") || p.atLineEnd() {
			break
		}
	}
	p.endLine()
	return body
}

func (p *parser) atLineEnd() bool {
	return lexer.IsNewline(p.Token) || p.atBlockEnd()
}

func (p *parser) atBlockEnd() bool {
	return p.Token.Is("}") || p.isDedent() || lexer.IsEOF(p.Token)
}

// endLine consumes the newline ending a simple statement line. A closing
// brace, dedent or end of file also ends it and is left in place.
func (p *parser) endLine() {
	switch {
	case lexer.IsNewline(p.Token):
		p.advance()
	case p.atBlockEnd():
	default:
		p.errorAtToken(common.ErrExpectedToken, "expected end of line, got %s", describe(p.Token))
	}
}

// endStmt consumes the terminator of a simple statement.
func (p *parser) endStmt() {
	if p.tryConsume(";") {
		return
	}
	switch {
	case lexer.IsNewline(p.Token):
		p.advance()
	case p.atBlockEnd():
	default:
		p.errorAtToken(common.ErrExpectedToken, "expected end of statement, got %s", describe(p.Token))
	}
}

// continuesWith reports whether the statement goes on with the clause kw.
// After a brace block the clause may start on the next line.
func (p *parser) continuesWith(kw string) bool {
	if p.Token.Is(kw) {
		return true
	}
	if lexer.IsNewline(p.Token) && p.peek().Is(kw) && p.prevToken().Is("}") {
		p.advance() // consume newline
		return true
	}
	return false
}
