package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/lexer/peekable"
)

// Options tune the lexer; the zero value is usable.
type Options struct {
	// TabWidth is the indentation width a tab advances to (default 4).
	TabWidth int
}

// lexer is a hand-rolled, rune-based scanner.
type lexer struct {
	src   string // src is the file being scanned
	chars *peekable.Chars
	opts  Options

	curChr                 *rune
	curPos                 int // byte offset of curChr
	line, column           uint32
	savedLine, savedColumn uint32
	savedPos               int

	frames        common.Stack[*frame]
	pending       []Token
	atLineStart   bool
	lineHasTokens bool
	prev, prev2   Token // last two emitted tokens
}

func Lex(src, code string) ([]Token, *common.Error) {
	return LexWithOptions(src, code, Options{})
}

func LexWithOptions(src, code string, opts Options) ([]Token, *common.Error) {
	if err := checkEncoding(src, code); err != nil {
		return nil, err
	}
	var tokens []Token
	lx := newLexer(src, code, opts)
	for {
		tok, err := lx.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if _, ok := tok.(TokEOF); ok {
			break
		}
	}
	return tokens, nil
}

// checkEncoding rejects code that is not valid UTF-8, pointing at the
// first bad byte.
func checkEncoding(src, code string) *common.Error {
	if utf8.ValidString(code) {
		return nil
	}
	line, column := uint32(1), uint32(1)
	for i := 0; i < len(code); {
		r, size := utf8.DecodeRuneInString(code[i:])
		if r == utf8.RuneError && size == 1 {
			span := common.SpanNew(line, line, column, column)
			span.Source = src
			return common.NewError(common.StageLex, common.ErrUnexpectedCharacter,
				fmt.Sprintf("invalid UTF-8 byte 0x%02x", code[i]), span)
		}
		if r == '\n' {
			line++
			column = 1
		} else {
			column++
		}
		i += size
	}
	return nil
}

// newLexer returns a fresh lexer initialised with code.
func newLexer(src, code string, opts Options) *lexer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = 4
	}
	chars := peekable.NewPeekableChars(code)
	lx := &lexer{
		src:   src,
		chars: chars,
		opts:  opts,
		line:  1, column: 1,
		savedLine: 1, savedColumn: 1,
		atLineStart: true,
	}
	lx.curPos = chars.Pos()
	lx.curChr = chars.Next()
	lx.frames.Push(&frame{kind: frameFile, indents: []int{0}})
	return lx
}

func (lx *lexer) currentSpan() common.Span {
	end := lx.column - 1
	if lx.line == lx.savedLine && end < lx.savedColumn {
		end = lx.savedColumn
	}
	span := common.SpanNew(lx.savedLine, lx.line, lx.savedColumn, end)
	span.Source = lx.src
	return span
}

// lexeme is the source text scanned since the last markStart.
func (lx *lexer) lexeme() string {
	return lx.chars.Slice(lx.savedPos, lx.curPos)
}

func (lx *lexer) markStart() {
	lx.savedLine = lx.line
	lx.savedColumn = lx.column
	lx.savedPos = lx.curPos
}

func (lx *lexer) advance() {
	c := lx.curChr
	if c != nil {
		if *c == '\n' {
			lx.line++
			lx.column = 1
		} else {
			lx.column++
		}
	}
	lx.curPos = lx.chars.Pos()
	lx.curChr = lx.chars.Next()
}

func (lx *lexer) peek() *rune {
	return lx.chars.Peek()
}

func (lx *lexer) peekN(n int) *rune {
	return lx.chars.PeekN(n)
}

// error reports a failure starting at the last markStart, one column wide.
func (lx *lexer) error(kind common.ErrorKind, msg string) *common.Error {
	span := common.SpanNew(lx.savedLine, lx.savedLine, lx.savedColumn, lx.savedColumn)
	span.Source = lx.src
	return common.NewError(common.StageLex, kind, msg, span)
}

func (lx *lexer) errorAt(kind common.ErrorKind, msg string, span common.Span) *common.Error {
	return common.NewError(common.StageLex, kind, msg, span)
}

func (lx *lexer) queue(tok Token) {
	lx.pending = append(lx.pending, tok)
}

func (lx *lexer) emit(tok Token) Token {
	if !IsStructural(tok) {
		lx.lineHasTokens = true
	}
	lx.prev2, lx.prev = lx.prev, tok
	return tok
}

func (lx *lexer) nextToken() (Token, *common.Error) {
	for len(lx.pending) == 0 {
		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return lx.emit(tok), nil
}

// skipSpace skips blanks, comments and escaped newlines, but not newlines.
func (lx *lexer) skipSpace() {
	for c := lx.curChr; c != nil; c = lx.curChr {
		switch {
		case *c == ' ' || *c == '\t' || *c == '\f' || *c == '\r':
			lx.advance()
		case *c == '#':
			for c := lx.curChr; c != nil && *c != '\n'; c = lx.curChr {
				lx.advance()
			}
		case *c == '\\' && isChr(lx.peek(), '\n'):
			lx.advance()
			lx.advance()
		default:
			return
		}
	}
}

// scan queues at least one token, or none when it only consumed layout.
func (lx *lexer) scan() *common.Error {
	if lx.atLineStart {
		if err := lx.lineStart(); err != nil {
			return err
		}
		if len(lx.pending) > 0 {
			return nil
		}
	}

	lx.skipSpace()
	lx.markStart()

	c := lx.curChr
	if c == nil {
		return lx.finish()
	}

	if *c == '\n' {
		lx.advance()
		if lx.layoutActive() {
			if lx.lineHasTokens {
				lx.queue(TokNewline{span: lx.currentSpan()})
				lx.lineHasTokens = false
			}
			lx.atLineStart = true
		}
		return nil
	}

	tok, err := lx.token()
	if err != nil {
		return err
	}
	lx.queue(tok)
	return nil
}

// token scans one non-layout token starting at the current character.
func (lx *lexer) token() (Token, *common.Error) {
	c := *lx.curChr

	if c == '<' && !endsOperand(lx.prev) && (isIdentStart(lx.peekRune()) || isChr(lx.peek(), '>')) {
		return lx.jsx()
	}

	if isStringStart(lx) {
		return lx.string()
	}

	if isDigit(c) || (c == '.' && isDigit(lx.peekRune())) {
		return lx.number()
	}

	if isIdentStart(c) {
		identTok, err := lx.identifier()
		if err != nil {
			return nil, err
		}
		if keyword, ok := lookupKeyword(identTok.Raw); ok {
			return newTokKeyword(keyword, identTok.Span()), nil
		}
		return identTok, nil
	}

	if tok := lx.punct(); tok != nil {
		if err := lx.trackDelimiter(*tok); err != nil {
			return nil, err
		}
		return *tok, nil
	}

	return nil, lx.error(common.ErrUnexpectedCharacter, fmt.Sprintf("unexpected character: %q", c))
}

// trackDelimiter opens and closes layout frames for bracket tokens.
func (lx *lexer) trackDelimiter(tok TokPunct) *common.Error {
	switch tok.Punct {
	case PunctOpenParen:
		lx.pushFrame(frameParen, tok.span)
	case PunctOpenBracket:
		lx.pushFrame(frameBracket, tok.span)
	case PunctOpenBrace:
		if lx.braceOpensBlock() {
			lx.pushFrame(frameBlock, tok.span)
		} else {
			lx.pushFrame(frameValue, tok.span)
		}
	case PunctCloseParen:
		return lx.popFrame(')', tok.span)
	case PunctCloseBracket:
		return lx.popFrame(']', tok.span)
	case PunctCloseBrace:
		return lx.popFrame('}', tok.span)
	}
	return nil
}

func (lx *lexer) braceOpensBlock() bool {
	if kw, ok := lx.prev.(TokKeyword); ok && kw.Keyword == KwElse {
		// `a if c else {}` is a ternary; an else clause starts a line or follows `}`
		return lx.prev2 == nil || IsStructural(lx.prev2) || lx.prev2.Is("}")
	}
	return opensBlock(lx.prev)
}

func (lx *lexer) peekRune() rune {
	if r := lx.peek(); r != nil {
		return *r
	}
	return 0
}

func isChr(c *rune, e rune) bool {
	return c != nil && *c == e
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
