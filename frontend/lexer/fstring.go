package lexer

import (
	"strings"

	"github.com/pyjs-lang/pyjs/common"
)

// TokFString is an interpolated string. Its payload alternates literal text
// and replacement fields, each field carrying its own token run.
type TokFString struct {
	Parts []FStringPart
	Raw   string
	span  common.Span
}

// FStringPart is either literal text or a replacement field.
type FStringPart struct {
	Literal string
	Field   *FStringField
}

type FStringField struct {
	// Tokens is the embedded expression, terminated by EOF.
	Tokens []Token
	// Conversion is 'r', 's', 'a' or 0.
	Conversion rune
	Spec       string
	Span       common.Span
}

func (t TokFString) isToken()          {}
func (t TokFString) Kind() TokenKind   { return KindFString }
func (t TokFString) Span() common.Span { return t.span }
func (t TokFString) Lexeme() string    { return t.Raw }
func (t TokFString) String() string    { return t.Raw }
func (t TokFString) Is(_ string) bool  { return false }
func (t TokFString) AsString() string  { return "" }

/* Lexing */

// fstringField lexes `{expr[!conv][:spec]}` starting at the opening brace.
func (lx *lexer) fstringField() (*FStringField, *common.Error) {
	startLine, startCol := lx.line, lx.column
	opener := common.SpanNew(startLine, startLine, startCol, startCol)
	opener.Source = lx.src
	lx.advance() // consume '{'

	tokens, err := lx.embedded(opener, func(c rune) bool {
		switch c {
		case '}':
			return true
		case '!':
			return !isChr(lx.peek(), '=')
		case ':':
			return !isChr(lx.peek(), '=')
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if len(tokens) == 1 {
		return nil, lx.errorAt(common.ErrUnexpectedToken, "f-string: empty expression not allowed", opener)
	}

	field := &FStringField{Tokens: tokens}

	if isChr(lx.curChr, '!') {
		lx.advance()
		c := lx.curChr
		if c == nil || (*c != 'r' && *c != 's' && *c != 'a') {
			return nil, lx.errorHere(common.ErrUnexpectedCharacter, "f-string: invalid conversion character, expected 'r', 's' or 'a'")
		}
		field.Conversion = *c
		lx.advance()
	}

	if isChr(lx.curChr, ':') {
		lx.advance()
		var sb strings.Builder
		for c := lx.curChr; c != nil && *c != '}'; c = lx.curChr {
			if *c == '{' {
				return nil, lx.errorHere(common.ErrUnexpectedCharacter, "f-string: nested replacement fields in a format spec are not supported")
			}
			if *c == '\n' {
				break
			}
			sb.WriteRune(*c)
			lx.advance()
		}
		field.Spec = sb.String()
	}

	if !isChr(lx.curChr, '}') {
		return nil, lx.errorAt(common.ErrUnterminatedString, "f-string: expecting '}'", opener)
	}
	lx.advance() // consume '}'

	field.Span = common.SpanNew(startLine, lx.line, startCol, lx.column-1)
	field.Span.Source = lx.src
	return field, nil
}

// embedded lexes an expression nested inside a literal (f-string field or
// JSX container) with the regular scanner. It stops, without consuming it, at
// the first character at nesting depth zero for which stop returns true.
// The returned run ends with an EOF token.
func (lx *lexer) embedded(opener common.Span, stop func(rune) bool) ([]Token, *common.Error) {
	pending, prev, prev2 := lx.pending, lx.prev, lx.prev2
	atLineStart, lineHasTokens := lx.atLineStart, lx.lineHasTokens
	savedLine, savedColumn, savedPos := lx.savedLine, lx.savedColumn, lx.savedPos
	defer func() {
		lx.pending, lx.prev, lx.prev2 = pending, prev, prev2
		lx.atLineStart, lx.lineHasTokens = atLineStart, lineHasTokens
		lx.savedLine, lx.savedColumn, lx.savedPos = savedLine, savedColumn, savedPos
	}()

	lx.pending, lx.prev, lx.prev2 = nil, nil, nil
	lx.atLineStart = false
	lx.pushFrame(frameEmbed, opener)
	embed := lx.frame()

	var tokens []Token
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			tokens = append(tokens, lx.emit(tok))
			continue
		}
		if lx.frame() == embed {
			lx.skipSpace()
			for isChr(lx.curChr, '\n') {
				lx.advance()
				lx.skipSpace()
			}
			if c := lx.curChr; c != nil && stop(*c) {
				break
			}
		}
		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
	lx.frames.Pop()

	eof := common.SpanNew(lx.line, lx.line, lx.column, lx.column)
	eof.Source = lx.src
	return append(tokens, TokEOF{span: eof}), nil
}
