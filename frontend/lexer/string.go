package lexer

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/common"
)

// TokString represents a string literal; Value holds the decoded text.
type TokString struct {
	Value  string
	Raw    string
	Triple bool
	span   common.Span
}

func (t TokString) isToken()          {}
func (t TokString) Kind() TokenKind   { return KindString }
func (t TokString) Span() common.Span { return t.span }
func (t TokString) Lexeme() string    { return t.Raw }
func (t TokString) String() string    { return t.Raw }
func (t TokString) Is(_ string) bool  { return false }
func (t TokString) AsString() string  { return "" }

func NewTokString(value string, span common.Span) TokString {
	return TokString{Value: value, Raw: fmt.Sprintf("%q", value), span: span}
}

/* Lexing */

type stringPrefix struct {
	raw, format bool
	width       int
}

// scanPrefix reads an optional r/f/u prefix (in any case and order) that is
// directly followed by a quote.
func (lx *lexer) scanPrefix() (stringPrefix, bool) {
	var p stringPrefix
	for i := 0; i < 3; i++ {
		var r *rune
		if i == 0 {
			r = lx.curChr
		} else {
			r = lx.peekN(i - 1)
		}
		if r == nil {
			return p, false
		}
		switch *r {
		case '"', '\'':
			p.width = i
			return p, true
		case 'r', 'R':
			if p.raw {
				return p, false
			}
			p.raw = true
		case 'f', 'F':
			if p.format {
				return p, false
			}
			p.format = true
		case 'u', 'U':
			if i != 0 || isChr(lx.peek(), 'r') || isChr(lx.peek(), 'f') {
				return p, false
			}
		default:
			return p, false
		}
	}
	return p, false
}

func isStringStart(lx *lexer) bool {
	_, ok := lx.scanPrefix()
	return ok
}

func (lx *lexer) string() (Token, *common.Error) {
	prefix, _ := lx.scanPrefix()
	for range prefix.width {
		lx.advance()
	}

	quote := *lx.curChr
	triple := isChr(lx.peek(), quote) && isChr(lx.peekN(1), quote)
	if triple {
		lx.advance()
		lx.advance()
	}
	lx.advance() // opening quote

	var parts []FStringPart
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			parts = append(parts, FStringPart{Literal: sb.String()})
			sb.Reset()
		}
	}

	for {
		c := lx.curChr
		if c == nil || (*c == '\n' && !triple) {
			return nil, lx.error(common.ErrUnterminatedString, "unterminated string literal")
		}

		if *c == quote {
			if !triple {
				lx.advance()
				break
			}
			if isChr(lx.peek(), quote) && isChr(lx.peekN(1), quote) {
				lx.advance()
				lx.advance()
				lx.advance()
				break
			}
		}

		if *c == '\\' {
			if err := lx.escape(&sb, prefix.raw); err != nil {
				return nil, err
			}
			continue
		}

		if prefix.format && (*c == '{' || *c == '}') {
			if isChr(lx.peek(), *c) {
				sb.WriteRune(*c)
				lx.advance()
				lx.advance()
				continue
			}
			if *c == '}' {
				return nil, lx.errorHere(common.ErrUnexpectedCharacter, "f-string: single '}' is not allowed")
			}
			flush()
			field, err := lx.fstringField()
			if err != nil {
				return nil, err
			}
			parts = append(parts, FStringPart{Field: field})
			continue
		}

		sb.WriteRune(*c)
		lx.advance()
	}

	raw := lx.lexeme()
	span := lx.currentSpan()
	if prefix.format {
		flush()
		return TokFString{Parts: parts, Raw: raw, span: span}, nil
	}
	return TokString{Value: sb.String(), Raw: raw, Triple: triple, span: span}, nil
}

// errorHere reports a failure at the current character.
func (lx *lexer) errorHere(kind common.ErrorKind, msg string) *common.Error {
	span := common.SpanNew(lx.line, lx.line, lx.column, lx.column)
	span.Source = lx.src
	return common.NewError(common.StageLex, kind, msg, span)
}

var simpleEscapes = map[rune]rune{
	'n': '\n', 't': '\t', 'r': '\r', 'a': '\a', 'b': '\b', 'f': '\f', 'v': '\v',
	'\\': '\\', '\'': '\'', '"': '"',
}

// escape decodes one backslash sequence into sb. Raw strings keep it verbatim.
func (lx *lexer) escape(sb *strings.Builder, raw bool) *common.Error {
	lx.advance() // consume '\'
	c := lx.curChr
	if c == nil {
		return lx.error(common.ErrUnterminatedString, "unterminated string literal")
	}
	if raw {
		sb.WriteByte('\\')
		sb.WriteRune(*c)
		lx.advance()
		return nil
	}

	if r, ok := simpleEscapes[*c]; ok {
		sb.WriteRune(r)
		lx.advance()
		return nil
	}

	switch *c {
	case '\n':
		// line continuation
		lx.advance()
	case 'x':
		return lx.hexEscape(sb, 2)
	case 'u':
		return lx.hexEscape(sb, 4)
	case 'U':
		return lx.hexEscape(sb, 8)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		var val rune
		for i := 0; i < 3 && lx.curChr != nil && isOctDigit(*lx.curChr); i++ {
			val = val*8 + (*lx.curChr - '0')
			lx.advance()
		}
		sb.WriteRune(val)
	default:
		// unknown escapes are kept as written
		sb.WriteByte('\\')
		sb.WriteRune(*c)
		lx.advance()
	}
	return nil
}

func (lx *lexer) hexEscape(sb *strings.Builder, n int) *common.Error {
	lx.advance() // consume 'x', 'u' or 'U'
	var val rune
	for range n {
		c := lx.curChr
		if c == nil || !isHexDigit(*c) {
			return lx.errorHere(common.ErrInvalidEscape, fmt.Sprintf("truncated escape, expected %d hex digits", n))
		}
		val = val<<4 | hexValue(*c)
		lx.advance()
	}
	if val > 0x10FFFF || (val >= 0xD800 && val < 0xE000) {
		return lx.errorHere(common.ErrInvalidEscape, "escape is not a valid Unicode code point")
	}
	sb.WriteRune(val)
	return nil
}
