package lexer

import (
	"fmt"

	"github.com/pyjs-lang/pyjs/common"
)

type TokNumber struct {
	Raw  string
	span common.Span
}

func (t TokNumber) isToken()          {}
func (t TokNumber) Kind() TokenKind   { return KindNumber }
func (t TokNumber) Span() common.Span { return t.span }
func (t TokNumber) Lexeme() string    { return t.Raw }
func (t TokNumber) String() string    { return t.Raw }
func (t TokNumber) Is(_ string) bool  { return false }
func (t TokNumber) AsString() string  { return "" }

func NewTokNumber(s string, span common.Span) TokNumber {
	return TokNumber{Raw: s, span: span}
}

/* Lexing */

func (lx *lexer) number() (Token, *common.Error) {
	c := *lx.curChr

	if c == '0' {
		if p := lx.peek(); p != nil {
			switch *p {
			case 'x', 'X':
				return lx.radixNumber(isHexDigit, "hexadecimal")
			case 'o', 'O':
				return lx.radixNumber(isOctDigit, "octal")
			case 'b', 'B':
				return lx.radixNumber(isBinDigit, "binary")
			}
		}
	}

	if err := lx.digits(isDigit, c != '.'); err != nil {
		return nil, err
	}
	if isChr(lx.curChr, '.') && !isChr(lx.peek(), '.') {
		lx.advance() // consume '.'
		if lx.curChr != nil && isDigit(*lx.curChr) {
			if err := lx.digits(isDigit, true); err != nil {
				return nil, err
			}
		}
	}
	if lx.curChr != nil && (*lx.curChr == 'e' || *lx.curChr == 'E') {
		lx.advance() // consume 'e'
		if lx.curChr != nil && (*lx.curChr == '+' || *lx.curChr == '-') {
			lx.advance()
		}
		if lx.curChr == nil || !isDigit(*lx.curChr) {
			return nil, lx.error(common.ErrInvalidNumber, "malformed exponent in number literal")
		}
		if err := lx.digits(isDigit, true); err != nil {
			return nil, err
		}
	}
	return lx.finishNumber()
}

func (lx *lexer) radixNumber(valid func(rune) bool, name string) (Token, *common.Error) {
	lx.advance() // consume '0'
	lx.advance() // consume radix letter
	if isChr(lx.curChr, '_') {
		lx.advance()
	}
	if lx.curChr == nil || !valid(*lx.curChr) {
		return nil, lx.error(common.ErrInvalidNumber, fmt.Sprintf("malformed %s literal", name))
	}
	if err := lx.digits(valid, true); err != nil {
		return nil, err
	}
	return lx.finishNumber()
}

// digits consumes a run of digits with single `_` separators between them.
func (lx *lexer) digits(valid func(rune) bool, required bool) *common.Error {
	if required && (lx.curChr == nil || !valid(*lx.curChr)) {
		return lx.error(common.ErrInvalidNumber, "expected digit")
	}
	for c := lx.curChr; c != nil; c = lx.curChr {
		if *c == '_' {
			if p := lx.peek(); p == nil || !valid(*p) {
				return lx.error(common.ErrInvalidNumber, "invalid '_' in number literal")
			}
			lx.advance()
			continue
		}
		if !valid(*c) {
			break
		}
		lx.advance()
	}
	return nil
}

func (lx *lexer) finishNumber() (Token, *common.Error) {
	if c := lx.curChr; c != nil && (isIdentContinue(*c)) {
		return nil, lx.error(common.ErrUnexpectedCharacter,
			fmt.Sprintf("invalid character %q in number literal", *c))
	}
	return NewTokNumber(lx.lexeme(), lx.currentSpan()), nil
}

func isHexDigit(r rune) bool {
	return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

func isOctDigit(r rune) bool { return '0' <= r && r <= '7' }

func isBinDigit(r rune) bool { return r == '0' || r == '1' }

func hexValue(r rune) rune {
	switch {
	case '0' <= r && r <= '9':
		return r - '0'
	case 'a' <= r && r <= 'f':
		return r - 'a' + 10
	case 'A' <= r && r <= 'F':
		return r - 'A' + 10
	}
	return 0
}
