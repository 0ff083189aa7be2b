package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
)

type TokIdent struct {
	Raw  string
	span common.Span
}

func (t TokIdent) isToken()          {}
func (t TokIdent) Kind() TokenKind   { return KindIdent }
func (t TokIdent) Span() common.Span { return t.span }
func (t TokIdent) Lexeme() string    { return t.Raw }
func (t TokIdent) String() string    { return t.Raw }
func (t TokIdent) Is(_ string) bool  { return false }
func (t TokIdent) AsString() string  { return "" }

func NewTokIdent(s string, span common.Span) TokIdent {
	return TokIdent{Raw: s, span: span}
}

func IsIdentStr(t Token, s string) bool {
	if ident, ok := t.(TokIdent); ok {
		return ident.Raw == s
	}
	return false
}

/* Lexing */

func (lx *lexer) identifier() (TokIdent, *common.Error) {
	var sb strings.Builder

	// the first rune belongs to the identifier
	sb.WriteRune(*lx.curChr)
	lx.advance()

	for c := lx.curChr; c != nil && isIdentContinue(*c); c = lx.curChr {
		sb.WriteRune(*c)
		lx.advance()
	}

	if strings.HasPrefix(sb.String(), frontend.PreservedPrefix) {
		return TokIdent{}, lx.error(common.ErrUnexpectedCharacter,
			fmt.Sprintf("cannot have identifier starting with %s", frontend.PreservedPrefix))
	}

	return NewTokIdent(sb.String(), lx.currentSpan()), nil
}

func isIdentStart(r rune) bool {
	if ('A' <= r && r <= 'Z') || ('a' <= r && r <= 'z') || r == '_' {
		return true
	}
	return r >= 0x80 && unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	if isDigit(r) {
		return true
	}
	if r >= 0x80 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)) {
		return true
	}
	return isIdentStart(r)
}

func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 {
			if !isIdentStart(r) {
				return false
			}
		} else if !isIdentContinue(r) {
			return false
		}
	}
	_, kw := lookupKeyword(s)
	return !kw
}
