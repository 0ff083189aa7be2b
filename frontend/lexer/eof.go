package lexer

import "github.com/pyjs-lang/pyjs/common"

type TokEOF struct {
	span common.Span
}

func (t TokEOF) isToken()          {}
func (t TokEOF) Kind() TokenKind   { return KindEOF }
func (t TokEOF) Span() common.Span { return t.span }
func (t TokEOF) Lexeme() string    { return "" }
func (t TokEOF) String() string    { return "<EOF>" }
func (t TokEOF) Is(_ string) bool  { return false }
func (t TokEOF) AsString() string  { return "" }

func NewTokEOF(span common.Span) TokEOF {
	return TokEOF{span: span}
}

func IsEOF(t Token) bool {
	_, ok := t.(TokEOF)
	return ok
}

func IsIdent(t Token) bool {
	_, ok := t.(TokIdent)
	return ok
}
