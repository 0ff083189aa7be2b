package lexer

import (
	"github.com/pyjs-lang/pyjs/common"
)

// TokenKind is the closed set of token classes.
type TokenKind uint8

const (
	_ TokenKind = iota
	KindIdent
	KindKeyword
	KindPunct
	KindNumber
	KindString
	KindFString
	KindJSX
	KindIndent
	KindDedent
	KindNewline
	KindEOF
)

func (k TokenKind) String() string {
	switch k {
	case KindIdent:
		return "identifier"
	case KindKeyword:
		return "keyword"
	case KindPunct:
		return "punctuation"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFString:
		return "f-string"
	case KindJSX:
		return "JSX element"
	case KindIndent:
		return "indent"
	case KindDedent:
		return "dedent"
	case KindNewline:
		return "newline"
	case KindEOF:
		return "end of file"
	default:
		return "unknown"
	}
}

type Token interface {
	isToken()
	Kind() TokenKind
	Span() common.Span
	// Lexeme is the exact source text of the token; empty for layout tokens.
	Lexeme() string
	String() string
	Is(string) bool
	// AsString used for keywords and punctuations, to make it easier to switch on tokens for them
	AsString() string
}

// IsStructural reports whether t only carries layout information.
func IsStructural(t Token) bool {
	switch t.Kind() {
	case KindIndent, KindDedent, KindNewline, KindEOF:
		return true
	}
	return false
}
