package lexer

import "github.com/pyjs-lang/pyjs/common"

// Punct represents a punctuation token.
type Punct int

const (
	_ Punct = iota

	PunctPlus             // +
	PunctMinus            // -
	PunctStar             // *
	PunctSlash            // /
	PunctDoubleSlash      // //
	PunctPercent          // %
	PunctDoubleStar       // **
	PunctAt               // @
	PunctShiftLeft        // <<
	PunctShiftRight       // >>
	PunctAmpersand        // &
	PunctPipe             // |
	PunctCaret            // ^
	PunctTilde            // ~
	PunctLessThan         // <
	PunctGreaterThan      // >
	PunctLessThanEqual    // <=
	PunctGreaterThanEqual // >=
	PunctEqualEqual       // ==
	PunctNotEqual         // !=
	PunctEqual            // =
	PunctPlusEqual        // +=
	PunctMinusEqual       // -=
	PunctStarEqual        // *=
	PunctSlashEqual       // /=
	PunctDoubleSlashEqual // //=
	PunctPercentEqual     // %=
	PunctDoubleStarEqual  // **=
	PunctAtEqual          // @=
	PunctAmpersandEqual   // &=
	PunctPipeEqual        // |=
	PunctCaretEqual       // ^=
	PunctShiftLeftEqual   // <<=
	PunctShiftRightEqual  // >>=
	PunctOpenParen        // (
	PunctCloseParen       // )
	PunctOpenBracket      // [
	PunctCloseBracket     // ]
	PunctOpenBrace        // {
	PunctCloseBrace       // }
	PunctComma            // ,
	PunctColon            // :
	PunctSemicolon        // ;
	PunctDot              // .
	PunctArrow            // ->
	PunctWalrus           // :=
	PunctFatArrow         // =>
)

var puncts = map[string]Punct{
	"+":   PunctPlus,
	"-":   PunctMinus,
	"*":   PunctStar,
	"/":   PunctSlash,
	"//":  PunctDoubleSlash,
	"%":   PunctPercent,
	"**":  PunctDoubleStar,
	"@":   PunctAt,
	"<<":  PunctShiftLeft,
	">>":  PunctShiftRight,
	"&":   PunctAmpersand,
	"|":   PunctPipe,
	"^":   PunctCaret,
	"~":   PunctTilde,
	"<":   PunctLessThan,
	">":   PunctGreaterThan,
	"<=":  PunctLessThanEqual,
	">=":  PunctGreaterThanEqual,
	"==":  PunctEqualEqual,
	"!=":  PunctNotEqual,
	"=":   PunctEqual,
	"+=":  PunctPlusEqual,
	"-=":  PunctMinusEqual,
	"*=":  PunctStarEqual,
	"/=":  PunctSlashEqual,
	"//=": PunctDoubleSlashEqual,
	"%=":  PunctPercentEqual,
	"**=": PunctDoubleStarEqual,
	"@=":  PunctAtEqual,
	"&=":  PunctAmpersandEqual,
	"|=":  PunctPipeEqual,
	"^=":  PunctCaretEqual,
	"<<=": PunctShiftLeftEqual,
	">>=": PunctShiftRightEqual,
	"(":   PunctOpenParen,
	")":   PunctCloseParen,
	"[":   PunctOpenBracket,
	"]":   PunctCloseBracket,
	"{":   PunctOpenBrace,
	"}":   PunctCloseBrace,
	",":   PunctComma,
	":":   PunctColon,
	";":   PunctSemicolon,
	".":   PunctDot,
	"->":  PunctArrow,
	":=":  PunctWalrus,
	"=>":  PunctFatArrow,
}

var punctNames = func() []string {
	// find the largest enum value so the slice is the right length
	var max Punct
	for _, p := range puncts {
		if p > max {
			max = p
		}
	}
	names := make([]string, max+1)
	for lit, p := range puncts {
		names[p] = lit
	}
	return names
}()

type TokPunct struct {
	Punct Punct
	span  common.Span
}

func (t TokPunct) isToken()          {}
func (t TokPunct) Kind() TokenKind   { return KindPunct }
func (t TokPunct) Span() common.Span { return t.span }
func (t TokPunct) Lexeme() string    { return t.String() }

func (t TokPunct) String() string {
	return punctNames[t.Punct]
}

func (t TokPunct) Is(other string) bool {
	p, ok := puncts[other]
	return ok && p == t.Punct
}

func (t TokPunct) AsString() string {
	return t.String()
}

func newTokPunct(p Punct, span common.Span) TokPunct {
	return TokPunct{Punct: p, span: span}
}

/* Lexing */

// punct scans the longest punctuation starting at the current character.
func (lx *lexer) punct() *TokPunct {
	var buf [3]rune
	n := 0
	if lx.curChr != nil {
		buf[0] = *lx.curChr
		n = 1
		for i := 0; i < 2; i++ {
			r := lx.peekN(i)
			if r == nil {
				break
			}
			buf[n] = *r
			n++
		}
	}
	for l := n; l > 0; l-- {
		if p, ok := puncts[string(buf[:l])]; ok {
			for range l {
				lx.advance()
			}
			tok := newTokPunct(p, lx.currentSpan())
			return &tok
		}
	}
	return nil
}
