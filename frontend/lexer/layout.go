package lexer

import (
	"fmt"

	"github.com/pyjs-lang/pyjs/common"
)

// TokNewline ends a logical line.
type TokNewline struct {
	span common.Span
}

func (t TokNewline) isToken()          {}
func (t TokNewline) Kind() TokenKind   { return KindNewline }
func (t TokNewline) Span() common.Span { return t.span }
func (t TokNewline) Lexeme() string    { return "" }
func (t TokNewline) String() string    { return "<NEWLINE>" }
func (t TokNewline) Is(_ string) bool  { return false }
func (t TokNewline) AsString() string  { return "" }

// TokIndent opens an indentation block.
type TokIndent struct {
	span common.Span
}

func (t TokIndent) isToken()          {}
func (t TokIndent) Kind() TokenKind   { return KindIndent }
func (t TokIndent) Span() common.Span { return t.span }
func (t TokIndent) Lexeme() string    { return "" }
func (t TokIndent) String() string    { return "<INDENT>" }
func (t TokIndent) Is(_ string) bool  { return false }
func (t TokIndent) AsString() string  { return "" }

// TokDedent closes the innermost indentation block.
type TokDedent struct {
	span common.Span
}

func (t TokDedent) isToken()          {}
func (t TokDedent) Kind() TokenKind   { return KindDedent }
func (t TokDedent) Span() common.Span { return t.span }
func (t TokDedent) Lexeme() string    { return "" }
func (t TokDedent) String() string    { return "<DEDENT>" }
func (t TokDedent) Is(_ string) bool  { return false }
func (t TokDedent) AsString() string  { return "" }

func IsNewline(t Token) bool {
	_, ok := t.(TokNewline)
	return ok
}

/* Layout frames */

type frameKind uint8

const (
	frameFile   frameKind = iota // the whole file, layout on
	frameBlock                   // `{` opening a statement block, layout on
	frameParen                   // `(`
	frameBracket                 // `[`
	frameValue                   // `{` opening a dict or set
	frameEmbed                   // expression embedded in an f-string or JSX
)

// frame is one level of delimiter nesting. Frames with layout keep their own
// indentation stack; the stack of a block frame starts at the width of its
// first content line.
type frame struct {
	kind    frameKind
	indents []int
	opener  common.Span
}

func (f *frame) hasLayout() bool {
	return f.kind == frameFile || f.kind == frameBlock
}

func (f *frame) top() int {
	return f.indents[len(f.indents)-1]
}

func closerFor(kind frameKind) rune {
	switch kind {
	case frameParen:
		return ')'
	case frameBracket:
		return ']'
	default:
		return '}'
	}
}

func (lx *lexer) frame() *frame {
	f, _ := lx.frames.Peek()
	return f
}

func (lx *lexer) layoutActive() bool {
	return lx.frame().hasLayout()
}

func (lx *lexer) pushFrame(kind frameKind, opener common.Span) {
	lx.frames.Push(&frame{kind: kind, opener: opener})
}

// popFrame closes the innermost frame with the closing delimiter c. Closing a
// block frame emits a Dedent for every level opened inside it.
func (lx *lexer) popFrame(c rune, span common.Span) *common.Error {
	f := lx.frame()
	if f.kind == frameFile {
		return lx.errorAt(common.ErrUnexpectedCharacter, fmt.Sprintf("unmatched '%c'", c), span)
	}
	if want := closerFor(f.kind); want != c {
		return lx.errorAt(common.ErrUnexpectedCharacter,
			fmt.Sprintf("mismatched '%c', expected '%c'", c, want), span)
	}
	if f.kind == frameBlock {
		for len(f.indents) > 1 {
			f.indents = f.indents[:len(f.indents)-1]
			lx.queue(TokDedent{span: span})
		}
	}
	lx.frames.Pop()
	return nil
}

// measureIndent consumes the leading whitespace of a line and returns its
// width. Tabs advance to the next multiple of the tab width.
func (lx *lexer) measureIndent() (int, *common.Error) {
	width := 0
	sawTab, sawSpace := false, false
loop:
	for c := lx.curChr; c != nil; c = lx.curChr {
		switch *c {
		case ' ':
			sawSpace = true
			width++
		case '\t':
			sawTab = true
			width = (width/lx.opts.TabWidth + 1) * lx.opts.TabWidth
		case '\f':
			width = 0
		default:
			break loop
		}
		lx.advance()
	}
	if sawTab && sawSpace && !lx.isBlankLine() {
		lx.markStart()
		return 0, lx.error(common.ErrInvalidIndent, "indentation mixes tabs and spaces")
	}
	return width, nil
}

// isBlankLine reports whether the rest of the current line holds no tokens.
func (lx *lexer) isBlankLine() bool {
	c := lx.curChr
	return c == nil || *c == '\n' || *c == '#' || (*c == '\\' && isChr(lx.peek(), '\n'))
}

// lineStart resolves the indentation of a new physical line against the
// innermost layout frame, queueing Indent/Dedent tokens.
func (lx *lexer) lineStart() *common.Error {
	lx.atLineStart = false
	width, err := lx.measureIndent()
	if err != nil {
		return err
	}
	if lx.isBlankLine() {
		return nil
	}

	lx.markStart()
	span := lx.currentSpan()
	f := lx.frame()

	// a block frame takes its base from its first content line
	if len(f.indents) == 0 {
		f.indents = append(f.indents, width)
		return nil
	}

	if f.kind == frameBlock && width < f.indents[0] {
		width = f.indents[0]
	}

	switch {
	case width > f.top():
		f.indents = append(f.indents, width)
		lx.queue(TokIndent{span: span})
	case width < f.top():
		for width < f.top() {
			f.indents = f.indents[:len(f.indents)-1]
			lx.queue(TokDedent{span: span})
			if len(f.indents) == 0 {
				break
			}
		}
		if len(f.indents) == 0 || width != f.top() {
			return lx.error(common.ErrInvalidIndent, "unindent does not match any outer indentation level")
		}
	}
	return nil
}

// finish queues the tokens that close the file: a trailing Newline, one
// Dedent per open level and EOF.
func (lx *lexer) finish() *common.Error {
	lx.markStart()
	span := lx.currentSpan()
	f := lx.frame()
	if f.kind != frameFile {
		return lx.errorAt(common.ErrUnexpectedEOF,
			fmt.Sprintf("'%c' was never closed", openerFor(f.kind)), f.opener)
	}
	if lx.lineHasTokens {
		lx.queue(TokNewline{span: span})
		lx.lineHasTokens = false
	}
	for len(f.indents) > 1 {
		f.indents = f.indents[:len(f.indents)-1]
		lx.queue(TokDedent{span: span})
	}
	lx.queue(TokEOF{span: span})
	return nil
}

func openerFor(kind frameKind) rune {
	switch kind {
	case frameParen:
		return '('
	case frameBracket:
		return '['
	default:
		return '{'
	}
}

// opensBlock decides whether a `{` starts a statement block or a dict/set
// display, based on the token before it.
func opensBlock(prev Token) bool {
	switch t := prev.(type) {
	case nil:
		return false
	case TokIdent, TokNumber, TokString, TokFString, TokJSX:
		return true
	case TokKeyword:
		switch t.Keyword {
		case KwTrue, KwFalse, KwNone, KwElse, KwTry, KwFinally, KwExcept:
			return true
		}
	case TokPunct:
		switch t.Punct {
		case PunctCloseParen, PunctCloseBracket, PunctCloseBrace, PunctFatArrow:
			return true
		}
	}
	return false
}

// endsOperand reports whether prev can be the last token of an operand, which
// makes a following `<` a comparison instead of the start of a JSX element.
func endsOperand(prev Token) bool {
	switch t := prev.(type) {
	case TokIdent, TokNumber, TokString, TokFString, TokJSX:
		return true
	case TokKeyword:
		switch t.Keyword {
		case KwTrue, KwFalse, KwNone:
			return true
		}
	case TokPunct:
		switch t.Punct {
		case PunctCloseParen, PunctCloseBracket, PunctCloseBrace:
			return true
		}
	}
	return false
}
