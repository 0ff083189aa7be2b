// Package peekable provides a rune iterator over a string with arbitrary
// lookahead.
package peekable

import (
	"unicode/utf8"
)

// Chars iterates over the runes of a string.
// It normalises Windows line endings ("\r\n") into a single '\n'.
// Stand-alone '\r' or '\n' runes are returned unchanged.
type Chars struct {
	input string
	pos   int // byte offset of the next rune
}

func NewPeekableChars(s string) *Chars {
	return &Chars{input: s}
}

// decode reads the rune at byte offset pos, folding "\r\n" into '\n'.
func (p *Chars) decode(pos int) (rune, int, bool) {
	if pos >= len(p.input) {
		return 0, 0, false
	}
	r, w := utf8.DecodeRuneInString(p.input[pos:])
	if r == '\r' && pos+w < len(p.input) && p.input[pos+w] == '\n' {
		return '\n', w + 1, true
	}
	return r, w, true
}

// Peek returns the next rune without consuming it, or nil at the end.
func (p *Chars) Peek() *rune {
	return p.PeekN(0)
}

// PeekN returns the rune n positions after the next one (PeekN(0) == Peek()).
func (p *Chars) PeekN(n int) *rune {
	pos := p.pos
	for {
		r, w, ok := p.decode(pos)
		if !ok {
			return nil
		}
		if n == 0 {
			return &r
		}
		pos += w
		n--
	}
}

// Next consumes and returns the next rune, or nil at the end.
func (p *Chars) Next() *rune {
	r, w, ok := p.decode(p.pos)
	if !ok {
		return nil
	}
	p.pos += w
	return &r
}

// Pos is the byte offset of the next rune; len(input) at the end.
func (p *Chars) Pos() int {
	return p.pos
}

// Slice returns the raw input between two byte offsets.
func (p *Chars) Slice(start, end int) string {
	return p.input[start:end]
}
