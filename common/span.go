package common

import (
	"fmt"
	"sync/atomic"

	protocol "github.com/gluax-lang/lsp"
)

var globalSpanID uint64

func nextSpanID() uint64 {
	return atomic.AddUint64(&globalSpanID, 1)
}

// Span represents a range in a source file. Lines and columns are 1-based,
// columns count runes.
type Span struct {
	ID                     uint64
	LineStart, LineEnd     uint32
	ColumnStart, ColumnEnd uint32
	Source                 string // "" == unknown
}

func adjustN(n uint32) uint32 {
	if n <= 1 {
		return 0
	}
	return n - 1
}

func (s Span) ToRange() protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      adjustN(s.LineStart),
			Character: adjustN(s.ColumnStart),
		},
		End: protocol.Position{
			Line:      adjustN(s.LineEnd),
			Character: s.ColumnEnd,
		},
	}
}

// Contains reports whether the 0-based LSP position falls inside s.
func (s Span) Contains(pos protocol.Position) bool {
	line, char := pos.Line+1, pos.Character+1
	if line < s.LineStart || line > s.LineEnd {
		return false
	}
	if line == s.LineStart && char < s.ColumnStart {
		return false
	}
	if line == s.LineEnd && char > s.ColumnEnd+1 {
		return false
	}
	return true
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d:%d (%s)", s.LineStart, s.ColumnStart, s.LineEnd, s.ColumnEnd, s.Source)
}

// SpanDefault is 1:1 of an unknown file.
func SpanDefault() Span {
	return SpanNew(1, 1, 1, 1)
}

func SpanNew(lineStart, lineEnd, columnStart, columnEnd uint32) Span {
	return Span{
		ID:          nextSpanID(),
		LineStart:   lineStart,
		LineEnd:     lineEnd,
		ColumnStart: columnStart,
		ColumnEnd:   columnEnd,
	}
}

// SpanFrom joins the outer bounds of two spans.
func SpanFrom(start, end Span) Span {
	span := SpanNew(start.LineStart, end.LineEnd, start.ColumnStart, end.ColumnEnd)
	span.Source = start.Source
	return span
}
