package lsp

import (
	"slices"
	"strings"
	"unicode/utf16"

	"github.com/gluax-lang/lsp"
)

// RuneIndex converts between LSP positions, whose characters are UTF-16
// code units, and the rune columns spans use.
type RuneIndex struct {
	// lines[l][r] is the UTF-16 offset of rune r on line l; the last entry
	// is the end of the line.
	lines [][]uint32
}

func BuildRuneIndex(text string) RuneIndex {
	var lines [][]uint32
	for _, line := range strings.Split(text, "\n") {
		offsets := make([]uint32, 0, len(line)+1)
		var u uint32
		for _, r := range line {
			offsets = append(offsets, u)
			u += uint32(utf16.RuneLen(r))
		}
		lines = append(lines, append(offsets, u))
	}
	return RuneIndex{lines: lines}
}

// RunePosition maps a UTF-16 position to a rune position. A position
// inside a surrogate pair moves to the next rune.
func (ri RuneIndex) RunePosition(pos lsp.Position) lsp.Position {
	if int(pos.Line) >= len(ri.lines) {
		return pos
	}
	col, _ := slices.BinarySearch(ri.lines[pos.Line], pos.Character)
	return lsp.Position{Line: pos.Line, Character: uint32(col)}
}

// UTF16Position maps a rune position back to UTF-16 code units.
func (ri RuneIndex) UTF16Position(pos lsp.Position) lsp.Position {
	if int(pos.Line) >= len(ri.lines) {
		return pos
	}
	offsets := ri.lines[pos.Line]
	if int(pos.Character) >= len(offsets) {
		return lsp.Position{Line: pos.Line, Character: offsets[len(offsets)-1]}
	}
	return lsp.Position{Line: pos.Line, Character: offsets[pos.Character]}
}
