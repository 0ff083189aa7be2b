package lsp

import (
	"github.com/gluax-lang/lsp"

	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// symbolAt finds the symbol defined or referenced at the rune position pos.
func symbolAt(prog *ast.Program, pos lsp.Position) *ast.Symbol {
	for _, sym := range prog.Symbols {
		if sym.Def.Contains(pos) {
			return sym
		}
		for _, ref := range sym.Refs {
			if ref.Contains(pos) {
				return sym
			}
		}
	}
	return nil
}
