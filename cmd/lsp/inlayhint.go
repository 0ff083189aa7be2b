package lsp

import (
	"github.com/gluax-lang/lsp"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (h *Handler) InlayHint(p *lsp.InlayHintParams) ([]lsp.InlayHint, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, _ := h.docAt(p.TextDocument.URI, lsp.Position{})
	if doc == nil {
		return nil, nil
	}
	hints := renameHints(doc.prog)
	for i := range hints {
		hints[i].Position = doc.index.UTF16Position(hints[i].Position)
	}
	return hints, nil
}

// renameHints marks the definitions whose name is a JavaScript reserved
// word with the name the generated code uses instead. Positions are in
// runes.
func renameHints(prog *ast.Program) []lsp.InlayHint {
	var hints []lsp.InlayHint
	kind := lsp.InlayHintKindType
	for _, sym := range prog.Symbols {
		js := resolver.SafeName(sym.Name)
		if js == sym.Name {
			continue
		}
		hints = append(hints, lsp.InlayHint{
			Position: lsp.Position{
				Line:      sym.Def.LineStart - 1,
				Character: sym.Def.ColumnEnd,
			},
			Label: []lsp.InlayHintLabelPart{
				{Value: ": " + js},
			},
			Kind: &kind,
		})
	}
	return hints
}
