package lsp

import (
	"fmt"

	"github.com/gluax-lang/lsp"

	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (h *Handler) Hover(p *lsp.HoverParams) (*lsp.Hover, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, pos := h.docAt(p.TextDocument.URI, p.Position)
	if doc == nil {
		return nil, nil
	}
	sym := symbolAt(doc.prog, pos)
	if sym == nil {
		return nil, nil
	}

	return &lsp.Hover{
		Contents: lsp.MarkupContent{
			Kind:  "markdown",
			Value: hoverText(sym),
		},
	}, nil
}

// hoverText shows the symbol, the line it is defined on and how often it
// is used.
func hoverText(sym *ast.Symbol) string {
	uses := 0
	for _, ref := range sym.Refs {
		// binding sites are recorded as references too
		if ref.ID != sym.Def.ID {
			uses++
		}
	}
	return fmt.Sprintf("```pyjs\n%s\n```\ndefined on line %d, referenced %d times\n", sym.LSPString(), sym.Def.LineStart, uses)
}
