package lsp

import (
	"github.com/gluax-lang/lsp"

	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

func (h *Handler) Complete(p *lsp.CompletionParams) (*lsp.CompletionList, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	doc, _ := h.docAt(p.TextDocument.URI, p.Position)
	var prog *ast.Program
	if doc != nil {
		prog = doc.prog
	}
	return &lsp.CompletionList{
		IsIncomplete: false,
		Items:        completionItems(prog),
	}, nil
}

// completionItems offers every name the file binds, then the builtins.
// Names bound more than once are offered once.
func completionItems(prog *ast.Program) []lsp.CompletionItem {
	var list []lsp.CompletionItem
	added := make(map[string]struct{})
	if prog != nil {
		for _, sym := range prog.Symbols {
			if _, exists := added[sym.Name]; exists {
				continue
			}
			added[sym.Name] = struct{}{}
			kind := lsp.CompletionItemKindVariable
			item := lsp.CompletionItem{
				Label:  sym.Name,
				Detail: ptr(sym.LSPString()),
			}
			if sym.Kind == ast.SymFunction {
				kind = lsp.CompletionItemKindFunction
				item.InsertText = ptr(sym.Name + "()")
			}
			item.Kind = &kind
			list = append(list, item)
		}
	}
	builtin := lsp.CompletionItemKindFunction
	for _, name := range frontend.BuiltinNames() {
		if _, exists := added[name]; exists {
			continue
		}
		list = append(list, lsp.CompletionItem{
			Label:  name,
			Kind:   &builtin,
			Detail: ptr("(builtin) " + name),
		})
	}
	return list
}

func ptr[T any](v T) *T {
	return &v
}
