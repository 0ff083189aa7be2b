package lsp

import (
	"github.com/gluax-lang/lsp"

	"github.com/pyjs-lang/pyjs/common"
)

func (h *Handler) DidOpen(p *lsp.DidOpenTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := common.URIToFilePath(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	h.docs[path] = &document{text: p.TextDocument.Text}
	h.publish(p.TextDocument.URI, path)
	return nil
}

func (h *Handler) DidChange(p *lsp.DidChangeTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := common.URIToFilePath(p.TextDocument.URI)
	if err != nil || len(p.ContentChanges) == 0 {
		return nil
	}
	doc := h.docs[path]
	if doc == nil {
		doc = &document{}
		h.docs[path] = doc
	}
	doc.text = p.ContentChanges[len(p.ContentChanges)-1].Text
	h.publish(p.TextDocument.URI, path)
	return nil
}

func (h *Handler) DidClose(p *lsp.DidCloseTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := common.URIToFilePath(p.TextDocument.URI)
	if err != nil {
		return nil
	}
	delete(h.docs, path)
	if h.project != nil {
		h.project.DropOverride(path)
	}
	return nil
}

func (h *Handler) DidSave(p *lsp.DidSaveTextDocumentParams) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	path, err := common.URIToFilePath(p.TextDocument.URI)
	if err != nil || p.Text == nil {
		return nil
	}
	doc := h.docs[path]
	if doc == nil {
		doc = &document{}
		h.docs[path] = doc
	}
	doc.text = *p.Text
	h.publish(p.TextDocument.URI, path)
	return nil
}
