package lsp

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	protocol "github.com/gluax-lang/lsp"

	"github.com/pyjs-lang/pyjs/backend"
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend"
	"github.com/pyjs-lang/pyjs/frontend/ast"
	"github.com/pyjs-lang/pyjs/project"
)

func RunLSP() error {
	return NewHandler().Serve(context.Background())
}

// document is an open file and its latest analysis.
type document struct {
	text string
	// prog is the last version that parsed, kept while the buffer is broken
	prog  *ast.Program
	index RuneIndex
}

type Handler struct {
	*protocol.Server
	mu        sync.Mutex
	workspace string
	project   *project.Project
	docs      map[string]*document // by file path
}

func NewHandler() *Handler {
	h := &Handler{
		docs: make(map[string]*document),
	}
	h.Server = protocol.NewServer(os.Stdin, os.Stdout, h)
	return h
}

func (h *Handler) Initialize(p *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	if p.WorkspaceFolders == nil || len(*p.WorkspaceFolders) == 0 {
		return nil, fmt.Errorf("no workspace folder detected")
	}
	workspaceFolders := *p.WorkspaceFolders
	root, err := common.URIToFilePath(workspaceFolders[0].URI)
	if err != nil {
		log.Printf("invalid workspace folder: %v", err)
		return nil, err
	}
	log.Printf("root: %s", root)
	h.workspace = root
	h.project, err = openProject(root)
	if err != nil {
		return nil, err
	}
	return &protocol.InitializeResult{Capabilities: protocol.ServerCapabilities{
		HoverProvider: protocol.NewHoverProviderBool(true),
		TextDocumentSync: protocol.NewTextDocumentSyncOptions(protocol.TextDocumentSyncOptions{
			OpenClose: true,
			Change:    protocol.TextDocumentSyncKindFull,
			Save: &protocol.SaveOptions{
				IncludeText: true,
			},
		}),
		InlayHintProvider: protocol.NewInlayHintProviderOptions(protocol.InlayHintOptions{
			ResolveProvider: false,
			WorkDoneProgressOptions: protocol.WorkDoneProgressOptions{
				WorkDoneProgress: false,
			},
		}),
		CompletionProvider: protocol.CompletionOptions{},
	}}, nil
}

func (h *Handler) Initialized() error {
	log.Println("Initialized")
	return nil
}

// openProject uses the workspace configuration when there is one. A broken
// pyjs.toml is logged and replaced by the defaults so editing still works.
func openProject(root string) (*project.Project, error) {
	p, err := project.Load(root)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		log.Printf("%s: %v, using defaults", filepath.Join(root, frontend.ConfigFile), err)
	}
	return project.New(root, frontend.StandaloneToml())
}

// analyze compiles the open file at path and returns its diagnostics. The
// caller holds h.mu.
func (h *Handler) analyze(path string) []protocol.Diagnostic {
	doc := h.docs[path]
	if doc == nil || h.project == nil {
		return nil
	}
	doc.index = BuildRuneIndex(doc.text)
	h.project.Override(path, doc.text)
	prog, diags := analyzeSource(h.project, path, doc.text)
	if prog != nil {
		doc.prog = prog
	}
	return diags
}

// analyzeSource runs the whole pipeline over code so that code generation
// errors are reported too. prog is nil when the front end failed.
func analyzeSource(p *project.Project, path, code string) (prog *ast.Program, diags []protocol.Diagnostic) {
	prog, err := p.Analyze(path, code)
	if err != nil {
		return nil, []protocol.Diagnostic{err.Diagnostic()}
	}
	if _, err := backend.Transpile(prog, p.BackendOptions()); err != nil {
		return prog, []protocol.Diagnostic{err.Diagnostic()}
	}
	return prog, []protocol.Diagnostic{}
}

func (h *Handler) publish(uri, path string) {
	h.PublishDiagnostics(uri, h.analyze(path))
}

// docAt returns the document and the rune position of an LSP position.
func (h *Handler) docAt(uri string, pos protocol.Position) (*document, protocol.Position) {
	path, err := common.URIToFilePath(uri)
	if err != nil {
		return nil, pos
	}
	doc := h.docs[path]
	if doc == nil || doc.prog == nil {
		return nil, pos
	}
	return doc, doc.index.RunePosition(pos)
}
