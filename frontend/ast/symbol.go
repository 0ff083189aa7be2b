package ast

import (
	"fmt"

	"github.com/pyjs-lang/pyjs/common"
)

type SymbolKind uint8

const (
	SymVariable SymbolKind = iota
	SymParam
	SymFunction
	SymClass
	SymImport
)

func (k SymbolKind) String() string {
	switch k {
	case SymParam:
		return "parameter"
	case SymFunction:
		return "function"
	case SymClass:
		return "class"
	case SymImport:
		return "import"
	default:
		return "variable"
	}
}

// Symbol is one binding and the references that resolved to it, kept for
// editor queries.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Def    common.Span
	Refs   []common.Span
	Detail string // e.g. the signature of a function
}

func NewSymbol(name string, kind SymbolKind, def common.Span) *Symbol {
	return &Symbol{Name: name, Kind: kind, Def: def}
}

func (s *Symbol) AddRef(span common.Span) {
	s.Refs = append(s.Refs, span)
}

func (s *Symbol) LSPString() string {
	if s.Detail != "" {
		return fmt.Sprintf("(%s) %s", s.Kind, s.Detail)
	}
	return fmt.Sprintf("(%s) %s", s.Kind, s.Name)
}
