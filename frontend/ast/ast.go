package ast

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

type Ident = lexer.TokIdent

// Node is anything with a source position: statements, expressions and
// patterns.
type Node interface {
	Span() common.Span
}

// Program is one parsed compilation unit.
type Program struct {
	Body []Stmt

	// filled in by name resolution
	Locals  []string // module-level names declared with one `let`
	Exports []string
	Symbols []*Symbol

	span common.Span
}

func NewProgram(body []Stmt, span common.Span) *Program {
	return &Program{Body: body, span: span}
}

func (p *Program) Span() common.Span {
	return p.span
}
