package ast

import (
	"strings"

	"github.com/pyjs-lang/pyjs/common"
)

type ParamKind uint8

const (
	ParamPlain  ParamKind = iota
	ParamVarArgs          // *args
	ParamKwArgs           // **kwargs
)

type Param struct {
	Name       Ident
	Kind       ParamKind
	Default    *Expr
	Annotation *Expr
	// KwOnly marks parameters after a bare `*` or `*args`.
	KwOnly bool
	span   common.Span
}

func NewParam(name Ident, kind ParamKind, def, annotation *Expr, span common.Span) Param {
	return Param{Name: name, Kind: kind, Default: def, Annotation: annotation, span: span}
}

func (p Param) Span() common.Span {
	return p.span
}

func (p Param) String() string {
	switch p.Kind {
	case ParamVarArgs:
		return "*" + p.Name.Raw
	case ParamKwArgs:
		return "**" + p.Name.Raw
	}
	return p.Name.Raw
}

// NewFunctionDef builds a def statement; Generator is decided by the parser
// from the body.
func NewFunctionDef(name Ident, params []Param, returns *Expr, body []Stmt, async bool, span common.Span) *FunctionDef {
	return &FunctionDef{
		Name:    name,
		Params:  params,
		Returns: returns,
		Body:    body,
		Async:   async,
		span:    span,
	}
}

// Signature renders `def name(params)` for hovers.
func Signature(def *FunctionDef) string {
	var sb strings.Builder
	if def.Async {
		sb.WriteString("async ")
	}
	sb.WriteString("def ")
	sb.WriteString(def.Name.Raw)
	sb.WriteByte('(')
	for i, param := range def.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(param.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
