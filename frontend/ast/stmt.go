package ast

import (
	"strings"

	"github.com/pyjs-lang/pyjs/common"
)

type Stmt interface {
	isStmt()
	Span() common.Span
}

/* FunctionDef */

type FunctionDef struct {
	Name       Ident
	Params     []Param
	Returns    *Expr
	Body       []Stmt
	Decorators []Expr
	Async      bool
	Generator  bool

	// filled in by name resolution
	Locals []string
	// emitted as a `function` declaration instead of an assignment
	AsDeclaration bool

	span common.Span
}

func (f *FunctionDef) isStmt() {}

func (f *FunctionDef) Span() common.Span {
	return f.span
}

func (f *FunctionDef) SetSpan(span common.Span) {
	f.span = span
}

/* ClassDef */

type ClassDef struct {
	Name       Ident
	Bases      []Expr
	Body       []Stmt
	Decorators []Expr

	AsDeclaration bool

	span common.Span
}

func NewClassDef(name Ident, bases []Expr, body []Stmt, span common.Span) *ClassDef {
	return &ClassDef{Name: name, Bases: bases, Body: body, span: span}
}

func (c *ClassDef) isStmt() {}

func (c *ClassDef) Span() common.Span {
	return c.span
}

/* If */

// If is one `if`; an `elif` chain is an If nested as the only statement of
// Else, marked IsElif.
type If struct {
	Cond   Expr
	Body   []Stmt
	Else   []Stmt
	IsElif bool
	span   common.Span
}

func NewIf(cond Expr, body, els []Stmt, span common.Span) *If {
	return &If{Cond: cond, Body: body, Else: els, span: span}
}

func (i *If) isStmt() {}

func (i *If) Span() common.Span {
	return i.span
}

/* For */

type For struct {
	Target Expr
	Iter   Expr
	Body   []Stmt
	Else   []Stmt
	Async  bool
	span   common.Span
}

func NewFor(target, iter Expr, body, els []Stmt, async bool, span common.Span) *For {
	return &For{Target: target, Iter: iter, Body: body, Else: els, Async: async, span: span}
}

func (f *For) isStmt() {}

func (f *For) Span() common.Span {
	return f.span
}

/* While */

type While struct {
	Cond Expr
	Body []Stmt
	Else []Stmt
	span common.Span
}

func NewWhile(cond Expr, body, els []Stmt, span common.Span) *While {
	return &While{Cond: cond, Body: body, Else: els, span: span}
}

func (w *While) isStmt() {}

func (w *While) Span() common.Span {
	return w.span
}

/* Try */

type ExceptHandler struct {
	Type *Expr // nil catches everything
	Name *Ident
	Body []Stmt
	span common.Span
}

func NewExceptHandler(ty *Expr, name *Ident, body []Stmt, span common.Span) ExceptHandler {
	return ExceptHandler{Type: ty, Name: name, Body: body, span: span}
}

func (h ExceptHandler) Span() common.Span {
	return h.span
}

type Try struct {
	Body     []Stmt
	Handlers []ExceptHandler
	Else     []Stmt
	Finally  []Stmt
	span     common.Span
}

func NewTry(body []Stmt, handlers []ExceptHandler, els, finally []Stmt, span common.Span) *Try {
	return &Try{Body: body, Handlers: handlers, Else: els, Finally: finally, span: span}
}

func (t *Try) isStmt() {}

func (t *Try) Span() common.Span {
	return t.span
}

/* With */

type WithItem struct {
	Context Expr
	Target  *Expr
}

type With struct {
	Items []WithItem
	Body  []Stmt
	Async bool
	span  common.Span
}

func NewWith(items []WithItem, body []Stmt, async bool, span common.Span) *With {
	return &With{Items: items, Body: body, Async: async, span: span}
}

func (w *With) isStmt() {}

func (w *With) Span() common.Span {
	return w.span
}

/* Match */

type MatchCase struct {
	Pattern Pattern
	Guard   *Expr
	Body    []Stmt
	span    common.Span
}

func NewMatchCase(pattern Pattern, guard *Expr, body []Stmt, span common.Span) MatchCase {
	return MatchCase{Pattern: pattern, Guard: guard, Body: body, span: span}
}

func (c MatchCase) Span() common.Span {
	return c.span
}

type Match struct {
	Subject Expr
	Cases   []MatchCase
	span    common.Span
}

func NewMatch(subject Expr, cases []MatchCase, span common.Span) *Match {
	return &Match{Subject: subject, Cases: cases, span: span}
}

func (m *Match) isStmt() {}

func (m *Match) Span() common.Span {
	return m.span
}

/* Imports */

// ModuleRef names an imported module: a string specifier used verbatim, or
// a dotted path with Level leading dots for relative imports.
type ModuleRef struct {
	Spec  *string
	Level int
	Path  []Ident
	span  common.Span
}

func NewModuleRef(spec *string, level int, path []Ident, span common.Span) ModuleRef {
	return ModuleRef{Spec: spec, Level: level, Path: path, span: span}
}

func (m ModuleRef) Span() common.Span {
	return m.span
}

// Dotted renders the module as written.
func (m ModuleRef) Dotted() string {
	if m.Spec != nil {
		return *m.Spec
	}
	segs := make([]string, len(m.Path))
	for i, seg := range m.Path {
		segs[i] = seg.Raw
	}
	return strings.Repeat(".", m.Level) + strings.Join(segs, ".")
}

type ImportName struct {
	Module ModuleRef
	Alias  *Ident
}

// Import is `import a.b [as c], "x"`.
type Import struct {
	Names []ImportName
	span  common.Span
}

func NewImport(names []ImportName, span common.Span) *Import {
	return &Import{Names: names, span: span}
}

func (i *Import) isStmt() {}

func (i *Import) Span() common.Span {
	return i.span
}

type ImportAlias struct {
	Name  Ident
	Alias *Ident
}

// Bound is the local name the alias introduces.
func (a ImportAlias) Bound() Ident {
	if a.Alias != nil {
		return *a.Alias
	}
	return a.Name
}

// ImportFrom is `from m import a, b as c` or `from m import *`.
type ImportFrom struct {
	Module ModuleRef
	Names  []ImportAlias
	Star   bool
	span   common.Span
}

func NewImportFrom(module ModuleRef, names []ImportAlias, star bool, span common.Span) *ImportFrom {
	return &ImportFrom{Module: module, Names: names, Star: star, span: span}
}

func (i *ImportFrom) isStmt() {}

func (i *ImportFrom) Span() common.Span {
	return i.span
}

/* Export */

// Export is `export <def|class|assignment>` or `export a, b`.
type Export struct {
	Decl  Stmt
	Names []Ident
	span  common.Span
}

func NewExport(decl Stmt, names []Ident, span common.Span) *Export {
	return &Export{Decl: decl, Names: names, span: span}
}

func (e *Export) isStmt() {}

func (e *Export) Span() common.Span {
	return e.span
}

/* Assign */

// Assign is `t1 = t2 = value`.
type Assign struct {
	Targets []Expr
	Value   Expr
	span    common.Span
}

func NewAssign(targets []Expr, value Expr, span common.Span) *Assign {
	return &Assign{Targets: targets, Value: value, span: span}
}

func (a *Assign) isStmt() {}

func (a *Assign) Span() common.Span {
	return a.span
}

type AugAssign struct {
	Target Expr
	Op     BinaryOp
	Value  Expr
	span   common.Span
}

func NewAugAssign(target Expr, op BinaryOp, value Expr, span common.Span) *AugAssign {
	return &AugAssign{Target: target, Op: op, Value: value, span: span}
}

func (a *AugAssign) isStmt() {}

func (a *AugAssign) Span() common.Span {
	return a.span
}

type AnnAssign struct {
	Target     Expr
	Annotation Expr
	Value      *Expr
	span       common.Span
}

func NewAnnAssign(target, annotation Expr, value *Expr, span common.Span) *AnnAssign {
	return &AnnAssign{Target: target, Annotation: annotation, Value: value, span: span}
}

func (a *AnnAssign) isStmt() {}

func (a *AnnAssign) Span() common.Span {
	return a.span
}

/* Return */

type Return struct {
	Value *Expr
	span  common.Span
}

func NewReturn(value *Expr, span common.Span) *Return {
	return &Return{Value: value, span: span}
}

func (r *Return) isStmt() {}

func (r *Return) Span() common.Span {
	return r.span
}

/* Raise */

type Raise struct {
	Exc   *Expr
	Cause *Expr
	span  common.Span
}

func NewRaise(exc, cause *Expr, span common.Span) *Raise {
	return &Raise{Exc: exc, Cause: cause, span: span}
}

func (r *Raise) isStmt() {}

func (r *Raise) Span() common.Span {
	return r.span
}

/* Pass, Break, Continue */

type Pass struct {
	span common.Span
}

func NewPass(span common.Span) *Pass { return &Pass{span: span} }

func (p *Pass) isStmt() {}

func (p *Pass) Span() common.Span {
	return p.span
}

type Break struct {
	span common.Span
}

func NewBreak(span common.Span) *Break { return &Break{span: span} }

func (b *Break) isStmt() {}

func (b *Break) Span() common.Span {
	return b.span
}

type Continue struct {
	span common.Span
}

func NewContinue(span common.Span) *Continue { return &Continue{span: span} }

func (c *Continue) isStmt() {}

func (c *Continue) Span() common.Span {
	return c.span
}

/* Global, Nonlocal */

type Global struct {
	Names []Ident
	span  common.Span
}

func NewGlobal(names []Ident, span common.Span) *Global {
	return &Global{Names: names, span: span}
}

func (g *Global) isStmt() {}

func (g *Global) Span() common.Span {
	return g.span
}

type Nonlocal struct {
	Names []Ident
	span  common.Span
}

func NewNonlocal(names []Ident, span common.Span) *Nonlocal {
	return &Nonlocal{Names: names, span: span}
}

func (n *Nonlocal) isStmt() {}

func (n *Nonlocal) Span() common.Span {
	return n.span
}

/* Delete */

type Delete struct {
	Targets []Expr
	span    common.Span
}

func NewDelete(targets []Expr, span common.Span) *Delete {
	return &Delete{Targets: targets, span: span}
}

func (d *Delete) isStmt() {}

func (d *Delete) Span() common.Span {
	return d.span
}

/* Assert */

type Assert struct {
	Test Expr
	Msg  *Expr
	span common.Span
}

func NewAssert(test Expr, msg *Expr, span common.Span) *Assert {
	return &Assert{Test: test, Msg: msg, span: span}
}

func (a *Assert) isStmt() {}

func (a *Assert) Span() common.Span {
	return a.span
}

/* ExprStmt */

type ExprStmt struct {
	Value Expr
	span  common.Span
}

func NewExprStmt(value Expr, span common.Span) *ExprStmt {
	return &ExprStmt{Value: value, span: span}
}

func (s *ExprStmt) isStmt() {}

func (s *ExprStmt) Span() common.Span {
	return s.span
}
