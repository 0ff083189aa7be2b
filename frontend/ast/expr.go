package ast

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/lexer"
)

type ExprKind uint8

const (
	_ ExprKind = iota
	ExprKindName
	ExprKindNumber
	ExprKindString
	ExprKindFString
	ExprKindBool
	ExprKindNone
	ExprKindList
	ExprKindTuple
	ExprKindDict
	ExprKindSet
	ExprKindComprehension
	ExprKindBinary
	ExprKindUnary
	ExprKindBoolOp
	ExprKindCompare
	ExprKindTernary
	ExprKindLambda
	ExprKindAwait
	ExprKindYield
	ExprKindYieldFrom
	ExprKindCall
	ExprKindAttribute
	ExprKindSubscript
	ExprKindSlice
	ExprKindStarred
	ExprKindNamed
	ExprKindJSX
)

func (k ExprKind) String() string {
	switch k {
	case ExprKindName:
		return "name"
	case ExprKindNumber:
		return "number"
	case ExprKindString:
		return "string"
	case ExprKindFString:
		return "f-string"
	case ExprKindBool:
		return "bool"
	case ExprKindNone:
		return "None"
	case ExprKindList:
		return "list"
	case ExprKindTuple:
		return "tuple"
	case ExprKindDict:
		return "dict"
	case ExprKindSet:
		return "set"
	case ExprKindComprehension:
		return "comprehension"
	case ExprKindBinary:
		return "binary"
	case ExprKindUnary:
		return "unary"
	case ExprKindBoolOp:
		return "boolean operation"
	case ExprKindCompare:
		return "comparison"
	case ExprKindTernary:
		return "conditional expression"
	case ExprKindLambda:
		return "lambda"
	case ExprKindAwait:
		return "await"
	case ExprKindYield:
		return "yield"
	case ExprKindYieldFrom:
		return "yield from"
	case ExprKindCall:
		return "call"
	case ExprKindAttribute:
		return "attribute"
	case ExprKindSubscript:
		return "subscript"
	case ExprKindSlice:
		return "slice"
	case ExprKindStarred:
		return "starred"
	case ExprKindNamed:
		return "named expression"
	case ExprKindJSX:
		return "JSX element"
	default:
		panic("unreachable")
	}
}

type exprData interface {
	ExprKind() ExprKind
	Span() common.Span
}

// Expr wraps one expression variant. Variants are pointers, so copies of an
// Expr share the node.
type Expr struct {
	data exprData
}

func NewExpr[T exprData](data T) Expr {
	return Expr{data: data}
}

func (e Expr) Kind() ExprKind {
	return e.data.ExprKind()
}

func (e Expr) Data() exprData {
	return e.data
}

func (e Expr) Span() common.Span {
	return e.data.Span()
}

// IsValid is false for the zero Expr.
func (e Expr) IsValid() bool {
	return e.data != nil
}

func (e Expr) Name() *Name {
	if e.Kind() != ExprKindName {
		panic("not a name")
	}
	return e.data.(*Name)
}

func (e Expr) Number() *Number {
	if e.Kind() != ExprKindNumber {
		panic("not a number")
	}
	return e.data.(*Number)
}

func (e Expr) StringLit() *String {
	if e.Kind() != ExprKindString {
		panic("not a string")
	}
	return e.data.(*String)
}

func (e Expr) FString() *FString {
	if e.Kind() != ExprKindFString {
		panic("not an f-string")
	}
	return e.data.(*FString)
}

func (e Expr) Bool() bool {
	if e.Kind() != ExprKindBool {
		panic("not a bool")
	}
	return e.data.(*Bool).Value
}

func (e Expr) List() *List {
	if e.Kind() != ExprKindList {
		panic("not a list")
	}
	return e.data.(*List)
}

func (e Expr) Tuple() *Tuple {
	if e.Kind() != ExprKindTuple {
		panic("not a tuple")
	}
	return e.data.(*Tuple)
}

func (e Expr) Dict() *Dict {
	if e.Kind() != ExprKindDict {
		panic("not a dict")
	}
	return e.data.(*Dict)
}

func (e Expr) Set() *Set {
	if e.Kind() != ExprKindSet {
		panic("not a set")
	}
	return e.data.(*Set)
}

func (e Expr) Comprehension() *Comprehension {
	if e.Kind() != ExprKindComprehension {
		panic("not a comprehension")
	}
	return e.data.(*Comprehension)
}

func (e Expr) Binary() *Binary {
	if e.Kind() != ExprKindBinary {
		panic("not a binary")
	}
	return e.data.(*Binary)
}

func (e Expr) Unary() *Unary {
	if e.Kind() != ExprKindUnary {
		panic("not a unary")
	}
	return e.data.(*Unary)
}

func (e Expr) BoolOp() *BoolOpExpr {
	if e.Kind() != ExprKindBoolOp {
		panic("not a boolean operation")
	}
	return e.data.(*BoolOpExpr)
}

func (e Expr) Compare() *Compare {
	if e.Kind() != ExprKindCompare {
		panic("not a comparison")
	}
	return e.data.(*Compare)
}

func (e Expr) Ternary() *Ternary {
	if e.Kind() != ExprKindTernary {
		panic("not a ternary")
	}
	return e.data.(*Ternary)
}

func (e Expr) Lambda() *Lambda {
	if e.Kind() != ExprKindLambda {
		panic("not a lambda")
	}
	return e.data.(*Lambda)
}

func (e Expr) Await() *Await {
	if e.Kind() != ExprKindAwait {
		panic("not an await")
	}
	return e.data.(*Await)
}

func (e Expr) Yield() *Yield {
	if e.Kind() != ExprKindYield {
		panic("not a yield")
	}
	return e.data.(*Yield)
}

func (e Expr) YieldFrom() *YieldFrom {
	if e.Kind() != ExprKindYieldFrom {
		panic("not a yield from")
	}
	return e.data.(*YieldFrom)
}

func (e Expr) Call() *Call {
	if e.Kind() != ExprKindCall {
		panic("not a call")
	}
	return e.data.(*Call)
}

func (e Expr) Attribute() *Attribute {
	if e.Kind() != ExprKindAttribute {
		panic("not an attribute")
	}
	return e.data.(*Attribute)
}

func (e Expr) Subscript() *Subscript {
	if e.Kind() != ExprKindSubscript {
		panic("not a subscript")
	}
	return e.data.(*Subscript)
}

func (e Expr) Slice() *Slice {
	if e.Kind() != ExprKindSlice {
		panic("not a slice")
	}
	return e.data.(*Slice)
}

func (e Expr) Starred() *Starred {
	if e.Kind() != ExprKindStarred {
		panic("not a starred")
	}
	return e.data.(*Starred)
}

func (e Expr) Named() *Named {
	if e.Kind() != ExprKindNamed {
		panic("not a named expression")
	}
	return e.data.(*Named)
}

func (e Expr) JSX() *JSXElement {
	if e.Kind() != ExprKindJSX {
		panic("not a JSX element")
	}
	return e.data.(*JSXElement)
}

// IsNameOf reports whether e is a bare reference to name.
func (e Expr) IsNameOf(name string) bool {
	return e.IsValid() && e.Kind() == ExprKindName && e.Name().Id.Raw == name
}

/* Name */

// RefKind says what a name reference resolved to.
type RefKind uint8

const (
	RefUnresolved RefKind = iota
	RefLocal              // bound in the enclosing function, lambda or comprehension
	RefGlobal             // bound at module level
	RefBuiltin            // a language builtin, served by the runtime module
	RefImport             // bound by an import
	RefHost               // a JavaScript global (console, Math, ...)
)

type Name struct {
	Id  Ident
	Ref RefKind
}

func NewNameExpr(id Ident) Expr {
	return NewExpr(&Name{Id: id})
}

func (n *Name) ExprKind() ExprKind { return ExprKindName }

func (n *Name) Span() common.Span {
	return n.Id.Span()
}

/* Number */

type Number struct {
	Value lexer.TokNumber
}

func NewNumberExpr(n lexer.TokNumber) Expr {
	return NewExpr(&Number{Value: n})
}

func (n *Number) ExprKind() ExprKind { return ExprKindNumber }

func (n *Number) Span() common.Span {
	return n.Value.Span()
}

/* String */

// String is a string literal; adjacent literals are already joined.
type String struct {
	Value string
	span  common.Span
}

func NewStringExpr(value string, span common.Span) Expr {
	return NewExpr(&String{Value: value, span: span})
}

func (s *String) ExprKind() ExprKind { return ExprKindString }

func (s *String) Span() common.Span {
	return s.span
}

/* FString */

type FStringPart struct {
	Literal string
	Field   *FStringField
}

type FStringField struct {
	Value      Expr
	Conversion rune // 'r', 's', 'a' or 0
	Spec       string
}

type FString struct {
	Parts []FStringPart
	span  common.Span
}

func NewFStringExpr(parts []FStringPart, span common.Span) Expr {
	return NewExpr(&FString{Parts: parts, span: span})
}

func (f *FString) ExprKind() ExprKind { return ExprKindFString }

func (f *FString) Span() common.Span {
	return f.span
}

/* Bool */

type Bool struct {
	Value bool
	span  common.Span
}

func NewBoolExpr(tok lexer.Token) Expr {
	return NewExpr(&Bool{Value: tok.Is("True"), span: tok.Span()})
}

func (b *Bool) ExprKind() ExprKind { return ExprKindBool }

func (b *Bool) Span() common.Span {
	return b.span
}

/* None */

type None struct {
	span common.Span
}

func NewNoneExpr(span common.Span) Expr {
	return NewExpr(&None{span: span})
}

func (n *None) ExprKind() ExprKind { return ExprKindNone }

func (n *None) Span() common.Span {
	return n.span
}

/* List */

type List struct {
	Elts []Expr
	span common.Span
}

func NewListExpr(elts []Expr, span common.Span) Expr {
	return NewExpr(&List{Elts: elts, span: span})
}

func (l *List) ExprKind() ExprKind { return ExprKindList }

func (l *List) Span() common.Span {
	return l.span
}

/* Tuple */

type Tuple struct {
	Elts []Expr
	span common.Span
}

func NewTupleExpr(elts []Expr, span common.Span) Expr {
	return NewExpr(&Tuple{Elts: elts, span: span})
}

func (t *Tuple) ExprKind() ExprKind { return ExprKindTuple }

func (t *Tuple) Span() common.Span {
	return t.span
}

/* Dict */

// DictEntry is `key: value`, or `**value` when Key is nil.
type DictEntry struct {
	Key   *Expr
	Value Expr
}

type Dict struct {
	Entries []DictEntry
	span    common.Span
}

func NewDictExpr(entries []DictEntry, span common.Span) Expr {
	return NewExpr(&Dict{Entries: entries, span: span})
}

func (d *Dict) ExprKind() ExprKind { return ExprKindDict }

func (d *Dict) Span() common.Span {
	return d.span
}

/* Set */

type Set struct {
	Elts []Expr
	span common.Span
}

func NewSetExpr(elts []Expr, span common.Span) Expr {
	return NewExpr(&Set{Elts: elts, span: span})
}

func (s *Set) ExprKind() ExprKind { return ExprKindSet }

func (s *Set) Span() common.Span {
	return s.span
}

/* Comprehension */

type ComprehensionKind uint8

const (
	_ ComprehensionKind = iota
	CompList
	CompSet
	CompDict
	CompGenerator
)

// CompClause is a `for target in iter` clause, or an `if cond` filter when
// Target is nil.
type CompClause struct {
	Target *Expr
	Iter   Expr
	Cond   Expr
	Async  bool
}

func (c CompClause) IsFilter() bool {
	return c.Target == nil
}

type Comprehension struct {
	Kind    ComprehensionKind
	Key     *Expr // dict comprehensions only
	Elt     Expr
	Clauses []CompClause
	span    common.Span
}

func NewComprehensionExpr(kind ComprehensionKind, key *Expr, elt Expr, clauses []CompClause, span common.Span) Expr {
	return NewExpr(&Comprehension{Kind: kind, Key: key, Elt: elt, Clauses: clauses, span: span})
}

func (c *Comprehension) ExprKind() ExprKind { return ExprKindComprehension }

func (c *Comprehension) Span() common.Span {
	return c.span
}

/* Binary */

type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	span  common.Span
}

func NewBinaryExpr(left Expr, op BinaryOp, right Expr, span common.Span) Expr {
	return NewExpr(&Binary{Left: left, Op: op, Right: right, span: span})
}

func (b *Binary) ExprKind() ExprKind { return ExprKindBinary }

func (b *Binary) Span() common.Span {
	return b.span
}

/* Unary */

type Unary struct {
	Op    UnaryOp
	Value Expr
	span  common.Span
}

func NewUnaryExpr(op UnaryOp, value Expr, span common.Span) Expr {
	return NewExpr(&Unary{Op: op, Value: value, span: span})
}

func (u *Unary) ExprKind() ExprKind { return ExprKindUnary }

func (u *Unary) Span() common.Span {
	return u.span
}

/* BoolOp */

type BoolOpExpr struct {
	Op    BoolOp
	Left  Expr
	Right Expr
	span  common.Span
}

func NewBoolOpExpr(left Expr, op BoolOp, right Expr, span common.Span) Expr {
	return NewExpr(&BoolOpExpr{Left: left, Op: op, Right: right, span: span})
}

func (b *BoolOpExpr) ExprKind() ExprKind { return ExprKindBoolOp }

func (b *BoolOpExpr) Span() common.Span {
	return b.span
}

/* Compare */

// Compare is a comparison chain: Left Ops[0] Comparators[0] Ops[1] ...
type Compare struct {
	Left        Expr
	Ops         []CmpOp
	Comparators []Expr
	span        common.Span
}

func NewCompareExpr(left Expr, ops []CmpOp, comparators []Expr, span common.Span) Expr {
	return NewExpr(&Compare{Left: left, Ops: ops, Comparators: comparators, span: span})
}

func (c *Compare) ExprKind() ExprKind { return ExprKindCompare }

func (c *Compare) Span() common.Span {
	return c.span
}

/* Ternary */

type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
	span common.Span
}

func NewTernaryExpr(cond, then, els Expr, span common.Span) Expr {
	return NewExpr(&Ternary{Cond: cond, Then: then, Else: els, span: span})
}

func (t *Ternary) ExprKind() ExprKind { return ExprKindTernary }

func (t *Ternary) Span() common.Span {
	return t.span
}

/* Lambda */

// Lambda covers `lambda a: e` and arrow functions `(a) => e` / `(a) => {...}`.
// Exactly one of Expr and Body is used.
type Lambda struct {
	Params []Param
	Expr   *Expr
	Body   []Stmt
	Async  bool
	Arrow  bool

	Locals []string
	span   common.Span
}

func NewLambdaExpr(l *Lambda, span common.Span) Expr {
	l.span = span
	return NewExpr(l)
}

func (l *Lambda) ExprKind() ExprKind { return ExprKindLambda }

func (l *Lambda) Span() common.Span {
	return l.span
}

/* Await */

type Await struct {
	Value Expr
	span  common.Span
}

func NewAwaitExpr(value Expr, span common.Span) Expr {
	return NewExpr(&Await{Value: value, span: span})
}

func (a *Await) ExprKind() ExprKind { return ExprKindAwait }

func (a *Await) Span() common.Span {
	return a.span
}

/* Yield */

type Yield struct {
	Value *Expr
	span  common.Span
}

func NewYieldExpr(value *Expr, span common.Span) Expr {
	return NewExpr(&Yield{Value: value, span: span})
}

func (y *Yield) ExprKind() ExprKind { return ExprKindYield }

func (y *Yield) Span() common.Span {
	return y.span
}

type YieldFrom struct {
	Value Expr
	span  common.Span
}

func NewYieldFromExpr(value Expr, span common.Span) Expr {
	return NewExpr(&YieldFrom{Value: value, span: span})
}

func (y *YieldFrom) ExprKind() ExprKind { return ExprKindYieldFrom }

func (y *YieldFrom) Span() common.Span {
	return y.span
}

/* Call */

// Arg is a call argument: positional, `*value`, `name=value` or `**value`.
type Arg struct {
	Name       *Ident
	Value      Expr
	Star       bool
	DoubleStar bool
}

func (a Arg) IsPositional() bool {
	return a.Name == nil && !a.DoubleStar
}

type Call struct {
	Func Expr
	Args []Arg
	span common.Span
}

func NewCallExpr(fn Expr, args []Arg, span common.Span) Expr {
	return NewExpr(&Call{Func: fn, Args: args, span: span})
}

func (c *Call) ExprKind() ExprKind { return ExprKindCall }

func (c *Call) Span() common.Span {
	return c.span
}

/* Attribute */

type Attribute struct {
	Value Expr
	Attr  Ident
	span  common.Span
}

func NewAttributeExpr(value Expr, attr Ident, span common.Span) Expr {
	return NewExpr(&Attribute{Value: value, Attr: attr, span: span})
}

func (a *Attribute) ExprKind() ExprKind { return ExprKindAttribute }

func (a *Attribute) Span() common.Span {
	return a.span
}

/* Subscript */

type Subscript struct {
	Value Expr
	Index Expr
	span  common.Span
}

func NewSubscriptExpr(value, index Expr, span common.Span) Expr {
	return NewExpr(&Subscript{Value: value, Index: index, span: span})
}

func (s *Subscript) ExprKind() ExprKind { return ExprKindSubscript }

func (s *Subscript) Span() common.Span {
	return s.span
}

/* Slice */

// Slice only appears as the index of a Subscript.
type Slice struct {
	Lower *Expr
	Upper *Expr
	Step  *Expr
	span  common.Span
}

func NewSliceExpr(lower, upper, step *Expr, span common.Span) Expr {
	return NewExpr(&Slice{Lower: lower, Upper: upper, Step: step, span: span})
}

func (s *Slice) ExprKind() ExprKind { return ExprKindSlice }

func (s *Slice) Span() common.Span {
	return s.span
}

/* Starred */

type Starred struct {
	Value Expr
	span  common.Span
}

func NewStarredExpr(value Expr, span common.Span) Expr {
	return NewExpr(&Starred{Value: value, span: span})
}

func (s *Starred) ExprKind() ExprKind { return ExprKindStarred }

func (s *Starred) Span() common.Span {
	return s.span
}

/* Named (walrus) */

type Named struct {
	Target Expr // always a Name
	Value  Expr
	span   common.Span
}

func NewNamedExpr(target, value Expr, span common.Span) Expr {
	return NewExpr(&Named{Target: target, Value: value, span: span})
}

func (n *Named) ExprKind() ExprKind { return ExprKindNamed }

func (n *Named) Span() common.Span {
	return n.span
}

/* JSX */

type JSXAttr struct {
	Name   string
	Str    *string
	Value  *Expr
	Spread bool
	span   common.Span
}

func NewJSXAttr(name string, str *string, value *Expr, spread bool, span common.Span) JSXAttr {
	return JSXAttr{Name: name, Str: str, Value: value, Spread: spread, span: span}
}

func (a JSXAttr) Span() common.Span {
	return a.span
}

// JSXChild holds exactly one of Text, Expr or Element.
type JSXChild struct {
	Text    string
	Expr    *Expr
	Element *JSXElement
}

type JSXElement struct {
	// Tag is the written tag name, "" for a fragment. Component tags (capitalised
	// or dotted) are also parsed into TagExpr.
	Tag      string
	TagExpr  *Expr
	Attrs    []JSXAttr
	Children []JSXChild
	span     common.Span
}

func NewJSXElement(tag string, tagExpr *Expr, attrs []JSXAttr, children []JSXChild, span common.Span) *JSXElement {
	return &JSXElement{Tag: tag, TagExpr: tagExpr, Attrs: attrs, Children: children, span: span}
}

func (j *JSXElement) ExprKind() ExprKind { return ExprKindJSX }

func (j *JSXElement) Span() common.Span {
	return j.span
}

func (j *JSXElement) IsFragment() bool {
	return j.Tag == ""
}
