package ast

import "github.com/pyjs-lang/pyjs/common"

// Pattern is the left side of a `case`.
type Pattern interface {
	isPattern()
	Span() common.Span
}

// PatternLiteral matches a number, string, True, False, None or a negated
// number by equality.
type PatternLiteral struct {
	Value Expr
}

func (p *PatternLiteral) isPattern()        {}
func (p *PatternLiteral) Span() common.Span { return p.Value.Span() }

type PatternCapture struct {
	Name Ident
}

func (p *PatternCapture) isPattern()        {}
func (p *PatternCapture) Span() common.Span { return p.Name.Span() }

type PatternWildcard struct {
	span common.Span
}

func NewPatternWildcard(span common.Span) *PatternWildcard {
	return &PatternWildcard{span: span}
}

func (p *PatternWildcard) isPattern()        {}
func (p *PatternWildcard) Span() common.Span { return p.span }

// PatternValue matches against a dotted name such as `Color.RED`.
type PatternValue struct {
	Value Expr
}

func (p *PatternValue) isPattern()        {}
func (p *PatternValue) Span() common.Span { return p.Value.Span() }

// PatternStar is `*name` or `*_` inside a sequence pattern.
type PatternStar struct {
	Name *Ident
	span common.Span
}

func NewPatternStar(name *Ident, span common.Span) *PatternStar {
	return &PatternStar{Name: name, span: span}
}

func (p *PatternStar) isPattern()        {}
func (p *PatternStar) Span() common.Span { return p.span }

type PatternSequence struct {
	Elts []Pattern
	span common.Span
}

func NewPatternSequence(elts []Pattern, span common.Span) *PatternSequence {
	return &PatternSequence{Elts: elts, span: span}
}

func (p *PatternSequence) isPattern()        {}
func (p *PatternSequence) Span() common.Span { return p.span }

// StarIndex is the position of the star element, or -1.
func (p *PatternSequence) StarIndex() int {
	for i, elt := range p.Elts {
		if _, ok := elt.(*PatternStar); ok {
			return i
		}
	}
	return -1
}

type PatternMapping struct {
	Keys   []Expr
	Values []Pattern
	Rest   *Ident
	span   common.Span
}

func NewPatternMapping(keys []Expr, values []Pattern, rest *Ident, span common.Span) *PatternMapping {
	return &PatternMapping{Keys: keys, Values: values, Rest: rest, span: span}
}

func (p *PatternMapping) isPattern()        {}
func (p *PatternMapping) Span() common.Span { return p.span }

type PatternClass struct {
	Class    Expr
	Args     []Pattern
	KwNames  []Ident
	KwValues []Pattern
	span     common.Span
}

func NewPatternClass(class Expr, args []Pattern, kwNames []Ident, kwValues []Pattern, span common.Span) *PatternClass {
	return &PatternClass{Class: class, Args: args, KwNames: kwNames, KwValues: kwValues, span: span}
}

func (p *PatternClass) isPattern()        {}
func (p *PatternClass) Span() common.Span { return p.span }

type PatternOr struct {
	Alts []Pattern
	span common.Span
}

func NewPatternOr(alts []Pattern, span common.Span) *PatternOr {
	return &PatternOr{Alts: alts, span: span}
}

func (p *PatternOr) isPattern()        {}
func (p *PatternOr) Span() common.Span { return p.span }

type PatternAs struct {
	Pattern Pattern
	Name    Ident
	span    common.Span
}

func NewPatternAs(pattern Pattern, name Ident, span common.Span) *PatternAs {
	return &PatternAs{Pattern: pattern, Name: name, span: span}
}

func (p *PatternAs) isPattern()        {}
func (p *PatternAs) Span() common.Span { return p.span }

// PatternBindings lists the names a pattern binds, in source order.
func PatternBindings(p Pattern) []Ident {
	var out []Ident
	var walk func(Pattern)
	walk = func(p Pattern) {
		switch p := p.(type) {
		case *PatternCapture:
			out = append(out, p.Name)
		case *PatternStar:
			if p.Name != nil {
				out = append(out, *p.Name)
			}
		case *PatternSequence:
			for _, elt := range p.Elts {
				walk(elt)
			}
		case *PatternMapping:
			for _, v := range p.Values {
				walk(v)
			}
			if p.Rest != nil {
				out = append(out, *p.Rest)
			}
		case *PatternClass:
			for _, a := range p.Args {
				walk(a)
			}
			for _, v := range p.KwValues {
				walk(v)
			}
		case *PatternOr:
			// alternatives bind the same names
			if len(p.Alts) > 0 {
				walk(p.Alts[0])
			}
		case *PatternAs:
			walk(p.Pattern)
			out = append(out, p.Name)
		}
	}
	walk(p)
	return out
}
