package parser

import (
	"github.com/pyjs-lang/pyjs/common"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// checkTarget validates the left side of `=`, a for target or an `as`
// target.
func (p *parser) checkTarget(target ast.Expr) {
	if target.Kind() == ast.ExprKindStarred {
		p.errorf(common.ErrInvalidTarget, target.Span(), "starred assignment target must be in a list or tuple")
	}
	p.checkTargetElt(target)
}

func (p *parser) checkTargetElt(target ast.Expr) {
	switch target.Kind() {
	case ast.ExprKindName, ast.ExprKindAttribute, ast.ExprKindSubscript:
	case ast.ExprKindStarred:
		p.checkTargetElt(target.Starred().Value)
	case ast.ExprKindTuple:
		p.checkDestructuring(target.Tuple().Elts)
	case ast.ExprKindList:
		p.checkDestructuring(target.List().Elts)
	default:
		p.errorf(common.ErrInvalidTarget, target.Span(), "cannot assign to %s", target.Kind())
	}
}

func (p *parser) checkDestructuring(elts []ast.Expr) {
	starred := false
	for _, elt := range elts {
		if elt.Kind() == ast.ExprKindStarred {
			if starred {
				p.errorf(common.ErrInvalidDestructuring, elt.Span(), "multiple starred expressions in assignment")
			}
			starred = true
			if inner := elt.Starred().Value; inner.Kind() == ast.ExprKindStarred {
				p.errorf(common.ErrInvalidDestructuring, inner.Span(), "nested starred target")
			}
		}
		p.checkTargetElt(elt)
	}
}

// checkSingleTarget validates the target of an augmented or annotated
// assignment, which cannot destructure.
func (p *parser) checkSingleTarget(target ast.Expr, what string) {
	switch target.Kind() {
	case ast.ExprKindName, ast.ExprKindAttribute, ast.ExprKindSubscript:
		return
	}
	p.errorf(common.ErrInvalidTarget, target.Span(), "illegal target for %s assignment: %s", what, target.Kind())
}

func (p *parser) checkDelTarget(target ast.Expr) {
	switch target.Kind() {
	case ast.ExprKindName, ast.ExprKindAttribute, ast.ExprKindSubscript:
	case ast.ExprKindTuple:
		for _, elt := range target.Tuple().Elts {
			p.checkDelTarget(elt)
		}
	case ast.ExprKindList:
		for _, elt := range target.List().Elts {
			p.checkDelTarget(elt)
		}
	default:
		p.errorf(common.ErrInvalidTarget, target.Span(), "cannot delete %s", target.Kind())
	}
}

// checkAnnotation accepts the shapes a type annotation can take: names,
// dotted names, None, strings, subscripts such as `dict[str, list[int]]`
// and `|` unions.
func (p *parser) checkAnnotation(annotation ast.Expr) {
	if !isAnnotation(annotation, false) {
		p.errorf(common.ErrInvalidAnnotation, annotation.Span(), "invalid type annotation: %s", annotation.Kind())
	}
}

func isAnnotation(e ast.Expr, inSubscript bool) bool {
	switch e.Kind() {
	case ast.ExprKindName, ast.ExprKindNone, ast.ExprKindString:
		return true
	case ast.ExprKindAttribute:
		return isAnnotation(e.Attribute().Value, false)
	case ast.ExprKindSubscript:
		s := e.Subscript()
		return isAnnotation(s.Value, false) && isAnnotation(s.Index, true)
	case ast.ExprKindBinary:
		b := e.Binary()
		return b.Op == ast.BinaryOpBitwiseOr && isAnnotation(b.Left, inSubscript) && isAnnotation(b.Right, inSubscript)
	case ast.ExprKindTuple, ast.ExprKindList:
		if !inSubscript {
			return false
		}
		var elts []ast.Expr
		if e.Kind() == ast.ExprKindTuple {
			elts = e.Tuple().Elts
		} else {
			elts = e.List().Elts
		}
		for _, elt := range elts {
			if !isAnnotation(elt, true) {
				return false
			}
		}
		return true
	case ast.ExprKindNumber, ast.ExprKindBool:
		// Literal[1], Literal[True]
		return inSubscript
	case ast.ExprKindUnary:
		return inSubscript && e.Unary().Op == ast.UnaryOpNegate && e.Unary().Value.Kind() == ast.ExprKindNumber
	}
	return false
}
