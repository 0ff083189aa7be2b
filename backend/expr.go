package backend

import (
	"fmt"
	"strings"

	"github.com/pyjs-lang/pyjs/backend/resolver"
	"github.com/pyjs-lang/pyjs/frontend/ast"
)

// level is JavaScript operator precedence, lowest first.
type level uint8

const (
	LLowest level = iota
	LComma
	LSpread
	LYield
	LAssign
	LConditional
	LLogicalOr
	LLogicalAnd
	LBitwiseOr
	LBitwiseXor
	LBitwiseAnd
	LEquals
	LCompare
	LShift
	LAdd
	LMultiply
	LExponentiation
	LPrefix
	LPostfix
	LCall
	LMember
)

var binaryOps = map[ast.BinaryOp]struct {
	js    string
	level level
}{
	ast.BinaryOpAdd:               {"+", LAdd},
	ast.BinaryOpSub:               {"-", LAdd},
	ast.BinaryOpMul:               {"*", LMultiply},
	ast.BinaryOpDiv:               {"/", LMultiply},
	ast.BinaryOpMod:               {"%", LMultiply},
	ast.BinaryOpPow:               {"**", LExponentiation},
	ast.BinaryOpBitwiseOr:         {"|", LBitwiseOr},
	ast.BinaryOpBitwiseAnd:        {"&", LBitwiseAnd},
	ast.BinaryOpBitwiseXor:        {"^", LBitwiseXor},
	ast.BinaryOpBitwiseLeftShift:  {"<<", LShift},
	ast.BinaryOpBitwiseRightShift: {">>", LShift},
}

// exprLevel is the precedence of the JavaScript generated for e.
func exprLevel(e ast.Expr) level {
	switch e.Kind() {
	case ast.ExprKindUnary, ast.ExprKindAwait:
		return LPrefix
	case ast.ExprKindBinary:
		if op, ok := binaryOps[e.Binary().Op]; ok {
			return op.level
		}
		return LCall // Math.floor(...), matmul(...)
	case ast.ExprKindBoolOp:
		if e.BoolOp().Op == ast.BoolOpAnd {
			return LLogicalAnd
		}
		return LLogicalOr
	case ast.ExprKindCompare:
		c := e.Compare()
		if len(c.Ops) > 1 {
			return LLogicalAnd
		}
		return cmpLevel(c.Ops[0])
	case ast.ExprKindTernary:
		return LConditional
	case ast.ExprKindLambda, ast.ExprKindNamed:
		return LAssign
	case ast.ExprKindYield, ast.ExprKindYieldFrom:
		return LYield
	case ast.ExprKindStarred:
		return LSpread
	case ast.ExprKindCall, ast.ExprKindSet, ast.ExprKindComprehension, ast.ExprKindJSX:
		return LCall
	}
	return LMember
}

func cmpLevel(op ast.CmpOp) level {
	switch op {
	case ast.CmpOpEq, ast.CmpOpNotEq, ast.CmpOpIs, ast.CmpOpIsNot:
		return LEquals
	case ast.CmpOpIn:
		return LCall
	case ast.CmpOpNotIn:
		return LPrefix
	}
	return LCompare
}

func wrap(code string, have, want level) string {
	if have < want {
		return "(" + code + ")"
	}
	return code
}

// operand generates e for a position that needs at least precedence min.
func (cg *Codegen) operand(e ast.Expr, min level) string {
	return wrap(cg.genExpr(e), exprLevel(e), min)
}

func (cg *Codegen) genExprs(list []ast.Expr) []string {
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = cg.operand(e, LAssign)
	}
	return out
}

func (cg *Codegen) genExpr(e ast.Expr) string {
	switch e.Kind() {
	case ast.ExprKindName:
		return cg.genName(e.Name())
	case ast.ExprKindNumber:
		return strings.ReplaceAll(e.Number().Value.Raw, "_", "")
	case ast.ExprKindString:
		return resolver.Quote(e.StringLit().Value)
	case ast.ExprKindFString:
		return cg.genFString(e.FString())
	case ast.ExprKindBool:
		if e.Bool() {
			return "true"
		}
		return "false"
	case ast.ExprKindNone:
		return "null"
	case ast.ExprKindList:
		return "[" + strings.Join(cg.genExprs(e.List().Elts), ", ") + "]"
	case ast.ExprKindTuple:
		return "[" + strings.Join(cg.genExprs(e.Tuple().Elts), ", ") + "]"
	case ast.ExprKindSet:
		return "new Set([" + strings.Join(cg.genExprs(e.Set().Elts), ", ") + "])"
	case ast.ExprKindDict:
		return cg.genDict(e.Dict())
	case ast.ExprKindComprehension:
		return cg.genComprehension(e.Comprehension())
	case ast.ExprKindBinary:
		return cg.genBinary(e.Binary())
	case ast.ExprKindUnary:
		return cg.genUnary(e.Unary())
	case ast.ExprKindBoolOp:
		b := e.BoolOp()
		if b.Op == ast.BoolOpAnd {
			return cg.operand(b.Left, LLogicalAnd) + " && " + cg.operand(b.Right, LLogicalAnd+1)
		}
		return cg.operand(b.Left, LLogicalOr) + " || " + cg.operand(b.Right, LLogicalOr+1)
	case ast.ExprKindCompare:
		return cg.genCompare(e.Compare())
	case ast.ExprKindTernary:
		t := e.Ternary()
		return fmt.Sprintf("%s ? %s : %s",
			cg.operand(t.Cond, LLogicalOr), cg.operand(t.Then, LAssign), cg.operand(t.Else, LAssign))
	case ast.ExprKindLambda:
		return cg.genLambda(e.Lambda())
	case ast.ExprKindAwait:
		return "await " + cg.operand(e.Await().Value, LPrefix)
	case ast.ExprKindYield:
		if v := e.Yield().Value; v != nil {
			return "yield " + cg.operand(*v, LYield)
		}
		return "yield"
	case ast.ExprKindYieldFrom:
		return "yield* " + cg.operand(e.YieldFrom().Value, LYield)
	case ast.ExprKindCall:
		return cg.genCall(e.Call())
	case ast.ExprKindAttribute:
		return cg.genAttribute(e.Attribute())
	case ast.ExprKindSubscript:
		return cg.genSubscript(e.Subscript())
	case ast.ExprKindSlice:
		cg.errorf(e.Span(), "slice outside of a subscript")
	case ast.ExprKindStarred:
		return "..." + cg.operand(e.Starred().Value, LAssign)
	case ast.ExprKindNamed:
		n := e.Named()
		return cg.genName(n.Target.Name()) + " = " + cg.operand(n.Value, LAssign)
	case ast.ExprKindJSX:
		return cg.genJSX(e.JSX())
	}
	panic(fmt.Sprintf("codegen: unhandled expression %s", e.Kind()))
}

func (cg *Codegen) genBinary(b *ast.Binary) string {
	switch b.Op {
	case ast.BinaryOpFloorDiv:
		return fmt.Sprintf("Math.floor(%s / %s)", cg.operand(b.Left, LMultiply), cg.operand(b.Right, LMultiply+1))
	case ast.BinaryOpMatMul:
		return fmt.Sprintf("%s(%s, %s)", cg.helper("matmul"), cg.operand(b.Left, LAssign), cg.operand(b.Right, LAssign))
	case ast.BinaryOpPow:
		// a unary operand on the left of ** is a syntax error
		return cg.operand(b.Left, LPostfix) + " ** " + cg.operand(b.Right, LExponentiation)
	}
	op := binaryOps[b.Op]
	return cg.operand(b.Left, op.level) + " " + op.js + " " + cg.operand(b.Right, op.level+1)
}

func (cg *Codegen) genUnary(u *ast.Unary) string {
	var op string
	switch u.Op {
	case ast.UnaryOpNot:
		op = "!"
	case ast.UnaryOpNegate:
		op = "-"
	case ast.UnaryOpPlus:
		op = "+"
	case ast.UnaryOpBitwiseNot:
		op = "~"
	}
	value := cg.operand(u.Value, LPrefix)
	if (op == "-" || op == "+") && strings.HasPrefix(value, op) {
		value = "(" + value + ")"
	}
	return op + value
}

func isNone(e ast.Expr) bool {
	return e.Kind() == ast.ExprKindNone
}

// isSimple reports whether e can be evaluated twice without side effects.
func isSimple(e ast.Expr) bool {
	switch e.Kind() {
	case ast.ExprKindName, ast.ExprKindNumber, ast.ExprKindString, ast.ExprKindBool, ast.ExprKindNone:
		return true
	case ast.ExprKindAttribute:
		return isSimple(e.Attribute().Value)
	}
	return false
}

// genCompare emits a comparison chain; inner operands are evaluated once.
func (cg *Codegen) genCompare(c *ast.Compare) string {
	left := c.Left
	leftCode, leftLevel := cg.genExpr(left), exprLevel(left)
	parts := make([]string, 0, len(c.Ops))
	for i, op := range c.Ops {
		right := c.Comparators[i]
		rightCode, rightLevel := cg.genExpr(right), exprLevel(right)
		nextCode, nextLevel := rightCode, rightLevel
		if i < len(c.Ops)-1 && !isSimple(right) {
			t := cg.getTempVar()
			rightCode = "(" + t + " = " + wrap(rightCode, rightLevel, LAssign) + ")"
			rightLevel = LMember
			nextCode, nextLevel = t, LMember
		}
		parts = append(parts, cg.cmpPart(op,
			leftCode, leftLevel, isNone(left),
			rightCode, rightLevel, isNone(right)))
		left, leftCode, leftLevel = right, nextCode, nextLevel
	}
	return strings.Join(parts, " && ")
}

func (cg *Codegen) cmpPart(op ast.CmpOp, left string, leftLevel level, leftNone bool, right string, rightLevel level, rightNone bool) string {
	var js string
	loose := leftNone || rightNone
	switch op {
	case ast.CmpOpIn, ast.CmpOpNotIn:
		call := fmt.Sprintf("%s(%s, %s)", cg.helper("contains"), wrap(right, rightLevel, LAssign), wrap(left, leftLevel, LAssign))
		if op == ast.CmpOpNotIn {
			return "!" + call
		}
		return call
	case ast.CmpOpEq, ast.CmpOpIs:
		js = "==="
		if loose {
			js = "=="
		}
	case ast.CmpOpNotEq, ast.CmpOpIsNot:
		js = "!=="
		if loose {
			js = "!="
		}
	default:
		js = op.String()
	}
	lvl := cmpLevel(op)
	return wrap(left, leftLevel, lvl) + " " + js + " " + wrap(right, rightLevel, lvl+1)
}

func (cg *Codegen) genDict(d *ast.Dict) string {
	if len(d.Entries) == 0 {
		return "{}"
	}
	entries := make([]string, len(d.Entries))
	for i, entry := range d.Entries {
		value := cg.operand(entry.Value, LAssign)
		if entry.Key == nil {
			entries[i] = "..." + value
			continue
		}
		entries[i] = cg.propertyKey(*entry.Key) + ": " + value
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

func (cg *Codegen) propertyKey(key ast.Expr) string {
	switch key.Kind() {
	case ast.ExprKindString:
		return resolver.Quote(key.StringLit().Value)
	case ast.ExprKindNumber:
		return cg.genExpr(key)
	}
	return "[" + cg.operand(key, LAssign) + "]"
}

func (cg *Codegen) genFString(f *ast.FString) string {
	var sb strings.Builder
	sb.WriteByte('`')
	for _, part := range f.Parts {
		if part.Field == nil {
			sb.WriteString(resolver.TemplateText(part.Literal))
			continue
		}
		value := cg.genExpr(part.Field.Value)
		switch part.Field.Conversion {
		case 'r':
			value = fmt.Sprintf("%s(%s)", cg.helper("repr"), value)
		case 's':
			value = fmt.Sprintf("%s(%s)", cg.helper("str"), value)
		case 'a':
			value = fmt.Sprintf("%s(%s)", cg.helper("ascii"), value)
		}
		if part.Field.Spec != "" {
			value = fmt.Sprintf("%s(%s, %s)", cg.helper("format"), value, resolver.Quote(part.Field.Spec))
		}
		sb.WriteString("${")
		sb.WriteString(value)
		sb.WriteByte('}')
	}
	sb.WriteByte('`')
	return sb.String()
}

// isSuperCall matches a bare `super()`.
func isSuperCall(e ast.Expr) bool {
	if e.Kind() != ast.ExprKindCall {
		return false
	}
	c := e.Call()
	return len(c.Args) == 0 && c.Func.IsNameOf("super") && c.Func.Name().Ref == ast.RefHost
}

func (cg *Codegen) receiver(e ast.Expr) string {
	if e.Kind() == ast.ExprKindNumber {
		return "(" + cg.genExpr(e) + ")"
	}
	return cg.operand(e, LCall)
}

func (cg *Codegen) genAttribute(a *ast.Attribute) string {
	if isSuperCall(a.Value) {
		if a.Attr.Raw == "__init__" {
			cg.errorf(a.Span(), "super().__init__ is only supported as a statement of __init__")
		}
		return "super." + a.Attr.Raw
	}
	return cg.receiver(a.Value) + "." + a.Attr.Raw
}

// negativeIndex matches a constant negative index such as `-1`.
func negativeIndex(e ast.Expr) (string, bool) {
	if e.Kind() != ast.ExprKindUnary {
		return "", false
	}
	u := e.Unary()
	if u.Op != ast.UnaryOpNegate || u.Value.Kind() != ast.ExprKindNumber {
		return "", false
	}
	raw := strings.ReplaceAll(u.Value.Number().Value.Raw, "_", "")
	return raw, true
}

func (cg *Codegen) genSubscript(s *ast.Subscript) string {
	recv := cg.receiver(s.Value)
	if s.Index.Kind() == ast.ExprKindSlice {
		return cg.genSlice(recv, s.Index.Slice())
	}
	if n, ok := negativeIndex(s.Index); ok {
		return fmt.Sprintf("%s.at(-%s)", recv, n)
	}
	return recv + "[" + cg.genExpr(s.Index) + "]"
}

func (cg *Codegen) genSlice(recv string, sl *ast.Slice) string {
	bound := func(e *ast.Expr) string {
		if e == nil {
			return "undefined"
		}
		return cg.operand(*e, LAssign)
	}
	if sl.Step != nil {
		return fmt.Sprintf("%s(%s, %s, %s, %s)", cg.helper("slice"), wrap(recv, LCall, LAssign), bound(sl.Lower), bound(sl.Upper), bound(sl.Step))
	}
	switch {
	case sl.Lower == nil && sl.Upper == nil:
		return recv + ".slice()"
	case sl.Upper == nil:
		return fmt.Sprintf("%s.slice(%s)", recv, bound(sl.Lower))
	case sl.Lower == nil:
		return fmt.Sprintf("%s.slice(0, %s)", recv, bound(sl.Upper))
	}
	return fmt.Sprintf("%s.slice(%s, %s)", recv, bound(sl.Lower), bound(sl.Upper))
}
