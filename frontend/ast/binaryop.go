package ast

type BinaryOp int

const (
	BinaryOpInvalid BinaryOp = iota
	// BinaryOpAdd is `+`
	BinaryOpAdd
	// BinaryOpSub is `-`
	BinaryOpSub
	// BinaryOpMul is `*`
	BinaryOpMul
	// BinaryOpDiv is `/`
	BinaryOpDiv
	// BinaryOpFloorDiv is `//`
	BinaryOpFloorDiv
	// BinaryOpMod is `%`
	BinaryOpMod
	// BinaryOpPow is `**`
	BinaryOpPow
	// BinaryOpMatMul is `@`
	BinaryOpMatMul

	// BinaryOpBitwiseOr is `|`
	BinaryOpBitwiseOr
	// BinaryOpBitwiseAnd is `&`
	BinaryOpBitwiseAnd
	// BinaryOpBitwiseXor is `^`
	BinaryOpBitwiseXor
	// BinaryOpBitwiseLeftShift is `<<`
	BinaryOpBitwiseLeftShift
	// BinaryOpBitwiseRightShift is `>>`
	BinaryOpBitwiseRightShift
)

var binaryOpNames = [...]string{
	BinaryOpAdd:               "+",
	BinaryOpSub:               "-",
	BinaryOpMul:               "*",
	BinaryOpDiv:               "/",
	BinaryOpFloorDiv:          "//",
	BinaryOpMod:               "%",
	BinaryOpPow:               "**",
	BinaryOpMatMul:            "@",
	BinaryOpBitwiseOr:         "|",
	BinaryOpBitwiseAnd:        "&",
	BinaryOpBitwiseXor:        "^",
	BinaryOpBitwiseLeftShift:  "<<",
	BinaryOpBitwiseRightShift: ">>",
}

func (op BinaryOp) String() string {
	if op > 0 && int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "<invalid>"
}

// AugmentedOps maps an augmented assignment token to its operator.
var AugmentedOps = map[string]BinaryOp{
	"+=":  BinaryOpAdd,
	"-=":  BinaryOpSub,
	"*=":  BinaryOpMul,
	"/=":  BinaryOpDiv,
	"//=": BinaryOpFloorDiv,
	"%=":  BinaryOpMod,
	"**=": BinaryOpPow,
	"@=":  BinaryOpMatMul,
	"|=":  BinaryOpBitwiseOr,
	"&=":  BinaryOpBitwiseAnd,
	"^=":  BinaryOpBitwiseXor,
	"<<=": BinaryOpBitwiseLeftShift,
	">>=": BinaryOpBitwiseRightShift,
}

type BoolOp int

const (
	_ BoolOp = iota
	BoolOpAnd
	BoolOpOr
)

func (op BoolOp) String() string {
	if op == BoolOpAnd {
		return "and"
	}
	return "or"
}

type CmpOp int

const (
	_ CmpOp = iota
	CmpOpEq    // ==
	CmpOpNotEq // !=
	CmpOpLt    // <
	CmpOpLtE   // <=
	CmpOpGt    // >
	CmpOpGtE   // >=
	CmpOpIs    // is
	CmpOpIsNot // is not
	CmpOpIn    // in
	CmpOpNotIn // not in
)

var cmpOpNames = [...]string{
	CmpOpEq:    "==",
	CmpOpNotEq: "!=",
	CmpOpLt:    "<",
	CmpOpLtE:   "<=",
	CmpOpGt:    ">",
	CmpOpGtE:   ">=",
	CmpOpIs:    "is",
	CmpOpIsNot: "is not",
	CmpOpIn:    "in",
	CmpOpNotIn: "not in",
}

func (op CmpOp) String() string {
	if op > 0 && int(op) < len(cmpOpNames) {
		return cmpOpNames[op]
	}
	return "<invalid>"
}
