package ast

type UnaryOp int

const (
	_ UnaryOp = iota
	// UnaryOpNegate is `-a`
	UnaryOpNegate
	// UnaryOpPlus is `+a`
	UnaryOpPlus
	// UnaryOpNot is `not a`
	UnaryOpNot
	// UnaryOpBitwiseNot is `~a`
	UnaryOpBitwiseNot
)
