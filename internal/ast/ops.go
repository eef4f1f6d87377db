package ast

type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNe
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
)

var binaryOpText = [...]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
	OpEq:  "==",
	OpNe:  "!=",
	OpLt:  "<",
	OpGt:  ">",
	OpLe:  "<=",
	OpGe:  ">=",
	OpAnd: "&&",
	OpOr:  "||",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

func (op BinaryOp) IsArithmetic() bool { return op <= OpMod }
func (op BinaryOp) IsComparison() bool { return op >= OpEq && op <= OpGe }
func (op BinaryOp) IsLogical() bool    { return op == OpAnd || op == OpOr }

type UnaryOp uint8

const (
	OpNeg UnaryOp = iota // -x
	OpNot                // !x
)

func (op UnaryOp) String() string {
	if op == OpNot {
		return "!"
	}
	return "-"
}
