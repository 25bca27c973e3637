package ast

// Operator is the closed set of canonical operators. Surface tokens are
// mapped onto these through the syntax configuration's alias table.
type Operator int

const (
	OpNot Operator = iota
	OpInput
	OpOutput
	OpAdd
	OpMult
	OpSub
	OpPow
	OpDiv
	OpRem
	OpXor
	OpAnd
	OpOr
	OpAssign

	// OperatorCount is the number of canonical operators.
	OperatorCount = int(OpAssign) + 1
)

var operatorNames = [OperatorCount]string{
	OpNot:    "not",
	OpInput:  "input",
	OpOutput: "output",
	OpAdd:    "add",
	OpMult:   "mult",
	OpSub:    "sub",
	OpPow:    "pow",
	OpDiv:    "div",
	OpRem:    "rem",
	OpXor:    "xor",
	OpAnd:    "and",
	OpOr:     "or",
	OpAssign: "=",
}

// Operators lists every canonical operator in declaration order.
func Operators() []Operator {
	ops := make([]Operator, OperatorCount)
	for i := range ops {
		ops[i] = Operator(i)
	}
	return ops
}

// String returns the canonical name.
func (o Operator) String() string {
	if o < 0 || int(o) >= OperatorCount {
		return "invalid"
	}
	return operatorNames[o]
}

// ParseOperator resolves a canonical operator name.
func ParseOperator(name string) (Operator, bool) {
	for i, candidate := range operatorNames {
		if candidate == name {
			return Operator(i), true
		}
	}
	return 0, false
}

// IsUnary reports whether the operator belongs to the unary syntax family.
func (o Operator) IsUnary() bool {
	switch o {
	case OpNot, OpInput, OpOutput:
		return true
	default:
		return false
	}
}

// IsBinary reports whether the operator belongs to the binary syntax family.
func (o Operator) IsBinary() bool {
	switch o {
	case OpAdd, OpMult, OpSub, OpPow, OpDiv, OpRem, OpXor, OpAnd, OpOr:
		return true
	default:
		return false
	}
}

// Arity is the number of operands a call of this operator takes.
func (o Operator) Arity() int {
	switch {
	case o == OpInput:
		return 0
	case o.IsUnary():
		return 1
	case o.IsBinary():
		return 2
	default:
		return -1
	}
}
