package interpreter

import (
	"fmt"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/runtime"
)

func applyUnary(op ast.Operator, x runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpNot:
		return ^x, nil
	default:
		return 0, fmt.Errorf("interpreter: %s is not a unary arithmetic operator", op)
	}
}

// applyBinary computes left op right. Value is uint32, so add, sub and mult
// wrap modulo 2^32 on their own.
func applyBinary(op ast.Operator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd:
		return left + right, nil
	case ast.OpSub:
		return left - right, nil
	case ast.OpMult:
		return left * right, nil
	case ast.OpPow:
		return power(left, right), nil
	case ast.OpDiv:
		if right == 0 {
			return 0, runtime.Errorf(runtime.KindDivisionByZero, "div(%d, 0)", left)
		}
		return left / right, nil
	case ast.OpRem:
		if right == 0 {
			return 0, runtime.Errorf(runtime.KindDivisionByZero, "rem(%d, 0)", left)
		}
		return left % right, nil
	case ast.OpXor:
		return left ^ right, nil
	case ast.OpAnd:
		return left & right, nil
	case ast.OpOr:
		return left | right, nil
	default:
		return 0, fmt.Errorf("interpreter: %s is not a binary operator", op)
	}
}

// power is square-and-multiply modulo 2^32. power(x, 0) is 1 for every x.
func power(base, exp runtime.Value) runtime.Value {
	result := runtime.Value(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
