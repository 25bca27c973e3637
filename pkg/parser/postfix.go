package parser

import (
	"fmt"

	"github.com/edwingeng/deque"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/runtime"
)

var precedence = map[ast.Operator]int{
	ast.OpAdd:  1,
	ast.OpSub:  1,
	ast.OpXor:  1,
	ast.OpAnd:  1,
	ast.OpOr:   1,
	ast.OpMult: 2,
	ast.OpDiv:  2,
	ast.OpRem:  2,
	ast.OpPow:  3,
}

// Precedence returns the binding strength of a binary operator. Asking for
// any other operator is a programming error.
func Precedence(op ast.Operator) int {
	p, ok := precedence[op]
	if !ok {
		panic(fmt.Sprintf("parser: no precedence for operator %s", op))
	}
	return p
}

// ToPostfix reorders an infix token sequence into reverse Polish order
// (shunting-yard). Every operator is left-associative: an operator on the
// stack with greater or equal precedence is emitted before the new one is
// pushed, so pow chains evaluate left to right as well.
func ToPostfix(tokens []Token) ([]Token, error) {
	stack := deque.NewDeque()
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		switch tok.Kind {
		case TokenOperand:
			out = append(out, tok)
		case TokenLeftParen:
			stack.PushBack(tok)
		case TokenRightParen:
			for {
				if stack.Empty() {
					return nil, runtime.Errorf(runtime.KindMalformedExpression, "unbalanced parentheses: unexpected )")
				}
				top := stack.PopBack().(Token)
				if top.Kind == TokenLeftParen {
					break
				}
				out = append(out, top)
			}
		case TokenOperator:
			for !stack.Empty() {
				top := stack.Back().(Token)
				if top.Kind != TokenOperator || Precedence(top.Operator) < Precedence(tok.Operator) {
					break
				}
				out = append(out, stack.PopBack().(Token))
			}
			stack.PushBack(tok)
		}
	}
	for !stack.Empty() {
		top := stack.PopBack().(Token)
		if top.Kind == TokenLeftParen {
			return nil, runtime.Errorf(runtime.KindMalformedExpression, "unbalanced parentheses: missing )")
		}
		out = append(out, top)
	}
	return out, nil
}
