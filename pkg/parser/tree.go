package parser

import (
	"github.com/edwingeng/deque"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/runtime"
)

// BuildTree folds a postfix sequence into an expression tree with an
// explicit operand stack. For a binary operator the first operand popped is
// the right-hand side.
func BuildTree(postfix []Token) (ast.Expression, error) {
	stack := deque.NewDeque()
	for _, tok := range postfix {
		switch tok.Kind {
		case TokenOperand:
			stack.PushBack(tok.Expr)
		case TokenOperator:
			if stack.Len() < 2 {
				return nil, runtime.Errorf(runtime.KindMalformedExpression, "operator %q is missing an operand", tok.Text)
			}
			right := stack.PopBack().(ast.Expression)
			left := stack.PopBack().(ast.Expression)
			stack.PushBack(ast.NewBinaryExpression(tok.Operator, left, right))
		default:
			return nil, runtime.Errorf(runtime.KindMalformedExpression, "unexpected %s in postfix sequence", tok.Kind)
		}
	}
	switch n := stack.Len(); n {
	case 0:
		return nil, runtime.Errorf(runtime.KindMalformedExpression, "empty expression")
	case 1:
		return stack.PopBack().(ast.Expression), nil
	default:
		return nil, runtime.Errorf(runtime.KindMalformedExpression, "%d operands are not joined by operators", n)
	}
}
