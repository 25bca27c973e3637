package ast

// Short constructors used by the parser and by tests.

func N(text string) *Name {
	return NewName(text)
}

func Bin(operator Operator, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Call(operator Operator, args ...Expression) *CallExpression {
	return NewCallExpression(operator, args, nil, CallPrefix)
}

func Assign(target string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(target, value, "")
}

func ExprStmt(expr Expression) *ExpressionStatement {
	return NewExpressionStatement(expr, "")
}
