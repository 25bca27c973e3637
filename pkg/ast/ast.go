package ast

type NodeType string

const (
	NodeName                NodeType = "Name"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeCallExpression      NodeType = "CallExpression"
	NodeAssignmentStatement NodeType = "AssignmentStatement"
	NodeExpressionStatement NodeType = "ExpressionStatement"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

// Name is a bare token. Whether it denotes a variable or a literal is
// decided at evaluation time against the symbol table and the assignment base.
type Name struct {
	nodeImpl
	expressionMarker

	Text string
}

func NewName(text string) *Name {
	return &Name{nodeImpl: newNodeImpl(NodeName), Text: text}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker

	Operator Operator
	Left     Expression
	Right    Expression
}

func NewBinaryExpression(operator Operator, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// CallForm records where the operator token sat relative to its operands.
type CallForm string

const (
	CallPrefix  CallForm = "prefix"
	CallPostfix CallForm = "postfix"
)

type CallExpression struct {
	nodeImpl
	expressionMarker

	Operator  Operator
	Arguments []Expression
	// Sources holds the trimmed source text of each argument.
	Sources []string
	Form    CallForm
}

func NewCallExpression(operator Operator, args []Expression, sources []string, form CallForm) *CallExpression {
	return &CallExpression{nodeImpl: newNodeImpl(NodeCallExpression), Operator: operator, Arguments: args, Sources: sources, Form: form}
}

type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target string
	Value  Expression
	Source string
}

func NewAssignmentStatement(target string, value Expression, source string) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignmentStatement), Target: target, Value: value, Source: source}
}

type ExpressionStatement struct {
	nodeImpl
	statementMarker

	Expression Expression
	Source     string
}

func NewExpressionStatement(expr Expression, source string) *ExpressionStatement {
	return &ExpressionStatement{nodeImpl: newNodeImpl(NodeExpressionStatement), Expression: expr, Source: source}
}

// Walk visits expr and every nested expression depth first, parents before
// children. Returning false from visit skips the node's children.
func Walk(expr Expression, visit func(Expression) bool) {
	if expr == nil || !visit(expr) {
		return
	}
	switch n := expr.(type) {
	case *BinaryExpression:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *CallExpression:
		for _, arg := range n.Arguments {
			Walk(arg, visit)
		}
	}
}
