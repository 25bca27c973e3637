package interpreter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/driver"
	"confix/interpreter-go/pkg/runtime"
)

// Evaluate computes the value of an expression tree. Input calls are only
// meaningful as the value of an assignment and are rejected here.
func (i *Interpreter) Evaluate(expr ast.Expression) (runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.Name:
		return i.resolveName(n.Text)
	case *ast.BinaryExpression:
		left, err := i.Evaluate(n.Left)
		if err != nil {
			return 0, err
		}
		right, err := i.Evaluate(n.Right)
		if err != nil {
			return 0, err
		}
		return applyBinary(n.Operator, left, right)
	case *ast.CallExpression:
		return i.evaluateCall(n)
	case nil:
		return 0, runtime.Errorf(runtime.KindMalformedExpression, "empty expression")
	default:
		return 0, fmt.Errorf("interpreter: unsupported expression %T", expr)
	}
}

func (i *Interpreter) evaluateCall(call *ast.CallExpression) (runtime.Value, error) {
	if len(call.Arguments) != call.Operator.Arity() {
		return 0, runtime.Errorf(runtime.KindMalformedExpression, "%s takes %d operand(s), got %d", i.syntax.Alias(call.Operator), call.Operator.Arity(), len(call.Arguments))
	}
	switch call.Operator {
	case ast.OpInput:
		return 0, runtime.Errorf(runtime.KindIllegalNesting, "%s must be the value of an assignment", i.syntax.Alias(ast.OpInput))
	case ast.OpOutput:
		value, err := i.Evaluate(call.Arguments[0])
		if err != nil {
			return 0, err
		}
		if err := i.output(outputLabel(call), value); err != nil {
			return 0, fmt.Errorf("output: %w", err)
		}
		return value, nil
	}

	args := make([]runtime.Value, len(call.Arguments))
	for idx, arg := range call.Arguments {
		value, err := i.Evaluate(arg)
		if err != nil {
			return 0, err
		}
		args[idx] = value
	}
	if len(args) == 1 {
		return applyUnary(call.Operator, args[0])
	}
	return applyBinary(call.Operator, args[0], args[1])
}

func outputLabel(call *ast.CallExpression) string {
	if len(call.Sources) > 0 {
		return call.Sources[0]
	}
	if name, ok := call.Arguments[0].(*ast.Name); ok {
		return name.Text
	}
	return ""
}

// resolveName looks the token up as a variable first and falls back to a
// literal in the assignment base.
func (i *Interpreter) resolveName(text string) (runtime.Value, error) {
	if value, ok := i.symbols.Lookup(text); ok {
		return value, nil
	}
	if strings.Contains(text, ".") {
		if _, err := strconv.ParseFloat(text, 64); err == nil {
			return 0, runtime.Errorf(runtime.KindUnrecognizedToken, "real literal %q is not supported", text)
		}
	}
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return 0, runtime.Errorf(runtime.KindUnrecognizedToken, "unknown token %q", text)
		}
	}
	value, err := driver.ParseInBase(text, i.bases.Assign)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, runtime.Errorf(runtime.KindUnrecognizedToken, "literal %q does not fit in 32 bits", text)
		}
		return 0, runtime.Errorf(runtime.KindUnrecognizedToken, "%q is neither a variable nor a base-%d literal", text, i.bases.Assign)
	}
	return value, nil
}
