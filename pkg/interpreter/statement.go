package interpreter

import (
	"errors"
	"fmt"
	"strings"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/driver"
	"confix/interpreter-go/pkg/runtime"
)

// Result describes a completed statement.
type Result struct {
	Target   string
	Value    runtime.Value
	Assigned bool
}

// ExecuteStatement parses and runs one comment-free statement. A failed
// statement leaves the symbol table untouched.
func (i *Interpreter) ExecuteStatement(src string) (Result, error) {
	stmt, err := i.parser.ParseStatement(src)
	if err != nil {
		return Result{}, err
	}
	return i.Execute(stmt)
}

// Execute runs a parsed statement.
func (i *Interpreter) Execute(stmt ast.Statement) (Result, error) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		var (
			value runtime.Value
			err   error
		)
		if call, ok := s.Value.(*ast.CallExpression); ok && call.Operator == ast.OpInput {
			value, err = i.readInput(s.Target)
		} else {
			value, err = i.Evaluate(s.Value)
		}
		if err != nil {
			return Result{}, err
		}
		i.symbols.Insert(s.Target, value)
		return Result{Target: s.Target, Value: value, Assigned: true}, nil
	case *ast.ExpressionStatement:
		value, err := i.Evaluate(s.Expression)
		if err != nil {
			return Result{}, err
		}
		return Result{Value: value}, nil
	default:
		return Result{}, fmt.Errorf("interpreter: unsupported statement %T", stmt)
	}
}

var errNoInput = errors.New("no input source configured")

func (i *Interpreter) readInput(target string) (runtime.Value, error) {
	if i.input == nil {
		return 0, fmt.Errorf("input for %s: %w", target, errNoInput)
	}
	line, err := i.input.Prompt(fmt.Sprintf("Enter value for %s: ", target))
	if err != nil {
		return 0, fmt.Errorf("input for %s: %w", target, err)
	}
	value, err := driver.ParseInBase(line, i.bases.Input)
	if err != nil {
		return 0, runtime.Errorf(runtime.KindUnrecognizedToken, "input for %s: %q is not a base-%d number", target, strings.TrimSpace(line), i.bases.Input)
	}
	return value, nil
}
