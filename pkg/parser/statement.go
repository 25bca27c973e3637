package parser

import (
	"strings"
	"unicode"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/runtime"
	"confix/interpreter-go/pkg/syntax"
)

// ParseStatement parses one comment-free statement. The first occurrence of
// the assignment alias splits it into target and value according to the
// configured result placement.
func (p *Parser) ParseStatement(src string) (ast.Statement, error) {
	text := strings.TrimSpace(src)
	if text == "" {
		return nil, runtime.Errorf(runtime.KindMalformedExpression, "empty statement")
	}

	assign := p.syntax.Alias(ast.OpAssign)
	idx := strings.Index(text, assign)
	if idx < 0 {
		expr, err := p.ParseExpression(text)
		if err != nil {
			return nil, err
		}
		if err := p.checkNesting(expr, false); err != nil {
			return nil, err
		}
		return ast.NewExpressionStatement(expr, text), nil
	}

	target, source := text[:idx], text[idx+len(assign):]
	if p.syntax.Placement() == syntax.ResultRight {
		target, source = source, target
	}
	target = strings.TrimSpace(target)
	source = strings.TrimSpace(source)
	if err := p.checkTarget(target); err != nil {
		return nil, err
	}
	expr, err := p.ParseExpression(source)
	if err != nil {
		return nil, err
	}
	if err := p.checkNesting(expr, true); err != nil {
		return nil, err
	}
	return ast.NewAssignmentStatement(target, expr, source), nil
}

func (p *Parser) checkTarget(target string) error {
	if target == "" {
		return runtime.Errorf(runtime.KindMalformedExpression, "assignment without a target variable")
	}
	for _, r := range target {
		if unicode.IsSpace(r) || r == '(' || r == ')' || r == ',' {
			return runtime.Errorf(runtime.KindMalformedExpression, "invalid assignment target %q", target)
		}
	}
	if _, ok := p.syntax.Lookup(target); ok {
		return runtime.Errorf(runtime.KindSyntaxViolation, "operator %q cannot be assigned to", target)
	}
	return nil
}

// checkNesting enforces where input and output may appear: input only as the
// whole value of an assignment, output only at the root of a statement, and
// neither inside another operator's operands.
func (p *Parser) checkNesting(root ast.Expression, assignment bool) error {
	if call, ok := root.(*ast.CallExpression); ok {
		switch call.Operator {
		case ast.OpInput:
			if !assignment {
				return runtime.Errorf(runtime.KindIllegalNesting, "%s must be the value of an assignment", p.syntax.Alias(ast.OpInput))
			}
			return nil
		case ast.OpOutput:
			return p.forbidIO(call.Arguments[0], "inside "+p.syntax.Alias(ast.OpOutput))
		}
	}
	return p.forbidIO(root, "inside an expression")
}

func (p *Parser) forbidIO(expr ast.Expression, where string) error {
	var found *ast.CallExpression
	ast.Walk(expr, func(node ast.Expression) bool {
		if found != nil {
			return false
		}
		if call, ok := node.(*ast.CallExpression); ok && (call.Operator == ast.OpInput || call.Operator == ast.OpOutput) {
			found = call
			return false
		}
		return true
	})
	if found != nil {
		return runtime.Errorf(runtime.KindIllegalNesting, "%s is not allowed %s", p.syntax.Alias(found.Operator), where)
	}
	return nil
}
