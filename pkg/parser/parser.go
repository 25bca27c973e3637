package parser

import (
	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/syntax"
)

// Parser turns statement text into AST nodes for one syntax configuration.
// Nested call units are parsed recursively into subtrees; nothing is
// evaluated while parsing.
type Parser struct {
	syntax *syntax.Config
}

// New constructs a parser bound to cfg. A nil cfg selects syntax.Default().
func New(cfg *syntax.Config) *Parser {
	if cfg == nil {
		cfg = syntax.Default()
	}
	return &Parser{syntax: cfg}
}

// Syntax returns the configuration the parser was built with.
func (p *Parser) Syntax() *syntax.Config {
	return p.syntax
}

// ParseExpression parses a full expression: tokenize, convert to postfix,
// fold into a tree.
func (p *Parser) ParseExpression(src string) (ast.Expression, error) {
	tokens, err := p.Tokenize(src)
	if err != nil {
		return nil, err
	}
	postfix, err := ToPostfix(tokens)
	if err != nil {
		return nil, err
	}
	return BuildTree(postfix)
}
