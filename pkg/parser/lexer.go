package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"confix/interpreter-go/pkg/ast"
	"confix/interpreter-go/pkg/runtime"
	"confix/interpreter-go/pkg/syntax"
)

// TokenKind tags the Token union.
type TokenKind int

const (
	TokenOperand TokenKind = iota
	TokenOperator
	TokenLeftParen
	TokenRightParen
)

func (k TokenKind) String() string {
	switch k {
	case TokenOperand:
		return "operand"
	case TokenOperator:
		return "operator"
	case TokenLeftParen:
		return "("
	case TokenRightParen:
		return ")"
	default:
		return "unknown"
	}
}

// Token is one element of a flat expression. Operand tokens carry the
// subtree they stand for: a bare name or an already parsed call unit.
type Token struct {
	Kind     TokenKind
	Text     string
	Operator ast.Operator
	Expr     ast.Expression
}

type scanner struct {
	p      *Parser
	src    string
	pos    int
	depth  int
	buf    strings.Builder
	tokens []Token
}

// Tokenize scans one expression into a flat token sequence. Balanced
// parenthetical runs become call or group units whose arguments are parsed
// recursively.
func (p *Parser) Tokenize(src string) ([]Token, error) {
	s := &scanner{p: p, src: strings.TrimSpace(src)}
	if err := s.run(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		r, width := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += width

		switch {
		case unicode.IsSpace(r):
			if s.depth > 0 {
				s.buf.WriteRune(r)
				continue
			}
			if err := s.flush(); err != nil {
				return err
			}
		case r == '(':
			s.buf.WriteRune(r)
			s.depth++
		case r == ')':
			if s.depth == 0 {
				if err := s.flush(); err != nil {
					return err
				}
				s.tokens = append(s.tokens, Token{Kind: TokenRightParen, Text: ")"})
				continue
			}
			s.buf.WriteRune(r)
			s.depth--
			if s.depth == 0 {
				unit := s.buf.String()
				s.buf.Reset()
				if err := s.unit(unit); err != nil {
					return err
				}
			}
		default:
			if s.depth == 0 && s.buf.Len() == 0 && isSymbol(r) && s.pos < len(s.src) {
				next, _ := utf8.DecodeRuneInString(s.src[s.pos:])
				if isSymbol(next) && !s.p.syntax.HasAliasPrefix(string(r)+string(next)) {
					if err := s.bare(string(r)); err != nil {
						return err
					}
					continue
				}
			}
			s.buf.WriteRune(r)
		}
	}
	if s.depth > 0 {
		return runtime.Errorf(runtime.KindMalformedExpression, "unbalanced parentheses in %q: missing )", s.src)
	}
	return s.flush()
}

// isSymbol reports characters that cannot appear in a variable name.
func isSymbol(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsSpace(r) && r != '_' && r != '(' && r != ')'
}

func (s *scanner) flush() error {
	text := s.buf.String()
	s.buf.Reset()
	if text == "" {
		return nil
	}
	return s.bare(text)
}

// bare classifies a token found outside any parenthetical unit.
func (s *scanner) bare(text string) error {
	cfg := s.p.syntax
	op, ok := cfg.Lookup(text)
	if !ok {
		s.tokens = append(s.tokens, Token{Kind: TokenOperand, Text: text, Expr: ast.NewName(text)})
		return nil
	}
	switch {
	case op.IsBinary():
		if cfg.Binary() != syntax.FormInfix {
			return runtime.Errorf(runtime.KindSyntaxViolation, "operator %q between operands requires %s syntax, configured %s", text, syntax.FormInfix, cfg.Binary())
		}
		s.tokens = append(s.tokens, Token{Kind: TokenOperator, Text: text, Operator: op})
		return nil
	case op == ast.OpAssign:
		return runtime.Errorf(runtime.KindMalformedExpression, "unexpected %q inside an expression", text)
	default:
		return runtime.Errorf(runtime.KindSyntaxViolation, "operator %q must be applied with %s syntax", text, cfg.Unary())
	}
}

// unit handles a balanced run ending at the current position: either
// "alias(arg, ...)" or "(arg, ...)" optionally followed by an operator alias.
func (s *scanner) unit(text string) error {
	cfg := s.p.syntax
	var name, inner string
	if text[0] != '(' {
		open := strings.IndexByte(text, '(')
		name = text[:open]
		inner = text[open+1 : len(text)-1]
	} else {
		inner = text[1 : len(text)-1]
	}
	args := splitArguments(inner)

	var op ast.Operator
	form := ast.CallPrefix
	if name != "" {
		var ok bool
		op, ok = cfg.Lookup(name)
		if !ok {
			return runtime.Errorf(runtime.KindUnrecognizedToken, "unknown operator %q", name)
		}
		if op == ast.OpAssign {
			return runtime.Errorf(runtime.KindMalformedExpression, "%q cannot be called", name)
		}
		if cfg.FormOf(op) != syntax.FormPrefix {
			return runtime.Errorf(runtime.KindSyntaxViolation, "%s(...) requires %s syntax, configured %s", name, syntax.FormPrefix, cfg.FormOf(op))
		}
	} else {
		rest := s.src[s.pos:]
		switch {
		case len(args) <= 1:
			found, ok := cfg.MatchPrefix(rest, cfg.UnaryOperators())
			if !ok {
				if len(args) == 0 {
					return runtime.Errorf(runtime.KindMalformedExpression, "empty parentheses")
				}
				expr, err := s.p.ParseExpression(args[0])
				if err != nil {
					return err
				}
				s.tokens = append(s.tokens, Token{Kind: TokenOperand, Text: text, Expr: expr})
				return nil
			}
			if cfg.Unary() != syntax.FormPostfix {
				return runtime.Errorf(runtime.KindSyntaxViolation, "(...)%s requires %s syntax, configured %s", cfg.Alias(found), syntax.FormPostfix, cfg.Unary())
			}
			op = found
		default:
			if cfg.Binary() != syntax.FormPostfix {
				return runtime.Errorf(runtime.KindSyntaxViolation, "argument list %q requires %s syntax, configured %s", text, syntax.FormPostfix, cfg.Binary())
			}
			found, ok := cfg.MatchPrefix(rest, cfg.BinaryOperators())
			if !ok {
				return runtime.Errorf(runtime.KindMalformedExpression, "argument list %q is not followed by an operator", text)
			}
			op = found
		}
		name = cfg.Alias(op)
		s.pos += len(name)
		text += name
		form = ast.CallPostfix
	}

	if len(args) != op.Arity() {
		return runtime.Errorf(runtime.KindMalformedExpression, "%s takes %d operand(s), got %d", name, op.Arity(), len(args))
	}
	exprs := make([]ast.Expression, len(args))
	for i, arg := range args {
		expr, err := s.p.ParseExpression(arg)
		if err != nil {
			return err
		}
		exprs[i] = expr
	}
	s.tokens = append(s.tokens, Token{Kind: TokenOperand, Text: text, Expr: ast.NewCallExpression(op, exprs, args, form)})
	return nil
}

// splitArguments splits on commas outside nested parentheses. Blank input
// yields no arguments.
func splitArguments(inner string) []string {
	if strings.TrimSpace(inner) == "" {
		return nil
	}
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(inner[start:]))
}
