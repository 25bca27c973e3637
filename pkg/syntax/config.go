package syntax

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/ahrtr/gocontainer/set"

	"confix/interpreter-go/pkg/ast"
)

// Placement selects the side of the assignment operator that holds the
// target variable.
type Placement string

const (
	ResultLeft  Placement = "left"
	ResultRight Placement = "right"
)

// Form is a syntax family: where an operator sits relative to its operands.
type Form string

const (
	FormPrefix  Form = "op()"
	FormPostfix Form = "()op"
	FormInfix   Form = "(op)"
)

// IsValid reports whether the form is one of the three families.
func (f Form) IsValid() bool {
	switch f {
	case FormPrefix, FormPostfix, FormInfix:
		return true
	default:
		return false
	}
}

// IsValid reports whether the placement is recognised.
func (p Placement) IsValid() bool {
	return p == ResultLeft || p == ResultRight
}

// Options describes a configuration before validation. Operators missing
// from Aliases keep their canonical name.
type Options struct {
	Placement Placement
	Unary     Form
	Binary    Form
	Aliases   map[ast.Operator]string
}

// Config is the active grammar variant. It is immutable once built.
type Config struct {
	placement Placement
	unary     Form
	binary    Form
	aliases   [ast.OperatorCount]string
	byAlias   map[string]ast.Operator

	unaryOrder  []ast.Operator
	binaryOrder []ast.Operator
}

// ValidationError aggregates configuration failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "syntax: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("syntax validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

const reservedAliasChars = "(),;#[]"

// New validates opts and builds a Config.
func New(opts Options) (*Config, error) {
	if opts.Placement == "" {
		opts.Placement = ResultLeft
	}
	if opts.Unary == "" {
		opts.Unary = FormPrefix
	}
	if opts.Binary == "" {
		opts.Binary = FormPrefix
	}

	var errs ValidationError
	if !opts.Placement.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("unsupported result placement %q", opts.Placement))
	}
	if !opts.Unary.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("unsupported unary syntax %q", opts.Unary))
	} else if opts.Unary == FormInfix {
		errs.Issues = append(errs.Issues, "unary operators support only op() and ()op")
	}
	if !opts.Binary.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("unsupported binary syntax %q", opts.Binary))
	}

	cfg := &Config{
		placement: opts.Placement,
		unary:     opts.Unary,
		binary:    opts.Binary,
		byAlias:   make(map[string]ast.Operator, ast.OperatorCount),
	}
	for op := range opts.Aliases {
		if op < 0 || int(op) >= ast.OperatorCount {
			errs.Issues = append(errs.Issues, fmt.Sprintf("unknown operator %d", op))
		}
	}

	seen := set.New()
	for _, op := range ast.Operators() {
		alias := op.String()
		if custom, ok := opts.Aliases[op]; ok {
			alias = custom
		}
		for _, issue := range validateAlias(alias) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("alias for %s: %s", op, issue))
		}
		if seen.Contains(alias) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("alias %q for %s is already used by %s", alias, op, cfg.byAlias[alias]))
			continue
		}
		seen.Add(alias)
		cfg.aliases[op] = alias
		cfg.byAlias[alias] = op
		switch {
		case op.IsUnary():
			cfg.unaryOrder = append(cfg.unaryOrder, op)
		case op.IsBinary():
			cfg.binaryOrder = append(cfg.binaryOrder, op)
		}
	}
	if len(errs.Issues) > 0 {
		return nil, &errs
	}

	longestFirst := func(ops []ast.Operator) {
		sort.SliceStable(ops, func(a, b int) bool {
			return len(cfg.aliases[ops[a]]) > len(cfg.aliases[ops[b]])
		})
	}
	longestFirst(cfg.unaryOrder)
	longestFirst(cfg.binaryOrder)
	return cfg, nil
}

func validateAlias(alias string) []string {
	if alias == "" {
		return []string{"must not be empty"}
	}
	var issues []string
	allDigits := true
	for _, r := range alias {
		if unicode.IsSpace(r) {
			issues = append(issues, "must not contain whitespace")
			break
		}
		if !unicode.IsDigit(r) {
			allDigits = false
		}
	}
	if strings.ContainsAny(alias, reservedAliasChars) {
		issues = append(issues, fmt.Sprintf("must not contain any of %q", reservedAliasChars))
	}
	if allDigits {
		issues = append(issues, "must not be a number")
	}
	return issues
}

// Default returns left placement, prefix-call syntax for both families and
// canonical names as aliases.
func Default() *Config {
	cfg, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) Placement() Placement { return c.placement }
func (c *Config) Unary() Form          { return c.unary }
func (c *Config) Binary() Form         { return c.binary }

// FormOf returns the syntax family governing op.
func (c *Config) FormOf(op ast.Operator) Form {
	if op.IsUnary() {
		return c.unary
	}
	return c.binary
}

// Alias returns the surface token for op.
func (c *Config) Alias(op ast.Operator) string {
	return c.aliases[op]
}

// Lookup resolves a surface token to its operator.
func (c *Config) Lookup(token string) (ast.Operator, bool) {
	op, ok := c.byAlias[token]
	return op, ok
}

// UnaryOperators lists the unary operators, longest alias first.
func (c *Config) UnaryOperators() []ast.Operator {
	return append([]ast.Operator(nil), c.unaryOrder...)
}

// BinaryOperators lists the binary operators, longest alias first.
func (c *Config) BinaryOperators() []ast.Operator {
	return append([]ast.Operator(nil), c.binaryOrder...)
}

// MatchPrefix returns the first operator among ops whose alias starts text.
func (c *Config) MatchPrefix(text string, ops []ast.Operator) (ast.Operator, bool) {
	for _, op := range ops {
		if strings.HasPrefix(text, c.aliases[op]) {
			return op, true
		}
	}
	return 0, false
}

// HasAliasPrefix reports whether any alias starts with prefix.
func (c *Config) HasAliasPrefix(prefix string) bool {
	for _, alias := range c.aliases {
		if strings.HasPrefix(alias, prefix) {
			return true
		}
	}
	return false
}

// Options returns a copy of the configuration as Options, with every alias
// filled in.
func (c *Config) Options() Options {
	aliases := make(map[ast.Operator]string, ast.OperatorCount)
	for _, op := range ast.Operators() {
		aliases[op] = c.aliases[op]
	}
	return Options{Placement: c.placement, Unary: c.unary, Binary: c.binary, Aliases: aliases}
}
