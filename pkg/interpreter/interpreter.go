package interpreter

import (
	"fmt"
	"os"

	"confix/interpreter-go/pkg/driver"
	"confix/interpreter-go/pkg/parser"
	"confix/interpreter-go/pkg/runtime"
	"confix/interpreter-go/pkg/syntax"
)

// LineReader supplies one line of user input for a prompt.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// OutputFunc receives the label and value of every output call.
type OutputFunc func(label string, value runtime.Value) error

// Bases holds the three radices used for literals.
type Bases struct {
	Assign int
	Input  int
	Output int
}

// DefaultBases returns assignment base 16, input and output base 10.
func DefaultBases() Bases {
	return Bases{Assign: 16, Input: 10, Output: 10}
}

func (b Bases) validate() error {
	for _, item := range []struct {
		name string
		base int
	}{{"assign", b.Assign}, {"input", b.Input}, {"output", b.Output}} {
		if err := driver.ValidateBase(item.base); err != nil {
			return fmt.Errorf("interpreter: %s %w", item.name, err)
		}
	}
	return nil
}

// Options configures an Interpreter. Zero bases take their defaults, a nil
// Output prints "label = value" in the output base to stdout.
type Options struct {
	Bases  Bases
	Input  LineReader
	Output OutputFunc
}

// Interpreter executes statements against a symbol table under one syntax
// configuration.
type Interpreter struct {
	syntax  *syntax.Config
	parser  *parser.Parser
	symbols *runtime.SymbolTable
	bases   Bases
	input   LineReader
	output  OutputFunc
}

// New returns an interpreter with an empty symbol table. A nil cfg selects
// the default syntax.
func New(cfg *syntax.Config, opts Options) (*Interpreter, error) {
	if cfg == nil {
		cfg = syntax.Default()
	}
	defaults := DefaultBases()
	if opts.Bases.Assign == 0 {
		opts.Bases.Assign = defaults.Assign
	}
	if opts.Bases.Input == 0 {
		opts.Bases.Input = defaults.Input
	}
	if opts.Bases.Output == 0 {
		opts.Bases.Output = defaults.Output
	}
	if err := opts.Bases.validate(); err != nil {
		return nil, err
	}
	i := &Interpreter{
		syntax:  cfg,
		parser:  parser.New(cfg),
		symbols: runtime.NewSymbolTable(),
		bases:   opts.Bases,
		input:   opts.Input,
		output:  opts.Output,
	}
	if i.output == nil {
		i.output = i.printOutput
	}
	return i, nil
}

func (i *Interpreter) printOutput(label string, value runtime.Value) error {
	_, err := fmt.Fprintf(os.Stdout, "%s = %s\n", label, driver.FormatInBase(value, i.bases.Output))
	return err
}

func (i *Interpreter) Syntax() *syntax.Config        { return i.syntax }
func (i *Interpreter) Symbols() *runtime.SymbolTable { return i.symbols }
func (i *Interpreter) Bases() Bases                  { return i.bases }
