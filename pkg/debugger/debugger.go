package debugger

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"confix/interpreter-go/pkg/driver"
	"confix/interpreter-go/pkg/runtime"
)

// ErrQuit is returned by Run when the user chooses to stop the interpreter.
var ErrQuit = errors.New("debugger: quit requested")

// LineReader supplies one line of user input for a prompt.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

var (
	heading = color.New(color.Bold, color.FgCyan).SprintFunc()
	warn    = color.New(color.FgYellow).SprintFunc()
	red     = color.New(color.FgRed).SprintFunc()
)

const menu = `1) Show a variable in binary, Zeckendorf and Roman form
2) List all variables
3) Update an existing variable from a hexadecimal value
4) Declare a new variable (Zeckendorf or Roman literal)
5) Delete a variable
6) Continue execution
7) Quit the interpreter`

// Debugger is the interactive menu shown at breakpoints. It edits the
// interpreter's symbol table in place.
type Debugger struct {
	symbols *runtime.SymbolTable
	in      LineReader
	out     io.Writer
}

func New(symbols *runtime.SymbolTable, in LineReader, out io.Writer) *Debugger {
	return &Debugger{symbols: symbols, in: in, out: out}
}

// Breakpoint announces stmt and runs the menu. Its signature matches the
// program runner's breakpoint hook.
func (d *Debugger) Breakpoint(stmt driver.Statement) error {
	if stmt.Text != "" {
		fmt.Fprintf(d.out, "%s before statement %d: %s\n", heading("Breakpoint"), stmt.Index, stmt.Text)
	} else {
		fmt.Fprintf(d.out, "%s at statement %d\n", heading("Breakpoint"), stmt.Index)
	}
	return d.Run()
}

// Run handles menu commands until the user continues (nil) or quits
// (ErrQuit). A failing reader ends the session with its error.
func (d *Debugger) Run() error {
	fmt.Fprintln(d.out, heading("Debugger commands:"))
	fmt.Fprintln(d.out, menu)
	for {
		command, err := d.ask("DEBUG> ")
		if err != nil {
			return err
		}
		switch strings.ToLower(command) {
		case "1":
			err = d.show()
		case "2":
			d.list()
		case "3":
			err = d.update()
		case "4":
			err = d.declare()
		case "5":
			err = d.remove()
		case "6":
			return nil
		case "7":
			return ErrQuit
		case "":
		default:
			fmt.Fprintf(d.out, "%s %q, choose 1-7\n", warn("Unknown command"), command)
		}
		if err != nil {
			return err
		}
	}
}

func (d *Debugger) ask(prompt string) (string, error) {
	line, err := d.in.Prompt(prompt)
	if err != nil {
		return "", fmt.Errorf("debugger: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Binary renders v as 32 binary digits in groups of eight.
func Binary(v runtime.Value) string {
	bits := fmt.Sprintf("%032b", uint32(v))
	groups := make([]string, 0, 4)
	for i := 0; i < len(bits); i += 8 {
		groups = append(groups, bits[i:i+8])
	}
	return strings.Join(groups, " ")
}

func (d *Debugger) show() error {
	name, err := d.ask("Variable name: ")
	if err != nil {
		return err
	}
	value, ok := d.symbols.Lookup(name)
	if !ok {
		fmt.Fprintf(d.out, "%s %q is not declared\n", warn("Variable"), name)
		return nil
	}
	fmt.Fprintf(d.out, "%s = %d\n%s\n", name, value, Binary(value))
	if zeck, ok := FormatZeckendorf(value); ok {
		fmt.Fprintf(d.out, "Zeckendorf: %s\n", zeck)
	}
	if roman := FormatRoman(value); roman != "" {
		fmt.Fprintf(d.out, "Roman: %s\n", roman)
	}
	return nil
}

func (d *Debugger) list() {
	names := d.symbols.Names()
	if len(names) == 0 {
		fmt.Fprintln(d.out, "No variables declared")
		return
	}
	for _, name := range names {
		value, _ := d.symbols.Lookup(name)
		fmt.Fprintf(d.out, "%s = %d\n", name, value)
	}
}

func (d *Debugger) update() error {
	name, err := d.ask("Variable name: ")
	if err != nil {
		return err
	}
	if _, ok := d.symbols.Lookup(name); !ok {
		fmt.Fprintf(d.out, "%s %q is not declared\n", warn("Variable"), name)
		return nil
	}
	text, err := d.ask("Hexadecimal value: ")
	if err != nil {
		return err
	}
	value, err := driver.ParseInBase(text, 16)
	if err != nil {
		fmt.Fprintf(d.out, "%s: %v\n", red("Invalid value"), err)
		return nil
	}
	d.symbols.Insert(name, value)
	fmt.Fprintf(d.out, "Variable %q updated to %d\n", name, value)
	return nil
}

func (d *Debugger) declare() error {
	name, err := d.ask("New variable name: ")
	if err != nil {
		return err
	}
	for {
		if !validName(name) {
			fmt.Fprintf(d.out, "%s %q, use letters, digits or _\n", warn("Invalid variable name"), name)
		} else if _, exists := d.symbols.Lookup(name); exists {
			fmt.Fprintf(d.out, "%s, enter another name\n", warn("Variable already declared"))
		} else {
			break
		}
		if name, err = d.ask("New variable name: "); err != nil {
			return err
		}
	}

	kind, err := d.ask("Value type, Zeckendorf (1) or Roman (2): ")
	if err != nil {
		return err
	}
	var value runtime.Value
	switch kind {
	case "1":
		for {
			text, err := d.ask("Zeckendorf representation: ")
			if err != nil {
				return err
			}
			value, err = ParseZeckendorf(text)
			if err == nil {
				break
			}
			fmt.Fprintf(d.out, "%s: %v, try again\n", red("Invalid Zeckendorf representation"), err)
		}
	case "2":
		text, err := d.ask("Roman numeral: ")
		if err != nil {
			return err
		}
		value, err = ParseRoman(text)
		if err != nil {
			fmt.Fprintf(d.out, "%s: %v\n", red("Invalid Roman numeral"), err)
			return nil
		}
	default:
		fmt.Fprintf(d.out, "%s %q\n", warn("Unknown value type"), kind)
		return nil
	}
	d.symbols.Insert(name, value)
	fmt.Fprintf(d.out, "Variable %s declared with value %d\n", name, value)
	return nil
}

func (d *Debugger) remove() error {
	name, err := d.ask("Variable name: ")
	if err != nil {
		return err
	}
	if _, ok := d.symbols.Lookup(name); !ok {
		fmt.Fprintf(d.out, "%s %q is not declared\n", warn("Variable"), name)
		return nil
	}
	d.symbols.Delete(name)
	fmt.Fprintf(d.out, "Variable %q deleted\n", name)
	return nil
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
