package interpreter

import (
	"errors"
	"fmt"

	"confix/interpreter-go/pkg/driver"
)

// StatementError reports a statement that failed during a program run.
type StatementError struct {
	Index int
	Text  string
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (%s): %v", e.Index, e.Text, e.Err)
}

func (e *StatementError) Unwrap() error { return e.Err }

// ErrInterrupted is returned by ExecuteProgram when Interrupted reports true.
var ErrInterrupted = errors.New("interpreter: run interrupted")

// ProgramOptions controls ExecuteProgram.
type ProgramOptions struct {
	// StopOnError ends the run at the first failing statement.
	StopOnError bool
	// Breakpoint runs before every flagged statement. A returned error
	// aborts the run.
	Breakpoint func(stmt driver.Statement) error
	// Interrupted is polled before every statement.
	Interrupted func() bool
}

// ExecuteProgram runs the statements of program in order. Failing statements
// are collected and, unless StopOnError is set, do not stop the run. The
// returned error is set only when a breakpoint hook aborts or the run is
// interrupted.
func (i *Interpreter) ExecuteProgram(program *driver.Program, opts ProgramOptions) ([]*StatementError, error) {
	if program == nil {
		return nil, nil
	}
	var failures []*StatementError
	for _, stmt := range program.Statements {
		if opts.Interrupted != nil && opts.Interrupted() {
			return failures, ErrInterrupted
		}
		if stmt.Breakpoint && opts.Breakpoint != nil {
			if err := opts.Breakpoint(stmt); err != nil {
				return failures, err
			}
		}
		if stmt.Text == "" {
			continue
		}
		if _, err := i.ExecuteStatement(stmt.Text); err != nil {
			failures = append(failures, &StatementError{Index: stmt.Index, Text: stmt.Text, Err: err})
			if opts.StopOnError {
				break
			}
		}
	}
	return failures, nil
}
