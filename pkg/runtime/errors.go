package runtime

import "fmt"

// ErrorKind classifies statement failures.
type ErrorKind int

const (
	KindSyntaxViolation ErrorKind = iota + 1
	KindUnrecognizedToken
	KindMalformedExpression
	KindDivisionByZero
	KindIllegalNesting
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntaxViolation:
		return "syntax violation"
	case KindUnrecognizedToken:
		return "unrecognized token"
	case KindMalformedExpression:
		return "malformed expression"
	case KindDivisionByZero:
		return "division by zero"
	case KindIllegalNesting:
		return "illegal nesting"
	default:
		return "error"
	}
}

// Error is raised by the parser and the evaluator. It aborts the statement
// being executed.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Is matches the kind sentinels below, so errors.Is(err, ErrDivisionByZero)
// holds for any division failure regardless of its message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrSyntaxViolation     = &Error{Kind: KindSyntaxViolation}
	ErrUnrecognizedToken   = &Error{Kind: KindUnrecognizedToken}
	ErrMalformedExpression = &Error{Kind: KindMalformedExpression}
	ErrDivisionByZero      = &Error{Kind: KindDivisionByZero}
	ErrIllegalNesting      = &Error{Kind: KindIllegalNesting}
)

// Errorf builds an Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
