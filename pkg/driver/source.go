package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// BreakpointMarker flags the statement it appears in for the debugger.
const BreakpointMarker = "#BREAKPOINT"

// breakpointSentinel stands in for the marker while # comments are removed.
const breakpointSentinel = "\uE000"

var (
	bracketComment = regexp.MustCompile(`\[[^\[\]]*\]`)
	lineComment    = regexp.MustCompile(`#[^\n]*`)
)

// Program is a source file split into statements.
type Program struct {
	Path       string
	Statements []Statement
}

// Statement is one ;-delimited piece of a program with comments removed.
// Index is 1-based.
type Statement struct {
	Index      int
	Text       string
	Breakpoint bool
}

// StripComments removes [ ... ] comments, innermost first so they nest, then
// # comments up to the end of the line.
func StripComments(src string) string {
	for bracketComment.MatchString(src) {
		src = bracketComment.ReplaceAllStringFunc(src, keepBreakpoint)
	}
	return lineComment.ReplaceAllStringFunc(src, keepBreakpoint)
}

// keepBreakpoint drops a comment but leaves a breakpoint marker found in it.
func keepBreakpoint(comment string) string {
	if strings.Contains(comment, breakpointSentinel) {
		return breakpointSentinel
	}
	return ""
}

// SplitStatements splits comment-free source on ';', trimming each piece and
// dropping empty ones.
func SplitStatements(src string) []string {
	var out []string
	for _, piece := range strings.Split(src, ";") {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// ParseProgram strips comments from src and splits it into statements. A
// breakpoint marker flags the statement it belongs to, also when it sits in
// a comment; a statement left with only the marker is kept with empty text.
func ParseProgram(src string) *Program {
	src = strings.ReplaceAll(src, BreakpointMarker, breakpointSentinel)
	src = StripComments(src)

	program := &Program{}
	for _, piece := range SplitStatements(src) {
		breakpoint := strings.Contains(piece, breakpointSentinel)
		text := strings.TrimSpace(strings.ReplaceAll(piece, breakpointSentinel, ""))
		program.Statements = append(program.Statements, Statement{
			Index:      len(program.Statements) + 1,
			Text:       text,
			Breakpoint: breakpoint,
		})
	}
	return program
}

// LoadProgram reads and parses a program file.
func LoadProgram(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("program: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("program: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", absPath, err)
	}
	program := ParseProgram(string(data))
	program.Path = absPath
	return program, nil
}
