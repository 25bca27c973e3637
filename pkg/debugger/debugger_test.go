package debugger

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"

	"confix/interpreter-go/pkg/driver"
	"confix/interpreter-go/pkg/runtime"
)

type script struct {
	lines []string
}

func (s *script) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func runScript(t *testing.T, symbols *runtime.SymbolTable, lines ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	err := New(symbols, &script{lines: lines}, &out).Run()
	return out.String(), err
}

func TestBinary(t *testing.T) {
	cases := map[runtime.Value]string{
		0:                "00000000 00000000 00000000 00000000",
		5:                "00000000 00000000 00000000 00000101",
		0x01020304:       "00000001 00000010 00000011 00000100",
		runtime.MaxValue: "11111111 11111111 11111111 11111111",
	}
	for value, want := range cases {
		if got := Binary(value); got != want {
			t.Fatalf("Binary(%d) = %q, want %q", value, got, want)
		}
	}
}

func TestRunShowAndList(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	symbols.Insert("beta", 2)
	symbols.Insert("alpha", 5)
	out, err := runScript(t, symbols, "1", "alpha", "1", "gamma", "2", "6")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	for _, want := range []string{
		"alpha = 5\n00000000 00000000 00000000 00000101\nZeckendorf: 5\nRoman: V\n",
		`Variable "gamma" is not declared`,
		"alpha = 5\nbeta = 2\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunShowLiteralForms(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	symbols.Insert("year", 1994)
	symbols.Insert("big", 4000000000)
	out, err := runScript(t, symbols, "1", "year", "1", "big", "6")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !strings.Contains(out, "year = 1994\n00000000 00000000 00000111 11001010\nZeckendorf: 1597 377 13 5 2\nRoman: MCMXCIV\n") {
		t.Fatalf("missing literal forms for year:\n%s", out)
	}
	big := out[strings.Index(out, "big = 4000000000"):]
	if strings.Contains(big, "Zeckendorf:") || strings.Contains(big, "Roman:") {
		t.Fatalf("values without a literal form must show binary only:\n%s", big)
	}
}

func TestRunUpdate(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	symbols.Insert("x", 1)
	out, err := runScript(t, symbols, "3", "x", "ff", "3", "x", "zz", "3", "nope", "6")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if v, _ := symbols.Lookup("x"); v != 255 {
		t.Fatalf("x = %d, want 255", v)
	}
	if !strings.Contains(out, "Invalid value") || !strings.Contains(out, `Variable "nope" is not declared`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, ok := symbols.Lookup("nope"); ok {
		t.Fatalf("update declared a new variable")
	}
}

func TestRunDeclareZeckendorf(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	symbols.Insert("taken", 1)
	_, err := runScript(t, symbols, "4", "taken", "bad name", "fresh", "1", "1 2", "8 3 1", "6")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if v, ok := symbols.Lookup("fresh"); !ok || v != 12 {
		t.Fatalf("fresh = %d (%v), want 12", v, ok)
	}
	if v, _ := symbols.Lookup("taken"); v != 1 {
		t.Fatalf("existing variable changed: %d", v)
	}
}

func TestRunDeclareRoman(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	out, err := runScript(t, symbols, "4", "year", "2", "mcmxciv", "4", "bad", "2", "IIII", "4", "other", "9", "6")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if v, _ := symbols.Lookup("year"); v != 1994 {
		t.Fatalf("year = %d, want 1994", v)
	}
	if _, ok := symbols.Lookup("bad"); ok {
		t.Fatalf("invalid numeral declared a variable")
	}
	if _, ok := symbols.Lookup("other"); ok {
		t.Fatalf("unknown value type declared a variable")
	}
	if !strings.Contains(out, "Invalid Roman numeral") || !strings.Contains(out, "Unknown value type") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunDeleteZeroValuedVariable(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	symbols.Insert("zero", 0)
	out, err := runScript(t, symbols, "5", "zero", "5", "zero", "6")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if _, ok := symbols.Lookup("zero"); ok {
		t.Fatalf("zero still bound")
	}
	if !strings.Contains(out, `Variable "zero" deleted`) || !strings.Contains(out, `Variable "zero" is not declared`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestRunQuitAndEOF(t *testing.T) {
	symbols := runtime.NewSymbolTable()
	if _, err := runScript(t, symbols, "bogus", "", "7"); !errors.Is(err, ErrQuit) {
		t.Fatalf("expected ErrQuit, got %v", err)
	}
	if _, err := runScript(t, symbols, "1"); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestBreakpointAnnouncesStatement(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	dbg := New(runtime.NewSymbolTable(), &script{lines: []string{"6"}}, &out)
	if err := dbg.Breakpoint(driver.Statement{Index: 3, Text: "y = 2", Breakpoint: true}); err != nil {
		t.Fatalf("Breakpoint error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Breakpoint before statement 3: y = 2\n") {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}
