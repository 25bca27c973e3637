package debugger

import (
	"fmt"
	"strings"

	"confix/interpreter-go/pkg/runtime"
)

var romanDigits = map[rune]runtime.Value{
	'I': 1, 'V': 5, 'X': 10, 'L': 50, 'C': 100, 'D': 500, 'M': 1000,
}

var romanTable = []struct {
	value  runtime.Value
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// MaxRoman is the largest value with a standard numeral.
const MaxRoman = 3999

// ParseRoman reads a numeral in standard subtractive form, case-insensitive.
// Non-canonical spellings such as IIII or IM are rejected.
func ParseRoman(text string) (runtime.Value, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	if s == "" {
		return 0, fmt.Errorf("empty roman numeral")
	}
	var total, prev runtime.Value
	runes := []rune(s)
	for i := len(runes) - 1; i >= 0; i-- {
		value, ok := romanDigits[runes[i]]
		if !ok {
			return 0, fmt.Errorf("invalid roman digit %q in %q", runes[i], s)
		}
		if value < prev {
			total -= value
		} else {
			total += value
			prev = value
		}
	}
	if total == 0 || total > MaxRoman || FormatRoman(total) != s {
		return 0, fmt.Errorf("%q is not a canonical roman numeral", s)
	}
	return total, nil
}

// FormatRoman renders v in standard form. Zero and values above MaxRoman have
// no numeral and yield "".
func FormatRoman(v runtime.Value) string {
	if v == 0 || v > MaxRoman {
		return ""
	}
	var b strings.Builder
	for _, entry := range romanTable {
		for v >= entry.value {
			b.WriteString(entry.symbol)
			v -= entry.value
		}
	}
	return b.String()
}
