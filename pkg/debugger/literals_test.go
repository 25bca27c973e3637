package debugger

import (
	"testing"

	"confix/interpreter-go/pkg/runtime"
)

func TestParseRoman(t *testing.T) {
	cases := map[string]runtime.Value{
		"I":         1,
		"iv":        4,
		"IX":        9,
		"XLII":      42,
		"MCMXCIV":   1994,
		"MMMCMXCIX": 3999,
	}
	for text, want := range cases {
		got, err := ParseRoman(text)
		if err != nil {
			t.Fatalf("ParseRoman(%q) error: %v", text, err)
		}
		if got != want {
			t.Fatalf("ParseRoman(%q) = %d, want %d", text, got, want)
		}
	}
	for _, bad := range []string{"", "IIII", "IM", "VX", "MMMM", "ABC", "IIIIIIIIIIIX"} {
		if _, err := ParseRoman(bad); err == nil {
			t.Fatalf("ParseRoman(%q) succeeded", bad)
		}
	}
}

func TestRomanRoundTrip(t *testing.T) {
	for v := runtime.Value(1); v <= MaxRoman; v++ {
		got, err := ParseRoman(FormatRoman(v))
		if err != nil || got != v {
			t.Fatalf("round trip of %d via %q = %d, %v", v, FormatRoman(v), got, err)
		}
	}
	if FormatRoman(0) != "" || FormatRoman(MaxRoman+1) != "" {
		t.Fatalf("expected no numeral outside 1-%d", MaxRoman)
	}
}

func TestParseZeckendorf(t *testing.T) {
	cases := map[string]runtime.Value{
		"1":        1,
		"8 3 1":    12,
		"  21  5 ": 26,
		"832040 1": 832041,
	}
	for text, want := range cases {
		got, err := ParseZeckendorf(text)
		if err != nil {
			t.Fatalf("ParseZeckendorf(%q) error: %v", text, err)
		}
		if got != want {
			t.Fatalf("ParseZeckendorf(%q) = %d, want %d", text, got, want)
		}
	}
	for _, bad := range []string{"", "4", "1 2", "5 8", "3 3", "x", "1346269", "-1"} {
		if _, err := ParseZeckendorf(bad); err == nil {
			t.Fatalf("ParseZeckendorf(%q) succeeded", bad)
		}
	}
}

func TestZeckendorfRoundTrip(t *testing.T) {
	for v := runtime.Value(1); v < 5000; v++ {
		text, ok := FormatZeckendorf(v)
		if !ok {
			t.Fatalf("FormatZeckendorf(%d) failed", v)
		}
		got, err := ParseZeckendorf(text)
		if err != nil || got != v {
			t.Fatalf("round trip of %d via %q = %d, %v", v, text, got, err)
		}
	}
	if _, ok := FormatZeckendorf(0); ok {
		t.Fatalf("zero has no representation")
	}
	if _, ok := FormatZeckendorf(runtime.MaxValue); ok {
		t.Fatalf("MaxValue needs terms above %d", MaxFibonacciTerm)
	}
}
