package driver

import (
	"fmt"
	"strconv"
	"strings"

	"confix/interpreter-go/pkg/runtime"
)

const (
	MinBase = 2
	MaxBase = 36
)

// ValidateBase reports whether base is a supported radix.
func ValidateBase(base int) error {
	if base < MinBase || base > MaxBase {
		return fmt.Errorf("base %d out of range %d-%d", base, MinBase, MaxBase)
	}
	return nil
}

// FormatInBase renders v with digits 0-9A-Z. It panics on an unsupported
// base.
func FormatInBase(v runtime.Value, base int) string {
	if err := ValidateBase(base); err != nil {
		panic(err)
	}
	return strings.ToUpper(strconv.FormatUint(uint64(v), base))
}

// ParseInBase parses text as an unsigned 32-bit number in base. Letters are
// accepted in either case. Values above 32 bits fail with an error matching
// strconv.ErrRange.
func ParseInBase(text string, base int) (runtime.Value, error) {
	if err := ValidateBase(base); err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(strings.TrimSpace(text), base, 32)
	if err != nil {
		return 0, fmt.Errorf("parse %q in base %d: %w", strings.TrimSpace(text), base, err)
	}
	return runtime.Value(n), nil
}
