package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"confix/interpreter-go/pkg/runtime"
)

// MaxFibonacciTerm bounds the terms accepted in a Zeckendorf literal.
const MaxFibonacciTerm = 1_000_000

// fibonacci holds 1, 2, 3, 5, ... up to MaxFibonacciTerm, and fibIndex maps
// each term to its position.
var fibonacci, fibIndex = buildFibonacci(MaxFibonacciTerm)

func buildFibonacci(limit uint64) ([]uint64, map[uint64]int) {
	terms := []uint64{1, 2}
	for {
		next := terms[len(terms)-1] + terms[len(terms)-2]
		if next > limit {
			break
		}
		terms = append(terms, next)
	}
	index := make(map[uint64]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return terms, index
}

// ParseZeckendorf reads space separated Fibonacci terms and returns their
// sum. Terms must be distinct and no two may be consecutive Fibonacci
// numbers.
func ParseZeckendorf(text string) (runtime.Value, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty zeckendorf representation")
	}
	used := make(map[int]bool, len(fields))
	var sum uint64
	for _, field := range fields {
		term, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number", field)
		}
		idx, ok := fibIndex[term]
		if !ok {
			return 0, fmt.Errorf("%d is not a Fibonacci number up to %d", term, MaxFibonacciTerm)
		}
		if used[idx] {
			return 0, fmt.Errorf("term %d repeats", term)
		}
		used[idx] = true
		sum += term
	}
	for idx := range used {
		if used[idx+1] {
			return 0, fmt.Errorf("terms %d and %d are consecutive Fibonacci numbers", fibonacci[idx], fibonacci[idx+1])
		}
	}
	return runtime.Value(sum), nil
}

// FormatZeckendorf writes v as the greedy sum of non-consecutive Fibonacci
// terms, largest first. It reports false when v needs a term above
// MaxFibonacciTerm or is zero.
func FormatZeckendorf(v runtime.Value) (string, bool) {
	if v == 0 {
		return "", false
	}
	rest := uint64(v)
	var parts []string
	for i := len(fibonacci) - 1; i >= 0 && rest > 0; i-- {
		if fibonacci[i] <= rest {
			parts = append(parts, strconv.FormatUint(fibonacci[i], 10))
			rest -= fibonacci[i]
			i--
		}
	}
	if rest != 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}
