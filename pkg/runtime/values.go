package runtime

import "strconv"

// Value is the only runtime type: an unsigned 32-bit integer. Arithmetic
// on it wraps modulo 2^32.
type Value uint32

// MaxValue is the largest representable value.
const MaxValue = Value(^uint32(0))

func (v Value) String() string {
	return strconv.FormatUint(uint64(v), 10)
}
