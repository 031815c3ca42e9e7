package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrOverflow is returned when a result does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// AddInt returns a+b for non-negative operands, or ErrOverflow.
func AddInt(a, b int) (int, error) {
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("%w: %d + %d (negative operand)", ErrOverflow, a, b)
	}
	if a > math.MaxInt-b {
		return 0, fmt.Errorf("%w: %d + %d exceeds max int", ErrOverflow, a, b)
	}
	return a + b, nil
}

// DoubleInt returns 2*v for a non-negative v, or ErrOverflow.
func DoubleInt(v int) (int, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: cannot double negative %d", ErrOverflow, v)
	}
	if v > math.MaxInt/2 {
		return 0, fmt.Errorf("%w: doubling %d exceeds max int", ErrOverflow, v)
	}
	return v * 2, nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d cannot be converted to int (too large)", ErrOverflow, v)
	}
	return int(v), nil
}

// IsPowerOfTwo reports whether v is a positive power of two.
func IsPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
