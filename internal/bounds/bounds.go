// Package bounds contains overflow-safe helpers for element counts and ranges.
package bounds

import "math"

// Add adds a and b, returning ok = false when the result would overflow int.
func Add(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// Mul multiplies the non-negative a and b, returning ok = false when the result would overflow
// int or either operand is negative.
func Mul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// Range reports whether [start, start+size) lies within [0, length).
func Range(length, start, size int) bool {
	if start < 0 || size < 0 || start > length {
		return false
	}
	end, ok := Add(start, size)
	return ok && end <= length
}
