// Package angle validates page rotation deltas and combines them with a
// page's existing rotation state.
package angle

import (
	"strconv"
)

// Acceptable lists the rotation deltas a page may be rotated by, in degrees.
var Acceptable = []int{0, 90, 180, 270, -90, -180, -270}

// IsAcceptable reports whether angle is one of the acceptable rotation deltas.
func IsAcceptable(angle int) bool {
	for _, a := range Acceptable {
		if a == angle {
			return true
		}
	}
	return false
}

// IsAcceptableText parses text as a signed decimal integer and reports whether
// the value is acceptable. Unparseable text is not acceptable.
func IsAcceptableText(text string) bool {
	n, err := strconv.Atoi(text)
	if err != nil {
		return false
	}
	return IsAcceptable(n)
}

// Reduce returns x modulo 360 with the sign of x, so Reduce(-450) is -90
// and Reduce(450) is 90. Results are not shifted into [0, 360).
func Reduce(x int) int {
	// Go's % truncates toward zero
	return x % 360
}

// Combine applies delta to an existing rotation. A page with no rotation
// entry takes delta as-is; otherwise the sum is reduced.
func Combine(existing *int, delta int) int {
	if existing == nil {
		return delta
	}
	return Reduce(*existing + delta)
}
