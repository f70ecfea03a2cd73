package utils

import "cmp"

// ArgMax returns the index of the first maximum in values, or -1 when values is empty.
func ArgMax[T cmp.Ordered](values []T) int {
	best := -1
	for i, v := range values {
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
