package sparse

import "golang.org/x/exp/constraints"

// DivRoundUp divides value by divisor, rounding any remainder up
func DivRoundUp[T constraints.Unsigned](value, divisor T) T {
	return (value + divisor - 1) / divisor
}

// AlignUp rounds value up to the next multiple of alignment. Unlike bitmask alignment, alignment
// does not need to be a power of two.
func AlignUp[T constraints.Unsigned](value, alignment T) T {
	return DivRoundUp(value, alignment) * alignment
}

// AlignDown rounds value down to a multiple of alignment
func AlignDown[T constraints.Unsigned](value, alignment T) T {
	return value - value%alignment
}

func max1[T constraints.Unsigned](value T) T {
	if value < 1 {
		return 1
	}
	return value
}

func minOf[T constraints.Unsigned](a, b T) T {
	if a < b {
		return a
	}
	return b
}
