package engine

import "golang.org/x/exp/constraints"

func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
