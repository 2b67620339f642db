package ds

import (
	"golang.org/x/exp/constraints"
)

func MakeRange[T constraints.Ordered](start, end, step T) []T {
	sequence := make([]T, 0)
	for i := start; i < end; i += step {
		sequence = append(sequence, i)
	}
	return sequence
}
