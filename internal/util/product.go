package util

import "iter"

// Cartesian yields every combination taking one element from each set, the
// last set varying fastest. Each yielded slice is freshly allocated. No
// sets yield one empty combination; an empty set yields nothing.
func Cartesian[T any](sets [][]T) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for _, s := range sets {
			if len(s) == 0 {
				return
			}
		}
		idx := make([]int, len(sets))
		for {
			combo := make([]T, len(sets))
			for i, j := range idx {
				combo[i] = sets[i][j]
			}
			if !yield(combo) {
				return
			}
			// odometer step
			i := len(idx) - 1
			for ; i >= 0; i-- {
				idx[i]++
				if idx[i] < len(sets[i]) {
					break
				}
				idx[i] = 0
			}
			if i < 0 {
				return
			}
		}
	}
}

// CartesianLen is the size of the product of sets.
func CartesianLen[T any](sets [][]T) int {
	n := 1
	for _, s := range sets {
		n *= len(s)
	}
	return n
}
