package common

import (
	"gonum.org/v1/gonum/floats"
)

// ArgMax returns the first index holding the maximum value.
func ArgMax(values []float64) int {
	return floats.MaxIdx(values)
}

// ArgMin returns the first index holding the minimum value.
func ArgMin(values []float64) int {
	return floats.MinIdx(values)
}

// AreIdentical reports whether two tallies match element-wise. A nil tally
// (no round completed yet) never matches.
func AreIdentical(lhs, rhs []int) bool {
	if lhs == nil || rhs == nil || len(lhs) != len(rhs) {
		return false
	}
	for i := range lhs {
		if lhs[i] != rhs[i] {
			return false
		}
	}
	return true
}

// CopyTally returns an independent snapshot of a tally.
func CopyTally(tally []int) []int {
	if tally == nil {
		return nil
	}
	snapshot := make([]int, len(tally))
	copy(snapshot, tally)
	return snapshot
}

func SumTally(tally []int) int {
	total := 0
	for _, v := range tally {
		total += v
	}
	return total
}
