package util

import (
	"sort"

	"golang.org/x/exp/constraints"
)

func Sum[A constraints.Integer | constraints.Float](nums []A) A {
	var total A
	for _, v := range nums {
		total += v
	}
	return total
}

func Mean[A constraints.Integer | constraints.Float](nums []A) float64 {
	if len(nums) == 0 {
		return 0
	}
	return float64(Sum(nums)) / float64(len(nums))
}

// Median returns the upper median, sorted[len/2], without touching nums.
func Median[A constraints.Ordered](nums []A) A {
	sorted := make([]A, len(nums))
	copy(sorted, nums)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	return sorted[len(sorted)/2]
}

func Filter[A any](items []A, keep func(A) bool) []A {
	var res []A
	for _, v := range items {
		if keep(v) {
			res = append(res, v)
		}
	}
	return res
}

func Max[A constraints.Ordered](num1 A, num2 A) A {
	if num1 < num2 {
		return num2
	}
	return num1
}
