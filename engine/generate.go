package engine

import "math/rand"

// Generate produces n values drawn independently and uniformly from
// [min, max] inclusive. n <= 0 yields an empty array.
func Generate(n, min, max int) []int {
	if n <= 0 {
		return []int{}
	}
	span := max - min + 1
	if span < 1 {
		span = 1
	}
	arr := make([]int, n)
	for i := range arr {
		arr[i] = min + rand.Intn(span)
	}
	return arr
}
