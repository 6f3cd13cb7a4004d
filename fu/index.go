package fu

import (
	"math/rand"
)

/*
Fnzi returns the first non-zero int from the given values
*/
func Fnzi(a ...int) int {
	for _, x := range a {
		if x != 0 {
			return x
		}
	}
	return 0
}

/*
Fnzs returns the first non-empty string from the given values
*/
func Fnzs(a ...string) string {
	for _, x := range a {
		if x != "" {
			return x
		}
	}
	return ""
}

/*
Isin returns true if v is one of keys
*/
func Isin(v float64, keys []float64) bool {
	for _, k := range keys {
		if v == k {
			return true
		}
	}
	return false
}

/*
Idxin returns the indexes of all elements of a belonging to keys
*/
func Idxin(a []float64, keys []float64) []int {
	var r []int
	for i, x := range a {
		if Isin(x, keys) {
			r = append(r, i)
		}
	}
	return r
}

/*
Sample selects n elements from a without replacement
*/
func Sample(rng *rand.Rand, a []int, n int) []int {
	if n > len(a) {
		n = len(a)
	}
	r := make([]int, n)
	for i, j := range rng.Perm(len(a))[:n] {
		r[i] = a[j]
	}
	return r
}
