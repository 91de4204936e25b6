package deck

import (
	"math/rand"

	"github.com/willf/bitset"
)

// shuffle returns a uniformly random permutation of records (Fisher–Yates).
// For i from the last index down to 1, element i is swapped with a uniform
// element at index j <= i. The input slice is not modified.
func shuffle(records []Record, rng *rand.Rand) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// filter returns the records accepted by keep, in their original order.
func filter(records []Record, keep Predicate) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// unvisited lists the positions in [0, n) not set in visited, ascending.
func unvisited(visited *bitset.BitSet, n int) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if !visited.Test(uint(i)) {
			out = append(out, i)
		}
	}
	return out
}

// pickUnvisited chooses one unvisited position uniformly at random.
// ok is false when every position in [0, n) is already visited.
func pickUnvisited(visited *bitset.BitSet, n int, rng *rand.Rand) (pos int, ok bool) {
	candidates := unvisited(visited, n)
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.Intn(len(candidates))], true
}
