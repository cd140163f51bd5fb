// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

// Average returns the arithmetic mean of the votes, 0 for no votes.
// The result is unrounded; display rounding is the caller's concern.
func Average(votes []int) float64 {
	if len(votes) == 0 {
		return 0
	}
	sum := 0
	for _, v := range votes {
		sum += v
	}
	return float64(sum) / float64(len(votes))
}

// Consensus returns the single most frequent vote value. ok is false when
// the input is empty or when two or more values tie for the maximum
// frequency - including all-distinct inputs, where every value ties at 1.
func Consensus(votes []int) (value int, ok bool) {
	if len(votes) == 0 {
		return 0, false
	}

	counts := Distribution(votes)

	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}

	atMax := 0
	for v, c := range counts {
		if c == maxCount {
			atMax++
			value = v
		}
	}
	if atMax != 1 {
		return 0, false
	}
	return value, true
}

// Distribution maps each vote value to the number of participants who
// cast it. An empty input yields an empty, non-nil map.
func Distribution(votes []int) map[int]int {
	counts := make(map[int]int)
	for _, v := range votes {
		counts[v]++
	}
	return counts
}
