// Copyright (c) 2025 PointDeck Authors.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverage(t *testing.T) {
	tests := []struct {
		name  string
		votes []int
		want  float64
	}{
		{"empty", []int{}, 0},
		{"single", []int{5}, 5},
		{"simple mean", []int{1, 2, 3}, 2.0},
		{"non-integer mean", []int{1, 2}, 1.5},
		{"all same", []int{8, 8, 8}, 8},
		{"full spread", []int{1, 2, 3, 5, 8, 13, 21}, 53.0 / 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Average(tt.votes), 1e-9)
		})
	}
}

func TestConsensus(t *testing.T) {
	tests := []struct {
		name      string
		votes     []int
		wantValue int
		wantOK    bool
	}{
		{"empty", []int{}, 0, false},
		{"unanimous", []int{5, 5, 5}, 5, true},
		{"two distinct tie at one", []int{5, 8}, 0, false},
		{"two-way frequency tie", []int{3, 3, 8, 8}, 0, false},
		{"clear majority", []int{5, 5, 8}, 5, true},
		{"single vote", []int{13}, 13, true},
		{"all distinct", []int{1, 2, 3, 5}, 0, false},
		{"majority among three values", []int{2, 3, 3, 3, 8}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := Consensus(tt.votes)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantValue, value)
			}
		})
	}
}

func TestDistribution(t *testing.T) {
	dist := Distribution([]int{5, 8, 5, 13, 5})
	assert.Equal(t, map[int]int{5: 3, 8: 1, 13: 1}, dist)
}

func TestDistributionEmpty(t *testing.T) {
	dist := Distribution(nil)
	assert.NotNil(t, dist, "empty input yields an empty map, not nil")
	assert.Empty(t, dist)
}
