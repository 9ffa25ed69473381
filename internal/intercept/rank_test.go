package intercept

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(errY, delay float64, sample int) Candidate {
	return Candidate{
		Solution:    Solution{Error: errY, Delay: delay},
		SampleIndex: sample,
		DelayIndex:  int(delay * 10),
	}
}

func permutations(cs []Candidate) [][]Candidate {
	if len(cs) <= 1 {
		return [][]Candidate{append([]Candidate(nil), cs...)}
	}
	var out [][]Candidate
	for i := range cs {
		rest := make([]Candidate, 0, len(cs)-1)
		rest = append(rest, cs[:i]...)
		rest = append(rest, cs[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]Candidate{cs[i]}, p...))
		}
	}
	return out
}

func TestBetterTieBreak(t *testing.T) {
	t.Parallel()

	a := Solution{Error: 0.1, Delay: 2}
	b := Solution{Error: 0.1 + 0.9e-9, Delay: 1}
	assert.True(t, Better(b, a), "errors within tolerance: smaller delay wins")
	assert.False(t, Better(a, b))

	c := Solution{Error: 0.2, Delay: 0}
	assert.True(t, Better(a, c), "clearly smaller error wins regardless of delay")
	assert.False(t, Better(c, a))
}

func TestRankerTieBreakPrefersSmallerDelay(t *testing.T) {
	t.Parallel()

	for _, order := range permutations([]Candidate{
		cand(0.25, 2.0, 7),
		cand(0.25+0.5e-9, 0.5, 3),
	}) {
		var r Ranker
		for _, c := range order {
			r.Add(c)
		}
		best, ok := r.Best()
		require.True(t, ok)
		assert.Equal(t, 0.5, best.Delay)
	}
}

func TestRankerIsOrderIndependent(t *testing.T) {
	t.Parallel()

	// Tolerance is not transitive: a≈b and b≈c but not a≈c. The winner must be
	// decided against the overall minimum error, whatever the arrival order.
	cs := []Candidate{
		cand(1.6e-9, 0.1, 0),
		cand(0.8e-9, 0.2, 1),
		cand(0, 0.3, 2),
		cand(0.5, 0.0, 3),
		cand(0.8e-9, 0.2, 4),
	}
	for _, order := range permutations(cs) {
		var r Ranker
		for _, c := range order {
			r.Add(c)
		}
		best, ok := r.Best()
		require.True(t, ok)
		assert.Equal(t, 0.2, best.Delay)
		assert.Equal(t, 1, best.SampleIndex)
	}
}

func TestRankerWinnerIsNotBeatenWithinTolerance(t *testing.T) {
	t.Parallel()

	cs := []Candidate{
		cand(0.4, 3.0, 0),
		cand(0.4+0.3e-9, 1.5, 1),
		cand(0.4+0.9e-9, 0.7, 2),
		cand(0.4+3e-9, 0.1, 3),
		cand(0.7, 0.0, 4),
	}
	var r Ranker
	for _, c := range cs {
		r.Add(c)
	}
	best, ok := r.Best()
	require.True(t, ok)
	assert.Equal(t, 0.7, best.Delay)

	for _, c := range cs {
		if c.Error-cs[0].Error <= TieTol {
			assert.False(t, Better(c.Solution, best.Solution), "delay %g beats the winner", c.Delay)
		}
	}
}

func TestRankerMergeMatchesSequential(t *testing.T) {
	t.Parallel()

	cs := []Candidate{
		cand(0.3, 1.0, 0),
		cand(0.1, 4.0, 1),
		cand(0.1, 3.0, 2),
		cand(0.1+5e-10, 2.0, 3),
		cand(0.9, 0.0, 4),
		cand(0.1+2e-9, 0.0, 5),
	}
	var seq Ranker
	for _, c := range cs {
		seq.Add(c)
	}
	want, ok := seq.Best()
	require.True(t, ok)
	assert.Equal(t, 2.0, want.Delay)

	for split := 0; split <= len(cs); split++ {
		var left, right Ranker
		for _, c := range cs[:split] {
			left.Add(c)
		}
		for _, c := range cs[split:] {
			right.Add(c)
		}
		right.Merge(&left)
		got, ok := right.Best()
		require.True(t, ok)
		assert.Equal(t, want, got, "split=%d", split)
	}
}

func TestRankerEmpty(t *testing.T) {
	t.Parallel()

	var r Ranker
	r.Merge(nil)
	_, ok := r.Best()
	assert.False(t, ok)
}
