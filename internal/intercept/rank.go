package intercept

import (
	"math"
	"slices"
)

// TieTol is the error difference within which two candidates count as equally good;
// the smaller delay then wins.
const TieTol = 1e-9

// Better reports whether a ranks ahead of b: smaller error, or, for errors within
// TieTol, smaller delay.
func Better(a, b Solution) bool {
	if math.Abs(a.Error-b.Error) <= TieTol {
		return a.Delay < b.Delay
	}
	return a.Error < b.Error
}

// keyLess orders candidates for the tie-break once errors are considered equal:
// delay, then attacker sample, then angle.
func keyLess(a, b Candidate) bool {
	if a.Delay != b.Delay {
		return a.Delay < b.Delay
	}
	if a.DelayIndex != b.DelayIndex {
		return a.DelayIndex < b.DelayIndex
	}
	if a.SampleIndex != b.SampleIndex {
		return a.SampleIndex < b.SampleIndex
	}
	return a.AngleIndex < b.AngleIndex
}

// Ranker folds accepted candidates into the single best one.
//
// The winner is the candidate with the smallest key among those whose error is
// within TieTol of the overall minimum error. Because "within TieTol" is not
// transitive, a running single best would depend on arrival order, so Ranker keeps
// the candidates that could still win: sorted by ascending error with strictly
// descending key, all within TieTol of the first. Add and Merge are therefore
// commutative and associative, and sequential and parallel searches agree.
type Ranker struct {
	front []Candidate
}

// Add offers c to the ranking.
func (r *Ranker) Add(c Candidate) {
	for _, d := range r.front {
		if d.Error <= c.Error && keyLess(d, c) {
			return
		}
	}

	kept := r.front[:0]
	for _, e := range r.front {
		if c.Error <= e.Error && keyLess(c, e) {
			continue
		}
		kept = append(kept, e)
	}
	i, _ := slices.BinarySearchFunc(kept, c, func(e, t Candidate) int {
		if e.Error < t.Error || (e.Error == t.Error && keyLess(t, e)) {
			return -1
		}
		return 1
	})
	kept = slices.Insert(kept, i, c)

	for kept[len(kept)-1].Error-kept[0].Error > TieTol {
		kept = kept[:len(kept)-1]
	}
	r.front = kept
}

// Merge folds every candidate retained by o into r.
func (r *Ranker) Merge(o *Ranker) {
	if o == nil {
		return
	}
	for _, c := range o.front {
		r.Add(c)
	}
}

// Best returns the winning candidate, or false if nothing was added. Every
// retained candidate is within TieTol of every other, so Better picks by delay;
// candidates Better cannot separate fall back to grid order.
func (r *Ranker) Best() (Candidate, bool) {
	if len(r.front) == 0 {
		return Candidate{}, false
	}
	best := r.front[0]
	for _, c := range r.front[1:] {
		if Better(c.Solution, best.Solution) ||
			(!Better(best.Solution, c.Solution) && keyLess(c, best)) {
			best = c
		}
	}
	return best, true
}
