package intercept

import (
	"iter"
	"math"

	"github.com/cxd309/intercept-engine/internal/trajectory"
)

// Candidate is an accepted solution together with its position in the search grid.
// The indices give the ranking a final, order-independent tie-break.
type Candidate struct {
	Solution
	SampleIndex int `json:"sample_index"`
	DelayIndex  int `json:"delay_index"`
	AngleIndex  int `json:"angle_index"`
}

// Stats counts the work done by one search.
type Stats struct {
	Samples   int `json:"samples"`   // attacker samples visited
	Evaluated int `json:"evaluated"` // (sample, delay, angle) triples with tau > 0
	Accepted  int `json:"accepted"`  // candidates within eps
}

func (s *Stats) add(o Stats) {
	s.Samples += o.Samples
	s.Evaluated += o.Evaluated
	s.Accepted += o.Accepted
}

// space is the precomputed search grid.
type space struct {
	p      Params
	vMax   float64
	ts     []float64
	xs     []float64
	ys     []float64
	delays []float64
	angles []angle
}

func newSpace(tr trajectory.Trajectory, p Params, v0dMax float64) space {
	return space{
		p:      p,
		vMax:   v0dMax,
		ts:     tr.Times(),
		xs:     tr.Xs(),
		ys:     tr.Ys(),
		delays: DelayGrid(p),
		angles: angleTable(p),
	}
}

// evaluate tests one (sample, delay, angle) triple. ok is false when the triple
// is degenerate, too fast for the defender, or outside tolerance.
func (sp *space) evaluate(ia, id, ith int, tau float64) (c Candidate, ok bool) {
	a := sp.angles[ith]
	xa, ya := sp.xs[ia], sp.ys[ia]

	v0d := (xa - sp.p.XD0) / (tau * a.cos)
	if !(v0d > 0) || math.IsInf(v0d, 0) || v0d > sp.vMax {
		return Candidate{}, false
	}

	yPred := sp.p.YD0 + v0d*a.sin*tau - 0.5*sp.p.G*tau*tau
	errY := math.Abs(ya - yPred)
	if !(errY <= sp.p.Eps) {
		return Candidate{}, false
	}

	return Candidate{
		Solution: Solution{
			ThetaD:      a.theta,
			Delay:       sp.delays[id],
			V0D:         v0d,
			ImpactTime:  sp.ts[ia],
			ImpactPoint: Point{X: xa, Y: ya},
			Error:       errY,
		},
		SampleIndex: ia,
		DelayIndex:  id,
		AngleIndex:  ith,
	}, true
}

// accepted yields the accepted candidates for attacker samples first, first+stride, ...
// in (sample, delay, angle) order. halt, if non-nil, is polled before each sample and
// ends the sequence when it returns true. stats, if non-nil, is updated once the
// sequence ends.
func (sp *space) accepted(first, stride int, halt func() bool, stats *Stats) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		var local Stats
		if stats != nil {
			defer func() { stats.add(local) }()
		}
		for ia := first; ia < len(sp.ts); ia += stride {
			if halt != nil && halt() {
				return
			}
			if sp.ys[ia] < 0 {
				continue
			}
			local.Samples++
			ta := sp.ts[ia]
			for id, d := range sp.delays {
				tau := ta - d
				if tau <= 0 {
					continue
				}
				for ith := range sp.angles {
					local.Evaluated++
					c, ok := sp.evaluate(ia, id, ith, tau)
					if !ok {
						continue
					}
					local.Accepted++
					if !yield(c) {
						return
					}
				}
			}
		}
	}
}

// Candidates returns every accepted candidate in enumeration order.
func Candidates(tr trajectory.Trajectory, p Params, v0dMax float64) iter.Seq[Candidate] {
	sp := newSpace(tr, p, v0dMax)
	return sp.accepted(0, 1, nil, nil)
}
