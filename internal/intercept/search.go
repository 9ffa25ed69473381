package intercept

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cxd309/intercept-engine/internal/trajectory"
)

// Options tunes how a search is executed. The zero value is a sequential,
// exhaustive search.
type Options struct {
	// Workers is the number of goroutines enumerating attacker samples.
	// Values <= 1 run sequentially. Results are identical either way.
	Workers int

	// StopBelow, when > 0, ends the search as soon as any candidate with an error
	// below it is found. The returned solution is then the best seen so far and may
	// differ from the exhaustive result, and may differ between runs when Workers > 1.
	StopBelow float64
}

// Result is the outcome of SearchWithOptions.
type Result struct {
	Candidate
	Found   bool  `json:"found"`
	Stopped bool  `json:"stopped"` // ended early through Options.StopBelow
	Stats   Stats `json:"stats"`
}

// Search runs an exhaustive sequential search over the attacker trajectory and
// returns the best defender solution, or false if no candidate is within tolerance.
// A defender faster than v0dMax is never proposed.
//
// Parameters that produce an empty grid (non-positive steps, inverted ranges)
// simply yield no solution; use Params.Validate or SearchWithOptions to have them
// reported.
func Search(tr trajectory.Trajectory, p Params, v0dMax float64) (Solution, bool) {
	sp := newSpace(tr, p, v0dMax)
	var r Ranker
	for c := range sp.accepted(0, 1, nil, nil) {
		r.Add(c)
	}
	best, ok := r.Best()
	return best.Solution, ok
}

// SearchWithOptions validates p and runs the search as configured by opts.
// It returns ctx.Err() if the context is cancelled before enumeration finishes.
func SearchWithOptions(ctx context.Context, tr trajectory.Trajectory, p Params, v0dMax float64, opts Options) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	if !(v0dMax >= 0) {
		return Result{}, fmt.Errorf("defender max speed %g must be >= 0: %w", v0dMax, ErrInvalidParams)
	}

	sp := newSpace(tr, p, v0dMax)
	workers := max(1, opts.Workers)
	if n := len(sp.ts); workers > n {
		workers = max(1, n)
	}

	rankers := make([]Ranker, workers)
	stats := make([]Stats, workers)
	var stopped atomic.Bool

	eg, egCtx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		eg.Go(func() error {
			halt := func() bool { return stopped.Load() || egCtx.Err() != nil }
			for c := range sp.accepted(w, workers, halt, &stats[w]) {
				rankers[w].Add(c)
				if opts.StopBelow > 0 && c.Error < opts.StopBelow {
					stopped.Store(true)
					break
				}
			}
			return egCtx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return Result{}, err
	}

	var (
		total Ranker
		res   Result
	)
	for w := range rankers {
		total.Merge(&rankers[w])
		res.Stats.add(stats[w])
	}
	res.Candidate, res.Found = total.Best()
	res.Stopped = stopped.Load()
	return res, nil
}

// SearchParallel is an exhaustive search spread over workers goroutines. It
// returns the same solution as Search for any worker count.
func SearchParallel(ctx context.Context, tr trajectory.Trajectory, p Params, v0dMax float64, workers int) (Solution, bool, error) {
	res, err := SearchWithOptions(ctx, tr, p, v0dMax, Options{Workers: workers})
	if err != nil {
		return Solution{}, false, err
	}
	return res.Solution, res.Found, nil
}
