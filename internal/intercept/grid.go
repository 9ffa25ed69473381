package intercept

import "math"

const (
	// gridEndTol lets a range end that is an exact multiple of its step survive
	// floating-point accumulation.
	gridEndTol = 1e-12

	// MaxGridPoints bounds the number of angles or delays in one search grid.
	MaxGridPoints = 100_000

	// minAbsCos drops near-vertical angles, where the horizontal back-solve for
	// speed divides by ~0.
	minAbsCos = 1e-3
)

// angle is a grid angle with its trig values precomputed.
type angle struct {
	theta, cos, sin float64
}

// gridLen returns how many values linspace(lo, hi, step) yields for a valid
// range. It is a float so huge ranges do not overflow.
func gridLen(lo, hi, step float64) float64 {
	return math.Floor((hi-lo+gridEndTol)/step) + 1
}

// linspace returns lo, lo+step, ... up to hi inclusive within gridEndTol.
// Values are computed from the index so rounding does not accumulate.
// A non-positive or NaN step, or a grid longer than MaxGridPoints, yields no values.
func linspace(lo, hi, step float64) []float64 {
	if !(step > 0) || !(hi >= lo) || math.IsInf(hi-lo, 0) {
		return nil
	}
	size := gridLen(lo, hi, step)
	if !(size <= MaxGridPoints) {
		return nil
	}
	n := int(size)
	out := make([]float64, 0, n)
	for i := 0; ; i++ {
		v := lo + float64(i)*step
		if v > hi+gridEndTol {
			break
		}
		out = append(out, v)
	}
	return out
}

// AngleGrid returns the defender angles the search tries.
func AngleGrid(p Params) []float64 {
	var out []float64
	for _, th := range linspace(p.ThetaMin, p.ThetaMax, p.DTheta) {
		if math.Abs(math.Cos(th)) > minAbsCos {
			out = append(out, th)
		}
	}
	return out
}

// DelayGrid returns the defender launch delays the search tries.
func DelayGrid(p Params) []float64 {
	return linspace(p.DelayMin, p.DelayMax, p.DTDelay)
}

func angleTable(p Params) []angle {
	thetas := AngleGrid(p)
	out := make([]angle, len(thetas))
	for i, th := range thetas {
		out[i] = angle{theta: th, cos: math.Cos(th), sin: math.Sin(th)}
	}
	return out
}
