// Package intercept searches for a defender shot that meets an attacker's sampled
// trajectory in both space and time.
//
// The search is an exhaustive grid enumeration over (attacker sample, defender
// delay, defender angle). For each triple the defender speed is back-solved from
// the horizontal displacement, then the predicted height is compared with the
// attacker's. Accepted candidates are folded with a deterministic ranking so the
// result does not depend on enumeration order or parallelism.
package intercept

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when search parameters violate their invariants.
var ErrInvalidParams = errors.New("invalid intercept parameters")

// Params configures one search. Angles are in radians, times in seconds.
type Params struct {
	XD0 float64 `json:"xd0"` // defender launch x, m
	YD0 float64 `json:"yd0"` // defender launch y, m

	ThetaMin float64 `json:"theta_min"`
	ThetaMax float64 `json:"theta_max"`
	DTheta   float64 `json:"dtheta"`

	DelayMin float64 `json:"delay_min"`
	DelayMax float64 `json:"delay_max"`
	DTDelay  float64 `json:"dt_delay"`

	// DTAttacker is the step the attacker trajectory was sampled with. The search
	// walks the samples it is given; this is carried for reporting.
	DTAttacker float64 `json:"dt_attacker"`

	Eps float64 `json:"eps"` // accepted vertical mismatch, m
	G   float64 `json:"g"`   // gravity, m/s²
}

// Validate checks the parameter invariants.
func (p Params) Validate() error {
	switch {
	case !(p.ThetaMax >= p.ThetaMin):
		return fmt.Errorf("theta_max=%g < theta_min=%g: %w", p.ThetaMax, p.ThetaMin, ErrInvalidParams)
	case !(p.DelayMax >= p.DelayMin):
		return fmt.Errorf("delay_max=%g < delay_min=%g: %w", p.DelayMax, p.DelayMin, ErrInvalidParams)
	case !(p.DTheta > 0), !(p.DTDelay > 0):
		return fmt.Errorf("dtheta=%g and dt_delay=%g must be > 0: %w", p.DTheta, p.DTDelay, ErrInvalidParams)
	case p.DTAttacker < 0:
		return fmt.Errorf("dt_attacker=%g must be >= 0: %w", p.DTAttacker, ErrInvalidParams)
	case !(p.Eps > 0):
		return fmt.Errorf("eps=%g must be > 0: %w", p.Eps, ErrInvalidParams)
	case math.IsNaN(p.G), math.IsInf(p.G, 0):
		return fmt.Errorf("gravity g=%g must be finite: %w", p.G, ErrInvalidParams)
	}
	if n := gridLen(p.ThetaMin, p.ThetaMax, p.DTheta); !(n <= MaxGridPoints) {
		return fmt.Errorf("angle grid of %.3g points exceeds %d: %w", n, MaxGridPoints, ErrInvalidParams)
	}
	if n := gridLen(p.DelayMin, p.DelayMax, p.DTDelay); !(n <= MaxGridPoints) {
		return fmt.Errorf("delay grid of %.3g points exceeds %d: %w", n, MaxGridPoints, ErrInvalidParams)
	}
	return nil
}

// Point is a position in the launch plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Solution is an accepted defender shot.
type Solution struct {
	ThetaD      float64 `json:"theta_d"`      // defender angle, rad
	Delay       float64 `json:"delay"`        // defender launch time on the attacker clock, s
	V0D         float64 `json:"v0_d"`         // defender launch speed, m/s
	ImpactTime  float64 `json:"impact_time"`  // attacker elapsed time at the meeting sample, s
	ImpactPoint Point   `json:"impact_point"` // attacker position at the meeting sample
	Error       float64 `json:"error"`        // |attacker y − predicted defender y|, m
}

// Tau returns the defender's own flight time up to the meeting point.
func (s Solution) Tau() float64 { return s.ImpactTime - s.Delay }
