package trajectory

import (
	"fmt"
	"math"

	"github.com/cxd309/intercept-engine/internal/kinematics"
)

// alignTol keeps a grid time that lands on delay or tau through rounding from
// producing a near-duplicate sample.
const alignTol = 1e-12

// Aligned builds a flight path on a shared clock where the projectile launches at
// time delay and flies for tau seconds of its own time. Before launch it sits at
// its launch position, sampled every dt. In flight it is sampled every dt from
// launch, and the final sample is exactly at delay+tau. Heights are clamped at
// the ground.
//
// It is used to place a defender's path on the attacker's time axis, ending at
// the meeting point.
func Aligned(ls kinematics.LaunchState, delay, tau, dt, g float64) (Trajectory, error) {
	if !(dt > 0) {
		return Trajectory{}, fmt.Errorf("sampling step dt=%g must be > 0: %w", dt, ErrInvalidParameter)
	}
	if !(delay >= 0) || !(tau >= 0) || math.IsInf(delay+tau, 1) {
		return Trajectory{}, fmt.Errorf("delay=%g and tau=%g must be finite and >= 0: %w", delay, tau, ErrInvalidParameter)
	}
	if !((delay+tau)/dt <= MaxSamples) {
		return Trajectory{}, fmt.Errorf("path of %.3gs at dt=%g exceeds %d samples: %w", delay+tau, dt, MaxSamples, ErrInvalidParameter)
	}

	nDelay := int(math.Ceil((delay - alignTol) / dt))
	nFlight := int(math.Ceil((tau - alignTol) / dt))

	samples := make([]Sample, 0, max(0, nDelay)+max(0, nFlight)+1)
	for i := 0; float64(i)*dt < delay-alignTol; i++ {
		samples = append(samples, Sample{T: float64(i) * dt, X: ls.X0, Y: ls.Y0})
	}
	flightSample := func(t float64) Sample {
		x, y := ls.PositionAt(t, g)
		return Sample{T: delay + t, X: x, Y: math.Max(0, y)}
	}
	for j := 0; float64(j)*dt < tau-alignTol; j++ {
		samples = append(samples, flightSample(float64(j)*dt))
	}
	samples = append(samples, flightSample(tau))
	return Trajectory{Samples: samples}, nil
}
