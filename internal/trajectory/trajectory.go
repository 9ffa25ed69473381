// Package trajectory samples ballistic flights at a fixed time step, clipping the
// final sample exactly onto the ground.
package trajectory

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cxd309/intercept-engine/internal/kinematics"
)

// ErrInvalidParameter is returned for a non-positive sampling step or a flight
// that would need more than MaxSamples samples.
var ErrInvalidParameter = kinematics.ErrInvalidParameter

// MaxSamples bounds the length of any sampled trajectory.
const MaxSamples = 1_000_000

// Sample is one point of a trajectory.
type Sample struct {
	T float64 `json:"t"` // s
	X float64 `json:"x"` // m
	Y float64 `json:"y"` // m
}

// Trajectory is a time-ordered sequence of samples.
//
// T is strictly increasing from 0 and Y is never negative. The last sample lies
// exactly on the ground unless the flight was truncated by a time cap.
type Trajectory struct {
	Samples []Sample `json:"samples"`
}

// Len returns the number of samples.
func (tr Trajectory) Len() int { return len(tr.Samples) }

// Times, Xs and Ys return the parallel column views of the samples.
func (tr Trajectory) Times() []float64 { return tr.column(func(s Sample) float64 { return s.T }) }
func (tr Trajectory) Xs() []float64    { return tr.column(func(s Sample) float64 { return s.X }) }
func (tr Trajectory) Ys() []float64    { return tr.column(func(s Sample) float64 { return s.Y }) }

func (tr Trajectory) column(f func(Sample) float64) []float64 {
	out := make([]float64, len(tr.Samples))
	for i, s := range tr.Samples {
		out[i] = f(s)
	}
	return out
}

// Last returns the final sample. ok is false for an empty trajectory.
func (tr Trajectory) Last() (s Sample, ok bool) {
	if len(tr.Samples) == 0 {
		return Sample{}, false
	}
	return tr.Samples[len(tr.Samples)-1], true
}

// Peak returns the highest sample.
func (tr Trajectory) Peak() (s Sample, ok bool) {
	if len(tr.Samples) == 0 {
		return Sample{}, false
	}
	return tr.Samples[floats.MaxIdx(tr.Ys())], true
}

// Compute samples the flight described by ls every dt seconds under gravity g.
//
// If tMax is non-nil the flight is cut at min(flight time, *tMax). When a sample
// drops below ground the crossing is found by linear interpolation against the
// previous sample; that clipped point becomes the last sample and the raw
// below-ground sample is discarded.
func Compute(ls kinematics.LaunchState, dt, g float64, tMax *float64) (Trajectory, error) {
	if !(dt > 0) {
		return Trajectory{}, fmt.Errorf("sampling step dt=%g must be > 0: %w", dt, ErrInvalidParameter)
	}

	tf := ls.FlightTime(g)
	if tMax != nil {
		tf = math.Min(tf, *tMax)
	}
	if math.IsInf(tf, 1) {
		return Trajectory{}, fmt.Errorf("flight never returns to ground without a time cap: %w", ErrInvalidParameter)
	}
	if !(tf/dt <= MaxSamples) {
		return Trajectory{}, fmt.Errorf("flight of %.3gs at dt=%g exceeds %d samples: %w", tf, dt, MaxSamples, ErrInvalidParameter)
	}
	n := 1
	if steps := math.Ceil(tf / dt); steps > 1 {
		n = int(steps)
	}

	samples := make([]Sample, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) * dt
		x, y := ls.PositionAt(t, g)
		if y < 0 {
			if i > 0 && samples[len(samples)-1].Y > 0 {
				prev := samples[len(samples)-1]
				alpha := kinematics.Clamp((0-prev.Y)/(y-prev.Y), 0, 1)
				samples = append(samples, Sample{
					T: prev.T + alpha*dt,
					X: prev.X + alpha*(x-prev.X),
					Y: 0,
				})
			}
			break
		}
		samples = append(samples, Sample{T: t, X: x, Y: y})
	}
	return Trajectory{Samples: samples}, nil
}
