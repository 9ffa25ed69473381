// Package kinematics provides closed-form projectile motion under uniform gravity
// with no drag, along with small angle and range utilities.
//
// Every function takes gravity explicitly. Distances are in metres, speeds in m/s,
// angles in radians and time in seconds.
package kinematics

import (
	"errors"
	"math"
)

// ErrInvalidParameter is returned when a physical input is outside its valid domain
// (non-positive spring constants, non-positive sampling step, ...).
var ErrInvalidParameter = errors.New("invalid parameter")

// FlightTime returns the time until the projectile returns to y = 0.
//
// It solves y0 + vy·t − ½g·t² = 0 and returns the larger positive root. If the
// discriminant is negative the projectile never reaches the ground and +Inf is
// returned. If neither root is positive the result is 0.
func FlightTime(v0, theta, y0, g float64) float64 {
	vy := v0 * math.Sin(theta)
	disc := vy*vy + 2*g*y0
	if disc < 0 {
		return math.Inf(1)
	}
	sq := math.Sqrt(disc)
	t1 := (vy + sq) / g
	t2 := (vy - sq) / g

	best := 0.0
	for _, t := range [2]float64{t1, t2} {
		if t > 0 && t > best {
			best = t
		}
	}
	return best
}

// RangeFlatGround returns the horizontal distance covered until the projectile lands.
// For y0 = 0 this reduces to v0²·sin(2θ)/g.
func RangeFlatGround(v0, theta, y0, g float64) float64 {
	return v0 * math.Cos(theta) * FlightTime(v0, theta, y0, g)
}

// ApexHeight returns the maximum height reached.
func ApexHeight(v0, theta, y0, g float64) float64 {
	vy := v0 * math.Sin(theta)
	return y0 + vy*vy/(2*g)
}

// PositionAt returns the position at time t. It is valid for any t, so y may be
// negative past ground impact; callers clip.
func PositionAt(t, x0, y0, v0, theta, g float64) (x, y float64) {
	vx := v0 * math.Cos(theta)
	vy := v0 * math.Sin(theta)
	return x0 + vx*t, y0 + vy*t - 0.5*g*t*t
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return deg * math.Pi / 180.0 }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
