package launcher

import (
	"fmt"
	"math"
)

// LinearModelName is the JSON discriminator string for the LinearSpring model.
const LinearModelName = "linear"

// LinearSpring is a Hookean spring that transfers all of its stored energy to the
// projectile: ½·k·x² = ½·m·v0², so v0 = x·√(k/m).
//
// JSON discriminator: "model": "linear" (also the default when "model" is absent).
type LinearSpring struct {
	K float64 `json:"k"` // stiffness, N/m
	X float64 `json:"x"` // compression, m
	M float64 `json:"m"` // projectile mass, kg
}

// Validate reports ErrInvalidParameter if any of k, x, m is not strictly positive.
func (s LinearSpring) Validate() error {
	switch {
	case !(s.K > 0):
		return fmt.Errorf("spring stiffness k=%g must be > 0: %w", s.K, ErrInvalidParameter)
	case !(s.X > 0):
		return fmt.Errorf("spring compression x=%g must be > 0: %w", s.X, ErrInvalidParameter)
	case !(s.M > 0):
		return fmt.Errorf("projectile mass m=%g must be > 0: %w", s.M, ErrInvalidParameter)
	}
	return nil
}

// Speed returns x·√(k/m), or ErrInvalidParameter for a non-physical spring.
func (s LinearSpring) Speed() (float64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return s.X * math.Sqrt(s.K/s.M), nil
}

// MaxSpeed equals Speed: a linear spring has no reachable speed beyond its
// configured compression.
func (s LinearSpring) MaxSpeed() (float64, error) {
	return s.Speed()
}
