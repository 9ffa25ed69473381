// Package launcher converts launcher configurations into projectile launch speeds.
//
// Adding a new launcher model (for example a progressive-rate spring) requires only
// implementing Launcher and registering it in Spec.UnmarshalJSON; the trajectory and
// intercept packages only ever see the resulting speed.
package launcher

import (
	"fmt"

	"github.com/cxd309/intercept-engine/internal/kinematics"
)

// ErrInvalidParameter is returned for non-physical launcher configurations.
var ErrInvalidParameter = kinematics.ErrInvalidParameter

// Launcher is the contract every launcher model must satisfy. Speeds are in m/s.
type Launcher interface {
	// Speed returns the launch speed for the configured state.
	Speed() (float64, error)

	// MaxSpeed returns the highest launch speed the launcher can deliver.
	// The intercept search uses it as the upper bound on back-solved speeds.
	MaxSpeed() (float64, error)
}

// LaunchSpeed returns l's launch speed, failing with ErrInvalidParameter if the
// launcher is not physically valid.
func LaunchSpeed(l Launcher) (float64, error) {
	if l == nil {
		return 0, fmt.Errorf("nil launcher: %w", ErrInvalidParameter)
	}
	return l.Speed()
}
