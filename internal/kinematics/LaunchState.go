package kinematics

// LaunchState is the initial condition of a projectile.
type LaunchState struct {
	X0    float64 `json:"x0"`    // m
	Y0    float64 `json:"y0"`    // m
	V0    float64 `json:"v0"`    // m/s, ≥ 0
	Theta float64 `json:"theta"` // rad
}

// PositionAt returns the position t seconds after launch.
func (s LaunchState) PositionAt(t, g float64) (x, y float64) {
	return PositionAt(t, s.X0, s.Y0, s.V0, s.Theta, g)
}

// FlightTime returns the time until the projectile returns to y = 0.
func (s LaunchState) FlightTime(g float64) float64 {
	return FlightTime(s.V0, s.Theta, s.Y0, g)
}

// Range returns the horizontal distance covered until landing.
func (s LaunchState) Range(g float64) float64 {
	return RangeFlatGround(s.V0, s.Theta, s.Y0, g)
}

// Apex returns the maximum height reached.
func (s LaunchState) Apex(g float64) float64 {
	return ApexHeight(s.V0, s.Theta, s.Y0, g)
}
