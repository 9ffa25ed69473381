package engine

import (
	"github.com/cxd309/intercept-engine/internal/intercept"
	"github.com/cxd309/intercept-engine/internal/scenario"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

// RunMeta holds the identity and sampling parameters of a run.
type RunMeta struct {
	RunID    string  `json:"run_id"`
	TimeStep float64 `json:"time_step"` // seconds
	Gravity  float64 `json:"gravity"`   // m/s²
}

// FlightSummary is the closed-form description of a launch.
type FlightSummary struct {
	V0         float64 `json:"v0"`          // m/s
	ThetaDeg   float64 `json:"theta_deg"`   // degrees
	FlightTime float64 `json:"flight_time"` // s
	Range      float64 `json:"range"`       // m
	Apex       float64 `json:"apex"`        // m
}

// DefenderReport describes the defender's launcher and, when an intercept was
// found, its solved shot and aligned path.
type DefenderReport struct {
	MaxSpeed   float64                `json:"max_speed"` // m/s
	Flight     *FlightSummary         `json:"flight,omitempty"`
	Trajectory *trajectory.Trajectory `json:"trajectory,omitempty"` // on the attacker clock
}

// AttackerReport describes the attacker's launch and sampled flight.
type AttackerReport struct {
	Flight     FlightSummary         `json:"flight"`
	Trajectory trajectory.Trajectory `json:"trajectory"`
}

// Report is the complete output of a run. Solution is nil when no defender shot
// meets the tolerance; that is a normal outcome, flagged by Intercepted.
type Report struct {
	Meta        RunMeta             `json:"run_meta"`
	Scenario    scenario.Scenario   `json:"scenario"`
	Attacker    AttackerReport      `json:"attacker"`
	Defender    DefenderReport      `json:"defender"`
	Intercepted bool                `json:"intercepted"`
	Solution    *intercept.Solution `json:"solution,omitempty"`
	Stats       intercept.Stats     `json:"stats"`
}

// RunOptions tunes how the search is executed.
type RunOptions struct {
	Workers   int     // search goroutines; <= 1 is sequential
	StopBelow float64 // opt-in early stop, see intercept.Options
}
