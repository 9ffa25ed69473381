// Package engine runs a complete attacker/defender scenario.
//
// A run has three stages:
//
//  1. Attacker - the attacker spring gives a launch speed and the flight is
//     sampled at the scenario's dt until it lands.
//
//  2. Search - the intercept search enumerates attacker samples, defender delays
//     and defender angles, bounded by the defender spring's maximum speed.
//
//  3. Defender - when a shot is found, the defender's path is sampled on the
//     attacker's clock (static until its delay, then in flight up to the meeting
//     point) so both can be drawn together.
package engine

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/cxd309/intercept-engine/internal/intercept"
	"github.com/cxd309/intercept-engine/internal/kinematics"
	"github.com/cxd309/intercept-engine/internal/monitoring"
	"github.com/cxd309/intercept-engine/internal/scenario"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

// Summarize returns the closed-form flight figures of a launch under gravity g.
func Summarize(ls kinematics.LaunchState, g float64) FlightSummary {
	return FlightSummary{
		V0:         ls.V0,
		ThetaDeg:   kinematics.RadToDeg(ls.Theta),
		FlightTime: ls.FlightTime(g),
		Range:      ls.Range(g),
		Apex:       ls.Apex(g),
	}
}

// Run executes sc and returns its report. Errors are only returned for invalid
// scenarios or cancellation; an impossible intercept is reported, not failed.
func Run(ctx context.Context, sc scenario.Scenario, opts RunOptions) (Report, error) {
	if err := sc.Validate(); err != nil {
		return Report{}, err
	}
	gl := sc.Globals

	attacker, err := sc.AttackerLaunch()
	if err != nil {
		return Report{}, err
	}
	attackerTraj, err := trajectory.Compute(attacker, gl.DTSim, gl.G, nil)
	if err != nil {
		return Report{}, fmt.Errorf("attacker trajectory: %w", err)
	}

	vMax, err := sc.DefenderMaxSpeed()
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Meta:     RunMeta{RunID: uuid.NewString(), TimeStep: gl.DTSim, Gravity: gl.G},
		Scenario: sc,
		Attacker: AttackerReport{Flight: Summarize(attacker, gl.G), Trajectory: attackerTraj},
		Defender: DefenderReport{MaxSpeed: vMax},
	}

	res, err := intercept.SearchWithOptions(ctx, attackerTraj, sc.InterceptParams(), vMax, intercept.Options{
		Workers:   opts.Workers,
		StopBelow: opts.StopBelow,
	})
	if err != nil {
		return Report{}, fmt.Errorf("intercept search: %w", err)
	}
	report.Stats = res.Stats
	monitoring.Debugf("run %s: %d samples, %d triples evaluated, %d accepted, stopped=%t",
		report.Meta.RunID, res.Stats.Samples, res.Stats.Evaluated, res.Stats.Accepted, res.Stopped)

	if !res.Found {
		monitoring.Logf("run %s: no intercept (v0_a=%.3f m/s, v0_d,max=%.3f m/s)", report.Meta.RunID, attacker.V0, vMax)
		return report, nil
	}

	sol := res.Solution
	defender := kinematics.LaunchState{X0: sc.Defender.X0, Y0: sc.Defender.Y0, V0: sol.V0D, Theta: sol.ThetaD}
	defenderTraj, err := trajectory.Aligned(defender, sol.Delay, sol.Tau(), gl.DTSim, gl.G)
	if err != nil {
		return Report{}, fmt.Errorf("defender trajectory: %w", err)
	}
	flight := Summarize(defender, gl.G)

	report.Intercepted = true
	report.Solution = &sol
	report.Defender.Flight = &flight
	report.Defender.Trajectory = &defenderTraj

	monitoring.Logf("run %s: intercept θ_d=%.2f°, Δt=%.2fs, v0_d=%.2f m/s (max %.2f), error=%.4f m",
		report.Meta.RunID, flight.ThetaDeg, sol.Delay, sol.V0D, vMax, sol.Error)
	return report, nil
}

// RunJSON is the entry point shared by the CLI and WASM targets. It accepts a
// JSON-encoded scenario, runs it, and returns the JSON-encoded report.
func RunJSON(jsonInput string, opts RunOptions) (string, error) {
	sc, err := scenario.Parse([]byte(jsonInput))
	if err != nil {
		return "", err
	}

	report, err := Run(context.Background(), sc, opts)
	if err != nil {
		return "", err
	}

	out, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("marshaling output: %w", err)
	}
	return string(out), nil
}
