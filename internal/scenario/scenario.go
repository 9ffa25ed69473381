// Package scenario defines the JSON scenario format consumed by the engine:
// two spring launchers, their positions, and the global search settings.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/cxd309/intercept-engine/internal/intercept"
	"github.com/cxd309/intercept-engine/internal/kinematics"
	"github.com/cxd309/intercept-engine/internal/launcher"
	"github.com/cxd309/intercept-engine/internal/trajectory"
)

// ErrInvalidScenario is returned when a scenario field is missing or out of range.
var ErrInvalidScenario = errors.New("invalid scenario")

// DefaultAttackerThetaDeg is used when the attacker omits theta_deg.
const DefaultAttackerThetaDeg = 45.0

// maxFileSize caps scenario files read from disk.
const maxFileSize = 1 * 1024 * 1024

// maxSearchTriples caps the (sample, delay, angle) triples one run may enumerate.
const maxSearchTriples = 1e9

// Body is one launcher and its position. ThetaDeg is nil for the defender, whose
// angle is solved for.
type Body struct {
	Spring   launcher.Spec `json:"spring"`
	ThetaDeg *float64      `json:"theta_deg"`
	X0       float64       `json:"x0"`
	Y0       float64       `json:"y0"`
}

// Globals holds the shared physics and search settings.
type Globals struct {
	G           float64 `json:"g"`
	DTSim       float64 `json:"dt_sim"`
	Eps         float64 `json:"eps"`
	ThetaMinDeg float64 `json:"theta_min_deg"`
	ThetaMaxDeg float64 `json:"theta_max_deg"`
	DThetaDeg   float64 `json:"dtheta_deg"`
	DelayMin    float64 `json:"delay_min"`
	DelayMax    float64 `json:"delay_max"`
	DTDelay     float64 `json:"dt_delay"`
}

// DefaultGlobals returns the settings used for any field a scenario omits.
func DefaultGlobals() Globals {
	return Globals{
		G:           9.81,
		DTSim:       0.01,
		Eps:         1.0,
		ThetaMinDeg: 5.0,
		ThetaMaxDeg: 85.0,
		DThetaDeg:   0.5,
		DelayMin:    0.0,
		DelayMax:    5.0,
		DTDelay:     0.1,
	}
}

// Scenario is a complete attacker/defender setup.
type Scenario struct {
	Attacker Body    `json:"attacker"`
	Defender Body    `json:"defender"`
	Globals  Globals `json:"globals"`
}

// scenarioJSON pre-fills Globals with defaults so omitted keys keep them.
type scenarioJSON struct {
	Attacker *Body   `json:"attacker"`
	Defender *Body   `json:"defender"`
	Globals  Globals `json:"globals"`
}

// Parse decodes and validates a scenario.
func Parse(data []byte) (Scenario, error) {
	aux := scenarioJSON{Globals: DefaultGlobals()}
	if err := json.Unmarshal(data, &aux); err != nil {
		return Scenario{}, fmt.Errorf("invalid scenario JSON: %w", err)
	}
	if aux.Attacker == nil {
		return Scenario{}, fmt.Errorf("missing \"attacker\": %w", ErrInvalidScenario)
	}
	if aux.Defender == nil {
		return Scenario{}, fmt.Errorf("missing \"defender\": %w", ErrInvalidScenario)
	}

	sc := Scenario{Attacker: *aux.Attacker, Defender: *aux.Defender, Globals: aux.Globals}
	if sc.Attacker.ThetaDeg == nil {
		theta := DefaultAttackerThetaDeg
		sc.Attacker.ThetaDeg = &theta
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Load reads a scenario file. The path must have a .json extension and the file
// must be at most 1 MiB.
func Load(path string) (Scenario, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return Scenario{}, fmt.Errorf("scenario file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	if info.Size() > maxFileSize {
		return Scenario{}, fmt.Errorf("scenario file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario file: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", cleanPath, err)
	}
	return sc, nil
}

// Validate checks every field against its documented range.
func (sc Scenario) Validate() error {
	gl := sc.Globals
	checks := []struct {
		ok    bool
		field string
		value float64
		rule  string
	}{
		{gl.G > 0, "globals.g", gl.G, "> 0"},
		{gl.DTSim > 0, "globals.dt_sim", gl.DTSim, "> 0"},
		{gl.Eps > 0, "globals.eps", gl.Eps, "> 0"},
		{gl.DThetaDeg > 0, "globals.dtheta_deg", gl.DThetaDeg, "> 0"},
		{gl.ThetaMaxDeg >= gl.ThetaMinDeg, "globals.theta_max_deg", gl.ThetaMaxDeg, ">= theta_min_deg"},
		{gl.DelayMin >= 0, "globals.delay_min", gl.DelayMin, ">= 0"},
		{gl.DelayMax >= gl.DelayMin, "globals.delay_max", gl.DelayMax, ">= delay_min"},
		{gl.DTDelay > 0, "globals.dt_delay", gl.DTDelay, "> 0"},
		{sc.Attacker.Y0 >= 0, "attacker.y0", sc.Attacker.Y0, ">= 0"},
		{sc.Defender.Y0 >= 0, "defender.y0", sc.Defender.Y0, ">= 0"},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%s=%g must be %s: %w", c.field, c.value, c.rule, ErrInvalidScenario)
		}
	}

	if sc.Defender.ThetaDeg != nil {
		return fmt.Errorf("defender.theta_deg must be null, it is solved for: %w", ErrInvalidScenario)
	}
	if err := sc.Attacker.Spring.Validate(); err != nil {
		return fmt.Errorf("attacker.spring: %w: %w", ErrInvalidScenario, err)
	}
	if err := sc.Defender.Spring.Validate(); err != nil {
		return fmt.Errorf("defender.spring: %w: %w", ErrInvalidScenario, err)
	}
	return sc.validateSize()
}

// validateSize rejects scenarios whose sampling or search grids are too large to
// run, before anything is allocated.
func (sc Scenario) validateSize() error {
	gl := sc.Globals
	attacker, err := sc.AttackerLaunch()
	if err != nil {
		return fmt.Errorf("attacker: %w: %w", ErrInvalidScenario, err)
	}
	samples := attacker.FlightTime(gl.G) / gl.DTSim
	if !(samples <= trajectory.MaxSamples) {
		return fmt.Errorf("globals.dt_sim=%g gives %.3g attacker samples, max %d: %w",
			gl.DTSim, samples, trajectory.MaxSamples, ErrInvalidScenario)
	}

	p := sc.InterceptParams()
	if err := p.Validate(); err != nil {
		return fmt.Errorf("globals: %w: %w", ErrInvalidScenario, err)
	}
	triples := (math.Ceil(samples) + 1) * float64(len(intercept.AngleGrid(p))) * float64(len(intercept.DelayGrid(p)))
	if triples > maxSearchTriples {
		return fmt.Errorf("search of %.3g candidates exceeds %.0g, raise dt_sim, dtheta_deg or dt_delay: %w",
			triples, maxSearchTriples, ErrInvalidScenario)
	}
	return nil
}

// AttackerTheta returns the attacker launch angle in radians.
func (sc Scenario) AttackerTheta() float64 {
	if sc.Attacker.ThetaDeg == nil {
		return kinematics.DegToRad(DefaultAttackerThetaDeg)
	}
	return kinematics.DegToRad(*sc.Attacker.ThetaDeg)
}

// AttackerLaunch returns the attacker's launch state using its spring speed.
func (sc Scenario) AttackerLaunch() (kinematics.LaunchState, error) {
	v0, err := launcher.LaunchSpeed(sc.Attacker.Spring.Launcher)
	if err != nil {
		return kinematics.LaunchState{}, fmt.Errorf("attacker launch speed: %w", err)
	}
	return kinematics.LaunchState{
		X0:    sc.Attacker.X0,
		Y0:    sc.Attacker.Y0,
		V0:    v0,
		Theta: sc.AttackerTheta(),
	}, nil
}

// DefenderMaxSpeed returns the upper bound on defender launch speed.
func (sc Scenario) DefenderMaxSpeed() (float64, error) {
	if sc.Defender.Spring.Launcher == nil {
		return 0, fmt.Errorf("defender spring: %w", launcher.ErrInvalidParameter)
	}
	v, err := sc.Defender.Spring.Launcher.MaxSpeed()
	if err != nil {
		return 0, fmt.Errorf("defender max speed: %w", err)
	}
	return v, nil
}

// InterceptParams converts the scenario's search settings to radians.
func (sc Scenario) InterceptParams() intercept.Params {
	gl := sc.Globals
	return intercept.Params{
		XD0:        sc.Defender.X0,
		YD0:        sc.Defender.Y0,
		ThetaMin:   kinematics.DegToRad(gl.ThetaMinDeg),
		ThetaMax:   kinematics.DegToRad(gl.ThetaMaxDeg),
		DTheta:     kinematics.DegToRad(gl.DThetaDeg),
		DelayMin:   gl.DelayMin,
		DelayMax:   gl.DelayMax,
		DTDelay:    gl.DTDelay,
		DTAttacker: gl.DTSim,
		Eps:        gl.Eps,
		G:          gl.G,
	}
}
