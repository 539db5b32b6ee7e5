/*
Copyright © 2026 the DiffReact authors.
This file is part of DiffReact.

DiffReact is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

DiffReact is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with DiffReact.  If not, see <http://www.gnu.org/licenses/>.
*/

package diffreact

import "fmt"

// BoundaryKind selects the boundary condition at the right edge of the
// stack. The left edge always holds the fixed surface concentration.
type BoundaryKind int

const (
	// Neumann is a zero-gradient (impermeable) right boundary.
	Neumann BoundaryKind = iota
	// Dirichlet pins the right boundary concentration to zero
	// (perfect sink).
	Dirichlet
)

func (b BoundaryKind) String() string {
	switch b {
	case Neumann:
		return "Neumann"
	case Dirichlet:
		return "Dirichlet"
	}
	return fmt.Sprintf("BoundaryKind(%d)", int(b))
}

// ParseBoundary converts a boundary condition name to a BoundaryKind.
func ParseBoundary(s string) (BoundaryKind, error) {
	switch s {
	case "Neumann", "neumann":
		return Neumann, nil
	case "Dirichlet", "dirichlet":
		return Dirichlet, nil
	}
	return 0, &ValidationError{
		Field:  "right boundary",
		Reason: fmt.Sprintf("must be Neumann or Dirichlet, got %q", s),
	}
}

// Config holds the per-run simulation parameters.
type Config struct {
	Cs        float64 `desc:"Surface concentration held at x=0" units:"mol/m³"`
	Step      float64 `desc:"Requested time step" units:"s"`
	TotalTime float64 `desc:"Total simulated time" units:"s"`

	RightBoundary BoundaryKind

	// ProbeX is an optional position at which an extra flux history is
	// recorded. It is ignored unless HasProbe is true.
	ProbeX   float64 `desc:"Flux probe position" units:"m"`
	HasProbe bool

	// TargetLayer is the index of the layer whose stored mass and entry
	// flux are tracked. Negative selects the last layer.
	TargetLayer int

	// Temperatures lists the temperatures [K] of a sweep. It may only be
	// set when every layer carries Arrhenius parameters, and only RunSweep
	// accepts it.
	Temperatures []float64
}

// DefaultConfig returns the simulation parameters used when the caller
// specifies nothing: a half-second run of the default barrier/target stack.
func DefaultConfig() Config {
	return Config{
		Cs:            1.0,
		Step:          1e-3,
		TotalTime:     0.5,
		RightBoundary: Dirichlet,
		TargetLayer:   -1,
	}
}

// DefaultLayers returns the default two-layer barrier/target stack: an
// inert barrier film over a reactive target layer.
func DefaultLayers() []Layer {
	return []Layer{
		{
			Name:        "Barrier",
			Thickness:   2.0e-7,
			Diffusivity: 5.0e-15,
			Nodes:       81,
		},
		{
			Name:         "Target",
			Thickness:    3.0e-7,
			Diffusivity:  1.0e-14,
			ReactionRate: 1.0e3,
			Nodes:        121,
		},
	}
}

// Tuning collects the numerical tolerances and factors of the solver as an
// explicit value object so that no run depends on process-wide state.
type Tuning struct {
	// PivotTolerance is the absolute pivot magnitude below which the
	// tridiagonal solve is treated as singular.
	PivotTolerance float64

	// StabilityFactor damps the diffusive stability cap on the time step.
	// Crank–Nicolson is unconditionally stable for the linear problem, but
	// steps above the explicit cap produce boundary oscillations.
	StabilityFactor float64

	// MaxHalvings bounds the number of step-halving retries after a
	// singular solve before the run fails.
	MaxHalvings int

	// MinStep and MinStepFactor set the floor for step halving: the step
	// never drops below max(MinStep, MinStepFactor·TotalTime).
	MinStep       float64
	MinStepFactor float64

	// Epsilon guards divisions in the mass-balance diagnostics.
	Epsilon float64

	// MassBalanceTolerance is the relative residual above which the
	// advisory mass-balance flag is set.
	MassBalanceTolerance float64
}

// DefaultTuning returns the tuning constants used when the caller supplies
// none.
func DefaultTuning() Tuning {
	return Tuning{
		PivotTolerance:       1e-14,
		StabilityFactor:      0.45,
		MaxHalvings:          6,
		MinStep:              1e-9,
		MinStepFactor:        1e-6,
		Epsilon:              1e-12,
		MassBalanceTolerance: 0.01,
	}
}

// checkConfig validates the caller-supplied stack and parameters.
// allowTemperatures is false for single runs, which must not carry a
// temperature list.
func checkConfig(layers []Layer, cfg Config, allowTemperatures bool) error {
	if len(layers) == 0 {
		return &ValidationError{Field: "layers", Reason: "at least one layer must be specified"}
	}
	for i, l := range layers {
		if err := l.check(i); err != nil {
			return err
		}
	}
	if cfg.Cs < 0 {
		return &ValidationError{Field: "surface concentration", Reason: "must be non-negative"}
	}
	if cfg.Step <= 0 {
		return &ValidationError{Field: "time step", Reason: "must be positive"}
	}
	if cfg.TotalTime <= 0 {
		return &ValidationError{Field: "total time", Reason: "must be positive"}
	}
	if cfg.RightBoundary != Neumann && cfg.RightBoundary != Dirichlet {
		return &ValidationError{Field: "right boundary", Reason: "must be Neumann or Dirichlet"}
	}
	if cfg.TargetLayer >= len(layers) {
		return &ValidationError{
			Field:  "target layer",
			Reason: fmt.Sprintf("index %d out of range for %d layers", cfg.TargetLayer, len(layers)),
		}
	}
	if cfg.HasProbe {
		var total float64
		for _, l := range layers {
			total += l.Thickness
		}
		if cfg.ProbeX < 0 || cfg.ProbeX > total {
			return &ValidationError{
				Field:  "probe position",
				Reason: fmt.Sprintf("%g m lies outside the stack [0, %g m]", cfg.ProbeX, total),
			}
		}
	}
	if !allowTemperatures {
		if len(cfg.Temperatures) > 0 {
			return &ValidationError{
				Field:  "temperatures",
				Reason: "temperature sweeps must be run with RunSweep",
			}
		}
		for i, l := range layers {
			if l.HasArrhenius() && l.Diffusivity <= 0 {
				return &ValidationError{
					Field:  fmt.Sprintf("layer %d", i+1),
					Reason: "carries Arrhenius parameters but no temperature list; use RunSweep",
				}
			}
		}
	}
	if allowTemperatures {
		if len(cfg.Temperatures) == 0 {
			return &ValidationError{Field: "temperatures", Reason: "at least one temperature must be specified"}
		}
		for _, T := range cfg.Temperatures {
			if T <= 0 {
				return &ValidationError{Field: "temperatures", Reason: "must all be positive"}
			}
		}
		for i, l := range layers {
			if !l.HasArrhenius() {
				return &ValidationError{
					Field:  fmt.Sprintf("layer %d", i+1),
					Reason: "lacks Arrhenius parameters required for a temperature sweep",
				}
			}
		}
	}
	return nil
}
