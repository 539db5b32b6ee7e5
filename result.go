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

// Status is the terminal state of an integration.
type Status int

const (
	NotStarted Status = iota
	Stepping
	// Completed means the integration reached the configured total time.
	Completed
	// Aborted means cooperative cancellation halted the run; the result
	// holds whatever had been computed. It is not an error.
	Aborted
	// Failed means the run ended with an unrecoverable numerical failure.
	Failed
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Stepping:
		return "stepping"
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Diagnostics summarizes numerical health indicators of a completed run.
type Diagnostics struct {
	RequestedStep float64 `desc:"Time step requested by the caller" units:"s"`
	EffectiveStep float64 `desc:"Time step actually used" units:"s"`

	// MassBalanceResidualPercent is the relative mass-balance residual of
	// the run in percent; MassBalanceFlag is set when it exceeds the
	// advisory tolerance. The flag is never raised as an error.
	MassBalanceResidualPercent float64
	MassBalanceFlag            bool

	// ResolutionIndicator is ℓ/Δx_min for the target layer, where
	// ℓ = sqrt(D/k) is the reactive characteristic length. It is 0 when
	// the target layer is non-reactive, and is advisory only.
	ResolutionIndicator float64

	TotalThickness float64 `desc:"Thickness of the layer stack" units:"m"`
}

// Result is the immutable outcome of one integration. All sequences share
// the time axis Time; Conc is stored row-major by time, so Conc[i][j] is
// the concentration at Time[i] and Position[j].
type Result struct {
	Status Status

	Time     []float64 // [s]
	Position []float64 // [m]

	Conc [][]float64 // [mol/m³]

	FluxSource          []float64 // flux into the stack at x=0 [mol/(m²·s)]
	FluxTargetInterface []float64 // flux entering the target layer
	FluxExit            []float64 // flux out of the right boundary
	FluxProbe           []float64 // flux at the probe position; nil without a probe

	CumFluxSource          []float64 // running time integrals [mol/m²]
	CumFluxTargetInterface []float64
	CumFluxExit            []float64
	CumFluxProbe           []float64

	MassInTarget []float64 // stored mass per area in the target layer [mol/m²]

	// Reaction and EdgeDiffusivity are the per-node reaction rates and
	// per-edge diffusivities the run was computed with; diagnostics
	// consumers need them to reconstruct the reaction sink term.
	Reaction        []float64
	EdgeDiffusivity []float64

	LayerBoundaries []float64 // cumulative layer edges, including 0 and the total thickness [m]
	LayerNames      []string

	Diagnostics Diagnostics
}

// Steps returns the number of recorded time levels,
// including the initial condition.
func (r *Result) Steps() int { return len(r.Time) }

// Final returns the last recorded concentration profile.
func (r *Result) Final() []float64 {
	return r.Conc[len(r.Conc)-1]
}

// SweepResult aggregates the per-temperature results of a temperature
// sweep. All runs share a single time step, so Time is common to every
// member, as is Position (the grid does not depend on temperature).
type SweepResult struct {
	Status Status

	Temperatures []float64 // [K], in request order
	Time         []float64 // [s]
	Position     []float64 // [m]

	// Runs holds one Result per entry of Temperatures. On an aborted
	// sweep, Runs is shorter than Temperatures.
	Runs []*Result
}

// Run returns the result for temperature T, or nil if the sweep holds no
// run at that temperature.
func (s *SweepResult) Run(T float64) *Result {
	for i, t := range s.Temperatures {
		if t == T && i < len(s.Runs) {
			return s.Runs[i]
		}
	}
	return nil
}

// Conc returns the concentration for sweep member i at time index it and
// node index ix.
func (s *SweepResult) Conc(i, it, ix int) float64 {
	return s.Runs[i].Conc[it][ix]
}
