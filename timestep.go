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

import "gonum.org/v1/gonum/floats"

// epsDiffusivity keeps the stability ratio finite for degenerate edges.
const epsDiffusivity = 1e-30

// StableStep returns the diffusive stability cap on the time step for grid
// g, from Von Neumann stability analysis of the explicit operator:
//
//	Δt_cap = StabilityFactor · min over edges of (Δx² / D)
//
// The Crank–Nicolson scheme is unconditionally stable for the linear
// problem, so this cap is not required for boundedness; steps above it
// oscillate near the surface boundary before settling.
func StableStep(g *Grid, tuning Tuning) float64 {
	ratios := make([]float64, len(g.EdgeD))
	for i, D := range g.EdgeD {
		Δx := g.X[i+1] - g.X[i]
		if D < epsDiffusivity {
			D = epsDiffusivity
		}
		ratios[i] = Δx * Δx / D
	}
	return tuning.StabilityFactor * floats.Min(ratios)
}

// stepController governs the effective time step: it clamps the requested
// step to the stability cap before integration and halves the step on
// solve failure, bounded by a retry budget and an absolute floor.
type stepController struct {
	requested float64
	effective float64
	floor     float64
	halvings  int
	budget    int
}

func newStepController(requested, cap, totalTime float64, tuning Tuning) *stepController {
	eff := requested
	if cap < eff {
		eff = cap
	}
	floor := tuning.MinStepFactor * totalTime
	if tuning.MinStep > floor {
		floor = tuning.MinStep
	}
	return &stepController{
		requested: requested,
		effective: eff,
		floor:     floor,
		budget:    tuning.MaxHalvings,
	}
}

// halve cuts the effective step in half for a retry of the failed step
// window. It reports false when the retry budget or the floor is
// exhausted, in which case the effective step is left unchanged.
func (s *stepController) halve() bool {
	if s.halvings >= s.budget || s.effective/2 < s.floor {
		return false
	}
	s.effective /= 2
	s.halvings++
	return true
}
