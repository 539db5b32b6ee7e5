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

import "math"

// CharLength returns the reactive characteristic length ℓ = sqrt(D/k) [m].
// For k ≤ 0 it returns +Inf.
func CharLength(D, k float64) float64 {
	if k <= 0 {
		return math.Inf(1)
	}
	return math.Sqrt(D / k)
}

// Damkohler returns the Damköhler number Da = L/ℓ for a layer of thickness
// L, or 0 when the layer is non-reactive.
func Damkohler(L, D, k float64) float64 {
	ℓ := CharLength(D, k)
	if math.IsInf(ℓ, 1) {
		return 0
	}
	return L / ℓ
}

// SteadyFlux returns the analytical steady-state flux at x=0 for a single
// homogeneous layer with fixed surface concentration Cs and the given
// right boundary:
//
//	Neumann:   J = (D/ℓ)·Cs·tanh(L/ℓ)
//	Dirichlet: J = (D/ℓ)·Cs·coth(L/ℓ)
//
// For k=0 the limits are 0 (Neumann: the steady profile is uniformly Cs)
// and D·Cs/L (Dirichlet: linear profile into a perfect sink).
func SteadyFlux(D, k, L, Cs float64, bc BoundaryKind) float64 {
	ℓ := CharLength(D, k)
	if math.IsInf(ℓ, 1) {
		if bc == Neumann {
			return 0
		}
		return D * Cs / L
	}
	Da := L / ℓ
	if bc == Neumann {
		return (D / ℓ) * Cs * math.Tanh(Da)
	}
	// coth(Da) ~ 1/Da for very small Da.
	if Da < 1e-12 {
		return (D / ℓ) * Cs / Da
	}
	return (D / ℓ) * Cs / math.Tanh(Da)
}
