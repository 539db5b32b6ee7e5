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

// system holds the Crank–Nicolson coefficients of the discretized
// diffusion–reaction operator for one fixed time step: the implicit-side
// diagonals (aL, bL, cL) and the explicit-side diagonals (aR, bR, cR) used
// to form the right-hand side from the previous concentration vector.
type system struct {
	aL, bL, cL []float64
	aR, bR, cR []float64

	cs float64
	bc BoundaryKind
}

// assemble builds the Crank–Nicolson system for grid g and time step Δt in
// finite-volume form, so no uniform spacing is assumed. For interior node
// i with west/east spacings Δx_w, Δx_e and edge diffusivities D_w, D_e:
//
//	α = 2·D_w / (Δx_w·(Δx_w+Δx_e))   γ = 2·D_e / (Δx_e·(Δx_w+Δx_e))
//
// couple the node to its neighbors over half a step on each side, and the
// reaction term contributes k·Δt/2 to both diagonals. Row 0 pins the
// surface concentration (Dirichlet). The last row either pins zero
// concentration (Dirichlet) or enforces a zero gradient by coupling the
// last two nodes (Neumann), with no ghost node materialized.
func assemble(g *Grid, Δt, cs float64, bc BoundaryKind) *system {
	n := g.N()
	s := &system{
		aL: make([]float64, n), bL: make([]float64, n), cL: make([]float64, n),
		aR: make([]float64, n), bR: make([]float64, n), cR: make([]float64, n),
		cs: cs,
		bc: bc,
	}

	s.bL[0] = 1 // surface row: C[0] = Cs

	for i := 1; i < n-1; i++ {
		Δxw := g.X[i] - g.X[i-1]
		Δxe := g.X[i+1] - g.X[i]
		denom := Δxw + Δxe
		α := 2. * g.EdgeD[i-1] / (Δxw * denom)
		γ := 2. * g.EdgeD[i] / (Δxe * denom)
		k := g.K[i]

		s.aL[i] = -0.5 * Δt * α
		s.cL[i] = -0.5 * Δt * γ
		s.bL[i] = 1. + 0.5*Δt*(α+γ+k)

		s.aR[i] = 0.5 * Δt * α
		s.cR[i] = 0.5 * Δt * γ
		s.bR[i] = 1. - 0.5*Δt*(α+γ+k)
	}

	switch bc {
	case Dirichlet:
		s.bL[n-1] = 1 // C[N-1] = 0
	case Neumann:
		s.aL[n-1] = -1 // C[N-1] − C[N-2] = 0
		s.bL[n-1] = 1
	}
	return s
}

// rhs forms the explicit right-hand side from the previous concentration
// vector c, including both boundary replacements.
func (s *system) rhs(c, out []float64) {
	n := len(c)
	out[0] = s.cs
	for i := 1; i < n-1; i++ {
		out[i] = s.aR[i]*c[i-1] + s.bR[i]*c[i] + s.cR[i]*c[i+1]
	}
	out[n-1] = 0
}

// applyBoundaries forces the boundary values onto a freshly solved
// concentration vector so they hold exactly every step.
func (s *system) applyBoundaries(c []float64) {
	c[0] = s.cs
	n := len(c)
	switch s.bc {
	case Dirichlet:
		c[n-1] = 0
	case Neumann:
		c[n-1] = c[n-2]
	}
}
