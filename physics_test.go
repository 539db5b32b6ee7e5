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

import (
	"math"
	"testing"
)

func TestCharLength(t *testing.T) {
	if got := CharLength(1e-14, 1e3); different(got, math.Sqrt(1e-17), 1e-12) {
		t.Errorf("characteristic length: got %g, want %g", got, math.Sqrt(1e-17))
	}
	if !math.IsInf(CharLength(1e-14, 0), 1) {
		t.Error("non-reactive characteristic length must be +Inf")
	}
}

func TestDamkohler(t *testing.T) {
	if got := Damkohler(5e-7, 1e-14, 1e3); different(got, 5e-7/math.Sqrt(1e-17), 1e-12) {
		t.Errorf("Damköhler number: got %g", got)
	}
	if got := Damkohler(5e-7, 1e-14, 0); got != 0 {
		t.Errorf("non-reactive Damköhler number: got %g, want 0", got)
	}
}

func TestSteadyFlux(t *testing.T) {
	const (
		D  = 1e-14
		L  = 5e-7
		Cs = 2.0
	)

	// Non-reactive limits.
	if got := SteadyFlux(D, 0, L, Cs, Neumann); got != 0 {
		t.Errorf("non-reactive Neumann flux: got %g, want 0", got)
	}
	if got := SteadyFlux(D, 0, L, Cs, Dirichlet); different(got, D*Cs/L, 1e-12) {
		t.Errorf("non-reactive Dirichlet flux: got %g, want %g", got, D*Cs/L)
	}

	// Deep absorption: both boundaries converge on Cs·sqrt(D·k).
	k := 1e4
	deep := Cs * math.Sqrt(D*k)
	if got := SteadyFlux(D, k, L, Cs, Neumann); different(got, deep, 1e-6) {
		t.Errorf("deep Neumann flux: got %g, want %g", got, deep)
	}
	if got := SteadyFlux(D, k, L, Cs, Dirichlet); different(got, deep, 1e-6) {
		t.Errorf("deep Dirichlet flux: got %g, want %g", got, deep)
	}

	// Weak reaction: the Dirichlet flux approaches the linear-profile
	// limit from above, the Neumann flux approaches k·L·Cs (everything
	// entering reacts).
	k = 1e-5
	if got, want := SteadyFlux(D, k, L, Cs, Dirichlet), D*Cs/L; different(got, want, 1e-3) {
		t.Errorf("weak Dirichlet flux: got %g, want about %g", got, want)
	}
	if got, want := SteadyFlux(D, k, L, Cs, Neumann), k*L*Cs; different(got, want, 1e-3) {
		t.Errorf("weak Neumann flux: got %g, want about %g", got, want)
	}
}
