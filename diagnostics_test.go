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

func TestTrapz(t *testing.T) {
	x := []float64{0, 1, 2, 4}
	y := []float64{0, 2, 4, 8} // y = 2x integrates to x²
	if got := trapz(y, x); different(got, 16, 1e-12) {
		t.Errorf("trapz: got %g, want 16", got)
	}
	if got := trapz(y[:1], x[:1]); got != 0 {
		t.Errorf("single-point trapz: got %g, want 0", got)
	}
}

func TestCumTrapz(t *testing.T) {
	x := []float64{0, 1, 2, 4}
	y := []float64{0, 2, 4, 8}
	got := CumTrapz(y, x)
	want := []float64{0, 1, 4, 16}
	for i := range want {
		if different(got[i], want[i], 1e-12) {
			t.Errorf("CumTrapz[%d]: got %g, want %g", i, got[i], want[i])
		}
	}
}

// accumulate must agree with CumTrapz when applied one level at a time,
// including over an irregular time axis.
func TestAccumulate(t *testing.T) {
	x := []float64{0, 0.5, 0.75, 2}
	y := []float64{1, 3, 2, 5}
	want := CumTrapz(y, x)
	var cum []float64
	for i := 1; i <= len(y); i++ {
		cum = accumulate(cum, y[:i], x[:i])
	}
	for i := range want {
		if different(cum[i], want[i], 1e-12) {
			t.Errorf("accumulate[%d]: got %g, want %g", i, cum[i], want[i])
		}
	}
}

// Mass balance of a hand-built two-level result: a uniform grid whose
// interior gains ΔC per node, with matching recorded fluxes.
func TestComputeMassBalance(t *testing.T) {
	const (
		n  = 5
		Δx = 1e-8
		Δt = 1e-3
	)
	r := &Result{
		Time:     []float64{0, Δt},
		Position: make([]float64, n),
		Reaction: make([]float64, n),
	}
	for i := range r.Position {
		r.Position[i] = float64(i) * Δx
	}
	c0 := []float64{1, 0, 0, 0, 0}
	c1 := []float64{1, 0.4, 0.1, 0, 0}
	r.Conc = [][]float64{c0, c1}

	// Stored interior mass change.
	stored := (0.4 + 0.1) * Δx

	// Choose boundary fluxes whose trapezoid-in-time integral equals the
	// stored mass exactly; the residual must then vanish.
	jSrc := stored / Δt
	r.FluxSource = []float64{jSrc, jSrc}
	r.FluxExit = []float64{0, 0}
	r.CumFluxSource = CumTrapz(r.FluxSource, r.Time)
	r.CumFluxExit = CumTrapz(r.FluxExit, r.Time)

	mb := ComputeMassBalance(r, DefaultTuning())
	if different(mb.Stored, stored, 1e-12) {
		t.Errorf("stored mass: got %g, want %g", mb.Stored, stored)
	}
	if mb.Reacted != 0 {
		t.Errorf("reacted mass: got %g, want 0", mb.Reacted)
	}
	if math.Abs(mb.Residual) > 1e-20 {
		t.Errorf("residual: got %g, want 0", mb.Residual)
	}
	if mb.Relative > 1e-10 {
		t.Errorf("relative residual: got %g", mb.Relative)
	}
}

// The reaction sink enters the balance as the space-time integral of k·C
// over the interior cells.
func TestComputeMassBalanceReaction(t *testing.T) {
	const (
		n  = 4
		Δx = 1e-8
		Δt = 2e-3
		k  = 50.0
	)
	r := &Result{
		Time:     []float64{0, Δt},
		Position: make([]float64, n),
		Reaction: make([]float64, n),
	}
	for i := range r.Position {
		r.Position[i] = float64(i) * Δx
		r.Reaction[i] = k
	}
	c0 := []float64{1, 0.2, 0.1, 0}
	c1 := []float64{1, 0.5, 0.3, 0}
	r.Conc = [][]float64{c0, c1}
	r.FluxSource = []float64{0, 0}
	r.FluxExit = []float64{0, 0}
	r.CumFluxSource = []float64{0, 0}
	r.CumFluxExit = []float64{0, 0}

	sink0 := k * (0.2 + 0.1) * Δx
	sink1 := k * (0.5 + 0.3) * Δx
	wantReacted := 0.5 * (sink0 + sink1) * Δt

	mb := ComputeMassBalance(r, DefaultTuning())
	if different(mb.Reacted, wantReacted, 1e-12) {
		t.Errorf("reacted mass: got %g, want %g", mb.Reacted, wantReacted)
	}
}
