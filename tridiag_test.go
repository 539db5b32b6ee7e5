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
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestTridiagonalResidual(t *testing.T) {
	const n = 50
	rng := rand.New(rand.NewSource(1))

	a := make([]float64, n)
	b := make([]float64, n)
	c := make([]float64, n)
	d := make([]float64, n)
	x := make([]float64, n)

	// Diagonally dominant random system, the shape the time stepper
	// produces.
	for i := 0; i < n; i++ {
		a[i] = -rng.Float64()
		c[i] = -rng.Float64()
		b[i] = 1 + math.Abs(a[i]) + math.Abs(c[i]) + rng.Float64()
		d[i] = rng.Float64()
	}
	a[0], c[n-1] = 0, 0

	solver := newTridiagonal(n, DefaultTuning().PivotTolerance)
	if err := solver.solve(a, b, c, d, x); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < n; i++ {
		got := b[i] * x[i]
		if i > 0 {
			got += a[i] * x[i-1]
		}
		if i < n-1 {
			got += c[i] * x[i+1]
		}
		if different(got, d[i], 1e-10) {
			t.Errorf("row %d: A·x = %g, want %g", i, got, d[i])
		}
	}
}

func TestTridiagonalScratchReuse(t *testing.T) {
	solver := newTridiagonal(3, 1e-14)
	a := []float64{0, -1, -1}
	b := []float64{4, 4, 4}
	c := []float64{-1, -1, 0}
	x := make([]float64, 3)

	for trial := 0; trial < 3; trial++ {
		d := []float64{1, 2, 3}
		if err := solver.solve(a, b, c, d, x); err != nil {
			t.Fatal(err)
		}
		for i := range x {
			var got float64
			switch i {
			case 0:
				got = b[0]*x[0] + c[0]*x[1]
			case 1:
				got = a[1]*x[0] + b[1]*x[1] + c[1]*x[2]
			case 2:
				got = a[2]*x[1] + b[2]*x[2]
			}
			if different(got, d[i], 1e-12) {
				t.Errorf("trial %d row %d: A·x = %g, want %g", trial, i, got, d[i])
			}
		}
	}
}

func TestTridiagonalSingular(t *testing.T) {
	solver := newTridiagonal(3, 1e-14)
	x := make([]float64, 3)

	// Zero leading pivot.
	err := solver.solve(
		[]float64{0, 1, 1},
		[]float64{0, 2, 2},
		[]float64{1, 1, 0},
		[]float64{1, 1, 1}, x)
	var serr *SingularMatrixError
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, want SingularMatrixError", err)
	}
	if serr.Row != 0 {
		t.Errorf("singular row: got %d, want 0", serr.Row)
	}

	// Elimination cancels the second pivot: b[1] − a[1]·c[0]/b[0] = 0.
	err = solver.solve(
		[]float64{0, 1, 1},
		[]float64{1, 1, 2},
		[]float64{1, 1, 0},
		[]float64{1, 1, 1}, x)
	if !errors.As(err, &serr) {
		t.Fatalf("got %v, want SingularMatrixError", err)
	}
	if serr.Row != 1 {
		t.Errorf("singular row: got %d, want 1", serr.Row)
	}
}
