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
	"testing"
)

func arrheniusStack() []Layer {
	return []Layer{
		{Name: "Barrier", Thickness: 2e-7, D0: 1e-6, Ea: 0.6, Nodes: 41},
		{Name: "Target", Thickness: 3e-7, D0: 1e-6, Ea: 0.5, ReactionRate: 100, Nodes: 61},
	}
}

func sweepConfig() Config {
	return Config{
		Cs:            1.0,
		Step:          1e-5,
		TotalTime:     2e-4,
		RightBoundary: Neumann,
		TargetLayer:   -1,
		Temperatures:  []float64{300, 400, 500},
	}
}

func TestArrheniusDiffusivity(t *testing.T) {
	l := Layer{D0: 1e-6, Ea: 0.5}
	got := l.DiffusivityAt(300)
	want := 1e-6 * math.Exp(-0.5/(Boltzmann*300))
	if different(got, want, 1e-12) {
		t.Errorf("D(300 K): got %g, want %g", got, want)
	}
	// Hotter means faster: the ratio over 100 K is orders of magnitude.
	if ratio := l.DiffusivityAt(400) / l.DiffusivityAt(300); ratio < 100 {
		t.Errorf("D(400)/D(300) = %g, want a strong increase", ratio)
	}
	// A direct diffusivity ignores temperature.
	direct := Layer{Diffusivity: 1e-14}
	if direct.DiffusivityAt(300) != 1e-14 || direct.DiffusivityAt(500) != 1e-14 {
		t.Error("direct diffusivity must not depend on temperature")
	}
}

func TestSweepSharedStep(t *testing.T) {
	sw, err := RunSweep(arrheniusStack(), sweepConfig())
	if err != nil {
		t.Fatal(err)
	}
	if sw.Status != Completed {
		t.Fatalf("status: got %v, want completed", sw.Status)
	}
	if len(sw.Runs) != 3 {
		t.Fatalf("run count: got %d, want 3", len(sw.Runs))
	}

	// The hottest member has the largest diffusivity and so the smallest
	// stability cap; its cap binds every member.
	g, err := NewGrid(layersAt(arrheniusStack(), 500))
	if err != nil {
		t.Fatal(err)
	}
	want := StableStep(g, DefaultTuning())
	if want > sweepConfig().Step {
		want = sweepConfig().Step
	}

	first := sw.Runs[0]
	for i, r := range sw.Runs {
		if r.Status != Completed {
			t.Fatalf("member %d status: got %v, want completed", i, r.Status)
		}
		if different(r.Diagnostics.EffectiveStep, want, 1e-12) {
			t.Errorf("member %d step %g, want shared %g", i, r.Diagnostics.EffectiveStep, want)
		}
		if r.Steps() != first.Steps() {
			t.Errorf("member %d has %d time levels, member 0 has %d", i, r.Steps(), first.Steps())
		}
	}
	if len(sw.Time) != first.Steps() {
		t.Errorf("sweep time axis length %d, want %d", len(sw.Time), first.Steps())
	}
	if len(sw.Position) != len(first.Position) {
		t.Errorf("sweep position length %d, want %d", len(sw.Position), len(first.Position))
	}

	// More heat, more transport: the cumulative uptake is ordered by
	// temperature.
	last := first.Steps() - 1
	for i := 1; i < len(sw.Runs); i++ {
		if sw.Runs[i].CumFluxSource[last] <= sw.Runs[i-1].CumFluxSource[last] {
			t.Errorf("uptake at %g K (%g) not above %g K (%g)",
				sw.Temperatures[i], sw.Runs[i].CumFluxSource[last],
				sw.Temperatures[i-1], sw.Runs[i-1].CumFluxSource[last])
		}
	}
}

func TestSweepRunLookup(t *testing.T) {
	sw, err := RunSweep(arrheniusStack(), sweepConfig())
	if err != nil {
		t.Fatal(err)
	}
	if sw.Run(400) != sw.Runs[1] {
		t.Error("lookup by temperature returned the wrong member")
	}
	if sw.Run(999) != nil {
		t.Error("lookup of an absent temperature must return nil")
	}
	if got := sw.Conc(0, 0, 0); got != sweepConfig().Cs {
		t.Errorf("initial surface concentration: got %g, want %g", got, sweepConfig().Cs)
	}
}

func TestSweepValidation(t *testing.T) {
	cases := []struct {
		name   string
		layers []Layer
		mangle func(*Config)
	}{
		{"no temperatures", arrheniusStack(), func(c *Config) { c.Temperatures = nil }},
		{"non-positive temperature", arrheniusStack(), func(c *Config) { c.Temperatures = []float64{300, -5} }},
		{"layer without arrhenius parameters",
			[]Layer{{Thickness: 1e-7, Diffusivity: 1e-14, Nodes: 11}},
			func(c *Config) {}},
	}
	for _, c := range cases {
		cfg := sweepConfig()
		c.mangle(&cfg)
		_, err := RunSweep(c.layers, cfg)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: got %v, want ValidationError", c.name, err)
		}
	}
}

// Cancellation is polled between temperatures, so an abort after the first
// member leaves exactly one completed run.
func TestSweepCancellation(t *testing.T) {
	polls := 0
	sw, err := RunSweep(arrheniusStack(), sweepConfig(), WithCancel(func() bool {
		polls++
		return polls > 1
	}))
	if err != nil {
		t.Fatalf("cancellation returned an error: %v", err)
	}
	if sw.Status != Aborted {
		t.Fatalf("status: got %v, want aborted", sw.Status)
	}
	if len(sw.Runs) != 1 {
		t.Fatalf("completed members: got %d, want 1", len(sw.Runs))
	}
	if sw.Runs[0].Status != Completed {
		t.Errorf("first member status: got %v, want completed", sw.Runs[0].Status)
	}
}

func TestSweepProgress(t *testing.T) {
	var fractions []float64
	_, err := RunSweep(arrheniusStack(), sweepConfig(), WithProgress(func(f float64) {
		fractions = append(fractions, f)
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(fractions) == 0 || fractions[len(fractions)-1] != 1 {
		t.Fatalf("progress did not reach 1: %v", fractions[len(fractions)-1])
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Fatalf("progress went backwards: %g after %g", fractions[i], fractions[i-1])
		}
	}
}
