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
	"fmt"
	"math"
	"time"
)

// SimulationStatus holds information about the progress of a running
// integration. Values are sent over the status channel without blocking
// and are advisory only.
type SimulationStatus struct {
	Iteration int
	Time      float64 // simulated time [s]
	TotalTime float64 // [s]
	Step      float64 // current time step [s]
	Walltime  time.Duration
}

func (s *SimulationStatus) String() string {
	return fmt.Sprintf("Iteration %-5d  t=%-10.4g s  Δt=%-8.3g s  walltime=%v",
		s.Iteration, s.Time, s.Step, s.Walltime.Round(time.Millisecond))
}

type options struct {
	progress func(float64)
	cancel   func() bool
	status   chan<- *SimulationStatus
	tuning   Tuning
}

// Option configures a call to Run or RunSweep.
type Option func(*options)

// WithProgress registers a progress sink. It is invoked with a
// fraction-complete value in [0, 1] at a coarse granularity (roughly every
// percent of simulated time) and once at completion. It must not be relied
// upon for correctness.
func WithProgress(report func(fraction float64)) Option {
	return func(o *options) { o.progress = report }
}

// WithCancel registers a cooperative cancellation predicate. It is polled
// once per completed step (single runs) or once per completed temperature
// (sweeps); a true return halts the integration with a partial result
// tagged Aborted. There is no preemptive interruption, so a single very
// expensive step cannot be cut short.
func WithCancel(shouldAbort func() bool) Option {
	return func(o *options) { o.cancel = shouldAbort }
}

// WithStatus registers a channel receiving advisory status updates. Sends
// never block; updates are dropped when the receiver lags.
func WithStatus(c chan<- *SimulationStatus) Option {
	return func(o *options) { o.status = c }
}

// WithTuning replaces the default numerical tolerances and factors.
func WithTuning(t Tuning) Option {
	return func(o *options) { o.tuning = t }
}

func defaultOptions() options {
	return options{tuning: DefaultTuning()}
}

// Run integrates the diffusion–reaction equation through the given layer
// stack from t=0 to cfg.TotalTime and returns the completed result. It is
// a pure function of its inputs: all state lives in the returned Result,
// and the same inputs always produce the same output.
//
// A cancelled run returns a partial Result with Status Aborted and a nil
// error. An unrecoverable numerical failure returns the partial Result
// with Status Failed together with a *NumericalError.
func Run(layers []Layer, cfg Config, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkConfig(layers, cfg, false); err != nil {
		return nil, err
	}
	g, err := NewGrid(layers)
	if err != nil {
		return nil, err
	}
	return integrate(g, cfg, o, -1, 0)
}

// integrate drives the time-stepping loop on a prepared grid. tempIndex
// and temperature attribute failures to a sweep member; tempIndex is -1
// for single runs.
func integrate(g *Grid, cfg Config, o options, tempIndex int, temperature float64) (*Result, error) {
	n := g.N()
	ti := cfg.TargetLayer
	if ti < 0 {
		ti = len(g.LayerStart) - 1
	}
	targetStart := g.LayerStart[ti]
	targetEnd := g.LayerEnd[ti]

	// Flux into the target layer is sampled on the first edge past the
	// interface node. A target layer at the surface has no upstream
	// interface; its entry flux falls back to the exit flux.
	interfaceEdge := -1
	if ti > 0 {
		interfaceEdge = g.LayerStart[ti]
	}
	probeEdge := -1
	if cfg.HasProbe {
		probeEdge = g.edgeAt(cfg.ProbeX)
	}

	ctrl := newStepController(cfg.Step, StableStep(g, o.tuning), cfg.TotalTime, o.tuning)
	sys := assemble(g, ctrl.effective, cfg.Cs, cfg.RightBoundary)
	solver := newTridiagonal(n, o.tuning.PivotTolerance)

	res := &Result{
		Status:          Stepping,
		Position:        g.X,
		Reaction:        g.K,
		EdgeDiffusivity: g.EdgeD,
		LayerBoundaries: g.LayerEdges,
		LayerNames:      g.Names,
	}

	flux := func(c []float64, edge int) float64 {
		return -g.EdgeD[edge] * (c[edge+1] - c[edge]) / (g.X[edge+1] - g.X[edge])
	}
	record := func(t float64, c []float64) {
		res.Time = append(res.Time, t)
		row := make([]float64, n)
		copy(row, c)
		res.Conc = append(res.Conc, row)

		jExit := flux(c, n-2)
		jTarget := jExit
		if interfaceEdge >= 0 {
			jTarget = flux(c, interfaceEdge)
		}
		res.FluxSource = append(res.FluxSource, flux(c, 0))
		res.FluxExit = append(res.FluxExit, jExit)
		res.FluxTargetInterface = append(res.FluxTargetInterface, jTarget)
		res.CumFluxSource = accumulate(res.CumFluxSource, res.FluxSource, res.Time)
		res.CumFluxExit = accumulate(res.CumFluxExit, res.FluxExit, res.Time)
		res.CumFluxTargetInterface = accumulate(res.CumFluxTargetInterface, res.FluxTargetInterface, res.Time)
		if probeEdge >= 0 {
			res.FluxProbe = append(res.FluxProbe, flux(c, probeEdge))
			res.CumFluxProbe = accumulate(res.CumFluxProbe, res.FluxProbe, res.Time)
		}
		res.MassInTarget = append(res.MassInTarget, trapz(c[targetStart:targetEnd], g.X[targetStart:targetEnd]))
	}
	finish := func(status Status) {
		res.Status = status
		res.Diagnostics = Diagnostics{
			RequestedStep:       cfg.Step,
			EffectiveStep:       ctrl.effective,
			ResolutionIndicator: resolutionIndicator(g, ti),
			TotalThickness:      g.TotalThickness(),
		}
		if len(res.Time) > 1 {
			mb := ComputeMassBalance(res, o.tuning)
			res.Diagnostics.MassBalanceResidualPercent = mb.Relative * 100
			res.Diagnostics.MassBalanceFlag = mb.Relative > o.tuning.MassBalanceTolerance
		}
	}

	c := make([]float64, n)
	c[0] = cfg.Cs
	sys.applyBoundaries(c)
	record(0, c)
	if o.progress != nil {
		o.progress(0)
	}

	rhs := make([]float64, n)
	next := make([]float64, n)
	t := 0.0
	iteration := 0
	lastReport := 0.0
	start := time.Now()

	for t+ctrl.effective <= cfg.TotalTime*(1+1e-12) {
		iteration++
		sys.rhs(c, rhs)
		if err := solver.solve(sys.aL, sys.bL, sys.cL, rhs, next); err != nil {
			if !ctrl.halve() {
				finish(Failed)
				return res, &NumericalError{
					Step:        ctrl.effective,
					Iteration:   iteration,
					TempIndex:   tempIndex,
					Temperature: temperature,
					Err:         err,
				}
			}
			// Restart the same step window with the halved step, not the
			// whole run.
			sys = assemble(g, ctrl.effective, cfg.Cs, cfg.RightBoundary)
			iteration--
			continue
		}
		sys.applyBoundaries(next)
		copy(c, next)
		t += ctrl.effective
		record(t, c)

		if o.status != nil {
			select {
			case o.status <- &SimulationStatus{
				Iteration: iteration,
				Time:      t,
				TotalTime: cfg.TotalTime,
				Step:      ctrl.effective,
				Walltime:  time.Since(start),
			}:
			default:
			}
		}
		if o.progress != nil {
			if f := t / cfg.TotalTime; f-lastReport >= 0.01 {
				o.progress(f)
				lastReport = f
			}
		}
		if o.cancel != nil && o.cancel() {
			finish(Aborted)
			return res, nil
		}
	}

	if o.progress != nil {
		o.progress(1)
	}
	finish(Completed)
	return res, nil
}

// resolutionIndicator returns ℓ/Δx_min for layer ti of the grid, where
// ℓ = sqrt(D/k) is the reactive characteristic length, or 0 when the
// layer is non-reactive.
func resolutionIndicator(g *Grid, ti int) float64 {
	// The last node of a layer carries its own D and k even when the
	// layer's first node is a shared interface node carrying the previous
	// layer's values.
	i := g.LayerEnd[ti] - 1
	D, k := g.D[i], g.K[i]
	if k <= 0 {
		return 0
	}
	ℓ := math.Sqrt(D / k)
	Δxmin := math.Inf(1)
	for j := g.LayerStart[ti] + 1; j < g.LayerEnd[ti]; j++ {
		if Δx := g.X[j] - g.X[j-1]; Δx < Δxmin {
			Δxmin = Δx
		}
	}
	return ℓ / Δxmin
}
