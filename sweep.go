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

// RunSweep repeats the grid build and integration once per temperature in
// cfg.Temperatures, deriving each layer's diffusivity from its Arrhenius
// parameters. Every layer must carry Arrhenius parameters.
//
// Before any integration starts, the stability cap is computed for every
// temperature and the single smallest cap (clamped to the requested step)
// becomes the shared time step for all runs. Per-temperature caps differ
// by orders of magnitude between hot and cold ends of a sweep; a shared
// step keeps every member's time sequence identical so results aggregate
// directly.
//
// Temperatures run sequentially. The cancellation predicate is polled
// between temperatures, not mid-run; cancellation yields a partial
// SweepResult tagged Aborted with a nil error. A numerical failure returns
// the partial SweepResult together with a *NumericalError identifying the
// failed temperature.
func RunSweep(layers []Layer, cfg Config, opts ...Option) (*SweepResult, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := checkConfig(layers, cfg, true); err != nil {
		return nil, err
	}

	sweep := &SweepResult{
		Status:       Stepping,
		Temperatures: cfg.Temperatures,
	}

	// Grids per temperature share node positions; only the coefficient
	// fields differ.
	grids := make([]*Grid, len(cfg.Temperatures))
	shared := cfg.Step
	for i, T := range cfg.Temperatures {
		g, err := NewGrid(layersAt(layers, T))
		if err != nil {
			return nil, err
		}
		grids[i] = g
		if cap := StableStep(g, o.tuning); cap < shared {
			shared = cap
		}
	}
	sweep.Position = grids[0].X

	runCfg := cfg
	runCfg.Step = shared
	runCfg.Temperatures = nil

	nT := len(cfg.Temperatures)
	for i, T := range cfg.Temperatures {
		if o.cancel != nil && o.cancel() {
			sweep.Status = Aborted
			return sweep, nil
		}

		runOpts := o
		runOpts.cancel = nil // polled here, between temperatures
		if o.progress != nil {
			i := i
			runOpts.progress = func(f float64) {
				o.progress((float64(i) + f) / float64(nT))
			}
		}
		res, err := integrate(grids[i], runCfg, runOpts, i, T)
		if res != nil {
			sweep.Runs = append(sweep.Runs, res)
		}
		if err != nil {
			sweep.Status = Failed
			return sweep, err
		}
		if sweep.Time == nil {
			sweep.Time = res.Time
		}
	}

	if o.progress != nil {
		o.progress(1)
	}
	sweep.Status = Completed
	return sweep, nil
}
