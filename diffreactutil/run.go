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

package diffreactutil

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/diffreact"
	"github.com/spatialmodel/diffreact/export"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})
}

func setLogLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("diffreact: parsing log level: %v", err)
	}
	logrus.SetLevel(l)
	return nil
}

// runOptions wires logging, progress reporting and interrupt handling
// into an integration. The returned cleanup function must be called after
// the run finishes.
func runOptions() ([]diffreact.Option, func()) {
	var aborted int32
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	go func() {
		if _, ok := <-sig; ok {
			logger.Warn("interrupt received, finishing the current step")
			atomic.StoreInt32(&aborted, 1)
		}
	}()

	status := make(chan *diffreact.SimulationStatus, 1)
	done := make(chan struct{})
	go func() {
		for s := range status {
			logger.Debug(s.String())
		}
		close(done)
	}()

	lastLogged := 0.0
	opts := []diffreact.Option{
		diffreact.WithCancel(func() bool { return atomic.LoadInt32(&aborted) != 0 }),
		diffreact.WithStatus(status),
		diffreact.WithProgress(func(f float64) {
			if f-lastLogged >= 0.1 || f == 1 {
				logger.Infof("%3.0f%% done", f*100)
				lastLogged = f
			}
		}),
	}
	cleanup := func() {
		signal.Stop(sig)
		close(sig)
		close(status)
		<-done
	}
	return opts, cleanup
}

// RunSimulation integrates the layer stack and writes the results per the
// output specification.
func RunSimulation(layers []diffreact.Layer, cfg diffreact.Config, out OutputSpec) error {
	logger.Infof("simulating %d layers for %g s", len(layers), cfg.TotalTime)

	opts, cleanup := runOptions()
	res, err := diffreact.Run(layers, cfg, opts...)
	cleanup()
	if err != nil {
		return err
	}

	logSummary(res)
	if err := writeResult(res, cfg, out, out.Prefix); err != nil {
		return err
	}
	logger.Info("done")
	return nil
}

// RunSweepSimulation runs a temperature sweep and writes one output set
// per temperature plus a cross-temperature comparison.
func RunSweepSimulation(layers []diffreact.Layer, cfg diffreact.Config, out OutputSpec) error {
	logger.Infof("sweeping %d temperatures over %d layers", len(cfg.Temperatures), len(layers))

	opts, cleanup := runOptions()
	sw, err := diffreact.RunSweep(layers, cfg, opts...)
	cleanup()
	if err != nil {
		return err
	}

	runCfg := cfg
	runCfg.Temperatures = nil
	for i, res := range sw.Runs {
		T := sw.Temperatures[i]
		logger.Infof("T = %g K:", T)
		logSummary(res)
		prefix := fmt.Sprintf("%s_T%gK", out.Prefix, T)
		if err := writeResult(res, runCfg, out, prefix); err != nil {
			return err
		}
	}

	if len(sw.Runs) > 1 {
		if err := writeSweepComparison(sw, out); err != nil {
			return err
		}
	}
	logger.Info("done")
	return nil
}

// logSummary reports the outcome and numerical health of one run.
func logSummary(res *diffreact.Result) {
	d := res.Diagnostics
	logger.Infof("status: %v after %d steps of %g s", res.Status, res.Steps()-1, d.EffectiveStep)
	if d.EffectiveStep < d.RequestedStep {
		logger.Infof("requested step %g s clamped to %g s for stability", d.RequestedStep, d.EffectiveStep)
	}
	last := res.Steps() - 1
	logger.Infof("final surface flux %g mol/(m²·s), target mass %g mol/m²",
		res.FluxSource[last], res.MassInTarget[last])
	logger.Infof("mass-balance residual %.3g%%", d.MassBalanceResidualPercent)
	if d.MassBalanceFlag {
		logger.Warnf("mass-balance residual exceeds %g%%; refine the grid or the time step",
			diffreact.DefaultTuning().MassBalanceTolerance*100)
	}
	if d.ResolutionIndicator > 0 && d.ResolutionIndicator < 4 {
		logger.Warnf("only %.2g cells per reaction length in the target layer; the flux there is under-resolved",
			d.ResolutionIndicator)
	}
}

// writeResult writes one run in every requested format.
func writeResult(res *diffreact.Result, cfg diffreact.Config, out OutputSpec, prefix string) error {
	if err := os.MkdirAll(out.Dir, os.ModePerm); err != nil {
		return fmt.Errorf("diffreact: creating output directory: %v", err)
	}
	write := func(name string, f func(w *os.File) error) error {
		path := filepath.Join(out.Dir, name)
		w, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("diffreact: creating %s: %v", path, err)
		}
		if err := f(w); err != nil {
			w.Close()
			return err
		}
		logger.Debugf("wrote %s", path)
		return w.Close()
	}

	if out.Formats["csv"] {
		if err := write(prefix+"_flux.csv", func(w *os.File) error {
			return export.FluxCSV(w, res)
		}); err != nil {
			return err
		}
		if err := write(prefix+"_profile.csv", func(w *os.File) error {
			return export.FinalProfileCSV(w, res)
		}); err != nil {
			return err
		}
	}
	if out.Formats["xlsx"] {
		if err := write(prefix+".xlsx", func(w *os.File) error {
			return export.Workbook(w, res)
		}); err != nil {
			return err
		}
	}
	if out.Formats["png"] {
		if err := write(prefix+"_flux.png", func(w *os.File) error {
			return export.FluxPlot(w, res)
		}); err != nil {
			return err
		}
		if err := write(prefix+"_profile.png", func(w *os.File) error {
			return export.ProfilePlot(w, res)
		}); err != nil {
			return err
		}
	}
	if out.Formats["json"] {
		if err := write(prefix+".json", func(w *os.File) error {
			return export.WriteMetadata(w, export.NewMetadata(res, cfg))
		}); err != nil {
			return err
		}
	}
	if out.Formats["gob"] {
		if err := write(prefix+".gob", func(w *os.File) error {
			return res.Save(w)
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeSweepComparison writes the cross-temperature flux table and plot.
func writeSweepComparison(sw *diffreact.SweepResult, out OutputSpec) error {
	write := func(name string, f func(w *os.File) error) error {
		path := filepath.Join(out.Dir, name)
		w, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("diffreact: creating %s: %v", path, err)
		}
		if err := f(w); err != nil {
			w.Close()
			return err
		}
		logger.Debugf("wrote %s", path)
		return w.Close()
	}
	if out.Formats["csv"] {
		if err := write(out.Prefix+"_sweep.csv", func(w *os.File) error {
			return export.SweepFluxCSV(w, sw)
		}); err != nil {
			return err
		}
	}
	if out.Formats["png"] {
		if err := write(out.Prefix+"_sweep.png", func(w *os.File) error {
			return export.SweepFluxPlot(w, sw)
		}); err != nil {
			return err
		}
	}
	if out.Formats["gob"] {
		if err := write(out.Prefix+"_sweep.gob", func(w *os.File) error {
			return sw.Save(w)
		}); err != nil {
			return err
		}
	}
	return nil
}

// printSteadyEstimates prints per-layer analytical steady-state
// quantities, treating each layer as a homogeneous slab with the
// configured surface concentration and right boundary.
func printSteadyEstimates(cmd *cobra.Command, layers []diffreact.Layer, cfg diffreact.Config) error {
	for i, l := range layers {
		D := l.Diffusivity
		if l.HasArrhenius() {
			return fmt.Errorf("diffreact: steady estimates for layer %d need a direct diffusivity, not Arrhenius parameters", i+1)
		}
		ℓ := diffreact.CharLength(D, l.ReactionRate)
		Da := diffreact.Damkohler(l.Thickness, D, l.ReactionRate)
		J := diffreact.SteadyFlux(D, l.ReactionRate, l.Thickness, cfg.Cs, cfg.RightBoundary)
		name := l.Name
		if name == "" {
			name = fmt.Sprintf("Layer %d", i+1)
		}
		cmd.Printf("%s: l=%g m  Da=%g  J_steady=%g mol/(m^2*s)\n", name, ℓ, Da, J)
	}
	return nil
}
