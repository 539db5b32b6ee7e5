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

// Package export writes simulation results to CSV, Microsoft Excel, JSON
// and PNG files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spatialmodel/diffreact"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fluxHeader returns the flux table column names. The probe columns are
// only present when the run recorded a probe.
func fluxHeader(r *diffreact.Result) []string {
	h := []string{
		"t[s]",
		"Flux_surface[mol/(m^2*s)]",
		"Flux_target_interface[mol/(m^2*s)]",
		"Flux_exit[mol/(m^2*s)]",
		"Cum_flux_surface[mol/m^2]",
		"Cum_flux_target_interface[mol/m^2]",
		"Cum_flux_exit[mol/m^2]",
		"Mass_target[mol/m^2]",
	}
	if r.FluxProbe != nil {
		h = append(h, "Flux_probe[mol/(m^2*s)]", "Cum_flux_probe[mol/m^2]")
	}
	return h
}

// FluxCSV writes the flux and mass histories of a run as CSV, one row per
// recorded time level.
func FluxCSV(w io.Writer, r *diffreact.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fluxHeader(r)); err != nil {
		return fmt.Errorf("export: writing flux table: %w", err)
	}
	for i := range r.Time {
		row := []string{
			formatFloat(r.Time[i]),
			formatFloat(r.FluxSource[i]),
			formatFloat(r.FluxTargetInterface[i]),
			formatFloat(r.FluxExit[i]),
			formatFloat(r.CumFluxSource[i]),
			formatFloat(r.CumFluxTargetInterface[i]),
			formatFloat(r.CumFluxExit[i]),
			formatFloat(r.MassInTarget[i]),
		}
		if r.FluxProbe != nil {
			row = append(row, formatFloat(r.FluxProbe[i]), formatFloat(r.CumFluxProbe[i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing flux table: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: writing flux table: %w", err)
	}
	return nil
}

// FinalProfileCSV writes the last concentration profile of a run as CSV.
func FinalProfileCSV(w io.Writer, r *diffreact.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x[m]", "C[mol/m^3]"}); err != nil {
		return fmt.Errorf("export: writing profile: %w", err)
	}
	final := r.Final()
	for i, x := range r.Position {
		if err := cw.Write([]string{formatFloat(x), formatFloat(final[i])}); err != nil {
			return fmt.Errorf("export: writing profile: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: writing profile: %w", err)
	}
	return nil
}

// ProfilesCSV writes concentration profiles at the given time indices as
// CSV, one column per time level. Indices outside the recorded range are
// an error.
func ProfilesCSV(w io.Writer, r *diffreact.Result, timeIndices []int) error {
	for _, it := range timeIndices {
		if it < 0 || it >= r.Steps() {
			return fmt.Errorf("export: time index %d out of range [0, %d)", it, r.Steps())
		}
	}
	cw := csv.NewWriter(w)
	header := []string{"x[m]"}
	for _, it := range timeIndices {
		header = append(header, fmt.Sprintf("C(t=%gs)[mol/m^3]", r.Time[it]))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: writing profiles: %w", err)
	}
	for i, x := range r.Position {
		row := []string{formatFloat(x)}
		for _, it := range timeIndices {
			row = append(row, formatFloat(r.Conc[it][i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing profiles: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: writing profiles: %w", err)
	}
	return nil
}

// SweepFluxCSV writes the surface flux histories of all sweep members as
// one CSV table, one column per temperature. The members share a time
// axis, so the table is rectangular.
func SweepFluxCSV(w io.Writer, s *diffreact.SweepResult) error {
	cw := csv.NewWriter(w)
	header := []string{"t[s]"}
	for _, T := range s.Temperatures[:len(s.Runs)] {
		header = append(header, fmt.Sprintf("Flux_surface(T=%gK)[mol/(m^2*s)]", T))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("export: writing sweep table: %w", err)
	}
	for i := range s.Time {
		row := []string{formatFloat(s.Time[i])}
		for _, r := range s.Runs {
			row = append(row, formatFloat(r.FluxSource[i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: writing sweep table: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: writing sweep table: %w", err)
	}
	return nil
}
