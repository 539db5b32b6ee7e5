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

package export

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"

	"github.com/spatialmodel/diffreact"
)

// Workbook writes a run as a Microsoft Excel workbook with three sheets:
// the flux histories, the final concentration profile, and the run
// diagnostics.
func Workbook(w io.Writer, r *diffreact.Result) error {
	f := xlsx.NewFile()

	flux, err := f.AddSheet("Flux")
	if err != nil {
		return fmt.Errorf("export: creating workbook: %v", err)
	}
	headerRow := flux.AddRow()
	for _, h := range fluxHeader(r) {
		headerRow.AddCell().SetString(h)
	}
	for i := range r.Time {
		row := flux.AddRow()
		row.AddCell().SetFloat(r.Time[i])
		row.AddCell().SetFloat(r.FluxSource[i])
		row.AddCell().SetFloat(r.FluxTargetInterface[i])
		row.AddCell().SetFloat(r.FluxExit[i])
		row.AddCell().SetFloat(r.CumFluxSource[i])
		row.AddCell().SetFloat(r.CumFluxTargetInterface[i])
		row.AddCell().SetFloat(r.CumFluxExit[i])
		row.AddCell().SetFloat(r.MassInTarget[i])
		if r.FluxProbe != nil {
			row.AddCell().SetFloat(r.FluxProbe[i])
			row.AddCell().SetFloat(r.CumFluxProbe[i])
		}
	}

	profile, err := f.AddSheet("Profile")
	if err != nil {
		return fmt.Errorf("export: creating workbook: %v", err)
	}
	headerRow = profile.AddRow()
	headerRow.AddCell().SetString("x[m]")
	headerRow.AddCell().SetString("C[mol/m^3]")
	final := r.Final()
	for i, x := range r.Position {
		row := profile.AddRow()
		row.AddCell().SetFloat(x)
		row.AddCell().SetFloat(final[i])
	}

	diag, err := f.AddSheet("Diagnostics")
	if err != nil {
		return fmt.Errorf("export: creating workbook: %v", err)
	}
	d := r.Diagnostics
	for _, kv := range []struct {
		name  string
		value float64
	}{
		{"Requested_step[s]", d.RequestedStep},
		{"Effective_step[s]", d.EffectiveStep},
		{"Mass_balance_residual[%]", d.MassBalanceResidualPercent},
		{"Resolution_indicator", d.ResolutionIndicator},
		{"Total_thickness[m]", d.TotalThickness},
	} {
		row := diag.AddRow()
		row.AddCell().SetString(kv.name)
		row.AddCell().SetFloat(kv.value)
	}
	row := diag.AddRow()
	row.AddCell().SetString("Status")
	row.AddCell().SetString(r.Status.String())

	if err := f.Write(w); err != nil {
		return fmt.Errorf("export: writing workbook: %v", err)
	}
	return nil
}
