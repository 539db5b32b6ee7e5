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
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spatialmodel/diffreact"
)

var plotColors = []color.NRGBA{
	{0, 0, 0, 255},
	{127, 127, 127, 255},
	{190, 190, 190, 255},
	{64, 64, 64, 255},
}

type series struct {
	name string
	x, y []float64
}

func writePlot(w io.Writer, title, xLabel, yLabel string, data []series) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("export: creating plot: %v", err)
	}
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	for i, s := range data {
		xy := make(plotter.XYs, len(s.x))
		for j := range s.x {
			xy[j].X = s.x[j]
			xy[j].Y = s.y[j]
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return fmt.Errorf("export: creating plot: %v", err)
		}
		l.Color = plotColors[i%len(plotColors)]
		if i >= len(plotColors) {
			l.Dashes = []vg.Length{vg.Points(3), vg.Points(2)}
		}
		p.Add(l)
		if s.name != "" {
			p.Legend.Add(s.name, l)
		}
	}

	c := vgimg.NewWith(vgimg.UseWH(6*vg.Inch, 4*vg.Inch), vgimg.UseDPI(96))
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("export: writing plot: %v", err)
	}
	return nil
}

// FluxPlot writes a PNG of the flux histories of a run.
func FluxPlot(w io.Writer, r *diffreact.Result) error {
	data := []series{
		{"surface", r.Time, r.FluxSource},
		{"target interface", r.Time, r.FluxTargetInterface},
		{"exit", r.Time, r.FluxExit},
	}
	if r.FluxProbe != nil {
		data = append(data, series{"probe", r.Time, r.FluxProbe})
	}
	return writePlot(w, "Flux history", "t [s]", "J [mol/(m²·s)]", data)
}

// ProfilePlot writes a PNG of the final concentration profile of a run.
func ProfilePlot(w io.Writer, r *diffreact.Result) error {
	return writePlot(w, "Concentration profile", "x [m]", "C [mol/m³]",
		[]series{{"", r.Position, r.Final()}})
}

// SweepFluxPlot writes a PNG comparing the surface flux histories of all
// sweep members.
func SweepFluxPlot(w io.Writer, s *diffreact.SweepResult) error {
	var data []series
	for i, r := range s.Runs {
		data = append(data, series{
			name: fmt.Sprintf("%g K", s.Temperatures[i]),
			x:    s.Time,
			y:    r.FluxSource,
		})
	}
	return writePlot(w, "Flux by temperature", "t [s]", "J [mol/(m²·s)]", data)
}
