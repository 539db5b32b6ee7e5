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
)

// Boltzmann is the Boltzmann constant [eV/K], used by the Arrhenius
// relation for temperature-dependent diffusivities.
const Boltzmann = 8.617333262e-5

// Layer specifies one material slab in the stack. Either Diffusivity or the
// Arrhenius pair (D0, Ea) must be given; when D0 > 0 the layer diffusivity
// is derived from temperature and Diffusivity is ignored.
type Layer struct {
	Name string

	Thickness    float64 `desc:"Layer thickness" units:"m"`
	Diffusivity  float64 `desc:"Diffusion coefficient" units:"m²/s"`
	D0           float64 `desc:"Arrhenius pre-exponential factor" units:"m²/s"`
	Ea           float64 `desc:"Activation energy" units:"eV"`
	ReactionRate float64 `desc:"First-order reaction rate" units:"1/s"`

	// Nodes is the number of grid nodes spanning the layer, including both
	// of its boundary nodes. Must be at least 2.
	Nodes int
}

// HasArrhenius reports whether the layer carries Arrhenius parameters.
func (l Layer) HasArrhenius() bool { return l.D0 > 0 }

// DiffusivityAt returns the layer diffusivity at temperature T [K] using
// the Arrhenius relation D = D0·exp(−Ea/(kB·T)). Layers without Arrhenius
// parameters return their direct diffusivity regardless of T.
func (l Layer) DiffusivityAt(T float64) float64 {
	if !l.HasArrhenius() {
		return l.Diffusivity
	}
	return l.D0 * math.Exp(-l.Ea/(Boltzmann*T))
}

// check validates a single layer. i is the position of the layer in the
// stack, used for error attribution.
func (l Layer) check(i int) error {
	if l.Thickness <= 0 {
		return &ValidationError{
			Field:  fmt.Sprintf("layer %d thickness", i+1),
			Reason: "must be positive",
		}
	}
	if !l.HasArrhenius() && l.Diffusivity <= 0 {
		return &ValidationError{
			Field:  fmt.Sprintf("layer %d diffusivity", i+1),
			Reason: "must be positive (or provide Arrhenius D0 and Ea)",
		}
	}
	if l.ReactionRate < 0 {
		return &ValidationError{
			Field:  fmt.Sprintf("layer %d reaction rate", i+1),
			Reason: "must be non-negative",
		}
	}
	if l.Nodes < 2 {
		return &ValidationError{
			Field:  fmt.Sprintf("layer %d nodes", i+1),
			Reason: "must be at least 2",
		}
	}
	return nil
}

// layersAt returns a copy of the stack with every diffusivity materialized
// at temperature T from its Arrhenius parameters.
func layersAt(layers []Layer, T float64) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		l.Diffusivity = l.DiffusivityAt(T)
		l.D0 = 0
		l.Ea = 0
		out[i] = l
	}
	return out
}
