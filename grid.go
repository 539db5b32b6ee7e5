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

import "gonum.org/v1/gonum/floats"

// Grid is the global non-uniform spatial grid spanning a layer stack.
// Consecutive layers share exactly one node, so the node count is the sum
// of per-layer node counts minus (number of layers − 1). A shared interface
// node carries the diffusivity and reaction rate of the layer to its left.
//
// A Grid and its coefficient fields are built once per run and are
// read-only thereafter.
type Grid struct {
	X []float64 // node positions [m], strictly increasing
	D []float64 // per-node diffusivity [m²/s]
	K []float64 // per-node reaction rate [1/s]

	// EdgeD holds the diffusivity of each edge between adjacent nodes
	// (length N−1): the harmonic mean of the two node diffusivities, which
	// reduces to the layer value inside a layer and preserves flux
	// continuity across dissimilar materials at an interface.
	EdgeD []float64

	// LayerStart and LayerEnd give the [start, end) node range of each
	// layer. The shared interface node belongs to both adjoining ranges.
	LayerStart []int
	LayerEnd   []int

	// Boundaries lists the interface node indices (length = layers − 1).
	Boundaries []int

	// LayerEdges holds the cumulative layer boundary positions, starting
	// at 0 and ending at the total stack thickness (length = layers + 1).
	LayerEdges []float64

	Names []string
}

// NewGrid builds the global grid for an ordered layer stack. Each layer
// contributes a uniform sub-grid of its node count over its thickness; the
// last node of layer i is identified with the first node of layer i+1.
func NewGrid(layers []Layer) (*Grid, error) {
	if len(layers) == 0 {
		return nil, &ValidationError{Field: "layers", Reason: "at least one layer must be specified"}
	}
	n := 0
	for i, l := range layers {
		if err := l.check(i); err != nil {
			return nil, err
		}
		n += l.Nodes
	}
	n -= len(layers) - 1

	g := &Grid{
		X:          make([]float64, 0, n),
		D:          make([]float64, 0, n),
		K:          make([]float64, 0, n),
		LayerStart: make([]int, len(layers)),
		LayerEnd:   make([]int, len(layers)),
		Boundaries: make([]int, 0, len(layers)-1),
		LayerEdges: make([]float64, 0, len(layers)+1),
		Names:      make([]string, len(layers)),
	}

	x0 := 0.0
	g.LayerEdges = append(g.LayerEdges, 0)
	for i, l := range layers {
		g.Names[i] = l.Name
		first := 0
		if i > 0 {
			// The interface node was already added by the previous layer.
			first = 1
			g.LayerStart[i] = len(g.X) - 1
			g.Boundaries = append(g.Boundaries, len(g.X)-1)
		}
		Δx := l.Thickness / float64(l.Nodes-1)
		for j := first; j < l.Nodes; j++ {
			g.X = append(g.X, x0+float64(j)*Δx)
			g.D = append(g.D, l.Diffusivity)
			g.K = append(g.K, l.ReactionRate)
		}
		g.LayerEnd[i] = len(g.X)
		x0 += l.Thickness
		g.LayerEdges = append(g.LayerEdges, x0)
	}

	g.EdgeD = make([]float64, len(g.X)-1)
	for i := range g.EdgeD {
		g.EdgeD[i] = harmonicMean(g.D[i], g.D[i+1])
	}
	return g, nil
}

// N returns the number of grid nodes.
func (g *Grid) N() int { return len(g.X) }

// TotalThickness returns the thickness of the whole stack [m].
func (g *Grid) TotalThickness() float64 {
	return g.LayerEdges[len(g.LayerEdges)-1]
}

// MinSpacing returns the smallest node spacing on the grid [m].
func (g *Grid) MinSpacing() float64 {
	min := g.X[1] - g.X[0]
	for i := 2; i < len(g.X); i++ {
		if Δx := g.X[i] - g.X[i-1]; Δx < min {
			min = Δx
		}
	}
	return min
}

// edgeAt returns the index of the edge bracketing position x, clamped to
// the grid.
func (g *Grid) edgeAt(x float64) int {
	i := floats.NearestIdx(g.X, x)
	if i >= len(g.X)-1 {
		i = len(g.X) - 2
	}
	if i > 0 && g.X[i] > x {
		i--
	}
	return i
}

func harmonicMean(a, b float64) float64 {
	if a == b {
		return a
	}
	if a+b == 0 {
		return 0
	}
	return 2. * a * b / (a + b)
}
