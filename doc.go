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

// Package diffreact numerically integrates the one-dimensional transient
// diffusion–reaction equation
//
//	∂C/∂t = ∂/∂x (D ∂C/∂x) − kC
//
// through a stack of material layers, each with its own thickness,
// diffusivity, and first-order reaction rate. The equation is discretized
// with a Crank–Nicolson scheme in finite-volume form on a non-uniform grid
// that shares one node at every layer interface, and the resulting
// tridiagonal system is solved directly each time step.
//
// The left boundary (x=0) holds a fixed surface concentration; the right
// boundary is either a perfect sink (Dirichlet) or impermeable (Neumann).
// Run integrates a single stack, and RunSweep repeats the integration over
// a list of temperatures using Arrhenius-derived diffusivities.
//
// All quantities are in SI units: m, s, m²/s, 1/s, mol/m³.
package diffreact

// Version gives the version of this software.
const Version = "1.1.0"
