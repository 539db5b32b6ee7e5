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

// Package preset manages a TOML library of reusable materials, so layer
// stacks can be assembled by name instead of repeating transport
// coefficients in every configuration file.
package preset

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/spatialmodel/diffreact"
)

// Material holds the transport and reaction coefficients of one named
// material. Thickness and node count are properties of a stack, not of a
// material, so they are supplied when a material is instantiated as a
// layer.
type Material struct {
	Name         string  `toml:"Name"`
	Diffusivity  float64 `toml:"Diffusivity,omitempty"`  // [m²/s]
	D0           float64 `toml:"D0,omitempty"`           // Arrhenius prefactor [m²/s]
	Ea           float64 `toml:"Ea,omitempty"`           // activation energy [eV]
	ReactionRate float64 `toml:"ReactionRate,omitempty"` // [1/s]
}

// Layer instantiates the material as a layer of the given thickness [m]
// and node count.
func (m Material) Layer(thickness float64, nodes int) diffreact.Layer {
	return diffreact.Layer{
		Name:         m.Name,
		Thickness:    thickness,
		Diffusivity:  m.Diffusivity,
		D0:           m.D0,
		Ea:           m.Ea,
		ReactionRate: m.ReactionRate,
		Nodes:        nodes,
	}
}

// Library is a named collection of materials.
type Library struct {
	Materials []Material `toml:"Materials"`
}

// Default returns a library holding the built-in barrier and target
// materials.
func Default() *Library {
	return &Library{Materials: []Material{
		{Name: "Barrier", Diffusivity: 5e-15},
		{Name: "Target", Diffusivity: 1e-14, ReactionRate: 1e3},
	}}
}

// Read decodes a TOML library.
func Read(r io.Reader) (*Library, error) {
	lib := new(Library)
	if _, err := toml.DecodeReader(r, lib); err != nil {
		return nil, fmt.Errorf("preset: parsing library: %v", err)
	}
	for _, m := range lib.Materials {
		if m.Name == "" {
			return nil, fmt.Errorf("preset: material without a name")
		}
		if m.Diffusivity <= 0 && m.D0 <= 0 {
			return nil, fmt.Errorf("preset: material %s needs Diffusivity or Arrhenius D0 and Ea", m.Name)
		}
	}
	return lib, nil
}

// Load reads a TOML library from a file.
func Load(filename string) (*Library, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("preset: opening library: %v", err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes the library as TOML.
func (l *Library) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(l); err != nil {
		return fmt.Errorf("preset: writing library: %v", err)
	}
	return nil
}

// Save writes the library to a file.
func (l *Library) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("preset: creating library: %v", err)
	}
	if err := l.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Get returns the material with the given name.
func (l *Library) Get(name string) (Material, error) {
	for _, m := range l.Materials {
		if m.Name == name {
			return m, nil
		}
	}
	return Material{}, fmt.Errorf("preset: no material named %s", name)
}

// Add inserts a material, replacing an existing material with the same
// name.
func (l *Library) Add(m Material) {
	for i := range l.Materials {
		if l.Materials[i].Name == m.Name {
			l.Materials[i] = m
			return
		}
	}
	l.Materials = append(l.Materials, m)
}

// Remove deletes the material with the given name. It reports whether a
// material was removed.
func (l *Library) Remove(name string) bool {
	for i := range l.Materials {
		if l.Materials[i].Name == name {
			l.Materials = append(l.Materials[:i], l.Materials[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the sorted material names.
func (l *Library) Names() []string {
	names := make([]string, len(l.Materials))
	for i, m := range l.Materials {
		names[i] = m.Name
	}
	sort.Strings(names)
	return names
}
