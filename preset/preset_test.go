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

package preset

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLibrary = `
[[Materials]]
Name = "Oxide"
Diffusivity = 2.5e-16

[[Materials]]
Name = "Getter"
D0 = 1.0e-6
Ea = 0.55
ReactionRate = 500.0
`

func TestRead(t *testing.T) {
	lib, err := Read(strings.NewReader(sampleLibrary))
	require.NoError(t, err)
	require.Len(t, lib.Materials, 2)

	oxide, err := lib.Get("Oxide")
	require.NoError(t, err)
	assert.Equal(t, 2.5e-16, oxide.Diffusivity)

	getter, err := lib.Get("Getter")
	require.NoError(t, err)
	assert.Equal(t, 0.55, getter.Ea)
	assert.Equal(t, 500.0, getter.ReactionRate)

	_, err = lib.Get("Unobtainium")
	assert.Error(t, err)
}

func TestReadInvalid(t *testing.T) {
	_, err := Read(strings.NewReader(`[[Materials]]
Diffusivity = 1.0e-14`))
	assert.Error(t, err, "nameless material must be rejected")

	_, err = Read(strings.NewReader(`[[Materials]]
Name = "Void"`))
	assert.Error(t, err, "material without transport coefficients must be rejected")

	_, err = Read(strings.NewReader("not toml ["))
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	lib, err := Read(strings.NewReader(sampleLibrary))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, lib.Write(&buf))
	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, lib.Materials, back.Materials)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.toml")
	lib := Default()
	require.NoError(t, lib.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, lib.Materials, back.Materials)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestAddRemove(t *testing.T) {
	lib := Default()
	lib.Add(Material{Name: "Oxide", Diffusivity: 1e-16})
	assert.Equal(t, []string{"Barrier", "Oxide", "Target"}, lib.Names())

	// Adding an existing name replaces it.
	lib.Add(Material{Name: "Oxide", Diffusivity: 9e-16})
	m, err := lib.Get("Oxide")
	require.NoError(t, err)
	assert.Equal(t, 9e-16, m.Diffusivity)
	assert.Len(t, lib.Materials, 3)

	assert.True(t, lib.Remove("Oxide"))
	assert.False(t, lib.Remove("Oxide"))
	assert.Len(t, lib.Materials, 2)
}

func TestMaterialLayer(t *testing.T) {
	m := Material{Name: "Getter", D0: 1e-6, Ea: 0.55, ReactionRate: 500}
	l := m.Layer(3e-7, 61)
	assert.Equal(t, "Getter", l.Name)
	assert.Equal(t, 3e-7, l.Thickness)
	assert.Equal(t, 61, l.Nodes)
	assert.True(t, l.HasArrhenius())
}
