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
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spatialmodel/diffreact"
)

// Metadata is the JSON sidecar describing how a result was produced, so
// an exported data set remains interpretable without the process that
// wrote it.
type Metadata struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`

	Status string `json:"status"`

	Layers []LayerMetadata `json:"layers"`

	Cs            float64 `json:"surface_concentration"`
	TotalTime     float64 `json:"total_time"`
	RightBoundary string  `json:"right_boundary"`
	Temperature   float64 `json:"temperature,omitempty"`

	Steps       int                    `json:"steps"`
	Diagnostics diffreact.Diagnostics  `json:"diagnostics"`
	MassBalance *diffreact.MassBalance `json:"mass_balance,omitempty"`
}

// LayerMetadata describes one layer of the simulated stack by its
// position range [m].
type LayerMetadata struct {
	Name  string  `json:"name"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewMetadata assembles the sidecar for a run. cfg must be the
// configuration the run was produced with.
func NewMetadata(r *diffreact.Result, cfg diffreact.Config) Metadata {
	m := Metadata{
		Version:       diffreact.Version,
		CreatedAt:     time.Now().UTC(),
		Status:        r.Status.String(),
		Cs:            cfg.Cs,
		TotalTime:     cfg.TotalTime,
		RightBoundary: cfg.RightBoundary.String(),
		Steps:         r.Steps(),
		Diagnostics:   r.Diagnostics,
	}
	for i, name := range r.LayerNames {
		lm := LayerMetadata{
			Name:  name,
			Start: r.LayerBoundaries[i],
			End:   r.LayerBoundaries[i+1],
		}
		m.Layers = append(m.Layers, lm)
	}
	if r.Steps() > 1 {
		mb := diffreact.ComputeMassBalance(r, diffreact.DefaultTuning())
		m.MassBalance = &mb
	}
	return m
}

// WriteMetadata writes the sidecar as indented JSON.
func WriteMetadata(w io.Writer, m Metadata) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("export: writing metadata: %v", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "\t"); err != nil {
		return fmt.Errorf("export: writing metadata: %v", err)
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("export: writing metadata: %v", err)
	}
	return nil
}
