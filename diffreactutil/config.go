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

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/spatialmodel/diffreact"
	"github.com/spatialmodel/diffreact/preset"
)

// simulationInputs assembles the layer stack and simulation parameters
// from the configuration. sweep selects whether the temperature list is
// read.
func simulationInputs(cfg *viper.Viper, sweep bool) ([]diffreact.Layer, diffreact.Config, error) {
	c := diffreact.Config{
		Cs:          cfg.GetFloat64("Cs"),
		Step:        cfg.GetFloat64("Step"),
		TotalTime:   cfg.GetFloat64("TotalTime"),
		TargetLayer: cfg.GetInt("TargetLayer"),
	}
	bc, err := diffreact.ParseBoundary(cfg.GetString("RightBoundary"))
	if err != nil {
		return nil, c, err
	}
	c.RightBoundary = bc

	if probeX := cfg.GetFloat64("ProbeX"); probeX >= 0 {
		c.HasProbe = true
		c.ProbeX = probeX
	}

	if sweep {
		temps, err := temperatureList(cfg)
		if err != nil {
			return nil, c, err
		}
		c.Temperatures = temps
	}

	layers, err := stackLayers(cfg)
	if err != nil {
		return nil, c, err
	}
	return layers, c, nil
}

func temperatureList(cfg *viper.Viper) ([]float64, error) {
	raw, err := cast.ToStringSliceE(cfg.Get("Temperatures"))
	if err != nil {
		// A configuration file may hold the list as numbers rather than
		// strings.
		slice, err := cast.ToSliceE(cfg.Get("Temperatures"))
		if err != nil {
			return nil, fmt.Errorf("diffreact: reading Temperatures: %v", err)
		}
		raw = make([]string, len(slice))
		for i, v := range slice {
			raw[i] = cast.ToString(v)
		}
	}
	temps := make([]float64, len(raw))
	for i, s := range raw {
		T, err := cast.ToFloat64E(s)
		if err != nil {
			return nil, fmt.Errorf("diffreact: reading temperature %q: %v", s, err)
		}
		temps[i] = T
	}
	return temps, nil
}

// stackLayers reads the [[Layers]] tables of the configuration file. A
// layer may either spell out its coefficients or name a Material from the
// material library. Without any configured layers the built-in
// barrier/target stack is used.
func stackLayers(cfg *viper.Viper) ([]diffreact.Layer, error) {
	raw := cfg.Get("Layers")
	if raw == nil {
		return diffreact.DefaultLayers(), nil
	}
	entries, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("diffreact: reading Layers: %v", err)
	}

	var lib *preset.Library
	layers := make([]diffreact.Layer, 0, len(entries))
	for i, e := range entries {
		fields, err := cast.ToStringMapE(e)
		if err != nil {
			return nil, fmt.Errorf("diffreact: reading layer %d: %v", i+1, err)
		}

		var l diffreact.Layer
		if material, ok := fields["Material"]; ok {
			if lib == nil {
				if lib, err = materialLibrary(cfg); err != nil {
					return nil, err
				}
			}
			m, err := lib.Get(cast.ToString(material))
			if err != nil {
				return nil, fmt.Errorf("diffreact: layer %d: %v", i+1, err)
			}
			l = m.Layer(0, 0)
		}

		for key, v := range fields {
			switch key {
			case "Material":
				// Already handled.
			case "Name":
				l.Name = cast.ToString(v)
			case "Thickness":
				l.Thickness, err = cast.ToFloat64E(v)
			case "Diffusivity":
				l.Diffusivity, err = cast.ToFloat64E(v)
			case "D0":
				l.D0, err = cast.ToFloat64E(v)
			case "Ea":
				l.Ea, err = cast.ToFloat64E(v)
			case "ReactionRate":
				l.ReactionRate, err = cast.ToFloat64E(v)
			case "Nodes":
				l.Nodes, err = cast.ToIntE(v)
			default:
				return nil, fmt.Errorf("diffreact: layer %d: unknown field %s", i+1, key)
			}
			if err != nil {
				return nil, fmt.Errorf("diffreact: layer %d field %s: %v", i+1, key, err)
			}
		}
		if l.Name == "" {
			l.Name = fmt.Sprintf("Layer %d", i+1)
		}
		layers = append(layers, l)
	}
	return layers, nil
}

// materialLibrary loads the configured material library, falling back to
// the built-in one when no path is configured.
func materialLibrary(cfg *viper.Viper) (*preset.Library, error) {
	path := os.ExpandEnv(cfg.GetString("MaterialLibrary"))
	if path == "" {
		return preset.Default(), nil
	}
	return preset.Load(path)
}

// OutputSpec says where and in which formats results are written.
type OutputSpec struct {
	Dir     string
	Prefix  string
	Formats map[string]bool
}

func outputSpec(cfg *viper.Viper) OutputSpec {
	s := OutputSpec{
		Dir:     os.ExpandEnv(cfg.GetString("OutputDir")),
		Prefix:  cfg.GetString("OutputPrefix"),
		Formats: make(map[string]bool),
	}
	for _, f := range cfg.GetStringSlice("OutputFormats") {
		s.Formats[f] = true
	}
	return s
}
