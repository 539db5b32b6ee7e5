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

// Package diffreactutil holds the configuration and command-line glue of
// the diffreact program.
package diffreactutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/diffreact"
	"github.com/spatialmodel/diffreact/preset"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to diffreact.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel sets the logging verbosity: debug, info, warn or error.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "OutputDir",
			usage: `
              OutputDir specifies the directory the output files are
              written to. It is created if it does not exist.`,
			shorthand:  "o",
			defaultVal: ".",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "OutputPrefix",
			usage: `
              OutputPrefix is the file name prefix shared by all output
              files of a run.`,
			defaultVal: "diffreact",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "OutputFormats",
			usage: `
              OutputFormats lists the output formats to write. Available
              formats are csv, xlsx, png, json and gob.`,
			defaultVal: []string{"csv", "json"},
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "MaterialLibrary",
			usage: `
              MaterialLibrary is the path of a TOML material library.
              Layers may then name a Material instead of repeating its
              coefficients.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags(), presetCmd.PersistentFlags()},
		},
		{
			name: "Cs",
			usage: `
              Cs is the fixed surface concentration at x=0 [mol/m³].`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags(), steadyCmd.Flags()},
		},
		{
			name: "Step",
			usage: `
              Step is the requested time step [s]. It is clamped to the
              diffusive stability cap of the grid before integration.`,
			defaultVal: 1.0e-3,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "TotalTime",
			usage: `
              TotalTime is the total simulated time [s].`,
			defaultVal: 0.5,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "RightBoundary",
			usage: `
              RightBoundary selects the boundary condition at the back of
              the stack: Dirichlet (perfect sink) or Neumann (impermeable).`,
			defaultVal: "Dirichlet",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags(), steadyCmd.Flags()},
		},
		{
			name: "ProbeX",
			usage: `
              ProbeX records an extra flux history at the given position
              [m]. A negative value disables the probe.`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "TargetLayer",
			usage: `
              TargetLayer is the index of the layer whose stored mass and
              entry flux are tracked. The default -1 selects the last layer.`,
			defaultVal: -1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), sweepCmd.Flags()},
		},
		{
			name: "Temperatures",
			usage: `
              Temperatures lists the temperatures [K] of a sweep. Every
              layer must then carry Arrhenius parameters D0 and Ea.`,
			shorthand:  "T",
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{sweepCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("DIFFREACT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(sweepCmd)
	Root.AddCommand(steadyCmd)
	Root.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetInitCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("diffreact: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg.GetString("LogLevel"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "diffreact",
	Short: "A transient diffusion–reaction solver for layered media.",
	Long: `diffreact simulates one-dimensional transient diffusion with first-order
reaction through a stack of material layers, such as a barrier film over a
reactive target.

Configuration can be changed by using a configuration file (and providing
the path to the file using the --config flag), by using command-line
arguments, or by setting environment variables in the format
'DIFFREACT_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of DiffReact.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("DiffReact v%s\n", diffreact.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a transient simulation.",
	Long: `run integrates the configured layer stack from t=0 to TotalTime and
writes the flux histories, concentration profiles and diagnostics in the
requested output formats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layers, cfg, err := simulationInputs(Cfg, false)
		if err != nil {
			return err
		}
		return RunSimulation(layers, cfg, outputSpec(Cfg))
	},
	DisableAutoGenTag: true,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a temperature sweep.",
	Long: `sweep repeats the simulation once per configured temperature, deriving
each layer's diffusivity from its Arrhenius parameters, and writes one
output set per temperature plus a comparison table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layers, cfg, err := simulationInputs(Cfg, true)
		if err != nil {
			return err
		}
		return RunSweepSimulation(layers, cfg, outputSpec(Cfg))
	},
	DisableAutoGenTag: true,
}

var steadyCmd = &cobra.Command{
	Use:   "steady",
	Short: "Print analytical steady-state estimates without integrating.",
	Long: `steady prints the reactive characteristic length, the Damköhler number
and the analytical steady-state flux for every configured layer, treating
each as a single homogeneous slab.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		layers, cfg, err := simulationInputs(Cfg, false)
		if err != nil {
			return err
		}
		return printSteadyEstimates(cmd, layers, cfg)
	},
	DisableAutoGenTag: true,
}

var presetCmd = &cobra.Command{
	Use:               "preset",
	Short:             "Manage the material library.",
	Long:              "preset inspects and initializes the TOML material library.",
	DisableAutoGenTag: true,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the materials in the library.",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := materialLibrary(Cfg)
		if err != nil {
			return err
		}
		for _, name := range lib.Names() {
			m, err := lib.Get(name)
			if err != nil {
				return err
			}
			if m.D0 > 0 {
				cmd.Printf("%s: D0=%g m²/s Ea=%g eV k=%g 1/s\n", m.Name, m.D0, m.Ea, m.ReactionRate)
			} else {
				cmd.Printf("%s: D=%g m²/s k=%g 1/s\n", m.Name, m.Diffusivity, m.ReactionRate)
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

var presetInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in material library to MaterialLibrary.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := Cfg.GetString("MaterialLibrary")
		if path == "" {
			return fmt.Errorf("diffreact: preset init requires MaterialLibrary to be set")
		}
		if err := preset.Default().Save(path); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", path)
		return nil
	},
	DisableAutoGenTag: true,
}
