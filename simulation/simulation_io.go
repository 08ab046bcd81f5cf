// Copyright (c) 2025, The OTNS Authors.
// All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:
// 1. Redistributions of source code must retain the above copyright
//    notice, this list of conditions and the following disclaimer.
// 2. Redistributions in binary form must reproduce the above copyright
//    notice, this list of conditions and the following disclaimer in the
//    documentation and/or other materials provided with the distribution.
// 3. Neither the name of the copyright holder nor the
//    names of its contributors may be used to endorse or promote products
//    derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE
// ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE
// LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR
// CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF
// SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS
// INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN
// CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE)
// ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE
// POSSIBILITY OF SUCH DAMAGE.

package simulation

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// YamlSimulationConfig is the 'simulation' section of a YAML config file. Absent keys keep the
// current value.
type YamlSimulationConfig struct {
	Seed            *int64   `yaml:"seed,omitempty"`
	Repetitions     *int     `yaml:"repetitions,omitempty"`
	Populations     []int    `yaml:"populations,omitempty"`
	Workers         *int     `yaml:"workers,omitempty"`
	BatteryCapacity *float64 `yaml:"battery-capacity,omitempty"`
	OutputDir       *string  `yaml:"output-dir,omitempty"`
}

// YamlStrategyConfig overrides the parameters of a single strategy. Ranges are [min, max].
type YamlStrategyConfig struct {
	Strategy         Strategy    `yaml:"strategy"`
	Energy           *[2]float64 `yaml:"energy,omitempty"`
	Latency          *[2]float64 `yaml:"latency,omitempty"`
	InterferenceCoef *float64    `yaml:"interference,omitempty"`
}

type YamlConfigFile struct {
	SimulationConfig YamlSimulationConfig `yaml:"simulation"`
	StrategiesList   []YamlStrategyConfig `yaml:"strategies,omitempty"`
}

// ReadYamlConfigFile reads and parses a YAML config file. It does not validate the values.
func ReadYamlConfigFile(fn string) (*YamlConfigFile, error) {
	data, err := os.ReadFile(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", fn)
	}
	cfgFile := &YamlConfigFile{}
	if err = yaml.Unmarshal(data, cfgFile); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", fn)
	}
	return cfgFile, nil
}

// ApplyYaml applies the values present in the YAML config to cfg. A non-empty 'strategies' list
// replaces the strategy set; each listed strategy starts from its defaults.
func (cfg *Config) ApplyYaml(y *YamlConfigFile) {
	sc := &y.SimulationConfig
	if sc.Seed != nil {
		cfg.RootSeed = *sc.Seed
	}
	if sc.Repetitions != nil {
		cfg.Repetitions = *sc.Repetitions
	}
	if len(sc.Populations) > 0 {
		cfg.PopulationSizes = append([]int{}, sc.Populations...)
	}
	if sc.Workers != nil {
		cfg.Workers = *sc.Workers
	}
	if sc.BatteryCapacity != nil {
		cfg.Battery.CapacityJoules = *sc.BatteryCapacity
	}
	if sc.OutputDir != nil {
		cfg.OutputDir = *sc.OutputDir
	}

	if len(y.StrategiesList) == 0 {
		return
	}
	cfg.Strategies = make([]StrategyConfig, 0, len(y.StrategiesList))
	for _, ys := range y.StrategiesList {
		if !ys.Strategy.IsValid() {
			// kept, so that Validate reports it
			cfg.Strategies = append(cfg.Strategies, StrategyConfig{Strategy: ys.Strategy})
			continue
		}
		stc := DefaultStrategyConfig(ys.Strategy)
		if ys.Energy != nil {
			stc.Energy = Range{Min: ys.Energy[0], Max: ys.Energy[1]}
		}
		if ys.Latency != nil {
			stc.Latency = Range{Min: ys.Latency[0], Max: ys.Latency[1]}
		}
		if ys.InterferenceCoef != nil {
			stc.InterferenceCoef = *ys.InterferenceCoef
		}
		cfg.Strategies = append(cfg.Strategies, stc)
	}
}

// ExportYaml exports the current config to a YAML-friendly object.
func (cfg *Config) ExportYaml() YamlConfigFile {
	seed := cfg.RootSeed
	reps := cfg.Repetitions
	workers := cfg.Workers
	capacity := cfg.Battery.CapacityJoules
	outDir := cfg.OutputDir
	res := YamlConfigFile{
		SimulationConfig: YamlSimulationConfig{
			Seed:            &seed,
			Repetitions:     &reps,
			Populations:     append([]int{}, cfg.PopulationSizes...),
			Workers:         &workers,
			BatteryCapacity: &capacity,
			OutputDir:       &outDir,
		},
	}
	for _, sc := range cfg.Strategies {
		energyRange := [2]float64{sc.Energy.Min, sc.Energy.Max}
		latencyRange := [2]float64{sc.Latency.Min, sc.Latency.Max}
		coef := sc.InterferenceCoef
		res.StrategiesList = append(res.StrategiesList, YamlStrategyConfig{
			Strategy:         sc.Strategy,
			Energy:           &energyRange,
			Latency:          &latencyRange,
			InterferenceCoef: &coef,
		})
	}
	return res
}
