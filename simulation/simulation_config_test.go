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
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Repetitions)
	assert.Equal(t, []int{100, 500, 1000, 5000, 10000}, cfg.PopulationSizes)
	assert.Equal(t, 3, len(cfg.Strategies))
	assert.Equal(t, 18000.0, cfg.Battery.CapacityJoules)
	assert.Equal(t, 1, cfg.Workers)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(cfg *Config)
		err    error
	}{
		{"no strategies", func(cfg *Config) { cfg.Strategies = nil }, ErrInvalidStrategyConfig},
		{"duplicate strategy", func(cfg *Config) {
			cfg.Strategies = append(cfg.Strategies, DefaultStrategyConfig(StrategyEDT))
		}, ErrInvalidStrategyConfig},
		{"inverted range", func(cfg *Config) { cfg.Strategies[1].Energy = Range{Min: 4.5, Max: 3.0} }, ErrInvalidStrategyConfig},
		{"zero range", func(cfg *Config) { cfg.Strategies[0].Latency = Range{Min: 0, Max: 10} }, ErrInvalidStrategyConfig},
		{"negative coef", func(cfg *Config) { cfg.Strategies[2].InterferenceCoef = -0.1 }, ErrInvalidStrategyConfig},
		{"NaN coef", func(cfg *Config) { cfg.Strategies[2].InterferenceCoef = math.NaN() }, ErrInvalidStrategyConfig},
		{"empty grid", func(cfg *Config) { cfg.PopulationSizes = nil }, ErrInvalidPopulationSize},
		{"zero population", func(cfg *Config) { cfg.PopulationSizes = []int{0, 100} }, ErrInvalidPopulationSize},
		{"descending grid", func(cfg *Config) { cfg.PopulationSizes = []int{500, 100} }, ErrInvalidPopulationSize},
		{"duplicate population", func(cfg *Config) { cfg.PopulationSizes = []int{100, 100} }, ErrInvalidPopulationSize},
		{"zero repetitions", func(cfg *Config) { cfg.Repetitions = 0 }, ErrInvalidRepetitions},
		{"zero battery", func(cfg *Config) { cfg.Battery.CapacityJoules = 0 }, ErrInvalidBatteryCapacity},
		{"zero interference unit", func(cfg *Config) { cfg.Sampler.InterferenceUnit = 0 }, ErrInvalidSamplerParams},
		{"zero latency load unit", func(cfg *Config) { cfg.Sampler.LatencyLoadUnit = 0 }, ErrInvalidSamplerParams},
	}

	for _, tc := range tests {
		cfg := DefaultConfig()
		tc.modify(cfg)
		err := cfg.Validate()
		assert.Equal(t, tc.err, errors.Cause(err), tc.name)
	}

	cfg := DefaultConfig()
	cfg.Workers = 0
	assert.NotNil(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.PopulationSizes = []int{1}
	cfg.Repetitions = 1
	cfg.Strategies = cfg.Strategies[2:]
	assert.Nil(t, cfg.Validate())
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	c := cfg.Clone()
	c.PopulationSizes[0] = 1
	c.Strategies[0].InterferenceCoef = 0.9
	c.Sampler.NoiseSigma = 0.5
	assert.Equal(t, 100, cfg.PopulationSizes[0])
	assert.Equal(t, 0.3, cfg.Strategies[0].InterferenceCoef)
	assert.Equal(t, 0.1, cfg.Sampler.NoiseSigma)
}

var testYamlFile = `
simulation:
    seed: 42
    repetitions: 5
    populations: [10, 20, 30]
    workers: 4
    battery-capacity: 36000
strategies:
    - strategy: pur
      energy: [1.5, 2.5]
    - strategy: baseline
      interference: 0.5
`

func TestYamlConfigUnmarshall(t *testing.T) {
	cfgFile := YamlConfigFile{}
	err := yaml.Unmarshal([]byte(testYamlFile), &cfgFile)
	require.Nil(t, err)
	assert.Equal(t, int64(42), *cfgFile.SimulationConfig.Seed)
	assert.Equal(t, 3, len(cfgFile.SimulationConfig.Populations))
	assert.Nil(t, cfgFile.SimulationConfig.OutputDir)
	require.Equal(t, 2, len(cfgFile.StrategiesList))
	assert.Equal(t, StrategyPUR, cfgFile.StrategiesList[0].Strategy)
	assert.Equal(t, StrategyRAP, cfgFile.StrategiesList[1].Strategy)
	assert.Nil(t, cfgFile.StrategiesList[1].Energy)

	cfg := DefaultConfig()
	cfg.ApplyYaml(&cfgFile)
	assert.Nil(t, cfg.Validate())
	assert.Equal(t, int64(42), cfg.RootSeed)
	assert.Equal(t, 5, cfg.Repetitions)
	assert.Equal(t, []int{10, 20, 30}, cfg.PopulationSizes)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 36000.0, cfg.Battery.CapacityJoules)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)

	require.Equal(t, 2, len(cfg.Strategies))
	assert.Equal(t, Range{Min: 1.5, Max: 2.5}, cfg.Strategies[0].Energy)
	assert.Equal(t, DefaultStrategyConfig(StrategyPUR).Latency, cfg.Strategies[0].Latency)
	assert.Equal(t, StrategyRAP, cfg.Strategies[1].Strategy)
	assert.Equal(t, 0.5, cfg.Strategies[1].InterferenceCoef)
}

func TestYamlConfigUnknownStrategy(t *testing.T) {
	cfgFile := YamlConfigFile{}
	err := yaml.Unmarshal([]byte("strategies:\n    - strategy: lte\n"), &cfgFile)
	assert.NotNil(t, err)
}

func TestReadYamlConfigFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "sim.yaml")
	require.Nil(t, os.WriteFile(fn, []byte(testYamlFile), 0644))
	cfgFile, err := ReadYamlConfigFile(fn)
	require.Nil(t, err)
	assert.Equal(t, 5, *cfgFile.SimulationConfig.Repetitions)

	_, err = ReadYamlConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NotNil(t, err)
}

func TestExportYaml(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootSeed = 7
	exported := cfg.ExportYaml()
	data, err := yaml.Marshal(&exported)
	require.Nil(t, err)

	cfgFile := YamlConfigFile{}
	require.Nil(t, yaml.Unmarshal(data, &cfgFile))
	cfg2 := DefaultConfig()
	cfg2.ApplyYaml(&cfgFile)
	assert.Equal(t, cfg.RootSeed, cfg2.RootSeed)
	assert.Equal(t, cfg.Strategies, cfg2.Strategies)
	assert.Equal(t, cfg.PopulationSizes, cfg2.PopulationSizes)
}
