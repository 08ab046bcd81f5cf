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
	"github.com/pkg/errors"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/energy"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/radiomodel"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

const (
	DefaultRepetitions = 3
	DefaultWorkers     = 1
	DefaultOutputDir   = "current"
)

// DefaultPopulationSizes is the reference grid of population sizes.
var DefaultPopulationSizes = []int{100, 500, 1000, 5000, 10000}

type Config struct {
	Strategies      []StrategyConfig // in run order
	PopulationSizes []int            // strictly ascending
	Repetitions     int
	RootSeed        int64 // 0 means a time-based seed is chosen at run start
	Battery         energy.BatteryModel
	Sampler         *radiomodel.SamplerParams
	Workers         int
	OutputDir       string
	Id              int
	WriteKpi        bool
	LogLevel        logger.Level
}

func DefaultConfig() *Config {
	return &Config{
		Strategies:      DefaultStrategyConfigs(),
		PopulationSizes: append([]int{}, DefaultPopulationSizes...),
		Repetitions:     DefaultRepetitions,
		RootSeed:        0,
		Battery:         energy.DefaultBatteryModel(),
		Sampler:         radiomodel.DefaultSamplerParams(),
		Workers:         DefaultWorkers,
		OutputDir:       DefaultOutputDir,
		Id:              0,
		WriteKpi:        true,
		LogLevel:        logger.WarnLevel,
	}
}

// Validate checks the whole run configuration. It is called before any trial runs, so that a bad
// configuration never produces partial results.
func (cfg *Config) Validate() error {
	if len(cfg.Strategies) == 0 {
		return errors.Wrapf(ErrInvalidStrategyConfig, "empty strategy set")
	}
	seen := make(map[Strategy]struct{}, len(cfg.Strategies))
	for i := range cfg.Strategies {
		sc := &cfg.Strategies[i]
		if err := sc.Validate(); err != nil {
			return err
		}
		if _, ok := seen[sc.Strategy]; ok {
			return errors.Wrapf(ErrInvalidStrategyConfig, "duplicate strategy %s", sc.Strategy)
		}
		seen[sc.Strategy] = struct{}{}
	}
	if err := validatePopulationSizes(cfg.PopulationSizes); err != nil {
		return err
	}
	if cfg.Repetitions < 1 {
		return errors.Wrapf(ErrInvalidRepetitions, "repetitions %d", cfg.Repetitions)
	}
	if err := cfg.Battery.Validate(); err != nil {
		return err
	}
	if cfg.Workers < 1 {
		return errors.Errorf("invalid worker count: %d", cfg.Workers)
	}
	if cfg.Sampler != nil {
		if err := cfg.Sampler.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validatePopulationSizes(sizes []int) error {
	if len(sizes) == 0 {
		return errors.Wrapf(ErrInvalidPopulationSize, "empty population grid")
	}
	for i, n := range sizes {
		if n < 1 {
			return errors.Wrapf(ErrInvalidPopulationSize, "population size %d", n)
		}
		if i > 0 && n <= sizes[i-1] {
			return errors.Wrapf(ErrInvalidPopulationSize, "population grid not strictly ascending at %d", n)
		}
	}
	return nil
}

// GetStrategyConfig returns the config of strategy s, or nil if s is not part of the run.
func (cfg *Config) GetStrategyConfig(s Strategy) *StrategyConfig {
	for i := range cfg.Strategies {
		if cfg.Strategies[i].Strategy == s {
			return &cfg.Strategies[i]
		}
	}
	return nil
}

// Clone returns a deep copy; the console changes a copy, never the config of a running simulation.
func (cfg *Config) Clone() *Config {
	c := *cfg
	c.Strategies = append([]StrategyConfig{}, cfg.Strategies...)
	c.PopulationSizes = append([]int{}, cfg.PopulationSizes...)
	if cfg.Sampler != nil {
		sp := *cfg.Sampler
		c.Sampler = &sp
	}
	return &c
}
