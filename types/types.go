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

package types

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

// Strategy is the NB-IoT uplink transmission strategy that a device population uses.
type Strategy int

const (
	StrategyRAP Strategy = iota ///< Random Access Procedure, the baseline.
	StrategyEDT                 ///< Early Data Transmission.
	StrategyPUR                 ///< Preconfigured Uplink Resources.

	numStrategies
)

const (
	BaselineStrategy = StrategyRAP
)

var strategyNames = [numStrategies]string{"RAP", "EDT", "PUR"}

// AllStrategies returns all strategies in canonical order (baseline first).
func AllStrategies() []Strategy {
	return []Strategy{StrategyRAP, StrategyEDT, StrategyPUR}
}

func (s Strategy) IsValid() bool {
	return s >= 0 && s < numStrategies
}

func (s Strategy) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy parses a strategy name. Besides the RAP/EDT/PUR names (any case) it accepts the
// generic names baseline, optimized-a and optimized-b.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rap", "baseline":
		return StrategyRAP, nil
	case "edt", "optimized-a":
		return StrategyEDT, nil
	case "pur", "optimized-b":
		return StrategyPUR, nil
	default:
		return StrategyRAP, fmt.Errorf("unknown strategy: %q", name)
	}
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid strategy: %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Strategy) MarshalYAML() (interface{}, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid strategy: %d", int(s))
	}
	return s.String(), nil
}

func (s *Strategy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseStrategy(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Range is a closed interval [Min, Max] of a positive quantity.
type Range struct {
	Min float64
	Max float64
}

// IsValid is true for a finite, strictly positive and non-inverted range. Min == Max is allowed.
func (r Range) IsValid() bool {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return false
	}
	return r.Min > 0 && r.Max >= r.Min
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// StrategyConfig is the per-strategy sampling configuration.
type StrategyConfig struct {
	Strategy         Strategy
	Energy           Range   // base energy per trial, in J
	Latency          Range   // base latency per trial, in ms
	InterferenceCoef float64 // interference growth per 1000 devices
}

// Validate checks the config; a failure wraps ErrInvalidStrategyConfig.
func (cfg StrategyConfig) Validate() error {
	if !cfg.Strategy.IsValid() {
		return wrapf(ErrInvalidStrategyConfig, "unknown strategy %d", int(cfg.Strategy))
	}
	if !cfg.Energy.IsValid() {
		return wrapf(ErrInvalidStrategyConfig, "%s: energy range %s", cfg.Strategy, cfg.Energy)
	}
	if !cfg.Latency.IsValid() {
		return wrapf(ErrInvalidStrategyConfig, "%s: latency range %s", cfg.Strategy, cfg.Latency)
	}
	if math.IsNaN(cfg.InterferenceCoef) || math.IsInf(cfg.InterferenceCoef, 0) || cfg.InterferenceCoef < 0 {
		return wrapf(ErrInvalidStrategyConfig, "%s: interference coefficient %g", cfg.Strategy, cfg.InterferenceCoef)
	}
	return nil
}

// DefaultStrategyConfig returns the reference sampling parameters of a strategy. The optimized
// strategies use strictly lower base energy and latency ranges and less interference than RAP.
func DefaultStrategyConfig(s Strategy) StrategyConfig {
	switch s {
	case StrategyRAP:
		return StrategyConfig{
			Strategy:         StrategyRAP,
			Energy:           Range{4.0, 6.0},
			Latency:          Range{400.0, 600.0},
			InterferenceCoef: 0.3,
		}
	case StrategyEDT:
		return StrategyConfig{
			Strategy:         StrategyEDT,
			Energy:           Range{3.0, 4.5},
			Latency:          Range{200.0, 300.0},
			InterferenceCoef: 0.2,
		}
	case StrategyPUR:
		return StrategyConfig{
			Strategy:         StrategyPUR,
			Energy:           Range{2.0, 3.0},
			Latency:          Range{100.0, 180.0},
			InterferenceCoef: 0.1,
		}
	default:
		panic(fmt.Sprintf("unknown strategy: %d", int(s)))
	}
}

// DefaultStrategyConfigs returns the default configs of all strategies, in canonical order.
func DefaultStrategyConfigs() []StrategyConfig {
	res := make([]StrategyConfig, 0, numStrategies)
	for _, s := range AllStrategies() {
		res = append(res, DefaultStrategyConfig(s))
	}
	return res
}
