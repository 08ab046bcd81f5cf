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

package stats

import (
	"github.com/pkg/errors"

	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// StrategySummary is the cross-population summary of one strategy.
type StrategySummary struct {
	Strategy          Strategy `yaml:"strategy" json:"strategy"`
	Count             int      `yaml:"count" json:"count"`
	MeanEnergy        float64  `yaml:"energy_j" json:"energy_j"`
	EnergyStdDev      float64  `yaml:"energy_std_j" json:"energy_std_j"`
	EnergyHalfWidth   float64  `yaml:"energy_ci95_j" json:"energy_ci95_j"`
	MeanLatency       float64  `yaml:"latency_ms" json:"latency_ms"`
	LatencyStdDev     float64  `yaml:"latency_std_ms" json:"latency_std_ms"`
	LatencyHalfWidth  float64  `yaml:"latency_ci95_ms" json:"latency_ci95_ms"`
	MeanBatteryLife   float64  `yaml:"battery_life_years" json:"battery_life_years"`
	MinPopulationSize int      `yaml:"min_devices" json:"min_devices"`
	MaxPopulationSize int      `yaml:"max_devices" json:"max_devices"`
}

// Analysis is the read-only result of Analyze.
type Analysis struct {
	Baseline    Strategy           `yaml:"baseline" json:"baseline"`
	Strategies  []StrategySummary  `yaml:"strategies" json:"strategies"`
	Comparisons []ComparisonReport `yaml:"comparisons" json:"comparisons"`
}

// Summary returns the summary of strategy s, if present.
func (a *Analysis) Summary(s Strategy) (StrategySummary, bool) {
	for _, ss := range a.Strategies {
		if ss.Strategy == s {
			return ss, true
		}
	}
	return StrategySummary{}, false
}

// Comparison returns the comparison of strategy s against the baseline, if present.
func (a *Analysis) Comparison(s Strategy) (ComparisonReport, bool) {
	for _, cr := range a.Comparisons {
		if cr.StrategyB == s {
			return cr, true
		}
	}
	return ComparisonReport{}, false
}

// Summarize computes the StrategySummary over the given aggregates, which must all be of the same
// strategy.
func Summarize(results []AggregateResult) StrategySummary {
	n := len(results)
	if n == 0 {
		return StrategySummary{}
	}
	ss := StrategySummary{
		Strategy:          results[0].Strategy,
		Count:             n,
		MinPopulationSize: results[0].PopulationSize,
		MaxPopulationSize: results[0].PopulationSize,
	}
	energies := make([]float64, n)
	latencies := make([]float64, n)
	lifetimes := make([]float64, n)
	for i, r := range results {
		energies[i] = r.MeanEnergy
		latencies[i] = r.MeanLatency
		lifetimes[i] = r.BatteryLifeYears
	}
	ss.MeanEnergy, ss.EnergyStdDev = Mean(energies), PopulationStdDev(energies)
	ss.MeanLatency, ss.LatencyStdDev = Mean(latencies), PopulationStdDev(latencies)
	ss.MeanBatteryLife = Mean(lifetimes)
	ss.EnergyHalfWidth = ConfidenceHalfWidth(ss.EnergyStdDev, n)
	ss.LatencyHalfWidth = ConfidenceHalfWidth(ss.LatencyStdDev, n)
	for _, r := range results {
		if r.PopulationSize < ss.MinPopulationSize {
			ss.MinPopulationSize = r.PopulationSize
		}
		if r.PopulationSize > ss.MaxPopulationSize {
			ss.MaxPopulationSize = r.PopulationSize
		}
	}
	return ss
}

// Compare derives the ComparisonReport of strategy summary b against baseline summary a.
func Compare(a, b StrategySummary) ComparisonReport {
	return ComparisonReport{
		StrategyA:                 a.Strategy,
		StrategyB:                 b.Strategy,
		EnergyImprovementPercent:  Improvement(a.MeanEnergy, b.MeanEnergy),
		LatencyImprovementPercent: Improvement(a.MeanLatency, b.MeanLatency),
		ConfidenceHalfWidthA:      a.EnergyHalfWidth,
		ConfidenceHalfWidthB:      b.EnergyHalfWidth,
	}
}

// Analyze groups results by strategy, summarizes each group and compares every non-baseline strategy
// against the baseline. Strategies are reported in canonical order.
func Analyze(results []AggregateResult, baseline Strategy) (*Analysis, error) {
	groups := make(map[Strategy][]AggregateResult)
	for _, r := range results {
		groups[r.Strategy] = append(groups[r.Strategy], r)
	}
	if len(groups[baseline]) == 0 {
		return nil, errors.Wrapf(ErrMissingBaseline, "baseline %s", baseline)
	}

	a := &Analysis{Baseline: baseline}
	for _, s := range AllStrategies() {
		if len(groups[s]) > 0 {
			a.Strategies = append(a.Strategies, Summarize(groups[s]))
		}
	}

	base, _ := a.Summary(baseline)
	for _, ss := range a.Strategies {
		if ss.Strategy != baseline {
			a.Comparisons = append(a.Comparisons, Compare(base, ss))
		}
	}
	return a, nil
}
