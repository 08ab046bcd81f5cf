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

import "fmt"

// DeviceMeasurement is the sampled cost of one device's uplink transmission in a trial.
type DeviceMeasurement struct {
	Energy  float64 // J
	Latency float64 // ms
}

// TrialResult aggregates all DeviceMeasurements of one trial. Standard deviations are population
// standard deviations (divided by n).
type TrialResult struct {
	Strategy         Strategy `yaml:"strategy" json:"strategy"`
	PopulationSize   int      `yaml:"devices" json:"devices"`
	NumDevices       int      `yaml:"measured" json:"measured"`
	MeanEnergy       float64  `yaml:"energy_j" json:"energy_j"`
	MeanLatency      float64  `yaml:"latency_ms" json:"latency_ms"`
	EnergyStdDev     float64  `yaml:"energy_std_j" json:"energy_std_j"`
	LatencyStdDev    float64  `yaml:"latency_std_ms" json:"latency_std_ms"`
	BatteryLifeYears float64  `yaml:"battery_life_years" json:"battery_life_years"`
	ClampedSamples   int      `yaml:"clamped" json:"clamped"`
}

// AggregateResult is the average of repeated TrialResults for the same (Strategy, PopulationSize).
type AggregateResult struct {
	Strategy         Strategy `yaml:"strategy" json:"strategy"`
	PopulationSize   int      `yaml:"devices" json:"devices"`
	Repetitions      int      `yaml:"repetitions" json:"repetitions"`
	MeanEnergy       float64  `yaml:"energy_j" json:"energy_j"`
	MeanLatency      float64  `yaml:"latency_ms" json:"latency_ms"`
	EnergyStdDev     float64  `yaml:"energy_std_j" json:"energy_std_j"`
	LatencyStdDev    float64  `yaml:"latency_std_ms" json:"latency_std_ms"`
	BatteryLifeYears float64  `yaml:"battery_life_years" json:"battery_life_years"`
}

func (ar AggregateResult) Key() string {
	return fmt.Sprintf("%s/%d", ar.Strategy, ar.PopulationSize)
}

// ComparisonReport compares strategy B against strategy A (the baseline). Improvements are positive
// when B consumes less than A.
type ComparisonReport struct {
	StrategyA                 Strategy `yaml:"strategy_a" json:"strategy_a"`
	StrategyB                 Strategy `yaml:"strategy_b" json:"strategy_b"`
	EnergyImprovementPercent  float64  `yaml:"energy_improvement_percent" json:"energy_improvement_percent"`
	LatencyImprovementPercent float64  `yaml:"latency_improvement_percent" json:"latency_improvement_percent"`
	ConfidenceHalfWidthA      float64  `yaml:"ci95_a_j" json:"ci95_a_j"`
	ConfidenceHalfWidthB      float64  `yaml:"ci95_b_j" json:"ci95_b_j"`
}
