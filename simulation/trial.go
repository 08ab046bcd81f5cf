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
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/prng"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/radiomodel"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// SampleTrial samples the measurements of all n devices of one trial. It returns exactly n
// measurements and the number of devices whose energy or latency was clamped.
func SampleTrial(cfg *StrategyConfig, params *radiomodel.SamplerParams, n int, rnd *prng.RandomSource) ([]DeviceMeasurement, int, error) {
	if n < 1 {
		return nil, 0, errors.Wrapf(ErrInvalidPopulationSize, "population size %d", n)
	}

	base := radiomodel.DrawTrialBase(cfg, rnd)
	sampler := radiomodel.NewDeviceSampler(params, cfg, base, n)
	measurements := make([]DeviceMeasurement, n)
	clamped := 0
	for i := 0; i < n; i++ {
		m, isClamped := sampler.Sample(i, rnd)
		if isClamped {
			clamped++
			logger.Debugf("%s n=%d: device %d sample clamped to %+v", cfg.Strategy, n, i, m)
		}
		measurements[i] = m
	}
	return measurements, clamped, nil
}

// RunTrial runs one trial of n devices and reduces it to a TrialResult.
func RunTrial(cfg *StrategyConfig, params *radiomodel.SamplerParams, n int, battery energy.BatteryModel, rnd *prng.RandomSource) (*TrialResult, error) {
	measurements, clamped, err := SampleTrial(cfg, params, n, rnd)
	if err != nil {
		return nil, err
	}

	tr := &TrialResult{
		Strategy:       cfg.Strategy,
		PopulationSize: n,
		NumDevices:     len(measurements),
		ClampedSamples: clamped,
	}
	tr.MeanEnergy, tr.EnergyStdDev = stats.MeanAndStdDev(n, func(i int) float64 { return measurements[i].Energy })
	tr.MeanLatency, tr.LatencyStdDev = stats.MeanAndStdDev(n, func(i int) float64 { return measurements[i].Latency })
	tr.BatteryLifeYears = battery.LifeYearsWithJitter(tr.MeanEnergy, rnd)
	logger.AssertEqual(n, tr.NumDevices)
	return tr, nil
}

// Aggregate averages repeated trials of the same (strategy, population size). The battery life is
// recomputed from the averaged mean energy, without jitter.
func Aggregate(trials []*TrialResult, battery energy.BatteryModel) (AggregateResult, error) {
	if len(trials) == 0 {
		return AggregateResult{}, errors.Wrapf(ErrMixedTrials, "no trials to aggregate")
	}
	first := trials[0]
	for _, tr := range trials[1:] {
		if tr.Strategy != first.Strategy || tr.PopulationSize != first.PopulationSize {
			return AggregateResult{}, errors.Wrapf(ErrMixedTrials, "%s/%d and %s/%d", first.Strategy,
				first.PopulationSize, tr.Strategy, tr.PopulationSize)
		}
	}

	count := len(trials)
	ar := AggregateResult{
		Strategy:       first.Strategy,
		PopulationSize: first.PopulationSize,
		Repetitions:    count,
	}
	ar.MeanEnergy, _ = stats.MeanAndStdDev(count, func(i int) float64 { return trials[i].MeanEnergy })
	ar.MeanLatency, _ = stats.MeanAndStdDev(count, func(i int) float64 { return trials[i].MeanLatency })
	ar.EnergyStdDev, _ = stats.MeanAndStdDev(count, func(i int) float64 { return trials[i].EnergyStdDev })
	ar.LatencyStdDev, _ = stats.MeanAndStdDev(count, func(i int) float64 { return trials[i].LatencyStdDev })
	ar.BatteryLifeYears = battery.LifeYears(ar.MeanEnergy)
	return ar, nil
}
