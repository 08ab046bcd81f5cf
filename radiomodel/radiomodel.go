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

package radiomodel

import (
	"math"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/prng"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// TrialBase is the shared radio-environment condition of one trial: the base energy and latency of
// every device in that trial.
type TrialBase struct {
	Energy  float64 // J
	Latency float64 // ms
}

// DrawTrialBase draws the trial base uniformly from the strategy's ranges (energy first).
func DrawTrialBase(cfg *StrategyConfig, rnd *prng.RandomSource) TrialBase {
	return TrialBase{
		Energy:  rnd.UniformRange(cfg.Energy.Min, cfg.Energy.Max),
		Latency: rnd.UniformRange(cfg.Latency.Min, cfg.Latency.Max),
	}
}

// DeviceSampler computes DeviceMeasurements for the devices of one trial.
type DeviceSampler struct {
	params *SamplerParams
	cfg    *StrategyConfig
	base   TrialBase
	n      int
}

// NewDeviceSampler creates a sampler for a population of n devices under strategy cfg, sharing the
// trial base. n must be >= 1.
func NewDeviceSampler(params *SamplerParams, cfg *StrategyConfig, base TrialBase, n int) *DeviceSampler {
	if params == nil {
		params = DefaultSamplerParams()
	}
	return &DeviceSampler{
		params: params,
		cfg:    cfg,
		base:   base,
		n:      n,
	}
}

// Sample computes the measurement of device i (0 <= i < n). The returned flag is true if energy or
// latency had to be clamped to the positive floor.
func (ds *DeviceSampler) Sample(i int, rnd *prng.RandomSource) (DeviceMeasurement, bool) {
	p := ds.params
	individualVar := rnd.UniformRange(individualVarMin, individualVarMax)
	distance := ds.DistanceFactor(i)
	interference := InterferenceFactor(ds.n, ds.cfg.InterferenceCoef, p.InterferenceUnit, rnd)
	noise := 1.0 + rnd.Normal()*p.NoiseSigma

	common := individualVar * distance * noise
	energy, clampedE := clampPositive(ds.base.Energy*common*interference, p.MinSampleValue)
	latency, clampedL := clampPositive(ds.base.Latency*common*ds.LatencyLoadFactor(), p.MinSampleValue)

	return DeviceMeasurement{Energy: energy, Latency: latency}, clampedE || clampedL
}

// DistanceFactor models devices farther from the reference point spending more energy and time.
func (ds *DeviceSampler) DistanceFactor(i int) float64 {
	return DistanceFactor(i, ds.n, ds.params.DistanceWeight)
}

// LatencyLoadFactor is the latency growth due to the population load.
func (ds *DeviceSampler) LatencyLoadFactor() float64 {
	return 1.0 + float64(ds.n)/ds.params.LatencyLoadUnit
}

// DistanceFactor returns 1 + weight * d/D, with d the distance of device i from the grid origin and D
// the grid diagonal.
func DistanceFactor(i int, n int, weight float64) float64 {
	x, y := gridPosition(i, n)
	return 1.0 + weight*math.Hypot(x, y)/gridDiagonal(n)
}

// InterferenceFactor returns 1 + (n/unit * coef) * U[0.8, 1.2]. Denser populations cause more
// contention; the strategy coefficient sets its severity.
func InterferenceFactor(n int, coef float64, unit float64, rnd *prng.RandomSource) float64 {
	interference := float64(n) / unit * coef
	return 1.0 + interference*rnd.UniformRange(interfJitterMin, interfJitterMax)
}
