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

	"github.com/pkg/errors"

	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// default sampling model parameters
const (
	DistanceWeight   float64 = 0.5     // max relative cost increase for the device farthest from the reference point
	InterferenceUnit float64 = 1000.0  // population size in which the interference coefficient is expressed
	LatencyLoadUnit  float64 = 10000.0 // population size that doubles latency due to load
	NoiseSigma       float64 = 0.1     // sigma of the multiplicative noise term
	MinSampleValue   float64 = 1e-6    // floor for sampled energy (J) and latency (ms)
	interfJitterMin  float64 = 0.8
	interfJitterMax  float64 = 1.2
	individualVarMin float64 = 0.9
	individualVarMax float64 = 1.1
)

// SamplerParams stores the parameters of the per-device sampling model.
type SamplerParams struct {
	DistanceWeight   float64 // see DistanceWeight
	NoiseSigma       float64 // see NoiseSigma
	MinSampleValue   float64 // see MinSampleValue
	InterferenceUnit float64 // see InterferenceUnit
	LatencyLoadUnit  float64 // see LatencyLoadUnit
}

// DefaultSamplerParams gets the reference parameter set.
func DefaultSamplerParams() *SamplerParams {
	return &SamplerParams{
		DistanceWeight:   DistanceWeight,
		NoiseSigma:       NoiseSigma,
		MinSampleValue:   MinSampleValue,
		InterferenceUnit: InterferenceUnit,
		LatencyLoadUnit:  LatencyLoadUnit,
	}
}

// Validate checks that the weights are finite and non-negative, and that the units and the sample
// floor are finite and positive.
func (sp *SamplerParams) Validate() error {
	for _, p := range []struct {
		name     string
		v        float64
		positive bool
	}{
		{"distance weight", sp.DistanceWeight, false},
		{"noise sigma", sp.NoiseSigma, false},
		{"min sample value", sp.MinSampleValue, true},
		{"interference unit", sp.InterferenceUnit, true},
		{"latency load unit", sp.LatencyLoadUnit, true},
	} {
		if math.IsNaN(p.v) || math.IsInf(p.v, 0) || p.v < 0 || (p.positive && p.v == 0) {
			return errors.Wrapf(ErrInvalidSamplerParams, "%s %g", p.name, p.v)
		}
	}
	return nil
}
