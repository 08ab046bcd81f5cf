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

// Package stats implements the descriptive statistics and the cross-strategy comparison of
// simulation results.
//
// All standard deviations are population standard deviations (sum of squares divided by n). The 95%
// confidence interval of a strategy treats the per-population aggregate means as i.i.d. samples,
// which is an approximation: it does not model the per-device distribution underneath.
package stats

import "math"

// Z95 is the two-sided 95% quantile of the standard normal distribution.
const Z95 = 1.96

// Mean returns the arithmetic mean of values, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// PopulationStdDev returns the population standard deviation of values, or 0 for no values.
func PopulationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	mean := Mean(values)
	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(values)))
}

// MeanAndStdDev is Mean and PopulationStdDev of a sequence given by an accessor, so that callers
// don't need to copy record fields into a slice.
func MeanAndStdDev(n int, value func(i int) float64) (float64, float64) {
	if n <= 0 {
		return 0.0, 0.0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += value(i)
	}
	mean := sum / float64(n)
	variance := 0.0
	for i := 0; i < n; i++ {
		d := value(i) - mean
		variance += d * d
	}
	return mean, math.Sqrt(variance / float64(n))
}

// ConfidenceHalfWidth returns 1.96 * stddev / sqrt(count), or 0 for count < 1.
func ConfidenceHalfWidth(stdDev float64, count int) float64 {
	if count < 1 {
		return 0.0
	}
	return Z95 * stdDev / math.Sqrt(float64(count))
}

// Improvement returns the relative improvement (%) of other versus baseline, positive if other is
// lower. NaN if baseline is 0.
func Improvement(baseline, other float64) float64 {
	if baseline == 0 {
		return math.NaN()
	}
	return (baseline - other) / baseline * 100.0
}
