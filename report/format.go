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

package report

import (
	"fmt"
	"io"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// WriteAggregate writes the detailed, human-readable form of an aggregate.
func WriteAggregate(w io.Writer, ar AggregateResult) error {
	_, err := fmt.Fprintf(w, "Mode: %s | Devices: %d | Repetitions: %d\n"+
		"  Energy: %.6f J (±%.6f)\n"+
		"  Latency: %.3f ms (±%.3f)\n"+
		"  Battery: %.4f years\n\n",
		ar.Strategy, ar.PopulationSize, ar.Repetitions, ar.MeanEnergy, ar.EnergyStdDev, ar.MeanLatency,
		ar.LatencyStdDev, ar.BatteryLifeYears)
	return err
}

// WriteAnalysis writes the human-readable statistical analysis: per-strategy averages with their 95%
// confidence interval, then the savings of each strategy versus the baseline.
func WriteAnalysis(w io.Writer, a *stats.Analysis) error {
	p := &errWriter{w: w}
	p.printf("STATISTICAL ANALYSIS\n")
	p.printf("====================\n\n")
	p.printf("Averages over population sizes (95%% confidence interval):\n")
	for _, ss := range a.Strategies {
		p.printf("  %-3s  energy %.6f ± %.6f J  latency %.3f ± %.3f ms  battery %.4f years  (%d sizes)\n",
			ss.Strategy, ss.MeanEnergy, ss.EnergyHalfWidth, ss.MeanLatency, ss.LatencyHalfWidth,
			ss.MeanBatteryLife, ss.Count)
	}
	for _, cr := range a.Comparisons {
		p.printf("\n%s vs %s improvement:\n", cr.StrategyB, cr.StrategyA)
		p.printf("  Energy saving: %.2f%%\n", cr.EnergyImprovementPercent)
		p.printf("  Latency reduction: %.2f%%\n", cr.LatencyImprovementPercent)
		p.printf("  95%% CI: %s ± %.6f J, %s ± %.6f J\n", cr.StrategyA, cr.ConfidenceHalfWidthA, cr.StrategyB,
			cr.ConfidenceHalfWidthB)
	}
	return p.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (p *errWriter) printf(format string, args ...interface{}) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, args...)
	}
}
