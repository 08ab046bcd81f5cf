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

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

func TestMetricsSink(t *testing.T) {
	ms := NewMetricsSink()
	require.Nil(t, ms.Init(report.RunInfo{RootSeed: 42}))
	assert.Equal(t, 42.0, testutil.ToFloat64(ms.rootSeed))

	ms.OnTrial(&TrialResult{Strategy: StrategyRAP, PopulationSize: 100, ClampedSamples: 2})
	ms.OnTrial(&TrialResult{Strategy: StrategyRAP, PopulationSize: 100})
	ms.OnTrial(&TrialResult{Strategy: StrategyPUR, PopulationSize: 100})
	assert.Equal(t, 2.0, testutil.ToFloat64(ms.trialsTotal.WithLabelValues("RAP")))
	assert.Equal(t, 1.0, testutil.ToFloat64(ms.trialsTotal.WithLabelValues("PUR")))
	assert.Equal(t, 2.0, testutil.ToFloat64(ms.clampedTotal.WithLabelValues("RAP")))

	results := []AggregateResult{
		{Strategy: StrategyRAP, PopulationSize: 100, MeanEnergy: 6.0, MeanLatency: 600, BatteryLifeYears: 0.34},
		{Strategy: StrategyPUR, PopulationSize: 100, MeanEnergy: 3.0, MeanLatency: 150, BatteryLifeYears: 0.68},
	}
	for _, ar := range results {
		ms.OnAggregate(ar)
	}
	assert.Equal(t, 3.0, testutil.ToFloat64(ms.aggregateEnergy.WithLabelValues("PUR", "100")))
	assert.Equal(t, 600.0, testutil.ToFloat64(ms.aggregateLatency.WithLabelValues("RAP", "100")))
	assert.Equal(t, 0.68, testutil.ToFloat64(ms.batteryLife.WithLabelValues("PUR", "100")))

	analysis, err := stats.Analyze(results, StrategyRAP)
	require.Nil(t, err)
	ms.OnAnalysis(analysis)
	ms.OnAnalysis(nil)
	assert.InDelta(t, 50.0, testutil.ToFloat64(ms.energyImprovement.WithLabelValues("PUR")), 1e-9)
	assert.Nil(t, ms.Close())

	count, err := testutil.GatherAndCount(ms.Registry(), "nbiotsim_trials_total")
	require.Nil(t, err)
	assert.Equal(t, 2, count)
}

func TestMetricsHandler(t *testing.T) {
	ms := NewMetricsSink()
	ms.OnAggregate(AggregateResult{Strategy: StrategyEDT, PopulationSize: 500, MeanEnergy: 4.0})

	server := httptest.NewServer(ms.Handler())
	defer server.Close()
	resp, err := http.Get(server.URL)
	require.Nil(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.Nil(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `nbiotsim_aggregate_energy_joules{devices="500",strategy="EDT"} 4`))
}
