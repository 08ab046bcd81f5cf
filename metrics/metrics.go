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

// Package metrics exports simulation progress and results as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

const namespace = "nbiotsim"

// MetricsSink is a report.Sink that keeps the latest results in Prometheus collectors.
type MetricsSink struct {
	registry          *prometheus.Registry
	trialsTotal       *prometheus.CounterVec
	clampedTotal      *prometheus.CounterVec
	aggregateEnergy   *prometheus.GaugeVec
	aggregateLatency  *prometheus.GaugeVec
	batteryLife       *prometheus.GaugeVec
	energyImprovement *prometheus.GaugeVec
	rootSeed          prometheus.Gauge
}

// NewMetricsSink creates the collectors and registers them on a new registry.
func NewMetricsSink() *MetricsSink {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &MetricsSink{
		registry: reg,
		trialsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trials_total",
			Help:      "Number of completed trials.",
		}, []string{"strategy"}),
		clampedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clamped_samples_total",
			Help:      "Number of device samples clamped to the positive floor.",
		}, []string{"strategy"}),
		aggregateEnergy: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "aggregate_energy_joules",
			Help:      "Mean energy per device transmission, averaged over repetitions.",
		}, []string{"strategy", "devices"}),
		aggregateLatency: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "aggregate_latency_ms",
			Help:      "Mean latency per device transmission, averaged over repetitions.",
		}, []string{"strategy", "devices"}),
		batteryLife: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "battery_life_years",
			Help:      "Projected battery life.",
		}, []string{"strategy", "devices"}),
		energyImprovement: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "energy_improvement_percent",
			Help:      "Energy saving versus the baseline strategy.",
		}, []string{"strategy"}),
		rootSeed: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "root_seed",
			Help:      "Root random seed of the current run.",
		}),
	}
}

func (ms *MetricsSink) Registry() *prometheus.Registry {
	return ms.registry
}

func (ms *MetricsSink) Init(info report.RunInfo) error {
	ms.rootSeed.Set(float64(info.RootSeed))
	return nil
}

func (ms *MetricsSink) OnTrial(tr *TrialResult) {
	strategy := tr.Strategy.String()
	ms.trialsTotal.WithLabelValues(strategy).Inc()
	ms.clampedTotal.WithLabelValues(strategy).Add(float64(tr.ClampedSamples))
}

func (ms *MetricsSink) OnAggregate(ar AggregateResult) {
	strategy, devices := ar.Strategy.String(), strconv.Itoa(ar.PopulationSize)
	ms.aggregateEnergy.WithLabelValues(strategy, devices).Set(ar.MeanEnergy)
	ms.aggregateLatency.WithLabelValues(strategy, devices).Set(ar.MeanLatency)
	ms.batteryLife.WithLabelValues(strategy, devices).Set(ar.BatteryLifeYears)
}

func (ms *MetricsSink) OnAnalysis(a *stats.Analysis) {
	if a == nil {
		return
	}
	for _, cr := range a.Comparisons {
		ms.energyImprovement.WithLabelValues(cr.StrategyB.String()).Set(cr.EnergyImprovementPercent)
	}
}

func (ms *MetricsSink) Close() error {
	return nil
}

// Handler returns the HTTP handler exposing the sink's registry.
func (ms *MetricsSink) Handler() http.Handler {
	return promhttp.HandlerFor(ms.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics on http://<addr>/metrics until ctx is done.
func (ms *MetricsSink) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", ms.Handler())
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Infof("metrics available at http://%s/metrics", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrapf(err, "metrics server %s", addr)
	}
	return nil
}
