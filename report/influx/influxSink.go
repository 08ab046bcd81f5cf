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

package report_influx

import (
	"context"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/pkg/errors"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

const (
	AggregateMeasurement  = "nbiot_aggregate"
	ComparisonMeasurement = "nbiot_comparison"

	DefaultOrg     = "nbiotsim"
	DefaultBucket  = "nbiotsim"
	DefaultTimeout = 10 * time.Second
)

type Config struct {
	URL     string
	Token   string
	Org     string
	Bucket  string
	Timeout time.Duration
}

// InfluxSink exports aggregates and comparisons as InfluxDB v2 points. Points are buffered and
// written with the blocking write API when the analysis arrives and on Close.
type InfluxSink struct {
	cfg      Config
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	runId    string
	pending  []*write.Point
	lastErr  error
}

func NewInfluxSink(cfg Config) *InfluxSink {
	if cfg.Org == "" {
		cfg.Org = DefaultOrg
	}
	if cfg.Bucket == "" {
		cfg.Bucket = DefaultBucket
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &InfluxSink{cfg: cfg}
}

// Init connects to the InfluxDB server and verifies it is ready.
func (is *InfluxSink) Init(info report.RunInfo) error {
	is.runId = info.RunId
	is.client = influxdb2.NewClient(is.cfg.URL, is.cfg.Token)
	ctx, cancel := context.WithTimeout(context.Background(), is.cfg.Timeout)
	defer cancel()
	health, err := is.client.Health(ctx)
	if err != nil {
		is.client.Close()
		is.client = nil
		return errors.Wrapf(err, "InfluxDB %s not reachable", is.cfg.URL)
	}
	if health.Status != "pass" {
		is.client.Close()
		is.client = nil
		return errors.Errorf("InfluxDB %s not ready: %s", is.cfg.URL, health.Status)
	}
	is.writeAPI = is.client.WriteAPIBlocking(is.cfg.Org, is.cfg.Bucket)
	logger.Debugf("InfluxDB sink connected to %s (org %s, bucket %s)", is.cfg.URL, is.cfg.Org, is.cfg.Bucket)
	return nil
}

func (is *InfluxSink) OnTrial(*TrialResult) {
}

func (is *InfluxSink) OnAggregate(ar AggregateResult) {
	p := write.NewPoint(
		AggregateMeasurement,
		map[string]string{
			"strategy": ar.Strategy.String(),
			"devices":  strconv.Itoa(ar.PopulationSize),
			"run_id":   is.runId,
		},
		map[string]interface{}{
			"energy_j":           ar.MeanEnergy,
			"latency_ms":         ar.MeanLatency,
			"energy_std_j":       ar.EnergyStdDev,
			"latency_std_ms":     ar.LatencyStdDev,
			"battery_life_years": ar.BatteryLifeYears,
			"repetitions":        ar.Repetitions,
		},
		time.Now(),
	)
	is.pending = append(is.pending, p)
}

func (is *InfluxSink) OnAnalysis(a *stats.Analysis) {
	if a == nil {
		return
	}
	ts := time.Now()
	for _, cr := range a.Comparisons {
		p := write.NewPoint(
			ComparisonMeasurement,
			map[string]string{
				"baseline": cr.StrategyA.String(),
				"strategy": cr.StrategyB.String(),
				"run_id":   is.runId,
			},
			map[string]interface{}{
				"energy_improvement_percent":  cr.EnergyImprovementPercent,
				"latency_improvement_percent": cr.LatencyImprovementPercent,
				"ci95_baseline_j":             cr.ConfidenceHalfWidthA,
				"ci95_strategy_j":             cr.ConfidenceHalfWidthB,
			},
			ts,
		)
		is.pending = append(is.pending, p)
	}
	is.flush()
}

// Close writes the pending points and closes the client. It returns the last write error, if any.
func (is *InfluxSink) Close() error {
	is.flush()
	if is.client != nil {
		is.client.Close()
		is.client = nil
	}
	return is.lastErr
}

func (is *InfluxSink) flush() {
	if len(is.pending) == 0 || is.writeAPI == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), is.cfg.Timeout)
	defer cancel()
	if err := is.writeAPI.WritePoint(ctx, is.pending...); err != nil {
		is.lastErr = errors.Wrapf(err, "writing %d points to InfluxDB", len(is.pending))
		logger.Errorf("%v", is.lastErr)
	} else {
		logger.Debugf("%d points written to InfluxDB", len(is.pending))
	}
	is.pending = nil
}
