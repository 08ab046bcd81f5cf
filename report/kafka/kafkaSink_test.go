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

package report_kafka

import (
	"encoding/json"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

func TestKafkaSink(t *testing.T) {
	results := []AggregateResult{
		{Strategy: StrategyRAP, PopulationSize: 100, Repetitions: 3, MeanEnergy: 6.0, MeanLatency: 600},
		{Strategy: StrategyPUR, PopulationSize: 100, Repetitions: 3, MeanEnergy: 3.0, MeanLatency: 150},
	}
	analysis, err := stats.Analyze(results, StrategyRAP)
	require.Nil(t, err)

	var received [][]byte
	capture := func(val []byte) error {
		received = append(received, val)
		return nil
	}
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(capture)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(capture)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(capture)

	sink := NewKafkaSinkWithProducer(producer, "")
	require.Nil(t, sink.Init(report.RunInfo{RunId: "run-1"}))
	sink.OnTrial(&TrialResult{})
	for _, ar := range results {
		sink.OnAggregate(ar)
	}
	sink.OnAnalysis(analysis)
	assert.Equal(t, 3, sink.Sent())
	require.Nil(t, sink.Close())

	require.Equal(t, 3, len(received))
	agg := AggregateMessage{}
	require.Nil(t, json.Unmarshal(received[0], &agg))
	assert.Equal(t, MessageTypeAggregate, agg.Type)
	assert.Equal(t, "run-1", agg.RunId)
	assert.Equal(t, results[0], agg.AggregateResult)

	cmp := ComparisonMessage{}
	require.Nil(t, json.Unmarshal(received[2], &cmp))
	assert.Equal(t, MessageTypeComparison, cmp.Type)
	assert.Equal(t, StrategyRAP, cmp.StrategyA)
	assert.Equal(t, StrategyPUR, cmp.StrategyB)
	assert.InDelta(t, 50.0, cmp.EnergyImprovementPercent, 1e-9)
}

func TestKafkaSinkSendError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	producer.ExpectSendMessageAndSucceed()

	sink := NewKafkaSinkWithProducer(producer, "results")
	require.Nil(t, sink.Init(report.RunInfo{RunId: "run-2"}))
	sink.OnAggregate(AggregateResult{Strategy: StrategyEDT, PopulationSize: 100})
	sink.OnAggregate(AggregateResult{Strategy: StrategyEDT, PopulationSize: 500})
	assert.Equal(t, 1, sink.Sent())
	err := sink.Close()
	assert.Equal(t, sarama.ErrOutOfBrokers, errors.Cause(err))
}

func TestKafkaSinkNoBrokers(t *testing.T) {
	sink := NewKafkaSink(Config{})
	assert.NotNil(t, sink.Init(report.RunInfo{}))
	sink.OnAggregate(AggregateResult{Strategy: StrategyEDT, PopulationSize: 100})
	assert.Equal(t, 0, sink.Sent())
	assert.Nil(t, sink.Close())
}
