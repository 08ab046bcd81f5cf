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
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/pkg/errors"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

const (
	DefaultTopic = "nbiotsim-results"

	MessageTypeAggregate  = "aggregate"
	MessageTypeComparison = "comparison"
)

type Config struct {
	Brokers []string
	Topic   string
}

type AggregateMessage struct {
	Type  string `json:"type"`
	RunId string `json:"run_id"`
	AggregateResult
}

type ComparisonMessage struct {
	Type  string `json:"type"`
	RunId string `json:"run_id"`
	ComparisonReport
}

// KafkaSink publishes every aggregate and every comparison as a JSON message to a Kafka topic.
type KafkaSink struct {
	cfg      Config
	producer sarama.SyncProducer
	runId    string
	sent     int
	lastErr  error
}

func NewKafkaSink(cfg Config) *KafkaSink {
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	return &KafkaSink{cfg: cfg}
}

// NewKafkaSinkWithProducer creates a sink that publishes through an existing producer. The sink
// takes ownership of the producer.
func NewKafkaSinkWithProducer(producer sarama.SyncProducer, topic string) *KafkaSink {
	ks := NewKafkaSink(Config{Topic: topic})
	ks.producer = producer
	return ks
}

func newProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "nbiotsim"
	cfg.Producer.Return.Successes = true // required by SyncProducer
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Timeout = 10 * time.Second
	return cfg
}

func (ks *KafkaSink) Init(info report.RunInfo) error {
	ks.runId = info.RunId
	if ks.producer != nil {
		return nil
	}
	if len(ks.cfg.Brokers) == 0 {
		return errors.Errorf("no Kafka brokers configured")
	}
	producer, err := sarama.NewSyncProducer(ks.cfg.Brokers, newProducerConfig())
	if err != nil {
		return errors.Wrapf(err, "connecting to Kafka brokers %v", ks.cfg.Brokers)
	}
	ks.producer = producer
	logger.Debugf("Kafka sink connected to %v, topic %s", ks.cfg.Brokers, ks.cfg.Topic)
	return nil
}

func (ks *KafkaSink) OnTrial(*TrialResult) {
}

func (ks *KafkaSink) OnAggregate(ar AggregateResult) {
	ks.send(ar.Key(), AggregateMessage{
		Type:            MessageTypeAggregate,
		RunId:           ks.runId,
		AggregateResult: ar,
	})
}

func (ks *KafkaSink) OnAnalysis(a *stats.Analysis) {
	if a == nil {
		return
	}
	for _, cr := range a.Comparisons {
		ks.send(fmt.Sprintf("%s/%s", cr.StrategyB, cr.StrategyA), ComparisonMessage{
			Type:             MessageTypeComparison,
			RunId:            ks.runId,
			ComparisonReport: cr,
		})
	}
}

// Close closes the producer. It returns the last send error, if any.
func (ks *KafkaSink) Close() error {
	if ks.producer != nil {
		if err := ks.producer.Close(); err != nil && ks.lastErr == nil {
			ks.lastErr = err
		}
		ks.producer = nil
		logger.Debugf("Kafka sink closed after %d messages", ks.sent)
	}
	return ks.lastErr
}

// Sent returns the number of messages delivered so far.
func (ks *KafkaSink) Sent() int {
	return ks.sent
}

func (ks *KafkaSink) send(key string, msg interface{}) {
	if ks.producer == nil {
		return
	}
	value, err := json.Marshal(msg)
	if err != nil {
		ks.lastErr = errors.Wrapf(err, "encoding message %s", key)
		logger.Errorf("%v", ks.lastErr)
		return
	}
	_, _, err = ks.producer.SendMessage(&sarama.ProducerMessage{
		Topic: ks.cfg.Topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		ks.lastErr = errors.Wrapf(err, "sending message %s to topic %s", key, ks.cfg.Topic)
		logger.Errorf("%v", ks.lastErr)
		return
	}
	ks.sent++
}
