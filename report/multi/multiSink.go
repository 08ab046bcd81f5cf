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

package report_multi

import (
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

type MultiSink struct {
	ss []report.Sink
}

// NewMultiSink creates a new Sink that multiplexes to multiple Sinks.
func NewMultiSink(ss ...report.Sink) *MultiSink {
	return &MultiSink{ss: ss}
}

func (ms *MultiSink) AddSink(ss ...report.Sink) {
	ms.ss = append(ms.ss, ss...)
}

func (ms *MultiSink) Len() int {
	return len(ms.ss)
}

// Init inits all sinks. It returns the first error; the remaining sinks are still inited.
func (ms *MultiSink) Init(info report.RunInfo) error {
	var firstErr error
	for _, s := range ms.ss {
		if err := s.Init(info); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (ms *MultiSink) OnTrial(tr *TrialResult) {
	for _, s := range ms.ss {
		s.OnTrial(tr)
	}
}

func (ms *MultiSink) OnAggregate(ar AggregateResult) {
	for _, s := range ms.ss {
		s.OnAggregate(ar)
	}
}

func (ms *MultiSink) OnAnalysis(a *stats.Analysis) {
	for _, s := range ms.ss {
		s.OnAnalysis(a)
	}
}

// Close closes all sinks. It returns the first error; the remaining sinks are still closed.
func (ms *MultiSink) Close() error {
	var firstErr error
	for _, s := range ms.ss {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
