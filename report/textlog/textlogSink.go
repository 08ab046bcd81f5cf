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

package report_textlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

type textlogSink struct {
	file     *os.File
	w        *bufio.Writer
	fileName string
	err      error // first write error; further output is dropped
}

// NewTextlogSink creates a new Sink that writes the detailed results and the statistical analysis
// to '<out>/<id>_detailed.txt'.
func NewTextlogSink() report.Sink {
	return &textlogSink{}
}

// GetFileName returns the name of the detailed report file of a simulation.
func GetFileName(outputDir string, simulationId int) string {
	return filepath.Join(outputDir, fmt.Sprintf("%d_detailed.txt", simulationId))
}

func (ts *textlogSink) Init(info report.RunInfo) error {
	logger.AssertNil(ts.file)
	ts.fileName = GetFileName(info.OutputDir, info.SimulationId)

	var err error
	ts.file, err = os.Create(ts.fileName)
	if err != nil {
		return err
	}
	ts.w = bufio.NewWriter(ts.file)
	_, ts.err = fmt.Fprintf(ts.w, "DETAILED SIMULATION RESULTS\n"+
		"===========================\n"+
		"# run %s, seed %d, %d repetitions, created %s\n\n",
		info.RunId, info.RootSeed, info.Repetitions, info.StartTime.Format(time.RFC3339))
	return ts.err
}

func (ts *textlogSink) OnTrial(*TrialResult) {
}

func (ts *textlogSink) OnAggregate(ar AggregateResult) {
	if ts.w == nil || ts.err != nil {
		return
	}
	ts.err = report.WriteAggregate(ts.w, ar)
	ts.logWriteError()
}

func (ts *textlogSink) OnAnalysis(a *stats.Analysis) {
	if ts.w == nil || ts.err != nil || a == nil {
		return
	}
	ts.err = report.WriteAnalysis(ts.w, a)
	ts.logWriteError()
}

func (ts *textlogSink) Close() error {
	if ts.file == nil {
		return nil
	}
	err := ts.w.Flush()
	if cerr := ts.file.Close(); err == nil {
		err = cerr
	}
	ts.file = nil
	ts.w = nil
	logger.Debugf("textlogSink stopped and '%s' closed.", ts.fileName)
	return err
}

func (ts *textlogSink) logWriteError() {
	if ts.err != nil {
		logger.Errorf("couldn't write to detailed report file (%s): %v", ts.fileName, ts.err)
	}
}
