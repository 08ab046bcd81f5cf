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

package report_csvlog

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

const header = "mode,devices,energy_j,latency_ms,energy_std_j,latency_std_ms,battery_life_years,repetitions"

type csvlogSink struct {
	logFile       *os.File
	logFileName   string
	outputDir     string
	isFileEnabled bool
}

// NewCsvlogSink creates a new Sink that writes one CSV row per aggregate to '<out>/<id>_results.csv'.
func NewCsvlogSink() report.Sink {
	return &csvlogSink{}
}

// GetFileName returns the name of the results CSV file of a simulation.
func GetFileName(outputDir string, simulationId int) string {
	return filepath.Join(outputDir, fmt.Sprintf("%d_results.csv", simulationId))
}

func (cs *csvlogSink) Init(info report.RunInfo) error {
	logger.AssertNil(cs.logFile)
	cs.logFileName = GetFileName(info.OutputDir, info.SimulationId)
	_ = os.Remove(cs.logFileName)

	var err error
	cs.logFile, err = os.OpenFile(cs.logFileName, os.O_CREATE|os.O_WRONLY, 0664)
	if err != nil {
		return err
	}
	cs.isFileEnabled = true
	// RFC 4180 CSV file: no leading or trailing spaces in header field names
	if err = cs.writeToLogFile(header); err != nil {
		return err
	}
	logger.Debugf("Results CSV file '%s' created.", cs.logFileName)
	return nil
}

func (cs *csvlogSink) OnTrial(*TrialResult) {
}

func (cs *csvlogSink) OnAggregate(ar AggregateResult) {
	entry := fmt.Sprintf("%s,%d,%.6f,%.3f,%.6f,%.3f,%.4f,%d", ar.Strategy, ar.PopulationSize, ar.MeanEnergy,
		ar.MeanLatency, ar.EnergyStdDev, ar.LatencyStdDev, ar.BatteryLifeYears, ar.Repetitions)
	_ = cs.writeToLogFile(entry)
}

func (cs *csvlogSink) OnAnalysis(*stats.Analysis) {
}

func (cs *csvlogSink) Close() error {
	if cs.logFile == nil {
		return nil
	}
	err := cs.logFile.Close()
	cs.logFile = nil
	cs.isFileEnabled = false
	logger.Debugf("csvlogSink stopped and CSV file closed.")
	return err
}

func (cs *csvlogSink) writeToLogFile(line string) error {
	if !cs.isFileEnabled {
		return nil
	}
	_, err := cs.logFile.WriteString(line + "\n")
	if err != nil {
		_ = cs.Close()
		logger.Errorf("couldn't write to results CSV file (%s), closing it", cs.logFileName)
	}
	return err
}
