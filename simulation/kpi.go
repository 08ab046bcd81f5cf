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

package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
)

type KpiManager struct {
	sim       *Simulation
	data      *Kpi
	startTime time.Time
	endTime   time.Time
	wallTime  time.Duration // accumulated over all grid runs
	isRunning bool
}

// NewKpiManager creates a new KPI manager/bookkeeper for a particular simulation.
func NewKpiManager() *KpiManager {
	km := &KpiManager{}
	return km
}

// Init inits the KPI manager for the given simulation.
func (km *KpiManager) Init(sim *Simulation) {
	logger.AssertNil(km.sim)
	logger.AssertFalse(km.isRunning)
	km.sim = sim
	km.data = &Kpi{Status: "ok"}
}

func (km *KpiManager) Start() {
	logger.AssertNotNil(km.sim)
	km.startTime = time.Now()
	if km.data.Time.StartTime == "" {
		km.data.Time.StartTime = km.startTime.Format(time.RFC3339)
	}
	km.isRunning = true
}

func (km *KpiManager) Stop() {
	if km.isRunning {
		km.endTime = time.Now()
		km.wallTime += km.endTime.Sub(km.startTime)
		km.isRunning = false
		km.calculateKpis()
		km.SaveDefaultFile()
	}
}

// SetAnalysis sets the latest analysis, to be included in the next saved file.
func (km *KpiManager) SetAnalysis(a *stats.Analysis) {
	km.data.Analysis = a
}

func (km *KpiManager) SaveDefaultFile() {
	km.SaveFile(km.getDefaultSaveFileName())
}

func (km *KpiManager) SaveFile(fn string) {
	logger.AssertNotNil(km.sim)
	if km.isRunning {
		km.data.Status = "'results' incomplete due to running simulation"
	}
	km.calculateKpis()

	km.data.FileTime = time.Now().Format(time.RFC3339)
	json, err := json.MarshalIndent(km.data, "", "    ")
	if err != nil {
		logger.Errorf("Could not marshal KPI JSON data: %v", err)
		return
	}

	err = os.WriteFile(fn, json, 0644)
	if err != nil {
		logger.Errorf("Could not write KPI JSON file %s: %v", fn, err)
		return
	}
	logger.Debugf("KPI file '%s' written.", fn)
}

func (km *KpiManager) calculateKpis() {
	// run
	info := km.sim.RunInfo()
	km.data.Run = KpiRun{
		RunId:       info.RunId,
		RootSeed:    info.RootSeed,
		Repetitions: info.Repetitions,
		Workers:     info.Workers,
		Trials:      km.sim.TrialCount(),
	}

	// time
	if !km.endTime.IsZero() {
		km.data.Time.EndTime = km.endTime.Format(time.RFC3339)
	}
	km.data.Time.PeriodSec = km.wallTime.Seconds()

	// results
	km.data.Results = km.sim.Results()
	if !km.isRunning {
		km.data.Status = "ok"
	}
}

func (km *KpiManager) getDefaultSaveFileName() string {
	return filepath.Join(km.sim.cfg.OutputDir, fmt.Sprintf("%d_kpi.json", km.sim.cfg.Id))
}
