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
	"context"
	"io/fs"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/prng"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/stats"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// Simulation runs the Monte-Carlo grid of a Config. It is not safe for concurrent use: the console
// and the batch mode both drive it from a single goroutine.
type Simulation struct {
	cfg       *Config
	sink      report.Sink
	seedGen   prng.SeedGenerator
	runInfo   report.RunInfo
	kpiMgr    *KpiManager
	nextTrial int // global index of the next trial; selects its random stream
	results   []AggregateResult
	stopped   bool
}

// NewSimulation validates cfg, resolves the root seed and inits the sink. A nil sink means no
// reporting.
func NewSimulation(cfg *Config, sink report.Sink) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = report.NewNopSink()
	}

	s := &Simulation{
		cfg:     cfg,
		sink:    sink,
		seedGen: prng.NewSeedGenerator(prng.NewRootSeed(cfg.RootSeed)),
	}
	s.runInfo = report.RunInfo{
		RunId:           uuid.New().String(),
		SimulationId:    cfg.Id,
		RootSeed:        int64(s.seedGen.Root()),
		Repetitions:     cfg.Repetitions,
		Workers:         cfg.Workers,
		PopulationSizes: append([]int{}, cfg.PopulationSizes...),
		OutputDir:       cfg.OutputDir,
		StartTime:       time.Now(),
	}
	for _, sc := range cfg.Strategies {
		s.runInfo.Strategies = append(s.runInfo.Strategies, sc.Strategy)
	}
	logger.Infof("simulation %d: run id %s, random seed %d", cfg.Id, s.runInfo.RunId, s.runInfo.RootSeed)

	if len(cfg.OutputDir) > 0 {
		if err := s.createOutputDir(); err != nil {
			return nil, errors.Wrapf(err, "creating output directory %s", cfg.OutputDir)
		}
	}
	if err := s.sink.Init(s.runInfo); err != nil {
		if cerr := s.sink.Close(); cerr != nil {
			logger.Warnf("report sink close: %v", cerr)
		}
		return nil, errors.Wrapf(err, "report sink init")
	}

	if cfg.WriteKpi && len(cfg.OutputDir) > 0 {
		s.kpiMgr = NewKpiManager()
		s.kpiMgr.Init(s)
	}
	return s, nil
}

// Run runs the complete grid: every configured strategy, every population size, Repetitions trials
// each. It returns the aggregates in grid order and the analysis versus the baseline. The analysis is
// nil if the baseline strategy is not part of the run.
func (s *Simulation) Run(ctx context.Context) ([]AggregateResult, *stats.Analysis, error) {
	return s.RunPopulations(ctx, s.cfg.PopulationSizes)
}

// RunPopulations is Run over the given population sizes instead of the configured grid.
func (s *Simulation) RunPopulations(ctx context.Context, populations []int) ([]AggregateResult, *stats.Analysis, error) {
	scs := make([]*StrategyConfig, len(s.cfg.Strategies))
	for i := range s.cfg.Strategies {
		scs[i] = &s.cfg.Strategies[i]
	}

	if s.kpiMgr != nil {
		defer s.kpiMgr.Stop() // saves the KPI file, including the analysis below
	}
	results, err := s.runGrid(ctx, scs, populations)
	if err != nil {
		return results, nil, err
	}

	analysis, err := s.Analyze()
	if err != nil {
		return results, nil, err
	}
	if analysis != nil {
		s.sink.OnAnalysis(analysis)
	}
	return results, analysis, nil
}

// RunStrategy runs a sub-grid of a single strategy. The strategy must be part of the Config.
// Results replace earlier results with the same strategy and population size.
func (s *Simulation) RunStrategy(ctx context.Context, strategy Strategy, populations []int) ([]AggregateResult, error) {
	sc := s.cfg.GetStrategyConfig(strategy)
	if sc == nil {
		return nil, errors.Wrapf(ErrInvalidStrategyConfig, "strategy %s not configured", strategy)
	}
	if len(populations) == 0 {
		populations = s.cfg.PopulationSizes
	}
	if s.kpiMgr != nil {
		defer s.kpiMgr.Stop()
	}
	results, err := s.runGrid(ctx, []*StrategyConfig{sc}, populations)
	if err != nil {
		return results, err
	}
	_, err = s.analyze()
	return results, err
}

// Analyze analyzes all results collected so far. It returns nil, nil when the baseline strategy has
// no results yet.
func (s *Simulation) Analyze() (*stats.Analysis, error) {
	analysis, err := s.analyze()
	if analysis == nil && err == nil {
		logger.Warnf("no %s results, comparison skipped", BaselineStrategy)
	}
	return analysis, err
}

// analyze is Analyze without the warning. The KPI data always holds the analysis of the current
// results, or none.
func (s *Simulation) analyze() (*stats.Analysis, error) {
	analysis, err := stats.Analyze(s.results, BaselineStrategy)
	if errors.Cause(err) == ErrMissingBaseline {
		analysis, err = nil, nil
	}
	if err == nil && s.kpiMgr != nil {
		s.kpiMgr.SetAnalysis(analysis)
	}
	return analysis, err
}

// runGrid runs all (strategy, population) cells in order. On error it returns the aggregates of
// the cells completed before the error.
func (s *Simulation) runGrid(ctx context.Context, scs []*StrategyConfig, pops []int) ([]AggregateResult, error) {
	if err := validatePopulationSizes(pops); err != nil {
		return nil, err
	}
	if s.stopped {
		return nil, exitError
	}

	reps := s.cfg.Repetitions
	numCells := len(scs) * len(pops)
	numTrials := numCells * reps
	firstTrial := s.nextTrial
	s.nextTrial += numTrials
	trials := make([]*TrialResult, numTrials)

	runOne := func(idx int) error {
		sc := scs[idx/(len(pops)*reps)]
		n := pops[(idx/reps)%len(pops)]
		tr, err := RunTrial(sc, s.cfg.Sampler, n, s.cfg.Battery, s.seedGen.TrialSource(firstTrial+idx))
		if err != nil {
			return err
		}
		trials[idx] = tr
		return nil
	}

	if s.kpiMgr != nil {
		s.kpiMgr.Start()
	}

	parallel := s.cfg.Workers > 1
	if parallel {
		if err := s.runParallel(ctx, numTrials, runOne); err != nil {
			return nil, err
		}
	}

	results := make([]AggregateResult, 0, numCells)
	for cell := 0; cell < numCells; cell++ {
		cellTrials := trials[cell*reps : (cell+1)*reps]
		if !parallel {
			for i := range cellTrials {
				if err := ctx.Err(); err != nil {
					return results, errors.Wrapf(err, "simulation interrupted")
				}
				if err := runOne(cell*reps + i); err != nil {
					return results, err
				}
			}
		}
		for _, tr := range cellTrials {
			s.sink.OnTrial(tr)
		}
		ar, err := Aggregate(cellTrials, s.cfg.Battery)
		if err != nil {
			return results, err
		}
		logger.Infof("%-3s n=%-6d energy %.4f J, latency %.2f ms, battery %.3f years", ar.Strategy,
			ar.PopulationSize, ar.MeanEnergy, ar.MeanLatency, ar.BatteryLifeYears)
		s.sink.OnAggregate(ar)
		s.addResult(ar)
		results = append(results, ar)
	}
	return results, nil
}

// runParallel runs trials 0..numTrials-1 on at most Workers goroutines. Every trial owns its random
// stream, so the order of execution does not change any result.
func (s *Simulation) runParallel(ctx context.Context, numTrials int, runOne func(idx int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for idx := 0; idx < numTrials; idx++ {
		idx := idx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return runOne(idx)
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrapf(err, "simulation interrupted")
	}
	return nil
}

func (s *Simulation) addResult(ar AggregateResult) {
	for i := range s.results {
		if s.results[i].Key() == ar.Key() {
			s.results[i] = ar
			return
		}
	}
	s.results = append(s.results, ar)
}

// Results returns a copy of all aggregates collected so far.
func (s *Simulation) Results() []AggregateResult {
	return append([]AggregateResult{}, s.results...)
}

// ClearResults drops all collected aggregates. The random streams of later trials still continue
// from the current trial index.
func (s *Simulation) ClearResults() {
	s.results = nil
	if s.kpiMgr != nil {
		s.kpiMgr.SetAnalysis(nil)
	}
}

func (s *Simulation) GetConfig() *Config {
	return s.cfg
}

func (s *Simulation) RunInfo() report.RunInfo {
	return s.runInfo
}

func (s *Simulation) Seed() prng.RandomSeed {
	return s.seedGen.Root()
}

// TrialCount returns the number of trials run so far.
func (s *Simulation) TrialCount() int {
	return s.nextTrial
}

func (s *Simulation) GetKpiManager() *KpiManager {
	return s.kpiMgr
}

// SetSeed restarts the random streams from a new root seed (0 picks a time-based one). Collected
// results are dropped since they belong to the old seed.
func (s *Simulation) SetSeed(seed int64) prng.RandomSeed {
	s.seedGen = prng.NewSeedGenerator(prng.NewRootSeed(seed))
	s.cfg.RootSeed = int64(s.seedGen.Root())
	s.runInfo.RootSeed = s.cfg.RootSeed
	s.nextTrial = 0
	s.ClearResults()
	logger.Infof("simulation %d: random seed %d", s.cfg.Id, s.runInfo.RootSeed)
	return s.seedGen.Root()
}

func (s *Simulation) SetRepetitions(reps int) error {
	if reps < 1 {
		return errors.Wrapf(ErrInvalidRepetitions, "%d", reps)
	}
	s.cfg.Repetitions = reps
	s.runInfo.Repetitions = reps
	return nil
}

func (s *Simulation) SetPopulationSizes(pops []int) error {
	if err := validatePopulationSizes(pops); err != nil {
		return err
	}
	s.cfg.PopulationSizes = append([]int{}, pops...)
	s.runInfo.PopulationSizes = append([]int{}, pops...)
	return nil
}

func (s *Simulation) SetWorkers(workers int) error {
	if workers < 1 {
		return errors.Errorf("invalid worker count: %d", workers)
	}
	s.cfg.Workers = workers
	s.runInfo.Workers = workers
	return nil
}

func (s *Simulation) GetLogLevel() logger.Level {
	return s.cfg.LogLevel
}

func (s *Simulation) SetLogLevel(level logger.Level) {
	s.cfg.LogLevel = level
	logger.SetLevel(level)
}

// Stop saves the KPI file and closes the sink. It is only effective the first time it's called.
func (s *Simulation) Stop() error {
	if s.stopped {
		return nil
	}
	s.stopped = true
	logger.Debugf("stopping simulation %d", s.cfg.Id)
	if s.kpiMgr != nil {
		s.kpiMgr.SaveDefaultFile()
	}
	return s.sink.Close()
}

func (s *Simulation) IsStopped() bool {
	return s.stopped
}

func (s *Simulation) createOutputDir() error {
	err := os.MkdirAll(s.cfg.OutputDir, 0775)
	if errors.Is(err, fs.ErrExist) {
		return nil // ok, already present
	}
	return err
}
