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

package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/progctx"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/report"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/simulation"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

const (
	Prompt = "> "
)

type CommandContext struct {
	context.Context
	*Command
	rt     *CmdRunner
	err    error
	output io.Writer
}

func (cc *CommandContext) outputStr(msg string) {
	_, _ = fmt.Fprint(cc.output, msg)
}

func (cc *CommandContext) outputf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cc.output, format, args...)
}

func (cc *CommandContext) errorf(format string, args ...interface{}) {
	cc.error(errors.Errorf(format, args...))
}

func (cc *CommandContext) error(err error) {
	if err != nil {
		if cc.err != nil { // if previous error, print it now and keep the last.
			cc.outputf("Error: %s\n", cc.err)
		}
		cc.err = err
	}
}

// Err returns the last error that occurred during command execution.
func (cc *CommandContext) Err() error {
	return cc.err
}

func (cc *CommandContext) outputItemsAsYaml(items interface{}) {
	var itemsYaml yaml.Node

	err := itemsYaml.Encode(items)
	logger.PanicIfError(err)

	for _, content := range itemsYaml.Content {
		content.Style = yaml.FlowStyle
	}

	data, err := yaml.Marshal(&itemsYaml)
	logger.PanicIfError(err)

	_, err = cc.output.Write(data)
	logger.PanicIfError(err)
}

// CmdRunner executes console commands on a Simulation.
type CmdRunner struct {
	sim  *simulation.Simulation
	ctx  *progctx.ProgCtx
	help Help
}

func NewCmdRunner(ctx *progctx.ProgCtx, sim *simulation.Simulation) *CmdRunner {
	return &CmdRunner{
		ctx:  ctx,
		sim:  sim,
		help: newHelp(),
	}
}

// RunCommand parses and executes one command line, writing its output to output. It returns the
// error of the program context, which is set once the console should exit.
func (rt *CmdRunner) RunCommand(cmdline string, output io.Writer) error {
	if rt.ctx.Err() == nil {
		cmd := Command{}
		if err := parseBytes([]byte(cmdline), &cmd); err != nil {
			if _, err := fmt.Fprintf(output, "Error: %v\n", err); err != nil {
				return err
			}
		} else {
			rt.execute(&cmd, output)
		}
	}
	return rt.ctx.Err()
}

func (rt *CmdRunner) HandleCommand(cmdline string, output io.Writer) error {
	return rt.RunCommand(cmdline, output)
}

func (rt *CmdRunner) GetPrompt() string {
	return Prompt
}

func (rt *CmdRunner) execute(cmd *Command, output io.Writer) {
	cc := &CommandContext{
		Context: rt.ctx,
		Command: cmd,
		rt:      rt,
		output:  output,
	}

	defer func() {
		if cc.Err() != nil {
			cc.outputf("Error: %v\n", cc.Err())
		} else {
			cc.outputf("Done\n")
		}
	}()

	defer func() {
		rerr := recover()

		if rerr != nil {
			if err, ok := rerr.(error); ok {
				cc.err = errors.Wrapf(err, "panic: %v", err)
			} else {
				cc.err = errors.Errorf("panic: %v", rerr)
			}
		}
	}()

	if cmd.Run != nil {
		rt.executeRun(cc, cmd.Run)
	} else if cmd.Results != nil {
		rt.executeResults(cc)
	} else if cmd.Compare != nil {
		rt.executeCompare(cc)
	} else if cmd.Strategies != nil {
		rt.executeStrategies(cc)
	} else if cmd.Seed != nil {
		rt.executeSeed(cc, cmd.Seed)
	} else if cmd.Reps != nil {
		rt.executeReps(cc, cmd.Reps)
	} else if cmd.Populations != nil {
		rt.executePopulations(cc, cmd.Populations)
	} else if cmd.Workers != nil {
		rt.executeWorkers(cc, cmd.Workers)
	} else if cmd.Save != nil {
		rt.executeSave(cc, cmd.Save)
	} else if cmd.LogLevel != nil {
		rt.executeLogLevel(cc, cmd.LogLevel)
	} else if cmd.Help != nil {
		rt.executeHelp(cc, cmd.Help)
	} else if cmd.Exit != nil {
		rt.executeExit(cc, cmd.Exit)
	} else {
		logger.Panicf("unimplemented command: %#v", cmd)
	}
}

func (rt *CmdRunner) executeRun(cc *CommandContext, cmd *RunCmd) {
	var results []AggregateResult
	var err error

	if cmd.Strategy != nil {
		strategy, perr := cmd.Strategy.Strategy()
		if perr != nil {
			cc.error(perr)
			return
		}
		results, err = rt.sim.RunStrategy(rt.ctx, strategy, cmd.Populations)
		rt.outputAggregates(cc, results)
		cc.error(err)
		return
	}

	pops := cmd.Populations
	if len(pops) == 0 {
		pops = rt.sim.GetConfig().PopulationSizes
	}
	results, analysis, err := rt.sim.RunPopulations(rt.ctx, pops)
	rt.outputAggregates(cc, results)
	if err != nil {
		cc.error(err)
		return
	}
	if analysis != nil {
		cc.error(report.WriteAnalysis(cc.output, analysis))
	}
}

func (rt *CmdRunner) outputAggregates(cc *CommandContext, results []AggregateResult) {
	for _, ar := range results {
		cc.error(report.WriteAggregate(cc.output, ar))
	}
}

// resultItem is the console listing of one AggregateResult.
type resultItem struct {
	Strategy    string  `yaml:"mode"`
	Devices     int     `yaml:"devices"`
	Reps        int     `yaml:"reps"`
	Energy      float64 `yaml:"energy_j"`
	Latency     float64 `yaml:"latency_ms"`
	BatteryLife float64 `yaml:"battery_years"`
}

func (rt *CmdRunner) executeResults(cc *CommandContext) {
	items := []resultItem{}
	for _, ar := range rt.sim.Results() {
		items = append(items, resultItem{
			Strategy:    ar.Strategy.String(),
			Devices:     ar.PopulationSize,
			Reps:        ar.Repetitions,
			Energy:      ar.MeanEnergy,
			Latency:     ar.MeanLatency,
			BatteryLife: ar.BatteryLifeYears,
		})
	}
	cc.outputItemsAsYaml(items)
}

func (rt *CmdRunner) executeCompare(cc *CommandContext) {
	analysis, err := rt.sim.Analyze()
	if err != nil {
		cc.error(err)
		return
	}
	if analysis == nil {
		cc.errorf("no %s results to compare against, use 'run' first", BaselineStrategy)
		return
	}
	cc.error(report.WriteAnalysis(cc.output, analysis))
}

type strategyItem struct {
	Strategy     string     `yaml:"mode"`
	Energy       [2]float64 `yaml:"energy"`
	Latency      [2]float64 `yaml:"latency"`
	Interference float64    `yaml:"interference"`
}

func (rt *CmdRunner) executeStrategies(cc *CommandContext) {
	items := []strategyItem{}
	for _, sc := range rt.sim.GetConfig().Strategies {
		items = append(items, strategyItem{
			Strategy:     sc.Strategy.String(),
			Energy:       [2]float64{sc.Energy.Min, sc.Energy.Max},
			Latency:      [2]float64{sc.Latency.Min, sc.Latency.Max},
			Interference: sc.InterferenceCoef,
		})
	}
	cc.outputItemsAsYaml(items)
}

func (rt *CmdRunner) executeSeed(cc *CommandContext, cmd *SeedCmd) {
	if cmd.Seed == nil {
		cc.outputf("%d\n", rt.sim.Seed())
		return
	}
	cc.outputf("%d\n", rt.sim.SetSeed(*cmd.Seed))
}

func (rt *CmdRunner) executeReps(cc *CommandContext, cmd *RepsCmd) {
	if cmd.Reps == nil {
		cc.outputf("%d\n", rt.sim.GetConfig().Repetitions)
		return
	}
	cc.error(rt.sim.SetRepetitions(*cmd.Reps))
}

func (rt *CmdRunner) executePopulations(cc *CommandContext, cmd *PopulationsCmd) {
	if len(cmd.Sizes) == 0 {
		cc.outputItemsAsYaml(rt.sim.GetConfig().PopulationSizes)
		return
	}
	cc.error(rt.sim.SetPopulationSizes(cmd.Sizes))
}

func (rt *CmdRunner) executeWorkers(cc *CommandContext, cmd *WorkersCmd) {
	if cmd.Workers == nil {
		cc.outputf("%d\n", rt.sim.GetConfig().Workers)
		return
	}
	cc.error(rt.sim.SetWorkers(*cmd.Workers))
}

func (rt *CmdRunner) executeSave(cc *CommandContext, cmd *SaveCmd) {
	km := rt.sim.GetKpiManager()
	if km == nil {
		cc.errorf("KPI file output is disabled")
		return
	}
	if len(cmd.File) == 0 {
		km.SaveDefaultFile()
	} else {
		km.SaveFile(cmd.FileName())
	}
}

func (rt *CmdRunner) executeLogLevel(cc *CommandContext, cmd *LogLevelCmd) {
	if cmd.Level == "" {
		cc.outputf("%v\n", logger.GetLevelString(rt.sim.GetLogLevel()))
		return
	}
	level, err := logger.ParseLevelString(cmd.Level)
	if err != nil {
		cc.error(err)
		return
	}
	rt.sim.SetLogLevel(level)
}

func (rt *CmdRunner) executeHelp(cc *CommandContext, cmd *HelpCmd) {
	if len(cmd.HelpTopic) > 0 {
		cc.outputStr(rt.help.outputCommandHelp(cmd.HelpTopic))
	} else {
		cc.outputStr(rt.help.outputGeneralHelp())
	}
}

func (rt *CmdRunner) executeExit(cc *CommandContext, cmd *ExitCmd) {
	cc.error(rt.sim.Stop())
	rt.ctx.Cancel("exit")
}
