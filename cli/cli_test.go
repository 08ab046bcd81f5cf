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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/progctx"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/simulation"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

func TestParseBytes(t *testing.T) {
	var cmd Command
	assert.NotNil(t, parseBytes([]byte("wrongcmd"), &cmd))

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("run"), &cmd))
	assert.True(t, cmd.Run != nil && cmd.Run.Strategy == nil && len(cmd.Run.Populations) == 0)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("run pur 100 500"), &cmd))
	assert.Equal(t, "pur", cmd.Run.Strategy.Val)
	assert.Equal(t, []int{100, 500}, cmd.Run.Populations)
	s, err := cmd.Run.Strategy.Strategy()
	assert.Nil(t, err)
	assert.Equal(t, StrategyPUR, s)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("run RAP"), &cmd))
	s, _ = cmd.Run.Strategy.Strategy()
	assert.Equal(t, StrategyRAP, s)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("run 1000"), &cmd))
	assert.True(t, cmd.Run.Strategy == nil)
	assert.Equal(t, []int{1000}, cmd.Run.Populations)

	assert.NotNil(t, parseBytes([]byte("run xyz"), &Command{}))

	cmd = Command{}
	assert.True(t, parseBytes([]byte("results"), &cmd) == nil && cmd.Results != nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("compare"), &cmd) == nil && cmd.Compare != nil)
	cmd = Command{}
	assert.True(t, parseBytes([]byte("strategies"), &cmd) == nil && cmd.Strategies != nil)

	cmd = Command{}
	assert.True(t, parseBytes([]byte("seed"), &cmd) == nil && cmd.Seed != nil && cmd.Seed.Seed == nil)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("seed 42"), &cmd))
	assert.Equal(t, int64(42), *cmd.Seed.Seed)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("reps 5"), &cmd))
	assert.Equal(t, 5, *cmd.Reps.Reps)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("populations 10 20 30"), &cmd))
	assert.Equal(t, []int{10, 20, 30}, cmd.Populations.Sizes)

	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("workers 4"), &cmd))
	assert.Equal(t, 4, *cmd.Workers.Workers)

	cmd = Command{}
	assert.True(t, parseBytes([]byte("save"), &cmd) == nil && cmd.Save != nil && cmd.Save.File == "")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("save \"out/kpi.json\""), &cmd))
	assert.Equal(t, "out/kpi.json", cmd.Save.FileName())

	cmd = Command{}
	assert.True(t, parseBytes([]byte("log"), &cmd) == nil && cmd.LogLevel != nil && cmd.LogLevel.Level == "")
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("log debug"), &cmd))
	assert.Equal(t, "debug", cmd.LogLevel.Level)

	cmd = Command{}
	assert.True(t, parseBytes([]byte("help"), &cmd) == nil && cmd.Help != nil)
	cmd = Command{}
	assert.Nil(t, parseBytes([]byte("help run"), &cmd))
	assert.Equal(t, "run", cmd.Help.HelpTopic)

	cmd = Command{}
	assert.True(t, parseBytes([]byte("exit"), &cmd) == nil && cmd.Exit != nil)
}

func newTestRunner(t *testing.T) (*CmdRunner, *simulation.Simulation) {
	cfg := simulation.DefaultConfig()
	cfg.RootSeed = 42
	cfg.PopulationSizes = []int{100, 200}
	cfg.Repetitions = 2
	cfg.OutputDir = t.TempDir()
	sim, err := simulation.NewSimulation(cfg, nil)
	assert.Nil(t, err)
	return NewCmdRunner(progctx.New(context.Background()), sim), sim
}

func runCommand(t *testing.T, rt *CmdRunner, cmdline string) string {
	var out bytes.Buffer
	assert.Nil(t, rt.RunCommand(cmdline, &out))
	return out.String()
}

func TestCmdRunnerParseError(t *testing.T) {
	rt, _ := newTestRunner(t)
	assert.True(t, strings.HasPrefix(runCommand(t, rt, "foo"), "Error: "))
}

func TestCmdRunnerSettings(t *testing.T) {
	rt, sim := newTestRunner(t)

	assert.Equal(t, "42\nDone\n", runCommand(t, rt, "seed"))
	assert.Equal(t, "7\nDone\n", runCommand(t, rt, "seed 7"))
	assert.Equal(t, int64(7), int64(sim.Seed()))

	assert.Equal(t, "2\nDone\n", runCommand(t, rt, "reps"))
	assert.Equal(t, "Done\n", runCommand(t, rt, "reps 5"))
	assert.Equal(t, "5\nDone\n", runCommand(t, rt, "reps"))
	out := runCommand(t, rt, "reps 0")
	assert.True(t, strings.HasPrefix(out, "Error: "))
	assert.Contains(t, out, ErrInvalidRepetitions.Error())

	assert.Equal(t, "Done\n", runCommand(t, rt, "populations 300 1000"))
	assert.Equal(t, []int{300, 1000}, sim.GetConfig().PopulationSizes)
	out = runCommand(t, rt, "populations")
	assert.Contains(t, out, "300")
	assert.Contains(t, out, "1000")
	out = runCommand(t, rt, "populations 500 100")
	assert.Contains(t, out, ErrInvalidPopulationSize.Error())
	assert.Equal(t, []int{300, 1000}, sim.GetConfig().PopulationSizes)

	assert.Equal(t, "Done\n", runCommand(t, rt, "workers 3"))
	assert.Equal(t, "3\nDone\n", runCommand(t, rt, "workers"))
	assert.True(t, strings.HasPrefix(runCommand(t, rt, "workers 0"), "Error: "))

	out = runCommand(t, rt, "strategies")
	assert.Contains(t, out, "mode: RAP")
	assert.Contains(t, out, "mode: EDT")
	assert.Contains(t, out, "mode: PUR")
}

func TestCmdRunnerLogLevel(t *testing.T) {
	rt, _ := newTestRunner(t)
	defer logger.SetLevel(logger.GetLevel())

	assert.Equal(t, "warn\nDone\n", runCommand(t, rt, "log"))
	assert.Equal(t, "Done\n", runCommand(t, rt, "log error"))
	assert.Equal(t, "error\nDone\n", runCommand(t, rt, "log"))
	assert.Equal(t, logger.ErrorLevel, logger.GetLevel())
}

func TestCmdRunnerRunAndCompare(t *testing.T) {
	rt, sim := newTestRunner(t)

	out := runCommand(t, rt, "compare")
	assert.True(t, strings.HasPrefix(out, "Error: "))

	out = runCommand(t, rt, "run pur 100")
	assert.Contains(t, out, "Mode: PUR | Devices: 100 | Repetitions: 2")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
	assert.Len(t, sim.Results(), 1)

	out = runCommand(t, rt, "run")
	assert.Contains(t, out, "Mode: RAP | Devices: 200 | Repetitions: 2")
	assert.Contains(t, out, "STATISTICAL ANALYSIS")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
	assert.Len(t, sim.Results(), 6)

	out = runCommand(t, rt, "compare")
	assert.Contains(t, out, "PUR vs RAP improvement:")
	assert.True(t, strings.HasSuffix(out, "Done\n"))

	out = runCommand(t, rt, "results")
	assert.Contains(t, out, "mode: RAP")
	assert.Contains(t, out, "devices: 200")
	assert.True(t, strings.HasSuffix(out, "Done\n"))
}

func TestCmdRunnerSave(t *testing.T) {
	rt, sim := newTestRunner(t)
	runCommand(t, rt, "run edt 100")

	fn := filepath.Join(t.TempDir(), "saved_kpi.json")
	assert.Equal(t, "Done\n", runCommand(t, rt, fmt.Sprintf("save %q", fn)))
	assert.FileExists(t, fn)

	assert.Equal(t, "Done\n", runCommand(t, rt, "save"))
	assert.FileExists(t, filepath.Join(sim.GetConfig().OutputDir, "0_kpi.json"))
}

func TestCmdRunnerHelp(t *testing.T) {
	rt, _ := newTestRunner(t)

	out := runCommand(t, rt, "help")
	for _, cmd := range []string{"compare", "exit", "populations", "run", "save", "seed", "workers"} {
		assert.Contains(t, out, cmd)
	}
	assert.Contains(t, out, "help <command>")

	out = runCommand(t, rt, "help run")
	assert.True(t, strings.HasPrefix(out, "run\n"))
	assert.Contains(t, out, "Definition:")
	assert.Contains(t, out, "run [rap|edt|pur] [<n> ...]")

	assert.Contains(t, runCommand(t, rt, "help foo"), "Non-existent command")
}

func TestCmdRunnerExit(t *testing.T) {
	rt, sim := newTestRunner(t)

	var out bytes.Buffer
	assert.NotNil(t, rt.RunCommand("exit", &out))
	assert.Equal(t, "Done\n", out.String())
	assert.True(t, sim.IsStopped())

	// commands are ignored once the console exits
	out.Reset()
	assert.NotNil(t, rt.RunCommand("seed", &out))
	assert.Equal(t, "", out.String())
}

type mockCliHandler struct {
	expectedCmd string
	handleError error
	handleCount int
	t           *testing.T
}

func (hnd *mockCliHandler) HandleCommand(cmd string, output io.Writer) error {
	assert.Equal(hnd.t, hnd.expectedCmd, cmd)
	hnd.handleCount += 1
	return hnd.handleError
}

func (hnd *mockCliHandler) GetPrompt() string {
	return Prompt
}

func TestCliStartStop(t *testing.T) {
	Cli = newCliInstance()
	handler := mockCliHandler{
		expectedCmd: "results",
		handleError: nil,
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- Cli.Run(&handler, opt)
	}()
	<-Cli.Started
	fmt.Fprint(w, "results\n")
	time.Sleep(time.Millisecond * 500)
	_ = w.Close()
	Cli.Stop()

	assert.Nil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)
}

func TestCliHandlerError(t *testing.T) {
	Cli = newCliInstance()
	handler := mockCliHandler{
		expectedCmd: "xyz",
		handleError: fmt.Errorf("undefined command"),
		t:           t,
	}

	opt := DefaultCliOptions()
	r, w, _ := os.Pipe()
	opt.Stdin = r
	err := make(chan error, 1)
	go func() {
		err <- Cli.Run(&handler, opt)
	}()
	<-Cli.Started
	fmt.Fprint(w, "xyz\n") // a handler error makes the console exit.

	assert.NotNil(t, <-err)
	assert.Equal(t, 1, handler.handleCount)

	Cli.Stop() // calling Stop() after the console has already exited.
}
