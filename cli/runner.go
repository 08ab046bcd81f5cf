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

// Package cli implements the nbiotsim console. It parses and executes console commands.
package cli

import (
	"github.com/pkg/errors"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/logger"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/progctx"
	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/simulation"
)

// Run runs the console on sim until it exits, then cancels ctx.
func Run(ctx *progctx.ProgCtx, sim *simulation.Simulation, options *CliOptions) error {
	ctx.WaitAdd("cli", 1)
	defer ctx.WaitDone("cli")

	rt := NewCmdRunner(ctx, sim)
	logger.SetStdoutCallback(Cli)
	defer logger.SetStdoutCallback(nil)

	err := Cli.Run(rt, options)
	if errors.Is(err, ctx.Err()) {
		err = nil // exit command
	}
	ctx.Cancel(errors.Wrapf(err, "console exit"))
	return err
}
