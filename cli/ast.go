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
	"strconv"

	"github.com/alecthomas/participle"

	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// noinspection GoStructTag
type Command struct {
	Compare     *CompareCmd     `  @@` //nolint
	Exit        *ExitCmd        `| @@` //nolint
	Help        *HelpCmd        `| @@` //nolint
	LogLevel    *LogLevelCmd    `| @@` //nolint
	Populations *PopulationsCmd `| @@` //nolint
	Reps        *RepsCmd        `| @@` //nolint
	Results     *ResultsCmd     `| @@` //nolint
	Run         *RunCmd         `| @@` //nolint
	Save        *SaveCmd        `| @@` //nolint
	Seed        *SeedCmd        `| @@` //nolint
	Strategies  *StrategiesCmd  `| @@` //nolint
	Workers     *WorkersCmd     `| @@` //nolint
}

// noinspection GoStructTag
type StrategyFlag struct {
	Val string `@("rap"|"edt"|"pur"|"RAP"|"EDT"|"PUR"|"baseline")` //nolint
}

func (sf *StrategyFlag) Strategy() (Strategy, error) {
	return ParseStrategy(sf.Val)
}

// noinspection GoStructTag
type RunCmd struct {
	Cmd         struct{}      `"run"`      //nolint
	Strategy    *StrategyFlag `[ @@ ]`     //nolint
	Populations []int         `( @Int )*` //nolint
}

// noinspection GoStructTag
type ResultsCmd struct {
	Cmd struct{} `"results"` //nolint
}

// noinspection GoStructTag
type CompareCmd struct {
	Cmd struct{} `"compare"` //nolint
}

// noinspection GoStructTag
type StrategiesCmd struct {
	Cmd struct{} `"strategies"` //nolint
}

// noinspection GoStructTag
type SeedCmd struct {
	Cmd  struct{} `"seed"`     //nolint
	Seed *int64   `[ @Int ]` //nolint
}

// noinspection GoStructTag
type RepsCmd struct {
	Cmd  struct{} `"reps"`     //nolint
	Reps *int     `[ @Int ]` //nolint
}

// noinspection GoStructTag
type PopulationsCmd struct {
	Cmd   struct{} `"populations"` //nolint
	Sizes []int    `( @Int )*`    //nolint
}

// noinspection GoStructTag
type WorkersCmd struct {
	Cmd     struct{} `"workers"` //nolint
	Workers *int     `[ @Int ]`  //nolint
}

// noinspection GoStructTag
type SaveCmd struct {
	Cmd  struct{} `"save"`       //nolint
	File string   `[ @String ]` //nolint
}

// FileName returns the file argument without quotes.
func (sc *SaveCmd) FileName() string {
	if fn, err := strconv.Unquote(sc.File); err == nil {
		return fn
	}
	return sc.File
}

// noinspection GoStructTag
type LogLevelCmd struct {
	Cmd   struct{} `"log"`                                                                                                //nolint
	Level string   `[@( "trace"|"debug"|"info"|"note"|"warn"|"error"|"off"|"none"|"default"|"T"|"D"|"I"|"N"|"W"|"E" )]` //nolint
}

// noinspection GoStructTag
type HelpCmd struct {
	Cmd       struct{} `"help"`       //nolint
	HelpTopic string   `[ (@Ident) ]` //nolint
}

// noinspection GoStructTag
type ExitCmd struct {
	Cmd struct{} `"exit"` //nolint
}

var (
	commandParser = participle.MustBuild(&Command{})
)

func parseBytes(b []byte, cmd *Command) error {
	return commandParser.ParseBytes(b, cmd)
}
