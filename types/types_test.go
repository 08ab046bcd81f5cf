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

package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestParseStrategy(t *testing.T) {
	for name, exp := range map[string]Strategy{
		"RAP": StrategyRAP, "rap": StrategyRAP, " baseline ": StrategyRAP,
		"EDT": StrategyEDT, "Optimized-A": StrategyEDT,
		"pur": StrategyPUR, "optimized-b": StrategyPUR,
	} {
		s, err := ParseStrategy(name)
		assert.Nil(t, err, name)
		assert.Equal(t, exp, s, name)
	}
	_, err := ParseStrategy("nbiot")
	assert.NotNil(t, err)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "RAP", StrategyRAP.String())
	assert.Equal(t, "PUR", StrategyPUR.String())
	assert.Equal(t, "Strategy(7)", Strategy(7).String())
	assert.False(t, Strategy(-1).IsValid())
	assert.Equal(t, []Strategy{StrategyRAP, StrategyEDT, StrategyPUR}, AllStrategies())
	assert.Equal(t, StrategyRAP, BaselineStrategy)
}

func TestStrategyMarshal(t *testing.T) {
	data, err := json.Marshal(StrategyEDT)
	assert.Nil(t, err)
	assert.Equal(t, `"EDT"`, string(data))

	var s Strategy
	assert.Nil(t, json.Unmarshal([]byte(`"pur"`), &s))
	assert.Equal(t, StrategyPUR, s)
	assert.NotNil(t, json.Unmarshal([]byte(`"abc"`), &s))

	data, err = yaml.Marshal(map[string]Strategy{"s": StrategyRAP})
	assert.Nil(t, err)
	assert.Equal(t, "s: RAP\n", string(data))
	var st struct {
		S Strategy `yaml:"s"`
	}
	assert.Nil(t, yaml.Unmarshal([]byte("s: edt\n"), &st))
	assert.Equal(t, StrategyEDT, st.S)
	assert.NotNil(t, yaml.Unmarshal([]byte("s: lte\n"), &st))

	_, err = json.Marshal(Strategy(5))
	assert.NotNil(t, err)
}

func TestRange(t *testing.T) {
	assert.True(t, Range{1, 2}.IsValid())
	assert.True(t, Range{2, 2}.IsValid())
	assert.False(t, Range{0, 2}.IsValid())
	assert.False(t, Range{3, 2}.IsValid())
	assert.False(t, Range{1, math.Inf(1)}.IsValid())
	assert.False(t, Range{math.NaN(), 2}.IsValid())
	assert.Equal(t, "[1, 2.5]", Range{1, 2.5}.String())
}

func TestStrategyConfigValidate(t *testing.T) {
	for _, sc := range DefaultStrategyConfigs() {
		assert.Nil(t, sc.Validate())
	}

	bad := []StrategyConfig{
		{Strategy: Strategy(9), Energy: Range{1, 2}, Latency: Range{1, 2}},
		{Strategy: StrategyRAP, Energy: Range{2, 1}, Latency: Range{1, 2}},
		{Strategy: StrategyRAP, Energy: Range{1, 2}, Latency: Range{-1, 2}},
		{Strategy: StrategyRAP, Energy: Range{1, 2}, Latency: Range{1, 2}, InterferenceCoef: -0.1},
		{Strategy: StrategyRAP, Energy: Range{1, 2}, Latency: Range{1, 2}, InterferenceCoef: math.NaN()},
	}
	for _, sc := range bad {
		err := sc.Validate()
		assert.NotNil(t, err)
		assert.Equal(t, ErrInvalidStrategyConfig, errors.Cause(err))
	}
}

func TestDefaultStrategyConfigsOrdered(t *testing.T) {
	rap := DefaultStrategyConfig(StrategyRAP)
	for _, s := range []Strategy{StrategyEDT, StrategyPUR} {
		sc := DefaultStrategyConfig(s)
		assert.Less(t, sc.Energy.Max, rap.Energy.Max)
		assert.Less(t, sc.Latency.Max, rap.Latency.Max)
		assert.Less(t, sc.InterferenceCoef, rap.InterferenceCoef)
	}
	assert.Panics(t, func() { DefaultStrategyConfig(Strategy(3)) })
}

func TestAggregateResultKey(t *testing.T) {
	assert.Equal(t, "PUR/1000", AggregateResult{Strategy: StrategyPUR, PopulationSize: 1000}.Key())
}
