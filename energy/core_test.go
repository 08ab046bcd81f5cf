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

package energy

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/prng"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

func TestLifeYears(t *testing.T) {
	bm := DefaultBatteryModel()
	// 18000 J / (2.5 J * 24 * 365)
	assert.InDelta(t, 0.821917808, bm.LifeYears(2.5), 1e-9)
	assert.Equal(t, 48.0, DailyEnergy(2.0))
	assert.True(t, math.IsInf(bm.LifeYears(0), 1))
}

func TestLifeYearsStrictlyDecreasing(t *testing.T) {
	bm := DefaultBatteryModel()
	prev := bm.LifeYears(0.01)
	for e := 0.02; e < 20.0; e += 0.01 {
		cur := bm.LifeYears(e)
		assert.Less(t, cur, prev, "energy %g", e)
		prev = cur
	}
}

func TestLifeYearsWithJitter(t *testing.T) {
	bm := BatteryModel{CapacityJoules: 36000}
	rnd := prng.NewRandomSource(42)
	nominal := bm.LifeYears(3.0)
	for i := 0; i < 1000; i++ {
		v := bm.LifeYearsWithJitter(3.0, rnd)
		assert.True(t, v >= 0.9*nominal && v < 1.1*nominal)
	}
}

func TestBatteryModelValidate(t *testing.T) {
	assert.Nil(t, DefaultBatteryModel().Validate())
	err := BatteryModel{CapacityJoules: 0}.Validate()
	assert.Equal(t, ErrInvalidBatteryCapacity, errors.Cause(err))
	err = BatteryModel{CapacityJoules: math.NaN()}.Validate()
	assert.Equal(t, ErrInvalidBatteryCapacity, errors.Cause(err))
}
