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

	"github.com/pkg/errors"

	"github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/prng"
	. "github.com/zinebadammiche/PURE-NBIOT-LENA-NETWORK-SIMULATION/types"
)

// DailyEnergy returns the energy spent per day (J). The mean energy is taken as an hourly-equivalent
// cost, i.e. one transmission per hour.
func DailyEnergy(meanEnergy float64) float64 {
	return meanEnergy * HoursPerDay
}

func (bm BatteryModel) Validate() error {
	if math.IsNaN(bm.CapacityJoules) || math.IsInf(bm.CapacityJoules, 0) || bm.CapacityJoules <= 0 {
		return errors.Wrapf(ErrInvalidBatteryCapacity, "capacity %g J", bm.CapacityJoules)
	}
	return nil
}

// LifeYears returns the projected battery life in years, or +Inf if no energy is spent.
func (bm BatteryModel) LifeYears(meanEnergy float64) float64 {
	yearlyEnergy := DailyEnergy(meanEnergy) * DaysPerYear
	if yearlyEnergy <= 0 {
		return math.Inf(1)
	}
	return bm.CapacityJoules / yearlyEnergy
}

// LifeYearsWithJitter is LifeYears scaled by a uniform capacity variation in [0.9, 1.1].
func (bm BatteryModel) LifeYearsWithJitter(meanEnergy float64, rnd *prng.RandomSource) float64 {
	return bm.LifeYears(meanEnergy) * rnd.UniformRange(capacityJitterMin, capacityJitterMax)
}
