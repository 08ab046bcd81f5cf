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

package prng

import (
	"math/rand"
	"time"
)

type RandomSeed int64

// RandomSource is a seedable stream of uniform and normal deviates. A RandomSource is not safe for
// concurrent use; each trial owns its own source.
type RandomSource struct {
	seed RandomSeed
	rnd  *rand.Rand
}

// NewRandomSource creates a source with an explicit seed. Equal seeds give equal streams.
func NewRandomSource(seed RandomSeed) *RandomSource {
	return &RandomSource{
		seed: seed,
		rnd:  rand.New(rand.NewSource(int64(seed))),
	}
}

// Seed returns the seed the source was created with.
func (rs *RandomSource) Seed() RandomSeed {
	return rs.seed
}

// Uniform returns a uniform deviate in [0, 1).
func (rs *RandomSource) Uniform() float64 {
	return rs.rnd.Float64()
}

// UniformRange returns a uniform deviate in [lo, hi).
func (rs *RandomSource) UniformRange(lo, hi float64) float64 {
	return lo + rs.rnd.Float64()*(hi-lo)
}

// Normal returns a standard normal deviate (mu=0, sigma=1).
func (rs *RandomSource) Normal() float64 {
	return rs.rnd.NormFloat64()
}

// NewRootSeed returns the root seed of a run: rootSeed itself if non-zero, otherwise a 'random'
// time-based seed. Call it once per run.
func NewRootSeed(rootSeed int64) RandomSeed {
	if rootSeed == 0 {
		rootSeed = time.Now().UnixNano()
	}
	return RandomSeed(rootSeed)
}

// SeedGenerator derives independent, reproducible per-trial seeds from a root seed.
type SeedGenerator struct {
	root RandomSeed
}

func NewSeedGenerator(root RandomSeed) SeedGenerator {
	return SeedGenerator{root: root}
}

func (sg SeedGenerator) Root() RandomSeed {
	return sg.root
}

// TrialSeed returns the seed for the trial with the given global index. The mapping only depends on
// (root, trialIndex), so trials can be run in any order or in parallel.
func (sg SeedGenerator) TrialSeed(trialIndex int) RandomSeed {
	return RandomSeed(splitMix64(uint64(sg.root) + uint64(trialIndex+1)*0x9e3779b97f4a7c15))
}

// TrialSource is shorthand for NewRandomSource(sg.TrialSeed(trialIndex)).
func (sg SeedGenerator) TrialSource(trialIndex int) *RandomSource {
	return NewRandomSource(sg.TrialSeed(trialIndex))
}

// splitMix64 is the SplitMix64 output function; it scatters nearby inputs over the whole range.
func splitMix64(z uint64) int64 {
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31))
}
