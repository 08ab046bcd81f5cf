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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomSourceReproducible(t *testing.T) {
	r1 := NewRandomSource(42)
	r2 := NewRandomSource(42)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, r1.Uniform(), r2.Uniform())
		assert.Equal(t, r1.Normal(), r2.Normal())
	}
	assert.Equal(t, RandomSeed(42), r1.Seed())
}

func TestRandomSourceUniformRange(t *testing.T) {
	r := NewRandomSource(1)
	for i := 0; i < 10000; i++ {
		u := r.Uniform()
		assert.True(t, u >= 0.0 && u < 1.0)
		v := r.UniformRange(0.8, 1.2)
		assert.True(t, v >= 0.8 && v < 1.2)
	}
}

func TestRandomSourceNormalMoments(t *testing.T) {
	r := NewRandomSource(7)
	const n = 200000
	sum, sumSq := 0.0, 0.0
	for i := 0; i < n; i++ {
		x := r.Normal()
		sum += x
		sumSq += x * x
	}
	mean := sum / n
	variance := sumSq/n - mean*mean
	assert.InDelta(t, 0.0, mean, 0.02)
	assert.InDelta(t, 1.0, variance, 0.02)
}

func TestNewRootSeed(t *testing.T) {
	assert.Equal(t, RandomSeed(1234), NewRootSeed(1234))
	assert.NotEqual(t, RandomSeed(0), NewRootSeed(0))
}

func TestSeedGeneratorTrialSeeds(t *testing.T) {
	sg := NewSeedGenerator(42)
	assert.Equal(t, RandomSeed(42), sg.Root())

	seen := make(map[RandomSeed]struct{})
	for i := 0; i < 1000; i++ {
		s := sg.TrialSeed(i)
		_, dup := seen[s]
		assert.False(t, dup, "duplicate trial seed at index %d", i)
		seen[s] = struct{}{}
		assert.Equal(t, s, NewSeedGenerator(42).TrialSeed(i))
	}

	assert.NotEqual(t, sg.TrialSeed(0), NewSeedGenerator(43).TrialSeed(0))
	assert.Equal(t, sg.TrialSource(5).Uniform(), NewRandomSource(sg.TrialSeed(5)).Uniform())
}
