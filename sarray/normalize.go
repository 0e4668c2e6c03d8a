// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"math/rand"
	"time"
)

// Sentinel is the byte appended to every normalized text. It is strictly
// less than every DNA byte, which is required by the SA-IS collaborator
// and by the Query Engine's comparison rules.
const Sentinel = '$'

// dnaAlphabet is the fixed 4-letter alphabet every non-sentinel byte of a
// normalized text belongs to.
var dnaAlphabet = [4]byte{'A', 'T', 'G', 'C'}

// Normalizer canonicalizes raw reference text into the fixed DNA alphabet
// terminated by Sentinel. The random replacement of out-of-alphabet bytes
// uses a process-local RNG; construct one Normalizer per build (New) for
// the original non-reproducible behavior, or NewSeeded for deterministic
// tests. The correctness contract of the rest of the package is defined
// against the normalized text actually stored, not the raw input, so the
// choice of seed never affects downstream invariants.
type Normalizer struct {
	rng *rand.Rand
}

// New returns a Normalizer seeded from the current time.
func New() *Normalizer {
	return &Normalizer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewSeeded returns a Normalizer with a fixed seed, for reproducible
// tests.
func NewSeeded(seed int64) *Normalizer {
	return &Normalizer{rng: rand.New(rand.NewSource(seed))}
}

// Normalize upper-cases raw, replaces every byte outside {A,T,G,C} with a
// uniformly random choice from that alphabet, and appends Sentinel. The
// returned slice has length len(raw)+1.
func (n *Normalizer) Normalize(raw []byte) []byte {
	out := make([]byte, len(raw)+1)
	for i, b := range raw {
		if b >= 'a' && b <= 'z' {
			b -= 'a' - 'A'
		}
		switch b {
		case 'A', 'T', 'G', 'C':
			out[i] = b
		default:
			out[i] = dnaAlphabet[n.rng.Intn(len(dnaAlphabet))]
		}
	}
	out[len(raw)] = Sentinel
	return out
}
