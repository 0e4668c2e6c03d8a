// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"math/rand"
	"sort"
	"testing"
)

// indexOf builds an Index directly from literal text (bypassing the
// Normalizer), for scenarios whose reference is not itself DNA — see
// spec.md §8's note on the banana fixture.
func indexOf(t *testing.T, text string, k int) *Index {
	t.Helper()
	raw := []byte(text + "$")
	sa, err := BuildSuffixArray(raw)
	if err != nil {
		t.Fatalf("BuildSuffixArray(%q): %v", text, err)
	}
	var table *PrefixTable
	if k > 0 {
		table = BuildPrefixTable(raw, sa, k)
	}
	return &Index{Text: raw, SA: sa, Table: table}
}

func positions(got []int32) []int {
	out := make([]int, len(got))
	for i, v := range got {
		out[i] = int(v)
	}
	sort.Ints(out)
	return out
}

func wantPositions(ps ...int) []int {
	sort.Ints(ps)
	return ps
}

func checkPositions(t *testing.T, label string, got []int32, want []int) {
	t.Helper()
	gp := positions(got)
	if len(gp) != len(want) {
		t.Fatalf("%s: got %v, want %v", label, gp, want)
	}
	for i := range gp {
		if gp[i] != want[i] {
			t.Fatalf("%s: got %v, want %v", label, gp, want)
		}
	}
}

func TestBananaScenario(t *testing.T) {
	idx := indexOf(t, "banana", 0)
	for _, mode := range []Mode{ModeNaive, ModeSimpleAccel} {
		checkPositions(t, "ana", idx.Query([]byte("ana"), mode), wantPositions(1, 3))
		checkPositions(t, "na", idx.Query([]byte("na"), mode), wantPositions(2, 4))
		checkPositions(t, "x", idx.Query([]byte("x"), mode), nil)
	}
}

func TestAAAAScenario(t *testing.T) {
	idx := indexOf(t, "AAAA", 2)
	if len(idx.Table.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(idx.Table.Entries))
	}
	for _, mode := range []Mode{ModeNaive, ModeSimpleAccel} {
		checkPositions(t, "AA", idx.Query([]byte("AA"), mode), wantPositions(0, 1, 2))
	}
}

func TestACGTACGTScenario(t *testing.T) {
	idx := indexOf(t, "ACGTACGT", 3)
	for _, mode := range []Mode{ModeNaive, ModeSimpleAccel} {
		checkPositions(t, "ACGT", idx.Query([]byte("ACGT"), mode), wantPositions(0, 4))
		checkPositions(t, "CGTA", idx.Query([]byte("CGTA"), mode), wantPositions(1))
		checkPositions(t, "TACG", idx.Query([]byte("TACG"), mode), wantPositions(3))
	}
}

func TestEmptyPatternReturnsEverything(t *testing.T) {
	idx := indexOf(t, "ACGTACGT", 3)
	for _, mode := range []Mode{ModeNaive, ModeSimpleAccel} {
		got := idx.Query(nil, mode)
		if len(got) != len(idx.Text) {
			t.Fatalf("mode %d: len(Query(\"\")) = %d, want %d", mode, len(got), len(idx.Text))
		}
	}
}

func TestNoMatchReturnsEmpty(t *testing.T) {
	idx := indexOf(t, "ACGTACGT", 3)
	for _, mode := range []Mode{ModeNaive, ModeSimpleAccel} {
		got := idx.Query([]byte("acgt"), mode) // lower-case: not DNA, never matches
		if len(got) != 0 {
			t.Fatalf("mode %d: Query(lower-case) = %v, want empty", mode, got)
		}
	}
}

func TestSubstringMatchingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	letters := []byte("ACGT")
	raw := make([]byte, 2000)
	for i := range raw {
		raw[i] = letters[rng.Intn(len(letters))]
	}
	text, sa := buildRef(t, string(raw), 21)
	idx := &Index{Text: text, SA: sa}

	for trial := 0; trial < 50; trial++ {
		plen := 1 + rng.Intn(12)
		start := rng.Intn(len(raw) - plen + 1)
		pattern := raw[start : start+plen]

		var want []int
		for p := 0; p < len(text)-plen; p++ {
			if string(text[p:p+plen]) == string(pattern) {
				want = append(want, p)
			}
		}
		got := idx.Query(pattern, ModeNaive)
		checkPositions(t, "substring", got, wantPositions(want...))
	}
}

func TestModeEquivalenceAtScale(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	letters := []byte("ACGT")
	raw := make([]byte, 10000)
	for i := range raw {
		raw[i] = letters[rng.Intn(len(letters))]
	}
	text, sa := buildRef(t, string(raw), 5)
	idx := &Index{Text: text, SA: sa}

	for trial := 0; trial < 100; trial++ {
		plen := 5 + rng.Intn(16)
		start := rng.Intn(len(raw) - plen + 1)
		pattern := raw[start : start+plen]

		naive := positions(idx.Query(pattern, ModeNaive))
		accel := positions(idx.Query(pattern, ModeSimpleAccel))
		if len(naive) != len(accel) {
			t.Fatalf("trial %d: naive %v != accel %v", trial, naive, accel)
		}
		for i := range naive {
			if naive[i] != accel[i] {
				t.Fatalf("trial %d: naive %v != accel %v", trial, naive, accel)
			}
		}
	}
}

func TestPrefixTableInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	letters := []byte("ACGT")
	raw := make([]byte, 5000)
	for i := range raw {
		raw[i] = letters[rng.Intn(len(letters))]
	}
	text, sa := buildRef(t, string(raw), 13)

	noTable := &Index{Text: text, SA: sa}
	withTable := &Index{Text: text, SA: sa, Table: BuildPrefixTable(text, sa, 5)}

	for trial := 0; trial < 50; trial++ {
		plen := 5 + rng.Intn(10)
		start := rng.Intn(len(raw) - plen + 1)
		pattern := raw[start : start+plen]

		a := positions(noTable.Query(pattern, ModeNaive))
		b := positions(withTable.Query(pattern, ModeNaive))
		if len(a) != len(b) {
			t.Fatalf("trial %d: no-table %v != with-table %v", trial, a, b)
		}
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("trial %d: no-table %v != with-table %v", trial, a, b)
			}
		}
	}
}
