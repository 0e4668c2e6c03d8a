// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sais implements suffix array construction by induced sorting
// (Nong, Zhang and Chen's SA-IS algorithm). It is a pure adapter: given a
// byte string terminated by a unique strict minimum, it returns the
// lexicographic order of the string's suffixes. It has no notion of DNA,
// FASTA or prefix tables — those are the caller's concern.
package sais

import "errors"

// ErrEmptyInput is returned by Build when text has zero length.
var ErrEmptyInput = errors.New("sais: empty input")

// ErrNoSentinel is returned by Build when the final byte of text is not
// strictly less than every other byte, so it cannot serve as a sentinel.
var ErrNoSentinel = errors.New("sais: final byte is not a strict minimum")

// Build constructs the suffix array of text using induced sorting. text
// must end with a byte that occurs nowhere else and is strictly less than
// every other byte in text; this is the caller's contract to uphold (see
// package sarray's Normalizer). The returned slice is a permutation of
// [0, len(text)) giving the suffixes of text in non-decreasing
// lexicographic order.
func Build(text []byte) ([]int32, error) {
	n := len(text)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	sentinel := text[n-1]
	for i := 0; i < n-1; i++ {
		if text[i] <= sentinel {
			return nil, ErrNoSentinel
		}
	}

	s := make([]int, n)
	for i, b := range text {
		s[i] = int(b)
	}

	sa := sais(s, 256)

	out := make([]int32, n)
	for i, v := range sa {
		out[i] = int32(v)
	}
	return out, nil
}

// sais computes the suffix array of s, an alphabet of size K (symbol
// values in [0, K)), using the two-phase induced-sort-then-recurse
// algorithm. The final element of s must be a unique strict minimum.
func sais(s []int, K int) []int {
	n := len(s)
	SA := make([]int, n)
	for i := range SA {
		SA[i] = -1
	}
	if n == 1 {
		SA[0] = 0
		return SA
	}

	// Classify each position as S-type (true) or L-type (false).
	t := make([]bool, n)
	t[n-1] = true
	for i := n - 2; i >= 0; i-- {
		switch {
		case s[i] < s[i+1]:
			t[i] = true
		case s[i] > s[i+1]:
			t[i] = false
		default:
			t[i] = t[i+1]
		}
	}

	isLMS := func(i int) bool { return i > 0 && t[i] && !t[i-1] }

	var lmsPositions []int
	for i := 1; i < n; i++ {
		if isLMS(i) {
			lmsPositions = append(lmsPositions, i)
		}
	}

	induceSort(s, SA, t, K, lmsPositions)

	var sortedLMS []int
	for _, pos := range SA {
		if isLMS(pos) {
			sortedLMS = append(sortedLMS, pos)
		}
	}

	lmsName := make([]int, n)
	for i := range lmsName {
		lmsName[i] = -1
	}
	name := 0
	prev := -1
	for _, pos := range sortedLMS {
		if prev != -1 && !lmsSubstringEqual(s, t, isLMS, prev, pos) {
			name++
		}
		lmsName[pos] = name
		prev = pos
	}
	numNames := name + 1

	reduced := make([]int, len(lmsPositions))
	for i, pos := range lmsPositions {
		reduced[i] = lmsName[pos]
	}

	var reducedSA []int
	if numNames < len(reduced) {
		reducedSA = sais(reduced, numNames)
	} else {
		reducedSA = make([]int, len(reduced))
		for i, nm := range reduced {
			reducedSA[nm] = i
		}
	}

	orderedLMS := make([]int, len(reducedSA))
	for i, idx := range reducedSA {
		orderedLMS[i] = lmsPositions[idx]
	}

	for i := range SA {
		SA[i] = -1
	}
	induceSort(s, SA, t, K, orderedLMS)
	return SA
}

// induceSort places lms into the tails of their buckets, then induces
// L-type suffixes left-to-right and S-type suffixes right-to-left.
func induceSort(s []int, SA []int, t []bool, K int, lms []int) {
	bucketSize := make([]int, K)
	for _, v := range s {
		bucketSize[v]++
	}

	tails := bucketTails(bucketSize)
	for i := len(lms) - 1; i >= 0; i-- {
		pos := lms[i]
		c := s[pos]
		SA[tails[c]] = pos
		tails[c]--
	}

	heads := bucketHeads(bucketSize)
	for i := range SA {
		pos := SA[i]
		if pos > 0 && !t[pos-1] {
			c := s[pos-1]
			SA[heads[c]] = pos - 1
			heads[c]++
		}
	}

	tails = bucketTails(bucketSize)
	for i := len(SA) - 1; i >= 0; i-- {
		pos := SA[i]
		if pos > 0 && t[pos-1] {
			c := s[pos-1]
			SA[tails[c]] = pos - 1
			tails[c]--
		}
	}
}

func bucketHeads(bucketSize []int) []int {
	heads := make([]int, len(bucketSize))
	sum := 0
	for i, v := range bucketSize {
		heads[i] = sum
		sum += v
	}
	return heads
}

func bucketTails(bucketSize []int) []int {
	tails := make([]int, len(bucketSize))
	sum := 0
	for i, v := range bucketSize {
		sum += v
		tails[i] = sum - 1
	}
	return tails
}

// lmsSubstringEqual reports whether the LMS substrings starting at i and j
// are identical, where isLMS reports whether a position starts an LMS
// substring. i and j are themselves LMS positions, so they trivially
// satisfy isLMS at offset zero; the comparison only treats reaching
// another LMS position as a terminator once it has advanced past that
// first, trivial offset.
func lmsSubstringEqual(s []int, t []bool, isLMS func(int) bool, i, j int) bool {
	n := len(s)
	first := true
	for {
		if s[i] != s[j] {
			return false
		}
		iLMS := isLMS(i)
		jLMS := isLMS(j)
		if !first && iLMS && jLMS {
			return true
		}
		if !first && iLMS != jLMS {
			return false
		}
		first = false
		i++
		j++
		if i >= n || j >= n {
			return false
		}
	}
}
