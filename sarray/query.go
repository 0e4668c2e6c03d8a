// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

// Mode selects the binary-search comparison strategy used by Index.Query.
type Mode int

const (
	// ModeNaive restarts each suffix comparison at offset 0.
	ModeNaive Mode = iota
	// ModeSimpleAccel skips the prefix of each comparison already known
	// to match the query: the smaller of the LCP tracked for the search
	// range's left bracket and the LCP between the query and the suffix
	// at the midpoint (spec.md §4.5.3, §9).
	ModeSimpleAccel
)

// Query returns the positions in the normalized text at which pattern
// occurs, using the requested comparison mode. The result is the slice
// SA[lb:ub] of idx.SA itself, so the positions are in suffix order, not in
// ascending numeric order. pattern is
// taken as-is: it is not upper-cased or otherwise normalized (spec.md §9),
// so a lower-case or non-DNA byte in pattern simply fails to match any
// suffix. An empty pattern matches every position, including the
// sentinel's.
func (idx *Index) Query(pattern []byte, mode Mode) []int32 {
	lo, hi := idx.narrowRange(pattern)
	if lo >= hi {
		return nil
	}

	lb := idx.lowerBound(pattern, lo, hi, mode)
	ub := idx.upperBound(pattern, lo, hi, mode)
	if lb >= ub {
		return nil
	}
	return idx.SA[lb:ub]
}

// narrowRange implements spec.md §4.5.1: if a prefix table exists and the
// pattern is at least as long as its key length, the search range is
// narrowed to the table's recorded interval (or emptied if the pattern's
// prefix is not a key); otherwise the full array is searched.
func (idx *Index) narrowRange(pattern []byte) (lo, hi int) {
	if idx.Table == nil || idx.Table.K == 0 || len(pattern) < idx.Table.K {
		return 0, len(idx.SA)
	}
	key := string(pattern[:idx.Table.K])
	iv, ok := idx.Table.Entries[key]
	if !ok {
		return 0, 0
	}
	return int(iv.Lo), int(iv.Hi)
}

// lowerBound finds the smallest i in [lo, hi) such that the suffix at
// SA[i], truncated to len(pattern) bytes, is >= pattern.
func (idx *Index) lowerBound(pattern []byte, lo, hi int, mode Mode) int {
	m := len(pattern)
	lcpLo := 0
	if mode == ModeSimpleAccel && lo < hi {
		lcpLo = idx.lcp(idx.SA[lo], pattern, 0, m)
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		skip := 0
		if mode == ModeSimpleAccel {
			skip = min(lcpLo, idx.lcp(idx.SA[mid], pattern, 0, m))
		}
		cmp, matched := idx.compareFrom(idx.SA[mid], pattern, skip, m)
		if cmp < 0 {
			lo = mid + 1
			lcpLo = matched
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound finds the smallest i in [lo, hi) such that the suffix at
// SA[i], truncated to len(pattern) bytes, is > pattern. Per spec.md §9,
// the simple-accelerant skip is computed the same way as in lowerBound:
// the smaller of the left bracket's tracked LCP and the midpoint's LCP;
// the right bracket is not used.
func (idx *Index) upperBound(pattern []byte, lo, hi int, mode Mode) int {
	m := len(pattern)
	lcpLo := 0
	if mode == ModeSimpleAccel && lo < hi {
		lcpLo = idx.lcp(idx.SA[lo], pattern, 0, m)
	}
	for lo < hi {
		mid := lo + (hi-lo)/2
		skip := 0
		if mode == ModeSimpleAccel {
			skip = min(lcpLo, idx.lcp(idx.SA[mid], pattern, 0, m))
		}
		cmp, matched := idx.compareFrom(idx.SA[mid], pattern, skip, m)
		if cmp <= 0 {
			lo = mid + 1
			lcpLo = matched
		} else {
			hi = mid
		}
	}
	return lo
}

// lcp returns the length of the common prefix between pattern[from:m) and
// the suffix at SA position pos, starting the comparison at offset from
// and never reading past m bytes of either operand.
func (idx *Index) lcp(pos int32, pattern []byte, from, m int) int {
	text := idx.Text
	i := from
	for i < m && int(pos)+i < len(text) && text[int(pos)+i] == pattern[i] {
		i++
	}
	return i
}

// compareFrom compares the suffix at SA position pos against pattern,
// truncated to m bytes, skipping the first skip bytes (already known to
// match). It returns the three-way comparison result and the number of
// leading bytes that matched (used to update the simple-accelerant's
// tracked LCP).
//
// Tie-break policy (spec.md §4.5.3): exhaustion of the suffix (reaching
// the sentinel before m bytes are compared) is "<"; exhaustion of the
// pattern at position m with no prior mismatch is "=".
func (idx *Index) compareFrom(pos int32, pattern []byte, skip, m int) (cmp int, matched int) {
	text := idx.Text
	i := skip
	for i < m {
		if int(pos)+i >= len(text) {
			return -1, i
		}
		tb, pb := text[int(pos)+i], pattern[i]
		if tb < pb {
			return -1, i
		}
		if tb > pb {
			return 1, i
		}
		i++
	}
	return 0, m
}
