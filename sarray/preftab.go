// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"bytes"
	"context"

	"golang.org/x/sync/errgroup"
)

// parallelChunks is the fixed number of contiguous chunks the parallel
// prefix-table builder partitions the suffix array into.
const parallelChunks = 128

// Interval is a half-open range [Lo, Hi) of indices into a suffix array.
// On disk (see serialize.go) it is written as an inclusive [Lo, Hi-1]
// pair; callers of this package always see the half-open form.
type Interval struct {
	Lo, Hi int32
}

// PrefixTable maps a K-byte prefix to the half-open interval of suffix
// array indices whose suffixes begin with that prefix. A nil or
// zero-valued PrefixTable with K == 0 means "no prefix table": range
// narrowing (see query.go) always falls back to the full array.
type PrefixTable struct {
	K       int
	Entries map[string]Interval
}

// hasPrefixOfLen reports whether the suffix of text starting at pos has
// at least k bytes remaining and those bytes equal p.
func hasPrefixOfLen(text []byte, pos int32, p []byte, k int) bool {
	if len(text)-int(pos) < k {
		return false
	}
	return bytes.Equal(text[int(pos):int(pos)+k], p)
}

// suffixesSharePrefix reports whether the suffixes at a and b both have
// at least k bytes and agree on their first k bytes.
func suffixesSharePrefix(text []byte, sa []int32, a, b int32, k int) bool {
	if len(text)-int(a) < k || len(text)-int(b) < k {
		return false
	}
	return bytes.Equal(text[int(a):int(a)+k], text[int(b):int(b)+k])
}

// buildPrefixTableRange implements the sequential algorithm of spec.md
// §4.3: it groups entries of sa in [rs, re) (and, deliberately, beyond re
// up to len(sa) — see DESIGN.md's Open Question record) that share the
// same k-byte prefix, recording each group as a half-open interval in
// dst. Entries whose suffix is shorter than k bytes belong to no group and
// are skipped. Comparisons read directly from text; no substrings are
// copied except the map key itself.
func buildPrefixTableRange(text []byte, sa []int32, k int, rs, re int, dst map[string]Interval) {
	iter := rs
	for iter < re && len(text)-int(sa[iter]) < k {
		iter++
	}
	for iter < re {
		pos := sa[iter]
		if len(text)-int(pos) < k {
			iter++
			continue
		}
		p := text[int(pos) : int(pos)+k]
		end := iter + 1
		for end < len(sa) && hasPrefixOfLen(text, sa[end], p, k) {
			end++
		}
		dst[string(p)] = Interval{Lo: int32(iter), Hi: int32(end)}
		iter = end
	}
}

// BuildPrefixTable constructs the prefix table for the full suffix array
// sa over text, sequentially. k == 0 returns an empty table ("no prefix
// table"); k > len(text) also yields an empty table, per spec.md §4.3.
func BuildPrefixTable(text []byte, sa []int32, k int) *PrefixTable {
	table := &PrefixTable{K: k, Entries: make(map[string]Interval)}
	if k <= 0 {
		return table
	}
	buildPrefixTableRange(text, sa, k, 0, len(sa), table.Entries)
	return table
}

// BuildPrefixTableParallel constructs the prefix table the same way as
// BuildPrefixTable, but partitions [0, len(sa)) into parallelChunks
// contiguous chunks and builds each chunk's groups in its own goroutine,
// coordinated through golang.org/x/sync/errgroup. Each worker's local map
// is merge-free by construction: a worker that starts mid-group advances
// past it so the group is claimed entirely by the previous worker (see
// spec.md §4.3), so the single-threaded merge after the parallel region
// never sees a key twice.
func BuildPrefixTableParallel(ctx context.Context, text []byte, sa []int32, k int) (*PrefixTable, error) {
	table := &PrefixTable{K: k, Entries: make(map[string]Interval)}
	if k <= 0 || len(sa) == 0 {
		return table, nil
	}

	n := len(sa)
	chunks := parallelChunks
	if chunks > n {
		chunks = n
	}
	size := (n + chunks - 1) / chunks

	locals := make([]map[string]Interval, chunks)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < chunks; i++ {
		i := i
		g.Go(func() error {
			start := i * size
			end := start + size
			if end > n {
				end = n
			}
			if start >= n {
				locals[i] = nil
				return nil
			}
			if i > 0 && start > 0 {
				boundary := sa[start-1]
				for start < n && suffixesSharePrefix(text, sa, sa[start], boundary, k) {
					start++
				}
			}
			local := make(map[string]Interval)
			buildPrefixTableRange(text, sa, k, start, end, local)
			locals[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, wrapErr(IndexBuildFailed, "BuildPrefixTableParallel", err)
	}

	for _, local := range locals {
		for key, iv := range local {
			table.Entries[key] = iv
		}
	}
	return table, nil
}
