// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sarray builds and queries a suffix array index over DNA
// reference sequences. A reference is normalized into the alphabet
// {A,T,G,C,$}, indexed by the SA-IS algorithm (package
// github.com/kortschak/sufidx/internal/sais), optionally narrowed by a
// k-length prefix table, and persisted in a magic-tagged binary format.
// Queries are answered by bounded binary search over the persisted index,
// either in naive mode or in a simple LCP-accelerated mode.
package sarray
