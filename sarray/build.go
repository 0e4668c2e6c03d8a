// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"github.com/kortschak/sufidx/internal/sais"
)

// BuildSuffixArray constructs the suffix array of a normalized text (as
// produced by Normalizer.Normalize) using the SA-IS collaborator. It is a
// thin adapter: sais.Build already treats text's raw byte values as the
// SA-IS alphabet, since Sentinel ($) is numerically less than every DNA
// byte and therefore needs no remapping.
func BuildSuffixArray(text []byte) ([]int32, error) {
	sa, err := sais.Build(text)
	if err != nil {
		return nil, wrapErr(IndexBuildFailed, "BuildSuffixArray", err)
	}
	return sa, nil
}
