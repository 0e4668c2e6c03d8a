// Copyright ©2020 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sarray

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// QueryRecord is one query pattern and the positions it was found at. It
// corresponds to one line of the batch query input and, after RunBatch,
// one line of the §6.4 output format.
type QueryRecord struct {
	Title   string
	Pattern []byte
	Results []int32
}

// RunBatch answers every record in records against idx using the given
// mode, filling each record's Results in place. Records are independent
// (read-only access to idx, exclusive access to their own Results), so
// when parallel is true, RunBatch fans them out across an
// golang.org/x/sync/errgroup-managed worker pool with no further
// synchronization. There is no ordering guarantee between records in that
// case; callers that need input order should key results by Title.
func RunBatch(ctx context.Context, idx *Index, records []*QueryRecord, mode Mode, parallel bool) error {
	if !parallel {
		for _, rec := range records {
			rec.Results = idx.Query(rec.Pattern, mode)
		}
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(records) {
		workers = len(records)
	}
	if workers < 1 {
		workers = 1
	}

	g, _ := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < len(records); i += workers {
				records[i].Results = idx.Query(records[i].Pattern, mode)
			}
			return nil
		})
	}
	return g.Wait()
}
