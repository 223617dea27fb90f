package framebuffer

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// parallelRows runs fn(y) for every row in [0, rows) across
// runtime.GOMAXPROCS(0) workers, each claiming a contiguous band of rows.
// Used by the clear and resolve passes, which touch disjoint rows and so
// need no per-pixel locking.
func parallelRows(rows int, fn func(y int)) {
	workers := runtime.GOMAXPROCS(0)
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		for y := 0; y < rows; y++ {
			fn(y)
		}
		return
	}

	g, _ := errgroup.WithContext(context.Background())
	band := (rows + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * band
		end := start + band
		if end > rows {
			end = rows
		}
		if start >= end {
			continue
		}
		g.Go(func() error {
			for y := start; y < end; y++ {
				fn(y)
			}
			return nil
		})
	}
	_ = g.Wait()
}
