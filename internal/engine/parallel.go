package engine

import (
	"runtime"
	"sync"
)

// parallelRows below this count run serially; the per-goroutine cost
// outweighs an O(n) row for small systems.
const minRowsPerWorker = 64

// parallelRows partitions [0, n) into contiguous chunks and runs fn on each.
// fn must write only to its own rows: callers rely on every chunk reading the
// same pre-step snapshot, so no chunk may mutate shared input.
func parallelRows(n int, fn func(start, end int)) {
	workers := runtime.NumCPU()
	if n < 2*minRowsPerWorker || workers <= 1 {
		fn(0, n)
		return
	}

	if n/minRowsPerWorker < workers {
		workers = n / minRowsPerWorker
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
