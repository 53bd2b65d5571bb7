package nonrigid

import (
	"runtime"
	"sync"
)

// minChunk keeps small inputs on a single goroutine.
const minChunk = 256

// forEachChunk splits [0, n) into contiguous ranges and runs fn on each range
// concurrently. fn must only write to output positions inside its own range.
// The first error reported by any chunk is returned.
func forEachChunk(n int, fn func(start, end int) error) error {
	if n == 0 {
		return nil
	}
	workers := runtime.GOMAXPROCS(0)
	if limit := (n + minChunk - 1) / minChunk; workers > limit {
		workers = limit
	}
	if workers <= 1 {
		return fn(0, n)
	}

	size := (n + workers - 1) / workers
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * size
		if start >= n {
			break
		}
		end := start + size
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			errs[w] = fn(start, end)
		}(w, start, end)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
