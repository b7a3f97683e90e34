// Package worker provides a bounded fan-out helper for batch work whose
// results must come back in input order.
package worker

import "sync"

// Map runs fn for every index in [0, n) with at most parallel goroutines and
// returns the results addressed by input index. fn must be safe to call
// concurrently for distinct indices.
func Map[T any](n, parallel int, fn func(i int) T) []T {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]T, n)
	sem := make(chan struct{}, parallel)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = fn(idx)
		}(i)
	}

	wg.Wait()
	return results
}
