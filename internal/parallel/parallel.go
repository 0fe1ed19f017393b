// Package parallel provides a small bounded-concurrency mapping helper.
package parallel

import "sync"

// Result pairs one mapped value with the error produced for it.
type Result[T any] struct {
	Value T
	Err   error
}

// MapOrdered applies fn to every item with at most limit concurrent calls.
// The result slice mirrors the input order.
func MapOrdered[T, R any](items []T, limit int, fn func(T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return nil
	}
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	results := make([]Result[R], len(items))

	var wg sync.WaitGroup
	wg.Add(len(items))
	for i, item := range items {
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			v, err := fn(item)
			results[i] = Result[R]{Value: v, Err: err}
		}()
	}
	wg.Wait()
	return results
}
