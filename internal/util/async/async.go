package async

import (
	"context"
	"fmt"
	"sync"
)

// DefaultLimit bounds concurrency when callers pass a non-positive limit.
const DefaultLimit = 4

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Result is the outcome of a single task.
type Result struct {
	Name string
	Err  error
}

// RunBounded executes tasks with at most limit running at once and waits for
// all of them. Results are returned in task order, one per task, so callers
// can count failures without caring about completion order.
//
// Tasks not yet started when ctx is cancelled are not run; their Result
// carries ctx.Err().
func RunBounded(ctx context.Context, limit int, tasks []Task) []Result {
	results := make([]Result, len(tasks))
	if len(tasks) == 0 {
		return results
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup

	for i, task := range tasks {
		results[i].Name = task.Name

		select {
		case <-ctx.Done():
			results[i].Err = ctx.Err()
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			// each goroutine owns results[i]
			results[i].Err = task.Func(ctx)
		}()
	}

	wg.Wait()
	return results
}

// RunParallel executes tasks with at most limit running at once and returns
// the first error encountered after all tasks finish.
func RunParallel(ctx context.Context, limit int, tasks []Task) error {
	for _, res := range RunBounded(ctx, limit, tasks) {
		if res.Err != nil {
			return fmt.Errorf("failed to run %s: %w", res.Name, res.Err)
		}
	}
	return nil
}

// Failed counts results carrying an error.
func Failed(results []Result) int {
	n := 0
	for _, res := range results {
		if res.Err != nil {
			n++
		}
	}
	return n
}
