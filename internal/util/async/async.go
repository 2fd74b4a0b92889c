package async

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// Run executes tasks concurrently, at most limit at a time (limit <= 0 means
// no limit), and waits for all of them. A failing task does not cancel the
// others. Every error is returned, joined, and wrapped with its task name.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "i-1", Func: waitRunning("i-1")},
//	    {Name: "i-2", Func: waitRunning("i-2")},
//	}
//	if err := Run(ctx, tasks, 4); err != nil {
//	    return err
//	}
func Run(ctx context.Context, tasks []Task, limit int) error {
	if len(tasks) == 0 {
		return nil
	}

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := task.Func(ctx); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", task.Name, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
