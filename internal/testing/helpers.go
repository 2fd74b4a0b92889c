package testing

import (
	"context"
	"testing"
	"time"
)

// TestContext returns a context with a reasonable timeout for tests.
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// Sequence returns a function that yields values in order and repeats the
// last one once exhausted. It is handy for scripted fetch results.
func Sequence[T any](values ...T) func() T {
	i := 0
	return func() T {
		v := values[i]
		if i < len(values)-1 {
			i++
		}
		return v
	}
}
