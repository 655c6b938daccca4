package fetchpool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result pairs an item's value with its own error; one failed item never
// fails the batch.
type Result[T any] struct {
	Value T
	Err   error
}

// Map runs fn over items with at most limit calls in flight and returns the
// results in input order. Items not started before ctx is done get ctx.Err().
func Map[In, Out any](ctx context.Context, limit int, items []In, fn func(context.Context, In) (Out, error)) []Result[Out] {
	if limit <= 0 {
		limit = 1
	}
	out := make([]Result[Out], len(items))
	if len(items) == 0 {
		return out
	}

	// Zero-value group: no shared context, so a failed item cancels nothing.
	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				out[i].Err = err
				return nil
			}
			v, err := fn(ctx, item)
			out[i] = Result[Out]{Value: v, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return out
}
