package ecs

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ParEach calls fn for every entity of v across up to workers goroutines.
// The view is split into contiguous index ranges, one per worker. The first
// error cancels ctx for the remaining workers and is returned.
//
// fn may read and write the fetches borrowed alongside v, provided each call
// only touches the components of the entity it was given.
func ParEach(ctx context.Context, v View, workers int, fn func(Entity) error) error {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	rest := v
	chunk := (rest.Len() + workers - 1) / workers
	for rest.Len() > 0 {
		var part View
		part, rest = rest.SplitAt(chunk)
		g.Go(func() error {
			for e := range part.Iter() {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(e); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
