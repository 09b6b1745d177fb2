package hwt

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// NearestBatch runs Nearest with capacity k for every query concurrently and
// returns the results in query order.
//
// It only reads the tree, so it must not overlap with Insert. Concurrency is
// bounded by WithBatchConcurrency.
func (t *Tree) NearestBatch(ctx context.Context, queries []Feature, k int) ([][]Feature, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}

	out := make([][]Feature, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.opts.batchConcurrency)

	for i, q := range queries {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = t.Nearest(q, make([]Feature, k))
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	t.opts.logger.LogBatch(ctx, len(queries), k, err)
	if err != nil {
		return nil, err
	}
	return out, nil
}
