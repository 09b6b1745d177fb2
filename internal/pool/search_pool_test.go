package pool

import (
	"slices"
	"testing"

	"github.com/hupe1980/hwt/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func TestSearchContext(t *testing.T) {
	t.Run("FreshIsEmpty", func(t *testing.T) {
		ctx := Get()
		defer Put(ctx)

		assert.Zero(t, ctx.Queue.Len())
		assert.Empty(t, ctx.Keys)
	})

	t.Run("Reset", func(t *testing.T) {
		ctx := Get()
		ctx.Queue.AddOne(queue.Item{Distance: 1})
		ctx.Keys = append(ctx.Keys, uint128.From64(3))

		ctx.Reset()
		assert.Zero(t, ctx.Queue.Len())
		assert.Empty(t, ctx.Keys)
		Put(ctx)
	})

	t.Run("ReusedQueueIsSeeded", func(t *testing.T) {
		ctx := Get()
		defer Put(ctx)

		ctx.Queue.AddOne(queue.Item{Distance: 9, Node: 9})
		ctx.Queue.Init(slices.Values([]queue.Item{{Distance: 2, Node: 1}, {Distance: 1, Node: 2}}))

		it, ok := ctx.Queue.Pop()
		require.True(t, ok)
		assert.Equal(t, uint32(2), it.Node)
		assert.Equal(t, 1, ctx.Queue.Len())
	})

	t.Run("OversizedQueueIsDropped", func(t *testing.T) {
		ctx := Get()
		for i := range maxRetainedQueue + 1 {
			ctx.Queue.AddOne(queue.Item{Distance: uint32(i % 129)})
		}
		Put(ctx)

		assert.LessOrEqual(t, ctx.Queue.Cap(), DefaultQueueCapacity)
	})
}
