// Package pool provides object pools for allocation-free repeated searches.
package pool

import (
	"sync"

	"github.com/hupe1980/hwt/internal/packed"
	"github.com/hupe1980/hwt/internal/queue"
)

const (
	// DefaultQueueCapacity is the default capacity for node queues.
	DefaultQueueCapacity = 256

	// DefaultKeyCapacity is the default capacity of the key buffer.
	DefaultKeyCapacity = 64

	// maxRetainedQueue bounds the queue capacity kept across searches.
	maxRetainedQueue = 1 << 16
)

// SearchContext contains buffers reused by nearest neighbor searches.
type SearchContext struct {
	Queue *queue.NodeQueue
	// Keys receives the keys of one enumerated distance shell.
	Keys []packed.Key
}

var searchContextPool = sync.Pool{
	New: func() any {
		return &SearchContext{
			Queue: queue.NewWithCapacity(DefaultQueueCapacity),
			Keys:  make([]packed.Key, 0, DefaultKeyCapacity),
		}
	},
}

// Get retrieves a SearchContext from the pool.
func Get() *SearchContext {
	ctx := searchContextPool.Get().(*SearchContext)
	ctx.Reset()
	return ctx
}

// Put returns a SearchContext to the pool for reuse.
func Put(ctx *SearchContext) {
	if ctx.Queue.Cap() > maxRetainedQueue {
		ctx.Queue = queue.NewWithCapacity(DefaultQueueCapacity)
	}
	searchContextPool.Put(ctx)
}

// Reset clears the SearchContext for reuse.
func (sc *SearchContext) Reset() {
	sc.Queue.Reset()
	sc.Keys = sc.Keys[:0]
}
