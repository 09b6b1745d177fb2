// Package queue provides the min-priority queue of pending tree nodes used by
// best-first nearest neighbor search.
package queue

import (
	"iter"

	"lukechampine.com/uint128"
)

// Item is a pending visit of a tree node.
//
// The same node may be queued several times at different distances; every
// entry is a separate visit.
type Item struct {
	Distance uint32          // Distance is the priority of the item in the queue.
	Key      uint128.Uint128 // Key is the classification key the node is stored under.
	Node     uint32          // Node is the arena index of the node.
	Level    uint8           // Level is the tree level of the node.
}

// NodeQueue is a value-based binary min-heap ordered by Distance.
// Ties are broken arbitrarily.
type NodeQueue struct {
	items []Item
}

// New creates a queue seeded with level-0 items.
func New(seed iter.Seq[Item]) *NodeQueue {
	q := NewWithCapacity(64)
	q.Init(seed)
	return q
}

// NewWithCapacity creates an empty queue with room for capacity items.
func NewWithCapacity(capacity int) *NodeQueue {
	return &NodeQueue{items: make([]Item, 0, capacity)}
}

// Init discards all queued items and seeds the queue with level-0 items.
func (q *NodeQueue) Init(seed iter.Seq[Item]) {
	q.items = q.items[:0]
	for it := range seed {
		it.Level = 0
		q.items = append(q.items, it)
	}
	for i := len(q.items)/2 - 1; i >= 0; i-- {
		q.siftDown(i)
	}
}

// Len returns the number of queued items.
func (q *NodeQueue) Len() int { return len(q.items) }

// Cap returns the capacity of the underlying storage.
func (q *NodeQueue) Cap() int { return cap(q.items) }

// AddOne inserts a single item.
func (q *NodeQueue) AddOne(item Item) {
	q.items = append(q.items, item)
	q.siftUp(len(q.items) - 1)
}

// Add inserts every item of seq.
func (q *NodeQueue) Add(seq iter.Seq[Item]) {
	for it := range seq {
		q.AddOne(it)
	}
}

// Pop removes and returns the item with the smallest distance.
func (q *NodeQueue) Pop() (Item, bool) {
	n := len(q.items)
	if n == 0 {
		return Item{}, false
	}
	root := q.items[0]
	last := q.items[n-1]
	q.items[n-1] = Item{}
	q.items = q.items[:n-1]
	if n-1 > 0 {
		q.items[0] = last
		q.siftDown(0)
	}
	return root, true
}

// Reset clears the queue for reuse.
func (q *NodeQueue) Reset() {
	q.items = q.items[:0]
}

func (q *NodeQueue) less(i, j int) bool {
	return q.items[i].Distance < q.items[j].Distance
}

func (q *NodeQueue) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !q.less(i, p) {
			return
		}
		q.items[i], q.items[p] = q.items[p], q.items[i]
		i = p
	}
}

func (q *NodeQueue) siftDown(i int) {
	n := len(q.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && q.less(r, l) {
			best = r
		}
		if !q.less(best, i) {
			return
		}
		q.items[i], q.items[best] = q.items[best], q.items[i]
		i = best
	}
}
