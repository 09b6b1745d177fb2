package hwt

import (
	"cmp"
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/hupe1980/hwt/internal/packed"
	"github.com/hupe1980/hwt/internal/pool"
	"github.com/hupe1980/hwt/internal/queue"
)

// Nearest fills dst with the nearest neighbors of f, closest first, and
// returns the filled prefix. Fewer than len(dst) features are returned only
// when the tree holds fewer features.
//
// Results are exact. Equal distances are returned in no particular order.
func (t *Tree) Nearest(f Feature, dst []Feature) []Feature {
	n := 0
	t.nearest(f, len(dst), func(g Feature, _ uint32) {
		dst[n] = g
		n++
	})
	return dst[:n]
}

// NearestNeighbors returns up to k nearest neighbors of f with their
// distances, closest first.
func (t *Tree) NearestNeighbors(f Feature, k int) []Neighbor {
	if k <= 0 {
		return nil
	}
	out := make([]Neighbor, 0, min(k, t.count))
	t.nearest(f, k, func(g Feature, d uint32) {
		out = append(out, Neighbor{Feature: g, Distance: d})
	})
	return out
}

// nearest performs a best-first search, calling emit for at most k features
// in non-decreasing distance order.
//
// Queue entries carry a lower bound on the distance of everything below the
// node. A leaf popped at distance d emits its members at exactly d and is
// queued again at the next larger member distance. A wide branch popped at d
// queues the children at exactly d and is queued again at d+1, so it is
// opened one distance shell at a time.
func (t *Tree) nearest(f Feature, k int, emit func(Feature, uint32)) {
	if k <= 0 {
		return
	}
	ctx := context.Background()
	log := t.opts.logger
	tracing := log.tracing(ctx)
	if tracing {
		log = log.WithK(k)
	}
	start := time.Now()
	found, visits := 0, 0
	defer func() {
		t.opts.metricsCollector.RecordNearest(k, found, visits, time.Since(start))
		log.LogNearest(ctx, k, found, visits)
	}()

	root := &t.nodes[0]
	if !root.isBranch() {
		if tracing {
			log.trace(ctx, "nearest sole leaf", "len", len(root.leaf))
		}
		candidates := make([]Neighbor, len(root.leaf))
		for i, g := range root.leaf {
			candidates[i] = Neighbor{Feature: g, Distance: packed.Hamming(f, g)}
		}
		slices.SortFunc(candidates, func(a, b Neighbor) int {
			return cmp.Compare(a.Distance, b.Distance)
		})
		for _, c := range candidates[:min(k, len(candidates))] {
			emit(c.Feature, c.Distance)
			found++
		}
		return
	}

	idx := packed.Indices(f)
	if tracing {
		log.trace(ctx, "nearest emptying root", "weight", idx[0].Lo, "len", len(root.branch))
	}
	sc := pool.Get()
	defer pool.Put(sc)
	q := sc.Queue
	q.Init(func(yield func(queue.Item) bool) {
		for key, child := range root.branch {
			if !yield(queue.Item{Distance: packed.Distance(key, idx[0], 0), Key: key, Node: child}) {
				return
			}
		}
	})

	for {
		it, ok := q.Pop()
		if !ok {
			return
		}
		visits++
		n := &t.nodes[it.Node]
		level := int(it.Level)

		if !n.isBranch() {
			if tracing {
				log.trace(ctx, "nearest leaf", "node", it.Node, "distance", it.Distance, "len", len(n.leaf), "level", level)
			}
			next := uint32(packed.MaxDistance + 1)
			for _, g := range n.leaf {
				d := packed.Hamming(f, g)
				switch {
				case d == it.Distance:
					emit(g, d)
					found++
					if found == k {
						return
					}
				case d > it.Distance && d < next:
					next = d
				}
			}
			if next <= packed.MaxDistance {
				it.Distance = next
				q.AddOne(it)
			}
			continue
		}

		if level >= packed.Levels-1 {
			panic(fmt.Sprintf("hwt: branch node %d at level %d", it.Node, level))
		}
		fine := level + 1

		if len(n.branch) < t.bruteForce(level) {
			if tracing {
				log.trace(ctx, "nearest brute force", "node", it.Node, "distance", it.Distance, "len", len(n.branch), "level", level)
			}
			q.Add(func(yield func(queue.Item) bool) {
				for key, child := range n.branch {
					d := packed.PartialDistance(key, &idx, fine)
					if !yield(queue.Item{Distance: d, Key: key, Node: child, Level: uint8(fine)}) {
						return
					}
				}
			})
			continue
		}

		if tracing {
			log.trace(ctx, "nearest precision search", "node", it.Node, "distance", it.Distance, "len", len(n.branch), "level", level)
		}
		shell := packed.ExactAtDistance(idx[level], idx[fine], it.Key, level, it.Distance)
		keys, enumerated := enumerate(sc.Keys[:0], shell, len(n.branch))
		q.Add(func(yield func(queue.Item) bool) {
			if !enumerated {
				for key, child := range n.branch {
					if packed.PartialDistance(key, &idx, fine) != it.Distance {
						continue
					}
					if !yield(queue.Item{Distance: it.Distance, Key: key, Node: child, Level: uint8(fine)}) {
						return
					}
				}
				return
			}
			for _, key := range keys {
				child, ok := n.branch[key]
				if !ok {
					continue
				}
				if !yield(queue.Item{Distance: it.Distance, Key: key, Node: child, Level: uint8(fine)}) {
					return
				}
			}
		})
		if enumerated {
			sc.Keys = keys[:0]
		}
		if it.Distance < packed.MaxDistance {
			// Everything at it.Distance has been queued.
			it.Distance++
			q.AddOne(it)
		}
	}
}

// enumerate appends the keys of seq to keys. It gives up and reports false
// once seq yields more than limit keys, in which case scanning the branch
// directly is no more expensive.
func enumerate(keys []packed.Key, seq iter.Seq[packed.Key], limit int) ([]packed.Key, bool) {
	limit += len(keys)
	for k := range seq {
		if len(keys) == limit {
			return nil, false
		}
		keys = append(keys, k)
	}
	return keys, true
}
