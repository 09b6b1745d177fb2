package hwt

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/hupe1980/hwt/internal/packed"
	"lukechampine.com/uint128"
)

// rootLevel is the level of the root node, whose branch keys are level 0.
const rootLevel = -1

// SearchRadius returns every stored feature within Hamming distance radius
// of f, in no particular order. Radii above 128 are treated as 128.
//
// The sequence is lazy and single-pass; the tree must not be modified while
// it is consumed. Stopping early abandons the rest of the traversal.
func (t *Tree) SearchRadius(radius uint32, f Feature) iter.Seq[Feature] {
	radius = min(radius, packed.MaxDistance)
	return func(yield func(Feature) bool) {
		start := time.Now()
		found := 0
		defer func() {
			t.opts.metricsCollector.RecordRadius(radius, found, time.Since(start))
		}()

		s := radiusSearch{
			t:      t,
			f:      f,
			idx:    packed.Indices(f),
			radius: radius,
			yield: func(g Feature) bool {
				found++
				return yield(g)
			},
		}
		if t.opts.logger.tracing(context.Background()) {
			s.log = t.opts.logger.WithRadius(radius)
		}
		s.scan(0, rootLevel, uint128.Zero)
	}
}

// CountRadius returns the number of stored features within radius of f.
func (t *Tree) CountRadius(radius uint32, f Feature) int {
	n := 0
	for range t.SearchRadius(radius, f) {
		n++
	}
	return n
}

type radiusSearch struct {
	t      *Tree
	f      Feature
	idx    [packed.Levels]packed.Key
	radius uint32
	yield  func(Feature) bool
	log    *Logger // nil unless tracing
}

// scan visits node id, stored under key at level, and reports whether the
// consumer wants more results.
func (s *radiusSearch) scan(id uint32, level int, key packed.Key) bool {
	n := &s.t.nodes[id]
	if s.log != nil {
		s.log.trace(context.Background(), "radius scan", "node", id, "level", level, "branch", n.isBranch())
	}
	if !n.isBranch() {
		for _, g := range n.leaf {
			if packed.Hamming(s.f, g) <= s.radius {
				if !s.yield(g) {
					return false
				}
			}
		}
		return true
	}

	fine := level + 1
	if fine >= packed.Levels {
		panic(fmt.Sprintf("hwt: branch node %d below the deepest level", id))
	}

	var keys iter.Seq[packed.Key]
	switch {
	case len(n.branch) < s.t.bruteForce(level):
	case level == rootLevel:
		keys = packed.RootRange(uint32(s.idx[0].Lo), s.radius)
	default:
		within := func(yield func(packed.Key) bool) {
			for k := range packed.WithinRadius(s.idx[level], s.idx[fine], key, level, s.radius) {
				if !yield(k) {
					return
				}
			}
		}
		if enum, ok := enumerate(nil, within, len(n.branch)); ok {
			keys = slices.Values(enum)
		}
	}

	if keys == nil {
		for k, child := range n.branch {
			if packed.LowerBound(k, s.idx[fine], fine) > s.radius {
				continue
			}
			if !s.scan(child, fine, k) {
				return false
			}
		}
		return true
	}
	for k := range keys {
		child, ok := n.branch[k]
		if !ok {
			continue
		}
		if !s.scan(child, fine, k) {
			return false
		}
	}
	return true
}
