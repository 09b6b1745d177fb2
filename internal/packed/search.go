package packed

import (
	"iter"

	"lukechampine.com/uint128"
)

// split is one way to divide a parent field between its two child fields.
type split struct {
	low  uint64
	high uint64
	cost uint32
}

// costSet is a set of total costs in 0..191.
type costSet [3]uint64

func (c costSet) has(n uint32) bool {
	return n < 192 && c[n/64]&(1<<(n%64)) != 0
}

// shifted returns {x + n : x in c}, dropping costs past 191.
func (c costSet) shifted(n uint32) costSet {
	var out costSet
	words, off := int(n/64), n%64
	for i := 2; i >= words; i-- {
		v := c[i-words] << off
		if off != 0 && i-words-1 >= 0 {
			v |= c[i-words-1] >> (64 - off)
		}
		out[i] = v
	}
	return out
}

func (c costSet) union(o costSet) costSet {
	return costSet{c[0] | o[0], c[1] | o[1], c[2] | o[2]}
}

// shell enumerates the children of a parent key.
type shell struct {
	w    uint // child field width
	opts [][]split
	// minTail[i] bounds the cost of fields i.. of any child from below and
	// reach[i] holds every cost those fields can add up to.
	minTail []uint32
	reach   []costSet
}

func newShell(parent, fine Key, level int) *shell {
	n := Fields(level)
	pw := Width(level)
	w := pw / 2
	s := &shell{
		w:       w,
		opts:    make([][]split, n),
		minTail: make([]uint32, n+1),
		reach:   make([]costSet, n+1),
	}
	mins := make([]uint32, n)
	for i := range n {
		p := Field(parent, pw, i)
		qa := Field(fine, w, 2*i)
		qb := Field(fine, w, 2*i+1)
		lo := uint64(0)
		if p > uint64(w) {
			lo = p - uint64(w)
		}
		hi := min(p, uint64(w))
		if lo > hi {
			// Not a key of this level; nothing lies below it.
			s.minTail[0] = MaxDistance + 1
			s.reach[0] = costSet{}
			return s
		}
		opts := make([]split, 0, hi-lo+1)
		for a := lo; a <= hi; a++ {
			c := uint32(absDiff(a, qa) + absDiff(p-a, qb))
			opts = append(opts, split{low: a, high: p - a, cost: c})
			if a == lo || c < mins[i] {
				mins[i] = c
			}
		}
		s.opts[i] = opts
	}
	s.reach[n][0] = 1
	for i := n - 1; i >= 0; i-- {
		s.minTail[i] = s.minTail[i+1] + mins[i]
		for _, o := range s.opts[i] {
			s.reach[i] = s.reach[i].union(s.reach[i+1].shifted(o.cost))
		}
	}
	return s
}

// walkExact visits every child key whose total cost is exactly d. Only
// prefixes that can still reach d are expanded.
func (s *shell) walkExact(i int, acc uint32, key Key, d uint32, yield func(Key) bool) bool {
	if i == len(s.opts) {
		return yield(key)
	}
	for _, o := range s.opts[i] {
		c := acc + o.cost
		if c > d || !s.reach[i+1].has(d-c) {
			continue
		}
		next := orField(orField(key, s.w, 2*i, o.low), s.w, 2*i+1, o.high)
		if !s.walkExact(i+1, c, next, d, yield) {
			return false
		}
	}
	return true
}

// walkWithin visits every child key whose total cost is at most r.
func (s *shell) walkWithin(i int, acc uint32, key Key, r uint32, yield func(Key, uint32) bool) bool {
	if i == len(s.opts) {
		return yield(key, acc)
	}
	for _, o := range s.opts[i] {
		c := acc + o.cost
		if c+s.minTail[i+1] > r {
			continue
		}
		next := orField(orField(key, s.w, 2*i, o.low), s.w, 2*i+1, o.high)
		if !s.walkWithin(i+1, c, next, r, yield) {
			return false
		}
	}
	return true
}

// ExactAtDistance yields every level+1 key below parent whose distance to
// the query key fine is exactly d. coarse is the query key at level; parent
// keys farther than d from it have no such children.
func ExactAtDistance(coarse, fine, parent Key, level int, d uint32) iter.Seq[Key] {
	return func(yield func(Key) bool) {
		if Distance(parent, coarse, level) > d {
			return
		}
		s := newShell(parent, fine, level)
		if !s.reach[0].has(d) {
			return
		}
		s.walkExact(0, 0, uint128.Zero, d, yield)
	}
}

// WithinRadius yields every level+1 key below parent within radius r of the
// query key fine, together with its distance.
func WithinRadius(coarse, fine, parent Key, level int, r uint32) iter.Seq2[Key, uint32] {
	return func(yield func(Key, uint32) bool) {
		if Distance(parent, coarse, level) > r {
			return
		}
		s := newShell(parent, fine, level)
		if s.minTail[0] > r {
			return
		}
		s.walkWithin(0, 0, uint128.Zero, r, yield)
	}
}

// RootRange yields the level-0 keys (Hamming weights) within r of weight.
func RootRange(weight, r uint32) iter.Seq[Key] {
	return func(yield func(Key) bool) {
		start := uint32(0)
		if weight > r {
			start = weight - r
		}
		end := min(weight+r, MaxDistance)
		for w := start; w <= end; w++ {
			if !yield(uint128.From64(uint64(w))) {
				return
			}
		}
	}
}
