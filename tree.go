package hwt

import (
	"context"
	"slices"
	"time"

	"github.com/hupe1980/hwt/internal/packed"
)

// Tree is a Hamming weight tree over 128-bit features.
//
// Nodes live in an append-only arena addressed by uint32 ids; node 0 is the
// root. A node starts as a leaf and becomes a branch once it holds more than
// the leaf threshold. Branches at depth d route by the level-d key, so the
// tree is at most eight branches deep.
//
// Insert requires exclusive access. Contains, Nearest, NearestNeighbors,
// NearestBatch, SearchRadius and Stats only read and may run concurrently
// with each other, but never with Insert. The tree does no locking itself.
type Tree struct {
	nodes       []node
	count       int
	conversions [packed.Levels]int
	opts        options
	timeInserts bool // false with the no-op collector
}

// New creates an empty tree.
func New(optFns ...Option) *Tree {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	_, noop := opts.metricsCollector.(NoopMetricsCollector)
	t := &Tree{opts: opts, timeInserts: !noop}
	t.allocate()

	t.opts.logger.DebugContext(context.Background(), "tree created",
		"leaf_threshold", t.opts.leafThreshold,
		"popcount", packed.Capabilities().String(),
	)
	return t
}

// Len returns the number of Insert calls made, duplicates included.
func (t *Tree) Len() int {
	return t.count
}

// IsEmpty reports whether nothing has been inserted.
func (t *Tree) IsEmpty() bool {
	return t.Len() == 0
}

// bruteForce returns the fan-out below which a branch whose children carry
// keys of level+1 is scanned instead of enumerated.
func (t *Tree) bruteForce(level int) int {
	if level < 0 || t.opts.bruteForce[level] <= 0 {
		return t.opts.leafThreshold
	}
	return t.opts.bruteForce[level]
}

// Insert adds f to the tree. Equal features are stored and counted once per
// call; nothing is ever replaced.
func (t *Tree) Insert(f Feature) {
	if !t.timeInserts {
		t.insert(f)
		return
	}
	start := time.Now()
	t.insert(f)
	t.opts.metricsCollector.RecordInsert(time.Since(start))
}

func (t *Tree) insert(f Feature) {
	t.count++
	idx := packed.Indices(f)
	bucket := uint32(0)
	for level, key := range idx {
		n := &t.nodes[bucket]
		if !n.isBranch() {
			n.leaf = append(n.leaf, f)
			if len(n.leaf) > t.opts.leafThreshold {
				t.convert(bucket, level)
			}
			return
		}
		child, ok := n.branch[key]
		if !ok {
			child = t.allocate()
			t.nodes[child].leaf = append(t.nodes[child].leaf, f)
			t.nodes[bucket].branch[key] = child
			return
		}
		bucket = child
	}
	// Below the finest level every feature of a leaf is identical, so the
	// leaf just grows.
	n := &t.nodes[bucket]
	if n.isBranch() {
		panic("hwt: branch node below the deepest level")
	}
	n.leaf = append(n.leaf, f)
}

// Contains reports whether f has been inserted.
func (t *Tree) Contains(f Feature) bool {
	idx := packed.Indices(f)
	bucket := uint32(0)
	for _, key := range idx {
		n := &t.nodes[bucket]
		if !n.isBranch() {
			return slices.Contains(n.leaf, f)
		}
		child, ok := n.branch[key]
		if !ok {
			return false
		}
		bucket = child
	}
	n := &t.nodes[bucket]
	if n.isBranch() {
		panic("hwt: branch node below the deepest level")
	}
	return slices.Contains(n.leaf, f)
}
