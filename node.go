package hwt

import (
	"context"
	"fmt"
	"math"

	"github.com/hupe1980/hwt/internal/packed"
)

// node is either a leaf holding features directly or a branch routing by the
// classification key of the next level. A node is a branch iff branch != nil.
type node struct {
	leaf   []Feature
	branch map[packed.Key]uint32
}

func (n *node) isBranch() bool {
	return n.branch != nil
}

// allocate appends an empty leaf to the arena and returns its id.
func (t *Tree) allocate() uint32 {
	id := len(t.nodes)
	if id >= math.MaxUint32 {
		panic("hwt: node identifier space exhausted")
	}
	t.nodes = append(t.nodes, node{leaf: make([]Feature, 0, initialLeafCapacity)})
	return uint32(id)
}

// convert replaces the leaf id with a branch keyed by the level index of its
// features. Every feature moves to exactly one new child leaf.
func (t *Tree) convert(id uint32, level int) {
	if t.nodes[id].isBranch() {
		panic(fmt.Sprintf("hwt: tried to convert branch node %d", id))
	}
	features := t.nodes[id].leaf
	branch := make(map[packed.Key]uint32)
	for _, f := range features {
		k := packed.Index(f, level)
		child, ok := branch[k]
		if !ok {
			child = t.allocate()
			branch[k] = child
		}
		t.nodes[child].leaf = append(t.nodes[child].leaf, f)
	}
	t.nodes[id] = node{branch: branch}
	t.conversions[level]++

	t.opts.logger.LogConvert(context.Background(), id, level, len(features), len(branch))
	t.opts.metricsCollector.RecordConvert(level, len(branch))
}
