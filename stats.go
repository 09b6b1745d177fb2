package hwt

import (
	"fmt"
	"io"

	"github.com/hupe1980/hwt/internal/packed"
)

// Stats describes the shape of a tree.
type Stats struct {
	Inserts     int // Number of Insert calls
	Stored      int // Features held by leaves
	Nodes       int
	Leaves      int
	Branches    int
	LargestLeaf int
	// Conversions counts leaves turned into branches keyed by each level.
	Conversions [packed.Levels]int
	// Popcount names the population count implementation of this CPU.
	Popcount string
}

// Stats walks the arena and returns statistics about the tree.
func (t *Tree) Stats() Stats {
	s := Stats{
		Inserts:     t.count,
		Nodes:       len(t.nodes),
		Conversions: t.conversions,
		Popcount:    packed.Capabilities().String(),
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.isBranch() {
			s.Branches++
			continue
		}
		s.Leaves++
		s.Stored += len(n.leaf)
		s.LargestLeaf = max(s.LargestLeaf, len(n.leaf))
	}
	return s
}

// WriteTo prints the statistics in a human readable form.
func (s Stats) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"Parameters:\n\tinserts = %d\n\tstored = %d\nNodes:\n\ttotal = %d\n\tleaves = %d\n\tbranches = %d\n\tlargest leaf = %d\n\tconversions = %v\nCPU:\n\tpopcount = %s\n",
		s.Inserts, s.Stored, s.Nodes, s.Leaves, s.Branches, s.LargestLeaf, s.Conversions, s.Popcount)
	return int64(n), err
}
