package hwt

import (
	"bytes"
	"testing"

	"github.com/hupe1980/hwt/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats(t *testing.T) {
	rng := testutil.NewRNG(21)
	space := rng.ClusteredFeatures(1000, 8, 5)
	tree := New(WithLeafThreshold(16))
	for _, f := range space {
		tree.Insert(f)
	}

	s := tree.Stats()
	assert.Equal(t, 1000, s.Inserts)
	assert.Equal(t, 1000, s.Stored)
	assert.Equal(t, s.Nodes, s.Leaves+s.Branches)
	assert.Positive(t, s.Branches)
	assert.Positive(t, s.Conversions[0])
	assert.Equal(t, totalConversions(s), s.Branches)
	assert.Positive(t, s.LargestLeaf)
	assert.NotEmpty(t, s.Popcount)

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Contains(t, buf.String(), "inserts = 1000")
	assert.Contains(t, buf.String(), "popcount = "+s.Popcount)
}

// totalConversions sums the conversions of every level. It equals the number of
// branches, which never turn back into leaves.
func totalConversions(s Stats) int {
	n := 0
	for _, c := range s.Conversions {
		n += c
	}
	return n
}
