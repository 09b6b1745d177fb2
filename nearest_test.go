package hwt

import (
	"slices"
	"testing"

	"github.com/hupe1980/hwt/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

func distances(q Feature, fs []Feature) []uint32 {
	out := make([]uint32, len(fs))
	for i, f := range fs {
		out[i] = testutil.Hamming(q, f)
	}
	return out
}

// precise builds options that force shell enumeration on every branch.
func precise(tau int) []Option {
	opts := []Option{WithLeafThreshold(tau)}
	for level := range 7 {
		opts = append(opts, WithBruteForceThreshold(level, 1))
	}
	return opts
}

func TestNearest(t *testing.T) {
	t.Run("Small", func(t *testing.T) {
		tree := New()
		for _, f := range []uint64{0b1001, 0b1010, 0b1100, 0b1000} {
			tree.Insert(FeatureFrom64(f))
		}

		assert.Equal(t, []Feature{FeatureFrom64(0b1001)}, tree.Nearest(FeatureFrom64(0b1001), make([]Feature, 1)))
	})

	t.Run("AfterSplits", func(t *testing.T) {
		alt := NewFeature(0xaaaaaaaaaaaaaaaa, 0xaaaaaaaaaaaaaaaa)
		space := []Feature{
			FeatureFrom64(0b1001),
			FeatureFrom64(0b1010),
			FeatureFrom64(0b1100),
			FeatureFrom64(0b1000),
			alt,
			alt,
			alt.Xor64(1),
		}
		tree := New(WithLeafThreshold(1))
		for _, f := range space {
			tree.Insert(f)
		}

		assert.Equal(t, []Feature{FeatureFrom64(0b1001)}, tree.Nearest(FeatureFrom64(0b1001), make([]Feature, 1)))
		assert.Equal(t, []Feature{alt, alt}, tree.Nearest(alt, make([]Feature, 2)))

		nn := tree.NearestNeighbors(alt.Xor64(3), 3)
		require.Len(t, nn, 3)
		assert.Equal(t, alt.Xor64(1), nn[0].Feature)
		assert.Equal(t, []uint32{1, 2, 2}, []uint32{nn[0].Distance, nn[1].Distance, nn[2].Distance})
	})

	t.Run("CapacityLargerThanTree", func(t *testing.T) {
		tree := New(WithLeafThreshold(2))
		rng := testutil.NewRNG(5)
		space := rng.Features(7)
		for _, f := range space {
			tree.Insert(f)
		}

		got := tree.Nearest(rng.Feature(), make([]Feature, 20))
		assert.Len(t, got, len(space))
		assert.Equal(t, sorted(space), sorted(got))
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		tree := New()
		tree.Insert(FeatureFrom64(1))

		assert.Empty(t, tree.Nearest(FeatureFrom64(1), nil))
		assert.Nil(t, tree.NearestNeighbors(FeatureFrom64(1), 0))
		assert.Nil(t, tree.NearestNeighbors(FeatureFrom64(1), -1))
	})

	t.Run("EmptyTree", func(t *testing.T) {
		tree := New(WithLeafThreshold(1))
		assert.Empty(t, tree.NearestNeighbors(FeatureFrom64(1), 3))
	})
}

func TestNearestMatchesLinearScan(t *testing.T) {
	cases := []struct {
		name    string
		opts    []Option
		uniform bool
	}{
		{name: "SingleLeaf", opts: nil, uniform: true},
		{name: "Tau1", opts: []Option{WithLeafThreshold(1)}, uniform: true},
		{name: "Tau16", opts: []Option{WithLeafThreshold(16)}},
		{name: "Tau64", opts: []Option{WithLeafThreshold(64)}, uniform: true},
		{name: "PreciseTau1", opts: precise(1)},
		{name: "PreciseTau8", opts: precise(8)},
		{name: "PreciseUniform", opts: precise(4), uniform: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := testutil.NewRNG(1234)
			var space []Feature
			if tc.uniform {
				space = rng.Features(800)
			} else {
				space = rng.ClusteredFeatures(1500, 12, 6)
			}
			tree := New(tc.opts...)
			for _, f := range space {
				tree.Insert(f)
			}

			for i := range 40 {
				var q Feature
				if i%2 == 0 {
					q = rng.Perturb(space[rng.Intn(len(space))], rng.Intn(10))
				} else {
					q = rng.Feature()
				}

				one := tree.Nearest(q, make([]Feature, 1))
				require.Len(t, one, 1)
				require.Equal(t, testutil.MinDistance(q, space), testutil.Hamming(q, one[0]))

				k := 1 + rng.Intn(25)
				got := tree.NearestNeighbors(q, k)
				want := testutil.ExactDistances(q, space, k)
				gotDist := make([]uint32, len(got))
				for j, n := range got {
					gotDist[j] = n.Distance
					require.Equal(t, testutil.Hamming(q, n.Feature), n.Distance)
				}
				require.Equal(t, want, gotDist, "query %d k %d", i, k)
			}
		})
	}
}

func TestNearestOrdering(t *testing.T) {
	rng := testutil.NewRNG(77)
	space := rng.ClusteredFeatures(600, 5, 12)
	tree := New(WithLeafThreshold(3))
	for _, f := range space {
		tree.Insert(f)
	}

	q := rng.Perturb(space[0], 5)
	got := tree.Nearest(q, make([]Feature, len(space)))
	require.Len(t, got, len(space))
	assert.True(t, slices.IsSorted(distances(q, got)))
	assert.Equal(t, sorted(space), sorted(got))
}

func TestNearestTopBit(t *testing.T) {
	tree := New(WithLeafThreshold(1))
	tree.Insert(uint128.Max)
	tree.Insert(NewFeature(0, 1<<63))
	tree.Insert(uint128.Zero)

	got := tree.NearestNeighbors(NewFeature(1, 1<<63), 1)
	require.Len(t, got, 1)
	assert.Equal(t, NewFeature(0, 1<<63), got[0].Feature)
	assert.Equal(t, uint32(1), got[0].Distance)
}

func TestNearestLarge(t *testing.T) {
	n := 100_000
	if testing.Short() {
		n = 10_000
	}
	rng := testutil.NewRNG(0x5eed)
	space := rng.Features(n)

	trees := map[string]*Tree{
		"Default": New(),
		"Precise": New(precise(DefaultLeafThreshold)...),
	}
	for _, tree := range trees {
		for _, f := range space {
			tree.Insert(f)
		}
	}

	queries := rng.Features(10)
	for name, tree := range trees {
		t.Run(name, func(t *testing.T) {
			assert.Positive(t, tree.Stats().Branches)
			for _, q := range queries {
				got := tree.Nearest(q, make([]Feature, 1))
				require.Len(t, got, 1)
				assert.Equal(t, testutil.MinDistance(q, space), testutil.Hamming(q, got[0]))
			}
		})
	}
}
