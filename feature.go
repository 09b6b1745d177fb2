package hwt

import (
	"github.com/hupe1980/hwt/internal/packed"
	"lukechampine.com/uint128"
)

// Feature is a 128-bit binary descriptor.
type Feature = uint128.Uint128

// NewFeature builds a feature from its low and high 64-bit halves.
func NewFeature(lo, hi uint64) Feature {
	return uint128.New(lo, hi)
}

// FeatureFrom64 builds a feature whose high half is zero.
func FeatureFrom64(v uint64) Feature {
	return uint128.From64(v)
}

// Distance returns the Hamming distance between two features.
func Distance(a, b Feature) uint32 {
	return packed.Hamming(a, b)
}

// Neighbor is a search result together with its distance to the query.
type Neighbor struct {
	Feature  Feature
	Distance uint32
}
