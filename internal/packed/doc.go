// Package packed provides the per-level classification keys of the Hamming
// weight tree and the bit-parallel primitives that search them.
//
// A 128-bit feature is summarized at eight granularities. At level L the key
// packs 2^L fields of width 128>>L; each field holds the population count of
// the corresponding feature bits. Level 0 is the total Hamming weight and
// level 7 is the feature itself.
//
// The distance between two keys of the same level is the sum of the absolute
// field differences. It never exceeds the Hamming distance of any two features
// carrying those keys, and it never decreases from one level to the next.
//
//	idx := packed.Indices(feature)
//	d := packed.Distance(idx[3], other[3], 3)
//	for k := range packed.ExactAtDistance(q[2], q[3], parent, 2, d) {
//	    // every level-3 key below parent at distance exactly d
//	}
package packed
