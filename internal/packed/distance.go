package packed

import "math/bits"

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

// laneDistance sums |x_i - y_i| over the w-bit fields of one 64-bit lane.
// Fields hold at most w, so every field difference fits in w bits once its
// sign is known. 2 <= w <= 32.
func laneDistance(x, y uint64, w uint) uint64 {
	tz := bits.TrailingZeros(w)
	h := highBit[tz]
	// Per-field x - y modulo 2^w without borrows crossing field boundaries.
	d := ((x | h) - (y &^ h)) ^ ((x ^ ^y) & h)
	// Negate the fields whose difference is negative. A field equal to
	// 2^(w-1) maps to itself, which is its absolute value either way.
	neg := (d & h) >> (w - 1)
	abs := (d ^ (neg * (1<<w - 1))) + neg
	// Horizontal sum of the fields.
	for s := tz; s < 6; s++ {
		m := lowHalf[s]
		abs = (abs & m) + ((abs >> (uint(1) << s)) & m)
	}
	return abs
}

// Distance returns the distance between two keys of the given level.
func Distance(a, b Key, level int) uint32 {
	switch level {
	case 0:
		return uint32(absDiff(a.Lo, b.Lo))
	case 1:
		return uint32(absDiff(a.Lo, b.Lo) + absDiff(a.Hi, b.Hi))
	case Levels - 1:
		return Hamming(a, b)
	default:
		w := Width(level)
		return uint32(laneDistance(a.Lo, b.Lo, w) + laneDistance(a.Hi, b.Hi, w))
	}
}

// PartialDistance is the distance contributed by the bits resolved up to
// level, between key and the query indices at that level.
func PartialDistance(key Key, indices *[Levels]Key, level int) uint32 {
	return Distance(key, indices[level], level)
}

// LowerBound bounds the Hamming distance between the query and any feature
// stored below a branch entry keyed by key at level. Entries whose bound
// exceeds a search radius can be skipped.
func LowerBound(key, fine Key, level int) uint32 {
	return Distance(key, fine, level)
}
