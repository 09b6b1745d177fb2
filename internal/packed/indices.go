package packed

import (
	"math/bits"

	"lukechampine.com/uint128"
)

// Key is a packed classification key of one tree level.
type Key = uint128.Uint128

const (
	// Levels is the number of classification levels.
	Levels = 8
	// Bits is the feature width.
	Bits = 128
	// MaxDistance is the largest possible Hamming distance between two features.
	MaxDistance = Bits
)

// Lane masks selecting the low half of every 2w-bit field, indexed by w.
const (
	m1  = 0x5555555555555555
	m2  = 0x3333333333333333
	m4  = 0x0f0f0f0f0f0f0f0f
	m8  = 0x00ff00ff00ff00ff
	m16 = 0x0000ffff0000ffff
	m32 = 0x00000000ffffffff
)

// Both tables are indexed by log2 of the field width w.
var (
	// lowHalf folds w-bit fields into 2w-bit fields.
	lowHalf = [6]uint64{m1, m2, m4, m8, m16, m32}
	// highBit has the top bit of every w-bit field set.
	highBit = [6]uint64{
		0xffffffffffffffff,
		0xaaaaaaaaaaaaaaaa,
		0x8888888888888888,
		0x8080808080808080,
		0x8000800080008000,
		0x8000000080000000,
	}
)

// Width returns the field width of keys at the given level.
func Width(level int) uint {
	return Bits >> uint(level)
}

// Fields returns the number of fields of keys at the given level.
func Fields(level int) int {
	return 1 << uint(level)
}

func fold(x uint64, w uint) uint64 {
	m := lowHalf[bits.TrailingZeros(w)]
	return (x & m) + ((x >> w) & m)
}

// Indices returns the classification keys of f from level 0 (total weight)
// to level 7 (f itself).
func Indices(f Key) [Levels]Key {
	var out [Levels]Key
	out[7] = f
	lo, hi := f.Lo, f.Hi
	for level, w := 6, uint(1); level >= 1; level, w = level-1, w*2 {
		lo, hi = fold(lo, w), fold(hi, w)
		out[level] = uint128.New(lo, hi)
	}
	out[0] = uint128.From64(lo + hi)
	return out
}

// Weight returns the Hamming weight of f.
func Weight(f Key) uint32 {
	return uint32(bits.OnesCount64(f.Lo) + bits.OnesCount64(f.Hi))
}

// Hamming returns the Hamming distance between a and b.
func Hamming(a, b Key) uint32 {
	return uint32(bits.OnesCount64(a.Lo^b.Lo) + bits.OnesCount64(a.Hi^b.Hi))
}

// Field returns field i of a key whose fields are w bits wide.
func Field(k Key, w uint, i int) uint64 {
	if w == Bits {
		return k.Lo
	}
	off := uint(i) * w
	lane := k.Lo
	if off >= 64 {
		lane = k.Hi
		off -= 64
	}
	if w == 64 {
		return lane
	}
	return (lane >> off) & (1<<w - 1)
}

// orField sets field i of k, which must currently be zero.
func orField(k Key, w uint, i int, v uint64) Key {
	if w == Bits {
		k.Lo = v
		return k
	}
	off := uint(i) * w
	if off >= 64 {
		k.Hi |= v << (off - 64)
	} else {
		k.Lo |= v << off
	}
	return k
}

// Parent folds a key of level+1 into the key of level that contains it.
func Parent(k Key, level int) Key {
	if level == 0 {
		return uint128.From64(k.Lo + k.Hi)
	}
	w := Width(level + 1)
	return uint128.New(fold(k.Lo, w), fold(k.Hi, w))
}

// Index returns the classification key of f at a single level.
func Index(f Key, level int) Key {
	switch level {
	case 0:
		return uint128.From64(uint64(Weight(f)))
	case Levels - 1:
		return f
	}
	lo, hi := f.Lo, f.Hi
	for l, w := Levels-2, uint(1); l >= level; l, w = l-1, w*2 {
		lo, hi = fold(lo, w), fold(hi, w)
	}
	return uint128.New(lo, hi)
}
