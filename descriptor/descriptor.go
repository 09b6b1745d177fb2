package descriptor

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"

	"github.com/corona10/goimagehash"
	"github.com/hupe1980/hwt"
	_ "golang.org/x/image/webp" // register decoder
)

const (
	// A difference hash of diffWidth*diffHeight bits fills exactly one feature.
	diffWidth  = 8
	diffHeight = 16

	// goimagehash flattens DCT coefficients correctly only for square sizes,
	// so the perception hash is taken over a 16x16 block and truncated to
	// its first eight rows of coefficients.
	phashSide = 16
)

// ErrHashBits is returned when a hash does not have exactly 128 bits.
var ErrHashBits = errors.New("descriptor: hash must have 128 bits")

// HashFunc turns an image into a feature.
type HashFunc func(image.Image) (hwt.Feature, error)

// FromHash packs a 128-bit extended image hash into a feature. The first
// word of the hash becomes the high half.
func FromHash(h *goimagehash.ExtImageHash) (hwt.Feature, error) {
	if h == nil {
		return hwt.Feature{}, fmt.Errorf("%w: got nil hash", ErrHashBits)
	}
	if h.Bits() != 128 {
		return hwt.Feature{}, fmt.Errorf("%w: got %d", ErrHashBits, h.Bits())
	}
	return leading(h.GetHash())
}

// leading packs the first two words of a hash, most significant first.
func leading(words []uint64) (hwt.Feature, error) {
	if len(words) < 2 {
		return hwt.Feature{}, fmt.Errorf("%w: got %d words", ErrHashBits, len(words))
	}
	return hwt.NewFeature(words[1], words[0]), nil
}

// PerceptionHash computes a 128-bit DCT based perception hash of img. The
// bits are the lowest vertical frequencies of a 256-bit perception hash.
func PerceptionHash(img image.Image) (hwt.Feature, error) {
	h, err := goimagehash.ExtPerceptionHash(img, phashSide, phashSide)
	if err != nil {
		return hwt.Feature{}, fmt.Errorf("failed to compute perception hash: %w", err)
	}
	return leading(h.GetHash())
}

// DifferenceHash computes the 128-bit gradient based difference hash of img.
func DifferenceHash(img image.Image) (hwt.Feature, error) {
	h, err := goimagehash.ExtDifferenceHash(img, diffWidth, diffHeight)
	if err != nil {
		return hwt.Feature{}, fmt.Errorf("failed to compute difference hash: %w", err)
	}
	return FromHash(h)
}

// FromReader decodes a GIF, JPEG, PNG or WebP image from r and hashes it
// with hash. A nil hash means PerceptionHash.
func FromReader(r io.Reader, hash HashFunc) (hwt.Feature, error) {
	if hash == nil {
		hash = PerceptionHash
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return hwt.Feature{}, fmt.Errorf("failed to decode image: %w", err)
	}
	return hash(img)
}
