// Package descriptor derives 128-bit features from images.
//
// Features are extended perceptual hashes computed with goimagehash: the
// image is reduced to 128 bits such that visually similar images end up a
// small Hamming distance apart. The results can be stored in an hwt.Tree and
// searched with Nearest or SearchRadius to find near-duplicate images.
//
//	f, err := descriptor.PerceptionHash(img)
//	if err != nil {
//		return err
//	}
//	tree.Insert(f)
package descriptor
