package hwt_test

import (
	"context"
	"fmt"
	"log"
	"slices"

	"github.com/hupe1980/hwt"
)

func Example() {
	tree := hwt.New()
	for _, f := range []uint64{0b1001, 0b1010, 0b1100, 0b1000} {
		tree.Insert(hwt.FeatureFrom64(f))
	}

	nearest := tree.Nearest(hwt.FeatureFrom64(0b1001), make([]hwt.Feature, 1))
	fmt.Printf("nearest: %04b\n", nearest[0].Lo)
	fmt.Println("contains 0b1100:", tree.Contains(hwt.FeatureFrom64(0b1100)))
	// Output:
	// nearest: 1001
	// contains 0b1100: true
}

func ExampleTree_SearchRadius() {
	tree := hwt.New(hwt.WithLeafThreshold(2))
	for _, f := range []uint64{0b1001, 0b1010, 0b1100, 0b1000} {
		tree.Insert(hwt.FeatureFrom64(f))
	}

	found := slices.SortedFunc(tree.SearchRadius(1, hwt.FeatureFrom64(0b1001)), hwt.Feature.Cmp)
	for _, f := range found {
		fmt.Printf("%04b\n", f.Lo)
	}
	// Output:
	// 1000
	// 1001
}

func ExampleTree_NearestNeighbors() {
	tree := hwt.New()
	tree.Insert(hwt.NewFeature(0xff, 0))
	tree.Insert(hwt.NewFeature(0x0f, 0))
	tree.Insert(hwt.NewFeature(0, 1))

	for _, n := range tree.NearestNeighbors(hwt.NewFeature(0x1f, 0), 2) {
		fmt.Printf("%#x %d\n", n.Feature.Lo, n.Distance)
	}
	// Output:
	// 0xf 1
	// 0xff 3
}

func ExampleTree_NearestBatch() {
	tree := hwt.New(hwt.WithBatchConcurrency(2))
	for i := range uint64(8) {
		tree.Insert(hwt.FeatureFrom64(1 << i))
	}

	queries := []hwt.Feature{hwt.FeatureFrom64(1), hwt.FeatureFrom64(0x80)}
	results, err := tree.NearestBatch(context.Background(), queries, 1)
	if err != nil {
		log.Fatal(err)
	}
	for _, r := range results {
		fmt.Printf("%#x\n", r[0].Lo)
	}
	// Output:
	// 0x1
	// 0x80
}
